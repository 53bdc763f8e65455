package player

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultTickInterval is how often ClockEngine reports position while playing.
const DefaultTickInterval = 250 * time.Millisecond

// MetadataLoader resolves the duration of a media URL.
type MetadataLoader func(ctx context.Context, url string) (float64, error)

// ClockEngine is a headless Engine: position advances with wall-clock time
// while playing and nothing is decoded. Duration comes from a MetadataLoader
// in the background, the same way a media element reports loadedmetadata.
type ClockEngine struct {
	interval time.Duration
	loader   MetadataLoader
	logger   *zap.Logger

	mu         sync.Mutex
	events     Events
	url        string
	position   float64
	duration   float64
	playing    bool
	volume     float64
	muted      bool
	stop       chan struct{}
	cancelLoad context.CancelFunc
	loadSeq    uint64
}

type ClockOption func(*ClockEngine)

// WithTickInterval sets the tick period. Zero disables the ticker so the
// clock only moves through Advance.
func WithTickInterval(d time.Duration) ClockOption {
	return func(c *ClockEngine) { c.interval = d }
}

func WithMetadataLoader(loader MetadataLoader) ClockOption {
	return func(c *ClockEngine) { c.loader = loader }
}

func WithClockLogger(logger *zap.Logger) ClockOption {
	return func(c *ClockEngine) { c.logger = logger }
}

func NewClockEngine(opts ...ClockOption) *ClockEngine {
	c := &ClockEngine{
		interval: DefaultTickInterval,
		logger:   zap.NewNop(),
		volume:   defaultVolume,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *ClockEngine) Subscribe(events Events) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = events
}

// Load resets the clock for url and starts resolving its duration.
func (c *ClockEngine) Load(url string) error {
	c.mu.Lock()
	c.stopTickerLocked()
	if c.cancelLoad != nil {
		c.cancelLoad()
		c.cancelLoad = nil
	}
	c.loadSeq++
	seq := c.loadSeq
	c.url = url
	c.position = 0
	c.duration = 0
	c.playing = false

	if url == "" || c.loader == nil {
		c.mu.Unlock()
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancelLoad = cancel
	loader := c.loader
	c.mu.Unlock()

	go c.loadMetadata(ctx, loader, url, seq)
	return nil
}

func (c *ClockEngine) loadMetadata(ctx context.Context, loader MetadataLoader, url string, seq uint64) {
	duration, err := loader(ctx, url)
	if err != nil {
		if ctx.Err() == nil {
			c.logger.Warn("failed to load media metadata", zap.String("url", url), zap.Error(err))
		}
		return
	}

	c.mu.Lock()
	if seq != c.loadSeq {
		c.mu.Unlock()
		return
	}
	c.duration = duration
	if c.position > duration {
		c.position = duration
	}
	onLoaded := c.events.OnLoadedMetadata
	c.mu.Unlock()

	if onLoaded != nil {
		onLoaded(duration)
	}
}

// Play starts the clock. Playing past the end restarts from 0.
func (c *ClockEngine) Play() error {
	c.mu.Lock()
	if c.url == "" {
		c.mu.Unlock()
		return ErrNoSource
	}
	if c.playing {
		c.mu.Unlock()
		return nil
	}
	restarted := false
	if c.duration > 0 && c.position >= c.duration {
		c.position = 0
		restarted = true
	}
	c.playing = true
	if c.interval > 0 {
		c.stop = make(chan struct{})
		go c.run(c.stop)
	}
	ev := c.events
	c.mu.Unlock()

	if restarted && ev.OnTimeUpdate != nil {
		ev.OnTimeUpdate(0)
	}
	if ev.OnPlay != nil {
		ev.OnPlay()
	}
	return nil
}

func (c *ClockEngine) Pause() error {
	c.mu.Lock()
	if !c.playing {
		c.mu.Unlock()
		return nil
	}
	c.playing = false
	c.stopTickerLocked()
	onPause := c.events.OnPause
	c.mu.Unlock()

	if onPause != nil {
		onPause()
	}
	return nil
}

func (c *ClockEngine) Seek(seconds float64) error {
	c.mu.Lock()
	if c.url == "" {
		c.mu.Unlock()
		return ErrNoSource
	}
	c.position = seconds
	onTime := c.events.OnTimeUpdate
	c.mu.Unlock()

	if onTime != nil {
		onTime(seconds)
	}
	return nil
}

func (c *ClockEngine) SetVolume(volume float64, muted bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.volume = volume
	c.muted = muted
	return nil
}

// Advance moves a playing clock forward by d and stops at the end of the media.
func (c *ClockEngine) Advance(d time.Duration) {
	c.advance(d, nil)
}

func (c *ClockEngine) advance(d time.Duration, from chan struct{}) {
	c.mu.Lock()
	if !c.playing || (from != nil && from != c.stop) {
		c.mu.Unlock()
		return
	}
	c.position += d.Seconds()
	ended := c.duration > 0 && c.position >= c.duration
	if ended {
		c.position = c.duration
		c.playing = false
		c.stopTickerLocked()
	}
	position := c.position
	ev := c.events
	c.mu.Unlock()

	if ev.OnTimeUpdate != nil {
		ev.OnTimeUpdate(position)
	}
	if ended && ev.OnPause != nil {
		ev.OnPause()
	}
}

func (c *ClockEngine) run(stop chan struct{}) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.advance(c.interval, stop)
		}
	}
}

func (c *ClockEngine) stopTickerLocked() {
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
}

// Position reports the clock's current position and whether it is running.
func (c *ClockEngine) Position() (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position, c.playing
}

// Volume reports the last volume and mute flag set on the engine.
func (c *ClockEngine) Volume() (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.volume, c.muted
}

// Close stops the ticker and any pending metadata load.
func (c *ClockEngine) Close() error {
	return c.Load("")
}
