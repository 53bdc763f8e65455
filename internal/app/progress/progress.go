// Package progress draws a terminal progress bar for headless playback.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"whisper-sync/internal/app/player"
)

type Config struct {
	Enabled bool
	Writer  io.Writer
}

type Manager struct {
	container *mpb.Progress
	enabled   bool
	mu        sync.Mutex
}

// PlaybackBar tracks position in milliseconds and shows the active segment.
type PlaybackBar struct {
	bar     *mpb.Bar
	enabled bool

	mu       sync.Mutex
	state    player.State
	caption  string
	complete bool
}

func NewManager(config Config) *Manager {
	if !config.Enabled {
		return &Manager{enabled: false}
	}

	writer := config.Writer
	if writer == nil {
		writer = os.Stderr
	}

	container := mpb.New(
		mpb.WithOutput(writer),
		mpb.WithRefreshRate(120*time.Millisecond),
		mpb.WithWidth(48),
	)

	return &Manager{
		container: container,
		enabled:   true,
	}
}

// PlaybackBar adds a bar labelled name. Its total is unknown until Update
// sees a duration.
func (m *Manager) PlaybackBar(name string) *PlaybackBar {
	if !m.enabled || m.container == nil {
		return &PlaybackBar{enabled: false}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	pb := &PlaybackBar{enabled: true}
	pb.bar = m.container.AddBar(0,
		mpb.PrependDecorators(
			decor.Name(name+" ", decor.WC{W: len(name) + 1, C: decor.DindentRight}),
			decor.Any(pb.clock, decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.Any(pb.captionText, decor.WCSyncSpace),
		),
	)
	return pb
}

// Update moves the bar to st and remembers the caption to show beside it.
func (pb *PlaybackBar) Update(st player.State, caption string) {
	if !pb.enabled || pb.bar == nil {
		return
	}
	pb.mu.Lock()
	if pb.complete {
		pb.mu.Unlock()
		return
	}
	pb.state = st
	pb.caption = caption
	pb.mu.Unlock()

	if st.Duration > 0 {
		pb.bar.SetTotal(millis(st.Duration), false)
	}
	pb.bar.SetCurrent(millis(st.CurrentTime))
}

// Complete marks the bar done at its current position.
func (pb *PlaybackBar) Complete() {
	if !pb.enabled || pb.bar == nil {
		return
	}
	pb.mu.Lock()
	if pb.complete {
		pb.mu.Unlock()
		return
	}
	pb.complete = true
	pb.mu.Unlock()
	pb.bar.SetTotal(pb.bar.Current(), true)
}

func (pb *PlaybackBar) clock(decor.Statistics) string {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	return fmt.Sprintf("%s / %s", player.FormatTime(pb.state.CurrentTime), player.FormatTime(pb.state.Duration))
}

func (pb *PlaybackBar) captionText(decor.Statistics) string {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	return pb.caption
}

func (m *Manager) Wait() {
	if m.enabled && m.container != nil {
		m.container.Wait()
	}
}

func (m *Manager) Shutdown() {
	if m.enabled && m.container != nil {
		m.container.Shutdown()
	}
}

func IsTTY(writer io.Writer) bool {
	if writer == nil {
		return false
	}

	if file, ok := writer.(*os.File); ok {
		stat, err := file.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// ShouldShowProgress reports whether to draw bars: when forced or when attached to a terminal.
func ShouldShowProgress(forced bool) bool {
	if forced {
		return true
	}
	return IsTTY(os.Stderr) || IsTTY(os.Stdout)
}

func millis(seconds float64) int64 {
	if seconds < 0 {
		return 0
	}
	return int64(seconds * 1000)
}
