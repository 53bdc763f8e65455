package player

import (
	"math"
	"sync"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"whisper-sync/internal/app/errors"
	"whisper-sync/internal/app/model"
)

const defaultVolume = 1.0

var ErrNoSource = errors.New("no audio source loaded")

// State is a snapshot of playback and the derived active segment.
type State struct {
	Source      string  `json:"source"`
	CurrentTime float64 `json:"current_time"`
	Duration    float64 `json:"duration"`
	Playing     bool    `json:"playing"`
	Volume      float64 `json:"volume"`
	Muted       bool    `json:"muted"`
	ActiveIndex int     `json:"active_index"`
	Segments    int     `json:"segments"`
}

// Synchronizer owns PlaybackState and the active segment index.
//
// It never holds its lock while calling the engine, so engines are free to
// deliver events synchronously from inside Play, Seek and friends.
type Synchronizer struct {
	engine Engine
	logger *zap.Logger

	mu         sync.Mutex
	state      State
	segments   []model.Segment
	lastVolume float64
	listeners  map[int]func(State)
	nextID     int
}

func NewSynchronizer(engine Engine, logger *zap.Logger) *Synchronizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Synchronizer{
		engine:     engine,
		logger:     logger,
		state:      State{Volume: defaultVolume, ActiveIndex: -1},
		lastVolume: defaultVolume,
		listeners:  make(map[int]func(State)),
	}
	engine.Subscribe(Events{
		OnTimeUpdate:     s.OnTimeUpdate,
		OnLoadedMetadata: s.OnLoadedMetadata,
		OnPlay:           func() { s.setPlaying(true) },
		OnPause:          func() { s.setPlaying(false) },
	})
	return s
}

// OnChange registers fn to receive every state change. The returned func unregisters it.
func (s *Synchronizer) OnChange(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// State returns the current snapshot.
func (s *Synchronizer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Synchronizer) ActiveIndex() int {
	return s.State().ActiveIndex
}

// ActiveSegment returns the segment under the playhead, if any.
func (s *Synchronizer) ActiveSegment() (model.Segment, bool) {
	_, seg := s.Snapshot()
	if seg == nil {
		return model.Segment{}, false
	}
	return *seg, true
}

// Snapshot returns the state together with the segment at its ActiveIndex,
// read under one lock. The segment is nil when nothing is active.
func (s *Synchronizer) Snapshot() (State, *model.Segment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.ActiveIndex < 0 {
		return s.state, nil
	}
	seg := s.segments[s.state.ActiveIndex]
	return s.state, &seg
}

// Segments returns a copy of the segment list in start order.
func (s *Synchronizer) Segments() []model.Segment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Segment, len(s.segments))
	copy(out, s.segments)
	return out
}

// SetSource loads url into the engine and resets playback to paused at 0.
// Duration stays 0 until the engine reports metadata.
func (s *Synchronizer) SetSource(url string) error {
	if err := s.engine.Load(url); err != nil {
		return errors.Wrap(err, "load audio source")
	}
	s.update(func(st *State) {
		st.Source = url
		st.CurrentTime = 0
		st.Duration = 0
		st.Playing = false
		st.ActiveIndex = activeIndex(s.segments, 0, -1)
	})
	return nil
}

// SetSegments replaces the transcript. The list is copied and stable-sorted by start.
func (s *Synchronizer) SetSegments(segments []model.Segment) {
	sorted := (&model.TranscriptionResult{Segments: segments}).SortedSegments()
	s.update(func(st *State) {
		s.segments = sorted
		st.Segments = len(sorted)
		st.ActiveIndex = activeIndex(sorted, st.CurrentTime, -1)
	})
}

// OnTimeUpdate records a new playback position and re-derives the active segment.
func (s *Synchronizer) OnTimeUpdate(seconds float64) {
	if math.IsNaN(seconds) {
		return
	}
	s.update(func(st *State) {
		st.CurrentTime = seconds
		st.ActiveIndex = activeIndex(s.segments, seconds, st.ActiveIndex)
	})
}

// OnLoadedMetadata records the duration of the current source.
func (s *Synchronizer) OnLoadedMetadata(duration float64) {
	if math.IsNaN(duration) || math.IsInf(duration, 0) || duration < 0 {
		s.logger.Warn("ignoring invalid media duration", zap.Float64("duration", duration))
		return
	}
	s.update(func(st *State) { st.Duration = duration })
}

// SelectSegment seeks to the start of segment i.
func (s *Synchronizer) SelectSegment(i int) error {
	s.mu.Lock()
	n := len(s.segments)
	if i < 0 || i >= n {
		s.mu.Unlock()
		if n == 0 {
			return errors.NotFound("segment", "transcript is empty")
		}
		return errors.OutOfRange("segment index", 0, n-1)
	}
	start := s.segments[i].Start
	s.mu.Unlock()

	return s.seekTo(math.Max(start, 0))
}

// TogglePlay switches between playing and paused.
func (s *Synchronizer) TogglePlay() error {
	st := s.State()
	if st.Source == "" {
		return ErrNoSource
	}
	if st.Playing {
		if err := s.engine.Pause(); err != nil {
			return errors.Wrap(err, "pause")
		}
		s.setPlaying(false)
		return nil
	}
	if err := s.engine.Play(); err != nil {
		return errors.Wrap(err, "play")
	}
	s.setPlaying(true)
	return nil
}

// Seek moves playback to seconds, clamped to [0, duration] once the duration is known.
func (s *Synchronizer) Seek(seconds float64) error {
	if math.IsNaN(seconds) {
		return errors.New("seek position is not a number")
	}
	st := s.State()
	return s.seekTo(clamp(seconds, st.Duration))
}

// Skip moves playback by delta seconds, either direction.
func (s *Synchronizer) Skip(delta float64) error {
	return s.Seek(s.State().CurrentTime + delta)
}

func (s *Synchronizer) seekTo(seconds float64) error {
	if s.State().Source == "" {
		return ErrNoSource
	}
	if err := s.engine.Seek(seconds); err != nil {
		return errors.Wrap(err, "seek")
	}
	s.OnTimeUpdate(seconds)
	return nil
}

// SetVolume sets the volume, clamped to [0, 1] in steps of 0.01. Zero mutes.
func (s *Synchronizer) SetVolume(v float64) error {
	if math.IsNaN(v) {
		return errors.New("volume is not a number")
	}
	v = math.Round(lo.Clamp(v, 0, 1)*100) / 100
	muted := v == 0
	if err := s.engine.SetVolume(v, muted); err != nil {
		return errors.Wrap(err, "set volume")
	}
	s.update(func(st *State) {
		st.Volume = v
		st.Muted = muted
		if v > 0 {
			s.lastVolume = v
		}
	})
	return nil
}

// ToggleMute mutes, or unmutes back to the last audible volume.
func (s *Synchronizer) ToggleMute() error {
	s.mu.Lock()
	volume, muted := s.state.Volume, !s.state.Muted
	if !muted && volume == 0 {
		volume = s.lastVolume
	}
	s.mu.Unlock()

	if err := s.engine.SetVolume(volume, muted); err != nil {
		return errors.Wrap(err, "set mute")
	}
	s.update(func(st *State) {
		st.Volume = volume
		st.Muted = muted
	})
	return nil
}

func (s *Synchronizer) setPlaying(playing bool) {
	s.update(func(st *State) { st.Playing = playing })
}

// update applies fn under the lock and notifies listeners after releasing it.
func (s *Synchronizer) update(fn func(st *State)) {
	s.mu.Lock()
	prevActive := s.state.ActiveIndex
	fn(&s.state)
	snapshot := s.state
	listeners := make([]func(State), 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	if snapshot.ActiveIndex != prevActive {
		s.logger.Debug("active segment changed",
			zap.Int("from", prevActive),
			zap.Int("to", snapshot.ActiveIndex),
			zap.Float64("time", snapshot.CurrentTime),
		)
	}
	for _, l := range listeners {
		l(snapshot)
	}
}

// clamp bounds seconds to [0, duration]. An unknown duration only floors it.
func clamp(seconds, duration float64) float64 {
	if duration <= 0 {
		return math.Max(seconds, 0)
	}
	return lo.Clamp(seconds, 0, duration)
}
