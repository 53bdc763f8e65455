// Package player keeps playback position and the active transcript segment in step.
package player

// Events are the notifications a playback engine delivers to its subscriber.
// Any field may be nil. Engines must not hold their own locks while calling them.
type Events struct {
	OnTimeUpdate     func(seconds float64)
	OnLoadedMetadata func(duration float64)
	OnPlay           func()
	OnPause          func()
}

// Engine is a playback backend: a browser media element on the far side of the
// HTTP API, the headless ClockEngine, or a fake in tests.
type Engine interface {
	Load(url string) error
	Play() error
	Pause() error
	Seek(seconds float64) error
	SetVolume(volume float64, muted bool) error
	Subscribe(events Events)
}
