package player

import (
	"sync"

	"whisper-sync/internal/app/errors"
)

// fakeEngine records commands and, like a media element, echoes them back as events.
type fakeEngine struct {
	mu      sync.Mutex
	events  Events
	loaded  []string
	seeks   []float64
	volume  float64
	muted   bool
	playing bool
	failOn  string
}

func (f *fakeEngine) Subscribe(ev Events) { f.events = ev }

func (f *fakeEngine) fail(op string) error {
	if f.failOn == op {
		return errors.Newf("%s failed", op)
	}
	return nil
}

func (f *fakeEngine) Load(url string) error {
	if err := f.fail("load"); err != nil {
		return err
	}
	f.mu.Lock()
	f.loaded = append(f.loaded, url)
	f.playing = false
	f.mu.Unlock()
	return nil
}

func (f *fakeEngine) Play() error {
	if err := f.fail("play"); err != nil {
		return err
	}
	f.mu.Lock()
	f.playing = true
	f.mu.Unlock()
	if f.events.OnPlay != nil {
		f.events.OnPlay()
	}
	return nil
}

func (f *fakeEngine) Pause() error {
	f.mu.Lock()
	f.playing = false
	f.mu.Unlock()
	if f.events.OnPause != nil {
		f.events.OnPause()
	}
	return nil
}

func (f *fakeEngine) Seek(t float64) error {
	if err := f.fail("seek"); err != nil {
		return err
	}
	f.mu.Lock()
	f.seeks = append(f.seeks, t)
	f.mu.Unlock()
	if f.events.OnTimeUpdate != nil {
		f.events.OnTimeUpdate(t)
	}
	return nil
}

func (f *fakeEngine) SetVolume(v float64, muted bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.volume, f.muted = v, muted
	return nil
}

// emitMetadata simulates the asynchronous loadedmetadata notification.
func (f *fakeEngine) emitMetadata(d float64) {
	f.events.OnLoadedMetadata(d)
}

func (f *fakeEngine) lastSeek() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.seeks) == 0 {
		return -1
	}
	return f.seeks[len(f.seeks)-1]
}
