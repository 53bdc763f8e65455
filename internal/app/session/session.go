// Package session holds the top-level application state: the credential, the
// selected audio source, the transcript for that source and the player.
package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"whisper-sync/internal/app/audio"
	"whisper-sync/internal/app/controller"
	"whisper-sync/internal/app/errors"
	"whisper-sync/internal/app/model"
	"whisper-sync/internal/app/player"
	"whisper-sync/internal/app/settings"
)

// Session wires the controller and the synchronizer to one selected source.
//
// Lock order is session before player. Player listeners must not call back
// into the Session.
type Session struct {
	credentials *settings.CredentialService
	media       audio.MediaStore
	controller  *controller.Controller
	player      *player.Synchronizer
	logger      *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	source    *audio.Source
	sourceURL string
	result    *model.TranscriptionResult
	selection uint64
	closed    bool
}

func New(
	credentials *settings.CredentialService,
	media audio.MediaStore,
	ctrl *controller.Controller,
	synchronizer *player.Synchronizer,
	logger *zap.Logger,
) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		credentials: credentials,
		media:       media,
		controller:  ctrl,
		player:      synchronizer,
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
	}
}

func (s *Session) Controller() *controller.Controller { return s.controller }

func (s *Session) Player() *player.Synchronizer { return s.player }

// Credential returns the stored API key, or "" when none is set.
func (s *Session) Credential(ctx context.Context) (string, error) {
	return s.credentials.Get(ctx)
}

// SetCredential stores key for this and later runs.
func (s *Session) SetCredential(ctx context.Context, key string) error {
	return s.credentials.Set(ctx, key)
}

func (s *Session) ClearCredential(ctx context.Context) error {
	return s.credentials.Clear(ctx)
}

// Source returns the selected source and its playable URL.
func (s *Session) Source() (*audio.Source, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source, s.sourceURL
}

// Result returns the transcript of the selected source, or nil.
func (s *Session) Result() *model.TranscriptionResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// SelectAudio makes src the current source. Any transcription still in
// flight is abandoned, the transcript is cleared and the previous URL released.
func (s *Session) SelectAudio(ctx context.Context, src *audio.Source) (string, error) {
	if src.Empty() {
		return "", errors.ErrMissingAudio
	}
	url, err := s.media.Acquire(ctx, src)
	if err != nil {
		return "", errors.Wrap(err, "acquire media url")
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = s.media.Release(ctx, url)
		return "", errors.New("session closed")
	}
	previous := s.sourceURL
	s.selection++
	s.controller.Reset()
	s.source = src
	s.sourceURL = url
	s.result = nil
	s.player.SetSegments(nil)
	loadErr := s.player.SetSource(url)
	s.mu.Unlock()

	if previous != "" && previous != url {
		s.release(ctx, previous)
	}
	if loadErr != nil {
		return url, loadErr
	}

	s.logger.Info("audio selected",
		zap.String("source_id", src.ID),
		zap.String("name", src.Name),
		zap.String("mime_type", src.MIMEType),
		zap.Int64("size", src.Size),
	)
	return url, nil
}

// Transcribe submits the current source with the stored credential and waits.
// On success the transcript is handed to the player.
func (s *Session) Transcribe(ctx context.Context) (*model.TranscriptionResult, error) {
	req, err := s.prepare(ctx)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, req)
}

// StartTranscription validates synchronously and then transcribes in the
// background. Progress is visible through Controller().Snapshot().
func (s *Session) StartTranscription(ctx context.Context) error {
	req, err := s.prepare(ctx)
	if err != nil {
		return err
	}
	if err := s.controller.Validate(req.source, req.credential); err != nil {
		_, err = s.controller.SubmitReserved(ctx, req.ticket, req.source, req.credential)
		return err
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if _, err := s.run(s.ctx, req); err != nil && !errors.IsKind(err, errors.KindSuperseded) {
			s.logger.Debug("background transcription ended with error", zap.Error(err))
		}
	}()
	return nil
}

// CancelTranscription abandons the in-flight request, if any.
func (s *Session) CancelTranscription() {
	s.controller.Cancel()
}

// request is one transcription bound to the source that was current when it
// was prepared.
type request struct {
	source     *audio.Source
	selection  uint64
	credential string
	ticket     controller.Ticket
}

// prepare captures the current source and reserves a controller ticket under
// the same lock SelectAudio resets the controller under, so a selection made
// before the request starts still supersedes it.
func (s *Session) prepare(ctx context.Context) (request, error) {
	credential, err := s.credentials.Get(ctx)
	if err != nil {
		return request{}, errors.Wrap(err, "read credential")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return request{}, errors.New("session closed")
	}
	return request{
		source:     s.source,
		selection:  s.selection,
		credential: credential,
		ticket:     s.controller.Reserve(),
	}, nil
}

func (s *Session) run(ctx context.Context, req request) (*model.TranscriptionResult, error) {
	result, err := s.controller.SubmitReserved(ctx, req.ticket, req.source, req.credential)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if req.selection != s.selection {
		s.logger.Info("dropping transcript for a replaced source", zap.String("source_id", req.source.ID))
		return nil, errors.ErrSuperseded
	}
	s.result = result
	s.player.SetSegments(result.Segments)
	return result, nil
}

// Close cancels background work and releases the current media URL.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	url := s.sourceURL
	s.sourceURL = ""
	s.source = nil
	s.mu.Unlock()

	s.cancel()
	s.controller.Reset()
	s.wg.Wait()

	if url != "" {
		s.release(context.Background(), url)
	}
	return nil
}

func (s *Session) release(ctx context.Context, url string) {
	if err := s.media.Release(ctx, url); err != nil {
		s.logger.Warn("failed to release media url", zap.String("url", url), zap.Error(err))
	}
}
