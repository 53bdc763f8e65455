// Package controller owns the lifecycle of a single transcription request.
package controller

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"whisper-sync/internal/app/api"
	"whisper-sync/internal/app/audio"
	"whisper-sync/internal/app/errors"
	"whisper-sync/internal/app/model"
)

// DefaultMaxBytes is the transcription service's upload ceiling.
const DefaultMaxBytes int64 = 25 * 1024 * 1024

// State is the request lifecycle: idle -> loading -> success | error.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateError   State = "error"
)

// Snapshot is a point-in-time copy of the controller state.
// Result is shared and must be treated as read-only.
type Snapshot struct {
	State    State                      `json:"state"`
	SourceID string                     `json:"source_id,omitempty"`
	Result   *model.TranscriptionResult `json:"result,omitempty"`
	Kind     errors.Kind                `json:"kind,omitempty"`
	Message  string                     `json:"message,omitempty"`
}

// Controller submits audio to a Transcriber and tracks the outcome.
// At most one request is live: a new submission cancels the previous one and
// the previous response, if it still arrives, is dropped.
type Controller struct {
	transcriber api.Transcriber
	maxBytes    int64
	logger      *zap.Logger
	metrics     *Metrics

	mu     sync.Mutex
	snap   Snapshot
	gen    uint64
	epoch  uint64 // bumped by Cancel and Reset only
	cancel context.CancelFunc
}

type Option func(*Controller)

func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

func WithMaxBytes(n int64) Option {
	return func(c *Controller) { c.maxBytes = n }
}

func WithMetrics(m *Metrics) Option {
	return func(c *Controller) { c.metrics = m }
}

func New(transcriber api.Transcriber, opts ...Option) *Controller {
	c := &Controller{
		transcriber: transcriber,
		maxBytes:    DefaultMaxBytes,
		logger:      zap.NewNop(),
		snap:        Snapshot{State: StateIdle},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ticket pins a submission to the moment it was reserved. A Cancel or Reset
// after that invalidates it. Later submissions do not: among valid tickets the
// last one submitted supersedes the others, as with Submit.
type Ticket struct {
	epoch uint64
}

// Reserve returns a ticket for a later SubmitReserved. Callers take it while
// they still hold whatever lock guards their choice of source.
func (c *Controller) Reserve() Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Ticket{epoch: c.epoch}
}

// Submit transcribes src with credential and blocks until the outcome is known.
//
// Missing input and oversized payloads fail before any network call. A
// submission that is superseded while in flight returns an error of kind
// errors.KindSuperseded and leaves the state to the newer request.
func (c *Controller) Submit(ctx context.Context, src *audio.Source, credential string) (*model.TranscriptionResult, error) {
	return c.submit(ctx, nil, src, credential)
}

// SubmitReserved is Submit for a ticket taken earlier. If the controller was
// cancelled or reset since Reserve, it returns errors.ErrSuperseded without
// touching the state or calling the transcriber.
func (c *Controller) SubmitReserved(ctx context.Context, ticket Ticket, src *audio.Source, credential string) (*model.TranscriptionResult, error) {
	return c.submit(ctx, &ticket, src, credential)
}

func (c *Controller) submit(ctx context.Context, ticket *Ticket, src *audio.Source, credential string) (*model.TranscriptionResult, error) {
	invalid := c.Validate(src, credential)

	c.mu.Lock()
	if ticket != nil && ticket.epoch != c.epoch {
		c.mu.Unlock()
		c.metrics.count(outcomeSuperseded)
		c.logger.Info("dropping transcription reserved before a newer request", zap.String("source_id", sourceID(src)))
		return nil, errors.ErrSuperseded
	}
	if invalid != nil {
		c.rejectLocked(src, invalid)
		c.mu.Unlock()
		return nil, invalid
	}
	if c.cancel != nil {
		c.cancel()
	}
	c.gen++
	gen := c.gen
	reqCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.snap = Snapshot{State: StateLoading, SourceID: src.ID}
	c.mu.Unlock()
	defer cancel()

	c.logger.Info("submitting transcription",
		zap.String("source_id", src.ID),
		zap.String("name", src.Name),
		zap.Int64("size", src.Size),
	)

	start := time.Now()
	result, err := c.transcriber.Transcribe(reqCtx, src, credential)
	elapsed := time.Since(start)
	if err == nil && result == nil {
		err = errors.ErrResponseInvalid
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		c.metrics.observe(outcomeSuperseded, elapsed)
		c.logger.Info("discarding superseded transcription response", zap.String("source_id", src.ID))
		return nil, errors.ErrSuperseded
	}
	c.cancel = nil

	if err != nil {
		c.metrics.observe(outcomeFailed, elapsed)
		c.logger.Error("transcription failed",
			zap.String("source_id", src.ID),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		c.snap = Snapshot{
			State:    StateError,
			SourceID: src.ID,
			Kind:     errors.KindRequestFailed,
			Message:  errors.KindRequestFailed.UserMessage(),
		}
		return nil, errors.WrapKind(err, errors.KindRequestFailed, "transcription request failed")
	}

	c.metrics.observe(outcomeSuccess, elapsed)
	c.logger.Info("transcription completed",
		zap.String("source_id", src.ID),
		zap.Int("segments", len(result.Segments)),
		zap.Duration("elapsed", elapsed),
	)
	c.snap = Snapshot{State: StateSuccess, SourceID: src.ID, Result: result}
	return result, nil
}

// Validate reports the error Submit would fail with before any network call.
func (c *Controller) Validate(src *audio.Source, credential string) error {
	if src.Empty() {
		return errors.ErrMissingAudio
	}
	if credential == "" {
		return errors.ErrMissingCredential
	}
	if c.maxBytes > 0 && src.Size > c.maxBytes {
		return errors.ErrPayloadTooLarge
	}
	return nil
}

// rejectLocked records a pre-flight failure. c.mu must be held. A request
// already in flight keeps its loading state.
func (c *Controller) rejectLocked(src *audio.Source, err error) {
	kind := errors.KindOf(err)
	if kind == errors.KindPayloadTooLarge {
		c.metrics.count(outcomePayloadTooLarge)
	} else {
		c.metrics.count(outcomeMissingInput)
	}
	c.logger.Warn("transcription rejected before upload", zap.Error(err))

	if c.snap.State == StateLoading {
		return
	}
	c.snap = Snapshot{State: StateError, SourceID: sourceID(src), Kind: kind, Message: kind.UserMessage()}
}

func sourceID(src *audio.Source) string {
	if src == nil {
		return ""
	}
	return src.ID
}

// Cancel abandons the in-flight request, if any, and returns to idle.
// Completed results and errors are left alone.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.abortLocked()
}

// Reset cancels any request and forgets the last outcome.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.abortLocked()
	c.snap = Snapshot{State: StateIdle}
}

func (c *Controller) abortLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.gen++
	c.epoch++
	if c.snap.State == StateLoading {
		c.snap = Snapshot{State: StateIdle}
	}
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// IsLoading reports whether a request is in flight.
func (c *Controller) IsLoading() bool {
	return c.Snapshot().State == StateLoading
}
