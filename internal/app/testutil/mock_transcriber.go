package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"whisper-sync/internal/app/api"
	"whisper-sync/internal/app/audio"
	"whisper-sync/internal/app/model"
)

// MockTranscriber is a testify/mock implementation of api.Transcriber.
// Set expectations with On("Transcribe", ...) or the Expect helpers.
type MockTranscriber struct {
	mock.Mock

	mu          sync.RWMutex
	callHistory []TranscriptionCall
}

// TranscriptionCall records one call for later inspection.
type TranscriptionCall struct {
	SourceID   string
	SourceName string
	Credential string
	Timestamp  time.Time
}

func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{}
}

// Transcribe implements api.Transcriber
func (m *MockTranscriber) Transcribe(ctx context.Context, src *audio.Source, credential string) (*model.TranscriptionResult, error) {
	call := TranscriptionCall{Credential: credential, Timestamp: time.Now()}
	if src != nil {
		call.SourceID = src.ID
		call.SourceName = src.Name
	}
	m.mu.Lock()
	m.callHistory = append(m.callHistory, call)
	m.mu.Unlock()

	args := m.Called(ctx, src, credential)
	var result *model.TranscriptionResult
	if v := args.Get(0); v != nil {
		result = v.(*model.TranscriptionResult)
	}
	return result, args.Error(1)
}

// ExpectTranscribe expects a call with any context and source and the given credential.
func (m *MockTranscriber) ExpectTranscribe(credential string, result *model.TranscriptionResult, err error) *mock.Call {
	return m.On("Transcribe", mock.Anything, mock.Anything, credential).Return(result, err)
}

func (m *MockTranscriber) GetCallCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.callHistory)
}

func (m *MockTranscriber) GetCallHistory() []TranscriptionCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	history := make([]TranscriptionCall, len(m.callHistory))
	copy(history, m.callHistory)
	return history
}

// GetLastCall returns the most recent call, or nil.
func (m *MockTranscriber) GetLastCall() *TranscriptionCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.callHistory) == 0 {
		return nil
	}
	last := m.callHistory[len(m.callHistory)-1]
	return &last
}

// PendingCall is a Transcribe call parked by a GatedTranscriber.
type PendingCall struct {
	Ctx        context.Context
	Source     *audio.Source
	Credential string

	reply chan gatedReply
}

type gatedReply struct {
	result *model.TranscriptionResult
	err    error
}

// Respond releases the parked call. The call returns exactly what is given
// here even if its context was cancelled, which models a late response.
func (p *PendingCall) Respond(result *model.TranscriptionResult, err error) {
	p.reply <- gatedReply{result: result, err: err}
}

// GatedTranscriber blocks every call until the test responds to it.
type GatedTranscriber struct {
	calls chan *PendingCall
}

func NewGatedTranscriber() *GatedTranscriber {
	return &GatedTranscriber{calls: make(chan *PendingCall, 16)}
}

func (g *GatedTranscriber) Transcribe(ctx context.Context, src *audio.Source, credential string) (*model.TranscriptionResult, error) {
	p := &PendingCall{Ctx: ctx, Source: src, Credential: credential, reply: make(chan gatedReply, 1)}
	g.calls <- p
	r := <-p.reply
	return r.result, r.err
}

// Next waits for the next parked call.
func (g *GatedTranscriber) Next(t testing.TB) *PendingCall {
	t.Helper()
	select {
	case p := <-g.calls:
		return p
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a transcription call")
		return nil
	}
}

// AssertNoCall fails if a call is parked within d.
func (g *GatedTranscriber) AssertNoCall(t testing.TB, d time.Duration) {
	t.Helper()
	select {
	case p := <-g.calls:
		t.Fatalf("unexpected transcription call for %q", p.Source.Name)
	case <-time.After(d):
	}
}

var (
	_ api.Transcriber = (*MockTranscriber)(nil)
	_ api.Transcriber = (*GatedTranscriber)(nil)
)
