package whisper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oa "whisper-sync/internal/app/api/openai"
	"whisper-sync/internal/app/audio"
	"whisper-sync/internal/app/errors"
)

const verboseResponse = `{
  "task": "transcribe",
  "language": "english",
  "duration": 7.5,
  "text": "Hello world end",
  "segments": [
    {"id": 0, "seek": 0, "start": 0.0, "end": 2.5, "text": "Hello"},
    {"id": 1, "seek": 0, "start": 2.5, "end": 5.0, "text": "world"},
    {"id": 2, "seek": 0, "start": 5.0, "end": 7.5, "text": "end"}
  ]
}`

// Helper function to create an in-memory test source (WAV header only)
func newTestSource(name string) *audio.Source {
	wavHeader := []byte{
		0x52, 0x49, 0x46, 0x46, 0x24, 0x00, 0x00, 0x00,
		0x57, 0x41, 0x56, 0x45, 0x66, 0x6D, 0x74, 0x20,
		0x10, 0x00, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00,
		0x80, 0x3E, 0x00, 0x00, 0x00, 0x7D, 0x00, 0x00,
		0x02, 0x00, 0x10, 0x00, 0x64, 0x61, 0x74, 0x61,
		0x00, 0x00, 0x00, 0x00,
	}
	return audio.NewSourceFromBytes(name, "audio/wav", wavHeader)
}

func newTranscriber(serverURL string, cfg Config) *RemoteTranscriber {
	return NewRemoteTranscriber(cfg, oa.ClientOptions{BaseURL: serverURL + "/v1"}, nil)
}

// TestRemoteTranscriber_Transcribe tests the request shape and the response mapping
func TestRemoteTranscriber_Transcribe(t *testing.T) {
	tests := []struct {
		name          string
		mockResponse  string
		mockStatus    int
		expectError   bool
		errorContains string
		check         func(t *testing.T, segs int, text string)
	}{
		{
			name:         "verbose json with segments",
			mockResponse: verboseResponse,
			mockStatus:   http.StatusOK,
			check: func(t *testing.T, segs int, text string) {
				assert.Equal(t, 3, segs)
				assert.Equal(t, "Hello world end", text)
			},
		},
		{
			name:         "text only response becomes one segment",
			mockResponse: `{"text": "Hello, 世界! 🎵"}`,
			mockStatus:   http.StatusOK,
			check: func(t *testing.T, segs int, text string) {
				assert.Equal(t, 1, segs)
				assert.Equal(t, "Hello, 世界! 🎵", text)
			},
		},
		{
			name:         "empty transcription",
			mockResponse: `{"text": ""}`,
			mockStatus:   http.StatusOK,
			check: func(t *testing.T, segs int, text string) {
				assert.Equal(t, 0, segs)
				assert.Empty(t, text)
			},
		},
		{
			name:          "API error - unauthorized",
			mockResponse:  `{"error": {"message": "Invalid API key", "type": "invalid_request_error"}}`,
			mockStatus:    http.StatusUnauthorized,
			expectError:   true,
			errorContains: "401",
		},
		{
			name:          "API error - payload too large",
			mockResponse:  `{"error": {"message": "Maximum content size limit exceeded", "type": "invalid_request_error"}}`,
			mockStatus:    http.StatusRequestEntityTooLarge,
			expectError:   true,
			errorContains: "413",
		},
		{
			name:          "API error - rate limit",
			mockResponse:  `{"error": {"message": "Rate limit exceeded", "type": "rate_limit_error"}}`,
			mockStatus:    http.StatusTooManyRequests,
			expectError:   true,
			errorContains: "429",
		},
		{
			name:          "API error - server error",
			mockResponse:  `{"error": {"message": "Internal server error", "type": "server_error"}}`,
			mockStatus:    http.StatusInternalServerError,
			expectError:   true,
			errorContains: "500",
		},
		{
			name:        "network error",
			mockStatus:  0,
			expectError: true,
		},
		{
			name:         "malformed response",
			mockResponse: `{"text": "incomplete JSON`,
			mockStatus:   http.StatusOK,
			expectError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.mockStatus == 0 {
					hijacker, ok := w.(http.Hijacker)
					if ok {
						conn, _, _ := hijacker.Hijack()
						conn.Close()
						return
					}
				}

				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/v1/audio/transcriptions", r.URL.Path)
				assert.Equal(t, "Bearer sk-test-key", r.Header.Get("Authorization"))
				assert.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")

				assert.NoError(t, r.ParseMultipartForm(32<<20))
				assert.Equal(t, "whisper-1", r.FormValue("model"))
				assert.Equal(t, "verbose_json", r.FormValue("response_format"))

				file, header, err := r.FormFile("file")
				if assert.NoError(t, err) {
					defer file.Close()
					assert.Equal(t, "clip.wav", header.Filename)
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.mockStatus)
				if tt.mockResponse != "" {
					w.Write([]byte(tt.mockResponse))
				}
			}))
			defer server.Close()

			rt := newTranscriber(server.URL, Config{})
			result, err := rt.Transcribe(context.Background(), newTestSource("clip.wav"), "sk-test-key")

			if tt.expectError {
				require.Error(t, err)
				assert.True(t, errors.IsKind(err, errors.KindRequestFailed), "got %v", err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
				return
			}

			require.NoError(t, err)
			tt.check(t, len(result.Segments), result.Text)
			assert.Equal(t, "whisper-1", result.Model)
		})
	}
}

func TestRemoteTranscriber_SegmentMapping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(verboseResponse))
	}))
	defer server.Close()

	result, err := newTranscriber(server.URL, Config{Model: "whisper-1", Language: "en"}).
		Transcribe(context.Background(), newTestSource("clip.wav"), "sk-test-key")
	require.NoError(t, err)

	require.Len(t, result.Segments, 3)
	assert.Equal(t, 1, result.Segments[1].ID)
	assert.InDelta(t, 2.5, result.Segments[1].Start, 1e-9)
	assert.InDelta(t, 5.0, result.Segments[1].End, 1e-9)
	assert.Equal(t, "world", result.Segments[1].Text)
	assert.Equal(t, "english", result.Language)
	assert.InDelta(t, 7.5, result.Duration, 1e-9)
}

func TestRemoteTranscriber_MissingInput(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	rt := newTranscriber(server.URL, Config{})

	_, err := rt.Transcribe(context.Background(), nil, "sk-test-key")
	assert.True(t, errors.IsKind(err, errors.KindMissingInput))

	_, err = rt.Transcribe(context.Background(), newTestSource("clip.wav"), "")
	assert.True(t, errors.IsKind(err, errors.KindMissingInput))

	assert.Zero(t, atomic.LoadInt32(&calls))
}

// TestRemoteTranscriber_Timeout tests request timeout handling
func TestRemoteTranscriber_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte(`{"text": "Should timeout"}`))
	}))
	defer server.Close()

	rt := newTranscriber(server.URL, Config{Timeout: 50 * time.Millisecond})
	_, err := rt.Transcribe(context.Background(), newTestSource("clip.wav"), "sk-test-key")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "deadline exceeded") || strings.Contains(err.Error(), "timeout"),
		fmt.Sprintf("unexpected error: %v", err))
}

func TestRemoteTranscriber_ContextCancel(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := newTranscriber(server.URL, Config{}).Transcribe(ctx, newTestSource("clip.wav"), "sk-test-key")
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("transcription did not observe cancellation")
	}
}
