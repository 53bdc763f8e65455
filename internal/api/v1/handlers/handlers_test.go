package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"whisper-sync/internal/api/middleware"
	"whisper-sync/internal/api/v1/routes"
	"whisper-sync/internal/app/api"
	"whisper-sync/internal/app/audio"
	"whisper-sync/internal/app/controller"
	"whisper-sync/internal/app/player"
	"whisper-sync/internal/app/session"
	"whisper-sync/internal/app/settings"
	"whisper-sync/internal/app/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router  *gin.Engine
	session *session.Session
}

func newTestServer(t *testing.T, transcriber api.Transcriber, opts ...controller.Option) *testServer {
	t.Helper()
	media := audio.NewMemoryStore("/api/v1/media")
	engine := player.NewClockEngine(player.WithTickInterval(0))
	creds := settings.NewCredentialService(settings.NewMemoryStore())
	sess := session.New(creds, media, controller.New(transcriber, opts...), player.NewSynchronizer(engine, nil), nil)
	t.Cleanup(func() { _ = sess.Close() })

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.ErrorHandler(zap.NewNop()), middleware.BodyLimit(1024))
	routes.RegisterRoutes(router.Group("/api/v1"), &routes.Dependencies{
		Session:     sess,
		Media:       media,
		MaxBytes:    512,
		SkipSeconds: 10,
	})
	return &testServer{router: router, session: sess}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) upload(t *testing.T, name string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/audio", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) setKey(t *testing.T) {
	t.Helper()
	rec := s.do(t, http.MethodPut, "/api/v1/settings/credential", map[string]string{"api_key": testutil.TestAPIKey})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestCredentialLifecycle(t *testing.T) {
	s := newTestServer(t, testutil.NewMockTranscriber())

	rec := s.do(t, http.MethodGet, "/api/v1/settings/credential", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode(t, rec)["configured"])

	rec = s.do(t, http.MethodPut, "/api/v1/settings/credential", map[string]string{"api_key": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	s.setKey(t)
	rec = s.do(t, http.MethodGet, "/api/v1/settings/credential", nil)
	body := decode(t, rec)
	assert.Equal(t, true, body["configured"])
	assert.Equal(t, "sk-...cdef", body["masked"])
	assert.NotContains(t, rec.Body.String(), testutil.TestAPIKey)

	rec = s.do(t, http.MethodDelete, "/api/v1/settings/credential", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, false, decode(t, s.do(t, http.MethodGet, "/api/v1/settings/credential", nil))["configured"])
}

func TestSelectAudio(t *testing.T) {
	s := newTestServer(t, testutil.NewMockTranscriber())

	rec := s.do(t, http.MethodGet, "/api/v1/audio", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	data := testutil.AudioBytes(256)
	rec = s.upload(t, "talk.mp3", data)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "talk.mp3", body["name"])
	assert.Equal(t, "audio/mpeg", body["mime_type"])
	assert.Equal(t, true, body["transcribable"])
	url := body["url"].(string)
	require.True(t, strings.HasPrefix(url, "/api/v1/media/"), url)

	media := s.do(t, http.MethodGet, url, nil)
	require.Equal(t, http.StatusOK, media.Code)
	assert.Equal(t, data, media.Body.Bytes())

	req := httptest.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Range", "bytes=0-9")
	partial := httptest.NewRecorder()
	s.router.ServeHTTP(partial, req)
	assert.Equal(t, http.StatusPartialContent, partial.Code)
	assert.Equal(t, testutil.ID3Header, partial.Body.Bytes())

	assert.Equal(t, url, s.session.Player().State().Source)
}

func TestSelectAudio_Errors(t *testing.T) {
	s := newTestServer(t, testutil.NewMockTranscriber())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/audio", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.upload(t, "empty.mp3", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "missing_input", decode(t, rec)["code"])

	rec = s.upload(t, "huge.mp3", testutil.AudioBytes(4096))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/v1/media/nope", nil).Code)
}

func TestTranscribeAndDownload(t *testing.T) {
	transcriber := testutil.NewMockTranscriber()
	transcriber.ExpectTranscribe(testutil.TestAPIKey, testutil.ThreeSegmentResult(), nil).Once()
	s := newTestServer(t, transcriber)
	s.setKey(t)
	require.Equal(t, http.StatusCreated, s.upload(t, "talk.mp3", testutil.AudioBytes(128)).Code)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/v1/transcript", nil).Code)

	rec := s.do(t, http.MethodPost, "/api/v1/transcriptions?wait=true", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "success", decode(t, rec)["state"])

	rec = s.do(t, http.MethodGet, "/api/v1/transcript", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	segments := decode(t, rec)["segments"].([]interface{})
	require.Len(t, segments, 3)
	assert.Equal(t, "0:02", segments[1].(map[string]interface{})["start_time"])

	rec = s.do(t, http.MethodGet, "/api/v1/transcript/text", nil)
	assert.Equal(t, "Hello there.\nThis is a test.\nGoodbye.", rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/v1/transcript/download", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "transcription.txt")
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain"))
	assert.Contains(t, rec.Body.String(), "Goodbye.")

	rec = s.do(t, http.MethodGet, "/api/v1/transcript/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "transcription.xlsx")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")), "xlsx is a zip archive")

	transcriber.AssertExpectations(t)
}

func TestTranscribe_FailureKinds(t *testing.T) {
	t.Run("missing credential", func(t *testing.T) {
		transcriber := testutil.NewMockTranscriber()
		s := newTestServer(t, transcriber)
		require.Equal(t, http.StatusCreated, s.upload(t, "talk.mp3", testutil.AudioBytes(128)).Code)

		rec := s.do(t, http.MethodPost, "/api/v1/transcriptions", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "missing_input", decode(t, rec)["code"])
		assert.Equal(t, 0, transcriber.GetCallCount())

		state := decode(t, s.do(t, http.MethodGet, "/api/v1/transcriptions/state", nil))
		assert.Equal(t, "error", state["state"])
	})

	t.Run("missing audio", func(t *testing.T) {
		s := newTestServer(t, testutil.NewMockTranscriber())
		s.setKey(t)
		rec := s.do(t, http.MethodPost, "/api/v1/transcriptions?wait=true", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("payload too large", func(t *testing.T) {
		transcriber := testutil.NewMockTranscriber()
		s := newTestServer(t, transcriber, controller.WithMaxBytes(64))
		s.setKey(t)
		require.Equal(t, http.StatusCreated, s.upload(t, "talk.mp3", testutil.AudioBytes(128)).Code)

		rec := s.do(t, http.MethodPost, "/api/v1/transcriptions?wait=true", nil)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Equal(t, "payload_too_large", decode(t, rec)["code"])
		assert.Equal(t, 0, transcriber.GetCallCount())
	})

	t.Run("upstream failure hides cause", func(t *testing.T) {
		transcriber := testutil.NewMockTranscriber()
		transcriber.ExpectTranscribe(testutil.TestAPIKey, nil, stderrors.New("401 invalid_api_key"))
		s := newTestServer(t, transcriber)
		s.setKey(t)
		require.Equal(t, http.StatusCreated, s.upload(t, "talk.mp3", testutil.AudioBytes(128)).Code)

		rec := s.do(t, http.MethodPost, "/api/v1/transcriptions?wait=true", nil)
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.NotContains(t, rec.Body.String(), "invalid_api_key")
		assert.Equal(t, "Error during transcription. Please check your API key and try again.", decode(t, rec)["message"])
	})
}

func TestTranscribe_Background(t *testing.T) {
	gated := testutil.NewGatedTranscriber()
	s := newTestServer(t, gated)
	s.setKey(t)
	require.Equal(t, http.StatusCreated, s.upload(t, "talk.mp3", testutil.AudioBytes(128)).Code)

	rec := s.do(t, http.MethodPost, "/api/v1/transcriptions", nil)
	require.Equal(t, http.StatusAccepted, rec.Code)

	call := gated.Next(t)
	assert.Equal(t, "loading", decode(t, s.do(t, http.MethodGet, "/api/v1/transcriptions/state", nil))["state"])

	call.Respond(testutil.ThreeSegmentResult(), nil)
	assert.Eventually(t, func() bool {
		return decode(t, s.do(t, http.MethodGet, "/api/v1/transcriptions/state", nil))["state"] == "success"
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 3, s.session.Player().State().Segments)
}

func TestCancelTranscription(t *testing.T) {
	gated := testutil.NewGatedTranscriber()
	s := newTestServer(t, gated)
	s.setKey(t)
	require.Equal(t, http.StatusCreated, s.upload(t, "talk.mp3", testutil.AudioBytes(128)).Code)
	require.Equal(t, http.StatusAccepted, s.do(t, http.MethodPost, "/api/v1/transcriptions", nil).Code)
	call := gated.Next(t)

	rec := s.do(t, http.MethodDelete, "/api/v1/transcriptions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "idle", decode(t, rec)["state"])

	call.Respond(testutil.ThreeSegmentResult(), nil)
	time.Sleep(50 * time.Millisecond)
	assert.Nil(t, s.session.Result())
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/v1/transcript", nil).Code)
}

func TestPlayerControls(t *testing.T) {
	transcriber := testutil.NewMockTranscriber()
	transcriber.ExpectTranscribe(testutil.TestAPIKey, testutil.ThreeSegmentResult(), nil)
	s := newTestServer(t, transcriber)

	rec := s.do(t, http.MethodPost, "/api/v1/player/toggle", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	s.setKey(t)
	require.Equal(t, http.StatusCreated, s.upload(t, "talk.mp3", testutil.AudioBytes(128)).Code)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/v1/transcriptions?wait=true", nil).Code)

	body := decode(t, s.do(t, http.MethodGet, "/api/v1/player", nil))
	assert.Equal(t, float64(0), body["active_index"])
	assert.Equal(t, "0:00", body["current_label"])

	body = decode(t, s.do(t, http.MethodPost, "/api/v1/player/segments/1/select", nil))
	assert.Equal(t, float64(1), body["active_index"])
	assert.Equal(t, 2.5, body["current_time"])
	assert.Equal(t, "This is a test.", body["active_segment"].(map[string]interface{})["text"])

	body = decode(t, s.do(t, http.MethodPost, "/api/v1/player/time", map[string]float64{"time": 4.9}))
	assert.Equal(t, float64(1), body["active_index"])
	body = decode(t, s.do(t, http.MethodPost, "/api/v1/player/time", map[string]float64{"time": 5.0}))
	assert.Equal(t, float64(2), body["active_index"])

	body = decode(t, s.do(t, http.MethodPost, "/api/v1/player/skip", map[string]interface{}{"back": true}))
	assert.Equal(t, float64(0), body["current_time"])

	body = decode(t, s.do(t, http.MethodPost, "/api/v1/player/skip", nil))
	assert.Equal(t, float64(10), body["current_time"])

	body = decode(t, s.do(t, http.MethodPost, "/api/v1/player/metadata", map[string]float64{"duration": 8}))
	assert.Equal(t, "0:08", body["duration_label"])

	body = decode(t, s.do(t, http.MethodPost, "/api/v1/player/seek", map[string]float64{"time": 30}))
	assert.Equal(t, float64(8), body["current_time"])

	body = decode(t, s.do(t, http.MethodPost, "/api/v1/player/toggle", nil))
	assert.Equal(t, true, body["playing"])

	body = decode(t, s.do(t, http.MethodPost, "/api/v1/player/volume", map[string]float64{"volume": 0}))
	assert.Equal(t, true, body["muted"])

	rec = s.do(t, http.MethodPost, "/api/v1/player/volume", map[string]float64{"volume": 2})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPost, "/api/v1/player/segments/9/select", nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/v1/player/segments/x/select", nil).Code)
}

func TestSelectAudio_ClearsTranscript(t *testing.T) {
	transcriber := testutil.NewMockTranscriber()
	transcriber.ExpectTranscribe(testutil.TestAPIKey, testutil.ThreeSegmentResult(), nil)
	s := newTestServer(t, transcriber)
	s.setKey(t)
	require.Equal(t, http.StatusCreated, s.upload(t, "a.mp3", testutil.AudioBytes(128)).Code)
	_, err := s.session.Transcribe(context.Background())
	require.NoError(t, err)

	require.Equal(t, http.StatusCreated, s.upload(t, "b.mp3", testutil.AudioBytes(128)).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/v1/transcript", nil).Code)
	state := decode(t, s.do(t, http.MethodGet, "/api/v1/transcriptions/state", nil))
	assert.Equal(t, "idle", state["state"])
	assert.Equal(t, float64(-1), decode(t, s.do(t, http.MethodGet, "/api/v1/player", nil))["active_index"])
}
