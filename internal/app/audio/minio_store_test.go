package audio

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whisper-sync/internal/app/errors"
)

type s3Request struct {
	Method   string
	Path     string
	Header   http.Header
	BodySize int
}

// s3Stub answers the handful of S3 calls the store makes: bucket location,
// bucket HEAD and create, object PUT and DELETE.
type s3Stub struct {
	mu       sync.Mutex
	requests []s3Request
	bucket   bool
	objects  map[string]bool
	server   *httptest.Server
}

func newS3Stub(t *testing.T, bucketExists bool) *s3Stub {
	t.Helper()
	stub := &s3Stub{bucket: bucketExists, objects: make(map[string]bool)}
	stub.server = httptest.NewServer(http.HandlerFunc(stub.serve))
	t.Cleanup(stub.server.Close)
	return stub
}

func (s *s3Stub) endpoint() string {
	return strings.TrimPrefix(s.server.URL, "http://")
}

func (s *s3Stub) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, s3Request{Method: r.Method, Path: r.URL.Path, Header: r.Header.Clone(), BodySize: len(body)})

	if r.URL.Query().Has("location") {
		w.Header().Set("Content-Type", "application/xml")
		_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><LocationConstraint xmlns="http://s3.amazonaws.com/doc/2006-03-01/">us-east-1</LocationConstraint>`)
		return
	}

	parts := strings.SplitN(strings.Trim(r.URL.Path, "/"), "/", 2)
	if len(parts) == 1 {
		switch r.Method {
		case http.MethodHead:
			if !s.bucket {
				w.WriteHeader(http.StatusNotFound)
				return
			}
		case http.MethodPut:
			s.bucket = true
		}
		w.WriteHeader(http.StatusOK)
		return
	}

	switch r.Method {
	case http.MethodPut:
		s.objects[parts[1]] = true
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		delete(s.objects, parts[1])
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *s3Stub) find(method, path string) (s3Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.requests {
		if r.Method == method && r.Path == path {
			return r, true
		}
	}
	return s3Request{}, false
}

func (s *s3Stub) hasObject(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.objects[key]
}

func newTestMinioStore(t *testing.T, stub *s3Stub) *MinioStore {
	t.Helper()
	store, err := NewMinioStore(context.Background(), MinioConfig{
		Endpoint:  stub.endpoint(),
		AccessKey: "test-access",
		SecretKey: "test-secret",
		Bucket:    "media",
		URLExpiry: 10 * time.Minute,
	}, nil)
	require.NoError(t, err)
	return store
}

func TestMinioStore_AcquireAndRelease(t *testing.T) {
	stub := newS3Stub(t, true)
	store := newTestMinioStore(t, stub)
	ctx := context.Background()

	src := NewSourceFromBytes("clip.wav", "", wavHeader)
	key := "audio/" + src.ID + ".wav"

	u, err := store.Acquire(ctx, src)
	require.NoError(t, err)

	put, ok := stub.find(http.MethodPut, "/media/"+key)
	require.True(t, ok, "object uploaded under audio/<id><ext>")
	assert.Equal(t, "audio/wav", put.Header.Get("Content-Type"))
	assert.Equal(t, "clip.wav", put.Header.Get("X-Amz-Meta-Original-Name"))
	assert.True(t, stub.hasObject(key))

	assert.True(t, strings.HasPrefix(u, stub.server.URL+"/media/"+key+"?"), u)
	assert.Contains(t, u, "X-Amz-Signature=")
	assert.Contains(t, u, "X-Amz-Expires=600")

	require.NoError(t, store.Release(ctx, u))
	_, ok = stub.find(http.MethodDelete, "/media/"+key)
	assert.True(t, ok, "release removes the object")
	assert.False(t, stub.hasObject(key))

	require.NoError(t, store.Release(ctx, u), "second release is a no-op")
	require.NoError(t, store.Release(ctx, "http://elsewhere/unknown"))
}

func TestMinioStore_CreatesMissingBucket(t *testing.T) {
	stub := newS3Stub(t, false)
	newTestMinioStore(t, stub)

	_, ok := stub.find(http.MethodPut, "/media/")
	if !ok {
		_, ok = stub.find(http.MethodPut, "/media")
	}
	assert.True(t, ok, "bucket created")
}

func TestMinioStore_EmptySource(t *testing.T) {
	stub := newS3Stub(t, true)
	store := newTestMinioStore(t, stub)

	_, err := store.Acquire(context.Background(), nil)
	assert.ErrorIs(t, err, errors.ErrMissingAudio)
	assert.Empty(t, stub.objects, "nothing uploaded")
}
