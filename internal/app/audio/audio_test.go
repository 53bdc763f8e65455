package audio

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whisper-sync/internal/app/errors"
)

// minimal PCM WAV header
var wavHeader = []byte{
	0x52, 0x49, 0x46, 0x46, // "RIFF"
	0x24, 0x00, 0x00, 0x00,
	0x57, 0x41, 0x56, 0x45, // "WAVE"
	0x66, 0x6D, 0x74, 0x20, // "fmt "
	0x10, 0x00, 0x00, 0x00,
	0x01, 0x00,
	0x01, 0x00,
	0x80, 0x3E, 0x00, 0x00,
	0x00, 0x7D, 0x00, 0x00,
	0x02, 0x00,
	0x10, 0x00,
	0x64, 0x61, 0x74, 0x61, // "data"
	0x00, 0x00, 0x00, 0x00,
}

func TestNewSourceFromBytes(t *testing.T) {
	src := NewSourceFromBytes("clip.wav", "", wavHeader)

	assert.NotEmpty(t, src.ID)
	assert.Equal(t, "clip.wav", src.Name)
	assert.Equal(t, int64(len(wavHeader)), src.Size)
	assert.Equal(t, "audio/wav", src.MIMEType)
	assert.True(t, src.IsAudio())
	assert.False(t, src.Empty())

	rc, err := src.Open()
	require.NoError(t, err)
	defer rc.Close()
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, wavHeader, got)
}

func TestNewSourceFromBytes_DeclaredTypeFallback(t *testing.T) {
	src := NewSourceFromBytes("x.bin", "audio/mpeg", []byte{0x00, 0x01, 0x02, 0x03})
	assert.Equal(t, "audio/mpeg", src.MIMEType)

	unknown := NewSourceFromBytes("x.bin", "", []byte{0x00, 0x01, 0x02, 0x03})
	assert.Equal(t, "application/octet-stream", unknown.MIMEType)
	assert.False(t, unknown.IsAudio())
}

func TestNewSourceFromFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "speech.wav")
	require.NoError(t, os.WriteFile(p, wavHeader, 0o644))

	src, err := NewSourceFromFile(p)
	require.NoError(t, err)
	assert.Equal(t, "speech.wav", src.Name)
	assert.Equal(t, p, src.Path())
	assert.Equal(t, int64(len(wavHeader)), src.Size)

	_, err = NewSourceFromFile(filepath.Join(dir, "missing.wav"))
	assert.Error(t, err)

	_, err = NewSourceFromFile(dir)
	assert.Error(t, err)
}

func TestSourceEmpty(t *testing.T) {
	var nilSrc *Source
	assert.True(t, nilSrc.Empty())
	assert.True(t, NewSourceFromBytes("empty.wav", "audio/wav", nil).Empty())

	_, err := nilSrc.Open()
	assert.ErrorIs(t, err, errors.ErrMissingAudio)
}

func TestMemoryStore_AcquireRelease(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore("/media/")
	src := NewSourceFromBytes("a.wav", "", wavHeader)

	u, err := store.Acquire(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, "/media/"+src.ID, u)
	assert.Equal(t, 1, store.Len())

	again, err := store.Acquire(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, u, again, "url is derived from the source id")

	got, err := store.Lookup(src.ID)
	require.NoError(t, err)
	assert.Same(t, src, got)

	resolved, ok := store.Resolve(u)
	assert.True(t, ok)
	assert.Same(t, src, resolved)
	_, ok = store.Resolve("/elsewhere/" + src.ID)
	assert.False(t, ok)

	require.NoError(t, store.Release(ctx, u))
	assert.Equal(t, 0, store.Len())
	_, err = store.Lookup(src.ID)
	assert.ErrorIs(t, err, errors.ErrMediaNotFound)

	// releasing twice is harmless
	assert.NoError(t, store.Release(ctx, u))
}

func TestMemoryStore_RejectsEmpty(t *testing.T) {
	_, err := NewMemoryStore("").Acquire(context.Background(), nil)
	assert.ErrorIs(t, err, errors.ErrMissingAudio)
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a.wav")
	require.NoError(t, os.WriteFile(p, wavHeader, 0o644))
	src, err := NewSourceFromFile(p)
	require.NoError(t, err)

	u, err := FileStore{}.Acquire(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, p, u)

	_, err = FileStore{}.Acquire(context.Background(), NewSourceFromBytes("b.wav", "", wavHeader))
	assert.Error(t, err)
}

func TestParseProbeDuration(t *testing.T) {
	tests := []struct {
		name      string
		output    string
		want      float64
		expectErr bool
	}{
		{"integer seconds", `{"format":{"duration":"30"}}`, 30, false},
		{"decimal seconds", `{"format":{"duration":"45.678000"}}`, 45.678, false},
		{"whitespace", `{"format":{"duration":"  120.5 "}}`, 120.5, false},
		{"missing duration", `{"format":{}}`, 0, true},
		{"not a number", `{"format":{"duration":"N/A"}}`, 0, true},
		{"negative", `{"format":{"duration":"-5.0"}}`, 0, true},
		{"invalid json", `{"format":`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseProbeDuration([]byte(tt.output))
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestProbeSource_Empty(t *testing.T) {
	_, err := ProbeSource(context.Background(), nil)
	assert.ErrorIs(t, err, errors.ErrMissingAudio)

	loader := DurationLoader(NewMemoryStore(""))
	_, err = loader(context.Background(), "")
	assert.Error(t, err)
}
