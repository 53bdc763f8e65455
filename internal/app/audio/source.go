package audio

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"whisper-sync/internal/app/errors"
)

const octetStream = "application/octet-stream"

// Source is one user-selected audio blob.
// It is either held in memory or backed by a file on disk.
type Source struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MIMEType string `json:"mime_type"`
	Size     int64  `json:"size"`

	data []byte
	path string
}

// NewSourceFromBytes wraps an uploaded blob. declaredType is the MIME type the
// client sent, used only when sniffing is inconclusive.
func NewSourceFromBytes(name, declaredType string, data []byte) *Source {
	return &Source{
		ID:       uuid.NewString(),
		Name:     name,
		MIMEType: pickMIME(mimetype.Detect(data).String(), declaredType),
		Size:     int64(len(data)),
		data:     data,
	}
}

// NewSourceFromFile references an audio file on disk without reading it.
func NewSourceFromFile(path string) (*Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "stat audio file %s", path)
	}
	if info.IsDir() {
		return nil, errors.Newf("%s is a directory", path)
	}

	detected := octetStream
	if mt, err := mimetype.DetectFile(path); err == nil {
		detected = mt.String()
	}

	return &Source{
		ID:       uuid.NewString(),
		Name:     filepath.Base(path),
		MIMEType: detected,
		Size:     info.Size(),
		path:     path,
	}, nil
}

// Empty reports whether there is nothing to upload.
func (s *Source) Empty() bool {
	return s == nil || s.Size == 0
}

// Path returns the backing file path, or "" for in-memory sources.
func (s *Source) Path() string {
	return s.path
}

// IsAudio is a MIME hint only; nothing is rejected because of it.
func (s *Source) IsAudio() bool {
	return strings.HasPrefix(s.MIMEType, "audio/") || strings.HasPrefix(s.MIMEType, "video/")
}

// Open returns a fresh seekable reader over the source content.
func (s *Source) Open() (io.ReadSeekCloser, error) {
	if s == nil {
		return nil, errors.ErrMissingAudio
	}
	if s.path != "" {
		f, err := os.Open(s.path)
		if err != nil {
			return nil, errors.Wrapf(err, "open audio file %s", s.path)
		}
		return f, nil
	}
	return nopCloser{bytes.NewReader(s.data)}, nil
}

type nopCloser struct{ *bytes.Reader }

func (nopCloser) Close() error { return nil }

func pickMIME(detected, declared string) string {
	// strip parameters such as "; charset=binary"
	if i := strings.IndexByte(detected, ';'); i >= 0 {
		detected = strings.TrimSpace(detected[:i])
	}
	if detected != "" && detected != octetStream {
		return detected
	}
	if declared != "" {
		return declared
	}
	return octetStream
}
