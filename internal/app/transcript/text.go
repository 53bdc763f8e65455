// Package transcript renders a TranscriptionResult for copying, downloading and export.
package transcript

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"whisper-sync/internal/app/errors"
	"whisper-sync/internal/app/model"
	"whisper-sync/internal/app/player"
)

// DownloadFilename is the fixed name of a downloaded transcript.
const DownloadFilename = "transcription.txt"

// PlainText joins segment texts with newlines, falling back to the full text
// when the service returned no segments.
func PlainText(r *model.TranscriptionResult) string {
	if r == nil {
		return ""
	}
	if len(r.Segments) == 0 {
		return strings.TrimSpace(r.Text)
	}
	lines := make([]string, 0, len(r.Segments))
	for _, seg := range r.SortedSegments() {
		if text := strings.TrimSpace(seg.Text); text != "" {
			lines = append(lines, text)
		}
	}
	return strings.Join(lines, "\n")
}

// WithTimestamps prefixes every segment with its start time, e.g. "[1:05] text".
func WithTimestamps(r *model.TranscriptionResult) string {
	if r == nil {
		return ""
	}
	var b strings.Builder
	for _, seg := range r.SortedSegments() {
		b.WriteString("[")
		b.WriteString(player.FormatTime(seg.Start))
		b.WriteString("] ")
		b.WriteString(strings.TrimSpace(seg.Text))
		b.WriteString("\n")
	}
	return b.String()
}

// WriteText writes PlainText(r) followed by a newline.
func WriteText(w io.Writer, r *model.TranscriptionResult) error {
	if r == nil {
		return errors.New("no transcript to write")
	}
	_, err := io.WriteString(w, PlainText(r)+"\n")
	return errors.Wrap(err, "write transcript")
}

// SaveText writes the transcript to path. When path is an existing directory
// the file is named DownloadFilename inside it. The written path is returned.
func SaveText(path string, r *model.TranscriptionResult) (string, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, DownloadFilename)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()

	if err := WriteText(f, r); err != nil {
		return "", err
	}
	return path, nil
}
