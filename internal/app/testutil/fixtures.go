package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"whisper-sync/internal/app/audio"
	"whisper-sync/internal/app/model"
)

// TestAPIKey is a credential shaped like a real one.
const TestAPIKey = "sk-test-0123456789abcdef"

// ID3Header starts a minimal MP3 payload that mimetype detects as audio/mpeg.
var ID3Header = []byte{'I', 'D', '3', 0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}

// ThreeSegmentSegments starts at 0, 2.5 and 5 seconds.
func ThreeSegmentSegments() []model.Segment {
	return []model.Segment{
		{ID: 0, Start: 0, End: 2.5, Text: "Hello there."},
		{ID: 1, Start: 2.5, End: 5, Text: "This is a test."},
		{ID: 2, Start: 5, End: 8, Text: "Goodbye."},
	}
}

func ThreeSegmentResult() *model.TranscriptionResult {
	return &model.TranscriptionResult{
		Text:     "Hello there. This is a test. Goodbye.",
		Language: "english",
		Duration: 8,
		Model:    "whisper-1",
		Segments: ThreeSegmentSegments(),
	}
}

// SingleSegmentResult is a result covering one span of speech.
func SingleSegmentResult(text string) *model.TranscriptionResult {
	return &model.TranscriptionResult{
		Text:     text,
		Duration: 3,
		Segments: []model.Segment{{ID: 0, Start: 0, End: 3, Text: text}},
	}
}

// AudioBytes returns a payload of n bytes that sniffs as MP3.
func AudioBytes(n int) []byte {
	data := make([]byte, n)
	copy(data, ID3Header)
	return data
}

// NewTestSource returns an in-memory MP3 source of n bytes.
func NewTestSource(name string, n int) *audio.Source {
	return audio.NewSourceFromBytes(name, "audio/mpeg", AudioBytes(n))
}

// WriteTestAudioFile writes an MP3-shaped file under t.TempDir().
func WriteTestAudioFile(t testing.TB, name string, n int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, AudioBytes(n), 0o644); err != nil {
		t.Fatalf("write test audio: %v", err)
	}
	return path
}
