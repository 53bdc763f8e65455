package model

import "sort"

// Segment is a timestamped span of transcribed text.
type Segment struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// TranscriptionResult is what the transcription service hands back for one audio source.
type TranscriptionResult struct {
	Text     string    `json:"text"`
	Language string    `json:"language,omitempty"`
	Duration float64   `json:"duration,omitempty"`
	Model    string    `json:"model,omitempty"`
	Segments []Segment `json:"segments"`
}

// SortedSegments returns a copy of the segments ordered by start time.
// Equal starts keep their original order.
func (r *TranscriptionResult) SortedSegments() []Segment {
	if r == nil {
		return nil
	}
	out := make([]Segment, len(r.Segments))
	copy(out, r.Segments)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}
