package dto

import (
	"github.com/samber/lo"

	"whisper-sync/internal/app/controller"
	"whisper-sync/internal/app/model"
	"whisper-sync/internal/app/player"
	"whisper-sync/internal/app/transcript"
)

// StartTranscriptionQuery controls whether POST /transcriptions blocks
type StartTranscriptionQuery struct {
	Wait bool `form:"wait"`
}

// TranscriptionStateResponse is the controller state: idle, loading, success or error
type TranscriptionStateResponse struct {
	State    string              `json:"state" example:"success"`
	SourceID string              `json:"source_id,omitempty"`
	Kind     string              `json:"kind,omitempty"`
	Message  string              `json:"message,omitempty"`
	Result   *TranscriptResponse `json:"result,omitempty"`
}

// TranscriptResponse is a transcript with display-ready segments
type TranscriptResponse struct {
	Text     string            `json:"text"`
	Language string            `json:"language,omitempty"`
	Duration float64           `json:"duration,omitempty"`
	Model    string            `json:"model,omitempty"`
	Segments []SegmentResponse `json:"segments"`
}

// SegmentResponse represents a transcription segment
type SegmentResponse struct {
	Index     int     `json:"index"`
	ID        int     `json:"id"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	Text      string  `json:"text"`
	StartTime string  `json:"start_time" example:"1:05"`
}

func NewTranscriptionStateResponse(snap controller.Snapshot) TranscriptionStateResponse {
	return TranscriptionStateResponse{
		State:    string(snap.State),
		SourceID: snap.SourceID,
		Kind:     string(snap.Kind),
		Message:  snap.Message,
		Result:   NewTranscriptResponse(snap.Result),
	}
}

// NewTranscriptResponse returns nil for a nil result. Segments are in start order.
func NewTranscriptResponse(r *model.TranscriptionResult) *TranscriptResponse {
	if r == nil {
		return nil
	}
	segments := lo.Map(r.SortedSegments(), func(seg model.Segment, i int) SegmentResponse {
		return NewSegmentResponse(i, seg)
	})
	return &TranscriptResponse{
		Text:     transcript.PlainText(r),
		Language: r.Language,
		Duration: r.Duration,
		Model:    r.Model,
		Segments: segments,
	}
}

func NewSegmentResponse(index int, seg model.Segment) SegmentResponse {
	return SegmentResponse{
		Index:     index,
		ID:        seg.ID,
		Start:     seg.Start,
		End:       seg.End,
		Text:      seg.Text,
		StartTime: player.FormatTime(seg.Start),
	}
}
