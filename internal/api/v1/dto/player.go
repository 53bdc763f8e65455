package dto

import "whisper-sync/internal/app/player"

// PlayerStateResponse is the playback state plus display strings
type PlayerStateResponse struct {
	player.State
	CurrentLabel  string           `json:"current_label" example:"0:42"`
	DurationLabel string           `json:"duration_label" example:"3:10"`
	ActiveSegment *SegmentResponse `json:"active_segment,omitempty"`
}

// SeekRequest moves playback to an absolute position in seconds
type SeekRequest struct {
	Time *float64 `json:"time" binding:"required,gte=0"`
}

// SkipRequest moves playback relative to the current position. Without
// seconds the configured skip step is used; back skips backwards.
type SkipRequest struct {
	Seconds *float64 `json:"seconds,omitempty"`
	Back    bool     `json:"back,omitempty"`
}

// VolumeRequest sets the volume between 0 and 1
type VolumeRequest struct {
	Volume *float64 `json:"volume" binding:"required,gte=0,lte=1"`
}

// TimeUpdateRequest reports the position of a client-side media element
type TimeUpdateRequest struct {
	Time *float64 `json:"time" binding:"required,gte=0"`
}

// MetadataRequest reports the duration of a client-side media element
type MetadataRequest struct {
	Duration *float64 `json:"duration" binding:"required,gte=0"`
}

func NewPlayerStateResponse(st player.State, active *SegmentResponse) PlayerStateResponse {
	return PlayerStateResponse{
		State:         st,
		CurrentLabel:  player.FormatTime(st.CurrentTime),
		DurationLabel: player.FormatTime(st.Duration),
		ActiveSegment: active,
	}
}
