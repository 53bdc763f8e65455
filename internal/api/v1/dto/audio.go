package dto

import "whisper-sync/internal/app/audio"

// AudioResponse describes the selected audio source
type AudioResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	MIMEType      string `json:"mime_type"`
	Size          int64  `json:"size"`
	URL           string `json:"url"`
	IsAudio       bool   `json:"is_audio"`
	Transcribable bool   `json:"transcribable"`
}

// NewAudioResponse builds the response for src. Transcribable is false when
// src is above maxBytes and would be rejected on submit.
func NewAudioResponse(src *audio.Source, url string, maxBytes int64) AudioResponse {
	return AudioResponse{
		ID:            src.ID,
		Name:          src.Name,
		MIMEType:      src.MIMEType,
		Size:          src.Size,
		URL:           url,
		IsAudio:       src.IsAudio(),
		Transcribable: maxBytes <= 0 || src.Size <= maxBytes,
	}
}
