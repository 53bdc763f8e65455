package api

import (
	"context"

	"whisper-sync/internal/app/audio"
	"whisper-sync/internal/app/model"
)

// Transcriber sends one audio source to a speech-to-text service.
// The credential is passed per call; implementations must not cache it.
type Transcriber interface {
	Transcribe(ctx context.Context, src *audio.Source, credential string) (*model.TranscriptionResult, error)
}

// TranscriberFunc adapts a plain function to Transcriber.
type TranscriberFunc func(ctx context.Context, src *audio.Source, credential string) (*model.TranscriptionResult, error)

func (f TranscriberFunc) Transcribe(ctx context.Context, src *audio.Source, credential string) (*model.TranscriptionResult, error) {
	return f(ctx, src, credential)
}
