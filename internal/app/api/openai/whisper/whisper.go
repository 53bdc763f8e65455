package whisper

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	oa "whisper-sync/internal/app/api/openai"
	"whisper-sync/internal/app/audio"
	"whisper-sync/internal/app/errors"
	"whisper-sync/internal/app/model"
)

// Config holds the per-deployment request settings.
type Config struct {
	Model    string        `yaml:"model"`
	Language string        `yaml:"language"`
	Prompt   string        `yaml:"prompt"`
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
}

// RemoteTranscriber implements remote transcription using the OpenAI API.
type RemoteTranscriber struct {
	config  Config
	options oa.ClientOptions
	logger  *zap.Logger
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
func NewRemoteTranscriber(config Config, options oa.ClientOptions, logger *zap.Logger) *RemoteTranscriber {
	if config.Model == "" {
		config.Model = openai.Whisper1
	}
	if options.BaseURL == "" {
		options.BaseURL = config.BaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RemoteTranscriber{config: config, options: options, logger: logger}
}

// Transcribe uploads src and asks for segment-level timestamps.
func (rt *RemoteTranscriber) Transcribe(ctx context.Context, src *audio.Source, credential string) (*model.TranscriptionResult, error) {
	if src.Empty() {
		return nil, errors.ErrMissingAudio
	}
	if credential == "" {
		return nil, errors.ErrMissingCredential
	}
	if rt.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rt.config.Timeout)
		defer cancel()
	}

	reader, err := src.Open()
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	req := openai.AudioRequest{
		Model:    rt.config.Model,
		FilePath: src.Name, // only used as the multipart file name when Reader is set
		Reader:   reader,
		Prompt:   rt.config.Prompt,
		Language: rt.config.Language,
		Format:   openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []openai.TranscriptionTimestampGranularity{
			openai.TranscriptionTimestampGranularitySegment,
		},
	}

	start := time.Now()
	resp, err := oa.NewClient(credential, rt.options).CreateTranscription(ctx, req)
	if err != nil {
		return nil, classifyError(err)
	}

	rt.logger.Debug("transcription received",
		zap.String("model", rt.config.Model),
		zap.Int("segments", len(resp.Segments)),
		zap.Duration("latency", time.Since(start)),
	)

	return toResult(resp, rt.config.Model), nil
}

func toResult(resp openai.AudioResponse, modelName string) *model.TranscriptionResult {
	segments := make([]model.Segment, 0, len(resp.Segments))
	for _, s := range resp.Segments {
		segments = append(segments, model.Segment{ID: s.ID, Start: s.Start, End: s.End, Text: s.Text})
	}
	// plain json responses carry no segments; expose the text as one span
	if len(segments) == 0 && resp.Text != "" {
		segments = append(segments, model.Segment{ID: 0, Start: 0, End: resp.Duration, Text: resp.Text})
	}

	duration := resp.Duration
	if duration == 0 && len(segments) > 0 {
		duration = lo.MaxBy(segments, func(a, b model.Segment) bool { return a.End > b.End }).End
	}

	return &model.TranscriptionResult{
		Text:     resp.Text,
		Language: resp.Language,
		Duration: duration,
		Model:    modelName,
		Segments: segments,
	}
}
