package audio

import (
	"context"
	"encoding/json"
	"os/exec"
	"strconv"
	"strings"

	"whisper-sync/internal/app/errors"
	"whisper-sync/internal/app/model"
)

// ProbeDuration asks ffprobe for the duration in seconds of a file path or URL.
func ProbeDuration(ctx context.Context, location string) (float64, error) {
	cmd := exec.CommandContext(ctx, "ffprobe", "-v", "quiet", "-print_format", "json", "-show_format", location)
	output, err := cmd.Output()
	if err != nil {
		return 0, errors.Wrapf(err, "ffprobe %s", location)
	}
	return parseProbeDuration(output)
}

// ProbeSource probes src in place: file-backed sources by path, in-memory ones through stdin.
func ProbeSource(ctx context.Context, src *Source) (float64, error) {
	if src.Empty() {
		return 0, errors.ErrMissingAudio
	}
	if src.Path() != "" {
		return ProbeDuration(ctx, src.Path())
	}
	r, err := src.Open()
	if err != nil {
		return 0, err
	}
	defer r.Close()

	cmd := exec.CommandContext(ctx, "ffprobe", "-v", "quiet", "-print_format", "json", "-show_format", "pipe:0")
	cmd.Stdin = r
	output, err := cmd.Output()
	if err != nil {
		return 0, errors.Wrapf(err, "ffprobe %s", src.Name)
	}
	return parseProbeDuration(output)
}

// Resolver maps a URL handed out by a MediaStore back to its source.
type Resolver interface {
	Resolve(url string) (*Source, bool)
}

// DurationLoader returns a loader that probes media URLs handed out by store.
// URLs the store can resolve are probed from the source itself; anything else
// (file paths, presigned URLs) is handed to ffprobe as is.
func DurationLoader(store MediaStore) func(ctx context.Context, url string) (float64, error) {
	return func(ctx context.Context, url string) (float64, error) {
		if r, ok := store.(Resolver); ok {
			if src, found := r.Resolve(url); found {
				return ProbeSource(ctx, src)
			}
		}
		return ProbeDuration(ctx, url)
	}
}

func parseProbeDuration(output []byte) (float64, error) {
	var probe model.FFProbeOutput
	if err := json.Unmarshal(output, &probe); err != nil {
		return 0, errors.Wrap(err, "decode ffprobe output")
	}
	duration, err := strconv.ParseFloat(strings.TrimSpace(probe.Format.Duration), 64)
	if err != nil {
		return 0, errors.Wrap(err, "parse duration")
	}
	if duration < 0 {
		return 0, errors.Newf("negative duration %v", duration)
	}
	return duration, nil
}
