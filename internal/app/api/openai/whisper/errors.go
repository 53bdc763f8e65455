package whisper

import (
	stderrors "errors"
	"net/http"

	"github.com/sashabaranov/go-openai"

	"whisper-sync/internal/app/errors"
)

// classifyError tags every failure as RequestFailed while keeping a readable
// cause for the logs.
func classifyError(err error) error {
	var apiErr *openai.APIError
	if stderrors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized:
			return errors.WrapKind(err, errors.KindRequestFailed, "OpenAI API key is invalid or missing")
		case http.StatusTooManyRequests:
			return errors.WrapKind(err, errors.KindRequestFailed, "OpenAI API rate limit exceeded")
		case http.StatusRequestEntityTooLarge:
			return errors.WrapKind(err, errors.KindRequestFailed, "audio file is too large for OpenAI API")
		case http.StatusBadRequest:
			return errors.WrapKind(err, errors.KindRequestFailed, "invalid audio file format or corrupted file")
		default:
			return errors.WrapKind(err, errors.KindRequestFailed, "OpenAI API error")
		}
	}

	var reqErr *openai.RequestError
	if stderrors.As(err, &reqErr) {
		return errors.WrapKind(err, errors.KindRequestFailed, "OpenAI request failed")
	}

	return errors.WrapKind(err, errors.KindRequestFailed, "transcription failed")
}
