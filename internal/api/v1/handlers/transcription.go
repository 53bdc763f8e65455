package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"whisper-sync/internal/api/errors"
	"whisper-sync/internal/api/middleware"
	"whisper-sync/internal/api/v1/dto"
	"whisper-sync/internal/app/session"
	"whisper-sync/internal/app/transcript"
)

// TranscriptionHandler drives the transcription request and serves its result
type TranscriptionHandler struct {
	session *session.Session
}

func NewTranscriptionHandler(sess *session.Session) *TranscriptionHandler {
	return &TranscriptionHandler{session: sess}
}

// Create handles POST /api/v1/transcriptions
//
// @Summary Transcribe the selected audio
// @Description Submits the selected source with the stored API key. A new submission supersedes one in flight.
// @Description Without wait the request returns 202 and progress is read from /transcriptions/state.
// @Tags transcriptions
// @Produce json
// @Param wait query bool false "Block until the transcript is ready"
// @Success 200 {object} dto.TranscriptionStateResponse "Finished (wait=true)"
// @Success 202 {object} dto.TranscriptionStateResponse "Started"
// @Failure 409 {object} errors.APIError "Superseded by a newer request"
// @Failure 413 {object} errors.APIError "Audio above the upload ceiling"
// @Failure 422 {object} errors.APIError "No audio selected or no API key"
// @Failure 502 {object} errors.APIError "Transcription service failed"
// @Router /transcriptions [post]
func (h *TranscriptionHandler) Create(c *gin.Context) {
	var query dto.StartTranscriptionQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	ctx := c.Request.Context()
	if query.Wait {
		if _, err := h.session.Transcribe(ctx); err != nil {
			middleware.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewTranscriptionStateResponse(h.session.Controller().Snapshot()))
		return
	}

	if err := h.session.StartTranscription(ctx); err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, dto.NewTranscriptionStateResponse(h.session.Controller().Snapshot()))
}

// State handles GET /api/v1/transcriptions/state
//
// @Summary Current transcription state
// @Tags transcriptions
// @Produce json
// @Success 200 {object} dto.TranscriptionStateResponse
// @Router /transcriptions/state [get]
func (h *TranscriptionHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewTranscriptionStateResponse(h.session.Controller().Snapshot()))
}

// Cancel handles DELETE /api/v1/transcriptions
//
// @Summary Abandon the transcription in flight
// @Tags transcriptions
// @Produce json
// @Success 200 {object} dto.TranscriptionStateResponse
// @Router /transcriptions [delete]
func (h *TranscriptionHandler) Cancel(c *gin.Context) {
	h.session.CancelTranscription()
	c.JSON(http.StatusOK, dto.NewTranscriptionStateResponse(h.session.Controller().Snapshot()))
}

// Transcript handles GET /api/v1/transcript
//
// @Summary Transcript of the selected audio
// @Tags transcript
// @Produce json
// @Success 200 {object} dto.TranscriptResponse
// @Failure 404 {object} errors.APIError "No transcript yet"
// @Router /transcript [get]
func (h *TranscriptionHandler) Transcript(c *gin.Context) {
	result := h.session.Result()
	if result == nil {
		middleware.HandleError(c, errors.NewNotFoundError("Transcript"))
		return
	}
	c.JSON(http.StatusOK, dto.NewTranscriptResponse(result))
}

// Text handles GET /api/v1/transcript/text
//
// @Summary Transcript as plain text, for copying
// @Tags transcript
// @Produce plain
// @Success 200 {string} string
// @Failure 404 {object} errors.APIError "No transcript yet"
// @Router /transcript/text [get]
func (h *TranscriptionHandler) Text(c *gin.Context) {
	result := h.session.Result()
	if result == nil {
		middleware.HandleError(c, errors.NewNotFoundError("Transcript"))
		return
	}
	c.String(http.StatusOK, transcript.PlainText(result))
}

// Download handles GET /api/v1/transcript/download
//
// @Summary Download the transcript as transcription.txt
// @Tags transcript
// @Produce plain
// @Success 200 {file} binary
// @Failure 404 {object} errors.APIError "No transcript yet"
// @Router /transcript/download [get]
func (h *TranscriptionHandler) Download(c *gin.Context) {
	result := h.session.Result()
	if result == nil {
		middleware.HandleError(c, errors.NewNotFoundError("Transcript"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+transcript.DownloadFilename+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(transcript.PlainText(result)+"\n"))
}

// Export handles GET /api/v1/transcript/export
//
// @Summary Download the segment table as an Excel workbook
// @Tags transcript
// @Produce octet-stream
// @Success 200 {file} binary
// @Failure 404 {object} errors.APIError "No transcript yet"
// @Router /transcript/export [get]
func (h *TranscriptionHandler) Export(c *gin.Context) {
	result := h.session.Result()
	if result == nil {
		middleware.HandleError(c, errors.NewNotFoundError("Transcript"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+transcript.ExcelFilename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)
	if err := transcript.WriteExcel(c.Writer, result); err != nil {
		_ = c.Error(err)
	}
}
