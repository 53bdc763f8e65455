package handlers

import (
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"whisper-sync/internal/api/errors"
	"whisper-sync/internal/api/middleware"
	"whisper-sync/internal/api/v1/dto"
	"whisper-sync/internal/app/audio"
	"whisper-sync/internal/app/session"
)

// AudioHandler selects audio sources and serves in-memory media
type AudioHandler struct {
	session  *session.Session
	media    *audio.MemoryStore
	maxBytes int64
}

// NewAudioHandler creates the handler. media may be nil when URLs point elsewhere.
func NewAudioHandler(sess *session.Session, media *audio.MemoryStore, maxBytes int64) *AudioHandler {
	return &AudioHandler{session: sess, media: media, maxBytes: maxBytes}
}

// Select handles POST /api/v1/audio
//
// @Summary Select an audio file
// @Description Replaces the current source. Any transcription in flight is abandoned and the transcript is cleared.
// @Tags audio
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Audio file"
// @Success 201 {object} dto.AudioResponse
// @Failure 400 {object} errors.APIError "No file uploaded"
// @Failure 413 {object} errors.APIError "File too large"
// @Failure 422 {object} errors.APIError "Empty file"
// @Router /audio [post]
func (h *AudioHandler) Select(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			middleware.HandleError(c, errors.NewPayloadTooLargeError(fmt.Sprintf("Upload exceeds %d bytes", maxErr.Limit)))
			return
		}
		middleware.HandleError(c, errors.NewBadRequestError("No file uploaded"))
		return
	}

	file, err := header.Open()
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	src := audio.NewSourceFromBytes(header.Filename, header.Header.Get("Content-Type"), data)
	url, err := h.session.SelectAudio(c.Request.Context(), src)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewAudioResponse(src, url, h.maxBytes))
}

// Current handles GET /api/v1/audio
//
// @Summary Describe the selected audio source
// @Tags audio
// @Produce json
// @Success 200 {object} dto.AudioResponse
// @Failure 404 {object} errors.APIError "No audio selected"
// @Router /audio [get]
func (h *AudioHandler) Current(c *gin.Context) {
	src, url := h.session.Source()
	if src == nil {
		middleware.HandleError(c, errors.NewNotFoundError("Audio source"))
		return
	}
	c.JSON(http.StatusOK, dto.NewAudioResponse(src, url, h.maxBytes))
}

// Media handles GET /api/v1/media/:id
//
// @Summary Stream a selected audio blob
// @Description Supports range requests so players can seek.
// @Tags audio
// @Produce octet-stream
// @Param id path string true "Source ID"
// @Success 200 {file} binary
// @Failure 404 {object} errors.APIError "Media not found"
// @Router /media/{id} [get]
func (h *AudioHandler) Media(c *gin.Context) {
	if h.media == nil {
		middleware.HandleError(c, errors.NewNotFoundError("Media"))
		return
	}
	src, err := h.media.Lookup(c.Param("id"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	r, err := src.Open()
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	defer r.Close()

	c.Header("Content-Type", src.MIMEType)
	http.ServeContent(c.Writer, c.Request, src.Name, time.Time{}, r)
}
