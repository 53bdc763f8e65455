package handlers

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"whisper-sync/internal/api/errors"
	"whisper-sync/internal/api/middleware"
	"whisper-sync/internal/api/v1/dto"
	"whisper-sync/internal/app/player"
	"whisper-sync/internal/app/session"
)

// PlayerHandler exposes the synchronizer's controls and events
type PlayerHandler struct {
	session     *session.Session
	skipSeconds float64
}

func NewPlayerHandler(sess *session.Session, skipSeconds float64) *PlayerHandler {
	return &PlayerHandler{session: sess, skipSeconds: skipSeconds}
}

// State handles GET /api/v1/player
//
// @Summary Playback state and active segment
// @Tags player
// @Produce json
// @Success 200 {object} dto.PlayerStateResponse
// @Router /player [get]
func (h *PlayerHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, h.state())
}

// Toggle handles POST /api/v1/player/toggle
//
// @Summary Play or pause
// @Tags player
// @Produce json
// @Success 200 {object} dto.PlayerStateResponse
// @Failure 409 {object} errors.APIError "No audio selected"
// @Router /player/toggle [post]
func (h *PlayerHandler) Toggle(c *gin.Context) {
	h.respond(c, h.sync().TogglePlay())
}

// Seek handles POST /api/v1/player/seek
//
// @Summary Seek to a position
// @Tags player
// @Accept json
// @Produce json
// @Param seek body dto.SeekRequest true "Position in seconds"
// @Success 200 {object} dto.PlayerStateResponse
// @Failure 409 {object} errors.APIError "No audio selected"
// @Failure 422 {object} errors.APIError "Validation error"
// @Router /player/seek [post]
func (h *PlayerHandler) Seek(c *gin.Context) {
	var req dto.SeekRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}
	h.respond(c, h.sync().Seek(*req.Time))
}

// Skip handles POST /api/v1/player/skip
//
// @Summary Skip forwards or backwards
// @Tags player
// @Accept json
// @Produce json
// @Param skip body dto.SkipRequest false "Skip amount"
// @Success 200 {object} dto.PlayerStateResponse
// @Failure 409 {object} errors.APIError "No audio selected"
// @Router /player/skip [post]
func (h *PlayerHandler) Skip(c *gin.Context) {
	var req dto.SkipRequest
	if c.Request.ContentLength != 0 {
		if err := middleware.ValidateRequest(c, &req); err != nil {
			middleware.HandleError(c, err)
			return
		}
	}
	delta := h.skipSeconds
	if req.Seconds != nil {
		delta = *req.Seconds
	}
	if req.Back {
		delta = -delta
	}
	h.respond(c, h.sync().Skip(delta))
}

// Volume handles POST /api/v1/player/volume
//
// @Summary Set the volume
// @Tags player
// @Accept json
// @Produce json
// @Param volume body dto.VolumeRequest true "Volume between 0 and 1"
// @Success 200 {object} dto.PlayerStateResponse
// @Failure 422 {object} errors.APIError "Validation error"
// @Router /player/volume [post]
func (h *PlayerHandler) Volume(c *gin.Context) {
	var req dto.VolumeRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}
	h.respond(c, h.sync().SetVolume(*req.Volume))
}

// Mute handles POST /api/v1/player/mute
//
// @Summary Toggle mute
// @Tags player
// @Produce json
// @Success 200 {object} dto.PlayerStateResponse
// @Router /player/mute [post]
func (h *PlayerHandler) Mute(c *gin.Context) {
	h.respond(c, h.sync().ToggleMute())
}

// TimeUpdate handles POST /api/v1/player/time
//
// @Summary Report the position of a client-side player
// @Tags player
// @Accept json
// @Produce json
// @Param time body dto.TimeUpdateRequest true "Position in seconds"
// @Success 200 {object} dto.PlayerStateResponse
// @Failure 422 {object} errors.APIError "Validation error"
// @Router /player/time [post]
func (h *PlayerHandler) TimeUpdate(c *gin.Context) {
	var req dto.TimeUpdateRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}
	h.sync().OnTimeUpdate(*req.Time)
	c.JSON(http.StatusOK, h.state())
}

// Metadata handles POST /api/v1/player/metadata
//
// @Summary Report the duration of a client-side player
// @Tags player
// @Accept json
// @Produce json
// @Param metadata body dto.MetadataRequest true "Duration in seconds"
// @Success 200 {object} dto.PlayerStateResponse
// @Failure 422 {object} errors.APIError "Validation error"
// @Router /player/metadata [post]
func (h *PlayerHandler) Metadata(c *gin.Context) {
	var req dto.MetadataRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}
	h.sync().OnLoadedMetadata(*req.Duration)
	c.JSON(http.StatusOK, h.state())
}

// SelectSegment handles POST /api/v1/player/segments/:index/select
//
// @Summary Seek to the start of a segment
// @Tags player
// @Produce json
// @Param index path int true "Segment index" minimum(0)
// @Success 200 {object} dto.PlayerStateResponse
// @Failure 400 {object} errors.APIError "Invalid index"
// @Failure 404 {object} errors.APIError "Segment not found"
// @Router /player/segments/{index}/select [post]
func (h *PlayerHandler) SelectSegment(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("Invalid segment index"))
		return
	}
	if err := h.sync().SelectSegment(index); err != nil {
		if stderrors.Is(err, player.ErrNoSource) {
			h.respond(c, err)
			return
		}
		middleware.HandleError(c, errors.NewNotFoundError("Segment"))
		return
	}
	c.JSON(http.StatusOK, h.state())
}

func (h *PlayerHandler) sync() *player.Synchronizer {
	return h.session.Player()
}

func (h *PlayerHandler) state() dto.PlayerStateResponse {
	st, seg := h.sync().Snapshot()
	var active *dto.SegmentResponse
	if seg != nil {
		resp := dto.NewSegmentResponse(st.ActiveIndex, *seg)
		active = &resp
	}
	return dto.NewPlayerStateResponse(st, active)
}

func (h *PlayerHandler) respond(c *gin.Context, err error) {
	if err != nil {
		if stderrors.Is(err, player.ErrNoSource) {
			middleware.HandleError(c, errors.NewConflictError("No audio source selected"))
			return
		}
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.state())
}
