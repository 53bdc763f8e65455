package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"whisper-sync/internal/api/middleware"
	"whisper-sync/internal/api/v1/dto"
	"whisper-sync/internal/app/session"
)

// SettingsHandler manages the persisted API key
type SettingsHandler struct {
	session *session.Session
}

func NewSettingsHandler(sess *session.Session) *SettingsHandler {
	return &SettingsHandler{session: sess}
}

// GetCredential handles GET /api/v1/settings/credential
//
// @Summary Report whether an API key is stored
// @Tags settings
// @Produce json
// @Success 200 {object} dto.CredentialResponse
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /settings/credential [get]
func (h *SettingsHandler) GetCredential(c *gin.Context) {
	key, err := h.session.Credential(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCredentialResponse(key))
}

// SetCredential handles PUT /api/v1/settings/credential
//
// @Summary Store the API key
// @Description Overwrites the stored key. It is kept for later sessions.
// @Tags settings
// @Accept json
// @Produce json
// @Param credential body dto.SetCredentialRequest true "API key"
// @Success 200 {object} dto.CredentialResponse
// @Failure 422 {object} errors.APIError "Validation error"
// @Router /settings/credential [put]
func (h *SettingsHandler) SetCredential(c *gin.Context) {
	var req dto.SetCredentialRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	if err := h.session.SetCredential(c.Request.Context(), req.APIKey); err != nil {
		middleware.HandleError(c, err)
		return
	}
	h.GetCredential(c)
}

// ClearCredential handles DELETE /api/v1/settings/credential
//
// @Summary Forget the stored API key
// @Tags settings
// @Success 204
// @Router /settings/credential [delete]
func (h *SettingsHandler) ClearCredential(c *gin.Context) {
	if err := h.session.ClearCredential(c.Request.Context()); err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
