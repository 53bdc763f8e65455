package dto

import "strings"

// SetCredentialRequest replaces the stored API key
type SetCredentialRequest struct {
	APIKey string `json:"api_key" binding:"required" example:"sk-..."`
}

// CredentialResponse reports whether a key is stored. The key itself is never returned.
type CredentialResponse struct {
	Configured bool   `json:"configured"`
	Masked     string `json:"masked,omitempty" example:"sk-...cdef"`
}

func NewCredentialResponse(key string) CredentialResponse {
	key = strings.TrimSpace(key)
	if key == "" {
		return CredentialResponse{}
	}
	return CredentialResponse{Configured: true, Masked: MaskKey(key)}
}

// MaskKey keeps the first three and last four characters of long keys.
func MaskKey(key string) string {
	if len(key) <= 10 {
		return "****"
	}
	return key[:3] + "..." + key[len(key)-4:]
}
