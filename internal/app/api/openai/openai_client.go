package openai

import (
	"net/http"

	"github.com/sashabaranov/go-openai"
)

// ClientOptions are the connection settings shared by every request.
type ClientOptions struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient builds a client for one credential. The API key is entered by the
// user and may change between requests, so clients are not shared.
func NewClient(apiKey string, opts ClientOptions) *openai.Client {
	config := openai.DefaultConfig(apiKey)
	if opts.BaseURL != "" {
		config.BaseURL = opts.BaseURL
	}
	if opts.HTTPClient != nil {
		config.HTTPClient = opts.HTTPClient
	}
	return openai.NewClientWithConfig(config)
}
