package utils

import (
	"github.com/go-resty/resty/v2"
)

// userAgent identifies the client to collaborators.
const userAgent = "go-safe-keeper"

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient()
//	resp, err := client.R().Get("https://example.com")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates and returns a new HTTPClient instance that sends
// JSON by default. Retries are left to the caller.
func NewHTTPClient() *HTTPClient {
	c := resty.New().
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)
	return &HTTPClient{Client: c}
}
