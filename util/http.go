package util

import (
	"net/http"
	"time"
)

var httpClient = &http.Client{Timeout: 90 * time.Second}

// HTTPClient returns the shared HTTP client used for outbound requests
func HTTPClient() *http.Client {
	return httpClient
}
