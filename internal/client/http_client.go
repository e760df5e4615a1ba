package client

import (
	"net/http"
	"sync"
	"time"
)

// DefaultTimeout caps every outbound API call.
const DefaultTimeout = 30 * time.Second

var (
	once       sync.Once
	httpClient *http.Client
)

// HTTP returns the process-wide HTTP client for outbound API calls.
func HTTP() *http.Client {
	// Use singleton pattern to ensure only one client instance
	once.Do(func() {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	})
	return httpClient
}
