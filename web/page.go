package web

import (
	_ "embed"
	"net/http"
)

//go:embed dashboard.html
var dashboardPage []byte

// PageHandler serves the single-page dashboard
type PageHandler struct{}

// NewPageHandler creates a new handler
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// ServeHTTP implements the http.Handler interface for the PageHandler type
func (h *PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(dashboardPage)
}
