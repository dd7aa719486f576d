package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// hopHeaders are connection-scoped and never forwarded
var hopHeaders = map[string]bool{
	"Connection":          true,
	"Keep-Alive":          true,
	"Proxy-Authenticate":  true,
	"Proxy-Authorization": true,
	"Te":                  true,
	"Trailer":             true,
	"Transfer-Encoding":   true,
	"Upgrade":             true,
}

// ProxyFootball forwards /football/* verbatim to the football backend.
// Successful writes drop cached responses under the same resource.
func (h *Handler) ProxyFootball(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	path := "/" + strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	url := fmt.Sprintf("%s%s", h.Football.BaseURL(), path)

	// Add query parameters
	if r.URL.RawQuery != "" {
		url = fmt.Sprintf("%s?%s", url, r.URL.RawQuery)
	}

	proxyReq, err := http.NewRequestWithContext(ctx, r.Method, url, r.Body)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to create proxy request", err)
		return
	}
	copyHeaders(proxyReq.Header, r.Header)

	resp, err := h.Football.HTTPClient().Do(proxyReq)
	if err != nil {
		h.respondError(w, http.StatusBadGateway, "football backend unavailable", err)
		return
	}
	defer resp.Body.Close()

	if r.Method != http.MethodGet && r.Method != http.MethodHead && resp.StatusCode < 300 {
		h.Football.Invalidate(ctx, resourcePrefix(path))
	}

	copyHeaders(w.Header(), resp.Header)
	w.WriteHeader(resp.StatusCode)
	io.Copy(w, resp.Body)
}

func copyHeaders(dst, src http.Header) {
	for key, values := range src {
		if hopHeaders[http.CanonicalHeaderKey(key)] {
			continue
		}
		for _, value := range values {
			dst.Add(key, value)
		}
	}
}

// resourcePrefix returns the first path segment as a cache prefix,
// e.g. /posts/abc/like/ -> /posts/
func resourcePrefix(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.Index(trimmed, "/"); i >= 0 {
		trimmed = trimmed[:i]
	}
	return "/" + trimmed + "/"
}
