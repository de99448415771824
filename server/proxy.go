package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"propalyze/logger"
)

// API_PROXY_PREFIX is the site path the backend API is mounted under.
const API_PROXY_PREFIX = "/api"

const TRACE_ID_HEADER = "X-Trace-ID"

// NewAPIProxy forwards /api/* to the backend base URL, replacing the /api prefix with
// the base URL's own path. Cookies pass through untouched.
func NewAPIProxy(baseURL string, l *slog.Logger) (http.Handler, error) {
	target, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", baseURL, err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("invalid API base URL %q: scheme and host are required", baseURL)
	}
	log := logger.Component(l, "APIProxy")
	basePath := strings.TrimRight(target.Path, "/")

	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.Out.URL.Scheme = target.Scheme
			pr.Out.URL.Host = target.Host
			pr.Out.Host = target.Host
			pr.Out.URL.Path = basePath + strings.TrimPrefix(pr.In.URL.Path, API_PROXY_PREFIX)
			pr.Out.URL.RawPath = ""
			pr.SetXForwarded()

			if traceID := logger.TraceIDFromContext(pr.In.Context()); traceID != "" {
				pr.Out.Header.Set(TRACE_ID_HEADER, traceID)
			}
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.FromContext(r.Context(), log).Warn("Backend API unreachable", "path", r.URL.Path, logger.Err(err))
			http.Error(w, "Bad gateway", http.StatusBadGateway)
		},
	}
	return proxy, nil
}
