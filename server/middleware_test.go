package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propalyze/logger"
)

func TestRequestLogger_TraceID(t *testing.T) {
	var logs bytes.Buffer
	l := logger.New(logger.Options{Writer: &logs, JSON: true})

	var seenTraceID string
	h := RequestLogger(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTraceID = logger.TraceIDFromContext(r.Context())
		logger.FromContext(r.Context(), nil).Info("inside handler")
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/ping", nil))

	_, err := uuid.Parse(seenTraceID)
	require.NoError(t, err)
	assert.Equal(t, seenTraceID, rr.Header().Get(TRACE_ID_HEADER))
	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.Contains(t, logs.String(), `"msg":"inside handler"`)
	assert.Contains(t, logs.String(), `"status_code":418`)
	assert.Contains(t, logs.String(), `"trace_id":"`+seenTraceID+`"`)
}

func TestRequestLogger_KeepsIncomingTraceID(t *testing.T) {
	incoming := uuid.NewString()
	h := RequestLogger(logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(logger.TraceIDFromContext(r.Context())))
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(TRACE_ID_HEADER, incoming)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, incoming, rr.Body.String())
}

func TestCORS_AllowsCredentialsForListedOrigins(t *testing.T) {
	h := CORS([]string{"http://localhost:3000"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/search", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest("GET", "/search", nil)
	req.Header.Set("Origin", "http://evil.example")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestAPIProxy(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"path":"` + r.URL.Path + `","query":"` + r.URL.RawQuery + `","cookie":"` + r.Header.Get("Cookie") + `"}`))
	}))
	defer backend.Close()

	proxy, err := NewAPIProxy(backend.URL+"/api/", logger.Discard())
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/property-analysis?propertyId=7", nil)
	req.Header.Set("Cookie", "sessionid=s1")
	rr := httptest.NewRecorder()
	proxy.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"path":"/api/property-analysis","query":"propertyId=7","cookie":"sessionid=s1"}`, rr.Body.String())
}

func TestAPIProxy_BackendDown(t *testing.T) {
	backend := httptest.NewServer(http.NotFoundHandler())
	url := backend.URL
	backend.Close()

	proxy, err := NewAPIProxy(url, logger.Discard())
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	proxy.ServeHTTP(rr, httptest.NewRequest("POST", "/api/search", nil))

	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestNewAPIProxy_InvalidURL(t *testing.T) {
	_, err := NewAPIProxy("localhost:8000", logger.Discard())
	assert.Error(t, err)
}
