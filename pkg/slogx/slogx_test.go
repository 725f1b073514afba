package slogx_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/globalgrad/counsellor/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONAttrs(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	log := slogx.New(slogx.Config{Service: "counsel-api", Version: "test", Env: "prod", Level: "warn", Output: &buf})

	log.Info("dropped")
	log.Warn("kept", "k", "v")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "kept", line["msg"])
	require.Equal(t, "counsel-api", line["service"])
	require.Equal(t, "v", line["k"])
}

func TestFromContext_Default(t *testing.T) {
	require.Equal(t, slog.Default(), slogx.FromContext(context.Background()))

	l := slogx.Discard()
	require.Same(t, l, slogx.FromContext(slogx.WithContext(context.Background(), l)))
}

func TestHTTPMiddleware_RequestID(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	var inner *slog.Logger
	h := slogx.HTTPMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inner = slogx.FromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/catalog", nil)
	req.Header.Set("X-Request-ID", "req-1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, inner)
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "req-1", line["req_id"])
	require.Equal(t, float64(http.StatusTeapot), line["status"])
	require.Equal(t, "/catalog", line["path"])
}
