package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/modelgate/internal/metrics"
	"github.com/allisson/modelgate/internal/testutil"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func serve(handler http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestHealthAndReadiness(t *testing.T) {
	tests := []struct {
		name       string
		server     func(t *testing.T) *Server
		path       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "health needs no database",
			server:     func(*testing.T) *Server { return NewServer(nil, "localhost", 8080, discardLogger()) },
			path:       "/health",
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"healthy"}`,
		},
		{
			name:       "ready without database",
			server:     func(*testing.T) *Server { return NewServer(nil, "localhost", 8080, discardLogger()) },
			path:       "/ready",
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"status":"not_ready","components":{"database":"error"}}`,
		},
		{
			name: "ready with database",
			server: func(t *testing.T) *Server {
				return NewServer(testutil.SetupSQLiteDB(t), "localhost", 8080, discardLogger())
			},
			path:       "/ready",
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ready","components":{"database":"ok"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := tt.server(t)
			router := gin.New()
			router.GET("/health", server.healthHandler)
			router.GET("/ready", server.readinessHandler)

			w := serve(router, http.MethodGet, tt.path)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestCustomLoggerMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	router := gin.New()
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(logger))
	router.Use(gin.RecoveryWithWriter(io.Discard))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	router.GET("/panic", func(*gin.Context) { panic("boom") })

	tests := []struct {
		target    string
		wantLevel string
		wantQuery string
	}{
		{target: "/ok?page=2", wantLevel: "INFO", wantQuery: "page=2"},
		{target: "/missing", wantLevel: "WARN"},
		{target: "/panic", wantLevel: "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			buf.Reset()

			w := serve(router, http.MethodGet, tt.target)

			var entry map[string]interface{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, "http request", entry["msg"])
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, float64(w.Code), entry["status"])
			assert.Equal(t, w.Header().Get("X-Request-Id"), entry["request_id"])
			if tt.wantQuery != "" {
				assert.Equal(t, tt.wantQuery, entry["query"])
			} else {
				assert.NotContains(t, entry, "query")
			}
		})
	}
}

func TestRequestIDIsUUIDv7(t *testing.T) {
	router := gin.New()
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := serve(router, http.MethodGet, "/")

	id, err := uuid.Parse(w.Header().Get("X-Request-Id"))
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
}

func TestMetricsServer_Handler(t *testing.T) {
	provider, err := metrics.NewProvider("scrape")
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, provider.Shutdown(context.Background())) })

	server := NewMetricsServer("localhost", 8081, discardLogger(), provider)

	w := serve(server.GetHandler(), http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")

	w = serve(server.GetHandler(), http.MethodGet, "/health")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_StartAndShutdown(t *testing.T) {
	server := NewServer(nil, "127.0.0.1", 0, discardLogger())
	server.router = gin.New()

	done := make(chan error, 1)
	go func() { done <- server.Start(context.Background()) }()
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, server.Shutdown(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after shutdown")
	}
}

func TestServer_StartWithoutRouter(t *testing.T) {
	server := NewServer(nil, "localhost", 8080, discardLogger())

	assert.EqualError(t, server.Start(context.Background()), "router not configured")
}
