package server

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onepredict/lges-query-server/pkg/config"
	"github.com/onepredict/lges-query-server/pkg/server/middleware"
	"github.com/onepredict/lges-query-server/pkg/server/store"
)

func newTestServer(logs *bytes.Buffer) *Server {
	logger := slog.New(slog.NewJSONHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewServer(config.New(), &store.Stores{}, nil, logger, "127.0.0.1", "0")
}

func TestNowFollowsSettings(t *testing.T) {
	s := newTestServer(&bytes.Buffer{})
	assert.Equal(t, "Asia/Seoul", s.Now().Location().String())

	reloaded := config.New()
	reloaded.Timezone = "Europe/Warsaw"
	s.Settings = func() *config.Settings { return reloaded }

	assert.Equal(t, "Europe/Warsaw", s.Now().Location().String())
}

func TestUnmatchedRoutesGetRequestID(t *testing.T) {
	var logs bytes.Buffer
	s := newTestServer(&logs)
	s.API.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods("GET")

	tests := []struct {
		name   string
		method string
		target string
		status int
	}{
		{name: "matched", method: "GET", target: "/api/v1/ping", status: http.StatusNoContent},
		{name: "not found", method: "GET", target: "/api/v1/nowhere", status: http.StatusNotFound},
		{name: "method not allowed", method: "POST", target: "/api/v1/ping", status: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs.Reset()
			w := httptest.NewRecorder()
			s.Handler().ServeHTTP(w, httptest.NewRequest(tt.method, tt.target, nil))

			require.Equal(t, tt.status, w.Code)
			id := w.Header().Get(middleware.RequestIDHeader)
			assert.NotEmpty(t, id)
			assert.Contains(t, logs.String(), `"request_id":"`+id+`"`)
			assert.Contains(t, logs.String(), tt.target)
		})
	}
}
