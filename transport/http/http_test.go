package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTP_ShutdownGuard(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name  string
		state ServerState
		path  string
		code  int
	}{
		{name: "ready probe while serving", state: ServerStateReady, path: readinessPath, code: http.StatusOK},
		{name: "ready probe in grace period", state: ServerStateInGracePeriod, path: readinessPath, code: http.StatusServiceUnavailable},
		{name: "ready probe in cleanup period", state: ServerStateInCleanupPeriod, path: readinessPath, code: http.StatusServiceUnavailable},
		{name: "traffic keeps flowing in grace period", state: ServerStateInGracePeriod, path: "/v1/rooms", code: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &HTTP{}
			h.state.Store(int32(tt.state))

			recorder := httptest.NewRecorder()
			h.shutdownGuard(ok).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.code, recorder.Code)
		})
	}
}
