package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

type stubHealth bool

func (s stubHealth) IsHealthy() bool { return bool(s) }

func TestNewHealthHandler(t *testing.T) {
	handler := NewHealthHandler(nil, nil)

	if handler == nil {
		t.Fatal("NewHealthHandler() returned nil")
	}
}

func TestHealthHandler_LivenessProbe(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewHealthHandler(nil, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/health/live", nil)

	handler.LivenessProbe(c)

	if w.Code != http.StatusOK {
		t.Errorf("LivenessProbe() status = %d, want %d", w.Code, http.StatusOK)
	}

	if w.Body.String() == "" {
		t.Error("LivenessProbe() returned empty body")
	}
}

func TestHealthHandler_ReadinessProbe(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		store      Pinger
		publisher  HealthChecker
		wantStatus int
		wantRabbit string
	}{
		{
			name:       "store up, events disabled",
			store:      stubPinger{},
			wantStatus: http.StatusOK,
			wantRabbit: "disabled",
		},
		{
			name:       "store up, publisher healthy",
			store:      stubPinger{},
			publisher:  stubHealth(true),
			wantStatus: http.StatusOK,
			wantRabbit: "healthy",
		},
		{
			name:       "store down",
			store:      stubPinger{err: errors.New("connection refused")},
			publisher:  stubHealth(true),
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "publisher down",
			store:      stubPinger{},
			publisher:  stubHealth(false),
			wantStatus: http.StatusServiceUnavailable,
			wantRabbit: "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(tt.store, tt.publisher)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/health/ready", nil)

			handler.ReadinessProbe(c)

			if w.Code != tt.wantStatus {
				t.Errorf("ReadinessProbe() status = %d, want %d", w.Code, tt.wantStatus)
			}

			var body map[string]interface{}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if tt.wantRabbit != "" && body["rabbitmq"] != tt.wantRabbit {
				t.Errorf("rabbitmq = %v, want %s", body["rabbitmq"], tt.wantRabbit)
			}
		})
	}
}
