package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestErrorLogger_StatusAndBody(t *testing.T) {
	tests := []struct {
		name   string
		call   func(e *ErrorLogger, w http.ResponseWriter, r *http.Request)
		status int
		level  string
	}{
		{"server error", func(e *ErrorLogger, w http.ResponseWriter, r *http.Request) {
			e.LogServerError(w, r, "store failed", fmt.Errorf("boom"), "Something went wrong.")
		}, http.StatusInternalServerError, "error"},
		{"bad request", func(e *ErrorLogger, w http.ResponseWriter, r *http.Request) {
			e.LogBadRequest(w, r, "decode failed", fmt.Errorf("eof"), "Something went wrong.")
		}, http.StatusBadRequest, "warn"},
		{"not found", func(e *ErrorLogger, w http.ResponseWriter, r *http.Request) {
			e.LogNotFound(w, r, "missing", nil, "Something went wrong.")
		}, http.StatusNotFound, "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.DebugLevel)
			e := NewErrorLogger(zap.New(core))
			rec := httptest.NewRecorder()
			tt.call(e, rec, httptest.NewRequest(http.MethodGet, "/api/x", nil))

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			var body Body
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error != "Something went wrong." {
				t.Errorf("error = %q", body.Error)
			}
			if logs.Len() != 1 || logs.All()[0].Level.String() != tt.level {
				t.Errorf("expected one %s log entry, got %v", tt.level, logs.All())
			}
		})
	}
}

func TestNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
}
