package app

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/metinatakli/showtime-booking-system/internal/validator"
)

func newTestApplication(t *testing.T, opts ...func(*Application)) *Application {
	app := &Application{
		validator: validator.NewValidator(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	// Global meter provider is a no-op in tests, the counters still need to exist.
	if err := app.initMetrics(); err != nil {
		t.Fatal(err)
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

func executeRequest(t *testing.T, app *Application, method, url string, body any) *httptest.ResponseRecorder {
	var reader io.Reader

	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	app.Routes().ServeHTTP(w, r)

	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	return resp
}

func decodeValidationError(t *testing.T, w *httptest.ResponseRecorder) ValidationErrorResponse {
	var resp ValidationErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode validation error response: %v", err)
	}
	return resp
}

func checkErrorMessage(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, wantErrMessage string) {
	if wantStatus >= 200 && wantStatus < 300 || wantErrMessage == "" {
		return
	}

	if wantStatus == http.StatusUnprocessableEntity {
		resp := decodeValidationError(t, w)

		for _, vErr := range resp.ValidationErrors {
			if vErr.Issue == wantErrMessage {
				return
			}
		}

		t.Errorf("Expected validation error message '%s' not found in response", wantErrMessage)
		return
	}

	resp := decodeError(t, w)
	if resp.Message != wantErrMessage {
		t.Errorf("Error message = %v, want %v", resp.Message, wantErrMessage)
	}
}

func ptr[T any](v T) *T {
	return &v
}
