package handlers_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/storefront/pkg/handlers"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, _ := io.ReadAll(resp.Body)
	var got any
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("invalid JSON body %q: %v", body, err)
	}
	out, _ := json.Marshal(got)
	return string(out)
}

func normalize(s string) string {
	var v any
	json.Unmarshal([]byte(s), &v)
	out, _ := json.Marshal(v)
	return string(out)
}

func TestRespondJSON(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		data     any
		wantBody string
	}{
		{
			"ok with map",
			http.StatusOK,
			map[string]string{"name": "lamp"},
			`{"success":true,"data":{"name":"lamp"}}`,
		},
		{
			"created with struct",
			http.StatusCreated,
			struct {
				ID   int    `json:"id"`
				Name string `json:"name"`
			}{1, "test"},
			`{"success":true,"data":{"id":1,"name":"test"}}`,
		},
		{
			"ok with slice",
			http.StatusOK,
			[]int{1, 2, 3},
			`{"success":true,"data":[1,2,3]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			handlers.RespondJSON(w, tt.status, tt.data)

			resp := w.Result()
			defer resp.Body.Close()

			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
			if got := decodeBody(t, resp); got != normalize(tt.wantBody) {
				t.Errorf("body = %s, want %s", got, tt.wantBody)
			}
		})
	}
}

func TestRespondMessage(t *testing.T) {
	w := httptest.NewRecorder()

	handlers.RespondMessage(w, http.StatusOK, "deleted")

	resp := w.Result()
	defer resp.Body.Close()

	if got := decodeBody(t, resp); got != normalize(`{"success":true,"message":"deleted"}`) {
		t.Errorf("body = %s", got)
	}
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"not found", http.StatusNotFound},
		{"internal", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			handlers.RespondError(w, discardLogger(), tt.status, errors.New("brand not found"))

			resp := w.Result()
			defer resp.Body.Close()

			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			want := normalize(`{"success":false,"message":"brand not found"}`)
			if got := decodeBody(t, resp); got != want {
				t.Errorf("body = %s, want %s", got, want)
			}
		})
	}
}

func TestRespondFailure(t *testing.T) {
	w := httptest.NewRecorder()

	handlers.RespondFailure(w, http.StatusRequestEntityTooLarge, "too large")

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if got := decodeBody(t, resp); got != normalize(`{"success":false,"message":"too large"}`) {
		t.Errorf("body = %s", got)
	}
}
