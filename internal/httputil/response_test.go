package httputil

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func TestClientAddr_PrefersForwardedHeader(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/like", nil)
	r.RemoteAddr = "10.0.0.1:54321"
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.2")

	if got := ClientAddr(r); got != "203.0.113.7" {
		t.Errorf("ClientAddr = %q, want first forwarded entry", got)
	}
}

func TestClientAddr_FallsBackToRemoteAddr(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/like", nil)
	r.RemoteAddr = "10.0.0.1:54321"

	if got := ClientAddr(r); got != "10.0.0.1" {
		t.Errorf("ClientAddr = %q, want 10.0.0.1", got)
	}
}

func TestClientAddr_Placeholder(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/like", nil)
	r.RemoteAddr = ""

	if got := ClientAddr(r); got != "0.0.0.0" {
		t.Errorf("ClientAddr = %q, want placeholder", got)
	}
}

func TestWriteTooManyRequests_Envelope(t *testing.T) {
	w := httptest.NewRecorder()

	WriteTooManyRequests(w, "Too many requests")

	if w.Code != 429 {
		t.Errorf("status = %d, want 429", w.Code)
	}
	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error.Code != ErrCodeRateLimited {
		t.Errorf("code = %q, want %q", resp.Error.Code, ErrCodeRateLimited)
	}
}
