package httputil

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
)

// Error codes surfaced to widget clients
const (
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeRateLimited        = "RATE_LIMITED"
	ErrCodePageNotInitialized = "PAGE_NOT_INITIALIZED"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// ErrorResponse represents the standard error response format
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains the error code and message
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers already sent; nothing useful left to do.
			return
		}
	}
}

// WriteError writes an error response in the format
// {"error": {"code": "ERROR_CODE", "message": "Human readable message"}}
func WriteError(w http.ResponseWriter, status int, code string, message string) {
	WriteJSON(w, status, ErrorResponse{
		Error: ErrorDetail{Code: code, Message: message},
	})
}

// WriteBadRequest writes a 400 Bad Request error
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, ErrCodeBadRequest, message)
}

// WritePageNotInitialized writes a 400 with the distinct not-initialized code
// so clients know to call init first.
func WritePageNotInitialized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, ErrCodePageNotInitialized, message)
}

// WriteTooManyRequests writes a 429 so clients can back off and retry after
// the window.
func WriteTooManyRequests(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusTooManyRequests, ErrCodeRateLimited, message)
}

// WriteInternalError writes a 500 Internal Server Error
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, ErrCodeInternal, message)
}

// ClientAddr resolves the visitor's network address: the first X-Forwarded-For
// entry when present, else the connection's remote host, else a placeholder.
// The forwarded header is trusted as-is; deploy behind a reverse proxy that
// sets it, or identities are spoofable.
func ClientAddr(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first := strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
		if first != "" {
			return first
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "0.0.0.0"
}
