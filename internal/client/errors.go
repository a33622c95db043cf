package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"syscall"
)

// APIError is a backend-reported failure: a non-2xx status with, when
// the backend provides one, a structured detail message shown verbatim.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// TransportError is a network-level failure with a user-readable
// classification attached.
type TransportError struct {
	Message string
	Err     error
}

func (e *TransportError) Error() string { return e.Message }
func (e *TransportError) Unwrap() error { return e.Err }

// Messages shown to users for transport failures. Connection-level
// failures read differently from an unreachable or slow server, same
// wording as the web client.
const (
	msgConnectionFailed  = "網路連接失敗，請檢查網路連接"
	msgServerUnreachable = "無法連接到伺服器，請稍後再試"
	msgUnknown           = "未知錯誤，請稍後再試"
)

// classifyTransport wraps a transport failure with its user-readable
// message.
func classifyTransport(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return &TransportError{Message: msgConnectionFailed, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return &TransportError{Message: msgServerUnreachable, Err: err}
	}

	return &TransportError{Message: msgUnknown, Err: err}
}

// errorDetail extracts the detail field from an error response body,
// falling back to the given message.
func errorDetail(body []byte, fallback string) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return fallback
}
