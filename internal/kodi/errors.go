package kodi

import (
	"errors"
	"fmt"
)

// ErrTimeout reports that a call exceeded the configured per-call ceiling.
var ErrTimeout = errors.New("kodi request timed out")

const errorBodyPreview = 200

// HTTPError is returned for non-2xx responses.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("HTTP %d %s", e.StatusCode, e.Status)
	if e.Body == "" {
		return msg
	}
	body := []rune(e.Body)
	if len(body) > errorBodyPreview {
		body = body[:errorBodyPreview]
	}
	return msg + " – " + string(body)
}

// RPCError carries the error object of a JSON-RPC response.
type RPCError struct {
	Code    int
	Message string
}

func (e *RPCError) Error() string {
	if e.Message == "" {
		return "Kodi JSON-RPC: unknown error"
	}
	return "Kodi JSON-RPC: " + e.Message
}
