package ipc

import "mediumcheck/internal/resolver"

// ServiceName is the registered RPC service.
const ServiceName = "Medium"

// CheckRequest carries one lookup message.
type CheckRequest struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// CheckResponse is the reply to Medium.Check.
type CheckResponse = resolver.MediumStatus
