package entity

import (
	"errors"
	"fmt"
)

// ErrUnknownChain is returned when single-chain mode names a chain the
// provider catalog does not contain. The request fails with a validation
// error instead of silently degrading to an arbitrary catalog entry.
var ErrUnknownChain = errors.New("unknown chain")

// UpstreamError is a failed required call to the data provider: a non-2xx
// HTTP status or an explicit error envelope. It aborts the whole request.
type UpstreamError struct {
	Endpoint   string
	StatusCode int
	Status     string
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream request to %s failed: %s", e.Endpoint, e.Message)
	}
	return fmt.Sprintf("upstream request to %s failed with status %d %s", e.Endpoint, e.StatusCode, e.Status)
}
