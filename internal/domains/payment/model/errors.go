package model

import (
	"errors"
	"fmt"
)

var (
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrSessionNotComplete = errors.New("checkout session is not complete")
)

// ProviderError wraps any failure talking to the external payment processor.
// It is never swallowed: callers log it and surface 502 to the client, who
// owns the retry.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("payment provider %s failed: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderError(op string, err error) *ProviderError {
	return &ProviderError{Op: op, Err: err}
}
