// FILE: internal/service/errors.go
package service

import "fmt"

// InsufficientCreditsError carries the 402 payload data. Inside the ledger
// insufficiency is a boolean result; it only becomes an error at the service
// boundary where the HTTP layer needs required/available.
type InsufficientCreditsError struct {
	Required  int
	Available int
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits: required %d, available %d", e.Required, e.Available)
}

// GenerationFailedError reports that every provider failed and whether the
// charge was reversed before responding.
type GenerationFailedError struct {
	Refunded         bool
	RemainingCredits int
	Err              error
}

func (e *GenerationFailedError) Error() string {
	return fmt.Sprintf("generation failed (refunded=%v): %v", e.Refunded, e.Err)
}

func (e *GenerationFailedError) Unwrap() error { return e.Err }
