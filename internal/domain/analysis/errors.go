package analysis

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotConfigured indicates the model API credential is absent or rejected.
// Permanent for the process; resubmitting will not help.
var ErrNotConfigured = errors.New("analysis service is not configured, check the API key")

// ErrSafetyBlocked indicates the provider declined the content. The user can
// revise the lyrics and resubmit.
var ErrSafetyBlocked = errors.New("request was blocked for safety, revise the lyrics and try again")

// ErrInvalidAnalysis indicates the model reply failed to parse or validate.
// Transient; a fresh submission may succeed.
var ErrInvalidAnalysis = errors.New("model failed to produce a valid analysis, try again later")

// ErrInvalidInput indicates the caller-supplied fields failed validation.
var ErrInvalidInput = errors.New("invalid input")

var ErrNotFound = errors.New("analysis not found")

// ClassifyProviderError maps a raw provider error onto the domain taxonomy.
// The provider reports safety blocks and credential problems only through its
// error text, so classification is by message substring.
func ClassifyProviderError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "safety"):
		return fmt.Errorf("%w: %s", ErrSafetyBlocked, err)
	case strings.Contains(msg, "api key") || strings.Contains(msg, "api_key"):
		return fmt.Errorf("%w: %s", ErrNotConfigured, err)
	default:
		return fmt.Errorf("%w: %s", ErrInvalidAnalysis, err)
	}
}
