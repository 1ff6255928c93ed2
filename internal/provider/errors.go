package provider

import (
	"context"
	"errors"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sciados/campaign-engine/internal/resilience"
)

// FailureReason categorizes why a generation attempt failed. These are
// expected remote failures, carried on the result rather than returned as
// Go errors.
type FailureReason string

const (
	FailureNone         FailureReason = ""
	FailureRateLimited  FailureReason = "rate_limited"
	FailureInvalidModel FailureReason = "invalid_model"
	FailureTimeout      FailureReason = "timeout"
	FailureUnknown      FailureReason = "unknown"

	// FailureExhausted is set by the selector when every candidate failed.
	FailureExhausted FailureReason = "all_providers_exhausted"
)

// Configuration errors are programmer errors: they propagate loudly instead
// of being folded into a failed GenerationResult.
var (
	ErrUnknownProvider   = eris.New("unknown provider name")
	ErrUnknownVendor     = eris.New("no client registered for vendor")
	ErrDuplicateProvider = eris.New("duplicate provider name in catalog")
)

// invalidModelPatterns match vendor messages for decommissioned, renamed,
// or otherwise nonexistent models. These failures are permanent for the
// process lifetime.
var invalidModelPatterns = []string{
	"model_not_found",
	"model has been decommissioned",
	"model has been deprecated",
	"unknown model",
	"invalid model",
	"does not exist or you do not have access",
}

// ClassifyFailure maps a vendor call error to a FailureReason.
func ClassifyFailure(err error) FailureReason {
	if err == nil {
		return FailureNone
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}

	if resilience.IsRateLimited(err) {
		return FailureRateLimited
	}

	msg := strings.ToLower(err.Error())
	for _, p := range invalidModelPatterns {
		if strings.Contains(msg, p) {
			return FailureInvalidModel
		}
	}
	if strings.Contains(msg, "status 429") || strings.Contains(msg, "rate limit") {
		return FailureRateLimited
	}
	if strings.Contains(msg, "deadline exceeded") || strings.Contains(msg, "timeout") {
		return FailureTimeout
	}

	return FailureUnknown
}
