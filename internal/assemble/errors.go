package assemble

import (
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/sciados/campaign-engine/internal/model"
)

// ErrUnsupportedType is a configuration error: the caller asked for a
// content type the assembler has no template or parser for.
var ErrUnsupportedType = eris.New("unsupported content type")

// ErrProvidersExhausted means every candidate provider failed for the
// single generation call content assembly makes.
var ErrProvidersExhausted = eris.New("content generation exhausted all providers")

// Parse failure reason codes.
const (
	ReasonNoEmails        = "no_email_sections"
	ReasonWrongEmailCount = "wrong_email_count"
	ReasonBadOrdinal      = "bad_email_ordinal"
	ReasonMissingSubject  = "missing_subject"
	ReasonMissingBody     = "missing_body"
	ReasonStageMismatch   = "stage_mismatch"
	ReasonEmptyBody       = "empty_body"
)

// ParseError reports provider output that does not match the expected
// structure. It is never coerced into a best-guess partial result; the
// caller decides whether to retry or surface it.
type ParseError struct {
	ContentType model.ContentType
	Provider    string
	Reason      string
	Detail      string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s output from %s: %s (%s)", e.ContentType, e.Provider, e.Reason, e.Detail)
}

// IsParseError reports whether err is a ParseError, returning it if so.
func IsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if eris.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
