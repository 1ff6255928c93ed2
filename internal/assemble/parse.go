package assemble

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sciados/campaign-engine/internal/model"
)

var emailHeaderRe = regexp.MustCompile(`(?m)^===\s*EMAIL\s+(\d+)\s*===\s*$`)

// parseEmailSequence parses provider output into the seven-email
// structure the prompt demands. Parsing is strict: a malformed or
// incomplete sequence is a ParseError, never a truncated result.
func parseEmailSequence(contentType model.ContentType, providerUsed, raw string) ([]model.Email, error) {
	headers := emailHeaderRe.FindAllStringSubmatchIndex(raw, -1)
	if len(headers) == 0 {
		return nil, &ParseError{ContentType: contentType, Provider: providerUsed, Reason: ReasonNoEmails, Detail: "no === EMAIL n === headers found"}
	}

	stages := model.EmailStages()
	if len(headers) != len(stages) {
		return nil, &ParseError{
			ContentType: contentType, Provider: providerUsed, Reason: ReasonWrongEmailCount,
			Detail: fmt.Sprintf("expected %d emails, found %d", len(stages), len(headers)),
		}
	}

	emails := make([]model.Email, 0, len(stages))
	for i, h := range headers {
		ordinal, err := strconv.Atoi(raw[h[2]:h[3]])
		if err != nil || ordinal != i+1 {
			return nil, &ParseError{
				ContentType: contentType, Provider: providerUsed, Reason: ReasonBadOrdinal,
				Detail: fmt.Sprintf("email %d labeled %q", i+1, raw[h[2]:h[3]]),
			}
		}

		sectionEnd := len(raw)
		if i+1 < len(headers) {
			sectionEnd = headers[i+1][0]
		}
		email, perr := parseEmailSection(contentType, providerUsed, ordinal, stages[i], raw[h[1]:sectionEnd])
		if perr != nil {
			return nil, perr
		}
		emails = append(emails, email)
	}
	return emails, nil
}

func parseEmailSection(contentType model.ContentType, providerUsed string, ordinal int, wantStage model.Stage, section string) (model.Email, *ParseError) {
	fail := func(reason, detail string) (model.Email, *ParseError) {
		return model.Email{}, &ParseError{
			ContentType: contentType, Provider: providerUsed, Reason: reason,
			Detail: fmt.Sprintf("email %d: %s", ordinal, detail),
		}
	}

	subject, rest, ok := labeledLine(section, "SUBJECT:")
	if !ok || subject == "" {
		return fail(ReasonMissingSubject, "no SUBJECT: line")
	}

	stageLabel, rest, ok := labeledLine(rest, "STAGE:")
	if !ok {
		return fail(ReasonStageMismatch, "no STAGE: line")
	}
	stage := model.Stage(strings.ToLower(stageLabel))
	if stage != wantStage {
		return fail(ReasonStageMismatch, fmt.Sprintf("got %q, sequence position requires %q", stageLabel, wantStage))
	}

	idx := strings.Index(rest, "BODY:")
	if idx < 0 {
		return fail(ReasonMissingBody, "no BODY: marker")
	}
	body := strings.TrimSpace(rest[idx+len("BODY:"):])
	if body == "" {
		return fail(ReasonMissingBody, "empty body")
	}

	return model.Email{Ordinal: ordinal, Subject: subject, Body: body, Stage: stage}, nil
}

// labeledLine finds the first line starting with label, returning its
// trimmed value and the remainder of the section after that line.
func labeledLine(section, label string) (value, rest string, ok bool) {
	idx := strings.Index(section, label)
	if idx < 0 {
		return "", section, false
	}
	after := section[idx+len(label):]
	line := after
	if nl := strings.IndexByte(after, '\n'); nl >= 0 {
		line = after[:nl]
		rest = after[nl+1:]
	}
	return strings.TrimSpace(line), rest, true
}
