package contact

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

const (
	nameMinLen    = 2
	nameMaxLen    = 50
	emailMaxLen   = 100
	messageMinLen = 10
	messageMaxLen = 500
)

// ValidationError carries every violated constraint, joined into one message.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, "; ")
}

// InvalidEmailError is returned when the deliverability provider reports a bad
// format or a domain without mail servers.
type InvalidEmailError struct {
	Reason string
}

func (e *InvalidEmailError) Error() string { return e.Reason }

// UndeliverableEmailError is returned when the mailbox fails the SMTP check
// even though format and domain are fine.
type UndeliverableEmailError struct {
	Email string
}

func (e *UndeliverableEmailError) Error() string {
	return fmt.Sprintf("email address %s is not deliverable", e.Email)
}

// validateInput checks length and shape constraints on the raw (trimmed)
// input and collects all violations rather than stopping at the first.
// Lengths are counted in runes so multibyte input is bounded the same way as
// ASCII.
func validateInput(name, email, message string) *ValidationError {
	var violations []string
	if l := utf8.RuneCountInString(strings.TrimSpace(name)); l < nameMinLen || l > nameMaxLen {
		violations = append(violations, fmt.Sprintf("name must be between %d and %d characters", nameMinLen, nameMaxLen))
	}
	email = strings.TrimSpace(email)
	if utf8.RuneCountInString(email) > emailMaxLen {
		violations = append(violations, fmt.Sprintf("email must be at most %d characters", emailMaxLen))
	} else if _, err := mail.ParseAddress(email); err != nil {
		violations = append(violations, "email must be a valid address")
	}
	if l := utf8.RuneCountInString(strings.TrimSpace(message)); l < messageMinLen || l > messageMaxLen {
		violations = append(violations, fmt.Sprintf("message must be between %d and %d characters", messageMinLen, messageMaxLen))
	}
	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}

// sanitize trims whitespace and strips angle brackets. Minimal XSS hygiene
// for values that end up in notification emails and admin views, not a full
// sanitizer.
func sanitize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "<", "")
	s = strings.ReplaceAll(s, ">", "")
	return s
}
