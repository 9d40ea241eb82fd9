package eligibility

import (
	"strings"
	"unicode/utf8"
)

// Validate checks that the submitted history is long enough to be assessed.
// The returned request carries the text exactly as submitted.
func Validate(accountHistory string) (Request, error) {
	trimmed := strings.TrimSpace(accountHistory)
	if trimmed == "" || utf8.RuneCountInString(trimmed) < MinHistoryLength {
		return Request{}, &ValidationError{Message: MsgValidation}
	}
	return Request{AccountHistory: accountHistory}, nil
}
