package eligibility

// MinHistoryLength is the minimum trimmed length, in characters, of an
// account history accepted for an eligibility check.
const MinHistoryLength = 50

// Request is an account history that passed validation.
type Request struct {
	AccountHistory string `json:"accountHistory"`
}

// Decision is the structured verdict returned by the inference boundary.
type Decision struct {
	IsEligible bool   `json:"isEligible"`
	Reason     string `json:"reason"`
}

// State is what a caller renders after a check. It holds either a decision
// (IsEligible and Reason) or an Error, and always the account history to
// re-populate the form with.
type State struct {
	AccountHistory string `json:"accountHistory,omitempty"`
	IsEligible     *bool  `json:"isEligible,omitempty"`
	Reason         string `json:"reason,omitempty"`
	Error          string `json:"error,omitempty"`
}

// HasDecision reports whether the state carries a decision.
func (s State) HasDecision() bool {
	return s.IsEligible != nil
}

// Failed reports whether the state carries an error message.
func (s State) Failed() bool {
	return s.Error != ""
}
