package eligibility

import "errors"

// Project maps the outcome of one check onto the state handed back to the
// caller. A validation failure keeps the previously rendered history; every
// other outcome echoes the submitted text.
func Project(prev State, submitted string, decision Decision, err error) State {
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return State{Error: verr.Message, AccountHistory: prev.AccountHistory}
		}
		return State{Error: MsgInference, AccountHistory: submitted}
	}
	eligible := decision.IsEligible
	return State{
		AccountHistory: submitted,
		IsEligible:     &eligible,
		Reason:         decision.Reason,
	}
}
