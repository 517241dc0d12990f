package submit

import (
	"errors"
	"fmt"
)

// Base errors for submission operations.
var (
	ErrNotSignedIn = errors.New("no wallet session")
	ErrInFlight    = errors.New("a transaction for this campaign is already in flight")
	ErrPollTimeout = errors.New("confirmation polling timed out")
	ErrTxFailed    = errors.New("transaction failed on chain")
)

// AuthError is returned when the acting address may not perform a privileged
// action. It is raised before anything is built or sent.
type AuthError struct {
	CampaignID uint64
	Address    string
	Owner      string
}

func (e *AuthError) Error() string {
	if e.Address == "" {
		return fmt.Sprintf("campaign %d: not signed in", e.CampaignID)
	}
	return fmt.Sprintf("campaign %d: %s is not the campaign owner", e.CampaignID, e.Address)
}

// SubmitError wraps an error with the state it occurred in and a recovery
// suggestion for the user.
type SubmitError struct {
	State      State
	Err        error
	Suggestion string
}

func (e *SubmitError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("[%s] %v\nHint: %s", e.State, e.Err, e.Suggestion)
	}
	return fmt.Sprintf("[%s] %v", e.State, e.Err)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}
