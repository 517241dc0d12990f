// Package submit drives owner actions on a campaign through the wallet:
// guard, build, sign, broadcast, and confirmation polling.
package submit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/altuslabsxyz/fundctl/internal/chain"
	"github.com/altuslabsxyz/fundctl/internal/clarity"
	"github.com/altuslabsxyz/fundctl/internal/fund"
	"github.com/altuslabsxyz/fundctl/internal/output"
	"github.com/altuslabsxyz/fundctl/internal/wallet"
)

// State names one step of the submission lifecycle.
type State string

const (
	StateIdle              State = "idle"
	StateBuilding          State = "building"
	StateAwaitingSignature State = "awaiting-signature"
	StateBroadcast         State = "broadcast"
	StatePolling           State = "polling"
	StateConfirmed         State = "confirmed"
	StateFailed            State = "failed"
	StateTimedOut          State = "timed-out"
	StateCancelled         State = "cancelled"
)

// Terminal reports whether the state ends a submission.
func (s State) Terminal() bool {
	switch s {
	case StateConfirmed, StateFailed, StateTimedOut, StateCancelled:
		return true
	}
	return false
}

// Path is the state-changing function chosen for a campaign.
type Path string

const (
	// PathWithdraw releases raised funds to the owner of a successful
	// campaign, capped by a post-condition.
	PathWithdraw Path = "withdraw-funds"
	// PathFinalizeFailure closes out a campaign that missed its goal. No
	// funds move, so no post-condition is attached.
	PathFinalizeFailure Path = "finalize-failure"
)

// DecidePath picks the contract function from the campaign outcome.
func DecidePath(c fund.Campaign) Path {
	if c.GoalMet() {
		return PathWithdraw
	}
	return PathFinalizeFailure
}

// ConfirmPrompt is the confirmation question for the chosen path.
func ConfirmPrompt(c fund.Campaign, path Path) string {
	if path == PathWithdraw {
		return fmt.Sprintf("Withdraw %s from campaign %d (%q)?", fund.DisplaySTX(c.Raised), c.ID, c.Title)
	}
	return fmt.Sprintf("Finalize campaign %d (%q) as failed? No funds will move.", c.ID, c.Title)
}

// BuildCall constructs the contract call for the path, attaching the transfer
// cap on the withdraw path only.
func BuildCall(contract chain.ContractID, c fund.Campaign, path Path) *wallet.ContractCall {
	call := &wallet.ContractCall{
		Contract:  contract,
		Function:  string(path),
		Arguments: []*clarity.Value{clarity.UintValue(c.ID)},
	}
	if path == PathWithdraw {
		call.PostConditions = []wallet.PostCondition{
			wallet.NewTransferCap(contract.String(), c.Raised),
		}
	}
	return call
}

// PollOptions bound the confirmation poll.
type PollOptions struct {
	Interval    time.Duration
	MaxAttempts int
}

// DefaultPollOptions returns the standard 5s × 15 budget.
func DefaultPollOptions() PollOptions {
	return PollOptions{
		Interval:    5 * time.Second,
		MaxAttempts: 15,
	}
}

// StatusClient is the subset of the chain client the poller depends on.
type StatusClient interface {
	TransactionStatus(ctx context.Context, txID string) (chain.TxStatus, error)
}

// Result describes how a submission ended.
type Result struct {
	State    State
	Path     Path
	TxID     string
	Attempts int
}

// Submitter runs owner actions end to end. All collaborators are passed in
// at construction and scoped to the session.
type Submitter struct {
	contract chain.ContractID
	wallet   wallet.Connector
	status   StatusClient
	poll     PollOptions
	logger   *output.Logger

	// OnConfirmed is invoked exactly once per confirmed transaction,
	// typically wired to a snapshot refresh.
	OnConfirmed func(ctx context.Context)

	// OnTransition, when set, observes every state change.
	OnTransition func(State)

	mu       sync.Mutex
	inFlight map[uint64]struct{}
}

// NewSubmitter creates a Submitter.
func NewSubmitter(contract chain.ContractID, w wallet.Connector, status StatusClient, poll PollOptions, logger *output.Logger) *Submitter {
	if poll.Interval <= 0 {
		poll.Interval = DefaultPollOptions().Interval
	}
	if poll.MaxAttempts <= 0 {
		poll.MaxAttempts = DefaultPollOptions().MaxAttempts
	}
	if logger == nil {
		logger = output.DefaultLogger
	}
	return &Submitter{
		contract: contract,
		wallet:   w,
		status:   status,
		poll:     poll,
		logger:   logger,
		inFlight: map[uint64]struct{}{},
	}
}

func (s *Submitter) transition(state State) {
	if s.OnTransition != nil {
		s.OnTransition(state)
	}
}

// acquire reserves the campaign id against double submission.
func (s *Submitter) acquire(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[id]; busy {
		return false
	}
	s.inFlight[id] = struct{}{}
	return true
}

func (s *Submitter) release(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, id)
}

// Submit runs the full flow for one campaign. The returned Result is
// meaningful on every path, including terminal error states; err carries the
// user-facing failure when the state is not StateConfirmed or StateCancelled.
func (s *Submitter) Submit(ctx context.Context, c fund.Campaign) (*Result, error) {
	// Authorization guard runs before anything is built or sent.
	session, err := s.wallet.Session(ctx)
	if err != nil {
		return &Result{State: StateFailed}, &SubmitError{
			State:      StateIdle,
			Err:        fmt.Errorf("%w: %v", ErrNotSignedIn, err),
			Suggestion: "Check that the wallet daemon is running",
		}
	}
	if !session.SignedIn {
		return &Result{State: StateFailed}, &AuthError{CampaignID: c.ID}
	}
	if session.Address != c.Owner {
		return &Result{State: StateFailed}, &AuthError{
			CampaignID: c.ID,
			Address:    session.Address,
			Owner:      c.Owner,
		}
	}

	if !s.acquire(c.ID) {
		return &Result{State: StateFailed}, &SubmitError{State: StateIdle, Err: ErrInFlight}
	}
	defer s.release(c.ID)

	path := DecidePath(c)
	res := &Result{Path: path}

	s.transition(StateBuilding)
	call := BuildCall(s.contract, c, path)

	s.transition(StateAwaitingSignature)
	txID, err := s.wallet.SignContractCall(ctx, call)
	if err != nil {
		if errors.Is(err, wallet.ErrRejected) {
			res.State = StateCancelled
			s.transition(StateCancelled)
			s.logger.Debug("Signing cancelled for campaign %d", c.ID)
			return res, nil
		}
		res.State = StateFailed
		s.transition(StateFailed)
		return res, &SubmitError{State: StateAwaitingSignature, Err: err}
	}
	res.TxID = txID

	s.transition(StateBroadcast)
	s.logger.Debug("Transaction %s broadcast for campaign %d", txID, c.ID)

	s.transition(StatePolling)
	state, attempts, err := s.pollStatus(ctx, txID)
	res.State = state
	res.Attempts = attempts
	s.transition(state)

	if state == StateConfirmed && s.OnConfirmed != nil {
		s.OnConfirmed(ctx)
	}

	return res, err
}

// pollStatus checks the transaction status on a fixed interval until it is
// terminal or the attempt budget runs out. A transport error fails the
// submission immediately.
func (s *Submitter) pollStatus(ctx context.Context, txID string) (State, int, error) {
	for attempt := 1; attempt <= s.poll.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return StateFailed, attempt, &SubmitError{State: StatePolling, Err: ctx.Err()}
		case <-time.After(s.poll.Interval):
		}

		status, err := s.status.TransactionStatus(ctx, txID)
		if err != nil {
			return StateFailed, attempt, &SubmitError{
				State:      StatePolling,
				Err:        err,
				Suggestion: fmt.Sprintf("Check transaction %s in an explorer", txID),
			}
		}

		s.logger.Debug("Poll %d/%d: %s is %s", attempt, s.poll.MaxAttempts, txID, status)

		switch status {
		case chain.TxStatusSuccess:
			return StateConfirmed, attempt, nil
		case chain.TxStatusFailed:
			return StateFailed, attempt, &SubmitError{State: StatePolling, Err: ErrTxFailed}
		}
	}

	return StateTimedOut, s.poll.MaxAttempts, &SubmitError{
		State:      StatePolling,
		Err:        ErrPollTimeout,
		Suggestion: fmt.Sprintf("The transaction may still confirm; check %s in an explorer", txID),
	}
}
