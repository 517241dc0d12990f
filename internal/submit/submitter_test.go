package submit

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altuslabsxyz/fundctl/internal/chain"
	"github.com/altuslabsxyz/fundctl/internal/fund"
	"github.com/altuslabsxyz/fundctl/internal/wallet"
)

var testContract = chain.ContractID{Address: "SP000", Name: "crowdfund"}

const ownerAddr = "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7"

func stx(display int64) math.Int {
	return math.NewInt(display * fund.MicroUnitsPerSTX)
}

func testCampaign(raised, goal int64) fund.Campaign {
	return fund.Campaign{
		ID:     7,
		Title:  "Test",
		Goal:   stx(goal),
		Raised: stx(raised),
		Owner:  ownerAddr,
		Active: true,
	}
}

// fakeWallet answers session and signing requests.
type fakeWallet struct {
	session    wallet.Session
	sessionErr error
	txID       string
	signErr    error
	signCalls  atomic.Int32
	lastCall   *wallet.ContractCall
}

func (f *fakeWallet) Session(ctx context.Context) (wallet.Session, error) {
	return f.session, f.sessionErr
}

func (f *fakeWallet) SignContractCall(ctx context.Context, call *wallet.ContractCall) (string, error) {
	f.signCalls.Add(1)
	f.lastCall = call
	if f.signErr != nil {
		return "", f.signErr
	}
	return f.txID, nil
}

// fakeStatus scripts a sequence of status responses.
type fakeStatus struct {
	statuses []chain.TxStatus
	err      error
	calls    atomic.Int32
}

func (f *fakeStatus) TransactionStatus(ctx context.Context, txID string) (chain.TxStatus, error) {
	n := int(f.calls.Add(1))
	if f.err != nil {
		return "", f.err
	}
	if n <= len(f.statuses) {
		return f.statuses[n-1], nil
	}
	return chain.TxStatusPending, nil
}

// failingStatus fails the test if the chain is ever consulted.
type failingStatus struct{ t *testing.T }

func (f *failingStatus) TransactionStatus(ctx context.Context, txID string) (chain.TxStatus, error) {
	f.t.Fatal("transaction status must not be checked")
	return "", nil
}

func fastPoll() PollOptions {
	return PollOptions{Interval: time.Millisecond, MaxAttempts: 15}
}

// =============================================================================
// Path decision and call building
// =============================================================================

func TestDecidePath_GoalMetSelectsWithdraw(t *testing.T) {
	assert.Equal(t, PathWithdraw, DecidePath(testCampaign(150, 100)))
	// Exactly at goal still withdraws.
	assert.Equal(t, PathWithdraw, DecidePath(testCampaign(100, 100)))
	assert.Equal(t, PathFinalizeFailure, DecidePath(testCampaign(50, 100)))
}

func TestBuildCall_WithdrawAttachesTransferCap(t *testing.T) {
	c := testCampaign(150, 100)
	call := BuildCall(testContract, c, PathWithdraw)

	assert.Equal(t, "withdraw-funds", call.Function)
	require.Len(t, call.PostConditions, 1)
	assert.Equal(t, "SP000.crowdfund", call.PostConditions[0].Principal)
	assert.Equal(t, "150000000", call.PostConditions[0].MaxAmount)
}

func TestBuildCall_FinalizeAttachesNoGuarantee(t *testing.T) {
	call := BuildCall(testContract, testCampaign(50, 100), PathFinalizeFailure)

	assert.Equal(t, "finalize-failure", call.Function)
	assert.Empty(t, call.PostConditions)
}

func TestConfirmPrompt_DependsOnPath(t *testing.T) {
	c := testCampaign(150, 100)

	assert.Contains(t, ConfirmPrompt(c, PathWithdraw), "Withdraw")
	assert.Contains(t, ConfirmPrompt(c, PathWithdraw), "150 STX")
	assert.Contains(t, ConfirmPrompt(c, PathFinalizeFailure), "failed")
}

// =============================================================================
// Authorization guard
// =============================================================================

func TestSubmit_RejectsNonOwnerBeforeAnyCall(t *testing.T) {
	w := &fakeWallet{session: wallet.Session{SignedIn: true, Address: "SP_SOMEONE_ELSE"}}
	s := NewSubmitter(testContract, w, &failingStatus{t: t}, fastPoll(), nil)

	_, err := s.Submit(context.Background(), testCampaign(150, 100))

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, int32(0), w.signCalls.Load())
}

func TestSubmit_RejectsWithoutSession(t *testing.T) {
	w := &fakeWallet{session: wallet.Session{SignedIn: false}}
	s := NewSubmitter(testContract, w, &failingStatus{t: t}, fastPoll(), nil)

	_, err := s.Submit(context.Background(), testCampaign(150, 100))

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
}

func TestSubmit_OwnerComparisonIsCaseSensitive(t *testing.T) {
	lower := "sp2j6zy48gv1ez5v2v5rb9mp66sw86pykknrv9ej7"
	w := &fakeWallet{session: wallet.Session{SignedIn: true, Address: lower}}
	s := NewSubmitter(testContract, w, &failingStatus{t: t}, fastPoll(), nil)

	_, err := s.Submit(context.Background(), testCampaign(150, 100))

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
}

// =============================================================================
// Polling outcomes
// =============================================================================

func TestSubmit_SuccessOnThirdCheck(t *testing.T) {
	w := &fakeWallet{session: wallet.Session{SignedIn: true, Address: ownerAddr}, txID: "0xfeed"}
	status := &fakeStatus{statuses: []chain.TxStatus{
		chain.TxStatusPending,
		chain.TxStatusPending,
		chain.TxStatusSuccess,
	}}
	s := NewSubmitter(testContract, w, status, fastPoll(), nil)

	var refreshes atomic.Int32
	s.OnConfirmed = func(context.Context) { refreshes.Add(1) }

	result, err := s.Submit(context.Background(), testCampaign(150, 100))

	require.NoError(t, err)
	assert.Equal(t, StateConfirmed, result.State)
	assert.Equal(t, "0xfeed", result.TxID)
	assert.Equal(t, 3, result.Attempts)
	assert.Equal(t, int32(3), status.calls.Load())
	assert.Equal(t, int32(1), refreshes.Load())
}

func TestSubmit_TimesOutAfterBudget(t *testing.T) {
	w := &fakeWallet{session: wallet.Session{SignedIn: true, Address: ownerAddr}, txID: "0xfeed"}
	status := &fakeStatus{} // always pending
	s := NewSubmitter(testContract, w, status, fastPoll(), nil)

	var refreshes atomic.Int32
	s.OnConfirmed = func(context.Context) { refreshes.Add(1) }

	result, err := s.Submit(context.Background(), testCampaign(150, 100))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPollTimeout)
	assert.Equal(t, StateTimedOut, result.State)
	assert.Equal(t, 15, result.Attempts)
	assert.Equal(t, int32(15), status.calls.Load())
	assert.Equal(t, int32(0), refreshes.Load())
}

func TestSubmit_FailedStatusStopsImmediately(t *testing.T) {
	w := &fakeWallet{session: wallet.Session{SignedIn: true, Address: ownerAddr}, txID: "0xfeed"}
	status := &fakeStatus{statuses: []chain.TxStatus{chain.TxStatusFailed}}
	s := NewSubmitter(testContract, w, status, fastPoll(), nil)

	result, err := s.Submit(context.Background(), testCampaign(150, 100))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTxFailed)
	assert.Equal(t, StateFailed, result.State)
	assert.Equal(t, int32(1), status.calls.Load())
}

func TestSubmit_LookupErrorFailsWithoutExhaustingBudget(t *testing.T) {
	w := &fakeWallet{session: wallet.Session{SignedIn: true, Address: ownerAddr}, txID: "0xfeed"}
	status := &fakeStatus{err: &chain.RPCError{Operation: "tx-status", Message: "down"}}
	s := NewSubmitter(testContract, w, status, fastPoll(), nil)

	result, err := s.Submit(context.Background(), testCampaign(150, 100))

	require.Error(t, err)
	assert.Equal(t, StateFailed, result.State)
	assert.Equal(t, int32(1), status.calls.Load())
}

// =============================================================================
// Cancellation and double submission
// =============================================================================

func TestSubmit_UserRejectionCancels(t *testing.T) {
	w := &fakeWallet{
		session: wallet.Session{SignedIn: true, Address: ownerAddr},
		signErr: wallet.ErrRejected,
	}
	s := NewSubmitter(testContract, w, &failingStatus{t: t}, fastPoll(), nil)

	result, err := s.Submit(context.Background(), testCampaign(150, 100))

	require.NoError(t, err)
	assert.Equal(t, StateCancelled, result.State)
	assert.Empty(t, result.TxID)
}

func TestSubmit_GuardsAgainstDoubleSubmission(t *testing.T) {
	w := &fakeWallet{session: wallet.Session{SignedIn: true, Address: ownerAddr}, txID: "0xfeed"}
	status := &fakeStatus{statuses: []chain.TxStatus{chain.TxStatusSuccess}}
	s := NewSubmitter(testContract, w, status, fastPoll(), nil)

	c := testCampaign(150, 100)
	require.True(t, s.acquire(c.ID))

	_, err := s.Submit(context.Background(), c)
	assert.ErrorIs(t, err, ErrInFlight)

	// A terminal transition clears the guard.
	s.release(c.ID)
	result, err := s.Submit(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, StateConfirmed, result.State)

	// And the id is usable again afterwards.
	status.calls.Store(0)
	status.statuses = []chain.TxStatus{chain.TxStatusSuccess}
	result, err = s.Submit(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, StateConfirmed, result.State)
}

func TestSubmit_ReportsTransitions(t *testing.T) {
	w := &fakeWallet{session: wallet.Session{SignedIn: true, Address: ownerAddr}, txID: "0xfeed"}
	status := &fakeStatus{statuses: []chain.TxStatus{chain.TxStatusSuccess}}
	s := NewSubmitter(testContract, w, status, fastPoll(), nil)

	var states []State
	s.OnTransition = func(state State) { states = append(states, state) }

	_, err := s.Submit(context.Background(), testCampaign(150, 100))

	require.NoError(t, err)
	assert.Equal(t, []State{
		StateBuilding,
		StateAwaitingSignature,
		StateBroadcast,
		StatePolling,
		StateConfirmed,
	}, states)
}
