// Package wallet integrates with the external wallet daemon that owns key
// material. The console never signs anything itself; it asks the wallet to
// sign and broadcast, and only ever holds a read-only session snapshot.
package wallet

import (
	"context"
	"errors"

	"cosmossdk.io/math"

	"github.com/altuslabsxyz/fundctl/internal/chain"
	"github.com/altuslabsxyz/fundctl/internal/clarity"
)

// ErrRejected is returned when the user declines the signing request in the
// wallet.
var ErrRejected = errors.New("signing request rejected by user")

// ErrNotConnected is returned when no wallet session is established.
var ErrNotConnected = errors.New("wallet is not connected")

// Session is a read-only snapshot of the wallet connection state.
type Session struct {
	SignedIn bool
	Address  string
}

// PostCondition caps how much value a transaction may move out of the
// contract. The wallet refuses to sign if the transaction could violate it.
type PostCondition struct {
	// Principal whose outbound transfer is capped.
	Principal string `json:"principal"`
	// MaxAmount is the cap in micro-units, as a decimal string.
	MaxAmount string `json:"max_amount"`
}

// NewTransferCap builds a "transfer at most this amount" condition.
func NewTransferCap(principal string, maxAmount math.Int) PostCondition {
	return PostCondition{
		Principal: principal,
		MaxAmount: maxAmount.String(),
	}
}

// ContractCall is a state-changing call for the wallet to sign and broadcast.
type ContractCall struct {
	Contract       chain.ContractID
	Function       string
	Arguments      []*clarity.Value
	PostConditions []PostCondition
}

// Connector is the wallet-side capability surface the console depends on.
type Connector interface {
	// Session returns the current connection snapshot.
	Session(ctx context.Context) (Session, error)

	// SignContractCall hands the call to the wallet for signing and
	// broadcast. It returns the transaction id on acceptance, or
	// ErrRejected when the user cancels.
	SignContractCall(ctx context.Context, call *ContractCall) (string, error)
}
