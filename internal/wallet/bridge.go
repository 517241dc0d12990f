package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/altuslabsxyz/fundctl/internal/clarity"
)

// DefaultBridgeTimeout leaves room for the user to act on the wallet prompt.
const DefaultBridgeTimeout = 2 * time.Minute

// BridgeClient talks to the wallet daemon over its local HTTP API.
type BridgeClient struct {
	baseURL string
	client  *http.Client
}

// NewBridgeClient creates a client for the wallet daemon at baseURL.
func NewBridgeClient(baseURL string, timeout time.Duration) *BridgeClient {
	if timeout == 0 {
		timeout = DefaultBridgeTimeout
	}
	return &BridgeClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Ping checks that the wallet daemon is reachable.
func (c *BridgeClient) Ping(ctx context.Context) bool {
	_, err := c.Session(ctx)
	return err == nil
}

// Session returns the wallet's current connection snapshot.
func (c *BridgeClient) Session(ctx context.Context) (Session, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/session", nil)
	if err != nil {
		return Session{}, fmt.Errorf("wallet session: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Session{}, fmt.Errorf("wallet session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Session{}, fmt.Errorf("wallet session: HTTP %d", resp.StatusCode)
	}

	var result struct {
		SignedIn bool   `json:"signed_in"`
		Address  string `json:"address"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Session{}, fmt.Errorf("wallet session: failed to parse response")
	}

	return Session{SignedIn: result.SignedIn, Address: result.Address}, nil
}

// signRequest is the body of a signing request. The request id makes a
// retried POST idempotent on the wallet side.
type signRequest struct {
	RequestID       string           `json:"request_id"`
	ContractAddress string           `json:"contract_address"`
	ContractName    string           `json:"contract_name"`
	Function        string           `json:"function"`
	Arguments       []*clarity.Value `json:"arguments"`
	PostConditions  []PostCondition  `json:"post_conditions,omitempty"`
}

// signResponse is the wallet's answer to a signing request.
type signResponse struct {
	Status string `json:"status"` // signed | rejected
	TxID   string `json:"txid"`
}

// SignContractCall submits the call to the wallet. The call blocks until the
// user accepts or rejects the wallet prompt (or the context expires).
func (c *BridgeClient) SignContractCall(ctx context.Context, call *ContractCall) (string, error) {
	body, err := json.Marshal(signRequest{
		RequestID:       uuid.NewString(),
		ContractAddress: call.Contract.Address,
		ContractName:    call.Contract.Name,
		Function:        call.Function,
		Arguments:       call.Arguments,
		PostConditions:  call.PostConditions,
	})
	if err != nil {
		return "", fmt.Errorf("wallet sign: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/contract-calls", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("wallet sign: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("wallet sign: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("wallet sign: HTTP %d: %s", resp.StatusCode, string(raw))
	}

	var result signResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("wallet sign: failed to parse response")
	}

	switch result.Status {
	case "signed":
		if result.TxID == "" {
			return "", fmt.Errorf("wallet sign: signed response without txid")
		}
		return result.TxID, nil
	case "rejected":
		return "", ErrRejected
	default:
		return "", fmt.Errorf("wallet sign: unexpected status %q", result.Status)
	}
}

// Ensure BridgeClient implements Connector.
var _ Connector = (*BridgeClient)(nil)
