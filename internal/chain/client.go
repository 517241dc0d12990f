// Package chain provides the HTTP client for the chain API: read-only
// contract calls, tip height, and transaction status lookups.
package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/altuslabsxyz/fundctl/internal/clarity"
)

const (
	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 10 * time.Second
)

// TxStatus is the lifecycle status of a broadcast transaction.
type TxStatus string

const (
	TxStatusPending TxStatus = "pending"
	TxStatusSuccess TxStatus = "success"
	TxStatusFailed  TxStatus = "failed"
)

// Terminal reports whether the status ends the confirmation wait.
func (s TxStatus) Terminal() bool {
	return s == TxStatusSuccess || s == TxStatusFailed
}

// ContractID identifies a deployed contract.
type ContractID struct {
	Address string
	Name    string
}

func (c ContractID) String() string {
	return c.Address + "." + c.Name
}

// Client talks to a chain API node.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a chain API client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// callReadRequest is the body of a read-only call.
type callReadRequest struct {
	Sender    string           `json:"sender"`
	Arguments []*clarity.Value `json:"arguments"`
}

// callReadResponse is the envelope of a read-only call result.
type callReadResponse struct {
	Okay   bool            `json:"okay"`
	Result json.RawMessage `json:"result"`
	Cause  string          `json:"cause"`
}

// CallReadOnly issues a read-only contract call and returns the decoded
// result value. No fee or signature is involved.
func (c *Client) CallReadOnly(ctx context.Context, contract ContractID, function string, args ...*clarity.Value) (*clarity.Value, error) {
	if args == nil {
		args = []*clarity.Value{}
	}
	reqBody, err := json.Marshal(callReadRequest{
		Sender:    contract.Address,
		Arguments: args,
	})
	if err != nil {
		return nil, &RPCError{Operation: "call-read", Message: err.Error()}
	}

	url := fmt.Sprintf("%s/v2/contracts/call-read/%s/%s/%s", c.baseURL, contract.Address, contract.Name, function)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, &RPCError{Operation: "call-read", Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &RPCError{Operation: "call-read", Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &NotFoundError{Resource: fmt.Sprintf("contract %s", contract)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &RPCError{Operation: "call-read", Message: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RPCError{Operation: "call-read", Message: err.Error()}
	}

	var envelope callReadResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &RPCError{Operation: "call-read", Message: "failed to parse response"}
	}
	if !envelope.Okay {
		return nil, &CallError{Function: function, Cause: envelope.Cause}
	}

	return clarity.Parse(envelope.Result)
}

// TipHeight returns the current chain tip height.
func (c *Client) TipHeight(ctx context.Context) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v2/info", nil)
	if err != nil {
		return 0, &RPCError{Operation: "info", Message: err.Error()}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, &RPCError{Operation: "info", Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, &RPCError{Operation: "info", Message: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}

	var info struct {
		TipHeight int64 `json:"stacks_tip_height"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return 0, &RPCError{Operation: "info", Message: "failed to parse response"}
	}

	return info.TipHeight, nil
}

// TransactionStatus looks up the status of a broadcast transaction.
// Statuses other than pending/success are reported as failed.
func (c *Client) TransactionStatus(ctx context.Context, txID string) (TxStatus, error) {
	url := fmt.Sprintf("%s/extended/v1/tx/%s", c.baseURL, txID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &RPCError{Operation: "tx-status", Message: err.Error()}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &RPCError{Operation: "tx-status", Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// The node may not have indexed a fresh transaction yet.
		return TxStatusPending, nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", &RPCError{Operation: "tx-status", Message: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}

	var result struct {
		TxStatus string `json:"tx_status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &RPCError{Operation: "tx-status", Message: "failed to parse response"}
	}

	switch result.TxStatus {
	case "pending":
		return TxStatusPending, nil
	case "success":
		return TxStatusSuccess, nil
	default:
		return TxStatusFailed, nil
	}
}
