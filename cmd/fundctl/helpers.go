package main

import (
	"context"
	"fmt"

	"github.com/altuslabsxyz/fundctl/internal/chain"
	"github.com/altuslabsxyz/fundctl/internal/config"
	"github.com/altuslabsxyz/fundctl/internal/fund"
	"github.com/altuslabsxyz/fundctl/internal/output"
	"github.com/altuslabsxyz/fundctl/internal/submit"
	"github.com/altuslabsxyz/fundctl/internal/wallet"
)

// console bundles the collaborators every command needs, built once per
// invocation from the resolved configuration.
type console struct {
	cfg      *config.Config
	chain    *chain.Client
	contract chain.ContractID
	reader   *fund.Reader
	store    *fund.Store
}

// newConsole resolves the configuration and wires the chain-facing pieces.
func newConsole() (*console, error) {
	if loadedFileConfig == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	cfg, err := loadedFileConfig.Resolve()
	if err != nil {
		return nil, err
	}

	client := chain.NewClient(cfg.APIURL, 0)
	contract := chain.ContractID{Address: cfg.ContractAddress, Name: cfg.ContractName}

	return &console{
		cfg:      cfg,
		chain:    client,
		contract: contract,
		reader:   fund.NewReader(client, contract, output.DefaultLogger),
		store:    fund.NewStore(),
	}, nil
}

// fetchSnapshot fetches a fresh snapshot and installs it in the store. A
// missing contract is reported with the configured identifiers so a bad
// config is obvious.
func fetchSnapshot(ctx context.Context, c *console) (*fund.Snapshot, error) {
	snap, err := c.reader.FetchAll(ctx)
	if err != nil {
		if chain.IsNotFound(err) {
			return nil, fmt.Errorf("contract %s not found; check contract_address and contract_name", c.contract)
		}
		return nil, err
	}
	c.store.Replace(snap)
	return snap, nil
}

// newWallet creates the wallet bridge client.
func (c *console) newWallet() *wallet.BridgeClient {
	return wallet.NewBridgeClient(c.cfg.WalletURL, 0)
}

// newSubmitter wires a Submitter whose confirmation hook refreshes the store.
func (c *console) newSubmitter(w wallet.Connector) *submit.Submitter {
	s := submit.NewSubmitter(c.contract, w, c.chain, submit.PollOptions{
		Interval:    c.cfg.PollInterval,
		MaxAttempts: c.cfg.PollMaxAttempts,
	}, output.DefaultLogger)
	return s
}
