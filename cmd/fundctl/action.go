package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"

	"github.com/altuslabsxyz/fundctl/internal/fund"
	"github.com/altuslabsxyz/fundctl/internal/output"
	"github.com/altuslabsxyz/fundctl/internal/submit"
)

// runOwnerAction fetches the campaign, checks that the decided path matches
// the invoked command, confirms with the user, and runs the submitter.
func runOwnerAction(ctx context.Context, arg string, want submit.Path, skipConfirm bool) error {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid campaign id %q", arg)
	}

	c, err := newConsole()
	if err != nil {
		return err
	}

	// Probe the wallet daemon first: without a signer there is nothing to
	// submit, so fail before touching the chain.
	w := c.newWallet()
	if !w.Ping(ctx) {
		return fmt.Errorf("wallet daemon unreachable at %s", c.cfg.WalletURL)
	}

	snap, err := fetchSnapshot(ctx, c)
	if err != nil {
		return err
	}

	camp, ok := c.store.Campaign(id)
	if !ok {
		if ferr, dropped := snap.Failed[id]; dropped {
			return fmt.Errorf("campaign %d could not be read: %v", id, ferr)
		}
		return fmt.Errorf("campaign %d does not exist", id)
	}

	// The closing function follows from the campaign outcome, not from the
	// command name; refuse a mismatched invocation instead of surprising
	// the user with the other transaction.
	path := submit.DecidePath(camp)
	if path != want {
		if path == submit.PathWithdraw {
			return fmt.Errorf("campaign %d met its goal; use 'fundctl withdraw %d'", id, id)
		}
		return fmt.Errorf("campaign %d did not meet its goal; use 'fundctl finalize %d'", id, id)
	}

	if !skipConfirm {
		prompt := promptui.Prompt{
			Label:     submit.ConfirmPrompt(camp, path),
			IsConfirm: true,
		}
		if _, err := prompt.Run(); err != nil {
			output.Info("Aborted.")
			return nil
		}
	}

	submitter := c.newSubmitter(w)
	submitter.OnConfirmed = func(ctx context.Context) {
		if snap, err := c.reader.FetchAll(ctx); err == nil {
			c.store.Replace(snap)
		}
	}

	spinner := output.NewSpinner()
	submitter.OnTransition = func(state submit.State) {
		switch state {
		case submit.StateAwaitingSignature:
			spinner.Start("Waiting for wallet signature...")
		case submit.StatePolling:
			spinner.Update("Waiting for confirmation...")
		default:
			if state.Terminal() {
				spinner.Stop()
			}
		}
	}

	result, err := submitter.Submit(ctx, camp)
	spinner.Stop()

	return renderResult(c, camp, result, err)
}

func renderResult(c *console, camp fund.Campaign, result *submit.Result, err error) error {
	switch result.State {
	case submit.StateConfirmed:
		if result.Path == submit.PathWithdraw {
			output.Success("Withdrew %s from campaign %d (tx %s, confirmed after %d check(s))",
				fund.DisplaySTX(camp.Raised), camp.ID, result.TxID, result.Attempts)
		} else {
			output.Success("Campaign %d finalized as failed (tx %s)", camp.ID, result.TxID)
		}
		if updated, ok := c.store.Campaign(camp.ID); ok {
			output.Info("Campaign %d is now %s", camp.ID, campaignStatus(updated))
		}
		return nil

	case submit.StateCancelled:
		output.Info("Signing cancelled in the wallet; nothing was broadcast.")
		return nil

	case submit.StateTimedOut:
		output.Warn("Transaction %s did not confirm within the polling budget.", result.TxID)
		return err

	default:
		var authErr *submit.AuthError
		if errors.As(err, &authErr) {
			output.Error("Not authorized: %v", authErr)
			return fmt.Errorf("only the campaign owner can perform this action")
		}
		return err
	}
}
