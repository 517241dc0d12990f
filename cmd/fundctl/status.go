package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/fundctl/internal/fund"
	"github.com/altuslabsxyz/fundctl/internal/output"
)

// StatusResult represents the JSON output for the status command.
type StatusResult struct {
	Contract        string           `json:"contract"`
	TipHeight       int64            `json:"tip_height,omitempty"`
	TotalRaised     string           `json:"total_raised"`
	Contributors    uint64           `json:"contributors"`
	ActiveCampaigns uint64           `json:"active_campaigns"`
	TotalCampaigns  uint64           `json:"total_campaigns"`
	FetchedAt       time.Time        `json:"fetched_at"`
	Campaigns       []CampaignResult `json:"campaigns"`
	Dropped         []uint64         `json:"dropped,omitempty"`
}

// CampaignResult represents one campaign in the JSON output.
type CampaignResult struct {
	ID         uint64 `json:"id"`
	Title      string `json:"title"`
	Goal       string `json:"goal"`
	Raised     string `json:"raised"`
	Deadline   string `json:"deadline"`
	Owner      string `json:"owner"`
	Active     bool   `json:"active"`
	Successful bool   `json:"successful"`
	Withdrawn  bool   `json:"withdrawn"`
	Finalized  bool   `json:"finalized"`
}

func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the campaign dashboard",
		Long: `Show global statistics and all campaigns tracked by the contract.

Examples:
  # Show the dashboard
  fundctl status

  # Show the dashboard in JSON format
  fundctl status --json`,
		RunE: runStatus,
	}

	return cmd
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	c, err := newConsole()
	if err != nil {
		return err
	}

	// Tip height is display-only; a failure degrades deadline rendering.
	if height, err := c.chain.TipHeight(ctx); err != nil {
		output.Debug("Tip height unavailable: %v", err)
	} else {
		c.store.SetTipHeight(height)
	}

	snap, err := fetchSnapshot(ctx, c)
	if err != nil {
		return err
	}

	if jsonMode {
		return printStatusJSON(c, snap)
	}

	renderDashboard(c, snap)
	return nil
}

func printStatusJSON(c *console, snap *fund.Snapshot) error {
	result := StatusResult{
		Contract:        c.contract.String(),
		TipHeight:       c.store.TipHeight(),
		TotalRaised:     snap.Stats.TotalRaised.String(),
		Contributors:    snap.Stats.Contributors,
		ActiveCampaigns: snap.Stats.ActiveCampaigns,
		TotalCampaigns:  snap.Stats.TotalCampaigns,
		FetchedAt:       snap.FetchedAt,
	}
	for _, camp := range snap.Campaigns {
		result.Campaigns = append(result.Campaigns, CampaignResult{
			ID:         camp.ID,
			Title:      camp.Title,
			Goal:       camp.Goal.String(),
			Raised:     camp.Raised.String(),
			Deadline:   fund.FormatDeadline(camp.Deadline, c.store.TipHeight()),
			Owner:      camp.Owner,
			Active:     camp.Active,
			Successful: camp.Successful,
			Withdrawn:  camp.Withdrawn,
			Finalized:  camp.Finalized,
		})
	}
	for id := range snap.Failed {
		result.Dropped = append(result.Dropped, id)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func renderDashboard(c *console, snap *fund.Snapshot) {
	output.Bold("Crowdfunding Dashboard (%s)", c.contract)
	fmt.Println(output.Separator())

	if height := c.store.TipHeight(); height > 0 {
		fmt.Printf("Tip height:       %d\n", height)
	} else {
		fmt.Printf("Tip height:       %s\n", color.HiBlackString("unavailable"))
	}
	fmt.Printf("Total raised:     %s\n", fund.DisplaySTX(snap.Stats.TotalRaised))
	fmt.Printf("Contributors:     %d\n", snap.Stats.Contributors)
	fmt.Printf("Active campaigns: %d of %d\n", snap.Stats.ActiveCampaigns, snap.Stats.TotalCampaigns)
	fmt.Println()

	if len(snap.Campaigns) == 0 {
		output.Info("No campaigns found.")
		return
	}

	table := output.NewTable("ID", "TITLE", "RAISED / GOAL", "DEADLINE", "STATUS")
	for _, camp := range snap.Campaigns {
		table.AddRow(
			fmt.Sprintf("%d", camp.ID),
			truncate(camp.Title, 28),
			fmt.Sprintf("%s / %s", fund.DisplaySTX(camp.Raised), fund.DisplaySTX(camp.Goal)),
			fund.FormatDeadline(camp.Deadline, c.store.TipHeight()),
			campaignStatus(camp),
		)
	}
	fmt.Print(table.String())

	if len(snap.Failed) > 0 {
		fmt.Println()
		output.Warn("%d campaign(s) could not be read and were dropped from this view", len(snap.Failed))
	}
}

func campaignStatus(c fund.Campaign) string {
	switch {
	case c.Withdrawn:
		return color.GreenString("withdrawn")
	case c.Finalized:
		return color.YellowString("finalized")
	case c.Active && c.GoalMet():
		return color.CyanString("goal met")
	case c.Active:
		return "active"
	default:
		return color.HiBlackString("inactive")
	}
}

// truncate shortens s to max display runes, never splitting a multibyte rune.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
