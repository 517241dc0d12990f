package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/fundctl/internal/fund"
	"github.com/altuslabsxyz/fundctl/internal/output"
)

func NewCampaignsCmd() *cobra.Command {
	var campaignID int64

	cmd := &cobra.Command{
		Use:   "campaigns",
		Short: "List campaigns or show one in detail",
		Long: `List all campaigns, or show the full record of a single campaign.

Examples:
  # List all campaigns
  fundctl campaigns

  # Show campaign 3 in detail
  fundctl campaigns --id 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			c, err := newConsole()
			if err != nil {
				return err
			}

			if height, err := c.chain.TipHeight(ctx); err == nil {
				c.store.SetTipHeight(height)
			}

			snap, err := fetchSnapshot(ctx, c)
			if err != nil {
				return err
			}

			if campaignID >= 0 {
				return showCampaign(c, snap, uint64(campaignID))
			}

			if jsonMode {
				return printStatusJSON(c, snap)
			}
			renderDashboard(c, snap)
			return nil
		},
	}

	cmd.Flags().Int64Var(&campaignID, "id", -1, "Show a single campaign by id")

	return cmd
}

func showCampaign(c *console, snap *fund.Snapshot, id uint64) error {
	var camp fund.Campaign
	found := false
	for _, candidate := range snap.Campaigns {
		if candidate.ID == id {
			camp = candidate
			found = true
			break
		}
	}
	if !found {
		if err, dropped := snap.Failed[id]; dropped {
			return fmt.Errorf("campaign %d could not be read: %v", id, err)
		}
		return fmt.Errorf("campaign %d does not exist", id)
	}

	if jsonMode {
		data, err := json.MarshalIndent(CampaignResult{
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
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	output.Bold("Campaign %d", camp.ID)
	fmt.Println(output.Separator())
	fmt.Printf("Title:       %s\n", camp.Title)
	if camp.Description != "" {
		fmt.Printf("Description: %s\n", camp.Description)
	}
	fmt.Printf("Owner:       %s\n", camp.Owner)
	fmt.Printf("Goal:        %s\n", fund.DisplaySTX(camp.Goal))
	fmt.Printf("Raised:      %s\n", fund.DisplaySTX(camp.Raised))
	fmt.Printf("Deadline:    %s\n", fund.FormatDeadline(camp.Deadline, c.store.TipHeight()))
	fmt.Printf("Status:      %s\n", campaignStatus(camp))

	return nil
}
