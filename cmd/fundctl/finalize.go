package main

import (
	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/fundctl/internal/submit"
)

func NewFinalizeCmd() *cobra.Command {
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:   "finalize <campaign-id>",
		Short: "Finalize a campaign that missed its goal",
		Long: `Close out a campaign that did not reach its funding goal.

Only the campaign owner can finalize. No funds move, so no spending
post-condition is attached to the transaction.

Examples:
  # Finalize failed campaign 5
  fundctl finalize 5

  # Skip the confirmation prompt
  fundctl finalize 5 --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOwnerAction(cmd.Context(), args[0], submit.PathFinalizeFailure, skipConfirm)
		},
	}

	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
