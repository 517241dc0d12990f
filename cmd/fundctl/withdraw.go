package main

import (
	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/fundctl/internal/submit"
)

func NewWithdrawCmd() *cobra.Command {
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:   "withdraw <campaign-id>",
		Short: "Withdraw the funds of a successful campaign",
		Long: `Withdraw the raised funds of a campaign that met its goal.

Only the campaign owner can withdraw. The signing request carries a
post-condition capping the transfer at the raised amount, so the wallet
refuses to sign anything that would move more.

Examples:
  # Withdraw campaign 3's funds
  fundctl withdraw 3

  # Skip the confirmation prompt
  fundctl withdraw 3 --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOwnerAction(cmd.Context(), args[0], submit.PathWithdraw, skipConfirm)
		},
	}

	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
