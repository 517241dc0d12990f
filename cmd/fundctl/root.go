package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/fundctl/internal/config"
	"github.com/altuslabsxyz/fundctl/internal/output"
)

// Global configuration variables
var (
	jsonMode   bool
	noColor    bool
	verbose    bool
	configPath string // Path to fundctl.toml (--config flag)

	// loadedFileConfig holds the parsed fundctl.toml values.
	loadedFileConfig *config.FileConfig
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fundctl",
		Short: "Admin console for the crowdfunding contract",
		Long: `fundctl is an admin console for a crowdfunding smart contract.

It reads campaign state from the chain and lets the campaign owner submit
the closing transaction: withdraw the funds of a successful campaign, or
finalize a campaign that missed its goal.

Examples:
  # Show the dashboard once
  fundctl status

  # Keep the dashboard live, refreshing every 30 seconds
  fundctl watch

  # Withdraw the funds of campaign 3 (owner only)
  fundctl withdraw 3

  # Finalize failed campaign 5 (owner only)
  fundctl finalize 5`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loader := config.NewLoader(configPath, output.DefaultLogger)
			fileCfg, configFile, err := loader.Load()
			if err != nil {
				return err
			}
			loadedFileConfig = fileCfg

			// Priority: default < fundctl.toml < env < flag
			if !cmd.Flags().Changed("verbose") && fileCfg.Verbose != nil {
				verbose = *fileCfg.Verbose
			}
			if !cmd.Flags().Changed("json") && fileCfg.JSON != nil {
				jsonMode = *fileCfg.JSON
			}
			if !cmd.Flags().Changed("no-color") && fileCfg.NoColor != nil {
				noColor = *fileCfg.NoColor
			}
			if os.Getenv("NO_COLOR") != "" && !cmd.Flags().Changed("no-color") {
				noColor = true
			}

			output.DefaultLogger.SetNoColor(noColor)
			output.DefaultLogger.SetVerbose(verbose)
			output.DefaultLogger.SetJSONMode(jsonMode)

			if configFile != "" && verbose {
				output.DefaultLogger.Debug("Using config file: %s", configFile)
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to fundctl.toml")
	cmd.PersistentFlags().BoolVar(&jsonMode, "json", false, "Output in JSON format")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	cmd.AddCommand(NewStatusCmd())
	cmd.AddCommand(NewCampaignsCmd())
	cmd.AddCommand(NewWatchCmd())
	cmd.AddCommand(NewWithdrawCmd())
	cmd.AddCommand(NewFinalizeCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}
