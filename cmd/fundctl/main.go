package main

import (
	"os"

	"github.com/altuslabsxyz/fundctl/internal/output"
)

func main() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		output.Error("%v", err)
		os.Exit(1)
	}
}
