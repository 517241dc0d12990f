package main

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Set via -ldflags at release time; "dev" identifies local builds.
var (
	Version = "dev"
	Commit  = ""
)

type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := versionInfo{
				Version:   Version,
				Commit:    Commit,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}

			if jsonMode {
				data, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			if info.Commit != "" {
				fmt.Printf("fundctl %s (%s)\n", info.Version, info.Commit)
			} else {
				fmt.Printf("fundctl %s\n", info.Version)
			}
			fmt.Printf("%s, %s\n", info.GoVersion, info.Platform)
			return nil
		},
	}
}
