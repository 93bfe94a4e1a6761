package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"seatplan-viewer-cli/config"
)

func newVersionCmd(build BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), versionLine(build))
			return err
		},
	}
}

func versionLine(build BuildInfo) string {
	version := build.Version
	if version == "" {
		version = "dev"
	}
	line := config.AppName + " " + version
	if build.Commit != "none" && build.Commit != "" {
		line += " (" + build.Commit + ")"
	}
	return line
}
