package main

import (
	"errors"
	"fmt"
	"os"

	"seatplan-viewer-cli/cmd"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := cmd.Execute(cmd.BuildInfo{Version: version, Commit: commit}); err != nil {
		if !errors.Is(err, cmd.ErrReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
