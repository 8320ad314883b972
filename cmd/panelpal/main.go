// Package main provides the panelpal command-line tool.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/PatrickWeller/panelpal/internal/panelapp"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		if errors.Is(err, panelapp.ErrPanelNotFound) || errors.Is(err, panelapp.ErrPanelVersionNotFound) {
			fmt.Fprintf(os.Stderr, "Hint: check the panel ID and version on https://panelapp.genomicsengland.co.uk\n")
		}
		return ExitError
	}
	return ExitSuccess
}
