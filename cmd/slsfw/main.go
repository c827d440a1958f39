// Package main is the entry point for the slsfw CLI.
//
// slsfw deploys web framework apps as serverless functions behind an API
// gateway, optionally binding custom domains through cloud DNS. Inputs are
// read from serverless.yml (or .yaml, .json, .hcl) and normalized before
// anything is deployed.
//
// Commands: init, deploy, remove, render, version.
//
// For detailed usage information, run:
//
//	slsfw --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/slsfw/cmd/slsfw/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
