/*
Copyright © 2024 huimingz

prgen - AI-generated Pull Request descriptions from git diffs
*/
package main

import (
	"os"

	"github.com/huimingz/prgen/internal/cli"
)

// Version information (injected at build time)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	cli.SetVersionInfo(Version, GitCommit, BuildTime)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
