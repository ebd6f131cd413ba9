package main

import (
	"github.com/borrowdev/borrow/internal/cli"
)

// Build information (set via ldflags during build)
var (
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	cli.GitCommit = gitCommit
	cli.BuildDate = buildDate

	cli.Execute()
}
