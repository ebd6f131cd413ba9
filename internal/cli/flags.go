package cli

import (
	"os"
	"os/exec"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/borrowdev/borrow/internal/config"
	"github.com/borrowdev/borrow/internal/template/provider"
)

// Common flag names and descriptions
const (
	// Flag names
	FlagDataDir   = "data-dir"
	FlagConfig    = "config"
	FlagTemplate  = "template"
	FlagTargetDir = "target-dir"
	FlagVar       = "var"
	FlagVarsFile  = "vars-file"
	FlagYes       = "yes"
	FlagForce     = "force"
	FlagDryRun    = "dry-run"
	FlagVerbose   = "verbose"
	FlagNoColor   = "no-color"
	FlagQuiet     = "quiet"
	FlagDebug     = "debug"

	// Flag descriptions
	DescDataDir   = "Data directory holding the template cache"
	DescConfig    = "Path to config file"
	DescTemplate  = "Template reference: local:<path> or <name>[@<branch>]"
	DescTargetDir = "Directory that receives the project"
	DescVar       = "Placeholder value as KEY=VALUE (repeatable, @file:path reads a file)"
	DescVarsFile  = "YAML file of placeholder values"
	DescYes       = "Do not prompt; use defaults and provided values"
	DescForce     = "Overwrite existing files"
	DescDryRun    = "Show actions without execution"
	DescVerbose   = "Verbose output"
	DescNoColor   = "Disable colored output"
	DescQuiet     = "Suppress non-error output"
	DescDebug     = "Enable debug logging"
)

// getGitHubToken retrieves a GitHub token for cloning.
// Priority: config/BORROW_GITHUB__TOKEN > GITHUB_TOKEN > GH_TOKEN > gh auth token
func getGitHubToken(cfg *config.Config) string {
	if cfg != nil && cfg.GitHub.Token != "" {
		return cfg.GitHub.Token
	}

	if token := provider.GetGitHubTokenFromEnv(); token != "" {
		return token
	}

	// Only attempt if gh command is available
	if _, err := exec.LookPath("gh"); err == nil {
		output, err := exec.Command("gh", "auth", "token").Output()
		if err == nil {
			if token := strings.TrimSpace(string(output)); token != "" {
				return token
			}
		}
	}

	return ""
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// stdinIsTerminal is swapped in tests.
var stdinIsTerminal = func() bool { return isTerminal(os.Stdin) }

// shouldPrompt decides whether placeholder values are asked interactively.
func shouldPrompt(yes bool, cfg *config.Config) bool {
	if yes {
		return false
	}
	if cfg != nil && cfg.Prompt.NonInteractive {
		return false
	}
	return stdinIsTerminal()
}
