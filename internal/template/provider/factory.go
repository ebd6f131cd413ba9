package provider

import (
	"fmt"
	"os"

	"github.com/borrowdev/borrow/internal/template/model"
	"github.com/borrowdev/borrow/internal/template/store"
)

// Options configures provider construction.
type Options struct {
	// Store locates the git cache for remote templates. Required for remote specifiers.
	Store *store.Store
	// Cloner overrides the git implementation. Defaults to GoGitCloner.
	Cloner Cloner
	// GitHubToken authenticates clones when set.
	GitHubToken string
}

// NewProvider returns the provider serving spec.
func NewProvider(spec model.Specifier, opts Options) (Provider, error) {
	switch sp := spec.(type) {
	case model.LocalSpecifier:
		return NewLocalProvider(), nil

	case model.RemoteSpecifier:
		if opts.Store == nil {
			return nil, NewInvalidSpecifierError("git", sp.String(), "no template store configured for remote templates")
		}
		cloner := opts.Cloner
		if cloner == nil {
			cloner = NewGoGitCloner(opts.GitHubToken)
		}
		return NewGitProvider(opts.Store, cloner), nil

	default:
		return nil, fmt.Errorf("unknown specifier type %T", spec)
	}
}

// GetGitHubTokenFromEnv retrieves the GitHub token from environment variables.
// Checks GITHUB_TOKEN first, then falls back to GH_TOKEN.
func GetGitHubTokenFromEnv() string {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token
	}
	if token := os.Getenv("GH_TOKEN"); token != "" {
		return token
	}
	return ""
}
