package provider

import (
	"context"

	"github.com/borrowdev/borrow/internal/template/model"
	"github.com/borrowdev/borrow/internal/template/treesync"
)

// Provider populates a template cache directory from a template source.
type Provider interface {
	// Fetch copies the template named by spec into targetCacheDir.
	// Files already present in targetCacheDir are kept.
	Fetch(ctx context.Context, spec model.Specifier, targetCacheDir string) (*FetchResult, error)

	// Name returns the provider name (e.g., "git", "local").
	Name() string
}

// FetchResult describes a completed fetch.
type FetchResult struct {
	// Source is the directory the cache was populated from.
	Source string
	// Reused is set when an existing clone was used instead of cloning again.
	Reused bool
	// Sync is the summary of the copy into the cache.
	Sync *treesync.Result
}
