package provider

import (
	"context"
	"os"

	"github.com/borrowdev/borrow/internal/logging"
	"github.com/borrowdev/borrow/internal/template/model"
	"github.com/borrowdev/borrow/internal/template/treesync"
)

// LocalProvider implements Provider for templates on the local filesystem.
type LocalProvider struct{}

// NewLocalProvider creates a new local filesystem provider.
func NewLocalProvider() *LocalProvider {
	return &LocalProvider{}
}

// Name returns the provider name.
func (p *LocalProvider) Name() string {
	return "local"
}

// Fetch copies the template directory into targetCacheDir.
func (p *LocalProvider) Fetch(ctx context.Context, spec model.Specifier, targetCacheDir string) (*FetchResult, error) {
	logger := logging.Logger("provider.local")

	local, ok := spec.(model.LocalSpecifier)
	if !ok {
		return nil, NewInvalidSpecifierError(p.Name(), spec.String(), "local provider only serves local: templates")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(local.Path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", local.Path).Msg("template path does not exist")
			return nil, NewNotFoundError(p.Name(), local.String(), err)
		}
		return nil, NewFetchError(p.Name(), local.String(), err)
	}
	if !info.IsDir() {
		return nil, NewInvalidSpecifierError(p.Name(), local.String(), "template path must be a directory")
	}

	logger.Debug().Str("from", local.Path).Str("to", targetCacheDir).Msg("copying local template into cache")
	result, err := treesync.Sync(local.Path, targetCacheDir)
	if err != nil {
		return nil, NewFetchError(p.Name(), local.String(), err)
	}

	return &FetchResult{Source: local.Path, Sync: result}, nil
}
