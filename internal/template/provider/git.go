package provider

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/borrowdev/borrow/internal/logging"
	"github.com/borrowdev/borrow/internal/template/model"
	"github.com/borrowdev/borrow/internal/template/store"
	"github.com/borrowdev/borrow/internal/template/treesync"
)

// ErrAlreadyExists is returned by a Cloner when the destination already
// holds a repository.
var ErrAlreadyExists = errors.New("repository already exists")

// Cloner performs a shallow, tag-less, single branch clone.
type Cloner interface {
	Clone(ctx context.Context, url, branch, dest string) error
}

// GoGitCloner clones with go-git; no git binary is required.
type GoGitCloner struct {
	// Token authenticates against GitHub when set.
	Token string
}

// NewGoGitCloner creates a cloner. token may be empty.
func NewGoGitCloner(token string) *GoGitCloner {
	return &GoGitCloner{Token: token}
}

// Clone clones branch of url into dest with depth 1 and no tags.
func (c *GoGitCloner) Clone(ctx context.Context, url, branch, dest string) error {
	opts := &git.CloneOptions{
		URL:           url,
		ReferenceName: plumbing.NewBranchReferenceName(branch),
		SingleBranch:  true,
		Depth:         1,
		Tags:          git.NoTags,
	}
	if c.Token != "" {
		opts.Auth = &githttp.BasicAuth{Username: "x-access-token", Password: c.Token}
	}

	if _, err := git.PlainCloneContext(ctx, dest, false, opts); err != nil {
		if errors.Is(err, git.ErrRepositoryAlreadyExists) {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GitProvider implements Provider for templates in a remote git repository.
type GitProvider struct {
	store  *store.Store
	cloner Cloner
}

// NewGitProvider creates a git provider.
func NewGitProvider(s *store.Store, cloner Cloner) *GitProvider {
	return &GitProvider{store: s, cloner: cloner}
}

// Name returns the provider name.
func (p *GitProvider) Name() string {
	return "git"
}

// Fetch clones the repository into the git cache (reusing an existing clone)
// and copies the template subdirectory into targetCacheDir.
func (p *GitProvider) Fetch(ctx context.Context, spec model.Specifier, targetCacheDir string) (*FetchResult, error) {
	logger := logging.Logger("provider.git")

	remote, ok := spec.(model.RemoteSpecifier)
	if !ok {
		return nil, NewInvalidSpecifierError(p.Name(), spec.String(), "git provider only serves registry templates")
	}

	gitDir, err := p.store.GitDir(remote)
	if err != nil {
		return nil, NewFetchError(p.Name(), remote.String(), err)
	}
	if err := os.MkdirAll(filepath.Dir(gitDir), 0755); err != nil {
		return nil, NewFetchError(p.Name(), remote.String(), fmt.Errorf("failed to create git cache: %w", err))
	}

	url, branch := remote.CloneURL(), remote.CloneBranch()
	logger.Debug().Str("url", url).Str("branch", branch).Str("dest", gitDir).Msg("cloning repository")

	result := &FetchResult{}
	if err := p.cloner.Clone(ctx, url, branch, gitDir); err != nil {
		if !errors.Is(err, ErrAlreadyExists) {
			return nil, NewFetchError(p.Name(), remote.String(), err)
		}
		logger.Info().Str("path", gitDir).Msg("repository already present, reusing")
		result.Reused = true
	}

	source := gitDir
	if remote.Subdir != "" {
		source = filepath.Join(gitDir, filepath.FromSlash(remote.Subdir))
	}
	info, err := os.Stat(source)
	if err != nil || !info.IsDir() {
		return nil, NewMissingSubdirectoryError(p.Name(), remote.String(), remote.Subdir)
	}
	result.Source = source

	sync, err := treesync.Sync(source, targetCacheDir)
	if err != nil {
		return nil, NewFetchError(p.Name(), remote.String(), err)
	}
	result.Sync = sync

	return result, nil
}

var (
	_ Provider = (*GitProvider)(nil)
	_ Provider = (*LocalProvider)(nil)
	_ Cloner   = (*GoGitCloner)(nil)
)
