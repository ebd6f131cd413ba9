// Package specifier turns user supplied template references into
// model.Specifier values.
//
// Supported forms:
//   - local:<path>           a template directory on the local filesystem
//   - <subdir>[@<branch>]    a template in the hosted registry (branch defaults to v1)
//   - gh:...                 reserved, not supported yet
package specifier

import (
	"path/filepath"
	"strings"

	"github.com/borrowdev/borrow/internal/template/model"
)

const (
	// LocalPrefix marks a local filesystem reference.
	LocalPrefix = "local:"
	// GitHubPrefix marks an arbitrary GitHub repository reference.
	GitHubPrefix = "gh:"
)

// Resolve parses a template reference. It performs no I/O.
func Resolve(reference string) (model.Specifier, error) {
	ref := strings.TrimSpace(reference)

	switch {
	case strings.HasPrefix(ref, LocalPrefix):
		return resolveLocal(reference, strings.TrimPrefix(ref, LocalPrefix))
	case strings.HasPrefix(ref, GitHubPrefix):
		return nil, newUnsupportedError(reference, "GitHub templates are not yet supported")
	default:
		return resolveRegistry(reference, ref)
	}
}

func resolveLocal(reference, path string) (model.Specifier, error) {
	if path == "" {
		return nil, newInvalidError(reference, "local path cannot be empty")
	}

	name := filepath.Base(filepath.Clean(path))
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return nil, newInvalidError(reference, "local path has no final segment to name the template")
	}

	return model.LocalSpecifier{Name: name, Path: path}, nil
}

func resolveRegistry(reference, ref string) (model.Specifier, error) {
	subdir, branch, hasBranch := strings.Cut(ref, "@")
	if !hasBranch {
		branch = model.DefaultRegistryBranch
	}

	subdir = strings.Trim(subdir, "/")
	if subdir == "" {
		return nil, newInvalidError(reference, "template name cannot be empty")
	}
	if branch == "" {
		return nil, newInvalidError(reference, "branch after '@' cannot be empty")
	}
	for _, seg := range strings.Split(subdir, "/") {
		if seg == ".." || seg == "." {
			return nil, newInvalidError(reference, "template name cannot contain relative path segments")
		}
	}

	return model.RemoteSpecifier{
		Name:   model.RemoteName(model.RegistryOwner, model.RegistryRepo, branch, subdir),
		Owner:  model.RegistryOwner,
		Repo:   model.RegistryRepo,
		Branch: branch,
		Subdir: subdir,
	}, nil
}
