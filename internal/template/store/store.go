// Package store maps template specifiers to their on-disk cache locations
// under the data directory:
//
//	<dataDir>/start/templates/<name>   fetched template (placeholders.borrow + content/)
//	<dataDir>/start/git/<name>         shallow clone, remote templates only
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/borrowdev/borrow/internal/logging"
	"github.com/borrowdev/borrow/internal/template/model"
)

const (
	startDir     = "start"
	templatesDir = "templates"
	gitDir       = "git"
)

var (
	// ErrNotApplicable is returned by GitDir for specifiers without a git cache.
	ErrNotApplicable = errors.New("git cache is only applicable to remote templates")
	// ErrTemplateNotCached is returned by Remove when nothing exists for the specifier.
	ErrTemplateNotCached = errors.New("template is not cached")
)

// Store resolves cache paths for a single data directory.
// Path methods perform no I/O.
type Store struct {
	dataDir string
}

// New creates a Store rooted at dataDir.
func New(dataDir string) *Store {
	return &Store{dataDir: dataDir}
}

// Root returns <dataDir>/start.
func (s *Store) Root() string {
	return filepath.Join(s.dataDir, startDir)
}

// TemplatesRoot returns the directory holding every cached template.
func (s *Store) TemplatesRoot() string {
	return filepath.Join(s.Root(), templatesDir)
}

// GitRoot returns the directory holding every git clone.
func (s *Store) GitRoot() string {
	return filepath.Join(s.Root(), gitDir)
}

// TemplateDir returns the cache root of the template named by spec.
func (s *Store) TemplateDir(spec model.Specifier) (string, error) {
	switch sp := spec.(type) {
	case model.LocalSpecifier:
		return filepath.Join(s.TemplatesRoot(), sp.Name), nil
	case model.RemoteSpecifier:
		return filepath.Join(s.TemplatesRoot(), sp.Name), nil
	default:
		return "", fmt.Errorf("unknown specifier type %T", spec)
	}
}

// GitDir returns the clone directory of a remote specifier.
func (s *Store) GitDir(spec model.Specifier) (string, error) {
	switch sp := spec.(type) {
	case model.RemoteSpecifier:
		return filepath.Join(s.GitRoot(), sp.Name), nil
	case model.LocalSpecifier:
		return "", ErrNotApplicable
	default:
		return "", fmt.Errorf("unknown specifier type %T", spec)
	}
}

// Exists reports whether the template cache directory for spec is present.
func (s *Store) Exists(spec model.Specifier) bool {
	dir, err := s.TemplateDir(spec)
	if err != nil {
		return false
	}
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}

// RemoveResult lists the cache directories deleted by Remove.
type RemoveResult struct {
	Removed []string
}

// Remove deletes the template cache and, for remote specifiers, the git cache.
// ErrTemplateNotCached is returned when neither directory existed.
func (s *Store) Remove(spec model.Specifier) (*RemoveResult, error) {
	logger := logging.Logger("store")

	templateDir, err := s.TemplateDir(spec)
	if err != nil {
		return nil, err
	}
	targets := []string{templateDir}

	gitPath, err := s.GitDir(spec)
	switch {
	case err == nil:
		targets = append(targets, gitPath)
	case errors.Is(err, ErrNotApplicable):
	default:
		return nil, err
	}

	result := &RemoveResult{}
	for _, dir := range targets {
		if _, err := os.Lstat(dir); err != nil {
			if os.IsNotExist(err) {
				logger.Debug().Str("path", dir).Msg("cache directory not present")
				continue
			}
			return result, fmt.Errorf("failed to stat %s: %w", dir, err)
		}
		if err := os.RemoveAll(dir); err != nil {
			return result, fmt.Errorf("failed to remove %s: %w", dir, err)
		}
		logger.Info().Str("path", dir).Msg("removed cache directory")
		result.Removed = append(result.Removed, dir)
	}

	if len(result.Removed) == 0 {
		return result, ErrTemplateNotCached
	}
	return result, nil
}

// Entry is a cached template found by List.
type Entry struct {
	// Name is the cache key, relative to TemplatesRoot. Registry names may
	// contain '/' for nested template directories.
	Name string
	// Path is the template cache root.
	Path string
	// HasGitCache is set when a git clone with the same name exists.
	HasGitCache bool
}

// List returns the cached templates sorted by name. A directory counts as a
// template when it holds a placeholders file or a content directory; other
// directories are descended into.
func (s *Store) List() ([]Entry, error) {
	root := s.TemplatesRoot()
	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read template cache: %w", err)
	}

	var entries []Entry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || path == root {
			return nil
		}
		if !isTemplateRoot(path) {
			return nil
		}

		name, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		name = filepath.ToSlash(name)
		entries = append(entries, Entry{
			Name:        name,
			Path:        path,
			HasGitCache: dirExists(filepath.Join(s.GitRoot(), filepath.FromSlash(name))),
		})
		return filepath.SkipDir
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list template cache: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Names returns the names of every cached template.
func (s *Store) Names() ([]string, error) {
	entries, err := s.List()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names, nil
}

func isTemplateRoot(dir string) bool {
	if _, err := os.Stat(filepath.Join(dir, model.PlaceholdersFile)); err == nil {
		return true
	}
	return dirExists(filepath.Join(dir, model.ContentDir))
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
