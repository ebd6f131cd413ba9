package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sahilm/fuzzy"

	"github.com/borrowdev/borrow/internal/logging"
	"github.com/borrowdev/borrow/internal/template/generator"
	"github.com/borrowdev/borrow/internal/template/model"
	"github.com/borrowdev/borrow/internal/template/parser"
	"github.com/borrowdev/borrow/internal/template/provider"
	"github.com/borrowdev/borrow/internal/template/specifier"
	"github.com/borrowdev/borrow/internal/template/store"
)

// NewOptions holds options for instantiating a template.
type NewOptions struct {
	// Reference is the template reference (local:<path> or <name>[@<branch>]).
	Reference string
	// TargetDir receives the template output under a folder named after the template.
	TargetDir string
	// DataDir is the root of the template cache.
	DataDir string
	// Prompter asks for placeholder values when Interactive is set.
	Prompter Prompter
	// Interactive enables prompting.
	Interactive bool
	// Vars holds raw KEY=VALUE pairs from --var.
	Vars []string
	// VarsFile is an optional YAML file of placeholder values.
	VarsFile string
	// Overwrite replaces existing files in the target.
	Overwrite bool
	// DryRun reports what would be written without writing.
	DryRun bool
	// Cloner overrides the git implementation (tests).
	Cloner provider.Cloner
	// GitHubToken authenticates clones when set.
	GitHubToken string
}

// NewResult holds the result of a New run.
type NewResult struct {
	// Spec is the resolved specifier.
	Spec model.Specifier
	// CacheDir is the template cache root.
	CacheDir string
	// Fetch summarizes the fetch into the cache.
	Fetch *provider.FetchResult
	// Catalog holds the placeholder definitions.
	Catalog model.Catalog
	// Values holds the resolved placeholder values.
	Values model.Values
	// Install summarizes the installation.
	Install *generator.InstallResult
}

// New runs the full pipeline: resolve, fetch into the cache, read the
// placeholder definitions, collect values and install into TargetDir.
func New(ctx context.Context, opts NewOptions) (*NewResult, error) {
	logger := logging.Logger("app")
	done := logging.Operation(logger, "start new")
	defer done()

	if opts.TargetDir == "" {
		return nil, NewValidationError("target directory is required", nil)
	}
	if opts.DataDir == "" {
		return nil, NewValidationError("data directory is required", nil)
	}

	spec, err := specifier.Resolve(opts.Reference)
	if err != nil {
		return nil, NewSpecifierError("failed to resolve template", err)
	}
	logger.Debug().Str("spec", spec.String()).Str("name", spec.SpecName()).Msg("template resolved")

	provided, err := loadProvidedValues(opts)
	if err != nil {
		return nil, err
	}

	s := store.New(opts.DataDir)
	cacheDir, err := s.TemplateDir(spec)
	if err != nil {
		return nil, NewTemplateFetchError("failed to locate template cache", err)
	}

	prov, err := provider.NewProvider(spec, provider.Options{
		Store:       s,
		Cloner:      opts.Cloner,
		GitHubToken: opts.GitHubToken,
	})
	if err != nil {
		return nil, NewTemplateFetchError("failed to create provider", err)
	}

	fetch, err := prov.Fetch(ctx, spec, cacheDir)
	if err != nil {
		return nil, NewTemplateFetchError(fmt.Sprintf("failed to fetch %s", spec), err)
	}

	tmpl := &model.Template{Spec: spec, RootPath: cacheDir}
	catalog, err := parser.ParseDefinitionsFile(tmpl.PlaceholdersPath())
	if err != nil {
		return nil, NewPlaceholderParseError("failed to read placeholder definitions", err)
	}
	tmpl.Placeholders = catalog

	prompter := opts.Prompter
	if prompter == nil {
		prompter = NoPrompter{}
	}
	values, err := CollectValues(catalog, CollectOptions{
		Prompter:    prompter,
		Interactive: opts.Interactive,
		Provided:    provided,
	})
	if err != nil {
		return nil, err
	}

	install, err := generator.Install(ctx, generator.InstallOptions{
		TemplateRoot: tmpl.RootPath,
		TargetDir:    opts.TargetDir,
		Values:       values,
		Overwrite:    opts.Overwrite,
		DryRun:       opts.DryRun,
	})
	if err != nil {
		return nil, NewInstallError("failed to install template", err)
	}

	return &NewResult{
		Spec:     spec,
		CacheDir: cacheDir,
		Fetch:    fetch,
		Catalog:  catalog,
		Values:   values,
		Install:  install,
	}, nil
}

// loadProvidedValues merges --vars-file and --var values. --var wins.
func loadProvidedValues(opts NewOptions) (map[string]string, error) {
	provided := make(map[string]string)

	if opts.VarsFile != "" {
		fromFile, err := LoadVarsFile(opts.VarsFile)
		if err != nil {
			return nil, err
		}
		fromFile, err = ResolveFileValues(fromFile, filepath.Dir(opts.VarsFile))
		if err != nil {
			return nil, err
		}
		for k, v := range fromFile {
			provided[k] = v
		}
	}

	if len(opts.Vars) > 0 {
		fromFlags, err := ParseVarFlags(opts.Vars)
		if err != nil {
			return nil, err
		}
		cwd, err := os.Getwd()
		if err != nil {
			return nil, NewVariableLoadError("failed to get current directory", err)
		}
		fromFlags, err = ResolveFileValues(fromFlags, cwd)
		if err != nil {
			return nil, err
		}
		for k, v := range fromFlags {
			provided[k] = v
		}
	}

	return provided, nil
}

// DeleteOptions holds options for deleting a cached template.
type DeleteOptions struct {
	// Reference is the template reference.
	Reference string
	// DataDir is the root of the template cache.
	DataDir string
}

// DeleteResult holds the result of a Delete run.
type DeleteResult struct {
	// Spec is the resolved specifier.
	Spec model.Specifier
	// Removed lists the deleted cache directories.
	Removed []string
	// NotFound is set when nothing was cached for the reference.
	NotFound bool
	// Suggestions are cached template names similar to the reference.
	Suggestions []string
}

// maxSuggestions bounds DeleteResult.Suggestions.
const maxSuggestions = 3

// Delete removes the cache directories of a template. A template that is
// not cached is reported through DeleteResult.NotFound, not as an error.
func Delete(opts DeleteOptions) (*DeleteResult, error) {
	logger := logging.Logger("app")

	if opts.DataDir == "" {
		return nil, NewValidationError("data directory is required", nil)
	}

	spec, err := specifier.Resolve(opts.Reference)
	if err != nil {
		return nil, NewSpecifierError("failed to resolve template", err)
	}

	s := store.New(opts.DataDir)
	removed, err := s.Remove(spec)
	if err != nil {
		if !errors.Is(err, store.ErrTemplateNotCached) {
			return nil, NewDeleteError(fmt.Sprintf("failed to delete %s", spec.SpecName()), err)
		}

		logger.Debug().Str("name", spec.SpecName()).Msg("template not cached")
		names, listErr := s.Names()
		if listErr != nil {
			logger.Warn().Err(listErr).Msg("failed to list cached templates for suggestions")
		}
		return &DeleteResult{
			Spec:        spec,
			NotFound:    true,
			Suggestions: suggest(searchTerm(spec), names),
		}, nil
	}

	return &DeleteResult{Spec: spec, Removed: removed.Removed}, nil
}

// List returns the cached templates under dataDir.
func List(dataDir string) ([]store.Entry, error) {
	if dataDir == "" {
		return nil, NewValidationError("data directory is required", nil)
	}
	entries, err := store.New(dataDir).List()
	if err != nil {
		return nil, NewAppError(ValidationFailed, "failed to list cached templates", err)
	}
	return entries, nil
}

// searchTerm is the part of a specifier a user is likely to have typed.
func searchTerm(spec model.Specifier) string {
	switch sp := spec.(type) {
	case model.RemoteSpecifier:
		return sp.Subdir
	case model.LocalSpecifier:
		return sp.Name
	default:
		return spec.SpecName()
	}
}

// nameSource adapts a name list to fuzzy.Source.
type nameSource []string

func (s nameSource) String(i int) string { return s[i] }
func (s nameSource) Len() int            { return len(s) }

func suggest(term string, names []string) []string {
	if term == "" || len(names) == 0 {
		return nil
	}
	matches := fuzzy.FindFrom(term, nameSource(names))
	var out []string
	for i, m := range matches {
		if i == maxSuggestions {
			break
		}
		out = append(out, m.Str)
	}
	return out
}
