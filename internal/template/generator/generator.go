// Package generator instantiates a cached template into a target directory.
package generator

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/borrowdev/borrow/internal/logging"
	"github.com/borrowdev/borrow/internal/template/model"
	"github.com/borrowdev/borrow/internal/template/parser"
)

// InstallOptions configures an installation.
type InstallOptions struct {
	// TemplateRoot is the cache root holding placeholders.borrow and content/.
	TemplateRoot string

	// TargetDir receives a subdirectory named after TemplateRoot.
	TargetDir string

	// Values holds the resolved placeholder values.
	Values model.Values

	// Overwrite replaces existing files. If false, existing files are skipped.
	Overwrite bool

	// DryRun reports what would be written without touching the filesystem.
	DryRun bool
}

// FileAction is what happened to one output file.
type FileAction int

const (
	// ActionRendered means a .template file was rendered.
	ActionRendered FileAction = iota
	// ActionCopied means a file was copied verbatim.
	ActionCopied
	// ActionSkipped means the destination existed and was left alone.
	ActionSkipped
	// ActionFailed means the file could not be produced.
	ActionFailed
)

// String returns the string representation of the action.
func (a FileAction) String() string {
	switch a {
	case ActionRendered:
		return "rendered"
	case ActionCopied:
		return "copied"
	case ActionSkipped:
		return "skipped"
	case ActionFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FileResult records the outcome for one output file.
type FileResult struct {
	// Path is the output path relative to OutputDir, slash separated.
	Path string
	// Action is what happened.
	Action FileAction
	// Overwrote is set when an existing file was replaced.
	Overwrote bool
}

// InstallResult contains installation statistics.
type InstallResult struct {
	// OutputDir is TargetDir joined with the template name.
	OutputDir string

	// FilesRendered is the number of .template files rendered.
	FilesRendered int

	// FilesCopied is the number of files copied verbatim.
	FilesCopied int

	// FilesSkipped is the number of files skipped (already exist).
	FilesSkipped int

	// FilesOverwritten is the number of existing files replaced.
	FilesOverwritten int

	// Files lists every processed file in walk order.
	Files []FileResult

	// Unresolved lists token keys that appeared in templates without a value.
	Unresolved []string

	// Errors contains non-fatal per-file errors.
	Errors []error
}

// HasErrors reports whether any file failed.
func (r *InstallResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// Installer renders templates through a Writer.
type Installer struct {
	writer Writer
}

// NewInstaller creates an Installer writing through w. A nil w uses FileWriter.
func NewInstaller(w Writer) *Installer {
	if w == nil {
		w = NewFileWriter()
	}
	return &Installer{writer: w}
}

// Install instantiates the template with the default FileWriter.
func Install(ctx context.Context, opts InstallOptions) (*InstallResult, error) {
	return NewInstaller(nil).Install(ctx, opts)
}

// Install renders TemplateRoot/content into TargetDir/<template name>.
// Missing paths are fatal; failures on individual files are collected in
// InstallResult.Errors and processing continues.
func (i *Installer) Install(ctx context.Context, opts InstallOptions) (*InstallResult, error) {
	logger := logging.Logger("generator")

	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	contentDir := (&model.Template{RootPath: opts.TemplateRoot}).ContentPath()
	info, err := os.Stat(contentDir)
	if err != nil {
		return nil, newGeneratorError(GeneratorPathError, "template has no content directory", contentDir, err)
	}
	if !info.IsDir() {
		return nil, newGeneratorError(GeneratorPathError, "template content is not a directory", contentDir, nil)
	}

	if !opts.DryRun {
		if err := i.writer.CreateDir(opts.TargetDir); err != nil {
			return nil, err
		}
	}

	name := filepath.Base(filepath.Clean(opts.TemplateRoot))
	result := &InstallResult{
		OutputDir: filepath.Join(opts.TargetDir, name),
	}
	sub := parser.NewSubstituter(opts.Values)
	unresolved := make(map[string]struct{})

	logger.Debug().
		Str("template", opts.TemplateRoot).
		Str("output", result.OutputDir).
		Bool("overwrite", opts.Overwrite).
		Bool("dry_run", opts.DryRun).
		Msg("installing template")

	walkErr := filepath.WalkDir(contentDir, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == contentDir {
				return err
			}
			logger.Warn().Err(err).Str("path", path).Msg("cannot read template entry, skipping")
			result.Errors = append(result.Errors, newGeneratorError(GeneratorProcessFailed, "failed to read template entry", path, err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(contentDir, path)
		if err != nil {
			return err
		}

		switch {
		case d.IsDir():
			if !opts.DryRun {
				if err := i.writer.CreateDir(filepath.Join(result.OutputDir, rel)); err != nil {
					logger.Warn().Err(err).Str("path", rel).Msg("failed to create directory")
				}
			}
			return nil

		case d.Type()&fs.ModeSymlink != 0:
			logger.Warn().Str("path", path).Msg("symlinks are not supported, skipping")
			return nil

		case !d.Type().IsRegular():
			logger.Warn().Str("path", path).Msg("not a regular file, skipping")
			return nil
		}

		i.installFile(path, rel, d, sub, opts, result, unresolved)
		return nil
	})
	if walkErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}
		return result, newGeneratorError(GeneratorPathError, "failed to walk template content", contentDir, walkErr)
	}

	for k := range unresolved {
		result.Unresolved = append(result.Unresolved, k)
	}
	sort.Strings(result.Unresolved)

	logger.Debug().
		Int("rendered", result.FilesRendered).
		Int("copied", result.FilesCopied).
		Int("skipped", result.FilesSkipped).
		Int("errors", len(result.Errors)).
		Msg("install complete")

	return result, nil
}

func (i *Installer) installFile(src, rel string, d fs.DirEntry, sub *parser.Substituter, opts InstallOptions, result *InstallResult, unresolved map[string]struct{}) {
	logger := logging.Logger("generator")

	// A file named just ".template" has nothing left after the suffix and is
	// copied as is.
	isTemplate := strings.HasSuffix(rel, model.TemplateSuffix) &&
		filepath.Base(rel) != model.TemplateSuffix
	outRel := rel
	if isTemplate {
		outRel = strings.TrimSuffix(rel, model.TemplateSuffix)
	}
	dst := filepath.Join(result.OutputDir, outRel)
	file := FileResult{Path: filepath.ToSlash(outRel)}

	fail := func(err error) {
		logger.Warn().Err(err).Str("path", outRel).Msg("failed to install file, continuing")
		file.Action = ActionFailed
		result.Errors = append(result.Errors, err)
		result.Files = append(result.Files, file)
	}

	if i.writer.Exists(dst) {
		if !opts.Overwrite {
			logger.Debug().Str("path", dst).Msg("file already exists, skipping")
			file.Action = ActionSkipped
			result.FilesSkipped++
			result.Files = append(result.Files, file)
			return
		}
		file.Overwrote = true
	}

	info, err := d.Info()
	if err != nil {
		fail(newGeneratorError(GeneratorProcessFailed, "failed to stat template file", src, err))
		return
	}

	if isTemplate {
		content, missing, err := renderFile(src, sub)
		if err != nil {
			fail(newGeneratorError(GeneratorProcessFailed, "failed to render template file", src, err))
			return
		}
		for _, k := range missing {
			unresolved[k] = struct{}{}
		}
		if !opts.DryRun {
			if err := i.writer.WriteFile(dst, content, info.Mode()); err != nil {
				fail(err)
				return
			}
		}
		file.Action = ActionRendered
		result.FilesRendered++
	} else {
		if !opts.DryRun {
			if err := i.writer.CopyFile(src, dst, info.Mode()); err != nil {
				fail(err)
				return
			}
		}
		file.Action = ActionCopied
		result.FilesCopied++
	}

	if file.Overwrote {
		result.FilesOverwritten++
	}
	result.Files = append(result.Files, file)
}

func validateOptions(opts InstallOptions) error {
	if opts.TemplateRoot == "" {
		return newGeneratorError(GeneratorPathError, "template root cannot be empty", "", nil)
	}
	if opts.TargetDir == "" {
		return newGeneratorError(GeneratorPathError, "target directory cannot be empty", "", nil)
	}
	return nil
}
