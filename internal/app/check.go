package app

import (
	"bufio"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/borrowdev/borrow/internal/template/model"
	"github.com/borrowdev/borrow/internal/template/parser"
)

// CheckTemplateOptions holds options for template validation.
type CheckTemplateOptions struct {
	// Path is the template source directory (placeholders.borrow + content/).
	Path string
}

// CheckResult holds the results of template validation.
type CheckResult struct {
	// Catalog holds the parsed placeholder definitions.
	Catalog model.Catalog
	// FilesChecked is the number of .template files scanned.
	FilesChecked int
	// Undefined lists tokens used in .template files without a definition.
	Undefined []TokenUse
	// Unused lists defined placeholders no .template file references.
	Unused []string
}

// TokenUse is a token found in a template file.
type TokenUse struct {
	// Key is the placeholder key inside the token.
	Key string
	// File is the template file, relative to content/.
	File string
	// Line is the 1-indexed line number.
	Line int
}

// OK reports whether the template has no problems.
func (r *CheckResult) OK() bool {
	return len(r.Undefined) == 0 && len(r.Unused) == 0
}

// CheckTemplate cross-checks a template's placeholder definitions against the
// tokens used by its .template files.
func CheckTemplate(ctx context.Context, opts CheckTemplateOptions) (*CheckResult, error) {
	absPath, err := filepath.Abs(opts.Path)
	if err != nil {
		return nil, NewValidationError("failed to get absolute path", err)
	}

	tmpl := &model.Template{RootPath: absPath}
	contentDir := tmpl.ContentPath()
	if info, err := os.Stat(contentDir); err != nil || !info.IsDir() {
		return nil, NewValidationError(fmt.Sprintf("%s has no %s directory", absPath, model.ContentDir), err)
	}

	catalog, err := parser.ParseDefinitionsFile(tmpl.PlaceholdersPath())
	if err != nil {
		return nil, NewPlaceholderParseError("failed to read placeholder definitions", err)
	}

	result := &CheckResult{Catalog: catalog}
	used := make(map[string]bool)

	err = filepath.WalkDir(contentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || !strings.HasSuffix(path, model.TemplateSuffix) || d.Name() == model.TemplateSuffix {
			return nil
		}

		rel, err := filepath.Rel(contentDir, path)
		if err != nil {
			return err
		}
		result.FilesChecked++
		return checkFile(path, filepath.ToSlash(rel), catalog, used, result)
	})
	if err != nil {
		return nil, NewValidationError("failed to scan template content", err)
	}

	for _, key := range catalog.Keys() {
		if !used[key] {
			result.Unused = append(result.Unused, key)
		}
	}
	sort.Slice(result.Undefined, func(i, j int) bool {
		a, b := result.Undefined[i], result.Undefined[j]
		if a.File != b.File {
			return a.File < b.File
		}
		return a.Line < b.Line
	})

	return result, nil
}

func checkFile(path, rel string, catalog model.Catalog, used map[string]bool, result *CheckResult) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		for _, key := range parser.Tokens(scanner.Text()) {
			used[key] = true
			if _, ok := catalog[key]; !ok {
				result.Undefined = append(result.Undefined, TokenUse{Key: key, File: rel, Line: line})
			}
		}
	}
	return scanner.Err()
}
