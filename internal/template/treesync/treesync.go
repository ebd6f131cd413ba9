// Package treesync copies a directory tree without ever overwriting what is
// already at the destination. Re-running a sync over a populated destination
// is a no-op, which is what makes template fetches idempotent.
package treesync

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/otiai10/copy"

	"github.com/borrowdev/borrow/internal/logging"
)

// MaxDepth bounds how deep below the source root entries are copied.
const MaxDepth = 100

// EntryError records a failure for a single entry. Sync keeps going after one.
type EntryError struct {
	Source string
	Dest   string
	Err    error
}

// Error implements the error interface.
func (e *EntryError) Error() string {
	return fmt.Sprintf("failed to copy %s to %s: %v", e.Source, e.Dest, e.Err)
}

// Unwrap returns the underlying error.
func (e *EntryError) Unwrap() error {
	return e.Err
}

// Result summarizes a sync.
type Result struct {
	DirsCreated     int
	DirsExisting    int
	FilesCopied     int
	FilesSkipped    int
	SymlinksSkipped int
	Errors          []*EntryError
}

// HasErrors reports whether any entry failed.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// Sync copies the tree at from into to.
//
// Symlinks below from are skipped. Existing directories are merged into and
// existing files are kept as they are. Failures on individual entries are
// collected in Result.Errors; only a missing or unreadable source root is
// returned as an error.
func Sync(from, to string) (*Result, error) {
	logger := logging.Logger("treesync")

	root, err := filepath.EvalSymlinks(from)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &os.PathError{Op: "sync", Path: from, Err: fmt.Errorf("not a directory")}
	}

	logger.Debug().Str("from", from).Str("to", to).Msg("syncing tree")

	result := &Result{}
	if _, err := os.Stat(to); err == nil {
		result.DirsExisting++
	} else {
		result.DirsCreated++
	}

	record := func(src, dest string, err error) {
		logger.Warn().Err(err).Str("source", src).Str("dest", dest).Msg("failed to copy entry, skipping")
		result.Errors = append(result.Errors, &EntryError{Source: src, Dest: dest, Err: err})
	}

	opts := copy.Options{
		// New directories get the source mode; existing ones keep theirs.
		PermissionControl: copy.DoNothing,
		OnSymlink: func(src string) copy.SymlinkAction {
			return copy.Skip
		},
		OnDirExists: func(src, dest string) copy.DirExistsAction {
			logger.Debug().Str("path", dest).Msg("directory already exists, merging")
			return copy.Merge
		},
		Skip: func(srcinfo os.FileInfo, src, dest string) (bool, error) {
			if depth(root, src) > MaxDepth {
				logger.Warn().Str("path", src).Int("max_depth", MaxDepth).Msg("entry exceeds maximum depth, skipping")
				return true, nil
			}

			mode := srcinfo.Mode()
			switch {
			case mode&os.ModeSymlink != 0:
				logger.Warn().Str("path", src).Msg("symlinks are not supported, skipping")
				result.SymlinksSkipped++
				return true, nil

			case srcinfo.IsDir():
				if _, err := os.Stat(dest); err == nil {
					result.DirsExisting++
				} else {
					result.DirsCreated++
				}
				return false, nil

			case mode.IsRegular():
				if _, err := os.Lstat(dest); err == nil {
					logger.Debug().Str("path", dest).Msg("file already exists, skipping")
					result.FilesSkipped++
					return true, nil
				}
				// Regular files are copied one at a time so a failing file
				// does not stop the walk over its siblings.
				if err := copy.Copy(src, dest); err != nil {
					record(src, dest, err)
					return true, nil
				}
				result.FilesCopied++
				return true, nil

			default:
				logger.Warn().Str("path", src).Str("mode", mode.String()).Msg("unsupported file type, skipping")
				return true, nil
			}
		},
		OnError: func(src, dest string, err error) error {
			if err != nil {
				record(src, dest, err)
			}
			return nil
		},
	}

	if err := copy.Copy(root, to, opts); err != nil {
		return result, err
	}

	logger.Debug().
		Int("dirs_created", result.DirsCreated).
		Int("files_copied", result.FilesCopied).
		Int("files_skipped", result.FilesSkipped).
		Msg("sync complete")

	return result, nil
}

func depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(filepath.ToSlash(rel), "/") + 1
}
