package generator

import (
	"io"
	"os"
	"path/filepath"

	"github.com/borrowdev/borrow/internal/logging"
)

// Writer writes files to the filesystem.
type Writer interface {
	// WriteFile writes content to a file with the specified permissions.
	WriteFile(path string, content []byte, mode os.FileMode) error

	// CopyFile copies src to dst byte for byte.
	CopyFile(src, dst string, mode os.FileMode) error

	// CreateDir creates a directory and any necessary parent directories.
	CreateDir(path string) error

	// Exists checks if a file or directory exists at the given path.
	Exists(path string) bool
}

// FileWriter implements Writer for filesystem operations.
type FileWriter struct{}

// NewFileWriter creates a new FileWriter.
func NewFileWriter() Writer {
	return &FileWriter{}
}

// WriteFile writes content to path through a temporary file and rename, so
// a failed write never leaves a truncated file behind.
func (w *FileWriter) WriteFile(path string, content []byte, mode os.FileMode) error {
	logger := logging.Logger("generator")
	logger.Debug().Str("path", path).Int("size", len(content)).Msg("writing file")

	if err := w.CreateDir(filepath.Dir(path)); err != nil {
		return err
	}

	tempFile := path + ".tmp"
	f, err := os.OpenFile(tempFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fileMode(mode))
	if err != nil {
		return newGeneratorError(GeneratorWriteFailed, "failed to create destination file", path, err)
	}

	_, err = f.Write(content)
	closeErr := f.Close()

	if err != nil {
		_ = os.Remove(tempFile)
		return newGeneratorError(GeneratorWriteFailed, "failed to write file content", path, err)
	}
	if closeErr != nil {
		_ = os.Remove(tempFile)
		return newGeneratorError(GeneratorWriteFailed, "failed to close file", path, closeErr)
	}

	if err := os.Rename(tempFile, path); err != nil {
		_ = os.Remove(tempFile)
		return newGeneratorError(GeneratorWriteFailed, "failed to rename temporary file", path, err)
	}

	return nil
}

// CopyFile copies src to dst, creating the parent directory first.
func (w *FileWriter) CopyFile(src, dst string, mode os.FileMode) error {
	logger := logging.Logger("generator")
	logger.Debug().Str("src", src).Str("dst", dst).Msg("copying file")

	srcFile, err := os.Open(src)
	if err != nil {
		return newGeneratorError(GeneratorProcessFailed, "failed to open source file", src, err)
	}
	defer func() { _ = srcFile.Close() }()

	if err := w.CreateDir(filepath.Dir(dst)); err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fileMode(mode))
	if err != nil {
		return newGeneratorError(GeneratorWriteFailed, "failed to create destination file", dst, err)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return newGeneratorError(GeneratorWriteFailed, "failed to copy file content", dst, err)
	}
	if err := dstFile.Close(); err != nil {
		return newGeneratorError(GeneratorWriteFailed, "failed to close file", dst, err)
	}

	return nil
}

// CreateDir creates a directory and any necessary parent directories.
// Existing directories are fine.
func (w *FileWriter) CreateDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return newGeneratorError(GeneratorWriteFailed, "failed to create directory", path, err)
	}
	return nil
}

// Exists checks if a file or directory exists at the given path.
func (w *FileWriter) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// fileMode keeps the source permission bits and guarantees owner read/write.
func fileMode(mode os.FileMode) os.FileMode {
	perm := mode.Perm()
	if perm == 0 {
		return 0644
	}
	return perm | 0600
}
