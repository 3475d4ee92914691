// Package filewriter writes generated documents to disk safely.
//
// Every write resolves the requested path against an allow-list of root
// directories and checks the extension and size before touching the
// filesystem — a rejected request creates no file and no directory.
package filewriter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specsmith/specsmith/internal/toolerr"
)

// allowedExtensions is the set of file extensions a document may use.
var allowedExtensions = map[string]bool{
	".md":  true,
	".txt": true,
}

// File and directory permission bits. Documents are never executable.
const (
	filePerm = 0o644
	dirPerm  = 0o755
)

// Writer resolves and writes output paths inside allow-listed roots.
type Writer struct {
	roots       []string
	maxFileSize int64
}

// New creates a Writer with the given byte-size cap and allow-listed roots.
// Roots are made absolute at construction; at least one is required.
func New(maxFileSize int64, roots ...string) (*Writer, error) {
	if maxFileSize <= 0 {
		return nil, fmt.Errorf("max file size must be positive, got %d", maxFileSize)
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("at least one allowed root is required")
	}

	abs := make([]string, 0, len(roots))
	for _, root := range roots {
		a, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("resolving root %s: %w", root, err)
		}
		abs = append(abs, filepath.Clean(a))
	}

	return &Writer{roots: abs, maxFileSize: maxFileSize}, nil
}

// DefaultRoots returns the standard allow-list: the working directory,
// the output directory beneath it, and the system temp directory.
func DefaultRoots(outputDir string) ([]string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return []string{cwd, filepath.Join(cwd, outputDir), os.TempDir()}, nil
}

// Write validates the requested path and writes content to it, returning
// the resolved absolute path. The checks run strictly before any
// filesystem mutation.
func (w *Writer) Write(requestedPath, content string) (string, error) {
	resolved, err := w.Resolve(requestedPath)
	if err != nil {
		return "", err
	}

	if int64(len(content)) > w.maxFileSize {
		return "", toolerr.New(toolerr.FileTooLarge,
			"content is %d bytes, maximum is %d", len(content), w.maxFileSize)
	}

	// Side effects start here — everything above is pure validation.
	if err := os.MkdirAll(filepath.Dir(resolved), dirPerm); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(resolved, []byte(content), filePerm); err != nil {
		return "", fmt.Errorf("writing %s: %w", resolved, err)
	}

	return resolved, nil
}

// Resolve turns a requested path into an absolute path and checks it
// against the allow-listed roots and the extension allow-list.
func (w *Writer) Resolve(requestedPath string) (string, error) {
	requestedPath = strings.TrimSpace(requestedPath)
	if requestedPath == "" {
		return "", toolerr.New(toolerr.InvalidPath, "output path is required")
	}

	resolved, err := filepath.Abs(requestedPath)
	if err != nil {
		return "", toolerr.New(toolerr.InvalidPath, "cannot resolve output path")
	}
	resolved = filepath.Clean(resolved)

	if !w.allowed(resolved) {
		return "", toolerr.New(toolerr.InvalidPath,
			"output path must be inside an allowed directory")
	}

	ext := strings.ToLower(filepath.Ext(resolved))
	if !allowedExtensions[ext] {
		return "", toolerr.New(toolerr.InvalidExtension,
			"extension %q is not allowed (use .md or .txt)", ext)
	}

	return resolved, nil
}

// allowed reports whether path is a descendant of (or equal to the
// direct child of) one of the allow-listed roots.
func (w *Writer) allowed(path string) bool {
	for _, root := range w.roots {
		if isWithin(root, path) {
			return true
		}
	}
	return false
}

// isWithin reports whether path sits under root. The root itself is not a
// valid output path (documents are files, never a root directory), but any
// descendant is.
func isWithin(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == "." || rel == ".." {
		return false
	}
	return !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
