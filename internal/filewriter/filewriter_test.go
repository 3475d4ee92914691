package filewriter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specsmith/specsmith/internal/toolerr"
)

// --- Test helpers ---

// newTestWriter creates a Writer rooted at a temp dir and returns both.
func newTestWriter(t *testing.T, maxSize int64) (*Writer, string) {
	t.Helper()
	root := t.TempDir()

	w, err := New(maxSize, root)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return w, root
}

// --- New ---

func TestNew_RequiresPositiveSize(t *testing.T) {
	if _, err := New(0, t.TempDir()); err == nil {
		t.Error("expected error for zero max size")
	}
	if _, err := New(-1, t.TempDir()); err == nil {
		t.Error("expected error for negative max size")
	}
}

func TestNew_RequiresAtLeastOneRoot(t *testing.T) {
	if _, err := New(1024); err == nil {
		t.Error("expected error with no roots")
	}
}

// --- DefaultRoots ---

func TestDefaultRoots_ContainsCwdOutputAndTemp(t *testing.T) {
	roots, err := DefaultRoots("output")
	if err != nil {
		t.Fatalf("DefaultRoots failed: %v", err)
	}
	if len(roots) != 3 {
		t.Fatalf("got %d roots, want 3", len(roots))
	}

	cwd, _ := os.Getwd()
	if roots[0] != cwd {
		t.Errorf("roots[0] = %s, want %s", roots[0], cwd)
	}
	if roots[1] != filepath.Join(cwd, "output") {
		t.Errorf("roots[1] = %s, want cwd/output", roots[1])
	}
	if roots[2] != os.TempDir() {
		t.Errorf("roots[2] = %s, want temp dir", roots[2])
	}
}

// --- Write ---

func TestWrite_Success(t *testing.T) {
	w, root := newTestWriter(t, 1024)

	resolved, err := w.Write(filepath.Join(root, "requirements.md"), "# Requirements Document\n")
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if string(data) != "# Requirements Document\n" {
		t.Errorf("content = %q", data)
	}
}

func TestWrite_CreatesParentDirectories(t *testing.T) {
	w, root := newTestWriter(t, 1024)

	resolved, err := w.Write(filepath.Join(root, "docs", "specs", "design.md"), "# Design Document\n")
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := os.Stat(resolved); err != nil {
		t.Errorf("file not created: %v", err)
	}
}

func TestWrite_TxtAllowed(t *testing.T) {
	w, root := newTestWriter(t, 1024)

	if _, err := w.Write(filepath.Join(root, "notes.txt"), "plain text"); err != nil {
		t.Errorf("txt write failed: %v", err)
	}
}

func TestWrite_ContentTooLarge(t *testing.T) {
	w, root := newTestWriter(t, 10)
	path := filepath.Join(root, "big.md")

	_, err := w.Write(path, strings.Repeat("a", 11))
	if toolerr.CodeOf(err) != toolerr.FileTooLarge {
		t.Errorf("code = %s, want FileTooLarge", toolerr.CodeOf(err))
	}

	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("rejected write must not create the file")
	}
}

func TestWrite_ContentAtLimit(t *testing.T) {
	w, root := newTestWriter(t, 10)

	if _, err := w.Write(filepath.Join(root, "ok.md"), strings.Repeat("a", 10)); err != nil {
		t.Errorf("write at size limit should pass, got %v", err)
	}
}

func TestWrite_TraversalOutOfRootRejectedWithoutSideEffects(t *testing.T) {
	w, root := newTestWriter(t, 1024)

	escape := filepath.Join(root, "..", "escape", "evil.md")
	_, err := w.Write(escape, "nope")
	if toolerr.CodeOf(err) != toolerr.InvalidPath {
		t.Fatalf("code = %s, want InvalidPath", toolerr.CodeOf(err))
	}

	// Neither the file nor its directory may exist.
	if _, statErr := os.Stat(filepath.Clean(escape)); !os.IsNotExist(statErr) {
		t.Error("escaped file must not be created")
	}
	if _, statErr := os.Stat(filepath.Join(root, "..", "escape")); !os.IsNotExist(statErr) {
		t.Error("escaped directory must not be created")
	}
}

func TestWrite_BadExtensionRejectedWithoutSideEffects(t *testing.T) {
	w, root := newTestWriter(t, 1024)

	path := filepath.Join(root, "sub", "payload.sh")
	_, err := w.Write(path, "#!/bin/sh")
	if toolerr.CodeOf(err) != toolerr.InvalidExtension {
		t.Fatalf("code = %s, want InvalidExtension", toolerr.CodeOf(err))
	}

	if _, statErr := os.Stat(filepath.Join(root, "sub")); !os.IsNotExist(statErr) {
		t.Error("directory must not be created for a rejected extension")
	}
}

// --- Resolve ---

func TestResolve_EmptyPath(t *testing.T) {
	w, _ := newTestWriter(t, 1024)

	for _, p := range []string{"", "   "} {
		_, err := w.Resolve(p)
		if toolerr.CodeOf(err) != toolerr.InvalidPath {
			t.Errorf("Resolve(%q) code = %s, want InvalidPath", p, toolerr.CodeOf(err))
		}
	}
}

func TestResolve_RootItselfIsNotAValidTarget(t *testing.T) {
	w, root := newTestWriter(t, 1024)

	_, err := w.Resolve(root)
	if toolerr.CodeOf(err) != toolerr.InvalidPath {
		t.Errorf("code = %s, want InvalidPath", toolerr.CodeOf(err))
	}
}

func TestResolve_ExtensionCaseInsensitive(t *testing.T) {
	w, root := newTestWriter(t, 1024)

	if _, err := w.Resolve(filepath.Join(root, "README.MD")); err != nil {
		t.Errorf("uppercase extension should pass, got %v", err)
	}
}

func TestResolve_NoExtension(t *testing.T) {
	w, root := newTestWriter(t, 1024)

	_, err := w.Resolve(filepath.Join(root, "Makefile"))
	if toolerr.CodeOf(err) != toolerr.InvalidExtension {
		t.Errorf("code = %s, want InvalidExtension", toolerr.CodeOf(err))
	}
}

func TestResolve_SiblingPrefixDirectoryRejected(t *testing.T) {
	// /tmp/xyz-evil shares a string prefix with root /tmp/xyz but is not
	// inside it.
	w, root := newTestWriter(t, 1024)

	_, err := w.Resolve(root + "-evil/doc.md")
	if toolerr.CodeOf(err) != toolerr.InvalidPath {
		t.Errorf("code = %s, want InvalidPath", toolerr.CodeOf(err))
	}
}

func TestResolve_InternalDotDotThatStaysInsideIsAllowed(t *testing.T) {
	w, root := newTestWriter(t, 1024)

	resolved, err := w.Resolve(filepath.Join(root, "a", "..", "doc.md"))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved != filepath.Join(root, "doc.md") {
		t.Errorf("resolved = %s, want %s", resolved, filepath.Join(root, "doc.md"))
	}
}

func TestResolve_SecondRootAlsoAllowed(t *testing.T) {
	rootA := t.TempDir()
	rootB := t.TempDir()

	w, err := New(1024, rootA, rootB)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := w.Resolve(filepath.Join(rootB, "doc.md")); err != nil {
		t.Errorf("path under second root should pass, got %v", err)
	}
}
