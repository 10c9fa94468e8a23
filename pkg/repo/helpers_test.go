package repo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/odvcencio/simplevcs/pkg/object"
)

var testClock = func() time.Time {
	return time.Date(2024, 3, 4, 5, 6, 7, 0, time.Local)
}

// initRepo creates a repository in a fresh temp directory.
func initRepo(t *testing.T, opts ...Option) *Repo {
	t.Helper()
	opts = append([]Option{WithClock(testClock)}, opts...)
	r, err := Init(t.TempDir(), opts...)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	return r
}

// writeFile writes a working-tree file, creating parent directories.
func writeFile(t *testing.T, r *Repo, rel, content string) {
	t.Helper()
	abs := filepath.Join(r.RootDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func readFile(t *testing.T, r *Repo, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(r.RootDir, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("read %s: %v", rel, err)
	}
	return string(data)
}

func fileExists(r *Repo, rel string) bool {
	_, err := os.Stat(filepath.Join(r.RootDir, filepath.FromSlash(rel)))
	return err == nil
}

// commitFiles writes files and commits them on the current branch.
func commitFiles(t *testing.T, r *Repo, msg string, files map[string]string) object.Hash {
	t.Helper()
	for rel, content := range files {
		writeFile(t, r, rel, content)
	}
	h, err := r.Commit(msg)
	if err != nil {
		t.Fatalf("Commit(%q): %v", msg, err)
	}
	return h
}

// objectCount counts stored objects, ignoring in-flight temp files.
func objectCount(t *testing.T, r *Repo) int {
	t.Helper()
	entries, err := os.ReadDir(r.Store.Dir())
	if err != nil {
		t.Fatalf("ReadDir objects: %v", err)
	}
	n := 0
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), ".") {
			n++
		}
	}
	return n
}

func readMeta(t *testing.T, r *Repo, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(r.MetaDir, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("read %s: %v", rel, err)
	}
	return string(data)
}
