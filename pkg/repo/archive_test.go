package repo

import (
	"archive/tar"
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
)

func TestArchive(t *testing.T) {
	r := initRepo(t)
	h := commitFiles(t, r, "first", map[string]string{
		"b.txt":     "bee",
		"a/x.txt":   "ex",
		"empty.txt": "",
	})
	writeFile(t, r, "b.txt", "changed after commit")

	var buf bytes.Buffer
	if err := r.Archive(&buf, string(h)); err != nil {
		t.Fatalf("Archive: %v", err)
	}

	zr, err := zstd.NewReader(&buf)
	if err != nil {
		t.Fatalf("zstd.NewReader: %v", err)
	}
	defer zr.Close()
	tr := tar.NewReader(zr)

	want := []struct{ name, content string }{
		{"a/x.txt", "ex"},
		{"b.txt", "bee"},
		{"empty.txt", ""},
	}
	wantTime := testClock().Truncate(time.Second)
	for _, w := range want {
		hdr, err := tr.Next()
		if err != nil {
			t.Fatalf("tar Next: %v", err)
		}
		if hdr.Name != w.name {
			t.Errorf("entry name = %q, want %q", hdr.Name, w.name)
		}
		if hdr.Mode != 0o644 {
			t.Errorf("%s mode = %o", hdr.Name, hdr.Mode)
		}
		if !hdr.ModTime.Equal(wantTime) {
			t.Errorf("%s mtime = %v, want %v", hdr.Name, hdr.ModTime, wantTime)
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			t.Fatalf("read %s: %v", hdr.Name, err)
		}
		if string(data) != w.content {
			t.Errorf("%s = %q, want %q", hdr.Name, data, w.content)
		}
	}
	if _, err := tr.Next(); err != io.EOF {
		t.Errorf("expected end of archive, got %v", err)
	}

	// The working tree is untouched.
	if got := readFile(t, r, "b.txt"); got != "changed after commit" {
		t.Errorf("b.txt = %q", got)
	}
}

func TestArchive_UnknownTarget(t *testing.T) {
	r := initRepo(t)
	var buf bytes.Buffer
	if err := r.Archive(&buf, "HEAD"); !errors.Is(err, ErrUnknownTarget) {
		t.Fatalf("err = %v, want ErrUnknownTarget", err)
	}
}
