package repo

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHead_Detached(t *testing.T) {
	r := initRepo(t)
	h := commitFiles(t, r, "first", map[string]string{"a.txt": "a"})

	if err := r.setHead(Head{Commit: h}); err != nil {
		t.Fatalf("setHead: %v", err)
	}
	if got := readMeta(t, r, "HEAD"); got != string(h)+"\n" {
		t.Errorf("HEAD file = %q", got)
	}
	head, err := r.Head()
	if err != nil {
		t.Fatalf("Head: %v", err)
	}
	if !head.Detached() || head.Commit != h {
		t.Errorf("Head = %+v, want detached at %s", head, h)
	}
	branch, err := r.CurrentBranch()
	if err != nil {
		t.Fatalf("CurrentBranch: %v", err)
	}
	if branch != "" {
		t.Errorf("CurrentBranch = %q, want empty when detached", branch)
	}
}

func TestHead_Corrupt(t *testing.T) {
	r := initRepo(t)
	for _, content := range []string{"garbage\n", "ref: refs/heads/\n", ""} {
		if err := os.WriteFile(filepath.Join(r.MetaDir, "HEAD"), []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		if _, err := r.Head(); !errors.Is(err, ErrCorruptObject) {
			t.Errorf("Head(%q) err = %v, want ErrCorruptObject", content, err)
		}
	}
}

func TestReadBranch(t *testing.T) {
	r := initRepo(t)
	if _, err := r.ReadBranch("nope"); !errors.Is(err, ErrBranchNotFound) {
		t.Errorf("ReadBranch(missing) err = %v, want ErrBranchNotFound", err)
	}
	if _, err := r.ReadBranch("../HEAD"); !errors.Is(err, ErrInvalidBranchName) {
		t.Errorf("ReadBranch(../HEAD) err = %v, want ErrInvalidBranchName", err)
	}

	h := commitFiles(t, r, "first", map[string]string{"a.txt": "a"})
	got, err := r.ReadBranch("master")
	if err != nil {
		t.Fatalf("ReadBranch: %v", err)
	}
	if got != h {
		t.Errorf("master = %s, want %s", got, h)
	}
	if ref := readMeta(t, r, "refs/heads/master"); ref != string(h)+"\n" {
		t.Errorf("ref file = %q", ref)
	}
}

func TestResolve(t *testing.T) {
	r := initRepo(t)
	h := commitFiles(t, r, "first", map[string]string{"a.txt": "a"})

	cases := []struct {
		target   string
		isBranch bool
	}{
		{"HEAD", false},
		{"master", true},
		{string(h), false},
		{" " + string(h) + " ", false},
	}
	for _, tc := range cases {
		got, isBranch, err := r.Resolve(tc.target)
		if err != nil {
			t.Errorf("Resolve(%q): %v", tc.target, err)
			continue
		}
		if got != h || isBranch != tc.isBranch {
			t.Errorf("Resolve(%q) = %s, %v; want %s, %v", tc.target, got, isBranch, h, tc.isBranch)
		}
	}
}

func TestResolve_Unknown(t *testing.T) {
	r := initRepo(t)

	// No commits yet: HEAD and master resolve to nothing.
	for _, target := range []string{"HEAD", "master"} {
		if _, _, err := r.Resolve(target); !errors.Is(err, ErrUnknownTarget) {
			t.Errorf("Resolve(%q) before first commit err = %v, want ErrUnknownTarget", target, err)
		}
	}

	h := commitFiles(t, r, "first", map[string]string{"a.txt": "blob content"})
	c, err := r.Store.ReadCommit(h)
	if err != nil {
		t.Fatalf("ReadCommit: %v", err)
	}
	blob := r.Store.Hash([]byte("blob content"))

	for _, target := range []string{
		"no-such-branch",
		string(h)[:8],
		strings.Repeat("0", 40),
		strings.ToUpper(string(h)),
		string(blob),       // an object, but not a commit
		string(c.TreeHash), // likewise
	} {
		if _, _, err := r.Resolve(target); !errors.Is(err, ErrUnknownTarget) {
			t.Errorf("Resolve(%q) err = %v, want ErrUnknownTarget", target, err)
		}
	}

	if _, _, err := r.Resolve("  "); !errors.Is(err, ErrMissingArgument) {
		t.Errorf("Resolve(blank) err = %v, want ErrMissingArgument", err)
	}
}

func TestResolve_BranchKeepsItsOwnTip(t *testing.T) {
	r := initRepo(t)
	first := commitFiles(t, r, "first", map[string]string{"a.txt": "1"})
	if _, err := r.CreateBranch("old"); err != nil {
		t.Fatalf("CreateBranch: %v", err)
	}
	commitFiles(t, r, "second", map[string]string{"a.txt": "2"})

	got, isBranch, err := r.Resolve("old")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != first || !isBranch {
		t.Errorf("Resolve(old) = %s, %v; want %s, true", got, isBranch, first)
	}
}
