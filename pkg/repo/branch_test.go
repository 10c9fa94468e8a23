package repo

import (
	"errors"
	"testing"
)

func TestCreateBranch_BeforeFirstCommit(t *testing.T) {
	r := initRepo(t)
	target, err := r.CreateBranch("feature")
	if err != nil {
		t.Fatalf("CreateBranch: %v", err)
	}
	if target != "" {
		t.Errorf("target = %q, want empty", target)
	}
	if got := readMeta(t, r, "refs/heads/feature"); got != "" {
		t.Errorf("feature ref = %q, want empty", got)
	}
}

func TestCreateBranch_PointsAtHead(t *testing.T) {
	r := initRepo(t)
	h := commitFiles(t, r, "first", map[string]string{"a.txt": "a"})

	target, err := r.CreateBranch("feature")
	if err != nil {
		t.Fatalf("CreateBranch: %v", err)
	}
	if target != h {
		t.Errorf("target = %s, want %s", target, h)
	}
	got, err := r.ReadBranch("feature")
	if err != nil {
		t.Fatalf("ReadBranch: %v", err)
	}
	if got != h {
		t.Errorf("feature = %s, want %s", got, h)
	}

	// Creating a branch does not move HEAD.
	branch, err := r.CurrentBranch()
	if err != nil {
		t.Fatalf("CurrentBranch: %v", err)
	}
	if branch != "master" {
		t.Errorf("CurrentBranch = %q, want master", branch)
	}
}

func TestCreateBranch_FromDetachedHead(t *testing.T) {
	r := initRepo(t)
	first := commitFiles(t, r, "first", map[string]string{"a.txt": "1"})
	commitFiles(t, r, "second", map[string]string{"a.txt": "2"})

	if _, err := r.Checkout(string(first)); err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	target, err := r.CreateBranch("rescue")
	if err != nil {
		t.Fatalf("CreateBranch: %v", err)
	}
	if target != first {
		t.Errorf("target = %s, want %s", target, first)
	}
}

func TestCreateBranch_Exists(t *testing.T) {
	r := initRepo(t)
	if _, err := r.CreateBranch("master"); !errors.Is(err, ErrBranchExists) {
		t.Fatalf("err = %v, want ErrBranchExists", err)
	}
}

func TestCreateBranch_InvalidNames(t *testing.T) {
	r := initRepo(t)
	for _, name := range []string{"", "HEAD", ".hidden", "-d", "a/b", `a\b`, "has space", "tab\tname", "..", "line\nbreak"} {
		if _, err := r.CreateBranch(name); !errors.Is(err, ErrInvalidBranchName) {
			t.Errorf("CreateBranch(%q) err = %v, want ErrInvalidBranchName", name, err)
		}
	}
	for _, name := range []string{"feature", "fix-123", "v1.2", "UPPER_case"} {
		if _, err := r.CreateBranch(name); err != nil {
			t.Errorf("CreateBranch(%q): %v", name, err)
		}
	}
}

func TestListBranches_SortedWithCurrentFlag(t *testing.T) {
	r := initRepo(t)
	h := commitFiles(t, r, "first", map[string]string{"a.txt": "a"})
	for _, name := range []string{"zeta", "alpha"} {
		if _, err := r.CreateBranch(name); err != nil {
			t.Fatalf("CreateBranch(%s): %v", name, err)
		}
	}

	branches, err := r.ListBranches()
	if err != nil {
		t.Fatalf("ListBranches: %v", err)
	}
	want := []string{"alpha", "master", "zeta"}
	if len(branches) != len(want) {
		t.Fatalf("got %d branches, want %d: %+v", len(branches), len(want), branches)
	}
	for i, b := range branches {
		if b.Name != want[i] {
			t.Errorf("branches[%d] = %q, want %q", i, b.Name, want[i])
		}
		if b.Current != (b.Name == "master") {
			t.Errorf("branch %q Current = %v", b.Name, b.Current)
		}
		if b.Commit != h {
			t.Errorf("branch %q Commit = %s, want %s", b.Name, b.Commit, h)
		}
	}
}

func TestListBranches_DetachedFlagsNothing(t *testing.T) {
	r := initRepo(t)
	h := commitFiles(t, r, "first", map[string]string{"a.txt": "a"})
	if _, err := r.Checkout(string(h)); err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	branches, err := r.ListBranches()
	if err != nil {
		t.Fatalf("ListBranches: %v", err)
	}
	for _, b := range branches {
		if b.Current {
			t.Errorf("branch %q flagged current while detached", b.Name)
		}
	}
}

func TestDeleteBranch(t *testing.T) {
	r := initRepo(t)
	commitFiles(t, r, "first", map[string]string{"a.txt": "a"})
	if _, err := r.CreateBranch("feature"); err != nil {
		t.Fatalf("CreateBranch: %v", err)
	}

	if err := r.DeleteBranch("feature"); err != nil {
		t.Fatalf("DeleteBranch: %v", err)
	}
	if r.BranchExists("feature") {
		t.Error("feature still exists after delete")
	}
	if err := r.DeleteBranch("feature"); !errors.Is(err, ErrBranchNotFound) {
		t.Errorf("second delete err = %v, want ErrBranchNotFound", err)
	}
}

func TestDeleteBranch_Current(t *testing.T) {
	r := initRepo(t)
	if err := r.DeleteBranch("master"); !errors.Is(err, ErrCannotDeleteCurrentBranch) {
		t.Fatalf("err = %v, want ErrCannotDeleteCurrentBranch", err)
	}
	if !r.BranchExists("master") {
		t.Error("master was removed")
	}
}

func TestDeleteBranch_AllowedWhenDetached(t *testing.T) {
	r := initRepo(t)
	h := commitFiles(t, r, "first", map[string]string{"a.txt": "a"})
	if _, err := r.Checkout(string(h)); err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if err := r.DeleteBranch("master"); err != nil {
		t.Fatalf("DeleteBranch(master) while detached: %v", err)
	}
}
