package repo

import (
	"errors"
	"fmt"

	"github.com/odvcencio/simplevcs/pkg/object"
)

var (
	ErrNotInitialized            = errors.New("not a svcs repository (run init)")
	ErrAlreadyInitialized        = errors.New("repository already exists")
	ErrMissingArgument           = errors.New("missing argument")
	ErrDetachedHead              = errors.New("HEAD is detached; commit is not allowed")
	ErrUnknownTarget             = errors.New("unknown branch or commit")
	ErrBranchExists              = errors.New("branch already exists")
	ErrBranchNotFound            = errors.New("branch not found")
	ErrCannotDeleteCurrentBranch = errors.New("cannot delete the current branch")
	ErrInvalidBranchName         = errors.New("invalid branch name")
	ErrIO                        = errors.New("i/o failure")

	// Aliases so callers can match the whole taxonomy through this package.
	ErrCorruptObject  = object.ErrCorruptObject
	ErrObjectNotFound = object.ErrNotFound
	ErrUnencodable    = object.ErrUnencodable
)

// ioError wraps a filesystem failure so it matches both ErrIO and the
// underlying error.
func ioError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrIO, err)
}
