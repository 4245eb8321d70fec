package fs

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"syscall"

	"github.com/brettbedarf/pathwalk"
)

// Error taxonomy for native call failures. Every error returned by this
// package wraps exactly one of these sentinels (plus the underlying OS
// error), so callers classify with errors.Is. Native failures are always
// surfaced as values; nothing in this package terminates the process.
var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotADirectory    = errors.New("not a directory")
	ErrIO               = errors.New("i/o error")

	// ErrInvalidPath re-exports the lexical layer's sentinel so the whole
	// taxonomy is reachable from one package.
	ErrInvalidPath = pathwalk.ErrInvalidPath
)

// classify maps a raw OS error into the package taxonomy, keeping the
// cause in the chain.
func classify(op string, p pathwalk.Path, err error) error {
	var base error
	switch {
	case errors.Is(err, iofs.ErrNotExist):
		base = ErrNotFound
	case errors.Is(err, iofs.ErrPermission):
		base = ErrPermissionDenied
	case errors.Is(err, syscall.ENOTDIR):
		base = ErrNotADirectory
	default:
		base = ErrIO
	}
	return fmt.Errorf("%s %s: %w: %w", op, p, base, err)
}
