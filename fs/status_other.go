//go:build !unix

package fs

import (
	"os"

	"github.com/brettbedarf/pathwalk"
)

// queryStatus falls back to the portable os stat calls where raw POSIX
// mode bits are unavailable.
func queryStatus(p pathwalk.Path, follow bool) (FileStatus, error) {
	var fi os.FileInfo
	var err error
	op := "lstat"
	if follow {
		op = "stat"
		fi, err = os.Stat(p.String())
	} else {
		fi, err = os.Lstat(p.String())
	}
	if err != nil {
		return FileStatus{}, classify(op, p, err)
	}
	mode := fi.Mode()
	return FileStatus{
		Type:  typeFromMode(mode),
		Perms: permsFromMode(mode),
	}, nil
}
