//go:build unix

package fs

import (
	"github.com/brettbedarf/pathwalk"
	"golang.org/x/sys/unix"
)

// queryStatus issues the native metadata query, stat or lstat depending on
// follow, and translates raw mode bits into a FileStatus.
func queryStatus(p pathwalk.Path, follow bool) (FileStatus, error) {
	var st unix.Stat_t
	var err error
	op := "lstat"
	if follow {
		op = "stat"
		err = unix.Stat(p.String(), &st)
	} else {
		err = unix.Lstat(p.String(), &st)
	}
	if err != nil {
		return FileStatus{}, classify(op, p, err)
	}
	mode := uint32(st.Mode)
	return FileStatus{
		Type:  modeToType(mode),
		Perms: Perms(mode) & PermMask,
	}, nil
}

func modeToType(mode uint32) FileType {
	switch mode & unix.S_IFMT {
	case unix.S_IFREG:
		return TypeRegular
	case unix.S_IFDIR:
		return TypeDirectory
	case unix.S_IFLNK:
		return TypeSymlink
	case unix.S_IFIFO:
		return TypeFifo
	case unix.S_IFCHR:
		return TypeCharacter
	case unix.S_IFBLK:
		return TypeBlock
	case unix.S_IFSOCK:
		return TypeSocket
	}
	return TypeUnknown
}
