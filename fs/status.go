// Package fs implements filesystem status queries, single-pass and
// recursive directory streams, and glob expansion over the lexical
// pathwalk.Path type. All OS interaction of the module lives here; every
// operation is synchronous and each stream owns its native handles
// exclusively.
package fs

import (
	"errors"
	iofs "io/fs"
	"os"

	"github.com/brettbedarf/pathwalk"
)

// FileType classifies a filesystem object.
type FileType int

const (
	TypeUnknown FileType = iota
	TypeRegular
	TypeDirectory
	TypeSymlink
	TypeFifo
	TypeCharacter
	TypeBlock
	TypeSocket
)

func (t FileType) String() string {
	switch t {
	case TypeRegular:
		return "regular"
	case TypeDirectory:
		return "directory"
	case TypeSymlink:
		return "symlink"
	case TypeFifo:
		return "fifo"
	case TypeCharacter:
		return "character"
	case TypeBlock:
		return "block"
	case TypeSocket:
		return "socket"
	default:
		return "unknown"
	}
}

// Perms is a POSIX permission bit-set, numerically identical to the native
// mode bits including set-uid, set-gid and sticky.
type Perms uint32

const (
	PermOwnerRead  Perms = 0o400
	PermOwnerWrite Perms = 0o200
	PermOwnerExec  Perms = 0o100
	PermOwnerAll   Perms = 0o700

	PermGroupRead  Perms = 0o040
	PermGroupWrite Perms = 0o020
	PermGroupExec  Perms = 0o010
	PermGroupAll   Perms = 0o070

	PermOthersRead  Perms = 0o004
	PermOthersWrite Perms = 0o002
	PermOthersExec  Perms = 0o001
	PermOthersAll   Perms = 0o007

	PermSetUID Perms = 0o4000
	PermSetGID Perms = 0o2000
	PermSticky Perms = 0o1000

	PermAll  Perms = 0o777
	PermMask Perms = 0o7777
)

// String renders the bits ls-style, e.g. "rwxr-s--t".
func (p Perms) String() string {
	buf := []byte("rwxrwxrwx")
	bits := [...]Perms{
		PermOwnerRead, PermOwnerWrite, PermOwnerExec,
		PermGroupRead, PermGroupWrite, PermGroupExec,
		PermOthersRead, PermOthersWrite, PermOthersExec,
	}
	for i, bit := range bits {
		if p&bit == 0 {
			buf[i] = '-'
		}
	}
	if p&PermSetUID != 0 {
		buf[2] = sBit(buf[2])
	}
	if p&PermSetGID != 0 {
		buf[5] = sBit(buf[5])
	}
	if p&PermSticky != 0 {
		if buf[8] == 'x' {
			buf[8] = 't'
		} else {
			buf[8] = 'T'
		}
	}
	return string(buf)
}

func sBit(c byte) byte {
	if c == 'x' {
		return 's'
	}
	return 'S'
}

// FileStatus is the transient result of one status query. It is recomputed
// on every call and never cached by this package; see StatCache for opt-in
// memoization.
type FileStatus struct {
	Type  FileType
	Perms Perms
}

func (s FileStatus) IsDirectory() bool { return s.Type == TypeDirectory }
func (s FileStatus) IsRegular() bool   { return s.Type == TypeRegular }
func (s FileStatus) IsSymlink() bool   { return s.Type == TypeSymlink }

// Status queries p following symlinks.
func Status(p pathwalk.Path) (FileStatus, error) {
	return queryStatus(p, true)
}

// SymlinkStatus queries p without following a final symlink.
func SymlinkStatus(p pathwalk.Path) (FileStatus, error) {
	return queryStatus(p, false)
}

// Exists reports whether p names anything at all. Only ErrNotFound is
// treated as absence; other failures are returned.
func Exists(p pathwalk.Path) (bool, error) {
	_, err := queryStatus(p, false)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return false, err
}

// IsDirectory reports whether p is a directory after symlink resolution.
// Absent paths are simply not directories.
func IsDirectory(p pathwalk.Path) bool {
	st, err := Status(p)
	return err == nil && st.IsDirectory()
}

// typeFromMode maps io/fs mode type bits onto FileType. Used for dirent
// types and for the portable status fallback.
func typeFromMode(m iofs.FileMode) FileType {
	switch {
	case m.IsRegular():
		return TypeRegular
	case m.IsDir():
		return TypeDirectory
	case m&iofs.ModeSymlink != 0:
		return TypeSymlink
	case m&iofs.ModeNamedPipe != 0:
		return TypeFifo
	case m&iofs.ModeCharDevice != 0:
		return TypeCharacter
	case m&iofs.ModeDevice != 0:
		return TypeBlock
	case m&iofs.ModeSocket != 0:
		return TypeSocket
	default:
		return TypeUnknown
	}
}

// permsFromMode recovers the POSIX bit-set from an io/fs mode.
func permsFromMode(m iofs.FileMode) Perms {
	p := Perms(m.Perm())
	if m&iofs.ModeSetuid != 0 {
		p |= PermSetUID
	}
	if m&iofs.ModeSetgid != 0 {
		p |= PermSetGID
	}
	if m&iofs.ModeSticky != 0 {
		p |= PermSticky
	}
	return p
}

// Cwd returns the working directory as a native-format path.
func Cwd() (pathwalk.Path, error) {
	wd, err := os.Getwd()
	if err != nil {
		return pathwalk.Path{}, classify("getwd", pathwalk.New("."), err)
	}
	return pathwalk.New(wd), nil
}

// Home returns the current user's home directory as a native-format path.
func Home() (pathwalk.Path, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return pathwalk.Path{}, classify("home", pathwalk.New("~"), err)
	}
	return pathwalk.New(home), nil
}
