package fs

import (
	"io"
	iofs "io/fs"
	"iter"
	"os"

	"github.com/brettbedarf/pathwalk"
)

// Entry is one directory child produced by enumeration: its path plus the
// lazily-queryable type information the native layer reported for free.
type Entry struct {
	path pathwalk.Path
	de   iofs.DirEntry
}

// Path returns the entry path: the enumerated directory joined with the
// raw entry name.
func (e Entry) Path() pathwalk.Path { return e.path }

// Name returns the raw entry name, verbatim as reported by the OS.
func (e Entry) Name() string { return e.de.Name() }

// Type returns the entry type from the native dirent record, without an
// extra status query and without following symlinks. TypeUnknown means the
// filesystem did not report one; fall back to SymlinkStatus then.
func (e Entry) Type() FileType {
	return typeFromMode(e.de.Type())
}

// IsDir reports whether the entry itself is a directory. A symlink to a
// directory is not.
func (e Entry) IsDir() bool { return e.Type() == TypeDirectory }

// Status stats the entry path following symlinks.
func (e Entry) Status() (FileStatus, error) { return Status(e.path) }

// SymlinkStatus stats the entry path without following a final symlink.
func (e Entry) SymlinkStatus() (FileStatus, error) { return SymlinkStatus(e.path) }

// readNext pulls one entry from an open directory handle. Entry names are
// joined onto base without re-running path cleanup; the os layer never
// reports "." or "..". Returns io.EOF when the handle is exhausted.
func readNext(f *os.File, base pathwalk.Path) (Entry, error) {
	ents, err := f.ReadDir(1)
	if err == io.EOF {
		return Entry{}, io.EOF
	}
	if err != nil {
		return Entry{}, classify("readdir", base, err)
	}
	if len(ents) == 0 {
		return Entry{}, io.EOF
	}
	de := ents[0]
	return Entry{path: base.JoinName(de.Name()), de: de}, nil
}

// DirStream is a single-pass enumeration of the immediate children of one
// directory. It owns its native handle exclusively; Close releases it and
// is idempotent. The first entry is primed on open, so a directory that
// cannot be read at all fails at OpenDir rather than mid-iteration.
type DirStream struct {
	dir pathwalk.Path
	f   *os.File
	cur Entry
	ok  bool
	err error
}

// OpenDir opens dir and primes the first entry. Fails with ErrNotFound,
// ErrPermissionDenied or ErrNotADirectory in the usual cases.
func OpenDir(dir pathwalk.Path) (*DirStream, error) {
	f, err := os.Open(dir.String())
	if err != nil {
		return nil, classify("open", dir, err)
	}
	s := &DirStream{dir: dir, f: f}
	s.advance()
	if s.err != nil {
		err := s.err
		s.Close()
		return nil, err
	}
	return s, nil
}

// Dir returns the directory the stream enumerates.
func (s *DirStream) Dir() pathwalk.Path { return s.dir }

// Read returns the current entry and advances. io.EOF signals exhaustion.
func (s *DirStream) Read() (Entry, error) {
	if s.err != nil {
		err := s.err
		s.err = nil
		return Entry{}, err
	}
	if !s.ok {
		return Entry{}, io.EOF
	}
	e := s.cur
	s.advance()
	return e, nil
}

func (s *DirStream) advance() {
	if s.f == nil {
		s.ok = false
		return
	}
	e, err := readNext(s.f, s.dir)
	switch {
	case err == io.EOF:
		s.ok = false
	case err != nil:
		s.ok, s.err = false, err
	default:
		s.cur, s.ok = e, true
	}
}

// Rewind resets the stream to the first entry of the same directory path
// by reopening it; directory seek offsets are not portable.
func (s *DirStream) Rewind() error {
	f, err := os.Open(s.dir.String())
	if err != nil {
		return classify("open", s.dir, err)
	}
	_ = s.Close()
	s.f = f
	s.err = nil
	s.advance()
	return s.err
}

// Len counts the directory's entries with an independent enumeration; the
// stream's own position is untouched.
func (s *DirStream) Len() (int, error) {
	f, err := os.Open(s.dir.String())
	if err != nil {
		return 0, classify("open", s.dir, err)
	}
	defer f.Close()
	names, err := f.Readdirnames(-1)
	if err != nil {
		return 0, classify("readdir", s.dir, err)
	}
	return len(names), nil
}

// Close releases the native handle. Safe to call any number of times.
func (s *DirStream) Close() error {
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	s.ok = false
	return err
}

// All yields the remaining entries. The handle is closed when iteration
// finishes for any reason, including an early break.
func (s *DirStream) All() iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		defer s.Close()
		for {
			e, err := s.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(Entry{}, err)
				return
			}
			if !yield(e, nil) {
				return
			}
		}
	}
}
