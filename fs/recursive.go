package fs

import (
	"io"
	"iter"
	"os"

	"github.com/brettbedarf/pathwalk"
	"github.com/brettbedarf/pathwalk/internal/util"
	"github.com/rs/zerolog"
)

// frame is one open ancestor directory during recursive descent.
type frame struct {
	f   *os.File
	dir pathwalk.Path
}

// RecursiveDirStream walks a directory tree depth-first in pre-order: a
// directory is yielded before its descendants, siblings come in native
// enumeration order. Recursion is simulated with an explicit stack of
// frames, one native handle per open depth, so traversal depth bounds
// memory instead of the call stack.
//
// A subdirectory that cannot be opened mid-traversal is skipped with a
// warning; the walk itself never aborts. Skipped reports how many branches
// were dropped so callers can detect a partial view. Symlinks are not
// followed into, so a cyclic link cannot hang the walk.
type RecursiveDirStream struct {
	frames   []frame
	cur      Entry
	ok       bool
	skipped  int
	maxDepth int
	log      zerolog.Logger
}

// OpenRecursiveDir opens dir as the walk root and primes the first entry.
func OpenRecursiveDir(dir pathwalk.Path) (*RecursiveDirStream, error) {
	f, err := os.Open(dir.String())
	if err != nil {
		return nil, classify("open", dir, err)
	}
	s := &RecursiveDirStream{
		frames: []frame{{f: f, dir: dir}},
		log:    util.GetLogger("fs.walk"),
	}
	e, rerr := readNext(f, dir)
	switch {
	case rerr == io.EOF:
		// empty root; first Read reports io.EOF
	case rerr != nil:
		s.Close()
		return nil, rerr
	default:
		s.cur, s.ok = e, true
	}
	return s, nil
}

// LimitDepth caps how many directory levels may be held open at once;
// directories n levels below the root are yielded but not entered. Zero
// means unlimited. Must be set before iteration starts.
func (s *RecursiveDirStream) LimitDepth(n int) {
	s.maxDepth = n
}

// Depth returns the number of directories currently open.
func (s *RecursiveDirStream) Depth() int { return len(s.frames) }

// Skipped returns how many unreadable branches were dropped so far.
func (s *RecursiveDirStream) Skipped() int { return s.skipped }

// Read returns the current entry and advances the traversal. io.EOF
// signals that the whole tree has been visited.
func (s *RecursiveDirStream) Read() (Entry, error) {
	if !s.ok {
		return Entry{}, io.EOF
	}
	e := s.cur
	s.advance()
	return e, nil
}

// advance realizes one traversal step: try to descend into the entry just
// yielded, otherwise move to the next sibling, popping exhausted frames.
func (s *RecursiveDirStream) advance() {
	if len(s.frames) == 0 {
		s.ok = false
		return
	}
	if s.cur.IsDir() && (s.maxDepth == 0 || len(s.frames) < s.maxDepth) {
		dir := s.cur.Path()
		nf, err := os.Open(dir.String())
		if err != nil {
			s.skipped++
			s.log.Warn().Err(err).Stringer("path", dir).Msg("skipping unreadable directory")
		} else {
			e, rerr := readNext(nf, dir)
			if rerr == nil {
				s.frames = append(s.frames, frame{f: nf, dir: dir})
				s.cur = e
				return
			}
			nf.Close()
			if rerr != io.EOF {
				s.skipped++
				s.log.Warn().Err(rerr).Stringer("path", dir).Msg("skipping unreadable directory")
			}
		}
	}
	for len(s.frames) > 0 {
		top := s.frames[len(s.frames)-1]
		e, err := readNext(top.f, top.dir)
		if err == nil {
			s.cur = e
			return
		}
		if err != io.EOF {
			s.skipped++
			s.log.Warn().Err(err).Stringer("path", top.dir).Msg("abandoning unreadable directory")
		}
		top.f.Close()
		s.frames = s.frames[:len(s.frames)-1]
	}
	s.ok = false
}

// Close releases every open handle, top of the stack first. Idempotent.
func (s *RecursiveDirStream) Close() error {
	var first error
	for i := len(s.frames) - 1; i >= 0; i-- {
		if err := s.frames[i].f.Close(); err != nil && first == nil {
			first = err
		}
	}
	s.frames = nil
	s.ok = false
	return first
}

// All yields the remaining entries in traversal order. Every handle is
// closed when iteration stops for any reason.
func (s *RecursiveDirStream) All() iter.Seq2[Entry, error] {
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
