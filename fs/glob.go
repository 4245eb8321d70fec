package fs

import (
	"io"
	"iter"
	"slices"

	"github.com/brettbedarf/pathwalk"
	"github.com/brettbedarf/pathwalk/config"
	"github.com/brettbedarf/pathwalk/internal/util"
	"github.com/rs/zerolog"
)

// Expander expands glob pattern paths against the real filesystem. The
// zero configuration is fine for one-off use; a shared StatCache pays off
// when many expansions visit the same tree.
type Expander struct {
	cfg   *config.Config
	cache *StatCache
	log   zerolog.Logger
}

// NewExpander builds an Expander. A nil cfg means defaults; cache may be
// nil unless cfg.StatCache asks for one, in which case a fresh private
// cache is created.
func NewExpander(cfg *config.Config, cache *StatCache) *Expander {
	if cfg == nil {
		cfg = config.NewConfig(nil)
	}
	if cache == nil && cfg.StatCache {
		cache = NewStatCache()
	}
	return &Expander{cfg: cfg, cache: cache, log: util.GetLogger("fs.glob")}
}

// Expand lazily yields every concrete path matching pattern, in traversal
// order: native enumeration order per directory, depth-first pre-order
// under "**". The sequence is single-use; expansion of a pattern that
// matches nothing yields nothing and is not an error. Directories that
// cannot be read are skipped.
//
// Pattern segments are either literal (appended verbatim after escape
// resolution, with no existence check), wildcard (each child of the prefix
// is matched against the segment), or exactly "**" (every entry of the
// subtree matches; when more segments follow, only directories continue).
func (x *Expander) Expand(pattern pathwalk.Path) iter.Seq[pathwalk.Path] {
	comps := slices.Collect(pattern.Iter())
	prefix := pathwalk.NewFormat(".", pattern.Format())
	return func(yield func(pathwalk.Path) bool) {
		x.expand(yield, prefix, comps)
	}
}

// expand processes one pattern component against the accumulated prefix,
// recursing into the rest. Returns false once the consumer stops.
func (x *Expander) expand(yield func(pathwalk.Path) bool, prefix pathwalk.Path, comps []string) bool {
	if len(comps) == 0 {
		if x.cfg.FilesOnly && x.pathIsDir(prefix) {
			return true
		}
		return yield(prefix)
	}
	comp, rest := comps[0], comps[1:]
	switch {
	case comp == "**":
		return x.expandTree(yield, prefix, rest)
	case pathwalk.HasMeta(comp):
		s, err := OpenDir(prefix)
		if err != nil {
			x.log.Debug().Err(err).Stringer("dir", prefix).Msg("glob: prefix not enumerable")
			return true
		}
		defer s.Close()
		for {
			e, err := s.Read()
			if err == io.EOF {
				return true
			}
			if err != nil {
				x.log.Warn().Err(err).Stringer("dir", prefix).Msg("glob: enumeration cut short")
				return true
			}
			if pathwalk.Match(e.Name(), comp) {
				if !x.expand(yield, e.Path(), rest) {
					return false
				}
			}
		}
	default:
		return x.expand(yield, prefix.JoinString(pathwalk.Unescape(comp)), rest)
	}
}

// expandTree realizes a "**" component: zero or more directory levels.
func (x *Expander) expandTree(yield func(pathwalk.Path) bool, prefix pathwalk.Path, rest []string) bool {
	if len(rest) > 0 {
		// zero levels consumed
		if !x.expand(yield, prefix, rest) {
			return false
		}
	}
	s, err := OpenRecursiveDir(prefix)
	if err != nil {
		x.log.Debug().Err(err).Stringer("dir", prefix).Msg("glob: prefix not walkable")
		return true
	}
	if d := x.cfg.MaxDepth; d > 0 {
		s.LimitDepth(d)
	}
	defer s.Close()
	for {
		e, err := s.Read()
		if err != nil {
			if err != io.EOF {
				x.log.Warn().Err(err).Stringer("dir", prefix).Msg("glob: walk cut short")
			}
			return true
		}
		if len(rest) == 0 {
			if x.cfg.FilesOnly && x.entryIsDir(e) {
				continue
			}
			if !yield(e.Path()) {
				return false
			}
			continue
		}
		// intervening components must resolve through a directory
		if x.entryIsDir(e) {
			if !x.expand(yield, e.Path(), rest) {
				return false
			}
		}
	}
}

// entryIsDir prefers the free dirent type, falling back to a (possibly
// cached) status query when the filesystem did not report one.
func (x *Expander) entryIsDir(e Entry) bool {
	if t := e.Type(); t != TypeUnknown {
		return t == TypeDirectory
	}
	return x.pathIsDir(e.Path())
}

func (x *Expander) pathIsDir(p pathwalk.Path) bool {
	var st FileStatus
	var err error
	if x.cache != nil {
		st, err = x.cache.SymlinkStatus(p)
	} else {
		st, err = SymlinkStatus(p)
	}
	return err == nil && st.IsDirectory()
}

// Expand expands pattern with default settings; see Expander.Expand. This
// is the package's sole entry point for wildcard resolution when no tuning
// is needed.
func Expand(pattern pathwalk.Path) iter.Seq[pathwalk.Path] {
	return NewExpander(nil, nil).Expand(pattern)
}

// Glob collects Expand's lazy sequence into a slice.
func Glob(pattern pathwalk.Path) []pathwalk.Path {
	return slices.Collect(Expand(pattern))
}
