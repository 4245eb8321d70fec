package fs

import (
	"github.com/brettbedarf/pathwalk"
	"github.com/puzpuzpuz/xsync/v4"
)

// StatCache memoizes symlink-status results keyed by path text. It is an
// opt-in layer for callers running repeated expansions over one tree;
// plain Status and SymlinkStatus always re-stat. Safe for concurrent use,
// so several expansions may share one cache. Failures are never cached.
type StatCache struct {
	m *xsync.Map[string, FileStatus]
}

func NewStatCache() *StatCache {
	return &StatCache{m: xsync.NewMap[string, FileStatus]()}
}

// SymlinkStatus returns the cached status for p, querying and recording it
// on a miss.
func (c *StatCache) SymlinkStatus(p pathwalk.Path) (FileStatus, error) {
	key := p.String()
	if st, ok := c.m.Load(key); ok {
		return st, nil
	}
	st, err := SymlinkStatus(p)
	if err != nil {
		return FileStatus{}, err
	}
	c.m.Store(key, st)
	return st, nil
}

// Len returns the number of cached entries.
func (c *StatCache) Len() int { return c.m.Size() }

// Purge drops every cached entry; the filesystem may have moved on.
func (c *StatCache) Purge() { c.m.Clear() }
