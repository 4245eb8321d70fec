package pathwalk

import (
	"iter"
	"strings"
)

// Components is a forward cursor over a path's anchor and segments: the
// anchor comes first when present, then one piece per separator. It views
// the Path it was built from and is restartable only by rebuilding it.
type Components struct {
	cur  string
	rest string
}

// Components positions a cursor on the first component.
func (p Path) Components() Components {
	c := Components{rest: p.str()}
	if d := p.Drive(); d != "" {
		c.cur = p.Anchor()
		if len(c.cur) == len(d) {
			// drive without a root: keep one byte so the next segment is
			// delimited like any other
			c.rest = c.rest[len(d)-1:]
		} else {
			c.rest = c.rest[len(d):]
		}
		return c
	}
	if r := p.Root(); r != "" {
		c.cur = r
		// rest keeps its leading separator for Pop
		return c
	}
	if i := strings.IndexByte(c.rest, p.fmt.Separator()); i >= 0 {
		c.cur = c.rest[:i]
		c.rest = c.rest[i:]
	} else {
		c.cur = c.rest
		c.rest = ""
	}
	return c
}

// Empty reports whether all components have been consumed.
func (c *Components) Empty() bool { return c.cur == "" }

// Front returns the current component.
func (c *Components) Front() string { return c.cur }

// Pop advances past the next separator.
func (c *Components) Pop() {
	if c.rest == "" {
		c.cur = ""
		return
	}
	r := c.rest
	sep := byte('/')
	if r[0] != '/' {
		sep = '\\'
	}
	r = r[1:]
	if i := strings.IndexByte(r, sep); i >= 0 {
		c.cur = r[:i]
		c.rest = r[i:]
	} else {
		c.cur = r
		c.rest = ""
	}
}

// Iter yields the anchor (if any) followed by each segment in order.
func (p Path) Iter() iter.Seq[string] {
	return func(yield func(string) bool) {
		for c := p.Components(); !c.Empty(); c.Pop() {
			if !yield(c.Front()) {
				return
			}
		}
	}
}
