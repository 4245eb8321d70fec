package fs

import (
	"path/filepath"
	"slices"
	"testing"

	"github.com/brettbedarf/pathwalk"
	"github.com/brettbedarf/pathwalk/config"
	"github.com/brettbedarf/pathwalk/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// globTree is the fixture most expansion tests run against.
func globTree(t *testing.T) string {
	t.Helper()
	return makeTree(t,
		"a.txt", "b.txt", "c.md",
		"src/main.c", "src/util.h",
		"src/net/tcp.h", "src/net/udp.h",
	)
}

func wantPaths(root string, rel ...string) []pathwalk.Path {
	out := make([]pathwalk.Path, len(rel))
	for i, r := range rel {
		out[i] = pathwalk.New(filepath.Join(root, filepath.FromSlash(r)))
	}
	return out
}

func TestGlob_SingleWildcard(t *testing.T) {
	t.Parallel()

	root := globTree(t)
	got := Glob(pathwalk.New(root).JoinString("*.txt"))
	assert.ElementsMatch(t, wantPaths(root, "a.txt", "b.txt"), got)
}

func TestGlob_WildcardThenLiteral(t *testing.T) {
	t.Parallel()

	root := globTree(t)
	got := Glob(pathwalk.New(root).JoinString("*/main.c"))
	assert.ElementsMatch(t, wantPaths(root, "src/main.c"), got)
}

// TestGlob_Recursive tests that "**" spans zero levels as well as deep
// ones: src/util.h sits directly under the prefix, the net headers one
// level down.
func TestGlob_Recursive(t *testing.T) {
	t.Parallel()

	root := globTree(t)
	got := Glob(pathwalk.New(root).JoinString("src/**/*.h"))
	assert.ElementsMatch(t,
		wantPaths(root, "src/util.h", "src/net/tcp.h", "src/net/udp.h"), got)
}

func TestGlob_TrailingRecursive(t *testing.T) {
	t.Parallel()

	root := globTree(t)
	got := Glob(pathwalk.New(root).JoinString("src/**"))
	assert.ElementsMatch(t,
		wantPaths(root, "src/main.c", "src/util.h", "src/net",
			"src/net/tcp.h", "src/net/udp.h"),
		got, "a trailing ** yields directories too")
}

func TestGlob_NoMatch(t *testing.T) {
	t.Parallel()

	root := globTree(t)
	assert.Empty(t, Glob(pathwalk.New(root).JoinString("*.go")))
}

// TestGlob_LiteralPattern tests that a pattern with no wildcards expands
// to itself without touching the filesystem at all.
func TestGlob_LiteralPattern(t *testing.T) {
	t.Parallel()

	p := pathwalk.New(filepath.Join(t.TempDir(), "does", "not", "exist"))
	assert.Equal(t, []pathwalk.Path{p}, Glob(p))
}

func TestGlob_EscapedWildcard(t *testing.T) {
	t.Parallel()

	root := makeTree(t, "*.txt", "a.txt")
	got := Glob(pathwalk.New(root).JoinString(`\*.txt`))
	assert.Equal(t, wantPaths(root, "*.txt"), got,
		"the escaped star matches only the literal name")
}

func TestExpander_FilesOnly(t *testing.T) {
	t.Parallel()

	root := globTree(t)
	cfg := config.NewConfig(&config.ConfigOverride{FilesOnly: util.Pointer(true)})
	x := NewExpander(cfg, nil)

	got := slices.Collect(x.Expand(pathwalk.New(root).JoinString("src/**")))
	assert.ElementsMatch(t,
		wantPaths(root, "src/main.c", "src/util.h",
			"src/net/tcp.h", "src/net/udp.h"),
		got, "src/net is filtered out")
}

func TestExpander_MaxDepth(t *testing.T) {
	t.Parallel()

	root := globTree(t)
	cfg := config.NewConfig(&config.ConfigOverride{MaxDepth: util.Pointer(1)})
	x := NewExpander(cfg, nil)

	got := slices.Collect(x.Expand(pathwalk.New(root).JoinString("src/**")))
	assert.ElementsMatch(t,
		wantPaths(root, "src/main.c", "src/util.h", "src/net"), got,
		"src/net is yielded at the boundary but not entered")
}

func TestExpander_EarlyBreak(t *testing.T) {
	t.Parallel()

	root := globTree(t)
	x := NewExpander(nil, nil)

	n := 0
	for range x.Expand(pathwalk.New(root).JoinString("**")) {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestStatCache(t *testing.T) {
	t.Parallel()

	root := globTree(t)
	c := NewStatCache()

	st, err := c.SymlinkStatus(pathwalk.New(root).JoinString("src"))
	require.NoError(t, err)
	assert.True(t, st.IsDirectory())
	assert.Equal(t, 1, c.Len())

	// hit path returns the same answer
	st2, err := c.SymlinkStatus(pathwalk.New(root).JoinString("src"))
	require.NoError(t, err)
	assert.Equal(t, st, st2)
	assert.Equal(t, 1, c.Len())

	// misses against missing paths are not recorded
	_, err = c.SymlinkStatus(pathwalk.New(root).JoinString("gone"))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, c.Len())

	c.Purge()
	assert.Zero(t, c.Len())
}

func TestExpander_SharedCache(t *testing.T) {
	t.Parallel()

	root := globTree(t)
	cfg := config.NewConfig(&config.ConfigOverride{
		FilesOnly: util.Pointer(true),
		StatCache: util.Pointer(true),
	})
	cache := NewStatCache()
	x := NewExpander(cfg, cache)

	got := slices.Collect(x.Expand(pathwalk.New(root).JoinString("*")))
	assert.ElementsMatch(t, wantPaths(root, "a.txt", "b.txt", "c.md"), got)
	assert.Positive(t, cache.Len(), "the files-only filter populated the cache")
}
