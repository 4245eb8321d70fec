package fs

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/brettbedarf/pathwalk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helper to create a file with exact permission bits (chmod is not
// subject to the umask, WriteFile's mode argument is).
func createFile(t *testing.T, dir, name string, perm os.FileMode) pathwalk.Path {
	t.Helper()
	full := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(full, []byte("x"), 0o600))
	require.NoError(t, os.Chmod(full, perm))
	return pathwalk.New(full)
}

func TestStatus_Regular(t *testing.T) {
	t.Parallel()

	p := createFile(t, t.TempDir(), "f.txt", 0o640)

	st, err := Status(p)
	require.NoError(t, err)
	assert.Equal(t, TypeRegular, st.Type)
	assert.Equal(t, Perms(0o640), st.Perms)
	assert.True(t, st.IsRegular())
	assert.False(t, st.IsDirectory())
}

func TestStatus_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.Chmod(sub, 0o755))

	st, err := Status(pathwalk.New(sub))
	require.NoError(t, err)
	assert.Equal(t, TypeDirectory, st.Type)
	assert.Equal(t, Perms(0o755), st.Perms)
	assert.True(t, IsDirectory(pathwalk.New(sub)))
}

func TestSymlinkStatus_DoesNotFollow(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation needs privileges on windows")
	}

	dir := t.TempDir()
	target := createFile(t, dir, "target", 0o644)
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(target.String(), link))

	lst, err := SymlinkStatus(pathwalk.New(link))
	require.NoError(t, err)
	assert.Equal(t, TypeSymlink, lst.Type)

	// following the link lands on the regular file
	st, err := Status(pathwalk.New(link))
	require.NoError(t, err)
	assert.Equal(t, TypeRegular, st.Type)
}

func TestStatus_NotFound(t *testing.T) {
	t.Parallel()

	p := pathwalk.New(filepath.Join(t.TempDir(), "missing"))
	_, err := Status(p)
	assert.ErrorIs(t, err, ErrNotFound)

	ok, err := Exists(p)
	require.NoError(t, err, "absence is not an error for Exists")
	assert.False(t, ok)
}

func TestExists(t *testing.T) {
	t.Parallel()

	p := createFile(t, t.TempDir(), "here", 0o600)
	ok, err := Exists(p)
	require.NoError(t, err)
	assert.True(t, ok)
}

// TestPerms_String tests the ls-style rendering including the special
// bits; this is purely lexical.
func TestPerms_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		perms Perms
		want  string
	}{
		{0o755, "rwxr-xr-x"},
		{0o640, "rw-r-----"},
		{0, "---------"},
		{0o4755, "rwsr-xr-x"},
		{0o4644, "rwSr--r--"},
		{0o2755, "rwxr-sr-x"},
		{0o1777, "rwxrwxrwt"},
		{0o1644, "rw-r--r-T"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.perms.String(), "perms %04o", uint32(tt.perms))
	}
}

func TestFileType_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "regular", TypeRegular.String())
	assert.Equal(t, "directory", TypeDirectory.String())
	assert.Equal(t, "symlink", TypeSymlink.String())
	assert.Equal(t, "unknown", TypeUnknown.String())
	assert.Equal(t, "fifo", TypeFifo.String())
}

func TestCwd(t *testing.T) {
	t.Parallel()

	p, err := Cwd()
	require.NoError(t, err)
	assert.True(t, p.IsAbsolute())
}
