// Package pathwalk provides a portable, purely lexical path representation
// together with a glob segment matcher. A [Path] models both POSIX and
// Windows path grammars as a single value type tagged with a [Format];
// nothing in this package touches the filesystem. Directory enumeration and
// glob expansion over real directories live in the fs subpackage.
package pathwalk

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrInvalidPath reports malformed or unconvertible drive/UNC syntax.
var ErrInvalidPath = errors.New("invalid path")

// Format selects the separator grammar a Path is interpreted under.
type Format int

const (
	// Native resolves to Posix or Windows depending on the host OS.
	Native Format = iota
	Posix
	Windows
)

// effective resolves Native to the concrete host format.
func (f Format) effective() Format {
	if f == Native {
		if os.PathSeparator == '\\' {
			return Windows
		}
		return Posix
	}
	return f
}

// Separator returns the separator byte for the format.
func (f Format) Separator() byte {
	if f.effective() == Windows {
		return '\\'
	}
	return '/'
}

func (f Format) String() string {
	switch f {
	case Posix:
		return "posix"
	case Windows:
		return "windows"
	default:
		return "native"
	}
}

// Path is a normalized path string plus its format tag. The zero value is
// the current-directory path "." in native format. Paths are values: every
// operation returns a new Path and the receiver is never modified.
//
// Normalization is lexical only. Separator runs collapse to one separator
// (a leading doubled separator survives once in Windows format, for UNC
// prefixes), "." segments are removed, trailing separators are stripped
// unless they belong to a root or drive prefix, and ".." segments are kept
// untouched. Windows format accepts both '/' and '\\' as separators; POSIX
// format treats a backslash as an ordinary name byte.
type Path struct {
	text string
	fmt  Format
}

// New builds a normalized native-format path from text.
func New(text string) Path {
	return NewFormat(text, Native)
}

// NewFormat builds a normalized path in the given format.
func NewFormat(text string, f Format) Path {
	return Path{text: ".", fmt: f}.appendStr(text, false)
}

// NewSegments builds a path by joining segments in order, each going
// through the same cleanup as a full path string.
func NewSegments(f Format, segments ...string) Path {
	p := Path{text: ".", fmt: f}
	for _, s := range segments {
		p = p.appendStr(s, false)
	}
	return p
}

// String returns the normalized path text.
func (p Path) String() string { return p.str() }

// Format returns the format tag the path was constructed with.
func (p Path) Format() Format { return p.fmt }

// Separator returns the separator byte of the path's format.
func (p Path) Separator() byte { return p.fmt.Separator() }

// Compare orders paths byte-wise on their normalized text. Two paths that
// resolve to the same location through symlinks do not compare equal.
func (p Path) Compare(other Path) int {
	return strings.Compare(p.str(), other.str())
}

// Equal reports byte-wise equality of the normalized texts, ignoring the
// format tag. Plain == additionally requires identical tags.
func (p Path) Equal(other Path) bool { return p.str() == other.str() }

func (p Path) str() string {
	if p.text == "" {
		return "."
	}
	return p.text
}

func (p Path) isWin() bool { return p.fmt.effective() == Windows }

// isSep reports whether c separates segments: '/' always, '\\' only under
// the Windows grammar. In POSIX format a backslash is an ordinary name byte,
// which keeps '\X' glob escapes intact through normalization.
func isSep(c byte, win bool) bool { return c == '/' || (win && c == '\\') }

// hasLetter reports an "X:" drive-letter prefix.
func hasLetter(s string) bool {
	if len(s) < 2 {
		return false
	}
	c := s[0] | 32
	return s[1] == ':' && c >= 'a' && c <= 'z'
}

// hasDoubled reports a leading "\\" UNC prefix.
func hasDoubled(s string) bool {
	return len(s) >= 2 && s[0] == '\\' && s[1] == '\\'
}

// cleanup collapses separator runs (both styles under the Windows grammar,
// '/' only otherwise) into sep and drops "." segments. A leading doubled
// separator is kept once when allowDoubled is set; ".." segments pass
// through untouched.
func cleanup(s string, sep byte, win, allowDoubled bool) string {
	b := make([]byte, 0, len(s))
	i := 0
	if allowDoubled && len(s) >= 2 && isSep(s[0], win) && isSep(s[1], win) {
		b = append(b, sep)
		i = 1
	}
	// a leading "." segment is dropped rather than collapsed
	if rest := s[i:]; rest == "." {
		i++
	} else if len(rest) >= 2 && rest[0] == '.' && isSep(rest[1], win) {
		i += 2
	}
	for i < len(s) {
		c := s[i]
		if !isSep(c, win) {
			b = append(b, c)
			i++
			continue
		}
		j := i + 1
		for j < len(s) {
			if isSep(s[j], win) {
				j++
				continue
			}
			if s[j] == '.' && (j+1 == len(s) || isSep(s[j+1], win)) {
				j += 2
				continue
			}
			break
		}
		if j > len(s) {
			j = len(s)
		}
		b = append(b, sep)
		i = j
	}
	return string(b)
}

// stripTrailing removes one trailing separator unless it is the whole root
// or completes a drive prefix ("C:\", "\\").
func stripTrailing(s string, sep byte) string {
	n := len(s)
	if n <= 1 {
		return s
	}
	if sep == '\\' {
		if n <= 2 && hasDoubled(s) {
			return s
		}
		if n <= 3 && hasLetter(s) {
			return s
		}
	}
	if s[n-1] == sep {
		return s[:n-1]
	}
	return s
}

// appendStr implements join semantics: an absolute (rooted or drive-letter)
// appendage replaces the receiver wholesale, anything else is attached with
// exactly one separator in between. normalized skips cleanup for text that
// already went through it.
func (p Path) appendStr(s string, normalized bool) Path {
	sep := p.fmt.Separator()
	win := p.isWin()
	if !normalized {
		s = cleanup(s, sep, win, win)
	}
	if s == "." {
		s = ""
	}
	t := p.str()
	switch {
	case s == "":
		// nothing to attach
	case s[0] == sep || (win && hasLetter(s)):
		t = s
	case t == ".":
		t = s
	default:
		if t[len(t)-1] != sep {
			t += string(sep)
		}
		t += s
	}
	t = stripTrailing(t, sep)
	if t == "" {
		t = "."
	}
	p.text = t
	return p
}

// Join appends other to p. If other is absolute (it has a root, or in
// Windows format a drive letter) it replaces p entirely, mirroring shell
// path-join semantics. Formats differing only in separator are converted by
// re-cleanup on the way in.
func (p Path) Join(other Path) Path {
	return p.appendStr(other.str(), other.fmt.effective() == p.fmt.effective())
}

// JoinString is Join with a raw string appendage.
func (p Path) JoinString(s string) Path {
	return p.appendStr(s, false)
}

// JoinName attaches a single separator-free name without re-running
// cleanup. Directory enumeration uses it so raw entry names stay verbatim.
func (p Path) JoinName(name string) Path {
	t := p.str()
	sep := p.fmt.Separator()
	switch {
	case t == ".":
		t = name
	case t[len(t)-1] == sep:
		t += name
	default:
		t += string(sep) + name
	}
	p.text = t
	return p
}

// Concat appends other as a pure string continuation: no separator is
// inserted, a doubled one at the seam is deduplicated, and other never
// replaces the receiver even when rooted.
func (p Path) Concat(other Path) Path {
	return p.ConcatString(other.str())
}

// ConcatString is Concat with a raw string appendage.
func (p Path) ConcatString(s string) Path {
	sep := p.fmt.Separator()
	s = cleanup(s, sep, p.isWin(), false)
	if s == "." {
		s = ""
	}
	t := p.str()
	if t == "." {
		if s != "" {
			t = s
		}
	} else if s != "" {
		if t[len(t)-1] == sep && s[0] == sep {
			t = t[:len(t)-1]
		}
		t += s
	}
	t = stripTrailing(t, sep)
	if t == "" {
		t = "."
	}
	p.text = t
	return p
}

// Drive returns the Windows drive prefix: an "X:" letter drive or a
// "\\server\share" UNC prefix. Empty for POSIX-format paths. A UNC prefix
// missing its share or server spans the rest of the text.
func (p Path) Drive() string {
	if !p.isWin() {
		return ""
	}
	t := p.str()
	if hasDoubled(t) {
		i := strings.IndexByte(t[2:], '\\')
		if i < 0 {
			return t
		}
		i += 2
		j := strings.IndexByte(t[i+1:], '\\')
		if j < 0 {
			return t
		}
		return t[:i+1+j]
	}
	if hasLetter(t) {
		return t[:2]
	}
	return ""
}

// HasDrive reports whether the path carries a drive or UNC prefix.
func (p Path) HasDrive() bool {
	return p.isWin() && (hasLetter(p.str()) || hasDoubled(p.str()))
}

// Root returns the separator that roots the path, directly after the drive
// prefix if one is present. Empty for relative paths and for a bare drive.
func (p Path) Root() string {
	t := p.str()
	d := p.Drive()
	sep := p.fmt.Separator()
	if len(t) > len(d) && t[len(d)] == sep {
		return string(sep)
	}
	return ""
}

// HasRoot reports whether the path is rooted.
func (p Path) HasRoot() bool { return p.Root() != "" }

// Anchor is the non-relative prefix: drive plus root.
func (p Path) Anchor() string { return p.Drive() + p.Root() }

// HasAnchor reports whether the path has a root or a drive.
func (p Path) HasAnchor() bool { return p.HasRoot() || p.HasDrive() }

// relTo strips other as a literal prefix, plus one following separator.
func (p Path) relTo(other string) (string, bool) {
	t := p.str()
	if other == "." {
		return t, true
	}
	if !strings.HasPrefix(t, other) {
		return "", false
	}
	rest := t[len(other):]
	if len(rest) > 0 && rest[0] == p.fmt.Separator() {
		rest = rest[1:]
	}
	return rest, true
}

// rel is the anchor-relative portion of the text.
func (p Path) rel() string {
	r, _ := p.relTo(p.Anchor())
	return r
}

// Parent returns the path up to the last separator beyond the anchor. A
// path with no such separator is its own parent; parent references are
// never resolved against the filesystem.
func (p Path) Parent() Path {
	rel := p.rel()
	i := strings.LastIndexByte(rel, p.fmt.Separator())
	if i < 0 {
		return p
	}
	t := p.str()
	p.text = t[:len(t)-(len(rel)-i)]
	return p
}

// HasParent reports whether a separator exists beyond the anchor.
func (p Path) HasParent() bool {
	return strings.IndexByte(p.rel(), p.fmt.Separator()) >= 0
}

// Name returns the final segment after the anchor; empty for a pure root.
func (p Path) Name() string {
	rel := p.rel()
	if i := strings.LastIndexByte(rel, p.fmt.Separator()); i >= 0 {
		return rel[i+1:]
	}
	return rel
}

// HasName reports whether the path ends in a segment.
func (p Path) HasName() bool { return p.Name() != "" }

// Stem is the name up to its first dot.
func (p Path) Stem() string {
	nm := p.Name()
	if i := strings.IndexByte(nm, '.'); i >= 0 {
		return nm[:i]
	}
	return nm
}

// HasStem reports whether the name has a non-empty stem.
func (p Path) HasStem() bool { return p.Stem() != "" }

// Suffix is the name from its last dot to the end, dot included. A name
// without a dot has an empty suffix.
func (p Path) Suffix() string {
	nm := p.Name()
	if i := strings.LastIndexByte(nm, '.'); i >= 0 {
		return nm[i:]
	}
	return ""
}

// Suffixes splits the name at every dot, one ".ext" piece per dot.
func (p Path) Suffixes() []string {
	nm := p.Name()
	i := strings.IndexByte(nm, '.')
	if i < 0 {
		return nil
	}
	parts := strings.Split(nm[i+1:], ".")
	out := make([]string, len(parts))
	for k, s := range parts {
		out[k] = "." + s
	}
	return out
}

// HasSuffix reports whether the name contains a dot.
func (p Path) HasSuffix() bool {
	return strings.IndexByte(p.Name(), '.') >= 0
}

// Relative returns the path with its anchor stripped.
func (p Path) Relative() Path {
	return p.RelativeTo(Path{text: p.Anchor(), fmt: p.fmt})
}

// RelativeTo strips other as a literal string prefix (plus one following
// separator). The receiver is returned unmodified when other is not a
// prefix of it; no filesystem resolution takes place.
func (p Path) RelativeTo(other Path) Path {
	o := other
	if o.fmt.effective() != p.fmt.effective() {
		conv, err := other.ToFormat(p.fmt)
		if err != nil {
			return p
		}
		o = conv
	}
	rest, ok := p.relTo(o.str())
	if !ok {
		return p
	}
	if rest == "" {
		rest = "."
	}
	return Path{text: rest, fmt: p.fmt}
}

// IsAbsolute reports whether the path is anchored enough to name a fixed
// location: rooted on POSIX; on Windows either a UNC prefix or a drive
// letter followed by a separator (a bare "C:" is not absolute).
func (p Path) IsAbsolute() bool {
	t := p.str()
	if p.isWin() {
		if hasDoubled(t) {
			return true
		}
		return hasLetter(t) && len(t) > 2 && t[2] == '\\'
	}
	return t[0] == '/'
}

// IsRelative is the negation of IsAbsolute.
func (p Path) IsRelative() bool { return !p.IsAbsolute() }

// WithoutName returns the path with its final segment removed. The anchor
// is kept; removing the only segment of a relative path yields ".".
func (p Path) WithoutName() Path {
	nm := p.Name()
	if nm == "" {
		return p
	}
	t := p.str()
	cut := len(t) - len(nm)
	if a := p.Anchor(); cut > len(a) && t[cut-1] == p.fmt.Separator() {
		cut--
	}
	t = t[:cut]
	if t == "" {
		t = "."
	}
	p.text = t
	return p
}

// WithName replaces the final segment.
func (p Path) WithName(name string) Path {
	return p.WithoutName().appendStr(name, false)
}

// WithSuffix replaces the last suffix of the name (or appends when there is
// none).
func (p Path) WithSuffix(sfx string) Path {
	t := p.str()
	if old := p.Suffix(); old != "" {
		t = t[:len(t)-len(old)]
	}
	p.text = t + sfx
	return p
}

// WithSuffixes replaces every suffix of the name at once.
func (p Path) WithSuffixes(sfx string) Path {
	nm := p.Name()
	t := p.str()
	if i := strings.IndexByte(nm, '.'); i >= 0 {
		t = t[:len(t)-(len(nm)-i)]
	}
	p.text = t + sfx
	return p
}

// ToFormat re-tags the path, rewriting every separator when the effective
// format changes. Windows drive and UNC prefixes have no POSIX spelling;
// converting a path that carries one fails with ErrInvalidPath.
func (p Path) ToFormat(f Format) (Path, error) {
	if f.effective() == p.fmt.effective() {
		p.fmt = f
		return p, nil
	}
	t := p.str()
	if p.isWin() && p.HasDrive() {
		return Path{}, fmt.Errorf("%w: %q carries a drive prefix with no posix form", ErrInvalidPath, t)
	}
	from, to := "/", "\\"
	if f.effective() == Posix {
		from, to = "\\", "/"
	}
	p.text = strings.ReplaceAll(t, from, to)
	p.fmt = f
	return p, nil
}

// Validate checks drive/UNC syntax. A UNC prefix must name both a server
// and a share; everything else is accepted as-is.
func (p Path) Validate() error {
	if !p.isWin() {
		return nil
	}
	t := p.str()
	if !hasDoubled(t) {
		return nil
	}
	body := strings.TrimPrefix(t[2:], "\\")
	i := strings.IndexByte(body, '\\')
	if t[2:] == "" || i < 0 || i+1 >= len(body) || body[:i] == "" {
		return fmt.Errorf("%w: %q lacks a UNC server or share", ErrInvalidPath, t)
	}
	return nil
}
