package pathwalk

import "strings"

// Match reports whether a single filename matches one glob pattern segment.
// The pattern grammar is literals, '*' for any substring (including the
// empty one), and '\X' forcing X literal: '\*' matches a star and '\\'
// a backslash. A trailing lone backslash is itself a literal backslash,
// never an error.
//
// The matcher consumes the literal prefix byte by byte, collapses star runs
// to a single wildcard, and then backtracks: each split point of the
// remaining name is tried in order against the rest of the pattern.
func Match(name, pattern string) bool {
	for len(pattern) > 0 && pattern[0] != '*' {
		c := pattern[0]
		pattern = pattern[1:]
		if c == '\\' && len(pattern) > 0 {
			c = pattern[0]
			pattern = pattern[1:]
		}
		if len(name) == 0 || name[0] != c {
			return false
		}
		name = name[1:]
	}
	if len(pattern) == 0 {
		return len(name) == 0
	}
	for len(pattern) > 0 && pattern[0] == '*' {
		pattern = pattern[1:]
	}
	if len(pattern) == 0 {
		// trailing wildcard swallows whatever is left
		return true
	}
	for i := 0; i <= len(name); i++ {
		if Match(name[i:], pattern) {
			return true
		}
	}
	return false
}

// HasMeta reports whether pattern contains an unescaped '*'.
func HasMeta(pattern string) bool {
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '\\':
			i++
		case '*':
			return true
		}
	}
	return false
}

// Unescape resolves '\X' sequences to their literal characters so an
// escaped segment can address a file whose name contains metacharacters. A
// trailing lone backslash stays a backslash.
func Unescape(pattern string) string {
	if !strings.ContainsRune(pattern, '\\') {
		return pattern
	}
	b := make([]byte, 0, len(pattern))
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == '\\' && i+1 < len(pattern) {
			i++
		}
		b = append(b, pattern[i])
	}
	return string(b)
}
