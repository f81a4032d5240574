// Package fnmatch implements single-segment pattern-vs-name matching: the
// POSIX glob wildcards (*, ?, [...]), POSIX bracket expressions, and
// (optionally) bash-style extended globs (@(...), !(...), ?(...), *(...),
// +(...)). It knows nothing about '/' or path components — the driver is
// responsible for splitting a path pattern into segments and recursing for
// "**" (spec §4.3). It is also consumed standalone by gitignore-style
// predicates that only need segment matching.
package fnmatch

// Options controls matching behavior for a single Compile call.
type Options struct {
	// Period lets '*', '?' and bracket expressions match a name's leading
	// '.'; when false (the default) they never do, and a leading dot must be
	// matched by a literal '.' in the pattern.
	Period bool

	// CaseFold makes literal and bracket-expression matching ASCII
	// case-insensitive.
	CaseFold bool

	// ExtGlob enables @(), !(), ?(), *(), +() groups.
	ExtGlob bool

	// NoEscape disables backslash as a quoting character.
	NoEscape bool
}
