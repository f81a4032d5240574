// Package goglob is a POSIX-compatible pathname expansion ("glob") engine
// with recursive **, brace expansion, tilde expansion, extended bash-style
// alternation and optional .gitignore pruning.
package goglob

// Flag is the ABI-stable option bitmask controlling compilation, walking and
// matching. Numeric values for the POSIX-compatible bits match glob(3) so
// callers porting C code can reuse their existing flag words.
type Flag uint32

// POSIX-compatible bits. Values are part of the ABI (spec §6); do not renumber.
const (
	ERR         Flag = 1 << iota // 0x0001 abort on unreadable directory
	MARK                         // 0x0002 append '/' to directory matches
	NOSORT                       // 0x0004 do not sort results
	DOOFFS                       // 0x0008 reserve offset_reserve leading null slots
	NOCHECK                      // 0x0010 return pattern literal on empty match, unconditionally
	APPEND                       // 0x0020 append to an existing MatchResult
	NOESCAPE                     // 0x0040 backslash is not a quoting character
	PERIOD                       // 0x0080 allow * and ? to match a leading '.'
	MAGCHAR                      // 0x0100 output-only ABI bit; never set by goglob (see CompiledPattern.HasMagic)
	ALTDIRFUNC                   // 0x0200 not implemented; Compile rejects this bit
	BRACE                        // 0x0400 enable {a,b,c} expansion
	NOMAGIC                      // 0x0800 return pattern literal on empty match, only if no magic chars
	TILDE                        // 0x1000 enable ~ and ~user expansion
	ONLYDIR                      // 0x2000 hint: only directories are of interest
	TILDE_CHECK                  // 0x4000 missing ~user is NOMATCH instead of literal
)

// Non-ABI extensions. These bits do not collide with the POSIX table above
// and may be renumbered across releases.
const (
	GITIGNORE  Flag = 1 << (16 + iota) // consult an IgnorePredicate for every entry the driver walks
	EXTGLOB                            // enable @(...) !(...) ?(...) *(...) +(...)
	CASEFOLD                           // ASCII case-insensitive fnmatch
	MATCHBASE                          // MatchPaths: a pattern without '/' matches basenames only
	NEGATE                             // MatchPaths: a leading '!' inverts the pattern
	NONEGATE                           // MatchPaths: disable negation handling entirely
)

// Recommended is the "kindness" superset most callers want: brace expansion,
// tilde expansion, extended globs and sorted output with directory marking.
const Recommended = BRACE | TILDE | EXTGLOB | MARK

// Has reports whether all bits of want are set in f.
func (f Flag) Has(want Flag) bool {
	return f&want == want
}
