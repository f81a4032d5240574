package fnmatch_test

import (
	"testing"

	"github.com/koblas/goglob/pkg/goglob/fnmatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMatch(t *testing.T, pattern, name string, opts fnmatch.Options) bool {
	t.Helper()
	ok, err := fnmatch.Match(pattern, name, opts)
	require.NoError(t, err)
	return ok
}

func TestStarAndQuestion(t *testing.T) {
	assert.True(t, mustMatch(t, "*.go", "main.go", fnmatch.Options{}))
	assert.False(t, mustMatch(t, "*.go", "main.js", fnmatch.Options{}))
	assert.True(t, mustMatch(t, "fil?.txt", "file.txt", fnmatch.Options{}))
	assert.False(t, mustMatch(t, "fil?.txt", "fil.txt", fnmatch.Options{}))
}

func TestLeadingDotRequiresPeriodFlag(t *testing.T) {
	assert.False(t, mustMatch(t, "*", ".hidden", fnmatch.Options{}))
	assert.True(t, mustMatch(t, "*", ".hidden", fnmatch.Options{Period: true}))
	assert.True(t, mustMatch(t, ".*", ".hidden", fnmatch.Options{}))
	assert.False(t, mustMatch(t, "?hidden", ".hidden", fnmatch.Options{}))
}

func TestBracketExpression(t *testing.T) {
	assert.True(t, mustMatch(t, "[abc].txt", "b.txt", fnmatch.Options{}))
	assert.False(t, mustMatch(t, "[abc].txt", "d.txt", fnmatch.Options{}))
	assert.True(t, mustMatch(t, "[!abc].txt", "d.txt", fnmatch.Options{}))
	assert.True(t, mustMatch(t, "[a-c].txt", "b.txt", fnmatch.Options{}))
	assert.True(t, mustMatch(t, "[[:digit:]].txt", "5.txt", fnmatch.Options{}))
	assert.False(t, mustMatch(t, "[[:digit:]].txt", "x.txt", fnmatch.Options{}))
}

func TestBracketLiteralCloseAsFirstChar(t *testing.T) {
	assert.True(t, mustMatch(t, "[]a].txt", "].txt", fnmatch.Options{}))
	assert.True(t, mustMatch(t, "[]a].txt", "a.txt", fnmatch.Options{}))
}

func TestUnterminatedBracketIsLiteral(t *testing.T) {
	assert.True(t, mustMatch(t, "[abc.txt", "[abc.txt", fnmatch.Options{}))
}

func TestCaseFold(t *testing.T) {
	assert.False(t, mustMatch(t, "*.GO", "main.go", fnmatch.Options{}))
	assert.True(t, mustMatch(t, "*.GO", "main.go", fnmatch.Options{CaseFold: true}))
}

func TestBackslashEscape(t *testing.T) {
	assert.True(t, mustMatch(t, `a\*b`, "a*b", fnmatch.Options{}))
	assert.False(t, mustMatch(t, `a\*b`, "axb", fnmatch.Options{}))
	assert.True(t, mustMatch(t, `a\*b`, `a\xb`, fnmatch.Options{NoEscape: true}))
}

func TestExtGlobAtGroup(t *testing.T) {
	opts := fnmatch.Options{ExtGlob: true}
	assert.True(t, mustMatch(t, "@(foo|bar).txt", "foo.txt", opts))
	assert.True(t, mustMatch(t, "@(foo|bar).txt", "bar.txt", opts))
	assert.False(t, mustMatch(t, "@(foo|bar).txt", "baz.txt", opts))
}

func TestExtGlobStarGroup(t *testing.T) {
	opts := fnmatch.Options{ExtGlob: true}
	assert.True(t, mustMatch(t, "*(ab)c", "c", opts))
	assert.True(t, mustMatch(t, "*(ab)c", "ababc", opts))
	assert.False(t, mustMatch(t, "*(ab)c", "abx", opts))
}

func TestExtGlobPlusGroup(t *testing.T) {
	opts := fnmatch.Options{ExtGlob: true}
	assert.False(t, mustMatch(t, "+(ab)c", "c", opts))
	assert.True(t, mustMatch(t, "+(ab)c", "abc", opts))
	assert.True(t, mustMatch(t, "+(ab)c", "ababc", opts))
}

func TestExtGlobQuestionGroup(t *testing.T) {
	opts := fnmatch.Options{ExtGlob: true}
	assert.True(t, mustMatch(t, "file?(s).txt", "file.txt", opts))
	assert.True(t, mustMatch(t, "file?(s).txt", "files.txt", opts))
	assert.False(t, mustMatch(t, "file?(s).txt", "filess.txt", opts))
}

func TestExtGlobNegateGroup(t *testing.T) {
	opts := fnmatch.Options{ExtGlob: true}
	assert.True(t, mustMatch(t, "*.!(txt)", "a.go", opts))
	assert.False(t, mustMatch(t, "*.!(txt)", "a.txt", opts))
}

func TestHasMagic(t *testing.T) {
	m, err := fnmatch.Compile("plain.txt", fnmatch.Options{})
	require.NoError(t, err)
	assert.False(t, m.HasMagic())

	m, err = fnmatch.Compile("*.txt", fnmatch.Options{})
	require.NoError(t, err)
	assert.True(t, m.HasMagic())
}

func TestFixedSuffixFastPath(t *testing.T) {
	m, err := fnmatch.Compile("*.log", fnmatch.Options{})
	require.NoError(t, err)
	suffix, ok := m.FixedSuffix()
	assert.True(t, ok)
	assert.Equal(t, ".log", suffix)

	m, err = fnmatch.Compile("a*.log", fnmatch.Options{})
	require.NoError(t, err)
	_, ok = m.FixedSuffix()
	assert.False(t, ok)
}

func TestRejectFirstByte(t *testing.T) {
	m, err := fnmatch.Compile("foo*", fnmatch.Options{})
	require.NoError(t, err)
	assert.False(t, m.RejectFirstByte('f'))
	assert.True(t, m.RejectFirstByte('b'))
}

func TestStarBacktrackDeepName(t *testing.T) {
	name := ""
	for i := 0; i < 5000; i++ {
		name += "a"
	}
	name += "b"
	assert.True(t, mustMatch(t, "a*a*a*a*b", name, fnmatch.Options{}))
}

func TestPureLiteralStarFastPath(t *testing.T) {
	assert.True(t, mustMatch(t, "abc*def*ghi", "abcXXdefYYghi", fnmatch.Options{}))
	assert.False(t, mustMatch(t, "abc*def*ghi", "abcXXdefYY", fnmatch.Options{}))
	assert.True(t, mustMatch(t, "*foo*", "xxfooyy", fnmatch.Options{}))
	assert.False(t, mustMatch(t, "*foo*", "xxbaryy", fnmatch.Options{}))
	assert.True(t, mustMatch(t, "*", "anything", fnmatch.Options{}))
	assert.True(t, mustMatch(t, "exact", "exact", fnmatch.Options{}))
	assert.False(t, mustMatch(t, "exact", "exacting", fnmatch.Options{}))
	// Overlapping literal runs must not be allowed to reuse the same bytes.
	assert.False(t, mustMatch(t, "*aa*aa*", "aaa", fnmatch.Options{}))
	assert.True(t, mustMatch(t, "*aa*aa*", "aaaa", fnmatch.Options{}))
}

func TestCaseFoldSkipsLiteralStarFastPath(t *testing.T) {
	assert.True(t, mustMatch(t, "*.GO", "main.go", fnmatch.Options{CaseFold: true}))
}

func TestStarRetryJumpsOverClassAndLiteral(t *testing.T) {
	// A '?' right after the leading '*' disqualifies the pure literal-star
	// path; the star's retry then advances one byte at a time, since '?'
	// has no byte to search for.
	assert.True(t, mustMatch(t, "*?.txt", "aaaaaaaaaa.txt", fnmatch.Options{}))
	assert.False(t, mustMatch(t, "*?.txt", "aaaaaaaaaa.log", fnmatch.Options{}))

	// A trailing '?' also disqualifies the literal-star path, but here a
	// literal '.' follows the star, forcing the findChar jump path.
	assert.True(t, mustMatch(t, "*.tx?", "aaaaaaaaaa.txt", fnmatch.Options{}))
	assert.False(t, mustMatch(t, "*.tx?", "aaaaaaaaaa.log", fnmatch.Options{}))

	// Bracket expression after a star, forcing the findAnyOf jump path.
	assert.True(t, mustMatch(t, "*[0-9].txt", "file42.txt", fnmatch.Options{}))
	assert.False(t, mustMatch(t, "*[0-9].txt", "filexx.txt", fnmatch.Options{}))

	// Negated class after a star falls back to the byte-at-a-time retry.
	assert.True(t, mustMatch(t, "*[!0-9].txt", "filex.txt", fnmatch.Options{}))
}

func TestMatchSuffixes(t *testing.T) {
	mask := fnmatch.MatchSuffixes("main.go", []string{".go", ".txt", ".md"}, false)
	assert.Equal(t, uint64(1), mask)

	mask = fnmatch.MatchSuffixes("README.md", []string{".go", ".txt", ".md"}, false)
	assert.Equal(t, uint64(1<<2), mask)

	mask = fnmatch.MatchSuffixes("notes.MD", []string{".go", ".md"}, true)
	assert.Equal(t, uint64(1<<1), mask)

	mask = fnmatch.MatchSuffixes("image.png", []string{".go", ".txt", ".md"}, false)
	assert.Equal(t, uint64(0), mask)
}
