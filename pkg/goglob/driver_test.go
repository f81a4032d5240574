package goglob_test

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/koblas/goglob/pkg/goglob"
	"github.com/koblas/goglob/pkg/goglob/walk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingWalker records how many times each directory is listed.
type countingWalker struct {
	calls map[string]int
}

func (w *countingWalker) ReadDir(path string) ([]walk.Entry, error) {
	w.calls[path]++
	return walk.New().ReadDir(path)
}

func writeTree(t *testing.T, root string, files []string) {
	t.Helper()
	for _, f := range files {
		full := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("x"), 0o644))
	}
}

func TestGlobLiteralSegments(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, []string{"a.txt", "b.txt", "sub/c.txt"})

	res, err := goglob.Glob(filepath.Join(root, "a.txt"), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "a.txt")}, res.Paths())
}

func TestGlobWildcardSortedByDefault(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, []string{"b.txt", "a.txt", "c.txt"})

	res, err := goglob.Glob(filepath.Join(root, "*.txt"), 0)
	require.NoError(t, err)

	paths := res.Paths()
	require.Len(t, paths, 3)
	assert.True(t, sort.StringsAreSorted(paths))
}

func TestGlobNoMatchReturnsErrNoMatch(t *testing.T) {
	root := t.TempDir()
	_, err := goglob.Glob(filepath.Join(root, "*.missing"), 0)
	assert.ErrorIs(t, err, goglob.ErrNoMatch)
}

func TestGlobNoCheckReturnsLiteralOnEmptyMatch(t *testing.T) {
	root := t.TempDir()
	pattern := filepath.Join(root, "*.missing")

	res, err := goglob.Glob(pattern, goglob.NOCHECK)
	require.NoError(t, err)
	assert.Equal(t, []string{pattern}, res.Paths())
}

func TestGlobNoMagicReturnsLiteralOnlyWithoutMagic(t *testing.T) {
	root := t.TempDir()
	literal := filepath.Join(root, "missing.txt")

	res, err := goglob.Glob(literal, goglob.NOMAGIC)
	require.NoError(t, err)
	assert.Equal(t, []string{literal}, res.Paths())

	_, err = goglob.Glob(filepath.Join(root, "*.missing"), goglob.NOMAGIC)
	assert.ErrorIs(t, err, goglob.ErrNoMatch)
}

func TestGlobMarkAppendsSlashToDirs(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, []string{"sub/file.txt"})

	res, err := goglob.Glob(filepath.Join(root, "*"), goglob.MARK)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "sub") + "/"}, res.Paths())
}

func TestGlobOnlyDirFiltersFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, []string{"sub/file.txt", "a.txt"})

	res, err := goglob.Glob(filepath.Join(root, "*"), goglob.ONLYDIR)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "sub")}, res.Paths())
}

func TestGlobRecursiveDoubleStar(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, []string{"a.go", "sub/b.go", "sub/deep/c.go", "sub/d.txt"})

	res, err := goglob.Glob(filepath.Join(root, "**/*.go"), 0)
	require.NoError(t, err)

	got := res.Paths()
	sort.Strings(got)
	want := []string{
		filepath.Join(root, "a.go"),
		filepath.Join(root, "sub/b.go"),
		filepath.Join(root, "sub/deep/c.go"),
	}
	sort.Strings(want)
	assert.Equal(t, want, got)
}

func TestGlobDoOffsReservesLeadingSlots(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, []string{"a.txt"})

	res, err := goglob.Glob(filepath.Join(root, "a.txt"), goglob.DOOFFS, goglob.WithOffsetReserve(2))
	require.NoError(t, err)
	assert.Equal(t, 2, res.OffsetReserve())
	assert.Equal(t, 1, res.Count())
}

func TestGlobAppendExtendsPriorResult(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, []string{"a.txt", "b.log"})

	first, err := goglob.Glob(filepath.Join(root, "*.txt"), 0)
	require.NoError(t, err)

	second, err := goglob.Glob(filepath.Join(root, "*.log"), goglob.APPEND, goglob.WithAppendTo(first))
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "a.txt"),
		filepath.Join(root, "b.log"),
	}, second.Paths())
}

func TestGlobAppendSamePatternTwiceIsIdempotent(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, []string{"a.txt", "b.txt"})
	pattern := filepath.Join(root, "*.txt")

	first, err := goglob.Glob(pattern, 0)
	require.NoError(t, err)

	second, err := goglob.Glob(pattern, goglob.APPEND, goglob.WithAppendTo(first))
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "a.txt"),
		filepath.Join(root, "b.txt"),
	}, second.Paths())
	assert.Equal(t, 2, second.Count())
}

func TestGlobBraceSuffixMergeWalksDirectoryOnce(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, []string{"a.go", "b.txt", "c.md", "d.png"})

	cw := &countingWalker{calls: map[string]int{}}
	res, err := goglob.Glob(filepath.Join(root, "*.{go,txt,md}"), goglob.BRACE, goglob.WithWalker(cw))
	require.NoError(t, err)
	assert.Equal(t, 1, cw.calls[root])

	got := res.Paths()
	sort.Strings(got)
	want := []string{
		filepath.Join(root, "a.go"),
		filepath.Join(root, "b.txt"),
		filepath.Join(root, "c.md"),
	}
	sort.Strings(want)
	assert.Equal(t, want, got)
}

func TestGlobBraceSuffixMergeHonorsPeriodAndOnlyDir(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, []string{".hidden.go", "visible.go", "visible.txt"})
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub.go"), 0o755))

	res, err := goglob.Glob(filepath.Join(root, "*.{go,txt}"), goglob.BRACE)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "visible.go"),
		filepath.Join(root, "visible.txt"),
		filepath.Join(root, "sub.go"),
	}, res.Paths())

	res, err = goglob.Glob(filepath.Join(root, "*.{go,txt}"), goglob.BRACE|goglob.PERIOD)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(root, ".hidden.go"),
		filepath.Join(root, "visible.go"),
		filepath.Join(root, "visible.txt"),
		filepath.Join(root, "sub.go"),
	}, res.Paths())

	res, err = goglob.Glob(filepath.Join(root, "*.{go,txt}"), goglob.BRACE|goglob.ONLYDIR)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "sub.go")}, res.Paths())
}

func TestGlobErrFuncAbortsOnUnreadableDir(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, []string{"sub/a.txt"})
	require.NoError(t, os.Chmod(filepath.Join(root, "sub"), 0o000))
	t.Cleanup(func() { os.Chmod(filepath.Join(root, "sub"), 0o755) })

	if os.Getuid() == 0 {
		t.Skip("permission checks do not apply when running as root")
	}

	called := false
	_, err := goglob.Glob(filepath.Join(root, "sub/*"), 0, goglob.WithErrFunc(func(path string, e error) bool {
		called = true
		return true
	}))
	require.Error(t, err)
	assert.True(t, called)
	assert.ErrorIs(t, err, goglob.ErrAborted)
}

func TestGlobEmptyPattern(t *testing.T) {
	_, err := goglob.Glob("", 0)
	assert.ErrorIs(t, err, goglob.ErrNoMatch)

	res, err := goglob.Glob("", goglob.NOCHECK)
	require.NoError(t, err)
	assert.Equal(t, []string{""}, res.Paths())
}
