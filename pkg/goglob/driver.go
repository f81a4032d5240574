package goglob

import (
	"os"
	"strings"

	"github.com/koblas/goglob/pkg/goglob/fnmatch"
	"github.com/koblas/goglob/pkg/goglob/walk"
	"github.com/pkg/errors"
)

// DriverOption configures a Glob call beyond what the flag bitmask covers:
// hooks that have no ABI-stable bit representation.
type DriverOption func(*driverConfig)

type driverConfig struct {
	errFunc        ErrFunc
	ignore         IgnorePredicate
	followSymlinks bool
	walker         walk.Walker
	logger         Logger
	offsetReserve  int
	appendTo       *MatchResult
}

// WithErrFunc installs the caller-supplied error predicate (spec §4.4,
// §7): called with (path, error) when a directory can't be read; returning
// true aborts the call with ErrAborted.
func WithErrFunc(f ErrFunc) DriverOption {
	return func(c *driverConfig) { c.errFunc = f }
}

// WithIgnore installs a predicate consulted (only when the GITIGNORE flag
// is set) to prune subtrees before descending into them.
func WithIgnore(p IgnorePredicate) DriverOption {
	return func(c *driverConfig) { c.ignore = p }
}

// WithFollowSymlinks permits the RECURSIVE segment to descend through
// symlinks to directories, enabling the device+inode visited-set loop
// guard (spec §9) instead of the default "never follow" policy.
func WithFollowSymlinks(follow bool) DriverOption {
	return func(c *driverConfig) { c.followSymlinks = follow }
}

// WithWalker overrides the directory-listing backend (tests inject a fake
// one; production code never needs to).
func WithWalker(w walk.Walker) DriverOption {
	return func(c *driverConfig) { c.walker = w }
}

// WithLogger installs a Logger on the driver configuration. The driver
// stores it but emits no trace messages through it.
func WithLogger(l Logger) DriverOption {
	return func(c *driverConfig) { c.logger = loggerOrDiscard(l) }
}

// WithOffsetReserve sets how many leading null slots Reserve should create
// when DOOFFS is set.
func WithOffsetReserve(n int) DriverOption {
	return func(c *driverConfig) { c.offsetReserve = n }
}

// WithAppendTo supplies the prior MatchResult to extend; required whenever
// the APPEND flag is set, ignored otherwise.
func WithAppendTo(r *MatchResult) DriverOption {
	return func(c *driverConfig) { c.appendTo = r }
}

func newDriverConfig(opts []DriverOption) *driverConfig {
	c := &driverConfig{walker: walk.New(), logger: discardLogger}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Glob compiles pattern under flags and walks the filesystem, implementing
// the compile -> walk -> match -> collect algorithm of spec §4.5.
func Glob(pattern string, flags Flag, opts ...DriverOption) (*MatchResult, error) {
	cfg := newDriverConfig(opts)

	if pattern == "" {
		if flags.Has(NOCHECK) {
			r := NewMatchResult()
			r.AppendOwned("")
			return r, nil
		}
		return nil, ErrNoMatch
	}

	compiled, err := Compile(pattern, flags)
	if err != nil {
		return nil, err
	}

	result := buildResult(flags, cfg)
	mark := result.Mark()

	if dir, suffixes, ok := detectBraceSuffixMerge(compiled.Raw(), flags); ok {
		if err := driveSuffixMerge(dir, suffixes, flags, cfg, result); err != nil {
			return nil, err
		}
	} else {
		walkErr := compiled.Alternatives(func(alt *PatternAlt) bool {
			if aerr := driveAlt(alt, flags, cfg, result); aerr != nil {
				err = aerr
				return false
			}
			return true
		})
		if walkErr != nil {
			return nil, walkErr
		}
		if err != nil {
			return nil, err
		}
	}

	if !flags.Has(NOSORT) {
		result.SortRegion(mark)
	}
	result.DedupRegion(mark)

	if result.Count() == 0 {
		switch {
		case flags.Has(NOCHECK):
			result.AppendOwned(pattern)
		case flags.Has(NOMAGIC) && !compiled.HasMagic():
			result.AppendOwned(pattern)
		default:
			return result, ErrNoMatch
		}
	}

	return result, nil
}

func buildResult(flags Flag, cfg *driverConfig) *MatchResult {
	var r *MatchResult
	if flags.Has(APPEND) && cfg.appendTo != nil {
		r = cfg.appendTo
	} else {
		r = NewMatchResult()
	}
	if flags.Has(DOOFFS) && r.OffsetReserve() == 0 {
		r.Reserve(cfg.offsetReserve)
	}
	return r
}

// driveAlt drives one brace alternative: opening its literal prefix
// directory, then matching the remaining segments (spec §4.5 steps 2-4).
func driveAlt(alt *PatternAlt, flags Flag, cfg *driverConfig, result *MatchResult) error {
	segs := alt.Segments

	i := 0
	var prefixParts []string
	for i < len(segs) && segs[i].Kind == SegLiteral {
		prefixParts = append(prefixParts, segs[i].Literal)
		i++
	}

	base := strings.Join(prefixParts, "/")
	if alt.Anchored {
		base = "/" + base
	} else if base == "" {
		base = "."
	}

	info, err := os.Lstat(base)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return wrapPath(base, err)
	}

	remaining := segs[i:]
	if len(remaining) == 0 {
		if flags.Has(ONLYDIR) && !info.IsDir() {
			return nil
		}
		full := base
		if flags.Has(MARK) && info.IsDir() {
			full += "/"
		}
		result.AppendOwned(full)
		return nil
	}

	if !info.IsDir() {
		return nil
	}

	return walkSegments(base, remaining, flags, cfg, result)
}

// detectBraceSuffixMerge recognizes the "dir/*.{a,b,c}" shape directly from
// the raw pattern text: a literal directory prefix, then a final path
// segment that is a single '*' followed by a literal run and a flat brace
// list of at least two terms with no nested magic, and no backslash or
// empty directory segment anywhere in the pattern. When present, the whole
// directory can be walked once and every entry tested against all
// candidate suffixes in one fnmatch.MatchSuffixes call (spec §4.3), instead
// of compiled.Alternatives driving one redundant directory read per brace
// term. Any shape outside this narrow case falls back to the general
// per-alternative walk, so this is purely an optimization, never a
// semantic fork.
func detectBraceSuffixMerge(raw string, flags Flag) (dir string, suffixes []string, ok bool) {
	if !flags.Has(BRACE) || strings.ContainsRune(raw, '\\') {
		return "", nil, false
	}
	anchored := strings.HasPrefix(raw, "/")
	segs := strings.Split(raw, "/")
	last := segs[len(segs)-1]
	dirSegs := segs[:len(segs)-1]
	for i, s := range dirSegs {
		if (s == "" && i > 0) || hasMagicChars(s, flags) {
			return "", nil, false
		}
	}

	if len(last) < 2 || last[0] != '*' {
		return "", nil, false
	}
	rest := last[1:]
	open := strings.IndexByte(rest, '{')
	if open < 0 || !strings.HasSuffix(rest, "}") {
		return "", nil, false
	}
	between := rest[:open]
	if hasMagicChars(between, flags) {
		return "", nil, false
	}

	termList := rest[open+1 : len(rest)-1]
	if termList == "" || strings.ContainsRune(termList, '\\') {
		return "", nil, false
	}
	terms := strings.Split(termList, ",")
	if len(terms) < 2 {
		return "", nil, false
	}
	suffixes = make([]string, 0, len(terms))
	for _, t := range terms {
		if t == "" || strings.ContainsAny(t, "*?[{}/()") {
			return "", nil, false
		}
		suffixes = append(suffixes, between+t)
	}

	dir = strings.Join(dirSegs, "/")
	if dir == "" {
		if anchored {
			dir = "/"
		} else {
			dir = "."
		}
	}
	return dir, suffixes, true
}

// driveSuffixMerge walks dir once, appending every entry whose name ends
// with one of suffixes (checked via a single fnmatch.MatchSuffixes call per
// entry) — the merged equivalent of calling driveAlt once per brace
// alternative of a "dir/*.{a,b,c}" pattern.
func driveSuffixMerge(dir string, suffixes []string, flags Flag, cfg *driverConfig, result *MatchResult) error {
	info, err := os.Lstat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return wrapPath(dir, err)
	}
	if !info.IsDir() {
		return nil
	}

	entries, err := cfg.walker.ReadDir(dir)
	if err != nil {
		return handleDirError(dir, err, flags, cfg)
	}

	fold := flags.Has(CASEFOLD)
	period := flags.Has(PERIOD)

	for _, e := range entries {
		if e.Name == "" {
			continue
		}
		if !period && e.Name[0] == '.' {
			continue
		}
		if fnmatch.MatchSuffixes(e.Name, suffixes, fold) == 0 {
			continue
		}

		typ, terr := walk.ResolveType(dir, e)
		if terr != nil {
			continue
		}
		childPath := joinPath(dir, e.Name)

		if cfg.ignore != nil && flags.Has(GITIGNORE) && cfg.ignore(childPath, typ == walk.TypeDir) {
			continue
		}
		if flags.Has(ONLYDIR) && typ != walk.TypeDir {
			continue
		}

		full := childPath
		if flags.Has(MARK) && typ == walk.TypeDir {
			full += "/"
		}
		result.AppendOwned(full)
	}
	return nil
}

// walkSegments matches segs[0] against dir's entries, recursing into
// matches that must satisfy further segments.
func walkSegments(dir string, segs []Segment, flags Flag, cfg *driverConfig, result *MatchResult) error {
	seg := segs[0]
	rest := segs[1:]
	last := len(rest) == 0

	if seg.Kind == SegRecursive {
		return walkRecursive(dir, rest, flags, cfg, result, newVisitedSet())
	}

	entries, err := cfg.walker.ReadDir(dir)
	if err != nil {
		return handleDirError(dir, err, flags, cfg)
	}

	for _, e := range entries {
		var matched bool
		switch seg.Kind {
		case SegLiteral:
			matched = e.Name == seg.Literal
		case SegMagic:
			if len(e.Name) > 0 && seg.Matcher.RejectFirstByte(e.Name[0]) {
				continue
			}
			matched = seg.Matcher.Match(e.Name)
		}
		if !matched {
			continue
		}

		childPath := joinPath(dir, e.Name)

		typ, terr := walk.ResolveType(dir, e)
		if terr != nil {
			continue
		}

		if cfg.ignore != nil && flags.Has(GITIGNORE) && cfg.ignore(childPath, typ == walk.TypeDir) {
			continue
		}

		if last {
			if flags.Has(ONLYDIR) && typ != walk.TypeDir {
				continue
			}
			full := childPath
			if flags.Has(MARK) && typ == walk.TypeDir {
				full += "/"
			}
			result.AppendOwned(full)
			continue
		}

		if typ == walk.TypeSymlink {
			fi, serr := os.Stat(childPath)
			if serr != nil || !fi.IsDir() {
				continue
			}
		} else if typ != walk.TypeDir {
			continue
		}

		if err := walkSegments(childPath, rest, flags, cfg, result); err != nil {
			return err
		}
	}
	return nil
}

// walkRecursive implements the RECURSIVE "**" segment: the zero-component
// case (rest matched directly against dir) plus a depth-first descent into
// every subdirectory trying the same (spec §4.5 step 4).
func walkRecursive(dir string, rest []Segment, flags Flag, cfg *driverConfig, result *MatchResult, visited *visitedSet) error {
	if len(rest) == 0 {
		return walkAllDescendants(dir, flags, cfg, result, visited, true)
	}

	if err := walkSegments(dir, rest, flags, cfg, result); err != nil {
		return err
	}

	entries, err := cfg.walker.ReadDir(dir)
	if err != nil {
		return handleDirError(dir, err, flags, cfg)
	}

	for _, e := range entries {
		typ, terr := walk.ResolveType(dir, e)
		if terr != nil {
			continue
		}
		childPath := joinPath(dir, e.Name)

		if typ == walk.TypeSymlink {
			if !cfg.followSymlinks {
				continue
			}
			fi, serr := os.Stat(childPath)
			if serr != nil || !fi.IsDir() {
				continue
			}
			if visited.seen(fi) {
				continue
			}
			visited.add(fi)
		} else if typ != walk.TypeDir {
			continue
		}

		if cfg.ignore != nil && flags.Has(GITIGNORE) && cfg.ignore(childPath, true) {
			continue
		}

		if err := walkRecursive(childPath, rest, flags, cfg, result, visited); err != nil {
			return err
		}
	}
	return nil
}

// walkAllDescendants handles "**" as the final segment: every descendant,
// recursively, including dir itself (spec §8 boundary: "`**` at end
// matches all descendants including the directory itself").
func walkAllDescendants(dir string, flags Flag, cfg *driverConfig, result *MatchResult, visited *visitedSet, includeSelf bool) error {
	if includeSelf {
		if info, err := os.Lstat(dir); err == nil {
			if !flags.Has(ONLYDIR) || info.IsDir() {
				full := dir
				if flags.Has(MARK) && info.IsDir() {
					full += "/"
				}
				result.AppendOwned(full)
			}
		}
	}

	entries, err := cfg.walker.ReadDir(dir)
	if err != nil {
		return handleDirError(dir, err, flags, cfg)
	}

	for _, e := range entries {
		typ, terr := walk.ResolveType(dir, e)
		if terr != nil {
			continue
		}
		childPath := joinPath(dir, e.Name)

		if cfg.ignore != nil && flags.Has(GITIGNORE) && cfg.ignore(childPath, typ == walk.TypeDir) {
			continue
		}

		switch typ {
		case walk.TypeDir:
			full := childPath
			if flags.Has(MARK) {
				full += "/"
			}
			result.AppendOwned(full)
			if err := walkAllDescendants(childPath, flags, cfg, result, visited, false); err != nil {
				return err
			}
		case walk.TypeSymlink:
			if !cfg.followSymlinks {
				if !flags.Has(ONLYDIR) {
					result.AppendOwned(childPath)
				}
				continue
			}
			fi, serr := os.Stat(childPath)
			if serr != nil {
				continue
			}
			if fi.IsDir() {
				if visited.seen(fi) {
					continue
				}
				visited.add(fi)
				full := childPath
				if flags.Has(MARK) {
					full += "/"
				}
				result.AppendOwned(full)
				if err := walkAllDescendants(childPath, flags, cfg, result, visited, false); err != nil {
					return err
				}
			} else if !flags.Has(ONLYDIR) {
				result.AppendOwned(childPath)
			}
		default:
			if !flags.Has(ONLYDIR) {
				result.AppendOwned(childPath)
			}
		}
	}
	return nil
}

func handleDirError(dir string, err error, flags Flag, cfg *driverConfig) error {
	if cfg.errFunc != nil {
		if cfg.errFunc(dir, err) {
			return errors.Wrapf(ErrAborted, "%s: %s", dir, err)
		}
		return nil
	}
	if flags.Has(ERR) {
		return errors.Wrapf(ErrAborted, "%s: %s", dir, err)
	}
	return nil
}

func joinPath(dir, name string) string {
	if dir == "." {
		return name
	}
	if dir != "" && dir[len(dir)-1] == '/' {
		return dir + name
	}
	return dir + "/" + name
}

// visitedSet tracks directories already descended into during a
// follow-symlinks walk, keyed by device+inode identity (spec §9) —
// expressed portably via os.SameFile rather than platform-specific
// syscall.Stat_t field access.
type visitedSet struct {
	infos []os.FileInfo
}

func newVisitedSet() *visitedSet { return &visitedSet{} }

func (v *visitedSet) seen(fi os.FileInfo) bool {
	for _, e := range v.infos {
		if os.SameFile(e, fi) {
			return true
		}
	}
	return false
}

func (v *visitedSet) add(fi os.FileInfo) {
	v.infos = append(v.infos, fi)
}
