package goglob

import (
	"os/user"
	"strings"

	"github.com/koblas/goglob/pkg/goglob/brace"
	"github.com/koblas/goglob/pkg/goglob/fnmatch"
	"github.com/pkg/errors"
)

// SegmentKind classifies one '/'-delimited piece of a compiled pattern.
type SegmentKind int

const (
	// SegLiteral segments name exactly one directory entry. Leading literal
	// segments are joined into a prefix that the driver stats directly; a
	// literal after a magic segment is compared against each listed entry.
	SegLiteral SegmentKind = iota
	// SegMagic segments must be matched against every entry in a directory.
	SegMagic
	// SegRecursive is "**": zero or more directories, descended by the
	// walker rather than matched by fnmatch.
	SegRecursive
)

// Segment is one compiled path component.
type Segment struct {
	Kind    SegmentKind
	Literal string
	Matcher *fnmatch.Matcher
}

// PatternAlt is one fully compiled brace alternative: an anchored or
// relative sequence of Segments.
type PatternAlt struct {
	Segments []Segment
	Anchored bool
}

// CompiledPattern is the result of Compile: a (possibly brace-expanded)
// pattern ready to drive a walk. Brace alternatives are produced lazily —
// Compile itself only parses the brace AST and validates flags; segment
// compilation for each alternative happens as Alternatives is iterated, so
// a pattern with many brace terms never holds more than one compiled
// alternative in memory at a time (spec §4.2, §9).
type CompiledPattern struct {
	raw      string
	braceAST brace.Node
	flags    Flag
	hasMagic bool
}

// Compile parses pattern under flags into a CompiledPattern. ALTDIRFUNC is
// rejected immediately: there is no portable hook-based directory reader in
// this implementation (spec §6).
func Compile(pattern string, flags Flag) (*CompiledPattern, error) {
	if flags.Has(ALTDIRFUNC) {
		return nil, errors.Wrap(ErrUnsupportedFlag, "GLOB_ALTDIRFUNC")
	}

	expanded, err := expandTilde(pattern, flags)
	if err != nil {
		return nil, err
	}

	c := &CompiledPattern{
		raw:      expanded,
		flags:    flags,
		hasMagic: hasMagicChars(expanded, flags),
	}
	if flags.Has(BRACE) {
		c.braceAST = brace.Parse(expanded)
	}
	return c, nil
}

// HasMagic reports whether the original pattern contained any wildcard,
// bracket expression, brace group or extglob group — used to resolve the
// NOMAGIC/NOCHECK literal-fallback rules in driver.go.
func (c *CompiledPattern) HasMagic() bool { return c.hasMagic }

// Raw returns the pattern text Compile was given, after tilde expansion.
func (c *CompiledPattern) Raw() string { return c.raw }

// Alternatives invokes yield once per brace alternative (just once, with
// the whole pattern, when BRACE is not set), compiling each alternative's
// segments on demand. Iteration stops as soon as yield returns false or an
// error occurs.
func (c *CompiledPattern) Alternatives(yield func(*PatternAlt) bool) error {
	if !c.flags.Has(BRACE) {
		alt, err := compileAlt(c.raw, c.flags)
		if err != nil {
			return err
		}
		yield(alt)
		return nil
	}

	var firstErr error
	brace.Each(c.braceAST, func(s string) bool {
		alt, err := compileAlt(s, c.flags)
		if err != nil {
			firstErr = err
			return false
		}
		return yield(alt)
	})
	return firstErr
}

func compileAlt(pattern string, flags Flag) (*PatternAlt, error) {
	anchored := strings.HasPrefix(pattern, "/")

	raw := splitSegments(pattern)
	segs := make([]Segment, 0, len(raw))

	fnOpts := fnmatch.Options{
		Period:   flags.Has(PERIOD),
		CaseFold: flags.Has(CASEFOLD),
		ExtGlob:  flags.Has(EXTGLOB),
		NoEscape: flags.Has(NOESCAPE),
	}

	for _, r := range raw {
		if r == "" {
			continue
		}
		if r == "**" {
			segs = append(segs, Segment{Kind: SegRecursive})
			continue
		}

		m, err := fnmatch.Compile(r, fnOpts)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidPattern, "segment %q: %s", r, err)
		}
		if !m.HasMagic() {
			segs = append(segs, Segment{Kind: SegLiteral, Literal: unescapeLiteral(r, flags.Has(NOESCAPE))})
			continue
		}
		segs = append(segs, Segment{Kind: SegMagic, Matcher: m})
	}

	return &PatternAlt{Segments: segs, Anchored: anchored}, nil
}

func splitSegments(pattern string) []string {
	return strings.Split(pattern, "/")
}

func unescapeLiteral(s string, noEscape bool) string {
	if noEscape || !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func hasMagicChars(pattern string, flags Flag) bool {
	noEscape := flags.Has(NOESCAPE)
	useBrace := flags.Has(BRACE)
	extGlob := flags.Has(EXTGLOB)

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c == '\\' && !noEscape {
			i++
			continue
		}
		if c == '*' || c == '?' || c == '[' {
			return true
		}
		if useBrace && c == '{' {
			return true
		}
		if extGlob && (c == '@' || c == '!' || c == '+') && i+1 < len(pattern) && pattern[i+1] == '(' {
			return true
		}
	}
	return false
}

// expandTilde implements GLOB_TILDE / GLOB_TILDE_CHECK: a leading "~" or
// "~user" is replaced with the matching home directory. Under plain TILDE a
// lookup failure leaves the pattern untouched (to be matched literally);
// under TILDE_CHECK it is reported as no-match, mirroring glibc's glob(3).
func expandTilde(pattern string, flags Flag) (string, error) {
	if !flags.Has(TILDE) && !flags.Has(TILDE_CHECK) {
		return pattern, nil
	}
	if len(pattern) == 0 || pattern[0] != '~' {
		return pattern, nil
	}

	rest := pattern[1:]
	name, tail := rest, ""
	if idx := strings.IndexByte(rest, '/'); idx >= 0 {
		name, tail = rest[:idx], rest[idx:]
	}

	var home string
	if name == "" {
		u, err := user.Current()
		if err != nil {
			if flags.Has(TILDE_CHECK) {
				return "", errors.Wrap(ErrNoMatch, "resolve home directory")
			}
			return pattern, nil
		}
		home = u.HomeDir
	} else {
		u, err := user.Lookup(name)
		if err != nil {
			if flags.Has(TILDE_CHECK) {
				return "", errors.Wrapf(ErrNoMatch, "unknown user %q", name)
			}
			return pattern, nil
		}
		home = u.HomeDir
	}

	return home + tail, nil
}
