package fnmatch

import (
	"strings"

	"github.com/pkg/errors"
)

// parseSegment parses one path segment (no '/') into a node sequence. It
// mirrors the shape of the teacher's pkg/minimatch parser — a single
// left-to-right scan building up a small AST — generalized from "emit a
// regexp fragment" to "emit an AST node", since building a general regex
// engine is explicitly out of scope.
func parseSegment(pattern string, opts Options) ([]node, error) {
	var out []node
	i := 0
	for i < len(pattern) {
		c := pattern[i]

		switch {
		case c == '\\' && !opts.NoEscape:
			if i+1 < len(pattern) {
				out = append(out, litNode(pattern[i+1:i+2]))
				i += 2
			} else {
				out = append(out, litNode("\\"))
				i++
			}

		case opts.ExtGlob && isExtGlobLead(c) && i+1 < len(pattern) && pattern[i+1] == '(':
			g, ni, err := parseGroup(c, pattern, i+2, opts)
			if err != nil {
				return nil, err
			}
			out = append(out, g)
			i = ni

		case c == '*':
			j := i
			for j < len(pattern) && pattern[j] == '*' {
				j++
			}
			out = append(out, starNode{})
			i = j

		case c == '?':
			out = append(out, questionNode{})
			i++

		case c == '[':
			cls, ni, ok := parseClass(pattern, i)
			if !ok {
				out = append(out, litNode("["))
				i++
				continue
			}
			out = append(out, cls)
			i = ni

		default:
			j := i
			for j < len(pattern) && !isSegmentMeta(pattern, j, opts) {
				j++
			}
			if j == i {
				j++
			}
			out = append(out, litNode(pattern[i:j]))
			i = j
		}
	}
	return out, nil
}

func isExtGlobLead(c byte) bool {
	return c == '@' || c == '!' || c == '?' || c == '*' || c == '+'
}

func isSegmentMeta(pattern string, i int, opts Options) bool {
	c := pattern[i]
	if c == '*' || c == '?' || c == '[' || c == '\\' {
		return true
	}
	if opts.ExtGlob && isExtGlobLead(c) && i+1 < len(pattern) && pattern[i+1] == '(' {
		return true
	}
	return false
}

// parseGroup parses an extglob group body starting right after "<kind>(",
// returning the constructed node and the index just past the closing ')'.
func parseGroup(kind byte, pattern string, start int, opts Options) (node, int, error) {
	body, end, ok := scanGroupBody(pattern, start)
	if !ok {
		return nil, 0, errors.Wrapf(errUnclosedGroup, "pattern %q", pattern)
	}
	alts := splitTopAlt(body)
	parsedAlts := make([][]node, len(alts))
	for i, a := range alts {
		sub, err := parseSegment(a, opts)
		if err != nil {
			return nil, 0, err
		}
		parsedAlts[i] = sub
	}
	return groupNode{kind: kind, alts: parsedAlts}, end + 1, nil
}

// scanGroupBody finds the ')' matching the '(' implicitly opened at start-1,
// treating nested "(...)" as balanced and "[...]" bracket expressions as
// opaque (a literal ')' inside a character class does not close the group).
func scanGroupBody(pattern string, start int) (string, int, bool) {
	depth := 0
	i := start
	for i < len(pattern) {
		c := pattern[i]
		switch {
		case c == '\\' && i+1 < len(pattern):
			i += 2
		case c == '[':
			if j, ok := skipBracket(pattern, i); ok {
				i = j
			} else {
				i++
			}
		case c == '(':
			depth++
			i++
		case c == ')':
			if depth == 0 {
				return pattern[start:i], i, true
			}
			depth--
			i++
		default:
			i++
		}
	}
	return "", 0, false
}

// skipBracket returns the index just past a "[...]" bracket expression
// starting at i, or (0, false) if it is unterminated.
func skipBracket(pattern string, i int) (int, bool) {
	j := i + 1
	if j < len(pattern) && (pattern[j] == '!' || pattern[j] == '^') {
		j++
	}
	if j < len(pattern) && pattern[j] == ']' {
		j++
	}
	for j < len(pattern) && pattern[j] != ']' {
		j++
	}
	if j >= len(pattern) {
		return 0, false
	}
	return j + 1, true
}

// splitTopAlt splits an extglob group body on '|' at depth 0, honoring
// nested groups, bracket expressions and backslash escapes.
func splitTopAlt(body string) []string {
	var parts []string
	depth := 0
	var cur strings.Builder
	i := 0
	for i < len(body) {
		c := body[i]
		switch {
		case c == '\\' && i+1 < len(body):
			cur.WriteByte(c)
			cur.WriteByte(body[i+1])
			i += 2
		case c == '[':
			if j, ok := skipBracket(body, i); ok {
				cur.WriteString(body[i:j])
				i = j
			} else {
				cur.WriteByte(c)
				i++
			}
		case c == '(':
			depth++
			cur.WriteByte(c)
			i++
		case c == ')':
			if depth > 0 {
				depth--
			}
			cur.WriteByte(c)
			i++
		case c == '|' && depth == 0:
			parts = append(parts, cur.String())
			cur.Reset()
			i++
		default:
			cur.WriteByte(c)
			i++
		}
	}
	parts = append(parts, cur.String())
	return parts
}

// parseClass parses a POSIX bracket expression starting at pattern[start]
// == '['. ok is false when the expression is never closed, in which case
// the caller treats '[' as a literal (classic fnmatch behavior).
func parseClass(pattern string, start int) (classNode, int, bool) {
	i := start + 1
	var cls classNode

	if i < len(pattern) && (pattern[i] == '!' || pattern[i] == '^') {
		cls.negate = true
		i++
	}

	first := true
	closed := false
	for i < len(pattern) {
		c := pattern[i]
		if c == ']' && !first {
			closed = true
			i++
			break
		}
		first = false

		if c == '[' && i+1 < len(pattern) && pattern[i+1] == ':' {
			if end := strings.Index(pattern[i+2:], ":]"); end >= 0 {
				name := pattern[i+2 : i+2+end]
				if fn, ok := posixClasses[name]; ok {
					for b := 0; b < 256; b++ {
						if fn(byte(b)) {
							cls.set.set(byte(b))
						}
					}
				}
				i = i + 2 + end + 2
				continue
			}
		}

		if c == '\\' && i+1 < len(pattern) {
			next := pattern[i+1]
			if i+3 < len(pattern) && pattern[i+2] == '-' && pattern[i+3] != ']' {
				addRange(&cls.set, next, pattern[i+3])
				i += 4
			} else {
				cls.set.set(next)
				i += 2
			}
			continue
		}

		if i+2 < len(pattern) && pattern[i+1] == '-' && pattern[i+2] != ']' {
			addRange(&cls.set, c, pattern[i+2])
			i += 3
			continue
		}

		cls.set.set(c)
		i++
	}

	if !closed {
		return classNode{}, start, false
	}
	return cls, i, true
}

func addRange(s *charSet, lo, hi byte) {
	if lo > hi {
		lo, hi = hi, lo
	}
	for b := int(lo); b <= int(hi); b++ {
		s.set(byte(b))
	}
}

var errUnclosedGroup = errors.New("fnmatch: unclosed extglob group")
