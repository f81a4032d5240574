package fnmatch

import "strings"

// Matcher is a compiled single-segment pattern. It is safe for concurrent
// use by multiple goroutines (Match takes no locks and mutates no state).
type Matcher struct {
	nodes    []node
	opts     Options
	hasGroup bool
	magic    bool

	ops []op // flattened byte-level program, used when hasGroup is false

	suffix    string
	hasSuffix bool
	firstSet  charSet
	hasFirst  bool

	// pureLiteralStar, when true, means nodes is entirely starNode/litNode
	// (no '?', no bracket expression) and opts.CaseFold is off: Match can
	// skip matchOps' byte-at-a-time backtracker entirely and confirm the
	// name with one findMultiLiteral scan plus anchored prefix/suffix
	// checks (computeFastPath, below).
	pureLiteralStar bool
	litRuns         []string
	anchorStart     bool
	anchorEnd       bool
}

// Compile parses pattern and builds a Matcher. An empty pattern matches
// only the empty name.
func Compile(pattern string, opts Options) (*Matcher, error) {
	nodes, err := parseSegment(pattern, opts)
	if err != nil {
		return nil, err
	}

	m := &Matcher{nodes: nodes, opts: opts}
	for _, n := range nodes {
		switch n.(type) {
		case groupNode:
			m.hasGroup = true
			m.magic = true
		case starNode, questionNode, classNode:
			m.magic = true
		}
	}

	if !m.hasGroup {
		m.ops = flatten(nodes)
	}

	m.computeFastPath()
	return m, nil
}

// HasMagic reports whether the compiled pattern contains any wildcard,
// bracket expression or extglob group (i.e. is not a plain literal).
func (m *Matcher) HasMagic() bool { return m.magic }

// FixedSuffix returns a literal suffix that every match must end with, if
// the compiler was able to prove one (patterns of the shape "*literal" with
// no further magic after the star), and whether one was found.
func (m *Matcher) FixedSuffix() (string, bool) { return m.suffix, m.hasSuffix }

// RejectFirstByte reports whether b can be proven, in O(1), to never start
// a match — letting the driver skip a full Match call for directory
// entries whose first byte can't possibly participate.
func (m *Matcher) RejectFirstByte(b byte) bool {
	if !m.hasFirst {
		return false
	}
	return !m.firstSet.has(b)
}

// computeFastPath looks for the common "*<literal>" shape (the single most
// frequent pattern in real globs: "*.go", "*.log", ...) and precomputes the
// admissible-first-byte set from any leading literal/class node.
func (m *Matcher) computeFastPath() {
	if len(m.nodes) >= 2 {
		if _, ok := m.nodes[0].(starNode); ok {
			allLiteral := true
			var lit string
			for _, n := range m.nodes[1:] {
				l, ok := n.(litNode)
				if !ok {
					allLiteral = false
					break
				}
				lit += string(l)
			}
			if allLiteral {
				m.suffix = lit
				m.hasSuffix = true
			}
		}
	}

	switch n := firstNonStar(m.nodes); v := n.(type) {
	case litNode:
		if len(v) > 0 {
			b := v[0]
			if m.opts.CaseFold {
				m.firstSet.set(asciiLower(b))
				m.firstSet.set(asciiUpper(b))
			} else {
				m.firstSet.set(b)
			}
			m.hasFirst = true
		}
	case classNode:
		m.firstSet = v.set
		if m.opts.CaseFold {
			for b := 0; b < 256; b++ {
				if v.set.has(byte(b)) {
					m.firstSet.set(asciiLower(byte(b)))
					m.firstSet.set(asciiUpper(byte(b)))
				}
			}
		}
		if v.negate {
			// A negated class rejects only the explicitly-listed bytes;
			// there's no small admissible set to precompute.
			m.hasFirst = false
		} else {
			m.hasFirst = true
		}
	}

	m.computeLiteralStarPath()
}

// computeLiteralStarPath detects the shell-style "lit1*lit2*...*litN" shape
// (stars and literals only, no '?' or bracket expressions) and precomputes
// the literal runs plus whether the pattern is anchored at either end, so
// Match can confirm it with one findMultiLiteral pass instead of matchOps'
// general backtracker. Case-folded patterns fall back to matchOps: folding
// would require searching for every case variant of each literal run, which
// is no longer a single vectorized scan.
func (m *Matcher) computeLiteralStarPath() {
	if m.opts.CaseFold {
		return
	}
	for _, n := range m.nodes {
		switch n.(type) {
		case starNode, litNode:
		default:
			return
		}
	}

	m.pureLiteralStar = true
	m.anchorStart, m.anchorEnd = true, true
	if len(m.nodes) > 0 {
		if _, ok := m.nodes[0].(starNode); ok {
			m.anchorStart = false
		}
		if _, ok := m.nodes[len(m.nodes)-1].(starNode); ok {
			m.anchorEnd = false
		}
	}

	var cur strings.Builder
	for _, n := range m.nodes {
		if lit, ok := n.(litNode); ok {
			cur.WriteString(string(lit))
			continue
		}
		// n is a starNode: flush whatever literal run preceded it. A star
		// can never immediately follow another star (the parser collapses
		// consecutive '*' into one node), so cur is only empty here when
		// the pattern starts with this star — nothing to flush.
		if cur.Len() > 0 {
			m.litRuns = append(m.litRuns, cur.String())
			cur.Reset()
		}
	}
	if cur.Len() > 0 {
		m.litRuns = append(m.litRuns, cur.String())
	}
}

// matchLiteralStar confirms name against the precomputed literal-and-star
// shape: the anchored ends must match exactly, and every run in between
// must occur, left to right and non-overlapping, via one findMultiLiteral
// scan (spec §4.3's "*lit1*lit2*...*litN*" fast path).
func (m *Matcher) matchLiteralStar(name string) bool {
	runs := m.litRuns
	pos := 0
	end := len(name)

	if m.anchorStart {
		if len(runs) == 0 {
			return name == ""
		}
		first := runs[0]
		if !strings.HasPrefix(name, first) {
			return false
		}
		pos = len(first)
		runs = runs[1:]
	}

	if m.anchorEnd {
		if len(runs) == 0 {
			return pos == end
		}
		last := runs[len(runs)-1]
		if !strings.HasSuffix(name[pos:], last) {
			return false
		}
		end -= len(last)
		runs = runs[:len(runs)-1]
	}

	if end < pos {
		return false
	}
	found := findMultiLiteral(name[pos:end], runs)
	return found >= 0
}

func firstNonStar(nodes []node) node {
	if len(nodes) == 0 {
		return nil
	}
	if _, ok := nodes[0].(starNode); ok {
		return nil
	}
	return nodes[0]
}

// Match reports whether name (a single path segment, never containing '/')
// matches the compiled pattern.
func (m *Matcher) Match(name string) bool {
	if !m.opts.Period && len(name) > 0 && name[0] == '.' {
		if !startsWithLiteralDot(m.nodes) {
			return false
		}
	}

	if m.hasGroup {
		return matchRecursive(m.nodes, 0, name, 0, m.opts)
	}
	if m.pureLiteralStar {
		return m.matchLiteralStar(name)
	}
	return matchOps(m.ops, name, m.opts)
}

func startsWithLiteralDot(nodes []node) bool {
	if len(nodes) == 0 {
		return false
	}
	lit, ok := nodes[0].(litNode)
	return ok && len(lit) > 0 && lit[0] == '.'
}

// --- flattened byte-level program: the iterative, non-recursive backtracker ---

type opKind int

const (
	opLit opKind = iota
	opAny
	opClass
	opStar
)

type op struct {
	kind opKind
	b    byte
	cls  *classNode
}

func flatten(nodes []node) []op {
	var ops []op
	for _, n := range nodes {
		switch v := n.(type) {
		case litNode:
			for i := 0; i < len(v); i++ {
				ops = append(ops, op{kind: opLit, b: v[i]})
			}
		case questionNode:
			ops = append(ops, op{kind: opAny})
		case classNode:
			vv := v
			ops = append(ops, op{kind: opClass, cls: &vv})
		case starNode:
			ops = append(ops, op{kind: opStar})
		}
	}
	return ops
}

// matchOps is the classic glob(3) checkpoint-and-retry algorithm (the same
// shape as glibc/musl's fnmatch): advance greedily, and on mismatch rewind
// to the most recent '*' and let it swallow one more byte. No recursion on
// '*' regardless of input length, satisfying the O(n*m)-worst-case,
// bounded-stack requirement for the non-SIMD path (spec §4.3).
func matchOps(ops []op, name string, opts Options) bool {
	ti, oi := 0, 0
	starOi, starTi := -1, -1
	n := len(name)

	for ti < n {
		if oi < len(ops) {
			o := ops[oi]
			switch o.kind {
			case opStar:
				starOi, starTi = oi, ti
				oi++
				continue
			case opLit:
				if matchByte(o.b, name[ti], opts.CaseFold) {
					oi++
					ti++
					continue
				}
			case opAny:
				if !(ti == 0 && name[0] == '.' && !opts.Period) {
					oi++
					ti++
					continue
				}
			case opClass:
				if !(ti == 0 && name[0] == '.' && !opts.Period) && o.cls.match(name[ti], opts.CaseFold) {
					oi++
					ti++
					continue
				}
			}
		}

		if starOi >= 0 {
			// Instead of retrying one position at a time, jump the star
			// checkpoint straight to the next position the following op
			// could possibly match, using a vectorized search. Only valid
			// when that op is an unfolded literal or a non-negated class:
			// CaseFold would need every case variant searched for, and a
			// negated class has no small admissible set to search for.
			if nextOi := starOi + 1; nextOi < len(ops) && !opts.CaseFold {
				switch next := ops[nextOi]; next.kind {
				case opLit:
					idx := findChar(name, next.b, starTi+1)
					if idx < 0 {
						return false
					}
					starTi, ti, oi = idx, idx, nextOi
					continue
				case opClass:
					if !next.cls.negate {
						idx := findAnyOf(name, &next.cls.set, starTi+1)
						if idx < 0 {
							return false
						}
						starTi, ti, oi = idx, idx, nextOi
						continue
					}
				}
			}
			starTi++
			ti = starTi
			oi = starOi + 1
			continue
		}
		return false
	}

	for oi < len(ops) && ops[oi].kind == opStar {
		oi++
	}
	return oi == len(ops)
}

func matchByte(a, b byte, fold bool) bool {
	if a == b {
		return true
	}
	if fold {
		return asciiLower(a) == asciiLower(b)
	}
	return false
}
