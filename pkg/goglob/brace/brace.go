package brace

import "strings"

// Node is one element of a brace-expansion tree: Literal, Seq (concatenation)
// or Alt (alternation). Spec §3 BraceAST.
type Node interface{ isNode() }

// Literal is a run of bytes with no remaining brace structure.
type Literal string

// Seq is an ordered concatenation of nodes.
type Seq []Node

// Alt is a set of alternative nodes, exactly one of which is chosen per
// expansion.
type Alt []Node

func (Literal) isNode() {}
func (Seq) isNode()     {}
func (Alt) isNode()     {}

// Parse builds a BraceAST from pattern. A pattern with no balanced "{...}"
// group parses to a single Literal; a group with no top-level comma is kept
// as literal text, so the pattern expands to itself (bash's rule: "a{b}c"
// -> "a{b}c", unexpanded).
func Parse(pattern string) Node {
	m, ok := balancedMatch(pattern)
	if !ok {
		return Literal(pattern)
	}

	parts := splitTopComma(m.Body)
	if len(parts) < 2 {
		// No top-level comma: not an alternation. Keep the braces literal
		// and keep scanning the remainder for real groups.
		rest := m.Pre + "{" + m.Body + "}"
		return Seq{Literal(rest), Parse(m.Post)}
	}

	alts := make(Alt, len(parts))
	for i, p := range parts {
		alts[i] = Parse(p)
	}

	return Seq{Literal(m.Pre), alts, Parse(m.Post)}
}

// splitTopComma splits body on commas that are not nested inside a "{...}"
// group, a "[...]" character class, or escaped with a backslash (spec §4.2).
func splitTopComma(body string) []string {
	var parts []string
	depth := 0
	inClass := false
	var cur strings.Builder

	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '\\' && i+1 < len(body):
			cur.WriteByte(c)
			cur.WriteByte(body[i+1])
			i++
		case inClass:
			cur.WriteByte(c)
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
			cur.WriteByte(c)
		case c == '{':
			depth++
			cur.WriteByte(c)
		case c == '}':
			if depth > 0 {
				depth--
			}
			cur.WriteByte(c)
		case c == ',' && depth == 0:
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	parts = append(parts, cur.String())
	return parts
}

// Each enumerates every leaf combination of node, depth-first left to right
// (spec §4.2), invoking yield once per expansion. Expansion is computed via
// continuation-passing, so at most one full pattern is ever materialized —
// no cross product is built up front. yield returning false stops
// enumeration early.
func Each(node Node, yield func(string) bool) bool {
	return walk(node, "", yield)
}

func walk(node Node, prefix string, yield func(string) bool) bool {
	switch v := node.(type) {
	case Literal:
		return yield(prefix + string(v))
	case Seq:
		return walkSeq(v, 0, prefix, yield)
	case Alt:
		for _, alt := range v {
			if !walk(alt, prefix, yield) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func walkSeq(seq Seq, idx int, prefix string, yield func(string) bool) bool {
	if idx == len(seq) {
		return yield(prefix)
	}
	return walk(seq[idx], prefix, func(s string) bool {
		return walkSeq(seq, idx+1, s, yield)
	})
}

// Expand is a convenience over Each/Parse for callers that want every
// expansion materialized (small patterns, tests). Prefer Each/Expander for
// large brace sets.
func Expand(pattern string) []string {
	node := Parse(pattern)
	var out []string
	Each(node, func(s string) bool {
		out = append(out, s)
		return true
	})
	return out
}

// Expander is a pull-based lazy iterator over a pattern's expansions,
// backed by a goroutine that blocks on each send until Next is called. Only
// one expansion is ever buffered at a time.
type Expander struct {
	ch   chan string
	stop chan struct{}
}

// NewExpander starts lazily enumerating pattern's brace expansions.
func NewExpander(pattern string) *Expander {
	e := &Expander{
		ch:   make(chan string),
		stop: make(chan struct{}),
	}
	node := Parse(pattern)
	go func() {
		defer close(e.ch)
		Each(node, func(s string) bool {
			select {
			case e.ch <- s:
				return true
			case <-e.stop:
				return false
			}
		})
	}()
	return e
}

// Next returns the next expansion, or ("", false) once exhausted.
func (e *Expander) Next() (string, bool) {
	s, ok := <-e.ch
	return s, ok
}

// Close stops enumeration early, releasing the background goroutine. Safe
// to call after exhaustion or multiple times.
func (e *Expander) Close() {
	select {
	case <-e.stop:
	default:
		close(e.stop)
	}
}
