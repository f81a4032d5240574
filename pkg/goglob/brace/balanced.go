// Package brace implements lazy brace-expansion: {a,b,c} alternation, the
// way bash's brace expansion works. Numeric/alpha ranges ({1..5}) are out of
// scope — only comma-separated alternatives are recognized (spec §4.2).
package brace

import "strings"

// Match is the result of locating the outermost balanced {...} pair in a
// string: everything before it (Pre), the text between the braces (Body),
// and everything after (Post).
type Match struct {
	Start, End      int
	Pre, Body, Post string
}

// balancedMatch finds a balanced "{"..."}" pair in str. When braces nest or
// overlap it prefers the pairing that leaves the fewest unmatched opens,
// same as the teacher's pkg/minimatch/balanced.go (a Go port of the npm
// balanced-match package): walking forward from the first "{", every time a
// new "{" is seen it is pushed; every time a "}" is reached the innermost
// open is popped, and once exactly one open remains unmatched it is paired
// with the "}" reached so far.
func balancedMatch(str string) (Match, bool) {
	ai := strings.IndexByte(str, '{')
	if ai < 0 {
		return Match{}, false
	}
	bi := indexOf(str, '}', ai+1)
	if bi < 0 {
		return Match{}, false
	}

	i := ai
	var begs []int
	left, right := len(str), 0
	var result []int

	for i >= 0 && result == nil {
		switch {
		case i == ai:
			begs = append(begs, i)
			ai = indexOf(str, '{', i+1)
		case len(begs) == 1:
			result = []int{begs[0], bi}
			begs = nil
		default:
			beg := begs[len(begs)-1]
			begs = begs[:len(begs)-1]
			if beg < left {
				left, right = beg, bi
			}
			bi = indexOf(str, '}', i+1)
		}

		if ai < bi && ai >= 0 {
			i = ai
		} else {
			i = bi
		}
	}

	if result == nil && len(begs) != 0 {
		result = []int{left, right}
	}
	if result == nil {
		return Match{}, false
	}

	start, end := result[0], result[1]
	return Match{
		Start: start,
		End:   end,
		Pre:   str[:start],
		Body:  str[start+1 : end],
		Post:  str[end+1:],
	}, true
}

func indexOf(s string, b byte, from int) int {
	if from >= len(s) {
		return -1
	}
	idx := strings.IndexByte(s[from:], b)
	if idx < 0 {
		return -1
	}
	return from + idx
}
