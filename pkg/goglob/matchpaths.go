package goglob

import "strings"

// MatchPaths is the borrowed-mode entry point (spec §6 "match_paths"):
// filter an in-memory list of path strings against pattern without
// touching the filesystem. Every returned path aliases an element of
// paths, so the result's OwnershipTag is Borrowed — the caller must keep
// paths alive until it releases the result. Grounded on the teacher's
// pkg/minimatch.Match(list, pattern, options) filtering shape, generalized
// with pkg/minimatch.Options.MatchBase and its leading-'!' negate parsing,
// the two non-ABI extensions only this entry point honors.
func MatchPaths(pattern string, paths []string, flags Flag) (*MatchResult, error) {
	negate := false
	if flags.Has(NEGATE) && !flags.Has(NONEGATE) && strings.HasPrefix(pattern, "!") {
		negate = true
		pattern = pattern[1:]
	}
	matchBase := flags.Has(MATCHBASE) && !strings.Contains(pattern, "/")

	compiled, err := Compile(pattern, flags)
	if err != nil {
		return nil, err
	}

	matched := make([]bool, len(paths))
	matchErr := compiled.Alternatives(func(alt *PatternAlt) bool {
		for i, p := range paths {
			if matched[i] {
				continue
			}
			if matchAltAgainstPath(alt, p, matchBase) {
				matched[i] = true
			}
		}
		return true
	})
	if matchErr != nil {
		return nil, matchErr
	}

	result := NewMatchResult()
	mark := result.Mark()
	for i, p := range paths {
		hit := matched[i]
		if negate {
			hit = !hit
		}
		if hit {
			result.AppendBorrowed(p)
		}
	}

	if !flags.Has(NOSORT) {
		result.SortRegion(mark)
	}
	result.DedupRegion(mark)

	if result.Count() == 0 {
		switch {
		case flags.Has(NOCHECK):
			result.AppendBorrowed(pattern)
		case flags.Has(NOMAGIC) && !compiled.HasMagic():
			result.AppendBorrowed(pattern)
		default:
			return result, ErrNoMatch
		}
	}

	return result, nil
}

// matchAltAgainstPath matches one compiled brace alternative against path.
// Under matchBase (GLOB_MATCHBASE-equivalent, set only when the original
// pattern had no '/') the alternative — at most one segment, since a
// slash-free pattern never splits into more — is matched against path's final component only, ignoring anchoring
// entirely; a basename match has no notion of absolute vs. relative.
func matchAltAgainstPath(alt *PatternAlt, path string, matchBase bool) bool {
	if matchBase {
		return matchSegParts(alt.Segments, []string{baseName(path)})
	}
	if strings.HasPrefix(path, "/") != alt.Anchored {
		return false
	}
	return matchSegParts(alt.Segments, splitNonEmpty(path))
}

func baseName(path string) string {
	parts := splitNonEmpty(path)
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// matchSegParts matches a segment sequence against path components,
// consuming one of each per step except SegRecursive, which tries zero
// components (move on immediately) and then one-at-a-time larger
// consumptions until the rest of the pattern matches or parts runs out.
func matchSegParts(segs []Segment, parts []string) bool {
	if len(segs) == 0 {
		return len(parts) == 0
	}

	seg := segs[0]
	if seg.Kind == SegRecursive {
		rest := segs[1:]
		if matchSegParts(rest, parts) {
			return true
		}
		if len(parts) == 0 {
			return false
		}
		return matchSegParts(segs, parts[1:])
	}

	if len(parts) == 0 {
		return false
	}
	head, tail := parts[0], parts[1:]

	var ok bool
	switch seg.Kind {
	case SegLiteral:
		ok = head == seg.Literal
	case SegMagic:
		ok = seg.Matcher.Match(head)
	}
	if !ok {
		return false
	}
	return matchSegParts(segs[1:], tail)
}

func splitNonEmpty(path string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(path); i++ {
		if i == len(path) || path[i] == '/' {
			if i > start {
				out = append(out, path[start:i])
			}
			start = i + 1
		}
	}
	return out
}
