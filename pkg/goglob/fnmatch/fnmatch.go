package fnmatch

// Match is a one-shot convenience wrapper over Compile+Match for callers
// (such as the gitignore predicate) that don't need to reuse a compiled
// pattern across many names.
func Match(pattern, name string, opts Options) (bool, error) {
	m, err := Compile(pattern, opts)
	if err != nil {
		return false, err
	}
	return m.Match(name), nil
}
