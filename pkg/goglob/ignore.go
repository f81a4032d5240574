package goglob

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	pathspec "github.com/shibumi/go-pathspec"
)

// IgnorePredicate reports whether path should be pruned from the walk. The
// driver passes each entry's path as it builds it from the pattern:
// relative to the current directory for a relative pattern, absolute for an
// absolute one. The GITIGNORE flag consumes
// one as a predicate rather than re-implementing gitignore parsing (spec
// §4.4): rule syntax and precedence are entirely go-pathspec's concern.
type IgnorePredicate func(path string, isDir bool) bool

// FromGitignoreFiles builds an IgnorePredicate from the ".gitignore" files
// found at each of roots. A path is pruned when the rules of any one file
// match it; a later file cannot re-include a path that an earlier file
// ignores. A missing file at a given root is skipped, not an error.
func FromGitignoreFiles(roots ...string) (IgnorePredicate, error) {
	var specs []*pathspec.PathSpec
	for _, root := range roots {
		path := filepath.Join(root, ".gitignore")
		spec, err := pathspec.FromFile(path)
		if err != nil {
			if os.IsNotExist(errors.Cause(err)) {
				continue
			}
			return nil, errors.Wrapf(err, "goglob: read %s", path)
		}
		specs = append(specs, spec)
	}

	return func(path string, isDir bool) bool {
		match := path
		if isDir {
			match = path + "/"
		}
		for _, spec := range specs {
			if spec.Match(match) {
				return true
			}
		}
		return false
	}, nil
}
