package resources

import (
	"io/fs"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// ExpandAssets resolves a resources block's images/downloads glob patterns
// against fsys (the manual's source directory), returning the matched,
// deduplicated, sorted file paths. A pattern matching nothing is simply
// dropped, not reported — images/downloads describe what exists, not a
// contract the source tree must satisfy.
func ExpandAssets(fsys fs.FS, patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out, nil
}
