package fixture

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/conneroisu/sfcc/internal/errors"
)

// DefaultPatterns match fixture file names.
var DefaultPatterns = []string{"*.tmpl.yml", "*.tmpl.yaml"}

// Matches reports whether the base name of path matches any pattern.
func Matches(path string, patterns []string) bool {
	base := filepath.Base(path)
	for _, pattern := range patterns {
		if ok, err := filepath.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}

// Discover expands paths into a sorted, de-duplicated list of fixture
// files. Files are taken as given; directories are walked for names
// matching patterns.
func Discover(paths, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, errors.NewIOError(errors.ErrCodeFileNotFound, "cannot stat "+p, err)
		}
		if !info.IsDir() {
			add(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && len(d.Name()) > 1 && d.Name()[0] == '.' {
					return filepath.SkipDir
				}
				return nil
			}
			if Matches(path, patterns) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.WrapIO(err, errors.ErrCodeFileNotFound, "cannot walk "+p)
		}
	}

	sort.Strings(files)
	return files, nil
}
