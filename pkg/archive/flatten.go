package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/karrick/godirwalk"

	"github.com/beam-cloud/cup/pkg/common"
)

// SourceEntry pairs an archive-relative path with the absolute path of the
// file backing it. The flattened list drives both the header block and the
// content block, so the two stay paired index-for-index.
type SourceEntry struct {
	RelativePath string
	SourcePath   string
}

// flattenPaths expands the input arguments into one ordered list of file
// entries. A file argument keeps its base name; a directory argument is
// walked recursively, every descendant's relative path prefixed with the
// chain of directory names starting at the argument's own base name.
// Sibling order is whatever the walk yields, but the same order is used
// for headers and content within one invocation.
func flattenPaths(paths []string) ([]SourceEntry, error) {
	var entries []SourceEntry

	for _, inputPath := range paths {
		absPath, err := filepath.Abs(inputPath)
		if err != nil {
			return nil, err
		}

		info, err := os.Stat(absPath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", common.ErrResourceNonExistent, absPath)
			}
			return nil, err
		}

		switch {
		case info.Mode().IsRegular():
			entries = append(entries, SourceEntry{
				RelativePath: filepath.Base(absPath),
				SourcePath:   absPath,
			})
		case info.IsDir():
			dirEntries, err := flattenDirectory(absPath)
			if err != nil {
				return nil, err
			}
			entries = append(entries, dirEntries...)
		default:
			return nil, fmt.Errorf("%w: %s", common.ErrResourceCantBeArchived, absPath)
		}
	}

	return entries, nil
}

// flattenDirectory walks one directory argument. Relative paths are rooted
// at the directory's base name, so packing /a/b/dir yields dir/..., never
// bare descendants.
func flattenDirectory(dirPath string) ([]SourceEntry, error) {
	var entries []SourceEntry
	prefix := filepath.Base(dirPath)

	err := godirwalk.Walk(dirPath, &godirwalk.Options{
		Callback: func(osPathname string, de *godirwalk.Dirent) error {
			if de.IsDir() {
				return nil
			}

			// Follow symlinks the way a direct argument would: a link to
			// a file is archived as that file, a link to a directory is
			// recursed into by the walker.
			info, err := os.Stat(osPathname)
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("%w: %s", common.ErrResourceNonExistent, osPathname)
				}
				return err
			}
			if info.IsDir() {
				return nil
			}
			if !info.Mode().IsRegular() {
				return fmt.Errorf("%w: %s", common.ErrResourceCantBeArchived, osPathname)
			}

			withinDir, err := filepath.Rel(dirPath, osPathname)
			if err != nil {
				return err
			}

			entries = append(entries, SourceEntry{
				RelativePath: filepath.Join(prefix, withinDir),
				SourcePath:   osPathname,
			})
			return nil
		},
		FollowSymbolicLinks: true,
		Unsorted:            false,
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}
