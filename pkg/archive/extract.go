package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/beam-cloud/cup/pkg/common"
)

type ExtractOptions struct {
	ArchivePath string
	OutputPath  string
	Renames     []Rename
}

// Rename redirects one archive entry to a new relative path. The selector
// is either the entry's stored path or its 1-based position in the
// path-sorted listing, exactly as printed by List. "#N" always means
// position N, even when an entry is literally named "#N"-style.
type Rename struct {
	Selector string
	NewPath  string
}

// ExtractMetadata reads the archive's header block and returns the
// path-indexed header set. Purely read-only.
func (ca *CupArchiver) ExtractMetadata(archivePath string) (*CupArchiveMetadata, error) {
	file, err := OpenArchive(archivePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	headers, err := ReadHeaderBlock(file)
	if err != nil {
		return nil, err
	}

	return newMetadata(headers), nil
}

// List returns the archive's entries sorted by path, with 1-based indices.
func (ca *CupArchiver) List(archivePath string) ([]FileInfo, error) {
	metadata, err := ca.ExtractMetadata(archivePath)
	if err != nil {
		return nil, err
	}

	headers := metadata.SortedHeaders()
	infos := make([]FileInfo, 0, len(headers))
	for i := range headers {
		infos = append(infos, FileInfo{
			Index:    i + 1,
			Size:     int64(headers[i].ContentSize),
			Modified: headers[i].Modified(),
			Path:     headers[i].Path,
		})
	}

	return infos, nil
}

// Extract unpacks every archive entry under opts.OutputPath, applying any
// renames first. Every created file and directory is prefixed with the
// destination path explicitly; the process working directory is never
// touched. The first failure aborts the remaining extraction.
func (ca *CupArchiver) Extract(opts ExtractOptions) error {
	file, err := OpenArchive(opts.ArchivePath)
	if err != nil {
		return err
	}
	defer file.Close()

	rawHeaders, err := ReadHeaderBlock(file)
	if err != nil {
		return err
	}
	headers := newMetadata(rawHeaders).SortedHeaders()

	// Resolve renames up front so a bad selector aborts before anything
	// is written.
	headers, err = applyRenames(headers, opts.Renames)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(opts.OutputPath, 0755); err != nil {
		return err
	}

	buf := make([]byte, ChunkSize)
	for i := range headers {
		if err := extractFile(file, &headers[i], opts.OutputPath, buf); err != nil {
			return fmt.Errorf("error extracting %s: %w", headers[i].Path, err)
		}
	}

	return nil
}

// applyRenames rewrites the selected headers' paths. Selectors resolve
// against the sorted list as passed in: a stored path always wins, a
// selector of the form "#N" is forced to the 1-based position N, and a
// bare number falls back to a position when no entry carries it as a
// path. That keeps entries with all-digit names addressable. All entries
// stay in the extraction set whether renamed or not.
func applyRenames(headers []FileHeader, renames []Rename) ([]FileHeader, error) {
	for _, rename := range renames {
		target := resolveSelector(headers, rename.Selector)
		if target < 0 {
			return nil, fmt.Errorf("%w: %q", common.ErrUnknownRenameSelector, rename.Selector)
		}

		renamed, err := headers[target].WithPath(rename.NewPath)
		if err != nil {
			return nil, err
		}
		headers[target] = renamed
	}

	return headers, nil
}

func resolveSelector(headers []FileHeader, selector string) int {
	if forced, ok := strings.CutPrefix(selector, "#"); ok {
		if index, err := strconv.Atoi(forced); err == nil && index >= 1 && index <= len(headers) {
			return index - 1
		}
		return -1
	}

	for i := range headers {
		if headers[i].Path == selector {
			return i
		}
	}

	if index, err := strconv.Atoi(selector); err == nil && index >= 1 && index <= len(headers) {
		return index - 1
	}

	return -1
}

// extractFile copies one entry's byte range out of the archive into its
// destination, then restores the stored modification time.
func extractFile(archive *os.File, header *FileHeader, outputPath string, buf []byte) error {
	destPath := filepath.Join(outputPath, filepath.FromSlash(header.Path))

	log.Debug().Str("path", header.Path).Str("dest", destPath).Msg("extracting")

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return err
	}

	outFile, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer outFile.Close()

	if _, err := archive.Seek(int64(header.ContentOffset), io.SeekStart); err != nil {
		return err
	}

	size := int64(header.ContentSize)
	copied, err := io.CopyBuffer(outFile, io.LimitReader(archive, size), buf)
	if err != nil {
		return err
	}
	if copied != size {
		return fmt.Errorf("%w: read %d of %d content bytes", common.ErrTruncatedArchive, copied, size)
	}

	modified := header.Modified()
	return os.Chtimes(destPath, modified, modified)
}
