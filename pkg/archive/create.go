package archive

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/beam-cloud/cup/pkg/common"
)

type CupArchiver struct {
}

func NewCupArchiver() *CupArchiver {
	return &CupArchiver{}
}

type CreateOptions struct {
	SourcePaths []string
	OutputFile  string
}

// assignOffsets computes each header's absolute content offset. The first
// file's content sits immediately after the header block, every following
// file immediately after its predecessor, so the content region is
// contiguous and gap-free. This also establishes the sentinel the reader
// relies on: the first header's offset is exactly where headers end.
func assignOffsets(headers []FileHeader) {
	offset := uint64(len(CupFileSignature))
	for i := range headers {
		offset += uint64(headers[i].HeaderSize())
	}
	for i := range headers {
		headers[i].ContentOffset = offset
		offset += uint64(headers[i].ContentSize)
	}
}

// Create packs the source paths into a single archive: signature, then
// every header in flattened order, then every file's content in the same
// order, streamed through a bounded buffer.
func (ca *CupArchiver) Create(opts CreateOptions) error {
	entries, err := flattenPaths(opts.SourcePaths)
	if err != nil {
		return err
	}

	archivePath, err := filepath.Abs(opts.OutputFile)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.SourcePath == archivePath {
			return fmt.Errorf("%w: %s", common.ErrArchiveAlreadyExists, archivePath)
		}
	}

	headers := make([]FileHeader, 0, len(entries))
	for _, entry := range entries {
		info, err := os.Stat(entry.SourcePath)
		if err != nil {
			return err
		}

		header, err := NewFileHeader(entry.RelativePath, info.ModTime(), info.Size())
		if err != nil {
			return err
		}
		headers = append(headers, header)
	}

	assignOffsets(headers)

	outFile, err := os.Create(archivePath)
	if err != nil {
		return err
	}
	defer outFile.Close()

	writer := bufio.NewWriterSize(outFile, ChunkSize)

	if _, err := writer.Write(CupFileSignature); err != nil {
		return err
	}
	for i := range headers {
		if _, err := writer.Write(headers[i].Encode()); err != nil {
			return err
		}
	}

	buf := make([]byte, ChunkSize)
	for i, entry := range entries {
		log.Debug().Str("path", entry.RelativePath).Msg("archiving")

		if err := ca.writeContent(writer, entry.SourcePath, int64(headers[i].ContentSize), buf); err != nil {
			return fmt.Errorf("error archiving %s: %w", entry.SourcePath, err)
		}
	}

	return writer.Flush()
}

// writeContent copies exactly size bytes of one source file into the
// archive. Copying less than the recorded size would shift every later
// offset, so a source that shrank since it was measured is an error.
func (ca *CupArchiver) writeContent(w io.Writer, sourcePath string, size int64, buf []byte) error {
	file, err := os.Open(sourcePath)
	if err != nil {
		return err
	}
	defer file.Close()

	copied, err := io.CopyBuffer(w, io.LimitReader(file, size), buf)
	if err != nil {
		return err
	}
	if copied != size {
		return fmt.Errorf("short read: wrote %d of %d bytes", copied, size)
	}

	return nil
}
