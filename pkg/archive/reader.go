package archive

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/beam-cloud/cup/pkg/common"
)

// OpenArchive opens an archive file and consumes its signature, leaving the
// handle positioned at the first header record.
func OpenArchive(archivePath string) (*os.File, error) {
	file, err := os.Open(archivePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", common.ErrArchiveNonExistent, archivePath)
		}
		return nil, err
	}

	signature := make([]byte, len(CupFileSignature))
	if _, err := io.ReadFull(file, signature); err != nil {
		file.Close()
		return nil, fmt.Errorf("%w: %s", common.ErrArchiveNotRecognizable, archivePath)
	}
	if !bytes.Equal(signature, CupFileSignature) {
		file.Close()
		return nil, fmt.Errorf("%w: %s", common.ErrArchiveNotRecognizable, archivePath)
	}

	return file, nil
}

// ReadHeaderBlock scans every header record from r, which must be
// positioned just past the signature. The block stores no record count;
// instead the first header's content offset doubles as a sentinel, since
// the packer guarantees it equals the byte offset where the header block
// ends and the content block begins.
//
// The scan keeps a cursor at the absolute offset of the next record and
// advances it by each decoded record's own size. Termination invariant:
// on a well-formed archive the cursor lands exactly on the sentinel; a
// cursor past the sentinel means the block is corrupt and the scan stops
// rather than reading content bytes as headers.
//
// Headers are returned in pack-time order. Callers needing deterministic
// output sort by path themselves; on-disk order is traversal order.
func ReadHeaderBlock(r io.Reader) ([]FileHeader, error) {
	first, err := DecodeHeader(r)
	if err != nil {
		return nil, err
	}

	sentinel := first.ContentOffset
	headers := []FileHeader{first}

	cursor := uint64(len(CupFileSignature)) + uint64(first.HeaderSize())
	for cursor < sentinel {
		header, err := DecodeHeader(r)
		if err != nil {
			return nil, err
		}
		headers = append(headers, header)
		cursor += uint64(header.HeaderSize())
	}

	if cursor != sentinel {
		return nil, fmt.Errorf("%w: cursor at %d, content starts at %d", common.ErrCorruptHeaderBlock, cursor, sentinel)
	}

	return headers, nil
}
