package archive

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/beam-cloud/cup/pkg/common"
)

// FileHeader describes one archived file. On disk it is a fixed 18-byte
// prefix followed by the path bytes:
//
//	8 bytes  content offset, little-endian
//	4 bytes  UNIX modification timestamp, little-endian
//	4 bytes  content size, little-endian
//	2 bytes  path length, little-endian
//	n bytes  relative path, UTF-8, no terminator
//
// The path length counts UTF-8 bytes, so any valid path round-trips
// byte-exactly.
type FileHeader struct {
	ContentOffset uint64
	ModifiedTime  uint32
	ContentSize   uint32
	Path          string
}

// NewFileHeader builds a header for a source file. The content offset is
// left zero; the packer assigns it once the full header block size is known.
// Sub-second modification time precision is dropped on purpose.
func NewFileHeader(relativePath string, modTime time.Time, size int64) (FileHeader, error) {
	if len(relativePath) > MaxPathLength {
		return FileHeader{}, fmt.Errorf("%w: %q is %d bytes, limit is %d", common.ErrInvalidPath, relativePath, len(relativePath), MaxPathLength)
	}
	if size > math.MaxUint32 {
		return FileHeader{}, fmt.Errorf("%w: %q is %d bytes, size field holds at most %d", common.ErrInvalidPath, relativePath, size, uint32(math.MaxUint32))
	}
	unixTime := modTime.Unix()
	if unixTime < 0 || unixTime > math.MaxUint32 {
		return FileHeader{}, fmt.Errorf("%w: %q modified at %v, timestamp field covers 1970 through 2106", common.ErrInvalidPath, relativePath, modTime)
	}

	return FileHeader{
		ModifiedTime: uint32(unixTime),
		ContentSize:  uint32(size),
		Path:         relativePath,
	}, nil
}

// HeaderSize is the on-disk size of this record, prefix plus path.
func (h *FileHeader) HeaderSize() int {
	return HeaderPrefixLength + len(h.Path)
}

// Encode produces the on-disk record.
func (h *FileHeader) Encode() []byte {
	buf := make([]byte, h.HeaderSize())
	binary.LittleEndian.PutUint64(buf[0:8], h.ContentOffset)
	binary.LittleEndian.PutUint32(buf[8:12], h.ModifiedTime)
	binary.LittleEndian.PutUint32(buf[12:16], h.ContentSize)
	binary.LittleEndian.PutUint16(buf[16:18], uint16(len(h.Path)))
	copy(buf[HeaderPrefixLength:], h.Path)
	return buf
}

// WithPath returns a new header carrying the same offset, timestamp and
// size under a different path. Because the path length is part of the
// record layout, a path change always rebuilds the whole record rather
// than splicing bytes in place.
func (h *FileHeader) WithPath(newPath string) (FileHeader, error) {
	if len(newPath) > MaxPathLength {
		return FileHeader{}, fmt.Errorf("%w: %q is %d bytes, limit is %d", common.ErrInvalidPath, newPath, len(newPath), MaxPathLength)
	}

	renamed := *h
	renamed.Path = newPath
	return renamed, nil
}

// DecodeHeader reads one record from r, leaving r positioned at the first
// byte after the record. A short read anywhere in the record means the
// archive ends mid-header.
func DecodeHeader(r io.Reader) (FileHeader, error) {
	prefix := make([]byte, HeaderPrefixLength)
	if _, err := io.ReadFull(r, prefix); err != nil {
		return FileHeader{}, fmt.Errorf("%w: %v", common.ErrTruncatedArchive, err)
	}

	pathLength := binary.LittleEndian.Uint16(prefix[16:18])
	path := make([]byte, pathLength)
	if _, err := io.ReadFull(r, path); err != nil {
		return FileHeader{}, fmt.Errorf("%w: %v", common.ErrTruncatedArchive, err)
	}

	return FileHeader{
		ContentOffset: binary.LittleEndian.Uint64(prefix[0:8]),
		ModifiedTime:  binary.LittleEndian.Uint32(prefix[8:12]),
		ContentSize:   binary.LittleEndian.Uint32(prefix[12:16]),
		Path:          string(path),
	}, nil
}

// Modified returns the stored timestamp as a time.Time.
func (h *FileHeader) Modified() time.Time {
	return time.Unix(int64(h.ModifiedTime), 0)
}
