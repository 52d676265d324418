package archive

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beam-cloud/cup/pkg/common"
)

func TestHeaderEncodeDecodeRoundTrip(t *testing.T) {
	modTime := time.Date(2024, 3, 1, 12, 30, 45, 999999999, time.UTC)

	header, err := NewFileHeader("dir/inner/file.txt", modTime, 4096)
	require.NoError(t, err)
	header.ContentOffset = 12345

	encoded := header.Encode()
	require.Len(t, encoded, HeaderPrefixLength+len("dir/inner/file.txt"))

	decoded, err := DecodeHeader(bytes.NewReader(encoded))
	require.NoError(t, err)

	assert.Equal(t, header.ContentOffset, decoded.ContentOffset)
	assert.Equal(t, header.ContentSize, decoded.ContentSize)
	assert.Equal(t, header.Path, decoded.Path)

	// Sub-second precision is dropped when the header is built.
	assert.Equal(t, modTime.Unix(), decoded.Modified().Unix())
}

func TestHeaderTimestampTruncatesToSeconds(t *testing.T) {
	modTime := time.Unix(1700000000, 567000000)

	header, err := NewFileHeader("a.txt", modTime, 1)
	require.NoError(t, err)

	assert.Equal(t, uint32(1700000000), header.ModifiedTime)
}

func TestHeaderTimestampOutOfRange(t *testing.T) {
	// The 4-byte field covers 1970 through 2106; anything outside must be
	// rejected rather than silently wrapped.
	_, err := NewFileHeader("old.txt", time.Unix(-1, 0), 1)
	require.ErrorIs(t, err, common.ErrInvalidPath)

	_, err = NewFileHeader("future.txt", time.Unix(1<<33, 0), 1)
	require.ErrorIs(t, err, common.ErrInvalidPath)

	_, err = NewFileHeader("epoch.txt", time.Unix(0, 0), 1)
	require.NoError(t, err)
}

func TestHeaderPathTooLong(t *testing.T) {
	longPath := strings.Repeat("x", MaxPathLength+1)

	_, err := NewFileHeader(longPath, time.Now(), 1)
	require.ErrorIs(t, err, common.ErrInvalidPath)

	header, err := NewFileHeader("short.txt", time.Now(), 1)
	require.NoError(t, err)

	_, err = header.WithPath(longPath)
	require.ErrorIs(t, err, common.ErrInvalidPath)
}

func TestHeaderPathLengthIsByteLength(t *testing.T) {
	path := "héllo/wörld.txt" // multi-byte characters

	header, err := NewFileHeader(path, time.Now(), 1)
	require.NoError(t, err)

	encoded := header.Encode()
	require.Len(t, encoded, HeaderPrefixLength+len(path))

	decoded, err := DecodeHeader(bytes.NewReader(encoded))
	require.NoError(t, err)
	assert.Equal(t, path, decoded.Path)
}

func TestWithPathRebuildsRecord(t *testing.T) {
	header, err := NewFileHeader("original-name.txt", time.Unix(1700000000, 0), 77)
	require.NoError(t, err)
	header.ContentOffset = 999

	renamed, err := header.WithPath("new.txt")
	require.NoError(t, err)

	// The 16-byte prefix carries over untouched, the path region does not.
	assert.Equal(t, header.ContentOffset, renamed.ContentOffset)
	assert.Equal(t, header.ModifiedTime, renamed.ModifiedTime)
	assert.Equal(t, header.ContentSize, renamed.ContentSize)
	assert.Equal(t, "new.txt", renamed.Path)
	assert.Equal(t, HeaderPrefixLength+len("new.txt"), renamed.HeaderSize())

	// The original record is untouched.
	assert.Equal(t, "original-name.txt", header.Path)
}

func TestDecodeHeaderTruncated(t *testing.T) {
	header, err := NewFileHeader("some/path.txt", time.Now(), 10)
	require.NoError(t, err)
	encoded := header.Encode()

	cases := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"cut mid prefix", encoded[:10]},
		{"cut mid path", encoded[:HeaderPrefixLength+3]},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeHeader(bytes.NewReader(tc.data))
			require.ErrorIs(t, err, common.ErrTruncatedArchive)
		})
	}
}
