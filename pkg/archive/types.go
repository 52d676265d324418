package archive

import (
	"sort"
	"time"

	"github.com/tidwall/btree"
)

// CupArchiveMetadata holds the decoded header set of one archive. Headers
// keeps every record in pack-time traversal order, duplicates included;
// Index is a path-keyed btree backing point lookups only. The archive
// itself stores headers in pack-time order, so the sorted view is rebuilt
// from scratch every time an archive is read and listing/extraction order
// never depends on how the archive was packed.
type CupArchiveMetadata struct {
	Headers []FileHeader
	Index   *btree.BTree
}

func newMetadata(headers []FileHeader) *CupArchiveMetadata {
	compare := func(a, b interface{}) bool {
		return a.(*FileHeader).Path < b.(*FileHeader).Path
	}

	index := btree.New(compare)
	for i := range headers {
		index.Set(&headers[i])
	}

	return &CupArchiveMetadata{Headers: headers, Index: index}
}

// Get looks up one header by path. When several entries share a path the
// one packed last wins, matching what extraction leaves on disk.
func (m *CupArchiveMetadata) Get(path string) *FileHeader {
	item := m.Index.Get(&FileHeader{Path: path})
	if item == nil {
		return nil
	}
	return item.(*FileHeader)
}

// SortedHeaders returns every header in ascending path order. Entries
// sharing a path keep their pack-time order relative to each other, so
// none are collapsed away.
func (m *CupArchiveMetadata) SortedHeaders() []FileHeader {
	headers := make([]FileHeader, len(m.Headers))
	copy(headers, m.Headers)
	sort.SliceStable(headers, func(i, j int) bool {
		return headers[i].Path < headers[j].Path
	})
	return headers
}

// FileInfo describes one archive entry as presented by List. Index is
// 1-based and refers to the path-sorted order.
type FileInfo struct {
	Index    int
	Size     int64
	Modified time.Time
	Path     string
}
