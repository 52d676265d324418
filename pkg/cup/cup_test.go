package cup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beam-cloud/cup/pkg/archive"
)

func TestPackListUnpack(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "hello.txt"), []byte("hello"), 0644))

	archivePath := filepath.Join(tmp, "hello.cup")
	require.NoError(t, Pack(PackOptions{
		SourcePaths: []string{filepath.Join(tmp, "hello.txt")},
		OutputPath:  archivePath,
	}))

	infos, err := List(archivePath)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "hello.txt", infos[0].Path)
	assert.Equal(t, int64(5), infos[0].Size)

	outputDir := filepath.Join(tmp, "out")
	require.NoError(t, Unpack(UnpackOptions{
		ArchivePath: archivePath,
		OutputPath:  outputDir,
		Renames:     []archive.Rename{{Selector: "hello.txt", NewPath: "greeting.txt"}},
	}))

	raw, err := os.ReadFile(filepath.Join(outputDir, "greeting.txt"))
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), raw)
}

func TestSetLogLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "disabled"} {
		assert.NoError(t, SetLogLevel(level))
	}
	assert.Error(t, SetLogLevel("verbose"))
}
