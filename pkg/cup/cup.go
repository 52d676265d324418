package cup

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/beam-cloud/cup/pkg/archive"
)

// SetLogLevel configures the logging verbosity for the cup library.
// Valid levels: "debug", "info", "warn", "error", "disabled"
func SetLogLevel(level string) error {
	switch strings.ToLower(level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "disabled", "none", "off":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	default:
		return fmt.Errorf("invalid log level %q: must be one of: debug, info, warn, error, disabled", level)
	}
	return nil
}

type PackOptions struct {
	SourcePaths []string
	OutputPath  string
}

type UnpackOptions struct {
	ArchivePath string
	OutputPath  string
	Renames     []archive.Rename
}

// Pack archives the source paths into a single .cup file.
func Pack(options PackOptions) error {
	log.Info().Msgf("packing %v to %s", options.SourcePaths, options.OutputPath)

	a := archive.NewCupArchiver()
	err := a.Create(archive.CreateOptions{
		SourcePaths: options.SourcePaths,
		OutputFile:  options.OutputPath,
	})
	if err != nil {
		return err
	}

	log.Info().Msg("archive created successfully")
	return nil
}

// Unpack extracts an archive into the output path, applying any renames.
func Unpack(options UnpackOptions) error {
	log.Info().Msgf("unpacking %s to %s", options.ArchivePath, options.OutputPath)

	a := archive.NewCupArchiver()
	err := a.Extract(archive.ExtractOptions{
		ArchivePath: options.ArchivePath,
		OutputPath:  options.OutputPath,
		Renames:     options.Renames,
	})
	if err != nil {
		return err
	}

	log.Info().Msg("archive unpacked successfully")
	return nil
}

// List returns the archive's entries sorted by path.
func List(archivePath string) ([]archive.FileInfo, error) {
	a := archive.NewCupArchiver()
	return a.List(archivePath)
}
