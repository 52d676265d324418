package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/beam-cloud/cup/pkg/archive"
	"github.com/beam-cloud/cup/pkg/cup"
)

type UnpackCmdOptions struct {
	OutputPath string
	Renames    []string
}

var unpackOpts = &UnpackCmdOptions{}

var UnpackCmd = &cobra.Command{
	Use:   "unpack [archive]",
	Short: "Unpack an archive to the specified path",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnpack,
}

func init() {
	UnpackCmd.Flags().StringVarP(&unpackOpts.OutputPath, "destination", "d", ".", "Destination path for the extraction")
	UnpackCmd.Flags().StringArrayVarP(&unpackOpts.Renames, "rename", "r", nil, "Rename an entry, as <path|index|#index>=<new path> (repeatable)")
}

func runUnpack(cmd *cobra.Command, args []string) error {
	renames := make([]archive.Rename, 0, len(unpackOpts.Renames))
	for _, spec := range unpackOpts.Renames {
		selector, newPath, ok := strings.Cut(spec, "=")
		if !ok || selector == "" || newPath == "" {
			return fmt.Errorf("invalid rename %q: expected <path-or-index>=<new path>", spec)
		}
		renames = append(renames, archive.Rename{Selector: selector, NewPath: newPath})
	}

	return cup.Unpack(cup.UnpackOptions{
		ArchivePath: args[0],
		OutputPath:  unpackOpts.OutputPath,
		Renames:     renames,
	})
}
