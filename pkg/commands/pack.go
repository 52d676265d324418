package commands

import (
	"github.com/spf13/cobra"

	"github.com/beam-cloud/cup/pkg/cup"
)

var packOpts = &cup.PackOptions{}

var PackCmd = &cobra.Command{
	Use:   "pack [paths...]",
	Short: "Pack files and directories into an archive",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPack,
}

func init() {
	PackCmd.Flags().StringVarP(&packOpts.OutputPath, "output", "o", "archive.cup", "Output file for the archive")
}

func runPack(cmd *cobra.Command, args []string) error {
	packOpts.SourcePaths = args
	return cup.Pack(*packOpts)
}
