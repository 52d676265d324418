package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/beam-cloud/cup/pkg/cup"
)

var ListCmd = &cobra.Command{
	Use:   "list [archive]",
	Short: "List the contents of an archive",
	Args:  cobra.ExactArgs(1),
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	infos, err := cup.List(args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, info := range infos {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			info.Index,
			humanize.Bytes(uint64(info.Size)),
			info.Modified.Format(time.ANSIC),
			info.Path,
		)
	}
	return w.Flush()
}
