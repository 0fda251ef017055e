package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/five82/shelfscan/internal/scan"
)

func newScanCmd(flags *globalFlags) *cobra.Command {
	var shelfID int64

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Import barcodes read from stdin or a scanner device",
		Long: `Reads one decoded barcode per line and imports each ISBN. Repeats inside
the dedupe window are ignored. With --shelf every imported book is placed on
that shelf.`,
		Example: `  # Import a list of ISBNs
  shelfscan scan < isbns.txt

  # Shelve everything from a serial scanner onto shelf 12
  shelfscan scan --device /dev/ttyACM0 --shelf 12`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := flags.setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			var in io.Reader = cmd.InOrStdin()
			name := "stdin"
			if dev := env.Config.ScanDevice; dev != "" {
				f, err := scan.OpenDevice(dev)
				if err != nil {
					return err
				}
				defer func() { _ = f.Close() }()
				in, name = f, dev
			}

			out := cmd.OutOrStdout()
			summary, err := env.RunScan(cmd.Context(), in, name, out, shelfID)
			fmt.Fprintln(out, summary)
			return err
		},
	}

	cmd.Flags().Int64Var(&shelfID, "shelf", 0, "place every imported book on this shelf id")
	return cmd
}
