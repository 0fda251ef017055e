package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/shelfscan/internal/session"
)

func newShelvesCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "shelves",
		Short: "List shelf options with their capacity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := flags.setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			if err := env.Controller.RefreshShelves(cmd.Context()); err != nil {
				return err
			}
			snap := env.Controller.Snapshot()
			view := session.BuildShelfView(snap.Shelves, snap.SelectedShelfID)

			out := cmd.OutOrStdout()
			if view.EmptyMessage != "" {
				fmt.Fprintln(out, view.EmptyMessage)
				return nil
			}
			for _, e := range view.Entries {
				marker := "  "
				switch {
				case e.Selected:
					marker = "▸ "
				case e.Disabled:
					marker = "x "
				}
				fmt.Fprintf(out, "%s%6d  %s\n", marker, e.ID, e.Label)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, view.Helper)
			return nil
		},
	}
}
