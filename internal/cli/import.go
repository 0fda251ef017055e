package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/shelfscan/internal/session"
)

func newImportCmd(flags *globalFlags) *cobra.Command {
	var shelfID int64

	cmd := &cobra.Command{
		Use:   "import ISBN",
		Short: "Import one book by ISBN and optionally shelve it",
		Example: `  shelfscan import 9780441013593
  shelfscan import 9780441013593 --shelf 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			isbn, err := requireISBN(args[0])
			if err != nil {
				return err
			}

			env, err := flags.setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			c := env.Controller
			out := cmd.OutOrStdout()
			book, err := c.ImportBook(cmd.Context(), isbn)
			if err != nil {
				return err
			}
			for _, line := range session.FormatBookCard(book).Lines() {
				fmt.Fprintln(out, line)
			}

			if shelfID == 0 {
				if msg := c.Snapshot().Status; msg != "" {
					fmt.Fprintln(out, msg)
				}
				return nil
			}
			if !c.SelectShelf(shelfID) {
				return fmt.Errorf("shelf %d is full or not offered", shelfID)
			}
			if _, err := c.PlaceOnShelf(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(out, c.Snapshot().Status)
			return nil
		},
	}

	cmd.Flags().Int64Var(&shelfID, "shelf", 0, "place the book on this shelf id")
	return cmd
}
