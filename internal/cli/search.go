package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/shelfscan/internal/session"
)

func newSearchCmd(flags *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "search ISBN",
		Short: "Show the stored catalog record for an ISBN",
		Example: `  shelfscan search 9780134190440
  shelfscan search 9780134190440 --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			isbn, err := requireISBN(args[0])
			if err != nil {
				return err
			}
			format = strings.ToLower(strings.TrimSpace(format))
			if format != formatJSON && format != formatYAML {
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}

			env, err := flags.setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			outcome, err := env.Controller.Search(cmd.Context(), isbn)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !outcome.Found {
				fmt.Fprintln(out, session.MsgNotFound)
				return nil
			}
			text, err := formatRecord(outcome, format)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, strings.TrimRight(text, "\n"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format: json or yaml")
	return cmd
}

var errBlankISBN = errors.New("ISBN must not be blank")

func requireISBN(arg string) (string, error) {
	isbn := strings.TrimSpace(arg)
	if isbn == "" {
		return "", errBlankISBN
	}
	return isbn, nil
}
