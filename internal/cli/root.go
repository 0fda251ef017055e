package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/five82/shelfscan/internal/app"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath     string
	prefsPath      string
	apiURL         string
	device         string
	refreshSeconds int
}

func (g *globalFlags) options() app.Options {
	opts := app.Options{
		ConfigPath: g.configPath,
		PrefsPath:  g.prefsPath,
		APIURL:     g.apiURL,
		Device:     g.device,
	}
	switch {
	case g.refreshSeconds > 0:
		opts.RefreshEvery = time.Duration(g.refreshSeconds) * time.Second
	case g.refreshSeconds < 0:
		opts.RefreshEvery = -1
	}
	return opts
}

// setup wires a session whose logs go to the command's stderr.
func (g *globalFlags) setup(cmd *cobra.Command) (*app.Env, error) {
	return app.Setup(g.options(), cmd.ErrOrStderr())
}

// NewRootCmd builds the shelfscan command tree.
func NewRootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "shelfscan",
		Short: "Scan book barcodes into the catalog and shelve them",
		Long: `shelfscan is a terminal client for the book catalog.

Scan an ISBN barcode (or type it) to import the book, then pick a shelf with
space and place it. A USB scanner that acts as a keyboard works as-is; a
scanner exposed as a line device can be attached with --device.`,
		Example: `  # Interactive session against a local catalog
  shelfscan --api http://127.0.0.1:8080

  # Read barcodes from a serial scanner as well as the keyboard
  shelfscan --device /dev/ttyACM0`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("load .env: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), flags.options())
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default ~/.config/shelfscan/config.toml)")
	pf.StringVar(&flags.apiURL, "api", "", "catalog API URL, overrides api_url")
	pf.StringVar(&flags.device, "device", "", "line-oriented scanner device, overrides scan_device")
	cmd.Flags().StringVar(&flags.prefsPath, "prefs", "", "preferences file (default ~/.config/shelfscan/prefs.toml)")
	cmd.Flags().IntVar(&flags.refreshSeconds, "refresh", 0, "shelf refresh interval in seconds (0 = 30s, negative disables)")

	cmd.AddCommand(
		newScanCmd(flags),
		newImportCmd(flags),
		newShelvesCmd(flags),
		newSearchCmd(flags),
	)
	return cmd
}
