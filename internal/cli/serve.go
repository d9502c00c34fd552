package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/snakecodec/internal/api"
)

// serveCommand starts the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the transforms over HTTP",
		Long: `Start the HTTP API. Successful operations are recorded to the configured
history and journal unless --no-record is given. The server shuts down
gracefully on interrupt.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.cfg()

			rec, err := c.openRecorder(ctx)
			if err != nil {
				return err
			}
			defer rec.Close()

			printInfo("Listening on %s", StyleLink.Render("http://"+cfg.ListenAddr))
			if rec == nil {
				printDetail("recording disabled")
			}

			return api.NewServer(api.Config{
				Addr:          cfg.ListenAddr,
				Recorder:      rec,
				Defaults:      cfg.Params(),
				MaxTextLength: cfg.MaxTextLength,
				Logger:        c.Logger,
			}).Serve(ctx)
		},
	}

	cmd.Flags().String("listen", api.DefaultAddr, "listen address")
	cmd.Flags().IntP("shift", "s", 0, "default shift for caesar and rot")
	cmd.Flags().StringP("layout", "l", "", "default alphabet layout")
	cmd.Flags().String("code-page", "", "default code page for ascii")
	addRecordFlag(cmd)
	return cmd
}
