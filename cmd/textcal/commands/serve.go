package commands

import (
	"github.com/spf13/cobra"

	"github.com/textcal/textcal/internal/extract"
	"github.com/textcal/textcal/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the event extraction HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().Bool("production", false, "production mode (release logging, no debug payloads)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	completer, err := buildCompleter()
	if err != nil {
		logError("%v", err)
		return err
	}

	production, _ := cmd.Flags().GetBool("production")
	srv := server.New(extract.NewService(completer), server.Config{
		Addr:       mustFlagString(cmd, "addr"),
		Production: production,
	})
	return srv.Run()
}
