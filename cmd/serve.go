package cmd

import (
	"github.com/luxmesh/lampd/pkg/cmd/server"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the device registry API server",
	Run:   server.RunServe(c),
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
