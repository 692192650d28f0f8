package commands

import (
	"github.com/spf13/cobra"

	"github.com/jos-ren/Sors-Finance-sub002/internal/api"
	"github.com/jos-ren/Sors-Finance-sub002/internal/importer"
)

func newServeCommand() *cobra.Command {
	var dir string
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the statement preview API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(dir)
			if err != nil {
				return err
			}

			srv := api.New(ws.log, importer.DefaultRegistry(), ws.cats, ws.ledger)
			return srv.Listen(addr)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "workspace directory")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}
