package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBatchesCommand() *cobra.Command {
	batchesCmd := &cobra.Command{
		Use:   "batches",
		Short: "Batch operations",
	}
	batchesCmd.AddCommand(newBatchesListCommand())
	batchesCmd.AddCommand(newBatchesDeleteCommand())
	return batchesCmd
}

func newBatchesListCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List import batches",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(dir)
			if err != nil {
				return err
			}
			return runBatchesList(ws)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "workspace directory")

	return cmd
}

func runBatchesList(ws *workspace) error {
	batches, err := ws.ledger.Batches()
	if err != nil {
		return err
	}

	if len(batches) == 0 {
		fmt.Println("no batches")
		return nil
	}

	for _, b := range batches {
		fmt.Printf("%s  %4d transactions  %s to %s\n",
			b.ID, b.Count, b.From.Format("2006-01-02"), b.To.Format("2006-01-02"))
	}
	return nil
}

func newBatchesDeleteCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "delete <batch-id>",
		Short: "Delete a batch and all its transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(dir)
			if err != nil {
				return err
			}
			return runBatchesDelete(ws, args[0])
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "workspace directory")

	return cmd
}

func runBatchesDelete(ws *workspace, batchID string) error {
	removed, err := ws.ledger.DeleteBatch(batchID)
	if err != nil {
		return err
	}
	fmt.Printf("deleted batch %s (%d transactions)\n", batchID, removed)
	return nil
}
