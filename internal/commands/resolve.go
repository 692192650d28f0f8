package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResolveCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "resolve <transaction-id> <category>",
		Short: "Assign a category to a transaction, settling a conflict",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(dir)
			if err != nil {
				return err
			}
			return runResolve(ws, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "workspace directory")

	return cmd
}

func runResolve(ws *workspace, txnID, categoryRef string) error {
	cat, ok := ws.cats.Resolve(categoryRef)
	if !ok {
		return fmt.Errorf("category %q not found", categoryRef)
	}

	if err := ws.ledger.UpdateCategory(txnID, cat.ID); err != nil {
		return err
	}

	fmt.Printf("resolved %s to %s\n", txnID, cat.Name)
	return nil
}
