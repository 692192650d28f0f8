package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jos-ren/Sors-Finance-sub002/internal/categorize"
)

func newStatusCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show ledger totals and open conflicts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(dir)
			if err != nil {
				return err
			}
			return runStatus(ws)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "workspace directory")

	return cmd
}

func runStatus(ws *workspace) error {
	txns, err := ws.ledger.Transactions()
	if err != nil {
		return err
	}

	batches, err := ws.ledger.Batches()
	if err != nil {
		return err
	}

	sum := categorize.Summarize(txns, 0, ws.cats.UncategorizedID())

	fmt.Printf("workspace:    %s\n", ws.cfg.Workspace.Name)
	fmt.Printf("transactions: %d\n", sum.Total)
	fmt.Printf("categorized:  %d\n", sum.Categorized)
	fmt.Printf("conflicts:    %d\n", sum.Conflicts)
	fmt.Printf("unassigned:   %d\n", sum.Unassigned)
	fmt.Printf("batches:      %d\n", len(batches))

	listed := false
	for _, txn := range txns {
		if !txn.LiveConflict() {
			continue
		}
		if !listed {
			fmt.Println("\nopen conflicts:")
			listed = true
		}
		fmt.Printf("  %s  %s  %s  candidates: %s\n",
			txn.ID, txn.Date.Format("2006-01-02"), txn.Description,
			strings.Join(categoryNames(ws, txn.ConflictingCategories), ", "))
	}
	return nil
}

func categoryNames(ws *workspace, ids []string) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		if cat, ok := ws.cats.Get(id); ok {
			names[i] = cat.Name
		} else {
			names[i] = id
		}
	}
	return names
}
