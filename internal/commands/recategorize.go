package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jos-ren/Sors-Finance-sub002/internal/categorize"
)

func newRecategorizeCommand() *cobra.Command {
	var dir string
	var modeName string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "recategorize",
		Short: "Re-run keyword matching over ledger transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := categorize.ParseMode(modeName)
			if err != nil {
				return err
			}

			ws, err := openWorkspace(dir)
			if err != nil {
				return err
			}
			return runRecategorize(ws, mode, dryRun)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "workspace directory")
	cmd.Flags().StringVar(&modeName, "mode", "uncategorized", "which rows to revisit: uncategorized or all")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would change without writing")

	return cmd
}

func runRecategorize(ws *workspace, mode categorize.Mode, dryRun bool) error {
	var store categorize.Store = ws.ledger
	if dryRun {
		store = &dryRunStore{Store: ws.ledger}
	}

	result, err := categorize.Recategorize(store, ws.cats.All(), mode)
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Printf("dry run: would update %d of %d processed (%d conflicts)\n",
			result.Updated, result.Processed, result.Conflicts)
		return nil
	}

	fmt.Printf("processed %d, updated %d, conflicts %d\n",
		result.Processed, result.Updated, result.Conflicts)
	if result.Conflicts > 0 {
		fmt.Println("conflicting rows keep their current category until resolved")
	}
	return nil
}

// dryRunStore reads through to the real store but swallows writes.
type dryRunStore struct {
	categorize.Store
}

func (s *dryRunStore) UpdateCategory(txnID, categoryID string) error {
	return nil
}
