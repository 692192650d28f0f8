package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jos-ren/Sors-Finance-sub002/internal/categorize"
	"github.com/jos-ren/Sors-Finance-sub002/internal/cells"
	"github.com/jos-ren/Sors-Finance-sub002/internal/dedup"
	"github.com/jos-ren/Sors-Finance-sub002/internal/detect"
	"github.com/jos-ren/Sors-Finance-sub002/internal/importer"
	"github.com/jos-ren/Sors-Finance-sub002/internal/importlog"
	"github.com/jos-ren/Sors-Finance-sub002/internal/model"
)

func newImportCommand() *cobra.Command {
	var dir string
	var all bool
	var bankName string

	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import statement files into the ledger",
		Long: "Import parses statement files, categorizes transactions by keyword,\n" +
			"skips rows already present in the ledger, and appends the rest as a\n" +
			"new batch. Files picked up from the import directory move to its\n" +
			"processed/ subdirectory afterwards.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && len(args) == 0 {
				return fmt.Errorf("nothing to import: pass files or --all")
			}

			ws, err := openWorkspace(dir)
			if err != nil {
				return err
			}
			return runImport(ws, args, all, model.BankType(bankName))
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "workspace directory")
	cmd.Flags().BoolVar(&all, "all", false, "import every statement file in the import directory")
	cmd.Flags().StringVar(&bankName, "bank", "", "skip detection and use this bank's parser (cibc or amex)")

	return cmd
}

// fileReport summarizes what one statement file contributed.
type fileReport struct {
	file       string
	bank       model.BankType
	batchID    string
	imported   int
	duplicates int
	conflicts  int
	rowErrors  []string
}

func runImport(ws *workspace, files []string, all bool, forced model.BankType) error {
	reg := importer.DefaultRegistry()
	if forced != "" && reg.Get(forced) == nil {
		return fmt.Errorf("unknown bank %q (want cibc or amex)", forced)
	}

	paths := files
	if all {
		scanned, err := importer.Scan(ws.importDir())
		if err != nil {
			return err
		}
		for _, f := range scanned {
			paths = append(paths, f.Path)
		}
	}
	if len(paths) == 0 {
		fmt.Println("import directory is empty")
		return nil
	}

	// Row errors and file failures are collected across the whole run and
	// reported together once every file has been attempted.
	var allErrors []string
	failures := 0
	totalConflicts := 0

	for _, path := range paths {
		report, err := importFile(ws, reg, path, forced)
		if err != nil {
			failures++
			allErrors = append(allErrors, fmt.Sprintf("%s: %v", filepath.Base(path), err))
			continue
		}

		for _, e := range report.rowErrors {
			allErrors = append(allErrors, fmt.Sprintf("%s %s", report.file, e))
		}
		totalConflicts += report.conflicts

		if report.imported == 0 {
			fmt.Printf("%s: no new transactions (%d duplicates skipped)\n", report.file, report.duplicates)
		} else {
			fmt.Printf("%s: imported %d as batch %s (%d duplicates skipped, %d conflicts)\n",
				report.file, report.imported, report.batchID, report.duplicates, report.conflicts)
		}
	}

	if len(allErrors) > 0 {
		fmt.Println("errors:")
		for _, e := range allErrors {
			fmt.Printf("  %s\n", e)
		}
	}
	if totalConflicts > 0 {
		fmt.Printf("%d conflicts need a category: run 'sors status', then 'sors resolve <id> <category>'\n", totalConflicts)
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d files failed to import", failures, len(paths))
	}
	return nil
}

func importFile(ws *workspace, reg *importer.Registry, path string, forced model.BankType) (*fileReport, error) {
	name := filepath.Base(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	rows, err := cells.Load(name, data)
	if err != nil {
		return nil, err
	}

	detection := detect.Detect(rows)
	bank := forced
	if bank == "" {
		if !detection.Confidence.Detected() {
			return nil, fmt.Errorf("unknown format: %s", detection.Reason)
		}
		bank = detection.Bank
	}

	result := reg.Get(bank).Parse(rows)
	txns := categorize.Categorize(result.Transactions, ws.cats.Matchable())

	sigs, err := ws.ledger.Signatures()
	if err != nil {
		return nil, err
	}
	fresh, dups := dedup.Filter(txns, dedup.FromSignatures(sigs))

	batchID, err := ws.ledger.Append(fresh, time.Now())
	if err != nil {
		return nil, err
	}

	// Files inside the import directory move to processed/ so a rerun of
	// --all does not pick them up again. Files elsewhere stay put.
	if filepath.Dir(path) == ws.importDir() {
		if err := importer.MarkProcessed(ws.importDir(), name); err != nil {
			return nil, err
		}
	}

	conflicts := 0
	for _, txn := range fresh {
		if txn.LiveConflict() {
			conflicts++
		}
	}

	entry := importlog.Entry{
		Timestamp:  time.Now(),
		File:       name,
		Bank:       bank,
		Confidence: detection.Confidence,
		BatchID:    batchID,
		Imported:   len(fresh),
		Duplicates: len(dups),
		Conflicts:  conflicts,
		Errors:     len(result.Errors),
	}
	if err := importlog.Append(ws.root, []importlog.Entry{entry}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write import log: %v\n", err)
	}

	ws.log.Debug().
		Str("file", name).
		Str("bank", string(bank)).
		Str("batch", batchID).
		Int("imported", len(fresh)).
		Int("duplicates", len(dups)).
		Msg("imported file")

	return &fileReport{
		file:       name,
		bank:       bank,
		batchID:    batchID,
		imported:   len(fresh),
		duplicates: len(dups),
		conflicts:  conflicts,
		rowErrors:  result.Errors,
	}, nil
}
