package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jos-ren/Sors-Finance-sub002/internal/cells"
	"github.com/jos-ren/Sors-Finance-sub002/internal/detect"
)

func newDetectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "detect <file>",
		Short: "Detect which bank a statement file came from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(args[0])
		},
	}
}

func runDetect(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	rows, err := cells.Load(filepath.Base(path), data)
	if err != nil {
		return err
	}

	for _, r := range detect.DetectAll(rows) {
		fmt.Printf("%-8s %-8s %s\n", r.Bank, r.Confidence, r.Reason)
	}

	best := detect.Detect(rows)
	fmt.Printf("detected: %s (%s)\n", best.Bank, best.Confidence)
	return nil
}
