package commands

import (
	"github.com/spf13/cobra"

	"github.com/jos-ren/Sors-Finance-sub002/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "sors",
		Short:   "Bank statement import and categorization",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newDetectCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newRecategorizeCommand())
	rootCmd.AddCommand(newResolveCommand())
	rootCmd.AddCommand(newStatusCommand())
	rootCmd.AddCommand(newBatchesCommand())
	rootCmd.AddCommand(newServeCommand())

	return rootCmd
}
