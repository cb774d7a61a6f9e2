package cli

import (
	"github.com/spf13/cobra"

	"github.com/acldrift/acldrift/cmd/acldrift/cli/command"
	"github.com/acldrift/acldrift/internal"
)

// Application constructs the acldrift CLI application
func Application() *cobra.Command {
	app := &cobra.Command{
		Use:     "acldrift",
		Short:   "Audit filesystem permissions against a declared baseline",
		Long:    `Acldrift compares the declared owner and access rules for a set of folders against a live security descriptor snapshot and reports every compliant, missing, and undeclared rule per folder.`,
		Version: internal.ApplicationVersion,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			quiet, _ := cmd.Flags().GetBool("quiet")
			command.SetupLogging(verbose)
			command.SetupBus(quiet)
		},
	}

	// Add global flags
	app.PersistentFlags().StringP("config", "c", "", "path to configuration file")
	app.PersistentFlags().StringP("output", "o", "table", "output format (table, json)")
	app.PersistentFlags().StringP("output-file", "f", "", "write JSON output to file")
	app.PersistentFlags().BoolP("quiet", "q", false, "suppress all non-essential output")
	app.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")

	// Add subcommands
	app.AddCommand(
		command.Audit(),
		command.Config(),
		command.Hash(),
		command.Version(),
	)

	return app
}
