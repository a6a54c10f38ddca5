// Package commands wires the CLI surface.
package commands

import (
	cea "github.com/TheShiveshNetwork/create-express-app"
	"github.com/TheShiveshNetwork/create-express-app/internal/output"
	"github.com/spf13/cobra"
)

// RootCmd creates and returns the root command.
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "create-express-app",
		Short: "Scaffold production-ready Express servers",
		Long: `create-express-app scaffolds an Express server project:
• JavaScript or TypeScript, ESM throughout
• Optional linting, request validation, and testing setup
• Latest dependency versions resolved from the npm registry
• Safe by default: an interrupted or failed run leaves nothing behind

Example:
  create-express-app new my-api`,
		Version: cea.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")

	return cmd
}
