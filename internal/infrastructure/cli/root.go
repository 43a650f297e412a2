// Package cli wires the courtside commands.
package cli

import (
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var projectPath string

// RootCmd is the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:     "courtside",
	Version: Version,
	Short:   "Mirror local tasks into an issue tracker and a kanban board",
	Long: `Courtside keeps a local task list, its mirrored tracker issues, and a
kanban board in agreement. Tasks are projected into labeled, milestoned
issues; issue changes flow back into task statuses and board columns.`,
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().StringVar(&projectPath, "project", "", "project root (defaults to the working directory)")
}
