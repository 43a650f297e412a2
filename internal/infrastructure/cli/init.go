package cli

import (
	"fmt"

	"github.com/felixgeelhaar/courtside/pkg/application"
	"github.com/felixgeelhaar/courtside/pkg/domain/board"
	"github.com/felixgeelhaar/courtside/pkg/domain/tracker"
	"github.com/felixgeelhaar/courtside/pkg/storage"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a courtside workspace in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := getProjectRoot()
		if err != nil {
			return err
		}

		repo := storage.NewFilesystemRepository(root)
		if repo.IsInitialized() {
			return fmt.Errorf("workspace already initialized at %s", repo.DataDir())
		}
		if err := repo.Initialize(); err != nil {
			return err
		}

		if err := repo.SaveTasks(&storage.TaskDocument{Tasks: nil}); err != nil {
			return err
		}
		b := board.NewBoard("Sprint Board",
			application.ColumnForStatus(tracker.StatusPending),
			application.ColumnForStatus(tracker.StatusInProgress),
			application.ColumnForStatus(tracker.StatusBlocked),
			application.ColumnForStatus(tracker.StatusDone),
		)
		if err := repo.SaveBoard(b); err != nil {
			return err
		}

		fmt.Printf("Initialized workspace at %s\n", repo.DataDir())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(initCmd)
}
