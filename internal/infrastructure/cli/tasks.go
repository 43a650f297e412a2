package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Inspect and move tasks",
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}

		tasks, err := services.Tasks.ListTasks()
		if err != nil {
			return err
		}
		if len(tasks) == 0 {
			fmt.Println("No tasks.")
			return nil
		}

		for _, t := range tasks {
			line := fmt.Sprintf("%s  [%s]  %s", t.ID, t.Status.DisplayName(), t.Title)
			if len(t.Tags) > 0 {
				line += "  (" + strings.Join(t.Tags, ", ") + ")"
			}
			fmt.Println(line)
		}
		return nil
	},
}

var tasksMoveCmd = &cobra.Command{
	Use:   "move <task-id> <event>",
	Short: "Apply a lifecycle event (start, block, unblock, complete, cancel, stop, reopen)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}

		if err := services.Tasks.TransitionTask(args[0], args[1]); err != nil {
			return err
		}
		if err := services.Sync.PlaceTasks(); err != nil {
			return err
		}

		task, err := services.Tasks.GetTask(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Task %s is now %s\n", task.ID, task.Status.DisplayName())
		return nil
	},
}

func init() {
	tasksCmd.AddCommand(tasksListCmd)
	tasksCmd.AddCommand(tasksMoveCmd)
	RootCmd.AddCommand(tasksCmd)
}
