package cli

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/courtside/pkg/domain/issue"
	"github.com/spf13/cobra"
)

var issueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Work with projected issues",
}

var issuePreviewCmd = &cobra.Command{
	Use:   "preview <task-id>",
	Short: "Render the issue a task would be projected into",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}

		task, err := services.Tasks.GetTask(args[0])
		if err != nil {
			return err
		}

		milestones := issue.MilestoneLookup{
			issue.MilestoneDesign:      {Title: issue.MilestoneDesign},
			issue.MilestonePolish:      {Title: issue.MilestonePolish},
			issue.MilestoneDevelopment: {Title: issue.MilestoneDevelopment},
		}

		projected, err := issue.NewProjector().Project(task, milestones)
		if err != nil {
			return err
		}

		labels := make([]string, 0, len(projected.Labels))
		for _, l := range projected.Labels {
			labels = append(labels, l.Name)
		}

		fmt.Printf("Title:     %s\n", projected.Title)
		fmt.Printf("Labels:    %s\n", strings.Join(labels, ", "))
		fmt.Printf("Milestone: %s\n", projected.Milestone.Title)
		fmt.Printf("State:     %s\n\n", projected.State)
		fmt.Println(projected.Body)
		return nil
	},
}

func init() {
	issueCmd.AddCommand(issuePreviewCmd)
	RootCmd.AddCommand(issueCmd)
}
