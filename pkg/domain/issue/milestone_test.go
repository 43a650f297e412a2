package issue_test

import (
	"testing"

	"github.com/felixgeelhaar/courtside/pkg/domain/issue"
	"github.com/felixgeelhaar/courtside/pkg/domain/tracker"
)

func TestClassifyMilestone(t *testing.T) {
	cases := []struct {
		name string
		task tracker.Task
		want string
	}{
		{"design tag", tracker.Task{Tags: []string{"design"}}, issue.MilestoneDesign},
		{"ux tag", tracker.Task{Tags: []string{"ux"}}, issue.MilestoneDesign},
		{"design in title", tracker.Task{Title: "Redesign the onboarding flow"}, issue.MilestoneDesign},
		{"testing tag", tracker.Task{Tags: []string{"testing"}}, issue.MilestonePolish},
		{"testing in title", tracker.Task{Title: "Integration testing"}, issue.MilestonePolish},
		{"polish in title", tracker.Task{Title: "Polish the error messages"}, issue.MilestonePolish},
		{"untagged", tracker.Task{Title: "Implement the API"}, issue.MilestoneDevelopment},
		{"empty task", tracker.Task{}, issue.MilestoneDevelopment},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := issue.ClassifyMilestone(c.task); got != c.want {
				t.Errorf("expected %s, got %s", c.want, got)
			}
		})
	}
}

func TestClassifyMilestone_DesignWinsOverTesting(t *testing.T) {
	// First-match-wins precedence: design outranks testing.
	task := tracker.Task{Title: "Dual-tagged work", Tags: []string{"testing", "design"}}
	if got := issue.ClassifyMilestone(task); got != issue.MilestoneDesign {
		t.Errorf("expected %s for design+testing task, got %s", issue.MilestoneDesign, got)
	}
}
