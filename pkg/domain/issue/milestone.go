package issue

import (
	"strings"

	"github.com/felixgeelhaar/courtside/pkg/domain/tracker"
)

// Delivery phase milestone titles.
const (
	MilestoneDesign      = "Design Phase"
	MilestonePolish      = "Polish Phase"
	MilestoneDevelopment = "Development Phase"
)

// ClassifyMilestone derives the milestone title for a task. Rules are
// evaluated in order and the first match wins: a task tagged both "design"
// and "testing" classifies as Design Phase. Every task classifies to
// something; Development Phase is the catch-all.
func ClassifyMilestone(task tracker.Task) string {
	title := strings.ToLower(task.Title)

	if task.HasTag("design") || task.HasTag("ux") || strings.Contains(title, "design") {
		return MilestoneDesign
	}
	if task.HasTag("testing") || strings.Contains(title, "testing") || strings.Contains(title, "polish") {
		return MilestonePolish
	}
	return MilestoneDevelopment
}
