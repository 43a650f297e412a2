package issue

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/felixgeelhaar/courtside/pkg/domain/tracker"
)

// Projector builds issue records from task records. It is the composition
// root of the engine: label classification, milestone classification, and
// the checklist codec all feed into it. Apart from reading the clock for
// timestamps it is a pure function of its inputs.
type Projector struct {
	now func() time.Time
}

func NewProjector() *Projector {
	return &Projector{now: time.Now}
}

// NewProjectorAt returns a projector that reads the given clock instead of
// time.Now. Used by tests and replay tooling.
func NewProjectorAt(now func() time.Time) *Projector {
	return &Projector{now: now}
}

// Project derives a fresh issue from the task. The only failure mode is a
// task identity that cannot be coerced to the numeric issue-number scheme;
// every optional field (tags, sub-items, dependencies, milestone entry)
// projects to well-defined output when absent.
func (p *Projector) Project(task tracker.Task, milestones MilestoneLookup) (*Issue, error) {
	number, err := strconv.Atoi(task.ID)
	if err != nil {
		return nil, fmt.Errorf("task id %q is not numeric: %w", task.ID, err)
	}

	classification := ClassifyLabels(task)
	labels := make([]Label, 0, len(classification.TechnologyLabels)+2)
	labels = append(labels, NewLabel(classification.PriorityLabel))
	for _, tech := range classification.TechnologyLabels {
		labels = append(labels, NewLabel(tech))
	}
	labels = append(labels, NewLabel(ProjectLabel))

	// Absent lookup entries yield no milestone, not an error.
	milestone := milestones[ClassifyMilestone(task)]

	now := p.now()
	return &Issue{
		ID:        task.ID,
		Number:    number,
		Title:     task.Title,
		Body:      buildBody(task),
		Labels:    labels,
		State:     StateOpen,
		Assignees: []string{},
		Milestone: milestone,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// buildBody assembles the issue body from fixed sections in fixed order.
// The description section is always present, even when empty; the others
// render only when they have content.
func buildBody(task tracker.Task) string {
	var b strings.Builder

	b.WriteString("## Description\n\n")
	b.WriteString(task.Description)
	b.WriteString("\n")

	if task.Details != "" {
		b.WriteString("\n## Details\n\n")
		b.WriteString(task.Details)
		b.WriteString("\n")
	}

	if len(task.SubItems) > 0 {
		b.WriteString("\n## Subtasks\n\n")
		b.WriteString(EncodeChecklist(task.SubItems))
		b.WriteString("\n")
	}

	if len(task.DependsOn) > 0 {
		b.WriteString("\n## Dependencies\n\n")
		// Dependency ids are opaque references; self-referential or cyclic
		// ids render like any other.
		for _, dep := range task.DependsOn {
			fmt.Fprintf(&b, "- Depends on #%s\n", dep)
		}
	}

	b.WriteString("\n---\n")
	b.WriteString(TaskRefMarker)
	b.WriteString(task.ID)
	b.WriteString("\n")

	return b.String()
}
