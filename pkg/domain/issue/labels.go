package issue

import (
	"strings"

	"github.com/felixgeelhaar/courtside/pkg/domain/tracker"
)

// ProjectLabel is attached to every projected issue so issues created by
// this engine can be told apart from hand-filed ones.
const ProjectLabel = "ny-knicks"

// Status label values maintained by the reconciler.
const (
	StatusLabelInProgress = "status:in-progress"
	StatusLabelCompleted  = "status:completed"
)

// priorityLabels maps task priorities to their managed label names.
var priorityLabels = map[tracker.TaskPriority]string{
	tracker.PriorityCritical: "priority:critical",
	tracker.PriorityHigh:     "priority:high",
	tracker.PriorityMedium:   "priority:medium",
	tracker.PriorityLow:      "priority:low",
}

// technologyVocabulary is the fixed set of technology keywords recognized in
// task content. Classification results follow this order, not input order.
var technologyVocabulary = []string{
	"typescript",
	"javascript",
	"python",
	"react",
	"docker",
	"postgres",
	"supabase",
	"qdrant",
}

// labelColors assigns display colors to engine-produced labels. Technology
// labels share one color; anything unlisted falls back to defaultLabelColor.
var labelColors = map[string]string{
	"priority:critical":   "b60205",
	"priority:high":       "d93f0b",
	"priority:medium":     "fbca04",
	"priority:low":        "0e8a16",
	StatusLabelInProgress: "1d76db",
	StatusLabelCompleted:  "0e8a16",
	ProjectLabel:          "5319e7",
}

const defaultLabelColor = "c5def5"

// Classification is the result of classifying a task's labels.
type Classification struct {
	PriorityLabel    string
	TechnologyLabels []string
}

// ClassifyLabels derives the managed priority label and the technology
// labels for a task. It is total: an unknown or missing priority classifies
// as medium, and a task with no recognizable technology yields an empty
// technology list.
func ClassifyLabels(task tracker.Task) Classification {
	priority, ok := priorityLabels[task.Priority]
	if !ok {
		priority = priorityLabels[tracker.PriorityMedium]
	}

	haystack := strings.ToLower(strings.Join(append([]string{
		task.Title,
		task.Description,
		task.Details,
	}, task.Tags...), " "))

	var techs []string
	for _, keyword := range technologyVocabulary {
		if strings.Contains(haystack, keyword) {
			techs = append(techs, keyword)
		}
	}

	return Classification{
		PriorityLabel:    priority,
		TechnologyLabels: techs,
	}
}

// NewLabel builds a label with its assigned display color.
func NewLabel(name string) Label {
	color, ok := labelColors[name]
	if !ok {
		color = defaultLabelColor
	}
	return Label{Name: name, Color: color}
}
