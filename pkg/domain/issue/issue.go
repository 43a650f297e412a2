// Package issue implements the reconciliation engine between locally owned
// task records and the issue records mirroring them in an external tracker.
// Every operation returns fresh copies; input records are never mutated.
package issue

import (
	"strings"
	"time"
)

type IssueState string

const (
	StateOpen   IssueState = "open"
	StateClosed IssueState = "closed"
)

// Managed label prefixes. Labels under these prefixes are fully owned by the
// engine and recomputed on every reconciliation; all other labels are free
// labels and must be preserved untouched.
const (
	PriorityLabelPrefix = "priority:"
	StatusLabelPrefix   = "status:"
)

// TaskRefMarker prefixes the footer line that links an issue body back to
// the task it was projected from.
const TaskRefMarker = "courtside-id: "

// Issue mirrors a task in the external tracker.
type Issue struct {
	ID        string     `json:"id"`
	Number    int        `json:"number"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Labels    []Label    `json:"labels"`
	State     IssueState `json:"state"`
	Assignees []string   `json:"assignees"`
	Milestone *Milestone `json:"milestone,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Label is keyed by name within an issue's label set.
type Label struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description,omitempty"`
}

// Milestone groups issues into a delivery phase. Milestones are provisioned
// externally; the engine only looks them up by title.
type Milestone struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	DueOn        *time.Time `json:"due_on,omitempty"`
	OpenIssues   int        `json:"open_issues"`
	ClosedIssues int        `json:"closed_issues"`
}

// MilestoneLookup maps milestone titles to milestones for one
// reconciliation run.
type MilestoneLookup map[string]*Milestone

// Clone returns a deep copy of the issue.
func (i *Issue) Clone() *Issue {
	out := *i
	if i.Labels != nil {
		out.Labels = append([]Label(nil), i.Labels...)
	}
	if i.Assignees != nil {
		out.Assignees = append([]string(nil), i.Assignees...)
	}
	return &out
}

// HasLabel reports whether the issue carries a label with the given name.
func (i *Issue) HasLabel(name string) bool {
	for _, l := range i.Labels {
		if l.Name == name {
			return true
		}
	}
	return false
}

// StatusLabel returns the issue's status:* label name, or "" if none.
// The engine maintains at most one.
func (i *Issue) StatusLabel() string {
	for _, l := range i.Labels {
		if strings.HasPrefix(l.Name, StatusLabelPrefix) {
			return l.Name
		}
	}
	return ""
}

// withStatusLabel returns the label set with every status:* label removed
// and the given label appended. Set difference then union keeps the
// at-most-one-status-label invariant structural.
func withStatusLabel(labels []Label, label Label) []Label {
	out := make([]Label, 0, len(labels)+1)
	for _, l := range labels {
		if strings.HasPrefix(l.Name, StatusLabelPrefix) {
			continue
		}
		out = append(out, l)
	}
	return append(out, label)
}

// ExtractTaskRef returns the task id embedded in an issue body via the
// TaskRefMarker footer, or "" if the body carries none.
func ExtractTaskRef(body string) string {
	idx := strings.Index(body, TaskRefMarker)
	if idx == -1 {
		return ""
	}
	remaining := body[idx+len(TaskRefMarker):]
	if nlIdx := strings.Index(remaining, "\n"); nlIdx != -1 {
		return strings.TrimSpace(remaining[:nlIdx])
	}
	return strings.TrimSpace(remaining)
}
