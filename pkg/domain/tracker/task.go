package tracker

import "time"

// Task is a unit of work owned by the local tracking side. Tasks are
// created once and mutated as work progresses; cancellation is a status,
// not a removal.
type Task struct {
	ID          string       `json:"id" yaml:"id"`
	Title       string       `json:"title" yaml:"title"`
	Description string       `json:"description" yaml:"description"`
	Details     string       `json:"details,omitempty" yaml:"details,omitempty"`
	Status      TaskStatus   `json:"status" yaml:"status"`
	Priority    TaskPriority `json:"priority" yaml:"priority"`
	DependsOn   []string     `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
	SubItems    []SubItem    `json:"subtasks,omitempty" yaml:"subtasks,omitempty"`
	Tags        []string     `json:"tags,omitempty" yaml:"tags,omitempty"`
	UpdatedAt   time.Time    `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// SubItem is a checklist entry nested under a task. Its ID is of the form
// "<parent>.<index>" and stays stable for the task's lifetime.
type SubItem struct {
	ID     string        `json:"id" yaml:"id"`
	Title  string        `json:"title" yaml:"title"`
	Status SubItemStatus `json:"status" yaml:"status"`
}

type SubItemStatus string

const (
	SubItemPending    SubItemStatus = "pending"
	SubItemInProgress SubItemStatus = "in_progress"
	SubItemDone       SubItemStatus = "done"
)

// HasTag reports whether the task carries the given free-form tag.
func (t Task) HasTag(tag string) bool {
	for _, have := range t.Tags {
		if have == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the task so callers can derive updated
// records without mutating the snapshot they were handed.
func (t Task) Clone() Task {
	out := t
	if t.DependsOn != nil {
		out.DependsOn = append([]string(nil), t.DependsOn...)
	}
	if t.SubItems != nil {
		out.SubItems = append([]SubItem(nil), t.SubItems...)
	}
	if t.Tags != nil {
		out.Tags = append([]string(nil), t.Tags...)
	}
	return out
}
