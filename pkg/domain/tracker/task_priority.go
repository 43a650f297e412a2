package tracker

import (
	"encoding/json"
	"fmt"
)

type TaskPriority string

const (
	PriorityCritical TaskPriority = "critical"
	PriorityHigh     TaskPriority = "high"
	PriorityMedium   TaskPriority = "medium"
	PriorityLow      TaskPriority = "low"
)

// priorityOrder defines the ordering of priorities (higher order = higher priority)
var priorityOrder = map[TaskPriority]int{
	PriorityLow:      1,
	PriorityMedium:   2,
	PriorityHigh:     3,
	PriorityCritical: 4,
}

// AllTaskPriorities returns all valid task priorities.
func AllTaskPriorities() []TaskPriority {
	return []TaskPriority{
		PriorityCritical,
		PriorityHigh,
		PriorityMedium,
		PriorityLow,
	}
}

// IsValid returns true if the priority is a valid task priority.
func (p TaskPriority) IsValid() bool {
	switch p {
	case PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// String returns the string representation of the priority.
func (p TaskPriority) String() string {
	return string(p)
}

// Order returns the numeric order of the priority (higher = more important).
func (p TaskPriority) Order() int {
	if order, ok := priorityOrder[p]; ok {
		return order
	}
	return 0
}

// IsHigherThan returns true if this priority is higher than the other.
func (p TaskPriority) IsHigherThan(other TaskPriority) bool {
	return p.Order() > other.Order()
}

// DisplayName returns a human-readable display name for the priority.
func (p TaskPriority) DisplayName() string {
	switch p {
	case PriorityCritical:
		return "Critical"
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	default:
		return string(p)
	}
}

// ParseTaskPriority parses a string into a TaskPriority.
func ParseTaskPriority(s string) (TaskPriority, error) {
	priority := TaskPriority(s)
	if !priority.IsValid() {
		return "", fmt.Errorf("invalid task priority: %s", s)
	}
	return priority, nil
}

// DefaultTaskPriority returns the default priority for new tasks.
func DefaultTaskPriority() TaskPriority {
	return PriorityMedium
}

// MarshalJSON implements json.Marshaler interface.
func (p TaskPriority) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(p))
}

// UnmarshalJSON implements json.Unmarshaler interface.
func (p *TaskPriority) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	// Accept empty string as medium for backward compatibility
	if str == "" {
		*p = PriorityMedium
		return nil
	}

	priority := TaskPriority(str)
	if !priority.IsValid() {
		return fmt.Errorf("invalid task priority: %s", str)
	}

	*p = priority
	return nil
}
