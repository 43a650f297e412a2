package tracker

import (
	"encoding/json"
	"fmt"
)

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
	StatusBlocked    TaskStatus = "blocked"
	StatusCancelled  TaskStatus = "cancelled"
)

// validTransitions defines the allowed state transitions and their events.
// Map: currentStatus -> event -> targetStatus
var validTransitions = map[TaskStatus]map[string]TaskStatus{
	StatusPending: {
		"start":  StatusInProgress,
		"block":  StatusBlocked,
		"cancel": StatusCancelled,
	},
	StatusInProgress: {
		"complete": StatusDone,
		"block":    StatusBlocked,
		"stop":     StatusPending,
		"cancel":   StatusCancelled,
	},
	StatusBlocked: {
		"unblock": StatusPending,
		"cancel":  StatusCancelled,
	},
	StatusDone: {
		"reopen": StatusPending,
	},
	StatusCancelled: {
		"reopen": StatusPending,
	},
}

// AllTaskStatuses returns all valid task statuses.
func AllTaskStatuses() []TaskStatus {
	return []TaskStatus{
		StatusPending,
		StatusInProgress,
		StatusDone,
		StatusBlocked,
		StatusCancelled,
	}
}

// IsValid returns true if the status is a valid task status.
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDone, StatusBlocked, StatusCancelled:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status.
func (s TaskStatus) String() string {
	return string(s)
}

// IsComplete returns true if no further work is expected on the task.
func (s TaskStatus) IsComplete() bool {
	return s == StatusDone || s == StatusCancelled
}

// TransitionWith returns the target status for a given event, or an error if not allowed.
func (s TaskStatus) TransitionWith(event string) (TaskStatus, error) {
	transitions, ok := validTransitions[s]
	if !ok {
		return s, fmt.Errorf("no transitions defined for status: %s", s)
	}

	target, ok := transitions[event]
	if !ok {
		return s, fmt.Errorf("event '%s' not allowed from status '%s'", event, s)
	}

	return target, nil
}

// ValidEvents returns all valid events that can be triggered from this status.
func (s TaskStatus) ValidEvents() []string {
	transitions, ok := validTransitions[s]
	if !ok {
		return nil
	}

	var events []string
	for event := range transitions {
		events = append(events, event)
	}
	return events
}

// DisplayName returns a human-readable display name for the status.
func (s TaskStatus) DisplayName() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	case StatusBlocked:
		return "Blocked"
	case StatusCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

// ParseTaskStatus parses a string into a TaskStatus.
func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid task status: %s", s)
	}
	return status, nil
}

// MarshalJSON implements json.Marshaler interface.
func (s TaskStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

// UnmarshalJSON implements json.Unmarshaler interface.
func (s *TaskStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	// Accept empty string as pending for backward compatibility
	if str == "" {
		*s = StatusPending
		return nil
	}

	status := TaskStatus(str)
	if !status.IsValid() {
		return fmt.Errorf("invalid task status: %s", str)
	}

	*s = status
	return nil
}
