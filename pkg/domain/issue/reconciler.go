package issue

import (
	"time"

	"github.com/felixgeelhaar/courtside/pkg/domain/tracker"
)

// StatusReconciler maps lifecycle status between the two representations of
// a unit of work, in both directions. Inputs are treated as immutable
// snapshots; each direction returns an updated copy.
type StatusReconciler struct {
	now func() time.Time
}

func NewStatusReconciler() *StatusReconciler {
	return &StatusReconciler{now: time.Now}
}

// NewStatusReconcilerAt returns a reconciler reading the given clock.
func NewStatusReconcilerAt(now func() time.Time) *StatusReconciler {
	return &StatusReconciler{now: now}
}

// ApplyTaskStatus pushes the task's lifecycle status onto the issue:
//
//	in_progress -> open, status:in-progress
//	done        -> closed, status:completed
//	anything else leaves both the state and the status label alone.
//
// The status label update removes every existing status:* label before
// adding the new one; free labels are untouched. UpdatedAt is refreshed only
// when a field actually changed.
func (r *StatusReconciler) ApplyTaskStatus(source *Issue, task tracker.Task) *Issue {
	out := source.Clone()

	switch task.Status {
	case tracker.StatusInProgress:
		if out.StatusLabel() != StatusLabelInProgress {
			out.Labels = withStatusLabel(out.Labels, NewLabel(StatusLabelInProgress))
		}
	case tracker.StatusDone:
		out.State = StateClosed
		if out.StatusLabel() != StatusLabelCompleted {
			out.Labels = withStatusLabel(out.Labels, NewLabel(StatusLabelCompleted))
		}
	}

	if out.State != source.State || out.StatusLabel() != source.StatusLabel() {
		out.UpdatedAt = r.now()
	}
	return out
}

// ApplyIssueToTask pulls the issue's state back onto the task. A closed
// issue always means done, overriding any status label. Otherwise the
// status label decides; an unrecognized or missing label is a no-op, not an
// error. Sub-item statuses are refreshed independently from the body's
// checklist: sub-items with no matching checklist entry keep their status.
func (r *StatusReconciler) ApplyIssueToTask(task tracker.Task, source *Issue) tracker.Task {
	out := task.Clone()

	switch {
	case source.State == StateClosed:
		out.Status = tracker.StatusDone
	case source.StatusLabel() == StatusLabelInProgress:
		out.Status = tracker.StatusInProgress
	case source.StatusLabel() == StatusLabelCompleted:
		out.Status = tracker.StatusDone
	}

	completed := make(map[string]bool)
	for _, item := range DecodeChecklist(source.Body) {
		completed[item.ID] = item.Completed
	}
	changed := out.Status != task.Status
	for i, sub := range out.SubItems {
		done, ok := completed[sub.ID]
		if !ok {
			continue
		}
		status := tracker.SubItemPending
		if done {
			status = tracker.SubItemDone
		}
		if sub.Status != status {
			out.SubItems[i].Status = status
			changed = true
		}
	}

	if changed {
		out.UpdatedAt = r.now()
	}
	return out
}
