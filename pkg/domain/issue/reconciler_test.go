package issue_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/courtside/pkg/domain/issue"
	"github.com/felixgeelhaar/courtside/pkg/domain/tracker"
)

func openIssue(labels ...issue.Label) *issue.Issue {
	return &issue.Issue{
		ID:        "1",
		Number:    1,
		Title:     "Issue",
		State:     issue.StateOpen,
		Labels:    labels,
		UpdatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestApplyTaskStatus_InProgress(t *testing.T) {
	r := issue.NewStatusReconcilerAt(fixedClock)

	got := r.ApplyTaskStatus(openIssue(), tracker.Task{ID: "1", Status: tracker.StatusInProgress})

	if got.State != issue.StateOpen {
		t.Errorf("expected open, got %s", got.State)
	}
	if got.StatusLabel() != issue.StatusLabelInProgress {
		t.Errorf("expected %s, got %q", issue.StatusLabelInProgress, got.StatusLabel())
	}
	if !got.UpdatedAt.Equal(fixedClock()) {
		t.Error("expected updated_at refresh on change")
	}
}

func TestApplyTaskStatus_DoneClosesRegardlessOfPriorState(t *testing.T) {
	r := issue.NewStatusReconcilerAt(fixedClock)
	task := tracker.Task{ID: "1", Status: tracker.StatusDone}

	for _, state := range []issue.IssueState{issue.StateOpen, issue.StateClosed} {
		src := openIssue()
		src.State = state
		got := r.ApplyTaskStatus(src, task)
		if got.State != issue.StateClosed {
			t.Errorf("from %s: expected closed, got %s", state, got.State)
		}
		if got.StatusLabel() != issue.StatusLabelCompleted {
			t.Errorf("from %s: expected completed label, got %q", state, got.StatusLabel())
		}
	}
}

func TestApplyTaskStatus_ReplacesStatusLabel(t *testing.T) {
	r := issue.NewStatusReconcilerAt(fixedClock)
	src := openIssue(
		issue.NewLabel(issue.StatusLabelInProgress),
		issue.Label{Name: "help wanted", Color: "008672"},
	)

	got := r.ApplyTaskStatus(src, tracker.Task{ID: "1", Status: tracker.StatusDone})

	count := 0
	for _, l := range got.Labels {
		if l.Name == issue.StatusLabelInProgress || l.Name == issue.StatusLabelCompleted {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one status label, got labels %+v", got.Labels)
	}
	if !got.HasLabel("help wanted") {
		t.Error("free label must be preserved")
	}
}

func TestApplyTaskStatus_NoOpStatuses(t *testing.T) {
	r := issue.NewStatusReconcilerAt(fixedClock)
	before := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, status := range []tracker.TaskStatus{tracker.StatusPending, tracker.StatusBlocked, tracker.StatusCancelled} {
		src := openIssue(issue.Label{Name: "bug", Color: "d73a4a"})
		got := r.ApplyTaskStatus(src, tracker.Task{ID: "1", Status: status})

		if got.State != issue.StateOpen {
			t.Errorf("%s: state changed to %s", status, got.State)
		}
		if got.StatusLabel() != "" {
			t.Errorf("%s: status label added: %q", status, got.StatusLabel())
		}
		if !got.UpdatedAt.Equal(before) {
			t.Errorf("%s: updated_at refreshed without a change", status)
		}
	}
}

func TestApplyTaskStatus_DoesNotMutateInput(t *testing.T) {
	r := issue.NewStatusReconcilerAt(fixedClock)
	src := openIssue(issue.Label{Name: "bug", Color: "d73a4a"})

	_ = r.ApplyTaskStatus(src, tracker.Task{ID: "1", Status: tracker.StatusDone})

	if src.State != issue.StateOpen {
		t.Error("input issue state mutated")
	}
	if len(src.Labels) != 1 || src.Labels[0].Name != "bug" {
		t.Errorf("input issue labels mutated: %+v", src.Labels)
	}
}

func TestApplyIssueToTask_ClosedOverridesLabels(t *testing.T) {
	r := issue.NewStatusReconcilerAt(fixedClock)
	src := openIssue(issue.NewLabel(issue.StatusLabelInProgress))
	src.State = issue.StateClosed

	got := r.ApplyIssueToTask(tracker.Task{ID: "1", Status: tracker.StatusPending}, src)
	if got.Status != tracker.StatusDone {
		t.Errorf("expected done for closed issue, got %s", got.Status)
	}
	if !got.UpdatedAt.Equal(fixedClock()) {
		t.Error("expected updated_at refresh on change")
	}
}

func TestApplyIssueToTask_StatusLabels(t *testing.T) {
	r := issue.NewStatusReconcilerAt(fixedClock)

	got := r.ApplyIssueToTask(tracker.Task{ID: "1", Status: tracker.StatusPending},
		openIssue(issue.NewLabel(issue.StatusLabelInProgress)))
	if got.Status != tracker.StatusInProgress {
		t.Errorf("expected in_progress, got %s", got.Status)
	}

	got = r.ApplyIssueToTask(tracker.Task{ID: "1", Status: tracker.StatusPending},
		openIssue(issue.NewLabel(issue.StatusLabelCompleted)))
	if got.Status != tracker.StatusDone {
		t.Errorf("expected done, got %s", got.Status)
	}
}

func TestApplyIssueToTask_UnrecognizedLabelIsNoOp(t *testing.T) {
	r := issue.NewStatusReconcilerAt(fixedClock)
	src := openIssue(issue.Label{Name: "status:unknown", Color: "ededed"})

	task := tracker.Task{ID: "1", Status: tracker.StatusPending, UpdatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	got := r.ApplyIssueToTask(task, src)

	if got.Status != tracker.StatusPending {
		t.Errorf("unrecognized status label should leave status alone, got %s", got.Status)
	}
	if !got.UpdatedAt.Equal(task.UpdatedAt) {
		t.Error("updated_at refreshed without a change")
	}
}

func TestApplyIssueToTask_RefreshesSubItems(t *testing.T) {
	r := issue.NewStatusReconcilerAt(fixedClock)

	src := openIssue()
	src.Body = "## Subtasks\n\n- [x] 1.1: First\n- [ ] 1.2: Second\n"

	task := tracker.Task{
		ID:     "1",
		Status: tracker.StatusPending,
		SubItems: []tracker.SubItem{
			{ID: "1.1", Title: "First", Status: tracker.SubItemPending},
			{ID: "1.2", Title: "Second", Status: tracker.SubItemInProgress},
			{ID: "1.3", Title: "Not on the checklist", Status: tracker.SubItemInProgress},
		},
	}

	got := r.ApplyIssueToTask(task, src)

	if got.SubItems[0].Status != tracker.SubItemDone {
		t.Errorf("1.1 should be done, got %s", got.SubItems[0].Status)
	}
	if got.SubItems[1].Status != tracker.SubItemPending {
		t.Errorf("1.2 should be pending, got %s", got.SubItems[1].Status)
	}
	if got.SubItems[2].Status != tracker.SubItemInProgress {
		t.Errorf("1.3 has no checklist entry and must keep its status, got %s", got.SubItems[2].Status)
	}

	// Input untouched.
	if task.SubItems[0].Status != tracker.SubItemPending {
		t.Error("input task mutated")
	}
}

func TestExtractTaskRef(t *testing.T) {
	if got := issue.ExtractTaskRef("body\n---\ncourtside-id: 42\n"); got != "42" {
		t.Errorf("expected 42, got %q", got)
	}
	if got := issue.ExtractTaskRef("courtside-id: 7"); got != "7" {
		t.Errorf("expected 7 without trailing newline, got %q", got)
	}
	if got := issue.ExtractTaskRef("no marker here"); got != "" {
		t.Errorf("expected empty ref, got %q", got)
	}
}
