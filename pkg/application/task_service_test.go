package application_test

import (
	"testing"

	"github.com/felixgeelhaar/courtside/pkg/domain/tracker"
)

func TestTaskService_TransitionTask(t *testing.T) {
	repo, taskSvc, _ := newWorkspace(t, []tracker.Task{
		{ID: "1", Title: "Design System", Status: tracker.StatusPending},
	})

	if err := taskSvc.TransitionTask("1", "start"); err != nil {
		t.Fatalf("TransitionTask failed: %v", err)
	}

	doc, err := repo.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks failed: %v", err)
	}
	if doc.Tasks[0].Status != tracker.StatusInProgress {
		t.Errorf("status = %s, want in_progress", doc.Tasks[0].Status)
	}
	if doc.Tasks[0].UpdatedAt.IsZero() {
		t.Error("UpdatedAt should be set after a transition")
	}
}

func TestTaskService_TransitionTaskInvalidEvent(t *testing.T) {
	repo, taskSvc, _ := newWorkspace(t, []tracker.Task{
		{ID: "1", Title: "Design System", Status: tracker.StatusPending},
	})

	if err := taskSvc.TransitionTask("1", "complete"); err == nil {
		t.Error("expected error for complete from pending")
	}

	doc, err := repo.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks failed: %v", err)
	}
	if doc.Tasks[0].Status != tracker.StatusPending {
		t.Errorf("rejected transition should not persist, got %s", doc.Tasks[0].Status)
	}
}

func TestTaskService_TransitionTaskNotFound(t *testing.T) {
	_, taskSvc, _ := newWorkspace(t, nil)

	if err := taskSvc.TransitionTask("404", "start"); err == nil {
		t.Error("expected error for unknown task")
	}
}

func TestTaskService_GetTask(t *testing.T) {
	_, taskSvc, _ := newWorkspace(t, []tracker.Task{
		{ID: "1", Title: "Design System", Status: tracker.StatusPending},
	})

	task, err := taskSvc.GetTask("1")
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if task.Title != "Design System" {
		t.Errorf("unexpected task: %+v", task)
	}

	if _, err := taskSvc.GetTask("404"); err == nil {
		t.Error("expected error for unknown task")
	}
}

func TestTaskService_ReplaceTask(t *testing.T) {
	repo, taskSvc, _ := newWorkspace(t, []tracker.Task{
		{ID: "1", Title: "Design System", Status: tracker.StatusPending},
	})

	updated := tracker.Task{ID: "1", Title: "Design System", Status: tracker.StatusDone}
	if err := taskSvc.ReplaceTask(updated); err != nil {
		t.Fatalf("ReplaceTask failed: %v", err)
	}

	doc, err := repo.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks failed: %v", err)
	}
	if doc.Tasks[0].Status != tracker.StatusDone {
		t.Errorf("status = %s, want done", doc.Tasks[0].Status)
	}
}

func TestTaskService_LinkTask(t *testing.T) {
	repo, taskSvc, _ := newWorkspace(t, []tracker.Task{
		{ID: "1", Title: "Design System", Status: tracker.StatusPending},
	})

	ref := tracker.IssueRef{ID: "1", Number: 7, URL: "https://example.test/7"}
	if err := taskSvc.LinkTask("1", ref); err != nil {
		t.Fatalf("LinkTask failed: %v", err)
	}

	state, err := repo.LoadState()
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	if state.Refs["1"].URL != "https://example.test/7" {
		t.Errorf("unexpected ref: %+v", state.Refs["1"])
	}
	if state.UpdatedAt.IsZero() {
		t.Error("state UpdatedAt should be set")
	}
}
