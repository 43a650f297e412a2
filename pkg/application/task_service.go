package application

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/courtside/pkg/domain/board"
	"github.com/felixgeelhaar/courtside/pkg/domain/tracker"
	"github.com/felixgeelhaar/courtside/pkg/storage"
)

// Repository is the slice of the workspace the application services need.
type Repository interface {
	LoadTasks() (*storage.TaskDocument, error)
	SaveTasks(doc *storage.TaskDocument) error
	LoadBoard() (*board.Board, error)
	SaveBoard(b *board.Board) error
	LoadState() (*tracker.SyncState, error)
	SaveState(s *tracker.SyncState) error
	LoadPlugins() (map[string]string, error)
	SavePlugins(plugins map[string]string) error
}

// TaskService mutates the locally owned task records.
type TaskService struct {
	repo Repository
}

func NewTaskService(repo Repository) *TaskService {
	return &TaskService{repo: repo}
}

// ListTasks returns the current task snapshot.
func (s *TaskService) ListTasks() ([]tracker.Task, error) {
	doc, err := s.repo.LoadTasks()
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	return doc.Tasks, nil
}

// GetTask returns one task by id.
func (s *TaskService) GetTask(id string) (tracker.Task, error) {
	doc, err := s.repo.LoadTasks()
	if err != nil {
		return tracker.Task{}, fmt.Errorf("failed to load tasks: %w", err)
	}
	for _, t := range doc.Tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return tracker.Task{}, fmt.Errorf("task not found: %s", id)
}

// TransitionTask drives a task through its lifecycle machine with the given
// event and persists the result.
func (s *TaskService) TransitionTask(id, event string) error {
	doc, err := s.repo.LoadTasks()
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}

	for i, t := range doc.Tasks {
		if t.ID != id {
			continue
		}

		fsm, err := tracker.NewTaskStateMachine(t.Status, t.ID, nil)
		if err != nil {
			return fmt.Errorf("failed to build lifecycle machine: %w", err)
		}
		if err := fsm.Transition(event); err != nil {
			return err
		}

		doc.Tasks[i].Status = fsm.Current()
		doc.Tasks[i].UpdatedAt = time.Now()
		return s.repo.SaveTasks(doc)
	}

	return fmt.Errorf("task not found: %s", id)
}

// ReplaceTask swaps a reconciled task record into the document.
func (s *TaskService) ReplaceTask(task tracker.Task) error {
	doc, err := s.repo.LoadTasks()
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}

	for i, t := range doc.Tasks {
		if t.ID == task.ID {
			doc.Tasks[i] = task
			return s.repo.SaveTasks(doc)
		}
	}
	return fmt.Errorf("task not found: %s", task.ID)
}

// LinkTask records the external issue ref a task is mirrored by.
func (s *TaskService) LinkTask(id string, ref tracker.IssueRef) error {
	state, err := s.repo.LoadState()
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	state.Refs[id] = ref
	state.UpdatedAt = time.Now()
	return s.repo.SaveState(state)
}
