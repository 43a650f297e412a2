package application

import (
	"fmt"
	"sort"

	domainPlugin "github.com/felixgeelhaar/courtside/pkg/domain/plugin"
	"github.com/felixgeelhaar/courtside/pkg/domain/tracker"
	"github.com/felixgeelhaar/courtside/pkg/plugin"
)

// syncEvents maps an externally reported status to the lifecycle event that
// moves a task there. Statuses with no entry are ignored.
var syncEvents = map[tracker.TaskStatus]string{
	tracker.StatusInProgress: "start",
	tracker.StatusDone:       "complete",
}

// ColumnForStatus names the board column a task with the given status
// belongs in.
func ColumnForStatus(status tracker.TaskStatus) string {
	switch status {
	case tracker.StatusInProgress:
		return "In Progress"
	case tracker.StatusBlocked:
		return "Blocked"
	case tracker.StatusDone, tracker.StatusCancelled:
		return "Done"
	default:
		return "To Do"
	}
}

// SyncService pushes local tasks through a syncer plugin and folds the
// tracker's answers back into tasks, state, and board.
type SyncService struct {
	repo    Repository
	taskSvc *TaskService
	loader  *plugin.Loader
}

func NewSyncService(repo Repository, taskSvc *TaskService, loader *plugin.Loader) *SyncService {
	return &SyncService{
		repo:    repo,
		taskSvc: taskSvc,
		loader:  loader,
	}
}

// SyncWithPlugin resolves a registered plugin by name, starts it, and runs a
// full sync round against it.
func (s *SyncService) SyncWithPlugin(name string, config map[string]string) ([]string, error) {
	plugins, err := s.repo.LoadPlugins()
	if err != nil {
		return nil, fmt.Errorf("failed to load plugin registry: %w", err)
	}

	path, ok := plugins[name]
	if !ok {
		return nil, fmt.Errorf("plugin not registered: %s", name)
	}

	syncer, err := s.loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load plugin %s: %w", name, err)
	}

	return s.SyncWith(syncer, config)
}

// SyncWith runs one sync round: push the current tasks and state to the
// syncer, then apply the link and status updates it reports. Returns a
// human-readable line per applied change.
func (s *SyncService) SyncWith(syncer domainPlugin.Syncer, config map[string]string) ([]string, error) {
	if err := syncer.Init(config); err != nil {
		return nil, fmt.Errorf("failed to initialize plugin: %w", err)
	}

	doc, err := s.repo.LoadTasks()
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	state, err := s.repo.LoadState()
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}

	result, err := syncer.Sync(doc.Tasks, state)
	if err != nil {
		return nil, fmt.Errorf("sync failed: %w", err)
	}

	var messages []string

	for _, id := range sortedKeys(result.LinkUpdates) {
		ref := result.LinkUpdates[id]
		if err := s.taskSvc.LinkTask(id, ref); err != nil {
			messages = append(messages, fmt.Sprintf("link %s: %v", id, err))
			continue
		}
		messages = append(messages, fmt.Sprintf("linked task %s to issue #%d", id, ref.Number))
	}

	for _, id := range sortedKeys(result.StatusUpdates) {
		status := result.StatusUpdates[id]
		event, ok := syncEvents[status]
		if !ok {
			continue
		}
		if err := s.taskSvc.TransitionTask(id, event); err != nil {
			messages = append(messages, fmt.Sprintf("task %s: %v", id, err))
			continue
		}
		messages = append(messages, fmt.Sprintf("task %s -> %s", id, status))
	}

	for _, msg := range result.Errors {
		messages = append(messages, fmt.Sprintf("plugin: %s", msg))
	}

	if err := s.PlaceTasks(); err != nil {
		return messages, err
	}

	return messages, nil
}

// PlaceTasks moves every linked task's card to the column matching its
// current status.
func (s *SyncService) PlaceTasks() error {
	doc, err := s.repo.LoadTasks()
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	state, err := s.repo.LoadState()
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}
	b, err := s.repo.LoadBoard()
	if err != nil {
		return fmt.Errorf("failed to load board: %w", err)
	}

	for _, task := range doc.Tasks {
		ref, ok := state.Refs[task.ID]
		if !ok {
			continue
		}
		b = b.MoveCard(ref.Number, ColumnForStatus(task.Status))
	}

	return s.repo.SaveBoard(b)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
