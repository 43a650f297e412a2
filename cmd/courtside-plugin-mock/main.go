package main

import (
	"log"

	domainPlugin "github.com/felixgeelhaar/courtside/pkg/domain/plugin"
	"github.com/felixgeelhaar/courtside/pkg/domain/tracker"
	infraPlugin "github.com/felixgeelhaar/courtside/pkg/plugin"
	"github.com/hashicorp/go-plugin"
)

// MockSyncer pretends to be a tracker: every unlinked task gets a fake
// issue ref, and every in-progress task is reported as completed upstream.
type MockSyncer struct{}

func (m *MockSyncer) Init(config map[string]string) error {
	return nil
}

func (m *MockSyncer) Sync(tasks []tracker.Task, state *tracker.SyncState) (*domainPlugin.SyncResult, error) {
	log.Printf("Received %d tasks", len(tasks))

	result := &domainPlugin.SyncResult{
		StatusUpdates: make(map[string]tracker.TaskStatus),
		LinkUpdates:   make(map[string]tracker.IssueRef),
	}

	next := len(state.Refs) + 1
	for _, t := range tasks {
		if _, ok := state.Refs[t.ID]; !ok {
			log.Printf("Simulating issue creation for task %s", t.ID)
			result.LinkUpdates[t.ID] = tracker.IssueRef{
				ID:     t.ID,
				Number: next,
				URL:    "mock://issues/" + t.ID,
			}
			next++
		}

		if t.Status == tracker.StatusInProgress {
			log.Printf("Simulating external completion of task %s", t.ID)
			result.StatusUpdates[t.ID] = tracker.StatusDone
		}
	}

	return result, nil
}

func (m *MockSyncer) Push(taskID string, status tracker.TaskStatus) error {
	log.Printf("Push %s -> %s", taskID, status)
	return nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: infraPlugin.HandshakeConfig,
		Plugins: map[string]plugin.Plugin{
			"syncer": &domainPlugin.SyncerPlugin{Impl: &MockSyncer{}},
		},
	})
}
