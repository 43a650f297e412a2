package tracker

import "time"

// SyncState records which external issue each task is linked to.
type SyncState struct {
	Refs      map[string]IssueRef `json:"refs"` // TaskID -> external issue
	UpdatedAt time.Time           `json:"updated_at"`
}

// IssueRef links a task to the issue that mirrors it in the external tracker.
type IssueRef struct {
	ID           string    `json:"id"`
	Number       int       `json:"number"`
	URL          string    `json:"url"`
	LastSyncedAt time.Time `json:"last_synced_at"`
}

func NewSyncState() *SyncState {
	return &SyncState{
		Refs:      make(map[string]IssueRef),
		UpdatedAt: time.Now(),
	}
}
