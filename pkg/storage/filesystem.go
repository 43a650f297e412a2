package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/felixgeelhaar/courtside/pkg/domain/board"
	"github.com/felixgeelhaar/courtside/pkg/domain/tracker"
	"github.com/felixgeelhaar/fortify/retry"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

const CourtsideDir = ".courtside"
const TasksFile = "tasks.yaml"
const BoardFile = "board.json"
const StateFile = "state.json"
const PluginsFile = "plugins.yaml"

// taskSchemaJSON guards the hand-editable tasks document. Statuses and
// priorities are validated here so a typo fails loudly at load time instead
// of silently classifying as a default downstream.
const taskSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["tasks"],
  "properties": {
    "tasks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "title"],
        "properties": {
          "id": { "type": "string" },
          "title": { "type": "string" },
          "description": { "type": "string" },
          "details": { "type": "string" },
          "status": { "enum": ["", "pending", "in_progress", "done", "blocked", "cancelled"] },
          "priority": { "enum": ["", "critical", "high", "medium", "low"] },
          "depends_on": { "type": "array", "items": { "type": "string" } },
          "tags": { "type": "array", "items": { "type": "string" } },
          "subtasks": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["id", "title"],
              "properties": {
                "id": { "type": "string", "pattern": "^[0-9]+\\.[0-9]+$" },
                "title": { "type": "string" },
                "status": { "enum": ["", "pending", "in_progress", "done"] }
              }
            }
          }
        }
      }
    }
  }
}`

var taskSchemaLoader = gojsonschema.NewStringLoader(taskSchemaJSON)

// TaskDocument is the on-disk shape of tasks.yaml.
type TaskDocument struct {
	Tasks []tracker.Task `json:"tasks" yaml:"tasks"`
}

type FilesystemRepository struct {
	root        string
	retryConfig retry.Config
}

func NewFilesystemRepository(root string) *FilesystemRepository {
	return &FilesystemRepository{
		root: root,
		retryConfig: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  10 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
		},
	}
}

// Root returns the workspace root directory.
func (r *FilesystemRepository) Root() string {
	return r.root
}

// DataDir returns the workspace data directory.
func (r *FilesystemRepository) DataDir() string {
	return filepath.Join(r.root, CourtsideDir)
}

// ResolvePath ensures the path is within the .courtside directory and prevents traversal.
func (r *FilesystemRepository) ResolvePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}

	baseDir := filepath.Join(r.root, CourtsideDir)
	cleanPath := filepath.Clean(filepath.Join(baseDir, filename))

	// Check for traversal and ensure it's a direct child
	if !strings.HasPrefix(cleanPath, baseDir) || filepath.Dir(cleanPath) != baseDir {
		return "", fmt.Errorf("invalid file path: %s", filename)
	}

	return cleanPath, nil
}

func (r *FilesystemRepository) Initialize() error {
	path := filepath.Join(r.root, CourtsideDir)
	if err := os.MkdirAll(path, 0700); err != nil {
		return fmt.Errorf("failed to create .courtside directory: %w", err)
	}
	return nil
}

func (r *FilesystemRepository) IsInitialized() bool {
	_, err := os.Stat(filepath.Join(r.root, CourtsideDir))
	return err == nil
}

func (r *FilesystemRepository) SaveTasks(doc *TaskDocument) error {
	path, err := r.ResolvePath(TasksFile)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal tasks: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

func (r *FilesystemRepository) LoadTasks() (*TaskDocument, error) {
	retryer := retry.New[*TaskDocument](r.retryConfig)

	return retryer.Do(context.Background(), func(ctx context.Context) (*TaskDocument, error) {
		path, err := r.ResolvePath(TasksFile)
		if err != nil {
			return nil, err
		}

		// #nosec G304 -- Path is resolved and validated via ResolvePath
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read tasks file: %w", err)
		}

		if err := validateTasksDocument(data); err != nil {
			return nil, err
		}

		var doc TaskDocument
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tasks: %w", err)
		}
		return &doc, nil
	})
}

// validateTasksDocument checks the raw yaml against the task schema before
// it is decoded into domain types.
func validateTasksDocument(data []byte) error {
	var generic map[string]interface{}
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return fmt.Errorf("tasks file is not valid yaml: %w", err)
	}

	asJSON, err := json.Marshal(generic)
	if err != nil {
		return fmt.Errorf("failed to convert tasks for validation: %w", err)
	}

	result, err := gojsonschema.Validate(taskSchemaLoader, gojsonschema.NewBytesLoader(asJSON))
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("invalid tasks document: %s", strings.Join(msgs, "; "))
	}
	return nil
}

func (r *FilesystemRepository) SaveBoard(b *board.Board) error {
	path, err := r.ResolvePath(BoardFile)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal board: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

func (r *FilesystemRepository) LoadBoard() (*board.Board, error) {
	path, err := r.ResolvePath(BoardFile)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- Path is resolved and validated via ResolvePath
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read board file: %w", err)
	}

	var b board.Board
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to unmarshal board: %w", err)
	}
	return &b, nil
}

func (r *FilesystemRepository) SaveState(s *tracker.SyncState) error {
	path, err := r.ResolvePath(StateFile)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sync state: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

func (r *FilesystemRepository) LoadState() (*tracker.SyncState, error) {
	path, err := r.ResolvePath(StateFile)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- Path is resolved and validated via ResolvePath
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return tracker.NewSyncState(), nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var s tracker.SyncState
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sync state: %w", err)
	}
	if s.Refs == nil {
		s.Refs = make(map[string]tracker.IssueRef)
	}
	return &s, nil
}

// SavePlugins persists the plugin registry (name -> binary path).
func (r *FilesystemRepository) SavePlugins(plugins map[string]string) error {
	path, err := r.ResolvePath(PluginsFile)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(plugins)
	if err != nil {
		return fmt.Errorf("failed to marshal plugins: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

func (r *FilesystemRepository) LoadPlugins() (map[string]string, error) {
	path, err := r.ResolvePath(PluginsFile)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- Path is resolved and validated via ResolvePath
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read plugins file: %w", err)
	}

	plugins := make(map[string]string)
	if err := yaml.Unmarshal(data, &plugins); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plugins: %w", err)
	}
	return plugins, nil
}
