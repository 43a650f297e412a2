package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/courtside/pkg/application"
	"github.com/felixgeelhaar/courtside/pkg/plugin"
	"github.com/felixgeelhaar/courtside/pkg/storage"
)

// appServices bundles the repository and services a command needs.
type appServices struct {
	Repo    *storage.FilesystemRepository
	Tasks   *application.TaskService
	Sync    *application.SyncService
	Plugins *application.PluginService
	Loader  *plugin.Loader
}

func getProjectRoot() (string, error) {
	if projectPath != "" {
		abs, err := filepath.Abs(projectPath)
		if err != nil {
			return "", fmt.Errorf("invalid project path %q: %w", projectPath, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return "", fmt.Errorf("project path %q: %w", abs, err)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("project path %q is not a directory", abs)
		}
		return abs, nil
	}
	return os.Getwd()
}

func loadServices() (*appServices, error) {
	root, err := getProjectRoot()
	if err != nil {
		return nil, err
	}

	repo := storage.NewFilesystemRepository(root)
	if !repo.IsInitialized() {
		return nil, fmt.Errorf("workspace not initialized, run 'courtside init' first")
	}

	loader := plugin.NewLoader()
	tasks := application.NewTaskService(repo)
	return &appServices{
		Repo:    repo,
		Tasks:   tasks,
		Sync:    application.NewSyncService(repo, tasks, loader),
		Plugins: application.NewPluginService(repo),
		Loader:  loader,
	}, nil
}
