package application

import (
	"fmt"

	"github.com/felixgeelhaar/courtside/pkg/plugin"
)

// PluginService manages the registry of syncer plugin binaries.
type PluginService struct {
	repo Repository
}

func NewPluginService(repo Repository) *PluginService {
	return &PluginService{repo: repo}
}

// RegisterPlugin records a plugin binary under a name. The binary must exist
// and be executable.
func (s *PluginService) RegisterPlugin(name, path string) error {
	if name == "" {
		return fmt.Errorf("plugin name cannot be empty")
	}
	if err := plugin.Validate(path); err != nil {
		return err
	}

	plugins, err := s.repo.LoadPlugins()
	if err != nil {
		return fmt.Errorf("failed to load plugin registry: %w", err)
	}
	plugins[name] = path
	return s.repo.SavePlugins(plugins)
}

// UnregisterPlugin removes a plugin from the registry.
func (s *PluginService) UnregisterPlugin(name string) error {
	plugins, err := s.repo.LoadPlugins()
	if err != nil {
		return fmt.Errorf("failed to load plugin registry: %w", err)
	}
	if _, ok := plugins[name]; !ok {
		return fmt.Errorf("plugin not registered: %s", name)
	}
	delete(plugins, name)
	return s.repo.SavePlugins(plugins)
}

// ListPlugins returns the registry (name -> binary path).
func (s *PluginService) ListPlugins() (map[string]string, error) {
	return s.repo.LoadPlugins()
}

// ValidatePlugin re-checks that a registered plugin's binary is still usable.
func (s *PluginService) ValidatePlugin(name string) error {
	plugins, err := s.repo.LoadPlugins()
	if err != nil {
		return fmt.Errorf("failed to load plugin registry: %w", err)
	}
	path, ok := plugins[name]
	if !ok {
		return fmt.Errorf("plugin not registered: %s", name)
	}
	return plugin.Validate(path)
}
