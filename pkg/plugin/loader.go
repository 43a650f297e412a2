// Package plugin loads syncer plugins as separate processes over net/rpc.
package plugin

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	domainPlugin "github.com/felixgeelhaar/courtside/pkg/domain/plugin"
	goplugin "github.com/hashicorp/go-plugin"
)

var HandshakeConfig = goplugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "COURTSIDE_PLUGIN",
	MagicCookieValue: "courtside",
}

var PluginMap = map[string]goplugin.Plugin{
	"syncer": &domainPlugin.SyncerPlugin{},
}

// Loader starts plugin binaries and keeps their client handles so they can
// be shut down together.
type Loader struct {
	clients map[string]*goplugin.Client
}

func NewLoader() *Loader {
	return &Loader{
		clients: make(map[string]*goplugin.Client),
	}
}

// Load validates the binary at path, starts it, and dispenses its syncer.
func (l *Loader) Load(path string) (domainPlugin.Syncer, error) {
	absPath, err := validateBinary(path)
	if err != nil {
		return nil, err
	}

	client := goplugin.NewClient(&goplugin.ClientConfig{
		HandshakeConfig: HandshakeConfig,
		Plugins:         PluginMap,
		Cmd:             exec.Command(absPath),
		AllowedProtocols: []goplugin.Protocol{
			goplugin.ProtocolNetRPC,
		},
	})

	rpcClient, err := client.Client()
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("failed to create plugin client: %w", err)
	}

	raw, err := rpcClient.Dispense("syncer")
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("failed to dispense plugin: %w", err)
	}

	l.clients[absPath] = client
	return raw.(domainPlugin.Syncer), nil
}

// Cleanup kills every plugin process started by this loader.
func (l *Loader) Cleanup() {
	for _, client := range l.clients {
		client.Kill()
	}
}

// Validate checks that path points at a usable plugin binary without
// starting it.
func Validate(path string) error {
	_, err := validateBinary(path)
	return err
}

// validateBinary refuses paths that are missing, directories, or (on Unix)
// not executable, before anything is exec'd.
func validateBinary(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid plugin path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("plugin not found: %s", absPath)
		}
		return "", fmt.Errorf("cannot access plugin: %w", err)
	}

	if info.IsDir() {
		return "", fmt.Errorf("plugin path is a directory: %s", absPath)
	}

	if runtime.GOOS != "windows" && info.Mode()&0111 == 0 {
		return "", fmt.Errorf("plugin is not executable: %s", absPath)
	}

	return absPath, nil
}
