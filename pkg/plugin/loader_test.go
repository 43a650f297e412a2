package plugin

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func TestLoader_Full(t *testing.T) {
	tempDir := t.TempDir()

	// Build the mock plugin; skip when the toolchain is unavailable.
	pluginBin := filepath.Join(tempDir, "plugin.bin")
	cmd := exec.Command("go", "build", "-o", pluginBin, "../../cmd/courtside-plugin-mock")
	if err := cmd.Run(); err != nil {
		t.Skipf("Skipping full plugin test: build failed: %v", err)
		return
	}

	l := NewLoader()
	defer l.Cleanup()

	syncer, err := l.Load(pluginBin)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if syncer == nil {
		t.Fatal("Syncer is nil")
	}
	if err := syncer.Init(map[string]string{}); err != nil {
		t.Fatalf("Init over RPC failed: %v", err)
	}
}

func TestLoader_Init(t *testing.T) {
	l := NewLoader()
	if l == nil {
		t.Fatal("Loader is nil")
	}
	l.Cleanup()

	if HandshakeConfig.MagicCookieKey != "COURTSIDE_PLUGIN" {
		t.Errorf("wrong magic cookie key")
	}
}

func TestLoader_LoadError(t *testing.T) {
	l := NewLoader()
	_, err := l.Load("/invalid/path/999")
	if err == nil {
		t.Error("expected error for invalid plugin path")
	}
}

func TestLoader_LoadDirectory(t *testing.T) {
	tempDir := t.TempDir()
	l := NewLoader()
	_, err := l.Load(tempDir)
	if err == nil {
		t.Error("expected error for directory path")
	}
}

func TestLoader_LoadNonExecutable(t *testing.T) {
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "plugin")
	if err := os.WriteFile(filePath, []byte("not executable"), 0644); err != nil {
		t.Fatalf("create file: %v", err)
	}

	l := NewLoader()
	_, err := l.Load(filePath)
	if err == nil {
		t.Error("expected error for non-executable file")
	}
}
