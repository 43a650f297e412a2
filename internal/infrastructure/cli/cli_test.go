package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/courtside/pkg/storage"
)

func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	RootCmd.SetArgs(args)
	defer RootCmd.SetArgs(nil)
	return RootCmd.Execute()
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()

	if err := runCommand(t, "init", "--project", dir); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	dataDir := filepath.Join(dir, storage.CourtsideDir)
	for _, file := range []string{storage.TasksFile, storage.BoardFile} {
		if _, err := os.Stat(filepath.Join(dataDir, file)); err != nil {
			t.Errorf("expected %s after init: %v", file, err)
		}
	}

	if err := runCommand(t, "init", "--project", dir); err == nil {
		t.Error("expected error re-initializing an existing workspace")
	}
}

func TestTasksListBeforeInit(t *testing.T) {
	dir := t.TempDir()

	if err := runCommand(t, "tasks", "list", "--project", dir); err == nil {
		t.Error("expected error for uninitialized workspace")
	}
}

func TestBoardMoveUnknownColumn(t *testing.T) {
	dir := t.TempDir()

	if err := runCommand(t, "init", "--project", dir); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if err := runCommand(t, "board", "move", "7", "Nowhere", "--project", dir); err == nil {
		t.Error("expected error moving to an unknown column")
	}
}

func TestParseConfigFlags(t *testing.T) {
	config, err := parseConfigFlags([]string{"token=abc", "repo=owner/name"})
	if err != nil {
		t.Fatalf("parseConfigFlags failed: %v", err)
	}
	if config["token"] != "abc" || config["repo"] != "owner/name" {
		t.Errorf("unexpected config: %v", config)
	}

	if _, err := parseConfigFlags([]string{"no-equals"}); err == nil {
		t.Error("expected error for malformed pair")
	}
}
