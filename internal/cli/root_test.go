package cli

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

// executeCommand runs a command with the given args and captures output.
func executeCommand(args ...string) (string, error) {
	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRootHelp(t *testing.T) {
	_, err := executeCommand("--help")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDBFlag(t *testing.T) {
	root := NewRootCmd()

	dbFlag := root.PersistentFlags().Lookup("db")
	if dbFlag == nil {
		t.Fatal("expected --db flag to exist")
	}
}

func TestRootConfiguresLogging(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	t.Setenv("REALTY_DEV_MODE", "true")
	if _, err := executeCommand("version"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected debug logging after running in dev mode")
	}

	t.Setenv("REALTY_DEV_MODE", "false")
	if _, err := executeCommand("version"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected debug logging suppressed outside dev mode")
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand("version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, Version) {
		t.Errorf("output %q does not contain version %q", out, Version)
	}
}

func TestHashPasswordCommand(t *testing.T) {
	out, err := executeCommand("hash-password", "secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hash := strings.TrimSpace(out)
	if len(hash) != 128 {
		t.Errorf("hash length = %d, want 128", len(hash))
	}
}

func TestHashPasswordRequiresArg(t *testing.T) {
	if _, err := executeCommand("hash-password"); err == nil {
		t.Error("expected error without a password argument")
	}
}

func TestMigrateCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "realty.db")

	out, err := executeCommand("--db", path, "migrate")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "up to date") {
		t.Errorf("output = %q", out)
	}
}

func TestCleanupSessionsCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "realty.db")

	out, err := executeCommand("--db", path, "cleanup-sessions")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "removed 0 expired sessions") {
		t.Errorf("output = %q", out)
	}
}
