package app

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// TestApp_New verifies app initialization.
func TestApp_New(t *testing.T) {
	app, err := New("1.0.0", "abc123", "2024-01-01", "test")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if app.Version() != "1.0.0" {
		t.Errorf("Version() = %s, want 1.0.0", app.Version())
	}
	if app.Commit() != "abc123" {
		t.Errorf("Commit() = %s, want abc123", app.Commit())
	}
	if app.Date() != "2024-01-01" {
		t.Errorf("Date() = %s, want 2024-01-01", app.Date())
	}
	if app.BuiltBy() != "test" {
		t.Errorf("BuiltBy() = %s, want test", app.BuiltBy())
	}
	if app.Logger() == nil {
		t.Error("Logger() returned nil")
	}
	if app.Config() == nil {
		t.Error("Config() returned nil")
	}
	if app.LogConfig() == nil {
		t.Error("LogConfig() returned nil")
	}
}

// TestApp_Options verifies functional options override defaults.
func TestApp_Options(t *testing.T) {
	config := &Config{Format: "yaml", LogFormat: "json", LogOutput: "discard"}
	logger := zerolog.Nop()

	app, err := New("dev", "unknown", "unknown", "unknown",
		WithConfig(config),
		WithLogger(&logger),
	)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if app.Config() != config {
		t.Error("WithConfig not applied")
	}
	if app.Logger() != &logger {
		t.Error("WithLogger not applied")
	}
	if app.OutputFormat() != "yaml" {
		t.Errorf("OutputFormat() = %s, want yaml", app.OutputFormat())
	}
}

// TestApp_VersionCommand verifies the version command output.
func TestApp_VersionCommand(t *testing.T) {
	app, err := New("2.3.4", "deadbeef", "2024-06-01", "goreleaser")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	cmd := app.CreateVersionCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"2.3.4", "deadbeef", "2024-06-01", "goreleaser"} {
		if !strings.Contains(out, want) {
			t.Errorf("version output missing %q:\n%s", want, out)
		}
	}
}

// TestApp_ExecuteHelp verifies the root command wires up and prints help.
func TestApp_ExecuteHelp(t *testing.T) {
	app, err := New("dev", "unknown", "unknown", "unknown")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if err := app.Execute(context.Background(), []string{"--help"}); err != nil {
		t.Fatalf("Execute(--help) failed: %v", err)
	}
}

// TestContextWithSignals verifies the signal context can be created and
// cancelled.
func TestContextWithSignals(t *testing.T) {
	ctx, cancel := ContextWithSignals(context.Background())
	if ctx == nil {
		t.Fatal("ContextWithSignals returned nil context")
	}

	cancel()
	select {
	case <-ctx.Done():
	default:
		t.Error("context not cancelled after cancel()")
	}
}
