package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/ATCHON/sunbeam/internal/config"
)

func TestSetVersion(t *testing.T) {
	// Test setting version
	testVersion := "1.2.3-test"
	originalVersion := rootCmd.Version
	defer func() { rootCmd.Version = originalVersion }()

	SetVersion(testVersion)

	if rootCmd.Version != testVersion {
		t.Errorf("Expected version to be %s, got %s", testVersion, rootCmd.Version)
	}

	if GetVersion() != testVersion {
		t.Errorf("Expected GetVersion to return %s, got %s", testVersion, GetVersion())
	}
}

func TestRootCommand(t *testing.T) {
	// Test root command properties
	if rootCmd.Use != "sunbeam" {
		t.Errorf("Expected Use to be 'sunbeam', got %s", rootCmd.Use)
	}

	if rootCmd.Short == "" {
		t.Error("Expected Short description to be set")
	}

	if rootCmd.Long == "" {
		t.Error("Expected Long description to be set")
	}

	if !rootCmd.SilenceUsage {
		t.Error("Expected SilenceUsage to be true")
	}
}

func TestVersionTemplate(t *testing.T) {
	// Create a new command to test version template
	testCmd := &cobra.Command{
		Use:     "test",
		Version: "1.0.0",
	}

	// Set the same version template as in Execute()
	testCmd.SetVersionTemplate(`{{printf "sunbeam version %s\n" .Version}}`)

	// Capture output
	var buf bytes.Buffer
	testCmd.SetOut(&buf)

	// Execute version command
	testCmd.SetArgs([]string{"--version"})
	err := testCmd.Execute()
	if err != nil {
		t.Fatalf("Error executing version command: %v", err)
	}

	output := buf.String()
	expected := "sunbeam version 1.0.0\n"
	if output != expected {
		t.Errorf("Expected output %q, got %q", expected, output)
	}
}

func TestGetExitCode(t *testing.T) {
	// A config referencing missing paths gets its own exit code so
	// pipeline wrappers can branch on it.
	pathErr := &config.PathNotFoundError{Key: "samplelist_fp", Path: "/nope/samples.csv"}
	if code := getExitCode(pathErr); code != ExitCodeConfigInvalid {
		t.Errorf("Expected exit code %d for a missing path, got %d", ExitCodeConfigInvalid, code)
	}

	// Wrapping must not hide the error type.
	wrapped := fmt.Errorf("config sunbeam_config.yml is not valid: %w", pathErr)
	if code := getExitCode(wrapped); code != ExitCodeConfigInvalid {
		t.Errorf("Expected exit code %d for a wrapped missing path, got %d", ExitCodeConfigInvalid, code)
	}

	if code := getExitCode(errors.New("boom")); code != ExitCodeError {
		t.Errorf("Expected exit code %d for a generic error, got %d", ExitCodeError, code)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	// The subcommands register themselves in their init functions.
	expected := []string{"init", "config", "check", "decontam", "version"}
	for _, name := range expected {
		found := false
		for _, sub := range rootCmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected root command to have subcommand %q", name)
		}
	}
}

func TestRootCommandHelp(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	defer rootCmd.SetOut(nil)
	defer rootCmd.SetErr(nil)

	rootCmd.SetArgs([]string{"--help"})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Error executing help: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "sunbeam") {
		t.Error("Help output should mention sunbeam")
	}
	if !strings.Contains(output, "Available Commands") {
		t.Error("Help output should list available commands")
	}
}
