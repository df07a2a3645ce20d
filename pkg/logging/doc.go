// Package logging provides a structured logging system for sunbeam with
// level filtering and subsystem tagging.
//
// This package implements a logging system built on Go's standard slog
// package, providing consistent logging behavior with structured output
// and level filtering.
//
// # Log Levels
//   - **Debug**: Detailed information for debugging and development
//   - **Info**: General informational messages about application operation
//   - **Warn**: Warning messages that indicate potential issues
//   - **Error**: Error messages for failures and exceptional conditions
//
// # Structured Logging
//
// All log entries include:
//   - Timestamp
//   - Log level (Debug, Info, Warn, Error)
//   - Subsystem identifier for categorization
//   - Message content with optional formatting
//   - Optional error information
//
// # Usage Examples
//
//	import "github.com/ATCHON/sunbeam/pkg/logging"
//
//	// Initialize with Info level logging to stderr
//	logging.Init(logging.LevelInfo, os.Stderr)
//
//	// Log messages
//	logging.Info("Init", "Project created at %s", projectFp)
//	logging.Debug("Extensions", "Found config fragment for %s", name)
//	logging.Warn("Config", "Key %q not found in target, skipping", key)
//	logging.Error("Check", err, "Configuration is not valid")
//
// # Subsystem Organization
//
// Logs are organized by subsystem to enable filtering and categorization:
//
//   - **Init**: Project creation
//   - **Config**: Configuration parsing, validation and merging
//   - **Extensions**: Extension discovery and fragment aggregation
//   - **Decontam**: Alignment filtering
//   - **Check**: Configuration checking
//
// # Integration with slog
//
// The logging system integrates with Go's standard slog package:
//   - Uses slog.Handler implementations for output formatting
//   - Converts custom LogLevel to slog.Level for compatibility
//   - Provides fallback to global slog logger when needed
//
// Commands log to stderr so stdout stays reserved for command output
// (rendered configs, read identifiers) that callers may pipe elsewhere.
package logging
