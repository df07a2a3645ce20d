// Package config provides configuration management for sunbeam.
//
// Sunbeam project configs are YAML documents whose top-level keys are
// pipeline sections (all, qc, blastdbs, mapping, ...). This package parses
// them into yaml.Node trees so that comments and key order survive a
// load-transform-dump round trip, and implements every transform the
// pipeline needs before a run can start.
//
// # Configuration Documents
//
// A config document is a mapping of sections. The "all" section is special:
// its "root" key anchors every relative path in the file, its "output_fp"
// names the run's output directory, and its "version" records the sunbeam
// release the file was written for.
//
//	all:
//	  root: "/home/user/projects/demo"
//	  output_fp: "sunbeam_output"
//	  version: "5.1.0"
//	qc:
//	  suffix: "qc"
//	  adapter_fp: "adapters.fa"
//
// # Transforms
//
// Transforms return values rather than mutating their inputs, except the
// Merge pair, which folds source mappings into its target and returns it:
//
//   - Parse / Dump: text to tree and back, comments preserved
//   - ValidatePaths / CheckConfig: resolve and verify every *_fp path
//   - Merge / MergeStrict: fold override mappings into a config
//   - Update / UpdateStrict: re-resolve a config file against overrides
//     and installed extensions
//   - New: render a fresh config from the bundled template
//   - CheckCompatibility: compare config and package major versions
//   - ProcessDatabases: expand a database spec into absolute index paths
//
// # Extensions
//
// Installed extensions contribute config fragments from
// $SUNBEAM_DIR/extensions/<name>/config.yml. The Extensions type discovers
// and aggregates them; Update and New fold the aggregate into their output.
//
// # Errors
//
// Failures callers are expected to branch on carry typed errors:
// *PathNotFoundError for paths that fail verification (the error names the
// offending key and path), *FormatError for template placeholders New
// cannot satisfy, and ErrNoAllSection when a document lacks the "all"
// section. Everything else is a wrapped error built with fmt.Errorf.
package config
