package config

import (
	"errors"
	"fmt"
)

// ErrNoAllSection is returned by transforms that need the "all" section of
// a config document and cannot find it.
var ErrNoAllSection = errors.New(`config has no "all" section`)

// PathNotFoundError reports a configured path that does not exist on disk.
// Key is the configuration key the path came from, when one applies.
type PathNotFoundError struct {
	Key  string
	Path string
}

// Error implements the error interface.
func (e *PathNotFoundError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("for key %q: path %q does not exist", e.Key, e.Path)
	}
	return fmt.Sprintf("path %q does not exist", e.Path)
}

// FormatError reports template placeholder syntax that New cannot satisfy:
// either a placeholder it does not know or an unbalanced brace. Token holds
// the offending text and Offset its byte position in the template.
type FormatError struct {
	Token  string
	Offset int
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	switch e.Token {
	case "{", "}":
		return fmt.Sprintf("template has unmatched %q at offset %d", e.Token, e.Offset)
	default:
		return fmt.Sprintf("template placeholder %s at offset %d cannot be satisfied", e.Token, e.Offset)
	}
}
