package config

import (
	"fmt"
	"io"
	"strings"
)

// Placeholder names the bundled template expects New to fill in.
const (
	placeholderProjectFp = "PROJECT_FP"
	placeholderVersion   = "SB_VERSION"
)

// New renders the config document for a new project. With a nil template
// the bundled default plus the config fragments of installed extensions is
// used; otherwise the reader's text stands alone. {PROJECT_FP} and
// {SB_VERSION} placeholders are replaced with the given values, taken
// literally. Any other placeholder, and any unbalanced brace, is a
// *FormatError.
func New(projectFp, version string, template io.Reader) (string, error) {
	var text string
	if template != nil {
		data, err := io.ReadAll(template)
		if err != nil {
			return "", fmt.Errorf("reading config template: %w", err)
		}
		text = string(data)
	} else {
		text = DefaultTemplate()
		fragments, err := NewExtensions().Config()
		if err != nil {
			return "", err
		}
		text += fragments
	}

	return substitute(text, map[string]string{
		placeholderProjectFp: projectFp,
		placeholderVersion:   version,
	})
}

// substitute replaces {NAME} placeholders in text with their values.
// Doubled braces escape to literal braces, matching the brace syntax the
// templates have always used; placeholders without a value and stray
// braces are reported rather than passed through.
func substitute(text string, values map[string]string) (string, error) {
	var out strings.Builder
	out.Grow(len(text))
	for i := 0; i < len(text); {
		switch text[i] {
		case '{':
			if i+1 < len(text) && text[i+1] == '{' {
				out.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(text[i:], '}')
			if end < 0 {
				return "", &FormatError{Token: "{", Offset: i}
			}
			name := text[i+1 : i+end]
			value, ok := values[name]
			if !ok {
				return "", &FormatError{Token: text[i : i+end+1], Offset: i}
			}
			out.WriteString(value)
			i += end + 1
		case '}':
			if i+1 < len(text) && text[i+1] == '}' {
				out.WriteByte('}')
				i += 2
				continue
			}
			return "", &FormatError{Token: "}", Offset: i}
		default:
			out.WriteByte(text[i])
			i++
		}
	}
	return out.String(), nil
}
