// Package render formats decoded tracker responses for the terminal.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Supported output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Renderer turns a decoded JSON value into printable text.
type Renderer struct {
	format string
	indent bool
}

// New returns a renderer for format. indent only affects JSON output.
func New(format string, indent bool) (*Renderer, error) {
	switch format {
	case FormatJSON, FormatYAML:
	case "":
		format = FormatJSON
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
	return &Renderer{format: format, indent: indent}, nil
}

// Separator goes between a "METHOD: status" prefix and the rendered body.
// YAML starts on its own line.
func (r *Renderer) Separator() string {
	if r.format == FormatYAML {
		return "\n"
	}
	return " "
}

// Render formats body without a trailing newline. JSON keeps &, < and >
// as sent by the server.
func (r *Renderer) Render(body any) (string, error) {
	switch r.format {
	case FormatYAML:
		data, err := yaml.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("encoding yaml: %w", err)
		}
		return strings.TrimRight(string(data), "\n"), nil
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if r.indent {
			enc.SetIndent("", "  ")
		}
		if err := enc.Encode(body); err != nil {
			return "", fmt.Errorf("encoding json: %w", err)
		}
		return strings.TrimRight(buf.String(), "\n"), nil
	}
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
