// Package output renders command results on stdout as YAML or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mj1618/desktop-relay/internal/model"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// Writer is where Print writes. Tests swap it for a buffer.
var Writer io.Writer = os.Stdout

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatYAML, FormatJSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported output format: %q (expected yaml or json)", s)
	}
}

// TreeResult is the output of the `read` command. Focused is the ID of the
// element holding keyboard focus in the unfiltered window tree.
type TreeResult struct {
	Window   string          `yaml:"window,omitempty"  json:"window,omitempty"`
	WindowID string          `yaml:"window_id"         json:"windowId"`
	TS       int64           `yaml:"ts"                json:"ts"`
	Count    int             `yaml:"count"             json:"count"`
	Focused  string          `yaml:"focused,omitempty" json:"focused,omitempty"`
	Elements []model.Element `yaml:"elements"          json:"elements"`
}

// FlatResult is the output of `read --flat`.
type FlatResult struct {
	Window   string              `yaml:"window,omitempty" json:"window,omitempty"`
	WindowID string              `yaml:"window_id"        json:"windowId"`
	TS       int64               `yaml:"ts"               json:"ts"`
	Elements []model.FlatElement `yaml:"elements"         json:"elements"`
}

// Print serializes v to Writer in the current output format.
func Print(v interface{}) error {
	return Fprint(Writer, OutputFormat, PrettyOutput, v)
}

// Fprint serializes v to w in format f.
func Fprint(w io.Writer, f Format, pretty bool, v interface{}) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, v, pretty)
	case FormatYAML:
		return writeYAML(w, v)
	default:
		return fmt.Errorf("unsupported output format: %s", f)
	}
}

func writeJSON(w io.Writer, v interface{}, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}
