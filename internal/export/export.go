package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"entity-extractor/internal/extract"
)

// Format is an output encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
	FormatMermaid Format = "mermaid"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatYAML, FormatMsgpack, FormatMermaid}

// ParseFormat returns the format named s. "yml", "mp" and "mmd" are
// accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "msgpack", "mp":
		return FormatMsgpack, nil
	case "mermaid", "mmd":
		return FormatMermaid, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want one of %s)", s, FormatNames())
	}
}

// FormatNames returns the supported format names, comma separated.
func FormatNames() string {
	names := make([]string, 0, len(Formats))
	for _, f := range Formats {
		names = append(names, string(f))
	}

	return strings.Join(names, ", ")
}

// Encode writes res to w in the given format.
func Encode(w io.Writer, res *extract.Result, format Format) error {
	if res == nil {
		return errors.New("result is nil")
	}

	switch format {
	case FormatJSON:
		return encodeJSON(w, res)
	case FormatYAML:
		return encodeYAML(w, res)
	case FormatMsgpack:
		return encodeMsgpack(w, res)
	case FormatMermaid:
		return encodeMermaid(w, res)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func encodeJSON(w io.Writer, res *extract.Result) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}

	return nil
}

func encodeYAML(w io.Writer, res *extract.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}

	return enc.Close()
}
