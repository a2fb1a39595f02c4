package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/0xalexb/kvline/properties"
	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
	"golang.org/x/term"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatTOML = "toml"
)

var errUnknownFormat = errors.New("unknown output format")

func isFormat(name string) bool {
	switch name {
	case formatJSON, formatYAML, formatTOML:
		return true
	default:
		return false
	}
}

// writeProperties prints props in the given format. JSON is indented when w
// is a terminal.
func writeProperties(w io.Writer, props *properties.Properties, format string) error {
	switch format {
	case formatYAML:
		out, err := yaml.Marshal(props)
		if err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}

		_, err = w.Write(out)

		return err //nolint:wrapcheck // write errors are reported as is.
	case formatTOML:
		err := toml.NewEncoder(w).Encode(props.Map())
		if err != nil {
			return fmt.Errorf("encoding toml: %w", err)
		}

		return nil
	case formatJSON:
		return writeJSON(w, props)
	default:
		return fmt.Errorf("%w: %q", errUnknownFormat, format)
	}
}

func writeJSON(w io.Writer, props *properties.Properties) error {
	out, err := json.Marshal(props)
	if err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}

	if isTerminal(w) {
		var indented bytes.Buffer

		err = json.Indent(&indented, out, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}

		out = indented.Bytes()
	}

	_, err = fmt.Fprintf(w, "%s\n", out)

	return err //nolint:wrapcheck // write errors are reported as is.
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int.
}
