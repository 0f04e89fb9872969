// Package export writes a computed birthday window in one of the supported
// output formats.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/tartampluch/birthday-left/internal/config"
	"github.com/tartampluch/birthday-left/internal/engine"
	"github.com/tartampluch/birthday-left/internal/render"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for a format outside Formats().
var ErrUnknownFormat = errors.New(config.ErrUnknownFormat)

var formats = []string{config.FormatText, config.FormatJSON, config.FormatYAML, config.FormatICS}

// Formats lists the accepted format names.
func Formats() []string {
	return slices.Clone(formats)
}

// Supported reports whether format can be written.
func Supported(format string) bool {
	return slices.Contains(formats, format)
}

// Write renders c to w in the given format.
func Write(w io.Writer, format string, c *engine.Calculator) error {
	slog.Debug(config.MsgWriteOutput,
		config.LogKeyComponent, config.CompExport,
		config.LogKeyFormat, format,
	)

	var err error
	switch format {
	case config.FormatText:
		_, err = fmt.Fprintln(w, c.Pretty())
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", config.JSONIndent)
		if err = enc.Encode(c.Report()); err != nil {
			err = fmt.Errorf("%s: %w", config.ErrReportEncode, err)
		}
	case config.FormatYAML:
		err = writeYAML(w, c.Report())
	case config.FormatICS:
		err = writeICS(w, c, rendererFor(c))
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrWriteOutput, err)
	}
	return nil
}

func writeYAML(w io.Writer, report engine.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(len(config.JSONIndent))
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("%s: %w", config.ErrReportEncode, err)
	}
	return enc.Close()
}

func rendererFor(c *engine.Calculator) *render.Renderer {
	if c.Renderer != nil {
		return c.Renderer
	}
	return render.Default()
}
