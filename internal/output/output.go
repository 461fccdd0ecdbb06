// Package output renders compaction results. It supports the plain report
// (text), JSON, YAML and a table of groups.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"github.com/bimmerbailey/squash/internal/analyzer"
	"github.com/bimmerbailey/squash/internal/pattern"
	"github.com/bimmerbailey/squash/internal/preprocess"
)

// Format represents an output format type.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// Formats lists the accepted format names.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatTable}

// ParseFormat converts a string to a Format, defaulting to text.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "yaml", "yml":
		return FormatYAML
	case "table":
		return FormatTable
	default:
		return FormatText
	}
}

// IsStructured reports whether f is meant for machines rather than people.
func (f Format) IsStructured() bool {
	return f == FormatJSON || f == FormatYAML
}

// maxTemplateWidth bounds the template column of the table format, in cells.
const maxTemplateWidth = 80

// Result is one compaction ready to be written.
type Result struct {
	// Report is the rendered engine report including any binary images section.
	Report string `json:"-" yaml:"-"`

	Groups []*pattern.Group         `json:"patterns" yaml:"patterns"`
	Images *preprocess.BinaryImages `json:"binary_images,omitempty" yaml:"binary_images,omitempty"`
	Stats  analyzer.Stats           `json:"stats" yaml:"stats"`
}

// Writer handles writing formatted output.
type Writer struct {
	w      io.Writer
	format Format
	color  ColorMode
}

// New creates a new output Writer. Color applies to the text format only.
func New(w io.Writer, format Format, color ColorMode) *Writer {
	return &Writer{w: w, format: format, color: color}
}

// WriteResult writes res in the configured format. The text format writes
// nothing for an empty report.
func (wr *Writer) WriteResult(res Result) error {
	switch wr.format {
	case FormatJSON:
		if res.Groups == nil {
			res.Groups = []*pattern.Group{}
		}
		return wr.WriteJSON(res)
	case FormatYAML:
		return wr.WriteYAML(res)
	case FormatTable:
		return wr.writeTable(res)
	default:
		return wr.writeText(res.Report)
	}
}

// WriteJSON outputs any value as indented JSON.
func (wr *Writer) WriteJSON(v any) error {
	enc := json.NewEncoder(wr.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteYAML outputs any value as YAML.
func (wr *Writer) WriteYAML(v any) error {
	enc := yaml.NewEncoder(wr.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

// WriteText writes report followed by a newline, colored when the mode and
// destination allow it. An empty report writes nothing.
func (wr *Writer) WriteText(report string) error {
	return wr.writeText(report)
}

func (wr *Writer) writeText(report string) error {
	if report == "" {
		return nil
	}
	if shouldColorize(wr.color, wr.w) {
		report = ColorizeReport(report)
	}
	_, err := fmt.Fprintln(wr.w, report)
	return err
}

func (wr *Writer) writeTable(res Result) error {
	tw := tabwriter.NewWriter(wr.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COUNT\tSHARE\tTEMPLATE\tSAMPLES")
	fmt.Fprintln(tw, "-----\t-----\t--------\t-------")

	for _, g := range res.Groups {
		share := 0.0
		if res.Stats.InputLines > 0 {
			share = float64(g.Count) / float64(res.Stats.InputLines) * 100
		}
		fmt.Fprintf(tw, "%d\t%.1f%%\t%s\t%s\n",
			g.Count, share, truncate(g.Template, maxTemplateWidth), firstSamples(g))
	}

	if res.Images != nil && !res.Images.Empty() {
		fmt.Fprintf(tw, "-\t-\t%s\t%d app, %d system\n",
			preprocess.BinaryImagesHeader, len(res.Images.App), res.Images.System)
	}

	return tw.Flush()
}

// truncate shortens s to at most width terminal cells.
func truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}

// firstSamples renders the first sample of every placeholder.
func firstSamples(g *pattern.Group) string {
	var parts []string
	for i, s := range g.Samples {
		if len(s) > 0 {
			parts = append(parts, fmt.Sprintf("<%d>=%s", i, s[0]))
		}
	}
	return strings.Join(parts, " ")
}
