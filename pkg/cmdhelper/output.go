package cmdhelper

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// OutputFormat is the rendering of a command result.
type OutputFormat string

const (
	OutputTable OutputFormat = "table"
	OutputJSON  OutputFormat = "json"
	OutputYAML  OutputFormat = "yaml"
)

// OutputFormats lists the supported output formats.
var OutputFormats = []OutputFormat{OutputTable, OutputJSON, OutputYAML}

// ParseOutputFormat returns the OutputFormat named s, case insensitive.
func ParseOutputFormat(s string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if format == "yml" {
		format = OutputYAML
	}
	if !lo.Contains(OutputFormats, format) {
		return "", fmt.Errorf("unsupported output format %q, oneof %v", s, OutputFormats)
	}
	return format, nil
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	data, err := PrettifyJSON(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// WriteYAML writes v as YAML.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// Write renders v in format. The table is built lazily since only the table
// format needs it.
func Write(w io.Writer, format OutputFormat, v any, tableFn func() *Table) error {
	switch format {
	case OutputJSON:
		return WriteJSON(w, v)
	case OutputYAML:
		return WriteYAML(w, v)
	case OutputTable, "":
		if tableFn == nil {
			return WriteJSON(w, v)
		}
		return tableFn().Render(w)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// NewTable returns a Table with the given column headers.
func NewTable(title string, headers ...string) *Table {
	return &Table{Title: title, Headers: headers}
}

// Table is a titled grid of cells.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// AddRow appends one row, every cell is formatted with [FormatCell].
func (t *Table) AddRow(cells ...any) *Table {
	t.Rows = append(t.Rows, lo.Map(cells, func(cell any, _ int) string {
		return FormatCell(cell)
	}))
	return t
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// Render writes the table with a normal border.
func (t *Table) Render(w io.Writer) error {
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(t.Headers...).
		Rows(t.Rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	if t.Title != "" {
		if _, err := fmt.Fprintln(w, titleStyle.Render(t.Title)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, tbl.String())
	return err
}

// FormatCell renders a decoded JSON value as one table cell. Objects and
// arrays are rendered as compact JSON.
func FormatCell(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case map[string]any, []any:
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprint(value)
		}
		return string(data)
	default:
		s, err := cast.ToStringE(value)
		if err != nil {
			return fmt.Sprint(value)
		}
		return s
	}
}
