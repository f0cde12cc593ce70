package pipeline

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"kosis-cpi/internal/model"
)

// --- ANSI color codes ---
const (
	colorReset = "\033[0m"
	colorCyan  = "\033[36m"
)

// Format selects how the projected table is printed
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
)

// ParseFormat validates an output format name. Empty means table.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported output format %q: use 'table', 'json' or 'csv'", s)
	}
}

// RenderOptions controls the export stage
type RenderOptions struct {
	Format Format
	// Color highlights the table header; only set it for terminals
	Color bool
}

// Render writes the table to w in the requested format
func Render(w io.Writer, t model.Table, opts RenderOptions) error {
	switch opts.Format {
	case "", FormatTable:
		return renderTable(w, t, opts.Color)
	case FormatJSON:
		return renderJSON(w, t)
	case FormatCSV:
		return renderCSV(w, t)
	default:
		return fmt.Errorf("unsupported output format %q", opts.Format)
	}
}

// renderTable prints a header line followed by one indexed line per row.
// An empty table still prints its header.
func renderTable(w io.Writer, t model.Table, color bool) error {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "\t"+strings.Join(t.Columns, "\t"))
	for i, row := range t.Rows {
		cells := make([]string, 0, len(t.Columns)+1)
		cells = append(cells, strconv.Itoa(i))
		for _, col := range t.Columns {
			cells = append(cells, sanitizeCell(cellString(row[col])))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to format table: %w", err)
	}

	out := buf.String()
	if color {
		// colour after alignment so escape codes don't count as cell width
		header, rest, _ := strings.Cut(out, "\n")
		out = colorCyan + header + colorReset + "\n" + rest
	}

	_, err := io.WriteString(w, out)
	return err
}

// renderJSON prints an array of objects whose keys follow the column order
func renderJSON(w io.Writer, t model.Table) error {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range t.Rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, col := range t.Columns {
			if j > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(col)
			if err != nil {
				return fmt.Errorf("failed to encode JSON: %w", err)
			}
			val, err := json.Marshal(row[col])
			if err != nil {
				return fmt.Errorf("failed to encode JSON: %w", err)
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	out.WriteByte('\n')

	_, err := w.Write(out.Bytes())
	return err
}

// renderCSV prints the header and every row as CSV
func renderCSV(w io.Writer, t model.Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range t.Rows {
		record := make([]string, len(t.Columns))
		for j, col := range t.Columns {
			record[j] = cellString(row[col])
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// cellString formats a decoded JSON value for text output.
// Nested values are printed as JSON; null prints as an empty cell.
func cellString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case map[string]interface{}, []interface{}:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func sanitizeCell(s string) string {
	return strings.NewReplacer("\t", " ", "\r", " ", "\n", " ").Replace(s)
}
