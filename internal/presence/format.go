package presence

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/longkey1/notion-presence/internal/hierarchy"
	"github.com/longkey1/notion-presence/internal/notion/types"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatText  OutputFormat = "text"
	FormatTable OutputFormat = "table"
)

const maxTitleWidth = 60

// ParseFormat validates a --format flag value
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case FormatJSON, FormatText, FormatTable:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want json, text or table)", s)
	}
}

// Formatter handles output formatting
type Formatter struct {
	format OutputFormat
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(format OutputFormat, writer io.Writer) *Formatter {
	return &Formatter{
		format: format,
		writer: writer,
	}
}

// FormatEntries formats a flattened page hierarchy. Table rows are
// numbered from 1 so a row can be picked by number.
func (f *Formatter) FormatEntries(entries []hierarchy.Entry, selectedID string) error {
	switch f.format {
	case FormatJSON:
		return f.formatJSON(entries)
	case FormatText:
		return f.formatEntriesText(entries, selectedID)
	default:
		return f.formatEntriesTable(entries, selectedID)
	}
}

// FormatPage formats a single resolved page
func (f *Formatter) FormatPage(page *types.PageRef) error {
	switch f.format {
	case FormatJSON:
		return f.formatJSON(map[string]string{
			"id":        page.ID,
			"title":     page.Title,
			"parent_id": page.ParentID,
		})
	case FormatText:
		fmt.Fprintf(f.writer, "Title: %s\n", page.Title)
		fmt.Fprintf(f.writer, "ID: %s\n", page.ID)
		fmt.Fprintf(f.writer, "Parent: %s\n", orNone(page.ParentID))
		return nil
	default:
		return f.printTable([]string{"Property", "Value"}, [][]string{
			{"Title", page.Title},
			{"ID", page.ID},
			{"Parent", orNone(page.ParentID)},
		})
	}
}

// formatJSON outputs as JSON
func (f *Formatter) formatJSON(v interface{}) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (f *Formatter) formatEntriesText(entries []hierarchy.Entry, selectedID string) error {
	for _, e := range entries {
		marker := " "
		if e.ID == selectedID {
			marker = "*"
		}
		fmt.Fprintf(f.writer, "%s %s  (%s)\n", marker, e.DisplayTitle(), e.ID)
	}
	return nil
}

func (f *Formatter) formatEntriesTable(entries []hierarchy.Entry, selectedID string) error {
	headers := []string{"#", "Title", "ID"}
	var rows [][]string

	for i, e := range entries {
		num := strconv.Itoa(i + 1)
		if e.ID == selectedID {
			num += "*"
		}
		rows = append(rows, []string{
			num,
			truncate(e.DisplayTitle(), maxTitleWidth),
			e.ID,
		})
	}

	return f.printTable(headers, rows)
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max-3]) + "..."
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

// printTable prints a simple table
func (f *Formatter) printTable(headers []string, rows [][]string) error {
	if len(headers) == 0 {
		return nil
	}

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if n := utf8.RuneCountInString(cell); i < len(widths) && n > widths[i] {
				widths[i] = n
			}
		}
	}

	f.printRow(headers, widths)
	f.printSeparator(widths)
	for _, row := range rows {
		f.printRow(row, widths)
	}

	return nil
}

// printRow prints a table row
func (f *Formatter) printRow(cells []string, widths []int) {
	for i, cell := range cells {
		if i < len(widths) {
			if i < len(cells)-1 {
				fmt.Fprintf(f.writer, "%-*s  ", widths[i], cell)
			} else {
				fmt.Fprint(f.writer, cell)
			}
		}
	}
	fmt.Fprintln(f.writer)
}

// printSeparator prints a table separator
func (f *Formatter) printSeparator(widths []int) {
	for i, w := range widths {
		fmt.Fprint(f.writer, strings.Repeat("-", w))
		if i < len(widths)-1 {
			fmt.Fprint(f.writer, "  ")
		}
	}
	fmt.Fprintln(f.writer)
}
