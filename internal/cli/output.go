package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/jacksmith/campus/internal/model"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// colorEnabled tracks whether color output is enabled.
// It follows terminal detection unless overridden with --no-color.
var colorEnabled = true

func init() {
	colorEnabled = IsTerminal(os.Stdout)
}

// SetColorEnabled allows overriding the color output setting.
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

// ColorEnabled returns whether color output is currently enabled.
func ColorEnabled() bool {
	return colorEnabled
}

// IsTerminal returns true if w is a terminal.
func IsTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

func paint(code, s string) string {
	if !colorEnabled {
		return s
	}
	return code + s + colorReset
}

// Green returns s wrapped in green ANSI codes if colors are enabled.
func Green(s string) string { return paint(colorGreen, s) }

// Red returns s wrapped in red ANSI codes if colors are enabled.
func Red(s string) string { return paint(colorRed, s) }

// Yellow returns s wrapped in yellow ANSI codes if colors are enabled.
func Yellow(s string) string { return paint(colorYellow, s) }

// Gray returns s wrapped in gray ANSI codes if colors are enabled.
func Gray(s string) string { return paint(colorGray, s) }

// Bold returns s wrapped in bold ANSI codes if colors are enabled.
func Bold(s string) string { return paint(colorBold, s) }

// CourseStatus renders a course status: open green, paused yellow, closed gray.
func CourseStatus(s model.CourseStatus) string {
	switch s {
	case model.CourseStatusOpen:
		return Green(string(s))
	case model.CourseStatusPaused:
		return Yellow(string(s))
	default:
		return Gray(string(s))
	}
}

// Pagination renders the footer of a paged list.
func Pagination(page, pages, total int) string {
	return Gray(fmt.Sprintf("page %d/%d (%d total)", page, pages, total))
}

// DefaultMaxTextWidth is the default maximum visible width for free text columns.
const DefaultMaxTextWidth = 50

// Table formats columnar output with automatic column width calculation.
type Table struct {
	header    []string
	rows      [][]string
	colWidths []int
	maxWidths map[int]int // optional per-column max visible width
}

// NewTable creates a new empty table.
func NewTable() *Table {
	return &Table{}
}

// SetMaxWidth sets the maximum visible width for a column.
// Content exceeding the limit is truncated with an ellipsis ("...").
func (t *Table) SetMaxWidth(col, maxWidth int) {
	if t.maxWidths == nil {
		t.maxWidths = make(map[int]int)
	}
	t.maxWidths[col] = maxWidth
}

// SetHeader sets the column titles, rendered bold above the rows.
func (t *Table) SetHeader(cols ...string) {
	t.header = cols
	t.track(cols)
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cols ...string) {
	t.track(cols)
	t.rows = append(t.rows, cols)
}

// Len returns the number of rows, not counting the header.
func (t *Table) Len() int {
	return len(t.rows)
}

// track widens the columns to fit cols.
func (t *Table) track(cols []string) {
	for len(t.colWidths) < len(cols) {
		t.colWidths = append(t.colWidths, 0)
	}
	for i, col := range cols {
		width := visibleWidth(col)
		if maxW, ok := t.maxWidths[i]; ok && width > maxW {
			width = maxW
		}
		t.colWidths[i] = max(t.colWidths[i], width)
	}
}

// Render writes the table to w with columns separated by two spaces.
func (t *Table) Render(w io.Writer) {
	if t.header != nil {
		t.renderRow(w, t.header, Bold)
	}
	for _, row := range t.rows {
		t.renderRow(w, row, nil)
	}
}

func (t *Table) renderRow(w io.Writer, row []string, style func(string) string) {
	parts := make([]string, len(row))
	for i, col := range row {
		if maxW, ok := t.maxWidths[i]; ok {
			col = Truncate(col, maxW)
		}
		if i < len(t.colWidths)-1 {
			col += strings.Repeat(" ", t.colWidths[i]-visibleWidth(col))
		}
		if style != nil {
			col = style(col)
		}
		parts[i] = col
	}
	fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
}

// Truncate returns s cut to maxWidth visible characters. If s is cut, "..."
// is appended within the limit, unless the limit is too small to hold it.
// ANSI escape codes are kept, and a reset is appended if any were seen.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if visibleWidth(s) <= maxWidth {
		return s
	}

	const ellipsis = "..."
	if maxWidth < len(ellipsis) {
		out, _ := cut(s, maxWidth)
		return out
	}
	out, hasAnsi := cut(s, maxWidth-len(ellipsis))
	out += ellipsis
	if hasAnsi {
		out += colorReset
	}
	return out
}

// cut returns the prefix of s with limit visible characters, keeping every
// escape sequence it passes.
func cut(s string, limit int) (string, bool) {
	var b strings.Builder
	visible := 0
	inEscape := false
	hasAnsi := false
	for _, r := range s {
		switch {
		case r == '\033':
			inEscape, hasAnsi = true, true
		case inEscape:
			inEscape = r != 'm'
		case visible >= limit:
			return b.String(), hasAnsi
		default:
			visible++
		}
		b.WriteRune(r)
	}
	return b.String(), hasAnsi
}

// visibleWidth returns the visible width of s, excluding ANSI escape codes.
func visibleWidth(s string) int {
	width := 0
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\033':
			inEscape = true
		case inEscape:
			inEscape = r != 'm'
		default:
			width++
		}
	}
	return width
}
