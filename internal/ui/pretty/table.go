package pretty

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// defaultTermWidth is used when the terminal width is unknown.
const defaultTermWidth = 100

// TableRow is one file in the status table.
type TableRow struct {
	File      string
	Status    Status
	Fallbacks int
	Additions int
	Deletions int
}

// TableFormatter formats per-file outcomes as a bordered table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a table formatter for a terminal termWidth
// columns wide; 0 or less uses a default width.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// FormatTable renders rows, or "" when there are none.
func (t *TableFormatter) FormatTable(rows []TableRow) string {
	if len(rows) == 0 {
		return ""
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(t.styles.TableBorder).
		Width(t.termWidth).
		Headers("FILE", "STATUS", "KEPT", "+", "-").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return t.styles.TableHeader
			}
			style := lipgloss.NewStyle().Padding(0, 1)
			if col == 1 {
				return t.styles.StatusStyle(rows[row].Status).Padding(0, 1)
			}
			if col > 1 {
				return style.Align(lipgloss.Right)
			}
			return style
		})

	for _, row := range rows {
		tbl.Row(
			row.File,
			string(row.Status),
			count(row.Fallbacks),
			count(row.Additions),
			count(row.Deletions),
		)
	}

	return tbl.Render() + "\n"
}

func count(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
