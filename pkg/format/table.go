package format

import (
	"strings"

	"github.com/yaklabco/gomdfmt/pkg/layout"
	"github.com/yaklabco/gomdfmt/pkg/mdast"
)

// minColumnWidth is the narrowest column of an aligned table, wide enough for
// every delimiter form.
const minColumnWidth = 3

// table lays out a GFM table with aligned columns, or with unpadded cells
// when the aligned rows do not fit.
func (f *Formatter) table(node *mdast.Node, ctx layout.Context, width, offset int) layout.Result {
	attrs := node.Block.Table
	if attrs == nil || attrs.Columns() == 0 || offset != ctx.BlockIndent() {
		return layout.None()
	}
	if f.dropsCells(node, ctx) {
		return layout.None()
	}

	cells := tableCells(attrs, ctx)
	indent := layout.Indent(ctx.BlockIndent())

	return layout.FirstFit(ctx, width, offset,
		func(_ layout.Context, width, _ int) layout.Result {
			rows := alignedRows(cells, attrs.Alignments)
			for _, row := range rows {
				if layout.Width(row) > width {
					return layout.None()
				}
			}
			return layout.Some(joinLines(rows, indent))
		},
		func(layout.Context, int, int) layout.Result {
			return layout.Some(joinLines(compactRows(cells, attrs.Alignments), indent))
		},
	)
}

// tableCells returns the text of the header row followed by the body rows.
// Every row has one cell per column.
func tableCells(attrs *mdast.TableAttrs, ctx layout.Context) [][]string {
	columns := attrs.Columns()
	read := func(segments []mdast.Segment) []string {
		row := make([]string, columns)
		for idx := range min(columns, len(segments)) {
			if seg := segments[idx]; seg.Start >= 0 {
				row[idx] = ctx.Snippet(seg.SourceRange)
			}
		}
		return row
	}

	rows := make([][]string, 0, len(attrs.Rows)+1)
	rows = append(rows, read(attrs.Header))
	for _, segments := range attrs.Rows {
		rows = append(rows, read(segments))
	}
	return rows
}

// dropsCells reports whether a source row holds more cells than the header.
// Markdown ignores the extra cells, so reformatting would delete them.
func (f *Formatter) dropsCells(node *mdast.Node, ctx layout.Context) bool {
	file := node.File
	if file == nil {
		return false
	}

	attrs := node.Block.Table
	first := file.LineIndex(node.Span.Start)

	check := func(lineIdx int, segments []mdast.Segment) bool {
		line := ctx.Snippet(file.LineSpan(lineIdx))
		lineStart := file.LineSpan(lineIdx).Start

		rest := line
		for idx := len(segments) - 1; idx >= 0; idx-- {
			if seg := segments[idx]; seg.Start >= 0 {
				rest = line[min(seg.End-lineStart, len(line)):]
				break
			}
		}
		return strings.Trim(rest, " \t|>") != ""
	}

	if check(first, attrs.Header) {
		return true
	}
	for idx, row := range attrs.Rows {
		if check(first+2+idx, row) {
			return true
		}
	}
	return false
}

func alignedRows(cells [][]string, alignments []mdast.Alignment) []string {
	widths := make([]int, len(alignments))
	for col := range widths {
		widths[col] = minColumnWidth
		for _, row := range cells {
			widths[col] = max(widths[col], layout.Width(row[col]))
		}
	}

	rows := make([]string, 0, len(cells)+1)
	for rowIdx, row := range cells {
		padded := make([]string, len(row))
		for col, cell := range row {
			padded[col] = pad(cell, widths[col], alignments[col])
		}
		rows = append(rows, "| "+strings.Join(padded, " | ")+" |")

		if rowIdx == 0 {
			delimiters := make([]string, len(alignments))
			for col, align := range alignments {
				delimiters[col] = delimiter(widths[col], align)
			}
			rows = append(rows, "| "+strings.Join(delimiters, " | ")+" |")
		}
	}
	return rows
}

func compactRows(cells [][]string, alignments []mdast.Alignment) []string {
	rows := make([]string, 0, len(cells)+1)
	for rowIdx, row := range cells {
		rows = append(rows, compactRow(row))
		if rowIdx == 0 {
			delimiters := make([]string, len(alignments))
			for col, align := range alignments {
				delimiters[col] = delimiter(minColumnWidth, align)
			}
			rows = append(rows, compactRow(delimiters))
		}
	}
	return rows
}

func compactRow(cells []string) string {
	var b strings.Builder
	b.WriteByte('|')
	for _, cell := range cells {
		if cell != "" {
			b.WriteByte(' ')
			b.WriteString(cell)
		}
		b.WriteString(" |")
	}
	return b.String()
}

// pad widens cell to width according to the column alignment.
func pad(cell string, width int, align mdast.Alignment) string {
	gap := width - layout.Width(cell)
	if gap <= 0 {
		return cell
	}

	switch align {
	case mdast.AlignRight:
		return layout.Indent(gap) + cell
	case mdast.AlignCenter:
		left := gap / 2
		return layout.Indent(left) + cell + layout.Indent(gap-left)
	case mdast.AlignNone, mdast.AlignLeft:
	}
	return cell + layout.Indent(gap)
}

// delimiter returns the delimiter row cell of a column.
func delimiter(width int, align mdast.Alignment) string {
	width = max(width, minColumnWidth)
	switch align {
	case mdast.AlignLeft:
		return ":" + strings.Repeat("-", width-1)
	case mdast.AlignRight:
		return strings.Repeat("-", width-1) + ":"
	case mdast.AlignCenter:
		return ":" + strings.Repeat("-", width-2) + ":"
	case mdast.AlignNone:
	}
	return strings.Repeat("-", width)
}
