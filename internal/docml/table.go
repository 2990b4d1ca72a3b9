package docml

import (
	"strings"

	"github.com/dgallion1/docml/internal/portabledoc"
)

// tableRowInner returns the text between the outer pipes of a trimmed
// "|...|" row. At least one character must sit between them.
func tableRowInner(line string) (string, bool) {
	if len(line) < 3 || line[0] != '|' || line[len(line)-1] != '|' {
		return "", false
	}
	return line[1 : len(line)-1], true
}

// parseTable consumes consecutive pipe rows. The first row becomes header
// cells, the rest data cells.
func parseTable(p *blockParser, c cursor) (portabledoc.Block, int, bool) {
	inner, ok := tableRowInner(c.text)
	if !ok {
		return nil, 0, false
	}
	rows := []portabledoc.TableRow{tableRow(inner, true)}
	next := c.pos + 1
	for ; next < len(p.lines); next++ {
		inner, ok := tableRowInner(trimSpace(p.lines[next]))
		if !ok {
			break
		}
		rows = append(rows, tableRow(inner, false))
	}
	return portabledoc.Table{Rows: rows}, next, true
}

func tableRow(inner string, header bool) portabledoc.TableRow {
	texts := SplitCells(inner)
	cells := make([]portabledoc.TableCell, 0, len(texts))
	for _, text := range texts {
		cells = append(cells, portabledoc.TableCell{Header: header, Content: Tokenize(text)})
	}
	return portabledoc.TableRow{Cells: cells}
}

// SplitCells splits the inner text of a table row on '|', ignoring pipes
// nested inside [...] so placeholders stay in one cell. Cells are trimmed;
// the segment after the last pipe is kept only when non-empty.
func SplitCells(inner string) []string {
	var (
		cells []string
		cur   strings.Builder
		depth int
	)
	for i := 0; i < len(inner); i++ {
		ch := inner[i]
		switch {
		case ch == '[':
			depth++
		case ch == ']':
			if depth > 0 {
				depth--
			}
		case ch == '|' && depth == 0:
			cells = append(cells, trimSpace(cur.String()))
			cur.Reset()
			continue
		}
		cur.WriteByte(ch)
	}
	if tail := trimSpace(cur.String()); tail != "" {
		cells = append(cells, tail)
	}
	return cells
}
