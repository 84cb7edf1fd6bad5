package mdh

import "strings"

// Table assembly. A row candidate only becomes a table header once the
// next line is a delimiter row with the same cell count; until then the
// candidate is held pending and falls back to paragraph text.

type tableAssembler struct {
	pendingLine  string
	pendingCells []string
	node         *Block
}

func (t *tableAssembler) reset() {
	t.pendingLine = ""
	t.pendingCells = nil
	t.node = nil
}

func (t *tableAssembler) open() bool    { return t.node != nil }
func (t *tableAssembler) pending() bool { return t.pendingCells != nil }

// hold stores a header candidate until the next line confirms or rejects it.
func (t *tableAssembler) hold(line string) {
	t.pendingLine = line
	t.pendingCells = splitTableRow(line)
}

// confirm checks line as a delimiter row for the pending header. On match
// it returns the assembled table shell with alignments and header cells.
func (t *tableAssembler) confirm(line string, depth int) (*Block, bool) {
	if !hasUnescapedPipe(line) {
		return nil, false
	}
	aligns, ok := parseDelimiterRow(splitTableRow(line))
	if !ok || len(aligns) != len(t.pendingCells) {
		return nil, false
	}
	t.node = &Block{
		Kind:   blockTable,
		Aligns: aligns,
		Head:   makeCells(t.pendingCells, depth),
	}
	t.pendingLine = ""
	t.pendingCells = nil
	return t.node, true
}

// release abandons the pending header; the caller turns it back into
// paragraph text.
func (t *tableAssembler) release() string {
	line := t.pendingLine
	t.pendingLine = ""
	t.pendingCells = nil
	return line
}

// row consumes one body row. It reports false when the line is not a row
// candidate or its cell count differs from the header, which ends the
// table.
func (t *tableAssembler) row(line string, depth int) bool {
	if isBlank(line) || !hasUnescapedPipe(line) {
		return false
	}
	cells := splitTableRow(line)
	if len(cells) != len(t.node.Head) {
		return false
	}
	t.node.Rows = append(t.node.Rows, makeCells(cells, depth))
	return true
}

func (t *tableAssembler) close() {
	t.node = nil
}

func makeCells(texts []string, depth int) []Cell {
	cells := make([]Cell, len(texts))
	for i, text := range texts {
		cells[i] = Cell{Inlines: parseInlines(text, depth)}
	}
	return cells
}

// hasUnescapedPipe reports at least one '|' not preceded by an odd run of
// backslashes, the row-candidate test.
func hasUnescapedPipe(s string) bool {
	esc := false
	for i := 0; i < len(s); i++ {
		switch {
		case esc:
			esc = false
		case s[i] == '\\':
			esc = true
		case s[i] == '|':
			return true
		}
	}
	return false
}

// splitTableRow splits a row into trimmed cell texts. One leading and one
// trailing pipe are consumed as row borders; escaped pipes stay in the
// cell text for the inline parser to unescape.
func splitTableRow(s string) []string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "|") {
		s = s[1:]
	}
	if n := len(s); n > 0 && s[n-1] == '|' && !backslashEscaped(s, n-1) {
		s = s[:n-1]
	}
	var cells []string
	start := 0
	esc := false
	for i := 0; i < len(s); i++ {
		switch {
		case esc:
			esc = false
		case s[i] == '\\':
			esc = true
		case s[i] == '|':
			cells = append(cells, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
	}
	return append(cells, strings.TrimSpace(s[start:]))
}

func backslashEscaped(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// parseDelimiterRow parses a header delimiter row: every cell is a run of
// dashes optionally bounded by ':' on either side. ':---' aligns left,
// ':---:' center, '---:' right and '---' leaves the column unaligned.
func parseDelimiterRow(cells []string) ([]Alignment, bool) {
	if len(cells) == 0 {
		return nil, false
	}
	aligns := make([]Alignment, 0, len(cells))
	for _, cell := range cells {
		if cell == "" {
			return nil, false
		}
		left := strings.HasPrefix(cell, ":")
		right := len(cell) > 1 && strings.HasSuffix(cell, ":")
		dashes := cell
		if left {
			dashes = dashes[1:]
		}
		if right {
			dashes = dashes[:len(dashes)-1]
		}
		if dashes == "" {
			return nil, false
		}
		for i := 0; i < len(dashes); i++ {
			if dashes[i] != '-' {
				return nil, false
			}
		}
		switch {
		case left && right:
			aligns = append(aligns, alignCenter)
		case left:
			aligns = append(aligns, alignLeft)
		case right:
			aligns = append(aligns, alignRight)
		default:
			aligns = append(aligns, alignNone)
		}
	}
	return aligns, true
}
