package mdh

import (
	"sort"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/indent"
)

// Layout describes the whitespace policy of an output format.
type Layout struct {
	// Indent is the number of spaces per nesting level.
	Indent int
	// Threshold is the display width in cells at which a block's inline
	// content moves onto its own indented line.
	Threshold int
	// Compact suppresses all inserted whitespace; Indent and Threshold
	// are ignored.
	Compact bool
}

// Format names a Layout for HTML output.
type Format interface {
	Name() string
	Layout() Layout
}

type format struct {
	name   string
	layout Layout
}

func (f format) Name() string   { return f.name }
func (f format) Layout() Layout { return f.layout }

// NewFormat returns a Format from a Layout definition.
func NewFormat(name string, layout Layout) Format {
	return format{name: name, layout: layout}
}

var builtinFormats = map[string]Format{
	"compact":  format{name: "compact", layout: Layout{Compact: true}},
	"indented": format{name: "indented", layout: Layout{Indent: 4, Threshold: 20}},
}

// AvailableFormats returns the names of built-in formats.
func AvailableFormats() []string {
	names := make([]string, 0, len(builtinFormats))
	for name := range builtinFormats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FormatByName returns a built-in format by name.
func FormatByName(name string) (Format, bool) {
	if name == "" {
		return builtinFormats["compact"], true
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	f, ok := builtinFormats[normalized]
	return f, ok
}

// DefaultFormat returns the compact format.
func DefaultFormat() Format {
	return builtinFormats["compact"]
}

// The indented layout keeps the same tag stream as the compact form but
// puts block children on their own indented lines. Short inline content
// stays on one line with its tags; content at or past the threshold
// breaks out. Code blocks pass through verbatim since reindenting would
// alter <pre> content.

type layoutRenderer struct {
	layout Layout
	cfg    renderConfig
	inline htmlRenderer
}

// layoutUnit is a rendered block as a sequence of segments. Verbatim
// segments hold <pre> spans and are never reindented, no matter how many
// wrapping levels enclose them; the indentation in front of a verbatim
// segment's first line rides in the neighboring plain segment.
type layoutUnit struct {
	segs []layoutSegment
}

type layoutSegment struct {
	text     string
	verbatim bool
}

func plainUnit(text string) layoutUnit {
	return layoutUnit{segs: []layoutSegment{{text: text}}}
}

func verbatimUnit(text string) layoutUnit {
	return layoutUnit{segs: []layoutSegment{{text: text, verbatim: true}}}
}

// plain appends text to the unit, extending the last segment unless it
// is verbatim.
func (u *layoutUnit) plain(s string) {
	if n := len(u.segs); n > 0 && !u.segs[n-1].verbatim {
		u.segs[n-1].text += s
		return
	}
	u.segs = append(u.segs, layoutSegment{text: s})
}

func (u layoutUnit) text() string {
	if len(u.segs) == 1 {
		return u.segs[0].text
	}
	var b strings.Builder
	for _, seg := range u.segs {
		b.WriteString(seg.text)
	}
	return b.String()
}

func renderLayout(doc *Block, layout Layout, cfg renderConfig) string {
	lr := layoutRenderer{layout: layout, cfg: cfg}
	lr.inline.reset(cfg)
	parts := make([]string, 0, len(doc.Children))
	for _, child := range doc.Children {
		parts = append(parts, lr.block(child).text())
	}
	return strings.Join(parts, "\n")
}

func (lr *layoutRenderer) block(s *Block) layoutUnit {
	switch s.Kind {
	case blockHeading:
		return lr.leaf(lr.headingOpen(s), headingClose(s), s.Inlines)
	case blockParagraph:
		return lr.leaf("<p>", "</p>", s.Inlines)
	case blockThematicBreak:
		return plainUnit("<hr>")
	case blockList:
		return lr.list(s)
	case blockCode:
		return verbatimUnit(lr.compactBlock(s))
	case blockQuote:
		return lr.wrap("<blockquote>", "</blockquote>", lr.blocks(s.Children))
	case blockTable:
		return lr.table(s)
	case blockContainer:
		return lr.wrap(containerOpen(s), "</div>", lr.blocks(s.Children))
	}
	return layoutUnit{}
}

func (lr *layoutRenderer) blocks(children []*Block) []layoutUnit {
	units := make([]layoutUnit, 0, len(children))
	for _, child := range children {
		units = append(units, lr.block(child))
	}
	return units
}

// leaf renders a block with inline content only. Content below the width
// threshold stays on the tag line.
func (lr *layoutRenderer) leaf(open, close string, inlines []Inline) layoutUnit {
	inner := lr.inlineHTML(inlines)
	if runewidth.StringWidth(inner) >= lr.layout.Threshold {
		return lr.wrap(open, close, []layoutUnit{plainUnit(inner)})
	}
	return plainUnit(open + inner + close)
}

func (lr *layoutRenderer) list(s *Block) layoutUnit {
	open, close := "<ul>", "</ul>"
	if s.Ordered {
		open, close = "<ol>", "</ol>"
		if s.Start != 1 {
			open = `<ol start="` + strconv.Itoa(s.Start) + `">`
		}
	}
	wrapText := lr.cfg.looseLists && s.Loose
	units := make([]layoutUnit, 0, len(s.Children))
	for _, item := range s.Children {
		units = append(units, lr.item(item, wrapText))
	}
	return lr.wrap(open, close, units)
}

func (lr *layoutRenderer) item(item *Block, wrapText bool) layoutUnit {
	text := lr.inlineHTML(item.Inlines)
	if wrapText && text != "" {
		text = "<p>" + text + "</p>"
	}
	if len(item.Children) == 0 {
		if runewidth.StringWidth(text) >= lr.layout.Threshold {
			return lr.wrap("<li>", "</li>", []layoutUnit{plainUnit(text)})
		}
		return plainUnit("<li>" + text + "</li>")
	}
	units := make([]layoutUnit, 0, len(item.Children)+1)
	if text != "" {
		units = append(units, plainUnit(text))
	}
	units = append(units, lr.blocks(item.Children)...)
	return lr.wrap("<li>", "</li>", units)
}

func (lr *layoutRenderer) table(s *Block) layoutUnit {
	headCells := make([]layoutUnit, 0, len(s.Head))
	for i := range s.Head {
		headCells = append(headCells, plainUnit(lr.cellHTML("th", s.Aligns, i, s.Head[i])))
	}
	head := lr.wrap("<thead>", "</thead>", []layoutUnit{lr.wrap("<tr>", "</tr>", headCells)})
	rows := make([]layoutUnit, 0, len(s.Rows))
	for _, row := range s.Rows {
		cells := make([]layoutUnit, 0, len(row))
		for i := range row {
			cells = append(cells, plainUnit(lr.cellHTML("td", s.Aligns, i, row[i])))
		}
		rows = append(rows, lr.wrap("<tr>", "</tr>", cells))
	}
	body := lr.wrap("<tbody>", "</tbody>", rows)
	return lr.wrap("<table>", "</table>", []layoutUnit{head, body})
}

// wrap places each unit on its own line, indented one level. Plain
// segments are indented per line; verbatim segments pass through at
// every level, with at most the pad in front of their first line when
// they open the unit. A plain segment after a verbatim one always
// starts with a newline, so the lazy indent never splices spaces into
// the middle of a line.
func (lr *layoutRenderer) wrap(open, close string, units []layoutUnit) layoutUnit {
	pad := lr.layout.Indent
	if pad < 0 {
		pad = 0
	}
	var out layoutUnit
	out.plain(open)
	for _, u := range units {
		out.plain("\n")
		for i, seg := range u.segs {
			if seg.verbatim {
				if i == 0 {
					out.plain(strings.Repeat(" ", pad))
				}
				out.segs = append(out.segs, seg)
				continue
			}
			out.plain(indent.String(seg.text, uint(pad)))
		}
	}
	out.plain("\n" + close)
	return out
}

func (lr *layoutRenderer) inlineHTML(inlines []Inline) string {
	lr.inline.buf = lr.inline.buf[:0]
	lr.inline.inlines(inlines)
	return string(lr.inline.buf)
}

func (lr *layoutRenderer) compactBlock(s *Block) string {
	lr.inline.buf = lr.inline.buf[:0]
	lr.inline.renderBlock(s)
	return string(lr.inline.buf)
}

func (lr *layoutRenderer) cellHTML(tag string, aligns []Alignment, i int, cell Cell) string {
	lr.inline.buf = lr.inline.buf[:0]
	lr.inline.cell(tag, aligns, i, cell)
	return string(lr.inline.buf)
}

func (lr *layoutRenderer) headingOpen(s *Block) string {
	lr.inline.buf = lr.inline.buf[:0]
	lr.inline.heading(&Block{Kind: blockHeading, Level: s.Level, Inlines: s.Inlines})
	full := string(lr.inline.buf)
	return full[:strings.IndexByte(full, '>')+1]
}

func headingClose(s *Block) string {
	return "</h" + string(byte('0'+s.Level)) + ">"
}

func containerOpen(s *Block) string {
	var b []byte
	if s.Label == "" {
		return "<div>"
	}
	b = append(b, `<div class="`...)
	b = appendEscapedAttr(b, s.Label)
	b = append(b, `">`...)
	return string(b)
}

