package mdh

import "strconv"

// htmlRenderer emits the compact fragment: a single append-only pass with
// no whitespace between tags. Literal text is escaped for '<', '>' and
// '&' only; attribute values additionally escape '"'.

type htmlRenderer struct {
	buf []byte
	cfg renderConfig
}

func (r *htmlRenderer) reset(cfg renderConfig) {
	r.buf = r.buf[:0]
	r.cfg = cfg
}

func (r *htmlRenderer) renderDocument(doc *Block) []byte {
	r.children(doc)
	return r.buf
}

func (r *htmlRenderer) renderBlock(s *Block) {
	switch s.Kind {
	case blockHeading:
		r.heading(s)
	case blockParagraph:
		r.raw("<p>")
		r.inlines(s.Inlines)
		r.raw("</p>")
	case blockThematicBreak:
		r.raw("<hr>")
	case blockList:
		r.list(s)
	case blockCode:
		r.code(s)
	case blockQuote:
		r.raw("<blockquote>")
		r.children(s)
		r.raw("</blockquote>")
	case blockTable:
		r.table(s)
	case blockContainer:
		r.container(s)
	case blockDocument:
		r.children(s)
	}
}

func (r *htmlRenderer) children(s *Block) {
	for _, child := range s.Children {
		r.renderBlock(child)
	}
}

func (r *htmlRenderer) heading(s *Block) {
	digit := byte('0' + s.Level)
	r.buf = append(r.buf, '<', 'h', digit)
	if r.cfg.headingIDs {
		r.raw(` id="`)
		r.buf = appendEscapedAttr(r.buf, plainText(s.Inlines))
		r.buf = append(r.buf, '"')
	}
	r.buf = append(r.buf, '>')
	r.inlines(s.Inlines)
	r.buf = append(r.buf, '<', '/', 'h', digit, '>')
}

func (r *htmlRenderer) list(s *Block) {
	if s.Ordered {
		if s.Start != 1 {
			r.raw(`<ol start="`)
			r.buf = strconv.AppendInt(r.buf, int64(s.Start), 10)
			r.raw(`">`)
		} else {
			r.raw("<ol>")
		}
	} else {
		r.raw("<ul>")
	}
	wrap := r.cfg.looseLists && s.Loose
	for _, item := range s.Children {
		r.raw("<li>")
		r.itemText(item, wrap)
		r.children(item)
		r.raw("</li>")
	}
	if s.Ordered {
		r.raw("</ol>")
	} else {
		r.raw("</ul>")
	}
}

// itemText renders a list item's own text. Tight items keep it bare so
// single-line items render as <li>text</li>; loose rendering wraps it in
// a paragraph.
func (r *htmlRenderer) itemText(item *Block, wrap bool) {
	if len(item.Inlines) == 0 {
		return
	}
	if wrap {
		r.raw("<p>")
		r.inlines(item.Inlines)
		r.raw("</p>")
		return
	}
	r.inlines(item.Inlines)
}

func (r *htmlRenderer) code(s *Block) {
	r.raw("<pre><code")
	if s.Lang != "" {
		r.raw(` class="language-`)
		r.buf = appendEscapedAttr(r.buf, s.Lang)
		r.buf = append(r.buf, '"')
	}
	r.buf = append(r.buf, '>')
	if s.Literal != "" {
		r.buf = appendEscapedText(r.buf, s.Literal)
		r.buf = append(r.buf, '\n')
	}
	r.raw("</code></pre>")
}

func (r *htmlRenderer) table(s *Block) {
	r.raw("<table><thead><tr>")
	for i := range s.Head {
		r.cell("th", s.Aligns, i, s.Head[i])
	}
	r.raw("</tr></thead><tbody>")
	for _, row := range s.Rows {
		r.raw("<tr>")
		for i := range row {
			r.cell("td", s.Aligns, i, row[i])
		}
		r.raw("</tr>")
	}
	r.raw("</tbody></table>")
}

func (r *htmlRenderer) cell(tag string, aligns []Alignment, i int, cell Cell) {
	r.buf = append(r.buf, '<')
	r.raw(tag)
	if i < len(aligns) {
		switch aligns[i] {
		case alignLeft:
			r.raw(` style="text-align:left"`)
		case alignCenter:
			r.raw(` style="text-align:center"`)
		case alignRight:
			r.raw(` style="text-align:right"`)
		}
	}
	r.buf = append(r.buf, '>')
	r.inlines(cell.Inlines)
	r.buf = append(r.buf, '<', '/')
	r.raw(tag)
	r.buf = append(r.buf, '>')
}

func (r *htmlRenderer) container(s *Block) {
	if s.Label == "" {
		r.raw("<div>")
	} else {
		r.raw(`<div class="`)
		r.buf = appendEscapedAttr(r.buf, s.Label)
		r.raw(`">`)
	}
	r.children(s)
	r.raw("</div>")
}

func (r *htmlRenderer) inlines(inlines []Inline) {
	for i := range inlines {
		in := &inlines[i]
		switch in.Kind {
		case inlineText:
			r.buf = appendEscapedText(r.buf, in.Text)
		case inlineEmphasis:
			r.raw("<i>")
			r.inlines(in.Children)
			r.raw("</i>")
		case inlineStrong:
			r.raw("<strong>")
			r.inlines(in.Children)
			r.raw("</strong>")
		case inlineCode:
			r.raw("<code>")
			r.buf = appendEscapedText(r.buf, in.Text)
			r.raw("</code>")
		case inlineBreak:
			r.raw("<br>")
		}
	}
}

func (r *htmlRenderer) raw(s string) {
	r.buf = append(r.buf, s...)
}

func appendEscapedText(dst []byte, s string) []byte {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '&':
			dst = append(dst, "&amp;"...)
		case '<':
			dst = append(dst, "&lt;"...)
		case '>':
			dst = append(dst, "&gt;"...)
		default:
			dst = append(dst, s[i])
		}
	}
	return dst
}

func appendEscapedAttr(dst []byte, s string) []byte {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '&':
			dst = append(dst, "&amp;"...)
		case '<':
			dst = append(dst, "&lt;"...)
		case '>':
			dst = append(dst, "&gt;"...)
		case '"':
			dst = append(dst, "&quot;"...)
		default:
			dst = append(dst, s[i])
		}
	}
	return dst
}
