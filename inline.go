package mdh

import "strings"

// Inline parsing runs in two passes. Segmentation resolves backslash
// escapes and code spans first, so their content can never act as
// emphasis markers. Matching then folds star runs over an explicit frame
// stack; anything unmatched falls back to literal text.

type segKind uint8

const (
	segText segKind = iota
	segCode
	segBreak
	segStars
)

type inlineSegment struct {
	kind  segKind
	text  string
	stars int
}

func parseInlines(src string, maxDepth int) []Inline {
	if src == "" {
		return nil
	}
	var m inlineMatcher
	m.reset(maxDepth)
	for _, seg := range segmentInlines(src) {
		switch seg.kind {
		case segText:
			m.appendText(seg.text)
		case segCode:
			m.appendNode(Inline{Kind: inlineCode, Text: seg.text})
		case segBreak:
			m.appendNode(Inline{Kind: inlineBreak})
		case segStars:
			m.stars(seg.stars)
		}
	}
	return m.finish()
}

func segmentInlines(src string) []inlineSegment {
	var segs []inlineSegment
	var text []byte
	flush := func() {
		if len(text) > 0 {
			segs = append(segs, inlineSegment{kind: segText, text: string(text)})
			text = text[:0]
		}
	}
	i := 0
	for i < len(src) {
		switch c := src[i]; {
		case c == '\\' && i+1 < len(src) && isPunct(src[i+1]):
			text = append(text, src[i+1])
			i += 2
		case c == '`':
			n := tickRunLen(src, i)
			j := findTickRun(src, i+n, n)
			if j < 0 {
				text = append(text, src[i:i+n]...)
				i += n
				continue
			}
			flush()
			segs = append(segs, inlineSegment{kind: segCode, text: src[i+n : j]})
			i = j + n
		case c == '\n':
			flush()
			segs = append(segs, inlineSegment{kind: segBreak})
			i++
		case c == '*':
			n := i
			for n < len(src) && src[n] == '*' {
				n++
			}
			flush()
			segs = append(segs, inlineSegment{kind: segStars, stars: n - i})
			i = n
		default:
			text = append(text, c)
			i++
		}
	}
	flush()
	return segs
}

func tickRunLen(src string, i int) int {
	n := 0
	for i+n < len(src) && src[i+n] == '`' {
		n++
	}
	return n
}

// findTickRun locates the next backtick run of exactly n ticks. Code span
// content is matched on the raw text, so escapes inside it do not count.
func findTickRun(src string, from, n int) int {
	for i := from; i < len(src); {
		if src[i] != '`' {
			i++
			continue
		}
		l := tickRunLen(src, i)
		if l == n {
			return i
		}
		i += l
	}
	return -1
}

func isPunct(b byte) bool {
	switch {
	case b >= '!' && b <= '/':
		return true
	case b >= ':' && b <= '@':
		return true
	case b >= '[' && b <= '`':
		return true
	case b >= '{' && b <= '~':
		return true
	}
	return false
}

type inlineFrame struct {
	kind     inlineKind
	marker   string
	children []Inline
}

type inlineMatcher struct {
	frames   []inlineFrame
	maxDepth int
}

func (m *inlineMatcher) reset(maxDepth int) {
	m.frames = m.frames[:0]
	m.frames = append(m.frames, inlineFrame{})
	m.maxDepth = maxDepth
}

func (m *inlineMatcher) top() *inlineFrame {
	return &m.frames[len(m.frames)-1]
}

func (m *inlineMatcher) appendText(s string) {
	if s == "" {
		return
	}
	f := m.top()
	if n := len(f.children); n > 0 && f.children[n-1].Kind == inlineText {
		f.children[n-1].Text += s
		return
	}
	f.children = append(f.children, Inline{Kind: inlineText, Text: s})
}

func (m *inlineMatcher) appendNode(node Inline) {
	f := m.top()
	f.children = append(f.children, node)
}

func (m *inlineMatcher) open(kind inlineKind, marker string) bool {
	if len(m.frames) > m.maxDepth {
		return false
	}
	m.frames = append(m.frames, inlineFrame{kind: kind, marker: marker})
	return true
}

func (m *inlineMatcher) close() {
	f := m.frames[len(m.frames)-1]
	m.frames = m.frames[:len(m.frames)-1]
	parent := m.top()
	parent.children = append(parent.children, Inline{Kind: f.kind, Children: f.children})
}

// stars folds one star run into the frame stack. An emphasis frame closes
// on a single star, or eats the first star of a longer run when the
// enclosing frame is a strong that the remainder can also close; a strong
// frame closes on two. Remaining stars open new frames, two for strong,
// one for emphasis.
func (m *inlineMatcher) stars(n int) {
	for n > 0 {
		t := m.top()
		switch {
		case t.kind == inlineEmphasis && (n == 1 || (n >= 3 && m.parentStrong())):
			m.close()
			n--
		case t.kind == inlineStrong && n >= 2:
			m.close()
			n -= 2
		case n >= 2:
			if !m.open(inlineStrong, "**") {
				m.appendText(strings.Repeat("*", n))
				return
			}
			n -= 2
		default:
			if !m.open(inlineEmphasis, "*") {
				m.appendText("*")
				return
			}
			n--
		}
	}
}

func (m *inlineMatcher) parentStrong() bool {
	if len(m.frames) < 2 {
		return false
	}
	return m.frames[len(m.frames)-2].kind == inlineStrong
}

// finish literalizes every unclosed frame: its marker becomes text and
// its children splice back into the parent.
func (m *inlineMatcher) finish() []Inline {
	for len(m.frames) > 1 {
		f := m.frames[len(m.frames)-1]
		m.frames = m.frames[:len(m.frames)-1]
		m.appendText(f.marker)
		parent := m.top()
		parent.children = append(parent.children, f.children...)
	}
	return m.frames[0].children
}
