package mdh

import "strings"

// The builder consumes classified lines and maintains the stack of open
// blocks, document at the bottom. Leaf state (an open paragraph, fence or
// table) is tracked beside the stack since at most one leaf is open at a
// time, always under the innermost open container.

type openBlock struct {
	node          *Block
	contentIndent int  // list item: column where its content begins
	pendingBlank  bool // list: blank line seen since the last item content
}

type paraState struct {
	active   bool
	itemName bool // paragraph is the direct text of a list item
	lines    []string
}

type fenceState struct {
	active bool
	ch     byte
	count  int
	node   *Block
	lines  []string
}

type builder struct {
	cfg      renderConfig
	doc      *Block
	stack    []openBlock
	para     paraState
	fence    fenceState
	table    tableAssembler
	overflow bool
}

func (b *builder) reset(cfg renderConfig) {
	b.cfg = cfg
	b.doc = &Block{Kind: blockDocument}
	b.stack = append(b.stack[:0], openBlock{node: b.doc})
	b.para = paraState{lines: b.para.lines[:0]}
	b.fence = fenceState{lines: b.fence.lines[:0]}
	b.table.reset()
	b.overflow = false
}

func (b *builder) top() *openBlock {
	return &b.stack[len(b.stack)-1]
}

// addLine feeds one line, terminator already stripped. Open containers are
// matched outermost to innermost; the first container the line fails to
// continue closes together with everything inside it, unless the line is a
// lazy continuation of an open paragraph.
func (b *builder) addLine(line string) {
	if b.fence.active {
		b.fenceLine(line)
		return
	}
	rest := line
	fail := len(b.stack)
	for i := 1; i < len(b.stack); i++ {
		ob := &b.stack[i]
		if ob.node.Kind == blockQuote {
			if r, ok := quoteMarker(rest); ok {
				rest = r
				continue
			}
			fail = i
			break
		}
		if ob.node.Kind == blockListItem {
			if isBlank(rest) {
				continue
			}
			if indent, _ := leadingIndentCount(rest); indent >= ob.contentIndent {
				rest = trimIndent(rest, ob.contentIndent)
				continue
			}
			fail = i
			break
		}
	}
	if fail < len(b.stack) {
		if b.para.active && isPlainText(rest) {
			b.para.lines = append(b.para.lines, strings.TrimSpace(rest))
			return
		}
		b.closeTo(fail)
	}
	b.classify(rest)
}

// classify interprets the residual text in the context of the surviving
// stack. Container markers push and loop so nested markers on one line
// resolve left to right; everything else is a leaf and returns.
func (b *builder) classify(rest string) {
	for {
		// A list is on top only right after one of its items closed: the
		// residual either starts a sibling item or closes the list too.
		if top := b.top(); top.node.Kind == blockList {
			indent, i := leadingIndentCount(rest)
			ordered, _, _, markerLen, padding, content, ok := parseListMarker(rest[i:])
			if ok && ordered == top.node.Ordered {
				if top.pendingBlank {
					top.node.Loose = true
				}
				b.clearListBlanks()
				b.push(&Block{Kind: blockListItem}, indent+markerLen+padding)
				rest = content
				continue
			}
			b.pop()
			continue
		}
		if b.table.open() {
			if b.table.row(rest, b.cfg.maxDepth) {
				b.clearListBlanks()
				return
			}
			mismatch := !isBlank(rest) && hasUnescapedPipe(rest)
			b.table.close()
			if mismatch {
				b.clearListBlanks()
				b.seedPara(rest)
				return
			}
			continue
		}
		if b.table.pending() {
			if node, ok := b.table.confirm(rest, b.cfg.maxDepth); ok {
				b.appendChild(node)
				b.clearListBlanks()
				return
			}
			b.seedPara(b.table.release())
			continue
		}
		if isBlank(rest) {
			b.closePara()
			b.markListBlanks()
			return
		}
		if ch, count, info, ok := parseFence(rest); ok {
			b.closePara()
			b.clearListBlanks()
			node := &Block{Kind: blockCode, Lang: info}
			b.appendChild(node)
			b.fence = fenceState{active: true, ch: ch, count: count, node: node, lines: b.fence.lines[:0]}
			return
		}
		if label, ok := parseContainerFence(rest); ok {
			b.closePara()
			if label == "" {
				if i := b.innermostContainer(); i >= 0 {
					b.closeTo(i)
					return
				}
			}
			b.clearListBlanks()
			if !b.canPush(1) {
				b.degrade(rest)
				return
			}
			b.push(&Block{Kind: blockContainer, Label: label}, 0)
			return
		}
		if isThematicBreak(rest) {
			b.closePara()
			b.clearListBlanks()
			b.appendChild(&Block{Kind: blockThematicBreak})
			return
		}
		if level, content, ok := parseHeading(rest); ok {
			b.closePara()
			b.clearListBlanks()
			b.appendChild(&Block{
				Kind:    blockHeading,
				Level:   level,
				Inlines: parseInlines(content, b.cfg.maxDepth),
			})
			return
		}
		indent, i := leadingIndentCount(rest)
		if ordered, _, num, markerLen, padding, content, ok := parseListMarker(rest[i:]); ok {
			b.closePara()
			b.clearListBlanks()
			if !b.canPush(2) {
				b.degrade(rest)
				return
			}
			list := &Block{Kind: blockList, Ordered: ordered}
			if ordered {
				list.Start = num
			}
			b.push(list, 0)
			b.push(&Block{Kind: blockListItem}, indent+markerLen+padding)
			rest = content
			continue
		}
		if r, ok := quoteMarker(rest); ok {
			b.closePara()
			b.clearListBlanks()
			if !b.canPush(1) {
				b.degrade(rest)
				return
			}
			b.push(&Block{Kind: blockQuote}, 0)
			rest = r
			continue
		}
		if !b.para.active && hasUnescapedPipe(rest) {
			b.clearListBlanks()
			b.table.hold(rest)
			return
		}
		b.clearListBlanks()
		if b.para.active {
			b.para.lines = append(b.para.lines, strings.TrimSpace(rest))
		} else {
			b.seedPara(rest)
		}
		return
	}
}

// fenceLine appends one literal line to the open fence, stripping the
// prefixes of enclosing containers best effort; a line without its prefix
// is taken wholesale. The fence closes on a run of at least the opening
// length of the same character with nothing after it.
func (b *builder) fenceLine(line string) {
	rest := line
	for i := 1; i < len(b.stack); i++ {
		ob := &b.stack[i]
		if ob.node.Kind == blockQuote {
			if r, ok := quoteMarker(rest); ok {
				rest = r
			}
			continue
		}
		if ob.node.Kind == blockListItem {
			if indent, _ := leadingIndentCount(rest); indent >= ob.contentIndent {
				rest = trimIndent(rest, ob.contentIndent)
			}
		}
	}
	if ch, count, info, ok := parseFence(rest); ok && ch == b.fence.ch && count >= b.fence.count && info == "" {
		b.closeFence()
		return
	}
	b.fence.lines = append(b.fence.lines, rest)
}

func (b *builder) closeFence() {
	b.fence.node.Literal = strings.Join(b.fence.lines, "\n")
	b.fence.active = false
	b.fence.node = nil
	b.fence.lines = b.fence.lines[:0]
}

func (b *builder) seedPara(line string) {
	top := b.top()
	b.para.active = true
	b.para.itemName = top.node.Kind == blockListItem &&
		top.node.Inlines == nil && len(top.node.Children) == 0
	b.para.lines = append(b.para.lines[:0], strings.TrimSpace(line))
}

func (b *builder) closePara() {
	if !b.para.active {
		return
	}
	inlines := parseInlines(strings.Join(b.para.lines, "\n"), b.cfg.maxDepth)
	top := b.top()
	if b.para.itemName {
		top.node.Inlines = inlines
	} else {
		top.node.Children = append(top.node.Children, &Block{Kind: blockParagraph, Inlines: inlines})
	}
	b.para.active = false
	b.para.itemName = false
	b.para.lines = b.para.lines[:0]
}

func (b *builder) closeLeaf() {
	if b.table.pending() {
		b.seedPara(b.table.release())
	}
	b.closePara()
	if b.table.open() {
		b.table.close()
	}
}

// closeTo closes the open leaf and every container at stack index i and
// above, innermost first.
func (b *builder) closeTo(i int) {
	b.closeLeaf()
	for len(b.stack) > i {
		b.pop()
	}
}

// push attaches node under the innermost open container and opens it.
func (b *builder) push(node *Block, contentIndent int) {
	b.appendChild(node)
	b.stack = append(b.stack, openBlock{node: node, contentIndent: contentIndent})
}

func (b *builder) pop() {
	b.stack = b.stack[:len(b.stack)-1]
}

func (b *builder) appendChild(node *Block) {
	top := b.top()
	top.node.Children = append(top.node.Children, node)
}

func (b *builder) canPush(n int) bool {
	return len(b.stack)+n <= b.cfg.maxDepth
}

// degrade records that the nesting cap was hit and keeps the line as
// paragraph text, marker included.
func (b *builder) degrade(rest string) {
	b.overflow = true
	if b.para.active {
		b.para.lines = append(b.para.lines, strings.TrimSpace(rest))
	} else {
		b.seedPara(rest)
	}
}

func (b *builder) innermostContainer() int {
	for i := len(b.stack) - 1; i >= 1; i-- {
		if b.stack[i].node.Kind == blockContainer {
			return i
		}
	}
	return -1
}

func (b *builder) markListBlanks() {
	for i := range b.stack {
		if b.stack[i].node.Kind == blockList {
			b.stack[i].pendingBlank = true
		}
	}
}

func (b *builder) clearListBlanks() {
	for i := range b.stack {
		if b.stack[i].node.Kind == blockList {
			b.stack[i].pendingBlank = false
		}
	}
}

// finish closes everything still open and returns the document. The tree
// is complete even when the nesting cap was exceeded; the error reports
// that some constructs were kept as paragraph text.
func (b *builder) finish() (*Block, error) {
	if b.fence.active {
		b.closeFence()
	}
	b.closeTo(1)
	if b.overflow {
		return b.doc, ErrNestingTooDeep
	}
	return b.doc, nil
}
