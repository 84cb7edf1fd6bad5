package mdh

// Block is a node in the document tree. Kind selects the variant; fields
// that do not belong to the variant are zero.
type Block struct {
	Kind     blockKind
	Level    int    // heading level 1..6
	Ordered  bool   // list ordering
	Start    int    // ordered list start number
	Loose    bool   // list had a blank line between items
	Lang     string // fenced code info token
	Label    string // container label
	Literal  string // fenced code content, lines joined with newlines
	Inlines  []Inline
	Aligns   []Alignment
	Head     []Cell
	Rows     [][]Cell
	Children []*Block
}

// Cell is a single table cell.
type Cell struct {
	Inlines []Inline
}

// Inline is a span inside a leaf block's text.
type Inline struct {
	Kind     inlineKind
	Text     string // text runs and code span literals
	Children []Inline
}

type blockKind uint8

// BlockKind is the exported alias of blockKind for tooling and callers
// walking parsed trees.
type BlockKind = blockKind

const (
	blockDocument blockKind = iota
	blockHeading
	blockParagraph
	blockThematicBreak
	blockList
	blockListItem
	blockCode
	blockQuote
	blockTable
	blockContainer
)

const (
	// BlockDocument is the root of a parsed document.
	BlockDocument blockKind = blockDocument
	// BlockHeading is a heading with Level 1..6.
	BlockHeading blockKind = blockHeading
	// BlockParagraph is a paragraph of inline content.
	BlockParagraph blockKind = blockParagraph
	// BlockThematicBreak is a horizontal rule.
	BlockThematicBreak blockKind = blockThematicBreak
	// BlockList is an ordered or unordered list of items.
	BlockList blockKind = blockList
	// BlockListItem is one list item; Inlines holds the item text and
	// Children any nested blocks.
	BlockListItem blockKind = blockListItem
	// BlockCode is a fenced code block with literal content.
	BlockCode blockKind = blockCode
	// BlockQuote is a blockquote of nested blocks.
	BlockQuote blockKind = blockQuote
	// BlockTable is a table with a header row, body rows and column
	// alignments.
	BlockTable blockKind = blockTable
	// BlockContainer is a generic fenced container.
	BlockContainer blockKind = blockContainer
)

type inlineKind uint8

// InlineKind is the exported alias of inlineKind.
type InlineKind = inlineKind

const (
	inlineText inlineKind = iota
	inlineEmphasis
	inlineStrong
	inlineCode
	inlineBreak
)

const (
	// InlineText is a literal text run, escaped at render time.
	InlineText inlineKind = inlineText
	// InlineEmphasis wraps child inlines in emphasis.
	InlineEmphasis inlineKind = inlineEmphasis
	// InlineStrong wraps child inlines in strong emphasis.
	InlineStrong inlineKind = inlineStrong
	// InlineCode is a code span; Text is kept literal.
	InlineCode inlineKind = inlineCode
	// InlineBreak is a line break inside a leaf block.
	InlineBreak inlineKind = inlineBreak
)

type alignKind uint8

// Alignment is the exported alias of alignKind for table columns.
type Alignment = alignKind

const (
	alignNone alignKind = iota
	alignLeft
	alignCenter
	alignRight
)

const (
	// AlignNone leaves a table column unaligned.
	AlignNone alignKind = alignNone
	// AlignLeft aligns a table column to the left.
	AlignLeft alignKind = alignLeft
	// AlignCenter centers a table column.
	AlignCenter alignKind = alignCenter
	// AlignRight aligns a table column to the right.
	AlignRight alignKind = alignRight
)

// plainText returns the concatenated literal text of an inline sequence,
// used for heading ids and table of contents entries.
func plainText(inlines []Inline) string {
	var b []byte
	for i := range inlines {
		b = appendInlineText(b, &inlines[i])
	}
	return string(b)
}

func appendInlineText(b []byte, in *Inline) []byte {
	switch in.Kind {
	case inlineText, inlineCode:
		b = append(b, in.Text...)
	case inlineBreak:
		b = append(b, ' ')
	default:
		for i := range in.Children {
			b = appendInlineText(b, &in.Children[i])
		}
	}
	return b
}
