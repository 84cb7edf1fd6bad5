package mdh

import (
	"errors"
	"strings"
	"testing"
)

func parseString(t *testing.T, src string, opts ...RenderOption) *Block {
	t.Helper()
	doc, err := Parse(ParseRequest{Reader: strings.NewReader(src), Options: opts})
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return doc
}

func TestParseNilReader(t *testing.T) {
	t.Parallel()
	if _, err := Parse(ParseRequest{}); err == nil {
		t.Fatal("expected an error for a nil reader")
	} else if got := err.Error(); got != "parse: reader is nil" {
		t.Fatalf("unexpected error text %q", got)
	}
}

func TestParseDocumentShape(t *testing.T) {
	t.Parallel()
	doc := parseString(t, "# Title\n\nBody text.\n\n---")
	if doc.Kind != BlockDocument {
		t.Fatalf("root kind = %d, want document", doc.Kind)
	}
	if len(doc.Children) != 3 {
		t.Fatalf("got %d top-level blocks, want 3", len(doc.Children))
	}
	h := doc.Children[0]
	if h.Kind != BlockHeading || h.Level != 1 {
		t.Fatalf("first block = kind %d level %d, want heading level 1", h.Kind, h.Level)
	}
	if got := plainText(h.Inlines); got != "Title" {
		t.Fatalf("heading text = %q, want %q", got, "Title")
	}
	if doc.Children[1].Kind != BlockParagraph {
		t.Fatalf("second block kind = %d, want paragraph", doc.Children[1].Kind)
	}
	if doc.Children[2].Kind != BlockThematicBreak {
		t.Fatalf("third block kind = %d, want thematic break", doc.Children[2].Kind)
	}
}

func TestParseListShape(t *testing.T) {
	t.Parallel()
	doc := parseString(t, "1. one\n2. two\n   - inner")
	if len(doc.Children) != 1 {
		t.Fatalf("got %d top-level blocks, want 1", len(doc.Children))
	}
	list := doc.Children[0]
	if list.Kind != BlockList || !list.Ordered || list.Start != 1 {
		t.Fatalf("list = kind %d ordered %v start %d", list.Kind, list.Ordered, list.Start)
	}
	if len(list.Children) != 2 {
		t.Fatalf("got %d items, want 2", len(list.Children))
	}
	second := list.Children[1]
	if second.Kind != BlockListItem {
		t.Fatalf("item kind = %d, want list item", second.Kind)
	}
	if got := plainText(second.Inlines); got != "two" {
		t.Fatalf("item text = %q, want %q", got, "two")
	}
	if len(second.Children) != 1 || second.Children[0].Kind != BlockList {
		t.Fatalf("nested list missing under second item: %+v", second.Children)
	}
	inner := second.Children[0]
	if inner.Ordered {
		t.Fatal("nested list should be unordered")
	}
	if got := plainText(inner.Children[0].Inlines); got != "inner" {
		t.Fatalf("nested item text = %q, want %q", got, "inner")
	}
}

func TestParseCodeShape(t *testing.T) {
	t.Parallel()
	doc := parseString(t, "```go\npackage x\n```")
	code := doc.Children[0]
	if code.Kind != BlockCode {
		t.Fatalf("kind = %d, want code", code.Kind)
	}
	if code.Lang != "go" {
		t.Fatalf("lang = %q, want %q", code.Lang, "go")
	}
	if code.Literal != "package x" {
		t.Fatalf("literal = %q, want %q", code.Literal, "package x")
	}
}

func TestParseTableShape(t *testing.T) {
	t.Parallel()
	doc := parseString(t, "| a | b |\n| :--- | ---: |\n| 1 | 2 |")
	table := doc.Children[0]
	if table.Kind != BlockTable {
		t.Fatalf("kind = %d, want table", table.Kind)
	}
	wantAligns := []Alignment{AlignLeft, AlignRight}
	if len(table.Aligns) != len(wantAligns) {
		t.Fatalf("got %d aligns, want %d", len(table.Aligns), len(wantAligns))
	}
	for i, a := range wantAligns {
		if table.Aligns[i] != a {
			t.Fatalf("align[%d] = %d, want %d", i, table.Aligns[i], a)
		}
	}
	if len(table.Head) != 2 || len(table.Rows) != 1 {
		t.Fatalf("head %d rows %d, want 2 and 1", len(table.Head), len(table.Rows))
	}
	if got := plainText(table.Rows[0][1].Inlines); got != "2" {
		t.Fatalf("cell text = %q, want %q", got, "2")
	}
}

func TestParseQuoteAndContainerShape(t *testing.T) {
	t.Parallel()
	doc := parseString(t, "::: aside\n> quoted\n:::")
	container := doc.Children[0]
	if container.Kind != BlockContainer || container.Label != "aside" {
		t.Fatalf("container = kind %d label %q", container.Kind, container.Label)
	}
	if len(container.Children) != 1 || container.Children[0].Kind != BlockQuote {
		t.Fatalf("expected one quote child, got %+v", container.Children)
	}
	quote := container.Children[0]
	if len(quote.Children) != 1 || quote.Children[0].Kind != BlockParagraph {
		t.Fatalf("expected one paragraph inside the quote, got %+v", quote.Children)
	}
}

func TestParseInlineKinds(t *testing.T) {
	t.Parallel()
	doc := parseString(t, "a *b* **c** `d`\ne")
	para := doc.Children[0]
	var kinds []InlineKind
	for _, in := range para.Inlines {
		kinds = append(kinds, in.Kind)
	}
	want := []InlineKind{InlineText, InlineEmphasis, InlineText, InlineStrong, InlineText, InlineCode, InlineBreak, InlineText}
	if len(kinds) != len(want) {
		t.Fatalf("got kinds %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("kind[%d] = %d, want %d (all: %v)", i, kinds[i], want[i], kinds)
		}
	}
	if para.Inlines[1].Children[0].Text != "b" {
		t.Fatalf("emphasis child = %+v", para.Inlines[1].Children)
	}
	if para.Inlines[5].Text != "d" {
		t.Fatalf("code span text = %q, want %q", para.Inlines[5].Text, "d")
	}
}

func TestParseDepthCapReturnsCompleteTree(t *testing.T) {
	t.Parallel()
	doc, err := Parse(ParseRequest{
		Reader:  strings.NewReader(">>>> bottom"),
		Options: []RenderOption{WithMaxDepth(2)},
	})
	if !errors.Is(err, ErrNestingTooDeep) {
		t.Fatalf("expected ErrNestingTooDeep, got %v", err)
	}
	if doc == nil {
		t.Fatal("expected a document alongside the depth error")
	}
	quote := doc.Children[0]
	if quote.Kind != BlockQuote {
		t.Fatalf("outer kind = %d, want quote", quote.Kind)
	}
	para := quote.Children[0]
	if para.Kind != BlockParagraph {
		t.Fatalf("inner kind = %d, want paragraph", para.Kind)
	}
	if got := plainText(para.Inlines); !strings.Contains(got, "bottom") {
		t.Fatalf("degraded paragraph lost its text: %q", got)
	}
}

func TestParseFrontMatterStripped(t *testing.T) {
	t.Parallel()
	doc := parseString(t, "---\ntitle: hi\ndraft = true\n---\n# Real")
	if len(doc.Children) != 1 || doc.Children[0].Kind != BlockHeading {
		t.Fatalf("front matter leaked into the tree: %+v", doc.Children)
	}
}
