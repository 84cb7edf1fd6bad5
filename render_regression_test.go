package mdh

import (
	"errors"
	"strings"
	"testing"
)

func TestRenderStringExact(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "heading and paragraph",
			src:  "# Hello, world!\n\nThis is a new line.",
			want: "<h1>Hello, world!</h1><p>This is a new line.</p>",
		},
		{
			name: "emphasis",
			src:  "*Hello*",
			want: "<p><i>Hello</i></p>",
		},
		{
			name: "strong",
			src:  "**Hello**",
			want: "<p><strong>Hello</strong></p>",
		},
		{
			name: "strong wrapping emphasis",
			src:  "***Hello***",
			want: "<p><strong><i>Hello</i></strong></p>",
		},
		{
			name: "code span keeps content literal",
			src:  "`let x = 10;`",
			want: "<p><code>let x = 10;</code></p>",
		},
		{
			name: "soft newline becomes br",
			src:  "line one\nline two",
			want: "<p>line one<br>line two</p>",
		},
		{
			name: "empty input",
			src:  "",
			want: "",
		},
		{
			name: "whitespace only line separates paragraphs",
			src:  "a\n   \nb",
			want: "<p>a</p><p>b</p>",
		},
		{
			name: "heading requires a space after the markers",
			src:  "#NoSpace",
			want: "<p>#NoSpace</p>",
		},
		{
			name: "seven hashes is not a heading",
			src:  "####### seven",
			want: "<p>####### seven</p>",
		},
		{
			name: "thematic break tolerates interior spaces",
			src:  "- - -",
			want: "<hr>",
		},
		{
			name: "unordered list stays tight",
			src:  "- x\n- y\n- z\n  - z1\n  - z2",
			want: "<ul><li>x</li><li>y</li><li>z<ul><li>z1</li><li>z2</li></ul></li></ul>",
		},
		{
			name: "ordered list",
			src:  "1. x\n2. y\n3. z",
			want: "<ol><li>x</li><li>y</li><li>z</li></ol>",
		},
		{
			name: "ordered list start carries over",
			src:  "3. x\n4. y",
			want: `<ol start="3"><li>x</li><li>y</li></ol>`,
		},
		{
			name: "ordered marker accepts up to nine digits",
			src:  "123456789. x",
			want: `<ol start="123456789"><li>x</li></ol>`,
		},
		{
			name: "ordered marker past nine digits stays text",
			src:  "99999999999999999999. x",
			want: "<p>99999999999999999999. x</p>",
		},
		{
			name: "fenced code with language",
			src:  "```rust\nfn main() {\n    println!(\"hi\");\n}\n```",
			want: "<pre><code class=\"language-rust\">fn main() {\n    println!(\"hi\");\n}\n</code></pre>",
		},
		{
			name: "unterminated fence runs to the end",
			src:  "```\ncode",
			want: "<pre><code>code\n</code></pre>",
		},
		{
			name: "quote lines join into one paragraph",
			src:  "> a\n> b",
			want: "<blockquote><p>a<br>b</p></blockquote>",
		},
		{
			name: "lazy continuation without quote marker",
			src:  "> Hello\nworld",
			want: "<blockquote><p>Hello<br>world</p></blockquote>",
		},
		{
			name: "bare quote marker separates paragraphs",
			src:  "> First\n>\n> Second",
			want: "<blockquote><p>First</p><p>Second</p></blockquote>",
		},
		{
			name: "bare container fences",
			src:  ":::\ncontent\n:::",
			want: "<div><p>content</p></div>",
		},
		{
			name: "labeled container",
			src:  "::: warning\nlook out\n:::",
			want: `<div class="warning"><p>look out</p></div>`,
		},
		{
			name: "table with alignments and trailing mismatched row",
			src:  "| a | b | c |\n| :----- | :------: | -----: |\n| 1 | 2 | 3 |\n| x | y |",
			want: `<table><thead><tr><th style="text-align:left">a</th><th style="text-align:center">b</th><th style="text-align:right">c</th></tr></thead><tbody><tr><td style="text-align:left">1</td><td style="text-align:center">2</td><td style="text-align:right">3</td></tr></tbody></table><p>| x | y |</p>`,
		},
		{
			name: "pipe line without delimiter stays a paragraph",
			src:  "| just | text |",
			want: "<p>| just | text |</p>",
		},
		{
			name: "unmatched star stays literal",
			src:  "*abc",
			want: "<p>*abc</p>",
		},
		{
			name: "extra trailing star stays literal",
			src:  "**x***",
			want: "<p><strong>x</strong>*</p>",
		},
		{
			name: "escaped stars stay literal",
			src:  `\*not\*`,
			want: "<p>*not*</p>",
		},
		{
			name: "text is escaped",
			src:  "a < b & c > d",
			want: "<p>a &lt; b &amp; c &gt; d</p>",
		},
		{
			name: "code span is escaped but not parsed",
			src:  "`<b> & *x*`",
			want: "<p><code>&lt;b&gt; &amp; *x*</code></p>",
		},
		{
			name: "crlf input",
			src:  "# A\r\nB\r\n",
			want: "<h1>A</h1><p>B</p>",
		},
		{
			name: "front matter is stripped",
			src:  "---\ntitle: x\n---\n\n# Hi",
			want: "<h1>Hi</h1>",
		},
		{
			name: "bare dashes without metadata stay a thematic break",
			src:  "---\n# Keep\n---",
			want: "<hr><h1>Keep</h1><hr>",
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := renderString(t, tc.src)
			if got != tc.want {
				t.Fatalf("render %q\n got: %s\nwant: %s", tc.src, got, tc.want)
			}
		})
	}
}

func TestRenderMixedDocument(t *testing.T) {
	src := "- AAA\n- BBB\n- CCC\n\nHappy\n\n> Ok!\n> Good!\n>\n> - Yeah\n> - Wryyyyy\n>   - Change the **world**\n\nEnd of the world"
	want := "<ul><li>AAA</li><li>BBB</li><li>CCC</li></ul>" +
		"<p>Happy</p>" +
		"<blockquote><p>Ok!<br>Good!</p>" +
		"<ul><li>Yeah</li><li>Wryyyyy<ul><li>Change the <strong>world</strong></li></ul></li></ul>" +
		"</blockquote>" +
		"<p>End of the world</p>"
	got := renderString(t, src)
	if got != want {
		t.Fatalf("mixed document mismatch\n got: %s\nwant: %s", got, want)
	}
}

func TestRenderDeterministic(t *testing.T) {
	src := string(readSample(t, "testdata/basic.md")) +
		string(readSample(t, "testdata/lists.md")) +
		string(readSample(t, "testdata/table-container.md"))
	first := renderString(t, src)
	for i := 0; i < 5; i++ {
		if again := renderString(t, src); again != first {
			t.Fatalf("output changed between runs:\nfirst: %s\nagain: %s", first, again)
		}
	}
}

func TestRenderLooseListsOption(t *testing.T) {
	src := "- a\n\n- b"
	tight := renderString(t, src)
	if tight != "<ul><li>a</li><li>b</li></ul>" {
		t.Fatalf("default rendering should stay tight, got %s", tight)
	}
	loose := renderString(t, src, WithLooseLists(true))
	if loose != "<ul><li><p>a</p></li><li><p>b</p></li></ul>" {
		t.Fatalf("loose rendering mismatch, got %s", loose)
	}
}

func TestRenderHeadingIDsOption(t *testing.T) {
	got := renderString(t, "# Hi <there>", WithHeadingIDs(true))
	want := `<h1 id="Hi &lt;there&gt;">Hi &lt;there&gt;</h1>`
	if got != want {
		t.Fatalf("heading id mismatch\n got: %s\nwant: %s", got, want)
	}
}

func TestRenderDepthCapDegrades(t *testing.T) {
	out, err := RenderString(">>> deep", WithMaxDepth(3))
	if !errors.Is(err, ErrNestingTooDeep) {
		t.Fatalf("expected ErrNestingTooDeep, got %v", err)
	}
	want := "<blockquote><blockquote><p>&gt; deep</p></blockquote></blockquote>"
	if out != want {
		t.Fatalf("degraded output mismatch\n got: %s\nwant: %s", out, want)
	}
}

func TestRenderDeepNestingNeverPanics(t *testing.T) {
	src := strings.Repeat("> ", 200) + "bottom"
	out, err := RenderString(src)
	if err != nil && !errors.Is(err, ErrNestingTooDeep) {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "bottom") {
		t.Fatalf("content lost under deep nesting: %q", out)
	}
}
