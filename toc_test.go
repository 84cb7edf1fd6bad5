package mdh

import (
	"errors"
	"strings"
	"testing"
)

func renderWithTOC(t *testing.T, src string, opts ...RenderOption) (string, string) {
	t.Helper()
	body, toc, err := RenderWithTOC(src, opts...)
	if err != nil {
		t.Fatalf("RenderWithTOC(%q): %v", src, err)
	}
	return body, toc
}

func TestRenderWithTOCNested(t *testing.T) {
	t.Parallel()
	src := "# Headline1-1\n# Headline1-2\n## Headline2-1\n## Headline2-2\n# Headline1-3"
	body, toc := renderWithTOC(t, src)
	wantTOC := `<ul>` +
		`<li><a href="#Headline1-1">Headline1-1</a></li>` +
		`<li><a href="#Headline1-2">Headline1-2</a>` +
		`<ul><li><a href="#Headline2-1">Headline2-1</a></li>` +
		`<li><a href="#Headline2-2">Headline2-2</a></li></ul></li>` +
		`<li><a href="#Headline1-3">Headline1-3</a></li>` +
		`</ul>`
	if toc != wantTOC {
		t.Fatalf("toc mismatch\n got: %s\nwant: %s", toc, wantTOC)
	}
	wantBody := `<h1 id="Headline1-1">Headline1-1</h1>` +
		`<h1 id="Headline1-2">Headline1-2</h1>` +
		`<h2 id="Headline2-1">Headline2-1</h2>` +
		`<h2 id="Headline2-2">Headline2-2</h2>` +
		`<h1 id="Headline1-3">Headline1-3</h1>`
	if body != wantBody {
		t.Fatalf("body mismatch\n got: %s\nwant: %s", body, wantBody)
	}
}

func TestRenderWithTOCLevelFilter(t *testing.T) {
	t.Parallel()
	src := "# One\n## Two\n### Three\n#### Four"

	// Level four headings stay in the body but out of the default TOC.
	body, toc := renderWithTOC(t, src)
	wantTOC := `<ul><li><a href="#One">One</a>` +
		`<ul><li><a href="#Two">Two</a>` +
		`<ul><li><a href="#Three">Three</a></li></ul></li></ul></li></ul>`
	if toc != wantTOC {
		t.Fatalf("default toc mismatch\n got: %s\nwant: %s", toc, wantTOC)
	}
	if want := `<h4 id="Four">Four</h4>`; !strings.Contains(body, want) {
		t.Fatalf("body lost the level four heading: %s", body)
	}

	_, toc = renderWithTOC(t, src, WithTOCLevel(1))
	if want := `<ul><li><a href="#One">One</a></li></ul>`; toc != want {
		t.Fatalf("level one toc = %s, want %s", toc, want)
	}
}

func TestRenderWithTOCClamping(t *testing.T) {
	t.Parallel()

	// A document that starts deep stays flat.
	_, toc := renderWithTOC(t, "### Deep\n# Top")
	if want := `<ul><li><a href="#Deep">Deep</a></li><li><a href="#Top">Top</a></li></ul>`; toc != want {
		t.Fatalf("deep start toc = %s, want %s", toc, want)
	}

	// A skipped level nests a single step so the markup stays balanced.
	_, toc = renderWithTOC(t, "# A\n### B")
	if want := `<ul><li><a href="#A">A</a><ul><li><a href="#B">B</a></li></ul></li></ul>`; toc != want {
		t.Fatalf("skip level toc = %s, want %s", toc, want)
	}
}

func TestRenderWithTOCNoHeadings(t *testing.T) {
	t.Parallel()
	body, toc := renderWithTOC(t, "just a paragraph")
	if toc != "" {
		t.Fatalf("expected an empty toc, got %s", toc)
	}
	if body != "<p>just a paragraph</p>" {
		t.Fatalf("body = %s", body)
	}
}

func TestRenderWithTOCWalksContainers(t *testing.T) {
	t.Parallel()
	_, toc := renderWithTOC(t, "> # Quoted\n\n::: note\n## Boxed\n:::")
	want := `<ul><li><a href="#Quoted">Quoted</a>` +
		`<ul><li><a href="#Boxed">Boxed</a></li></ul></li></ul>`
	if toc != want {
		t.Fatalf("toc = %s, want %s", toc, want)
	}
}

func TestRenderWithTOCEscapesAnchors(t *testing.T) {
	t.Parallel()
	body, toc := renderWithTOC(t, `# A & "B"`)
	wantTOC := `<ul><li><a href="#A &amp; &quot;B&quot;">A &amp; "B"</a></li></ul>`
	if toc != wantTOC {
		t.Fatalf("toc = %s, want %s", toc, wantTOC)
	}
	wantBody := `<h1 id="A &amp; &quot;B&quot;">A &amp; "B"</h1>`
	if body != wantBody {
		t.Fatalf("body = %s, want %s", body, wantBody)
	}
}

func TestRenderWithTOCFrontMatter(t *testing.T) {
	t.Parallel()
	body, toc := renderWithTOC(t, "---\ntitle: doc\n---\n# Only")
	if want := `<h1 id="Only">Only</h1>`; body != want {
		t.Fatalf("body = %s, want %s", body, want)
	}
	if want := `<ul><li><a href="#Only">Only</a></li></ul>`; toc != want {
		t.Fatalf("toc = %s, want %s", toc, want)
	}
}

func TestRenderWithTOCInvalidInput(t *testing.T) {
	t.Parallel()
	body, toc, err := RenderWithTOC("# ok\n\xff\xfe")
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
	if body != "" || toc != "" {
		t.Fatalf("expected empty output, got body %q toc %q", body, toc)
	}
}
