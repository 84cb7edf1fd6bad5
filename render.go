package mdh

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ErrNestingTooDeep reports that input exceeded the configured block
// nesting depth. Rendering still completes; constructs past the limit
// are kept as paragraph text.
var ErrNestingTooDeep = errors.New("nesting depth limit exceeded")

var builderPool = sync.Pool{
	New: func() any {
		return &builder{}
	},
}

var rendererPool = sync.Pool{
	New: func() any {
		return &htmlRenderer{}
	},
}

var configPool = sync.Pool{
	New: func() any {
		return &renderConfig{}
	},
}

// RenderRequest configures Render.
type RenderRequest struct {
	Reader  io.Reader
	Writer  io.Writer
	Format  Format
	Options []RenderOption
}

// ParseRequest configures Parse.
type ParseRequest struct {
	Reader  io.Reader
	Options []RenderOption
}

// Render reads Markdown from the request reader and writes the HTML
// fragment to the request writer. A nil Format means compact output.
// When the input exceeds the nesting depth cap the full output is still
// written and the returned error matches ErrNestingTooDeep.
func Render(req RenderRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("render: reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("render: writer is nil")
	}
	cfg := takeConfig(req.Options)
	src, err := readSource(req.Reader)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	doc, perr := parseSource(src, cfg)
	format := req.Format
	if format == nil {
		format = DefaultFormat()
	}
	layout := format.Layout()
	if layout.Compact {
		r := rendererPool.Get().(*htmlRenderer)
		r.reset(cfg)
		_, werr := req.Writer.Write(r.renderDocument(doc))
		rendererPool.Put(r)
		if werr != nil {
			return fmt.Errorf("render: write: %w", werr)
		}
	} else {
		if _, werr := io.WriteString(req.Writer, renderLayout(doc, layout, cfg)); werr != nil {
			return fmt.Errorf("render: write: %w", werr)
		}
	}
	if perr != nil {
		return fmt.Errorf("render: %w", perr)
	}
	return nil
}

// RenderString renders Markdown to a compact HTML fragment.
func RenderString(src string, opts ...RenderOption) (string, error) {
	var sb strings.Builder
	err := Render(RenderRequest{
		Reader:  strings.NewReader(src),
		Writer:  &sb,
		Options: opts,
	})
	return sb.String(), err
}

// RenderWithTOC renders Markdown and a table of contents built from its
// headings. Heading ids are always emitted so the TOC anchors resolve.
func RenderWithTOC(src string, opts ...RenderOption) (string, string, error) {
	if err := ValidateInput([]byte(src)); err != nil {
		return "", "", fmt.Errorf("render: %w", err)
	}
	cfg := takeConfig(opts)
	cfg.headingIDs = true
	doc, perr := parseSource(string(stripFrontMatter([]byte(src))), cfg)
	r := rendererPool.Get().(*htmlRenderer)
	r.reset(cfg)
	body := string(r.renderDocument(doc))
	rendererPool.Put(r)
	toc := renderTOC(collectTOC(doc, cfg.tocLevel))
	if perr != nil {
		return body, toc, fmt.Errorf("render: %w", perr)
	}
	return body, toc, nil
}

// Parse reads Markdown and returns its block tree. The tree is complete
// even when the returned error matches ErrNestingTooDeep.
func Parse(req ParseRequest) (*Block, error) {
	if req.Reader == nil {
		return nil, fmt.Errorf("parse: reader is nil")
	}
	cfg := takeConfig(req.Options)
	src, err := readSource(req.Reader)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	doc, perr := parseSource(src, cfg)
	if perr != nil {
		return doc, fmt.Errorf("parse: %w", perr)
	}
	return doc, nil
}

func takeConfig(opts []RenderOption) renderConfig {
	cfg := configPool.Get().(*renderConfig)
	cfg.reset()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	cfgVal := *cfg
	configPool.Put(cfg)
	return cfgVal
}

func readSource(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read: %w", err)
	}
	if err := ValidateInput(data); err != nil {
		return "", err
	}
	return string(stripFrontMatter(data)), nil
}

// parseSource feeds the input line by line. Both \n and \r\n terminate a
// line; a trailing terminator does not produce an extra empty line.
func parseSource(src string, cfg renderConfig) (*Block, error) {
	b := builderPool.Get().(*builder)
	b.reset(cfg)
	for len(src) > 0 {
		line := src
		if i := strings.IndexByte(src, '\n'); i >= 0 {
			line = src[:i]
			src = src[i+1:]
		} else {
			src = ""
		}
		b.addLine(strings.TrimSuffix(line, "\r"))
	}
	doc, err := b.finish()
	builderPool.Put(b)
	return doc, err
}
