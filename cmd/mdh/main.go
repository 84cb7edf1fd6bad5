package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/net/html"
	"golang.org/x/term"
	"pkt.systems/mdh"
	"pkt.systems/version"
)

const defaultWidth = 80

func init() {
	version.SetDefaultModule("pkt.systems/mdh")
}

type cliOptions struct {
	formatName  string
	width       int
	toc         bool
	tocLevel    int
	headingIDs  bool
	looseLists  bool
	maxDepth    int
	standalone  bool
	title       string
	configPath  string
	listFormats bool
	output      string
}

func main() {
	var opts cliOptions

	flags := pflag.NewFlagSet("mdh", pflag.ExitOnError)
	flags.StringVarP(&opts.formatName, "format", "f", "", "Output format: "+strings.Join(mdh.AvailableFormats(), "|")+" (default indented on a terminal, compact otherwise)")
	flags.IntVarP(&opts.width, "width", "w", 0, "Width at which indented output breaks content onto its own line (0 uses terminal width if available)")
	flags.BoolVar(&opts.toc, "toc", false, "Emit a table of contents before the document body")
	flags.IntVar(&opts.tocLevel, "toc-level", 3, "Deepest heading level included in the table of contents")
	flags.BoolVar(&opts.headingIDs, "heading-ids", false, "Add id attributes to headings")
	flags.BoolVar(&opts.looseLists, "loose-lists", false, "Paragraph-wrap items of lists that have blank lines between items")
	flags.IntVar(&opts.maxDepth, "max-depth", 0, "Block nesting cap (0 keeps the built-in default)")
	flags.BoolVarP(&opts.standalone, "standalone", "s", false, "Emit a complete HTML document instead of a fragment")
	flags.StringVar(&opts.title, "title", "", "Document title for --standalone")
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML config file")
	flags.BoolVar(&opts.listFormats, "list-formats", false, "List available formats")
	flags.StringVarP(&opts.output, "output", "o", "", "Output file instead of stdout")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		fmt.Fprintf(os.Stderr, "Usage: mdh [flags] [inputs...]\n")
		fmt.Fprintln(os.Stderr, "\nInputs may be files, http(s) URLs, or - for stdin.")
		fmt.Fprintln(os.Stderr, "If no input is provided, Markdown is read from stdin.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	if opts.listFormats {
		printFormats()
		return
	}

	if opts.configPath != "" {
		cfg, err := loadFileConfig(opts.configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load config: %v\n", err)
			os.Exit(1)
		}
		applyFileConfig(flags, cfg, &opts)
	}

	reader, closer, err := openInputs(flags.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "open input: %v\n", err)
		os.Exit(1)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	writer, closeOut, err := resolveOutput(opts.output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open output: %v\n", err)
		os.Exit(1)
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}

	format, err := resolveFormat(opts, writer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n\n", err)
		printFormats()
		os.Exit(2)
	}

	if err := run(reader, writer, format, opts); err != nil {
		if errors.Is(err, mdh.ErrNestingTooDeep) {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			return
		}
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		os.Exit(1)
	}
}

// run renders everything from reader to writer. A nesting depth error is
// returned after the complete output has been written so the caller can
// treat it as a warning.
func run(reader io.Reader, writer io.Writer, format mdh.Format, opts cliOptions) error {
	options := renderOptions(opts)
	var toc string
	var depthErr error
	if opts.toc {
		data, err := io.ReadAll(reader)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		_, t, err := mdh.RenderWithTOC(string(data), options...)
		if err != nil {
			if !errors.Is(err, mdh.ErrNestingTooDeep) {
				return err
			}
			depthErr = err
		}
		toc = t
		reader = bytes.NewReader(data)
		options = append(options, mdh.WithHeadingIDs(true))
	}
	if opts.standalone {
		if err := writeDocumentHead(writer, opts.title); err != nil {
			return err
		}
	}
	if toc != "" {
		if _, err := io.WriteString(writer, "<nav>"+toc+"</nav>\n"); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	err := mdh.Render(mdh.RenderRequest{
		Reader:  reader,
		Writer:  writer,
		Format:  format,
		Options: options,
	})
	if err != nil {
		if !errors.Is(err, mdh.ErrNestingTooDeep) {
			return err
		}
		depthErr = err
	}
	if _, werr := io.WriteString(writer, "\n"); werr != nil {
		return fmt.Errorf("write output: %w", werr)
	}
	if opts.standalone {
		if err := writeDocumentFoot(writer); err != nil {
			return err
		}
	}
	return depthErr
}

func renderOptions(opts cliOptions) []mdh.RenderOption {
	options := []mdh.RenderOption{
		mdh.WithHeadingIDs(opts.headingIDs),
		mdh.WithLooseLists(opts.looseLists),
	}
	if opts.maxDepth > 0 {
		options = append(options, mdh.WithMaxDepth(opts.maxDepth))
	}
	if opts.tocLevel > 0 {
		options = append(options, mdh.WithTOCLevel(opts.tocLevel))
	}
	return options
}

// resolveFormat picks the output format: the flag or config name if set,
// otherwise indented when writing to a terminal. Indented output takes
// its breakout width from --width or the terminal.
func resolveFormat(opts cliOptions, writer io.Writer) (mdh.Format, error) {
	name := opts.formatName
	if name == "" {
		if isTerminal(writer) {
			name = "indented"
		} else {
			name = "compact"
		}
	}
	format, ok := mdh.FormatByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown format %q", name)
	}
	layout := format.Layout()
	if !layout.Compact {
		layout.Threshold = resolveWidth(opts.width)
		format = mdh.NewFormat(format.Name(), layout)
	}
	return format, nil
}

func printFormats() {
	for _, name := range mdh.AvailableFormats() {
		fmt.Fprintln(os.Stdout, name)
	}
}

func writeDocumentHead(w io.Writer, title string) error {
	if title == "" {
		title = "Document"
	}
	head := "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>" +
		html.EscapeString(title) + "</title>\n</head>\n<body>\n"
	if _, err := io.WriteString(w, head); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func writeDocumentFoot(w io.Writer) error {
	if _, err := io.WriteString(w, "</body>\n</html>\n"); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func resolveWidth(width int) int {
	if width > 0 {
		return width
	}
	return terminalWidth(defaultWidth)
}

func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

type inputSource struct {
	open func() (io.Reader, io.Closer, error)
}

type multiInputReader struct {
	sources   []inputSource
	idx       int
	cur       io.Reader
	curCloser io.Closer
	closed    bool
}

func (m *multiInputReader) Read(p []byte) (int, error) {
	for {
		if m.closed {
			return 0, io.EOF
		}
		if m.cur == nil {
			if m.idx >= len(m.sources) {
				m.closed = true
				return 0, io.EOF
			}
			reader, closer, err := m.sources[m.idx].open()
			if err != nil {
				return 0, err
			}
			m.cur = reader
			m.curCloser = closer
			m.idx++
		}
		n, err := m.cur.Read(p)
		if n > 0 {
			return n, nil
		}
		if err == io.EOF {
			if m.curCloser != nil {
				_ = m.curCloser.Close()
			}
			m.cur = nil
			m.curCloser = nil
			continue
		}
		if err != nil {
			return 0, err
		}
	}
}

func (m *multiInputReader) Close() error {
	m.closed = true
	if m.curCloser != nil {
		return m.curCloser.Close()
	}
	return nil
}

func openInputs(args []string) (io.Reader, io.Closer, error) {
	if len(args) == 0 {
		return os.Stdin, nil, nil
	}
	sources := make([]inputSource, 0, len(args))
	for _, raw := range args {
		src, err := makeInputSource(raw)
		if err != nil {
			return nil, nil, err
		}
		sources = append(sources, src)
	}
	return &multiInputReader{sources: sources}, nil, nil
}

func makeInputSource(raw string) (inputSource, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return inputSource{}, fmt.Errorf("empty input argument")
	}
	if raw == "-" {
		return inputSource{open: func() (io.Reader, io.Closer, error) {
			return os.Stdin, nil, nil
		}}, nil
	}
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				return openURL(raw)
			}}, nil
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				return openFile(path)
			}}, nil
		}
	}
	return inputSource{open: func() (io.Reader, io.Closer, error) {
		return openFile(raw)
	}}, nil
}

func openURL(raw string) (io.Reader, io.Closer, error) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, raw, nil)
	if err != nil {
		return nil, nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, nil, fmt.Errorf("http %s: %s", raw, resp.Status)
	}
	return resp.Body, resp.Body, nil
}

func openFile(path string) (io.Reader, io.Closer, error) {
	clean := normalizePath(path)
	f, err := os.Open(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func resolveOutput(path string) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return os.Stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}
