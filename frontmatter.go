package mdh

import "bytes"

// stripFrontMatter removes a leading metadata block delimited by ---,
// +++ or ;;; lines. The block is treated as front matter only when the
// line after the opening delimiter looks like metadata and a matching
// closing delimiter exists; otherwise the input passes through
// unchanged, so a bare --- still reads as a thematic break. A leading
// UTF-8 BOM is dropped either way.
func stripFrontMatter(src []byte) []byte {
	src = trimBOM(src)
	openLine, openNext := cutLine(src, 0)
	delim, ok := frontMatterDelimiter(openLine)
	if !ok {
		return src
	}
	if openNext >= len(src) {
		return src
	}
	secondLine, secondNext := cutLine(src, openNext)
	if !frontMatterMetadataLikely(secondLine) {
		return src
	}
	for idx := secondNext; idx < len(src); {
		line, next := cutLine(src, idx)
		if bytes.Equal(bytes.TrimSpace(line), delim) {
			return src[next:]
		}
		idx = next
	}
	return src
}

func cutLine(src []byte, start int) ([]byte, int) {
	i := bytes.IndexByte(src[start:], '\n')
	if i < 0 {
		return trimCR(src[start:]), len(src)
	}
	end := start + i
	return trimCR(src[start:end]), end + 1
}

func frontMatterDelimiter(line []byte) ([]byte, bool) {
	trimmed := bytes.TrimSpace(line)
	switch {
	case bytes.Equal(trimmed, []byte("---")):
		return []byte("---"), true
	case bytes.Equal(trimmed, []byte("+++")):
		return []byte("+++"), true
	case bytes.Equal(trimmed, []byte(";;;")):
		return []byte(";;;"), true
	default:
		return nil, false
	}
}

func frontMatterMetadataLikely(line []byte) bool {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return false
	}
	if bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("[")) {
		return true
	}
	if bytes.Contains(trimmed, []byte(":")) || bytes.Contains(trimmed, []byte("=")) {
		return true
	}
	return false
}

func trimCR(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == '\r' {
		return b[:len(b)-1]
	}
	return b
}

func trimBOM(b []byte) []byte {
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		return b[3:]
	}
	return b
}
