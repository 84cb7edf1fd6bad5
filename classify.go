package mdh

import "strings"

// Line classification primitives. Each recognizer is total: it reports
// whether the prefix matched and leaves the fallback decision (paragraph
// text) to the tree builder.

func isBlank(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isSpace(s[i]) {
			return false
		}
	}
	return true
}

// quoteMarker strips one blockquote marker: optional indentation, one '>',
// one optional space or tab. Nested quotes consume one marker per open
// quote block.
func quoteMarker(line string) (string, bool) {
	i := 0
	for i < len(line) && isSpace(line[i]) {
		i++
	}
	if i >= len(line) || line[i] != '>' {
		return line, false
	}
	i++
	if i < len(line) && isSpace(line[i]) {
		i++
	}
	return line[i:], true
}

// parseListMarker recognizes a list marker at the start of text. For
// bullets it returns ordered=false and the bullet rune; for ordered
// markers the delimiter rune and the parsed number. markerLen is the
// marker's width in columns, padding the run of spaces that follows, and
// content the text after it. The item's content indentation is the
// marker's indent plus markerLen plus padding.
func parseListMarker(text string) (bool, rune, int, int, int, string, bool) {
	if text == "" {
		return false, 0, 0, 0, 0, "", false
	}
	switch text[0] {
	case '-', '+', '*':
		if len(text) < 2 || !isSpace(text[1]) {
			return false, 0, 0, 0, 0, "", false
		}
		padding, idx := countSpaces(text[1:])
		if padding == 0 {
			return false, 0, 0, 0, 0, "", false
		}
		return false, rune(text[0]), 0, 1, padding, text[1+idx:], true
	}
	i := 0
	for i < len(text) && text[i] >= '0' && text[i] <= '9' {
		i++
	}
	// Markers longer than nine digits would overflow the start number;
	// such lines read as paragraph text.
	if i == 0 || i > 9 || i >= len(text) {
		return false, 0, 0, 0, 0, "", false
	}
	if text[i] != '.' && text[i] != ')' {
		return false, 0, 0, 0, 0, "", false
	}
	if i+1 >= len(text) || !isSpace(text[i+1]) {
		return false, 0, 0, 0, 0, "", false
	}
	num := 0
	for j := 0; j < i; j++ {
		num = num*10 + int(text[j]-'0')
	}
	padding, idx := countSpaces(text[i+1:])
	if padding == 0 {
		return false, 0, 0, 0, 0, "", false
	}
	return true, rune(text[i]), num, i + 1, padding, text[i+1+idx:], true
}

func parseHeading(text string) (int, string, bool) {
	if !strings.HasPrefix(text, "#") {
		return 0, "", false
	}
	level := 0
	for level < len(text) && text[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return 0, "", false
	}
	if level >= len(text) || text[level] != ' ' {
		return 0, "", false
	}
	content := strings.TrimSpace(text[level+1:])
	return level, content, true
}

// parseFence recognizes a code fence line: three or more backticks or
// tildes, optionally followed by an info string whose first field is the
// language token. A closing fence is a parseFence match with the same
// character, at least the opening run length and an empty info string.
func parseFence(text string) (byte, int, string, bool) {
	trim := strings.TrimSpace(text)
	if trim == "" {
		return 0, 0, "", false
	}
	ch := trim[0]
	if ch != '`' && ch != '~' {
		return 0, 0, "", false
	}
	count := 0
	for count < len(trim) && trim[count] == ch {
		count++
	}
	if count < 3 {
		return 0, 0, "", false
	}
	info := ""
	if fields := strings.Fields(trim[count:]); len(fields) > 0 {
		info = fields[0]
	}
	return ch, count, info, true
}

// parseContainerFence recognizes a generic container fence: three or more
// colons with an optional label. A bare fence (empty label) closes the
// nearest open container, or opens an unlabeled one when none is open.
func parseContainerFence(text string) (string, bool) {
	trim := strings.TrimSpace(text)
	count := 0
	for count < len(trim) && trim[count] == ':' {
		count++
	}
	if count < 3 {
		return "", false
	}
	return strings.TrimSpace(trim[count:]), true
}

// isThematicBreak reports a line of three or more repeated '-', '*' or '_'
// characters; interior spaces are ignored.
func isThematicBreak(text string) bool {
	trim := strings.TrimSpace(text)
	if trim == "" {
		return false
	}
	ch := trim[0]
	if ch != '-' && ch != '*' && ch != '_' {
		return false
	}
	count := 0
	for i := 0; i < len(trim); i++ {
		switch trim[i] {
		case ch:
			count++
		case ' ', '\t':
		default:
			return false
		}
	}
	return count >= 3
}

// isPlainText reports whether a line carries no block marker at all, which
// is what lazy continuation of an open paragraph requires.
func isPlainText(text string) bool {
	if isBlank(text) {
		return false
	}
	if _, _, _, ok := parseFence(text); ok {
		return false
	}
	if _, ok := parseContainerFence(text); ok {
		return false
	}
	if isThematicBreak(text) {
		return false
	}
	if _, _, ok := parseHeading(text); ok {
		return false
	}
	if _, ok := quoteMarker(text); ok {
		return false
	}
	_, i := leadingIndentCount(text)
	if _, _, _, _, _, _, ok := parseListMarker(text[i:]); ok {
		return false
	}
	return true
}

func leadingIndentCount(s string) (int, int) {
	count := 0
	i := 0
	for i < len(s) {
		if s[i] == ' ' {
			count++
			i++
			continue
		}
		if s[i] == '\t' {
			count += 4
			i++
			continue
		}
		break
	}
	return count, i
}

func trimIndent(s string, count int) string {
	i := 0
	for i < len(s) && count > 0 {
		if s[i] == ' ' {
			count--
			i++
			continue
		}
		if s[i] == '\t' {
			count -= 4
			i++
			continue
		}
		break
	}
	return s[i:]
}

func countSpaces(s string) (int, int) {
	count := 0
	i := 0
	for i < len(s) && isSpace(s[i]) {
		count++
		i++
	}
	return count, i
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}
