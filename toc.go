package mdh

// Table of contents support. Entries use the verbatim heading text as
// both anchor target and link text, matching the id attribute that
// WithHeadingIDs puts on headings; there is no slugging or deduplication.

type tocEntry struct {
	level int
	text  string
}

func collectTOC(doc *Block, maxLevel int) []tocEntry {
	var entries []tocEntry
	var walk func(s *Block)
	walk = func(s *Block) {
		if s.Kind == blockHeading {
			if s.Level <= maxLevel {
				entries = append(entries, tocEntry{level: s.Level, text: plainText(s.Inlines)})
			}
			return
		}
		for _, child := range s.Children {
			walk(child)
		}
	}
	walk(doc)
	return entries
}

// renderTOC emits the nested list for the collected headings. Levels nest
// one list per step; a heading more than one level deeper than its
// predecessor is clamped so the markup stays balanced.
func renderTOC(entries []tocEntry) string {
	if len(entries) == 0 {
		return ""
	}
	var buf []byte
	depth := 0
	prev := 0
	for _, e := range entries {
		level := e.level
		if depth == 0 {
			buf = append(buf, "<ul>"...)
			depth = 1
		} else {
			if level > prev+1 {
				level = prev + 1
			}
			switch {
			case level > prev:
				buf = append(buf, "<ul>"...)
				depth++
			case level < prev:
				for i := level; i < prev && depth > 1; i++ {
					buf = append(buf, "</li></ul>"...)
					depth--
				}
				buf = append(buf, "</li>"...)
			default:
				buf = append(buf, "</li>"...)
			}
		}
		prev = level
		buf = append(buf, `<li><a href="#`...)
		buf = appendEscapedAttr(buf, e.text)
		buf = append(buf, `">`...)
		buf = appendEscapedText(buf, e.text)
		buf = append(buf, "</a>"...)
	}
	for i := 0; i < depth; i++ {
		buf = append(buf, "</li></ul>"...)
	}
	return string(buf)
}
