// Package mdh converts Markdown to HTML fragments.
//
// The converter is line-oriented: every input line is classified once
// against the stack of currently open blocks, the block tree is built in a
// single forward pass, and inline markup is resolved per leaf block. Output
// is deterministic and parsing never fails; constructs that do not match
// their expected shape degrade to paragraph text.
//
// Core properties:
//   - Single forward pass over lines, no backtracking
//   - Never-fail parsing; malformed input renders as literal text
//   - Compact output with no whitespace between tags, or a named indented
//     format for human inspection
//   - Low allocations in hot paths
//
// Example:
//
//	html, err := mdh.RenderString("# Hello\n\nMarkdown in, HTML out.")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(html)
//
// Rendering can be customized using RenderOptions such as WithHeadingIDs
// and WithTOCLevel, and through named output Formats.
package mdh
