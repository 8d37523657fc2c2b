// Package textpos maps byte offsets in a document to line and column numbers.
package textpos

// Position is a 1-based line and column. Columns count bytes.
type Position struct {
	Line   int
	Column int
}

// Locate returns the position of offset in doc. Offsets outside doc are
// clamped. "\n", "\r" and "\r\n" each end a line.
func Locate(doc []byte, offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(doc) {
		offset = len(doc)
	}
	pos := Position{Line: 1, Column: 1}
	data := doc[:offset]
	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '\n':
			pos.Line++
			pos.Column = 1
		case '\r':
			pos.Line++
			pos.Column = 1
			if i+1 < len(data) && data[i+1] == '\n' {
				i++
			}
		default:
			pos.Column++
		}
	}
	return pos
}

// Snippet returns a copy of up to window bytes on each side of offset.
func Snippet(doc []byte, offset, window int) []byte {
	if offset < 0 || offset > len(doc) || window <= 0 {
		return nil
	}
	start := max(offset-window, 0)
	end := min(offset+window, len(doc))
	if start >= end {
		return nil
	}
	out := make([]byte, end-start)
	copy(out, doc[start:end])
	return out
}
