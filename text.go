package xmlescape

// Text is the result of Unescape. It either aliases the input buffer, when
// nothing was decoded, or owns a freshly allocated buffer.
// Callers must treat the bytes as read-only in both cases.
type Text struct {
	b     []byte
	owned bool
}

// Bytes returns the decoded bytes.
func (t Text) Bytes() []byte { return t.b }

// Owned reports whether the bytes were allocated by Unescape.
// When false, Bytes returns the input slice itself.
func (t Text) Owned() bool { return t.owned }

// Len returns the number of decoded bytes.
func (t Text) Len() int { return len(t.b) }

func (t Text) String() string { return string(t.b) }
