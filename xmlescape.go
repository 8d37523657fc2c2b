// Package xmlescape decodes XML character references embedded in raw bytes.
//
// The predefined entities (lt, gt, amp, apos, quot) and numeric references
// (&#xHH; and &#OOO;) are each replaced by a single byte. Numeric references
// without the x marker are read as octal. Buffers without references are
// returned as-is, without allocating.
package xmlescape

import (
	"bytes"
	"strings"
)

// span is one decoded reference: raw[start] is '&' and raw[end] is ';'.
type span struct {
	start int
	end   int
	b     byte
}

// Unescape replaces every entity reference in raw with its decoded byte.
// The input is never modified. On failure no partial result is returned and
// the error is a *SyntaxError carrying the offset of the first bad '&'.
func Unescape(raw []byte) (Text, error) {
	var spans []span
	removed := 0
	for pos := 0; pos < len(raw); {
		i, j, b, err := nextEntity(raw, pos)
		if err != nil {
			return Text{}, err
		}
		if i < 0 {
			break
		}
		spans = append(spans, span{start: i, end: j, b: b})
		removed += j - i
		pos = j + 1
	}
	if len(spans) == 0 {
		return Text{b: raw}, nil
	}

	out := make([]byte, 0, len(raw)-removed)
	start := 0
	for _, s := range spans {
		out = append(out, raw[start:s.start]...)
		out = append(out, s.b)
		start = s.end + 1
	}
	out = append(out, raw[start:]...)
	return Text{b: out, owned: true}, nil
}

// AppendUnescaped appends the decoded form of raw to dst.
func AppendUnescaped(dst, raw []byte) ([]byte, error) {
	pos := 0
	for pos < len(raw) {
		i, j, b, err := nextEntity(raw, pos)
		if err != nil {
			return nil, err
		}
		if i < 0 {
			break
		}
		dst = append(dst, raw[pos:i]...)
		dst = append(dst, b)
		pos = j + 1
	}
	return append(dst, raw[pos:]...), nil
}

// UnescapeString is like Unescape for strings. It returns s itself when s
// holds no references.
func UnescapeString(s string) (string, error) {
	if strings.IndexByte(s, '&') < 0 {
		return s, nil
	}
	text, err := Unescape([]byte(s))
	if err != nil {
		return "", err
	}
	return text.String(), nil
}

// nextEntity finds the first reference at or after pos and decodes it.
// It returns i = -1 when raw[pos:] holds no '&'.
func nextEntity(raw []byte, pos int) (i, j int, b byte, err error) {
	k := bytes.IndexByte(raw[pos:], '&')
	if k < 0 {
		return -1, -1, 0, nil
	}
	i = pos + k
	k = bytes.IndexByte(raw[i+1:], ';')
	if k < 0 {
		return -1, -1, 0, malformed(i, msgUnterminated)
	}
	j = i + 1 + k
	b, err = decodeEntity(raw[i+1:j], i)
	if err != nil {
		return -1, -1, 0, err
	}
	return i, j, b, nil
}
