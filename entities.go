package xmlescape

import (
	"strconv"
	"unicode/utf8"
)

// decodeEntity maps the bytes between '&' and ';' to the single byte they
// stand for. offset is the position of the '&' and is only used for errors.
func decodeEntity(name []byte, offset int) (byte, error) {
	switch string(name) {
	case "lt":
		return '<', nil
	case "gt":
		return '>', nil
	case "amp":
		return '&', nil
	case "apos":
		return '\'', nil
	case "quot":
		return '"', nil
	case "":
		return 0, malformed(offset, msgEmpty)
	case "#x0", "#0":
		return 0, malformed(offset, msgNullChar)
	}
	if len(name) > 1 && name[0] == '#' {
		if name[1] == 'x' {
			digits := name[2:]
			b, ok := parseCharRef(digits, 16)
			if !ok {
				return 0, malformed(offset, msgBadHex+string(digits))
			}
			return b, nil
		}
		// Not decimal: the "#NNN" form is read as base 8.
		digits := name[1:]
		b, ok := parseCharRef(digits, 8)
		if !ok {
			return 0, malformed(offset, msgBadOctal+string(digits))
		}
		return b, nil
	}
	return 0, malformed(offset, msgUnexpected+string(name))
}

// parseCharRef parses digits in base and narrows the resulting code point to
// its low byte. The code point must be a valid Unicode scalar value.
func parseCharRef(digits []byte, base int) (byte, bool) {
	s := string(digits)
	if len(s) > 1 && s[0] == '+' {
		s = s[1:]
	}
	v, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, false
	}
	r := rune(v)
	if v > utf8.MaxRune || !utf8.ValidRune(r) {
		return 0, false
	}
	return byte(r), true
}
