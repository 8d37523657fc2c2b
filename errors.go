package xmlescape

import (
	"errors"
	"fmt"
)

// ErrorKind classifies decoding failures.
type ErrorKind string

const (
	// KindMalformedEntity indicates an entity reference that cannot be decoded.
	KindMalformedEntity ErrorKind = "malformed-entity"
)

// ErrMalformedEntity is matched by every *SyntaxError of kind KindMalformedEntity.
var ErrMalformedEntity = errors.New("malformed entity")

const (
	msgUnterminated = "Cannot find ';' after '&'"
	msgEmpty        = "Encountered empty entity"
	msgNullChar     = "Null character entity is not allowed"
	msgBadHex       = "Invalid hexadecimal character number in an entity: "
	msgBadOctal     = "Invalid decimal character number in an entity: "
	msgUnexpected   = "Unexpected entity: "
)

// SyntaxError reports a failed decode together with the byte offset of the
// '&' that opened the offending entity.
type SyntaxError struct {
	Kind   ErrorKind
	Offset int
	Msg    string
}

// Error formats the error with its offset and message.
func (e *SyntaxError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("xml unescape error at offset %d: %s", e.Offset, e.Msg)
}

// Unwrap exposes the sentinel for the error kind.
func (e *SyntaxError) Unwrap() error {
	if e == nil {
		return nil
	}
	if e.Kind == KindMalformedEntity {
		return ErrMalformedEntity
	}
	return nil
}

// AsSyntaxError extracts a *SyntaxError from err.
func AsSyntaxError(err error) (*SyntaxError, bool) {
	if err == nil {
		return nil, false
	}
	var syntax *SyntaxError
	if errors.As(err, &syntax) && syntax != nil {
		return syntax, true
	}
	return nil, false
}

func malformed(offset int, msg string) *SyntaxError {
	return &SyntaxError{Kind: KindMalformedEntity, Offset: offset, Msg: msg}
}
