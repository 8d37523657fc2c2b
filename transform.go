package xmlescape

import (
	"bytes"
	"io"

	"golang.org/x/text/transform"
)

// Transformer decodes entity references in a byte stream. It applies the
// same rules as Unescape and reports errors at absolute stream offsets.
// A Transformer must not be shared between concurrent streams.
type Transformer struct {
	offset int
}

var _ transform.Transformer = (*Transformer)(nil)

// NewTransformer returns a Transformer positioned at stream offset 0.
func NewTransformer() *Transformer {
	return &Transformer{}
}

// NewReader wraps r so that reads return decoded bytes.
func NewReader(r io.Reader) io.Reader {
	return transform.NewReader(r, NewTransformer())
}

// Reset clears the stream offset.
func (t *Transformer) Reset() {
	t.offset = 0
}

// Transform implements transform.Transformer.
func (t *Transformer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	defer func() {
		t.offset += nSrc
	}()
	for nSrc < len(src) {
		k := bytes.IndexByte(src[nSrc:], '&')
		if k != 0 {
			run := k
			if k < 0 {
				run = len(src) - nSrc
			}
			n := copy(dst[nDst:], src[nSrc:nSrc+run])
			nDst += n
			nSrc += n
			if n < run {
				return nDst, nSrc, transform.ErrShortDst
			}
			continue
		}

		k = bytes.IndexByte(src[nSrc+1:], ';')
		if k < 0 {
			if !atEOF {
				return nDst, nSrc, transform.ErrShortSrc
			}
			return nDst, nSrc, malformed(t.offset+nSrc, msgUnterminated)
		}
		end := nSrc + 1 + k
		b, derr := decodeEntity(src[nSrc+1:end], t.offset+nSrc)
		if derr != nil {
			return nDst, nSrc, derr
		}
		if nDst >= len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = b
		nDst++
		nSrc = end + 1
	}
	return nDst, nSrc, nil
}
