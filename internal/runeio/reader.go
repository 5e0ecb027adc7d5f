package runeio

import (
	"bufio"
	"io"
)

// Reader is an io.Reader that also supports reading runes, along with
// stepping back over one so that its raw bytes may be re-read.
type Reader interface {
	io.Reader
	io.RuneScanner
	io.ByteReader
}

// NewReader returns r itself when it already reads runes, otherwise it wraps
// r in a bufio.Reader. A wrapped reader also implements io.Closer, closing the
// underlying stream if it can be closed.
func NewReader(r io.Reader) Reader {
	if impl, ok := r.(Reader); ok {
		return impl
	}
	return bufReader{bufio.NewReader(r), r}
}

type bufReader struct {
	*bufio.Reader
	src io.Reader
}

func (br bufReader) Close() error {
	if cl, ok := br.src.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}
