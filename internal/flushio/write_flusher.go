package flushio

import (
	"bufio"
	"io"
)

// WriteFlusher is a flush-able io.Writer.
type WriteFlusher interface {
	io.Writer
	Flush() error
}

// NewWriteFlusher returns w itself if it can already flush, a no-op flushing
// wrapper for io.Discard and in-memory buffers, and a bufio.Writer otherwise.
func NewWriteFlusher(w io.Writer) WriteFlusher {
	if wf, is := w.(WriteFlusher); is {
		return wf
	}
	if w == io.Discard {
		return nopFlusher{w}
	}

	// types like bytes.Buffer and strings.Builder
	type buffer interface {
		io.Writer
		Len() int
		Grow(n int)
		Reset()
	}
	if _, isBuffer := w.(buffer); isBuffer {
		return nopFlusher{w}
	}

	return bufio.NewWriter(w)
}

type nopFlusher struct{ io.Writer }

func (nf nopFlusher) Flush() error { return nil }

// FlushingReader returns a reader that flushes wf before every read from r,
// so that any prompt written to wf is visible before input is awaited.
func FlushingReader(r io.Reader, wf WriteFlusher) io.Reader {
	return flushingReader{r, wf}
}

type flushingReader struct {
	io.Reader
	wf WriteFlusher
}

func (fr flushingReader) Read(p []byte) (int, error) {
	if err := fr.wf.Flush(); err != nil {
		return 0, err
	}
	return fr.Reader.Read(p)
}
