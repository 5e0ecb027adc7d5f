package fileinput

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/jcorbin/rubima/internal/runeio"
)

// Location names a line in an Input stream.
type Location struct {
	Name string
	Line int
}

// Line combines a Location along with a bytes.Buffer for handling it.
type Line struct {
	Location
	bytes.Buffer
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }
func (il Line) String() string      { return fmt.Sprintf("%v %q", il.Location, il.Buffer.String()) }

// Input implements sequential line reading through a Queue of one or more
// input streams. Both the current and last scanned lines are tracked so that
// callers may report where they are.
type Input struct {
	rr    runeio.Reader
	Queue []io.Reader
	Last  Line
	Scan  Line
}

// ReadLine reads runes from the current input stream until a line feed,
// returning the completed line without its terminator. A final line that
// lacks a line feed is still returned. Once every queued stream has been
// exhausted, io.EOF is returned. Bytes that are not valid UTF-8 are kept
// as-is in the returned line.
func (in *Input) ReadLine() (Location, string, error) {
	for {
		if in.rr == nil && !in.nextIn() {
			return in.Scan.Location, "", io.EOF
		}

		r, size, err := in.rr.ReadRune()
		switch {
		case err == io.EOF:
			if partial := in.Scan.Len() > 0; in.closeIn() && partial {
				return in.Last.Location, in.Last.Buffer.String(), nil
			}
		case err != nil:
			return in.Scan.Location, "", err
		case r == '\n':
			in.nextLine()
			return in.Last.Location, in.Last.Buffer.String(), nil
		case r == utf8.RuneError && size == 1:
			if err := in.scanRawByte(); err != nil {
				return in.Scan.Location, "", err
			}
		default:
			in.Scan.WriteRune(r)
		}
	}
}

func (in *Input) scanRawByte() error {
	if err := in.rr.UnreadRune(); err != nil {
		return err
	}
	b, err := in.rr.ReadByte()
	if err == nil {
		in.Scan.WriteByte(b)
	}
	return err
}

func (in *Input) nextLine() {
	in.Last.Reset()
	in.Last.Name = in.Scan.Name
	in.Last.Line = in.Scan.Line
	in.Last.Write(in.Scan.Bytes())
	in.Scan.Reset()
	in.Scan.Line++
}

// closeIn finishes the current stream, rolling any partial line over to Last.
func (in *Input) closeIn() bool {
	if in.rr == nil {
		return false
	}
	if in.Scan.Len() > 0 {
		in.nextLine()
	}
	if cl, ok := in.rr.(io.Closer); ok {
		cl.Close()
	}
	in.rr = nil
	return true
}

func (in *Input) nextIn() bool {
	in.closeIn()
	if len(in.Queue) > 0 {
		r := in.Queue[0]
		in.Queue = in.Queue[1:]
		in.rr = runeio.NewReader(r)
		in.Scan.Reset()
		in.Scan.Name = nameOf(r)
		in.Scan.Line = 1
	}
	return in.rr != nil
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
