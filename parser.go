package rubima

import (
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jcorbin/rubima/internal/fileinput"
)

const defaultInputName = "<input>"

// Parser compiles source text into a Program, one line at a time.
//
// Each non-blank line is either a label definition, written as ":name" alone
// on its line, or a statement: a mnemonic followed by operands, which are
// integer literals or label references like ":name". A '#' starts a comment
// running to the end of the line.
//
// All Parse calls on one Parser share a single label namespace and append to
// the same Program, so a program may be fed in pieces.
type Parser struct {
	logging
	Labels

	name string
	prog Program
	refs map[*Label]fileinput.Location
}

// NewParser creates a new Parser with the given options.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{name: defaultInputName}
	for _, opt := range opts {
		if opt != nil {
			opt.applyParser(p)
		}
	}
	return p
}

// Program returns every instruction parsed so far. Appending to the returned
// Program never disturbs the parser's own.
func (p *Parser) Program() Program { return p.prog[:len(p.prog):len(p.prog)] }

// Parse parses all lines of src, returning the accumulated Program.
// Parsing stops at the first bad line with a *ParseError.
func (p *Parser) Parse(src string) (Program, error) {
	return p.ParseReader(NamedReader(p.name, strings.NewReader(src)))
}

// ParseReader is like Parse, but reads lines from r. If r has a Name() method,
// it names the input in any ParseError.
func (p *Parser) ParseReader(r io.Reader) (Program, error) {
	if _, named := r.(interface{ Name() string }); !named {
		r = NamedReader(p.name, r)
	}
	in := fileinput.Input{Queue: []io.Reader{r}}
	for {
		loc, line, err := in.ReadLine()
		if err == io.EOF {
			return p.Program(), nil
		} else if err != nil {
			return p.Program(), err
		}
		if err := p.parseLine(loc, line); err != nil {
			return p.Program(), err
		}
	}
}

// ParseLine parses a single line of text, reporting any ParseError as
// happening on the given line number of the named input.
func (p *Parser) ParseLine(name string, lineno int, line string) error {
	return p.parseLine(fileinput.Location{Name: name, Line: lineno}, line)
}

// Check returns a *ParseError wrapping ErrUndefinedLabel if any label has
// been referenced but never defined.
func (p *Parser) Check() error {
	for _, label := range p.Unresolved() {
		loc, referenced := p.refs[label]
		if !referenced {
			continue
		}
		return &ParseError{
			Name: loc.Name,
			Line: loc.Line,
			Rest: ":" + label.Name,
			Err:  undefinedLabelError(label.Name),
		}
	}
	return nil
}

// Compile parses src as a complete program, which must define every label
// that it references.
func Compile(src string, opts ...ParserOption) (Program, error) {
	p := NewParser(opts...)
	prog, err := p.Parse(src)
	if err == nil {
		err = p.Check()
	}
	if err != nil {
		return nil, err
	}
	return prog, nil
}

func (p *Parser) pc() int32 { return int32(len(p.prog)) }

func (p *Parser) parseLine(loc fileinput.Location, line string) error {
	line = strings.TrimSpace(line)

	if name, isMarker := markerName(line); isMarker {
		label := p.Define(name)
		if err := p.Resolve(label, p.pc()); err != nil {
			return &ParseError{loc.Name, loc.Line, line, err}
		}
		p.logf("label :%v @%v", name, label.pos)
		return nil
	}

	tokens, err := p.tokenize(loc, line)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return nil
	}

	if tokens[0].kind != tokenCode {
		return &ParseError{loc.Name, loc.Line, line, ErrStructure}
	}
	operands := tokens[1:]
	for _, tok := range operands {
		if tok.kind == tokenCode {
			return &ParseError{loc.Name, loc.Line, line[tok.at:], ErrStructure}
		}
	}

	// labels are only registered once the whole line has been accepted
	insn := Instruction{Code: tokens[0].code}
	if len(operands) > 0 {
		insn.Operands = make([]Operand, 0, len(operands))
		for _, tok := range operands {
			if tok.kind == tokenInt {
				insn.Operands = append(insn.Operands, IntOperand(tok.n))
			} else {
				insn.Operands = append(insn.Operands, LabelOperand(p.reference(loc, tok.name)))
			}
		}
	}

	p.logf("emit @%v %v", p.pc(), insn)
	p.prog = append(p.prog, insn)
	return nil
}

type tokenKind uint8

const (
	tokenCode tokenKind = iota + 1
	tokenInt
	tokenRef
)

type token struct {
	kind tokenKind
	at   int // byte offset within the line
	code Code
	n    int32
	name string
}

// reference returns the label for name, remembering where it was first
// referenced.
func (p *Parser) reference(loc fileinput.Location, name string) *Label {
	label := p.Define(name)
	if _, seen := p.refs[label]; !seen {
		if p.refs == nil {
			p.refs = make(map[*Label]fileinput.Location)
		}
		p.refs[label] = loc
	}
	return label
}

// tokenize splits a statement line into tokens.
func (p *Parser) tokenize(loc fileinput.Location, line string) (tokens []token, _ error) {
	for at := 0; at < len(line); {
		rest := line[at:]

		// label reference
		if n := spanBytes(rest[1:], isLower); rest[0] == ':' && n > 0 {
			tokens = append(tokens, token{kind: tokenRef, at: at, name: rest[1 : 1+n]})
			at += 1 + n
			continue
		}

		// whitespace
		if r, size := utf8.DecodeRuneInString(rest); unicode.IsSpace(r) {
			at += size
			continue
		}

		// comment
		if rest[0] == '#' {
			break
		}

		// mnemonic
		if n := spanBytes(rest, isLower); n > 0 {
			tokens = append(tokens, token{kind: tokenCode, at: at, code: lookupCode(rest[:n])})
			at += n
			continue
		}

		// integer literal
		if n := spanBytes(rest, isDigit); n > 0 {
			lit := rest[:n]
			val, err := strconv.ParseInt(lit, 10, 32)
			if err != nil {
				return nil, &ParseError{loc.Name, loc.Line, rest, intRangeError(lit)}
			}
			tokens = append(tokens, token{kind: tokenInt, at: at, n: int32(val)})
			at += n
			continue
		}

		return nil, &ParseError{loc.Name, loc.Line, rest, ErrSyntax}
	}
	return tokens, nil
}

// markerName returns the label name of a whole-line definition marker.
func markerName(line string) (string, bool) {
	if len(line) < 2 || line[0] != ':' {
		return "", false
	}
	name := line[1:]
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return "", false
		}
	}
	return name, true
}

func spanBytes(s string, pred func(c byte) bool) int {
	n := 0
	for n < len(s) && pred(s[n]) {
		n++
	}
	return n
}

func isLower(c byte) bool { return 'a' <= c && c <= 'z' }
func isDigit(c byte) bool { return '0' <= c && c <= '9' }
