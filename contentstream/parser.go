package contentstream

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
)

// ErrSyntax is returned for malformed content streams.
var ErrSyntax = errors.New("content stream syntax error")

// Parser tokenizes one content stream.
type Parser struct {
	data  []byte
	pos   int
	stack []Operand
	ops   []Operation
}

// NewParser creates a parser for data.
func NewParser(data []byte) *Parser {
	return &Parser{data: data}
}

// Parse returns every operation in stream order. Operands left on the stack
// when the stream ends are discarded.
func (p *Parser) Parse() ([]Operation, error) {
	for {
		p.skipSpaceAndComments()
		if p.pos >= len(p.data) {
			return p.ops, nil
		}
		if err := p.parseNext(); err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parseNext() error {
	c := p.data[p.pos]
	if isLetter(c) || c == '\'' || c == '"' {
		return p.parseKeyword()
	}

	start := p.pos
	operand, err := p.parseOperand()
	if err != nil {
		return fmt.Errorf("%w at offset %d: %w", ErrSyntax, start, err)
	}
	p.stack = append(p.stack, operand)
	return nil
}

// parseKeyword reads a bare token. It is either an operator or one of the
// true, false and null operands.
func (p *Parser) parseKeyword() error {
	word := p.readRegular()
	switch word {
	case "true":
		p.stack = append(p.stack, Bool(true))
		return nil
	case "false":
		p.stack = append(p.stack, Bool(false))
		return nil
	case "null":
		p.stack = append(p.stack, Null{})
		return nil
	}

	p.ops = append(p.ops, Operation{Operator: word, Operands: p.stack})
	p.stack = nil

	if word == "BI" {
		return p.skipInlineImage()
	}
	return nil
}

// readRegular reads a run of regular characters.
func (p *Parser) readRegular() string {
	start := p.pos
	for p.pos < len(p.data) && !isWhitespace(p.data[p.pos]) && !isDelimiter(p.data[p.pos]) {
		p.pos++
	}
	return string(p.data[start:p.pos])
}

// skipInlineImage moves past the image dictionary and binary data that follow
// BI, up to and including the EI keyword.
func (p *Parser) skipInlineImage() error {
	id := bytes.Index(p.data[p.pos:], []byte("ID"))
	if id < 0 {
		return fmt.Errorf("%w: inline image without ID", ErrSyntax)
	}
	p.pos += id + 2

	for i := p.pos; i+1 < len(p.data); i++ {
		if p.data[i] != 'E' || p.data[i+1] != 'I' {
			continue
		}
		before := i == 0 || isWhitespace(p.data[i-1])
		after := i+2 >= len(p.data) || isWhitespace(p.data[i+2])
		if before && after {
			p.pos = i + 2
			return nil
		}
	}
	return fmt.Errorf("%w: inline image without EI", ErrSyntax)
}

func (p *Parser) parseOperand() (Operand, error) {
	p.skipSpaceAndComments()
	if p.pos >= len(p.data) {
		return nil, errors.New("unexpected end of stream")
	}

	c := p.data[p.pos]
	switch {
	case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	case c == '(':
		return p.parseString()
	case c == '<' && p.peek(1) == '<':
		return p.parseDict()
	case c == '<':
		return p.parseHexString()
	case c == '/':
		return p.parseName(), nil
	case c == '[':
		return p.parseArray()
	case isLetter(c):
		switch word := p.readRegular(); word {
		case "true":
			return Bool(true), nil
		case "false":
			return Bool(false), nil
		case "null":
			return Null{}, nil
		default:
			return nil, fmt.Errorf("operator %q inside a composite operand", word)
		}
	}
	return nil, fmt.Errorf("unexpected character %q", c)
}

func (p *Parser) parseNumber() (Operand, error) {
	start := p.pos
	if c := p.data[p.pos]; c == '+' || c == '-' {
		p.pos++
	}
	seenDot := false
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if c == '.' && !seenDot {
			seenDot = true
		} else if c < '0' || c > '9' {
			break
		}
		p.pos++
	}

	text := string(p.data[start:p.pos])
	// some producers write "-" or "." alone for zero
	if text == "-" || text == "+" || text == "." || text == "-." {
		return Number(0), nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q: %w", text, err)
	}
	return Number(v), nil
}

func (p *Parser) parseString() (Operand, error) {
	p.pos++ // (

	var buf bytes.Buffer
	depth := 1
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		p.pos++

		switch c {
		case '(':
			depth++
			buf.WriteByte(c)
		case ')':
			depth--
			if depth == 0 {
				return String(buf.Bytes()), nil
			}
			buf.WriteByte(c)
		case '\\':
			p.parseEscape(&buf)
		default:
			buf.WriteByte(c)
		}
	}
	return nil, errors.New("unclosed string")
}

func (p *Parser) parseEscape(buf *bytes.Buffer) {
	if p.pos >= len(p.data) {
		return
	}
	c := p.data[p.pos]
	p.pos++

	switch c {
	case 'n':
		buf.WriteByte('\n')
	case 'r':
		buf.WriteByte('\r')
	case 't':
		buf.WriteByte('\t')
	case 'b':
		buf.WriteByte('\b')
	case 'f':
		buf.WriteByte('\f')
	case '\r':
		// line continuation
		if p.peek(0) == '\n' {
			p.pos++
		}
	case '\n':
	case '0', '1', '2', '3', '4', '5', '6', '7':
		v := int(c - '0')
		for i := 0; i < 2 && p.pos < len(p.data); i++ {
			d := p.data[p.pos]
			if d < '0' || d > '7' {
				break
			}
			v = v*8 + int(d-'0')
			p.pos++
		}
		buf.WriteByte(byte(v))
	default:
		// \( \) \\ and unknown escapes keep the character
		buf.WriteByte(c)
	}
}

func (p *Parser) parseHexString() (Operand, error) {
	p.pos++ // <

	var digits []byte
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		p.pos++
		if c == '>' {
			if len(digits)%2 == 1 {
				digits = append(digits, '0')
			}
			out := make([]byte, len(digits)/2)
			for i := range out {
				out[i] = hexValue(digits[2*i])<<4 | hexValue(digits[2*i+1])
			}
			return String(out), nil
		}
		if isWhitespace(c) {
			continue
		}
		if !isHexDigit(c) {
			return nil, fmt.Errorf("invalid hex digit %q", c)
		}
		digits = append(digits, c)
	}
	return nil, errors.New("unclosed hex string")
}

func (p *Parser) parseName() Operand {
	p.pos++ // /

	var buf bytes.Buffer
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if isWhitespace(c) || isDelimiter(c) {
			break
		}
		if c == '#' && p.pos+2 < len(p.data) && isHexDigit(p.data[p.pos+1]) && isHexDigit(p.data[p.pos+2]) {
			buf.WriteByte(hexValue(p.data[p.pos+1])<<4 | hexValue(p.data[p.pos+2]))
			p.pos += 3
			continue
		}
		buf.WriteByte(c)
		p.pos++
	}
	return Name(buf.String())
}

func (p *Parser) parseArray() (Operand, error) {
	p.pos++ // [

	arr := Array{}
	for {
		p.skipSpaceAndComments()
		if p.pos >= len(p.data) {
			return nil, errors.New("unclosed array")
		}
		if p.data[p.pos] == ']' {
			p.pos++
			return arr, nil
		}
		v, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

func (p *Parser) parseDict() (Operand, error) {
	p.pos += 2 // <<

	dict := Dict{}
	for {
		p.skipSpaceAndComments()
		if p.pos >= len(p.data) {
			return nil, errors.New("unclosed dictionary")
		}
		if p.data[p.pos] == '>' && p.peek(1) == '>' {
			p.pos += 2
			return dict, nil
		}
		if p.data[p.pos] != '/' {
			return nil, errors.New("dictionary key is not a name")
		}
		key := p.parseName().(Name)
		v, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		dict[string(key)] = v
	}
}

func (p *Parser) peek(offset int) byte {
	if p.pos+offset >= len(p.data) {
		return 0
	}
	return p.data[p.pos+offset]
}

func (p *Parser) skipSpaceAndComments() {
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if c == '%' {
			for p.pos < len(p.data) && p.data[p.pos] != '\n' && p.data[p.pos] != '\r' {
				p.pos++
			}
			continue
		}
		if !isWhitespace(c) {
			return
		}
		p.pos++
	}
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexValue(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
