package mdflat

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Small streaming JSON scanner for the tree interchange format. Numbers
// are integers only, since nothing in the tree carries a fraction.

type token int

const (
	tokErr token = iota - 1
	tokEOF
	tokLBrack
	tokRBrack
	tokLBrace
	tokRBrace
	tokComma
	tokColon
	tokStr
	tokNumber
	tokTrue
	tokFalse
	tokNull
)

func (t token) String() string {
	switch t {
	case tokLBrack:
		return "["
	case tokRBrack:
		return "]"
	case tokLBrace:
		return "{"
	case tokRBrace:
		return "}"
	case tokComma:
		return ","
	case tokColon:
		return ":"
	case tokStr:
		return "string"
	case tokNumber:
		return "number"
	case tokTrue:
		return "true"
	case tokFalse:
		return "false"
	case tokNull:
		return "null"
	case tokEOF:
		return "EOF"
	default:
		return fmt.Sprintf("token(%d)", int(t))
	}
}

type scanner struct {
	r      *bufio.Reader
	sb     strings.Builder // string buffer
	err    error           // an error
	off    int             // offset of the next unread byte
	peeked bool            // tok holds a token read by peek
	tok    token           // last scanned token
	start  int             // offset of the last scanned token
	str    string          // parsed string
	num    int64           // parsed number
}

func (p *scanner) init(r io.Reader) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	*p = scanner{r: br}
}

func (p *scanner) current() int {
	if p.peeked {
		return p.start
	}
	return p.off
}

func (p *scanner) string() string {
	return p.str
}

func (p *scanner) int() int64 {
	return p.num
}

func (p *scanner) errorf(off int, f string, a ...any) token {
	p.err = fmt.Errorf("offset %d: %s", off, fmt.Sprintf(f, a...))
	return tokErr
}

// unexpected builds the error for a token other than the wanted one.
func (p *scanner) unexpected(got token, want string) error {
	if got == tokErr && p.err != nil {
		return p.err
	}
	return fmt.Errorf("offset %d: expected %s, got %s", p.start, want, got)
}

func (p *scanner) expect(tok token) error {
	if t := p.next(); t != tok {
		return p.unexpected(t, tok.String())
	}
	return nil
}

func (p *scanner) expectString(s string) error {
	if t := p.next(); t != tokStr {
		return p.unexpected(t, fmt.Sprintf("%q", s))
	}
	if p.str != s {
		return fmt.Errorf("offset %d: expected %q, got %q", p.start, s, p.str)
	}
	return nil
}

func (p *scanner) peek() token {
	if !p.peeked {
		p.tok = p.scan()
		p.peeked = true
	}
	return p.tok
}

func (p *scanner) next() token {
	if p.peeked {
		p.peeked = false
		return p.tok
	}
	p.tok = p.scan()
	return p.tok
}

func (p *scanner) readByte() (byte, bool) {
	c, err := p.r.ReadByte()
	if err != nil {
		if err != io.EOF {
			p.err = err
		}
		return 0, false
	}
	p.off++
	return c, true
}

func (p *scanner) unreadByte() {
	_ = p.r.UnreadByte()
	p.off--
}

func (p *scanner) scan() token {
	if p.err != nil {
		return tokErr
	}
	for {
		p.start = p.off
		c, ok := p.readByte()
		if !ok {
			if p.err != nil {
				return tokErr
			}
			return tokEOF
		}
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return tokLBrack
		case ']':
			return tokRBrack
		case '{':
			return tokLBrace
		case '}':
			return tokRBrace
		case ',':
			return tokComma
		case ':':
			return tokColon
		case 'n':
			return p.literal("null", tokNull)
		case 't':
			return p.literal("true", tokTrue)
		case 'f':
			return p.literal("false", tokFalse)
		case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			return p.parseNum(c)
		case '"':
			return p.parseStr()
		default:
			return p.errorf(p.start, "unexpected character %q", c)
		}
	}
}

func (p *scanner) literal(word string, tok token) token {
	for i := 1; i < len(word); i++ {
		if c, ok := p.readByte(); !ok || c != word[i] {
			return p.errorf(p.start, "invalid literal, expected %s", word)
		}
	}
	return tok
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (p *scanner) parseNum(c byte) token {
	neg := c == '-'
	if neg {
		var ok bool
		if c, ok = p.readByte(); !ok || !isDigit(c) {
			return p.errorf(p.start, "invalid number literal")
		}
	}
	var n int64
	first := c
	for {
		d := int64(c - '0')
		if n > (math.MaxInt64-d)/10 {
			return p.errorf(p.start, "number out of range")
		}
		n = n*10 + d
		var ok bool
		if c, ok = p.readByte(); !ok {
			break
		}
		if !isDigit(c) {
			p.unreadByte()
			if c == '.' || c == 'e' || c == 'E' {
				return p.errorf(p.start, "expected an integer")
			}
			break
		}
		if first == '0' {
			return p.errorf(p.start, "invalid number literal")
		}
	}
	if neg {
		n = -n
	}
	p.num = n
	return tokNumber
}

func (p *scanner) parseStr() token {
	p.sb.Reset()
	for {
		c, ok := p.readByte()
		if !ok {
			return p.errorf(p.off, "unexpected EOF in string")
		}
		switch {
		case c == '"':
			p.str = p.sb.String()
			return tokStr
		case c == '\\':
			if !p.parseEscape() {
				return tokErr
			}
		case c < 0x20:
			return p.errorf(p.off-1, "control character in string")
		case c >= utf8.RuneSelf:
			p.unreadByte()
			r, size, err := p.r.ReadRune()
			if err != nil {
				p.err = err
				return tokErr
			}
			if r == utf8.RuneError && size == 1 {
				return p.errorf(p.off, "invalid UTF-8 encoding")
			}
			p.off += size
			p.sb.WriteRune(r)
		default:
			p.sb.WriteByte(c)
		}
	}
}

func (p *scanner) parseEscape() bool {
	off := p.off - 1
	c, ok := p.readByte()
	if !ok {
		p.errorf(off, "unexpected EOF in escape sequence")
		return false
	}
	switch c {
	case '"', '/', '\\':
		p.sb.WriteByte(c)
	case 'b':
		p.sb.WriteByte('\b')
	case 'f':
		p.sb.WriteByte('\f')
	case 'n':
		p.sb.WriteByte('\n')
	case 'r':
		p.sb.WriteByte('\r')
	case 't':
		p.sb.WriteByte('\t')
	case 'u':
		r, ok := p.hex4(off)
		if !ok {
			return false
		}
		if utf16.IsSurrogate(r) {
			// a high surrogate must be followed by an escaped low one
			if b, ok := p.readByte(); !ok || b != '\\' {
				p.errorf(off, "unpaired surrogate")
				return false
			}
			if b, ok := p.readByte(); !ok || b != 'u' {
				p.errorf(off, "unpaired surrogate")
				return false
			}
			low, ok := p.hex4(off)
			if !ok {
				return false
			}
			if r = utf16.DecodeRune(r, low); r == utf8.RuneError {
				p.errorf(off, "invalid surrogate pair")
				return false
			}
		}
		p.sb.WriteRune(r)
	default:
		p.errorf(off, "invalid escape sequence")
		return false
	}
	return true
}

func (p *scanner) hex4(off int) (rune, bool) {
	var r rune
	for i := 0; i < 4; i++ {
		c, ok := p.readByte()
		if !ok {
			p.errorf(off, "unexpected EOF in escape sequence")
			return 0, false
		}
		switch {
		case isDigit(c):
			r = r<<4 | rune(c-'0')
		case c >= 'a' && c <= 'f':
			r = r<<4 | rune(c-'a'+10)
		case c >= 'A' && c <= 'F':
			r = r<<4 | rune(c-'A'+10)
		default:
			p.errorf(off, "invalid unicode escape")
			return 0, false
		}
	}
	return r, true
}
