package mdflat

import (
	"errors"
	"fmt"
	"io"
)

// ErrVersion is returned when a JSON tree has an incompatible format version.
var ErrVersion = errors.New("unsupported tree version")

// ----------- inlines -------------

func readInline(s *scanner) (Inline, error) {
	tag, err := readTag(s)
	if err != nil {
		return nil, err
	}
	switch tag {
	case SoftBreakTag:
		return readEmptyObj[Inline](SB)(s)
	case LineBreakTag:
		return readEmptyObj[Inline](LB)(s)
	case StrTag:
		return readObj(readStr)(s)
	case CodeTag:
		return readObj(readCode)(s)
	case EmphTag:
		return readObj(readEmph)(s)
	case StrongTag:
		return readObj(readStrong)(s)
	case StrikethroughTag:
		return readObj(readStrikethrough)(s)
	case LinkTag:
		return readObj(readLink)(s)
	case ImageTag:
		return readObj(readImage)(s)
	case RawHTMLTag:
		return readObj(readRawHTML)(s)
	case MentionTag:
		return readObj(readMention)(s)
	case CheckboxTag:
		return readObj(readCheckbox)(s)
	case CustomInlineTag:
		return readObj(readCustomInline)(s)
	default:
		return nil, errorf(s, "unknown inline type %q", tag)
	}
}

// Str
func readStr(s *scanner) (Inline, error) {
	if str, err := readString(s); err != nil {
		return nil, err
	} else {
		return &Str{str}, nil
	}
}

// Code
func readCode(s *scanner) (Inline, error) {
	if str, err := readString(s); err != nil {
		return nil, err
	} else {
		return &Code{str}, nil
	}
}

// Emph
func readEmph(s *scanner) (Inline, error) {
	if list, err := listr(readInline)(s); err != nil {
		return nil, err
	} else {
		return &Emph{list}, nil
	}
}

// Strong
func readStrong(s *scanner) (Inline, error) {
	if list, err := listr(readInline)(s); err != nil {
		return nil, err
	} else {
		return &Strong{list}, nil
	}
}

// Strikethrough
func readStrikethrough(s *scanner) (Inline, error) {
	if list, err := listr(readInline)(s); err != nil {
		return nil, err
	} else {
		return &Strikethrough{list}, nil
	}
}

// target of a link or an image
type linkTarget struct {
	title *string
	url   *string
}

func readTarget(s *scanner) (t linkTarget, err error) {
	tup, err := tupler(s, 2)
	if err != nil {
		return
	}
	if t.title, tup, err = readItem(readOptString)(s, tup); err != nil {
		return
	}
	t.url, _, err = readItem(readOptString)(s, tup)
	return
}

func readLink(s *scanner) (Inline, error) {
	tup, err := tupler(s, 2)
	if err != nil {
		return nil, err
	}
	inlines, tup, err := readItem(listr(readInline))(s, tup)
	if err != nil {
		return nil, err
	}
	dst, _, err := readItem(readTarget)(s, tup)
	if err != nil {
		return nil, err
	}
	return &Link{inlines, dst.title, dst.url}, nil
}

func readImage(s *scanner) (Inline, error) {
	tup, err := tupler(s, 2)
	if err != nil {
		return nil, err
	}
	inlines, tup, err := readItem(listr(readInline))(s, tup)
	if err != nil {
		return nil, err
	}
	dst, _, err := readItem(readTarget)(s, tup)
	if err != nil {
		return nil, err
	}
	return &Image{inlines, dst.title, dst.url}, nil
}

// RawHTML
func readRawHTML(s *scanner) (Inline, error) {
	if str, err := readString(s); err != nil {
		return nil, err
	} else {
		return &RawHTML{str}, nil
	}
}

// Mention
func readMention(s *scanner) (Inline, error) {
	if str, err := readString(s); err != nil {
		return nil, err
	} else {
		return &Mention{str}, nil
	}
}

func readRange(s *scanner) (r Range, err error) {
	tup, err := tupler(s, 2)
	if err != nil {
		return
	}
	if r.Start, tup, err = readItem(readInt)(s, tup); err != nil {
		return
	}
	if r.End, _, err = readItem(readInt)(s, tup); err != nil {
		return
	}
	if r.Start < 0 || r.End < r.Start {
		err = errorf(s, "invalid range [%d, %d)", r.Start, r.End)
	}
	return
}

// Checkbox
func readCheckbox(s *scanner) (Inline, error) {
	tup, err := tupler(s, 2)
	if err != nil {
		return nil, err
	}
	checked, tup, err := readItem(readBool)(s, tup)
	if err != nil {
		return nil, err
	}
	rng, _, err := readItem(readRange)(s, tup)
	if err != nil {
		return nil, err
	}
	return &Checkbox{checked, rng}, nil
}

// CustomInline
func readCustomInline(s *scanner) (Inline, error) {
	if str, err := readString(s); err != nil {
		return nil, err
	} else {
		return &CustomInline{str}, nil
	}
}

// ----------- blocks -------------

func readBlock(s *scanner) (Block, error) {
	tag, err := readTag(s)
	if err != nil {
		return nil, err
	}
	switch tag {
	case ThematicBreakTag:
		return readEmptyObj[Block](HR)(s)
	case ParaTag:
		return readObj(readPara)(s)
	case HeadingTag:
		return readObj(readHeading)(s)
	case BlockQuoteTag:
		return readObj(readBlockQuote)(s)
	case ListTag:
		return readObj(readList)(s)
	case CodeBlockTag:
		return readObj(readCodeBlock)(s)
	case HTMLBlockTag:
		return readObj(readHTMLBlock)(s)
	case TableTag:
		return readObj(readTable)(s)
	case TableHeaderTag:
		return readObj(readTableHeader)(s)
	case TableRowTag:
		return readObj(readTableRow)(s)
	case TableCellTag:
		return readObj(readTableCell)(s)
	case CustomBlockTag:
		return readObj(readCustomBlock)(s)
	default:
		return nil, errorf(s, "unknown block type %q", tag)
	}
}

func readPara(s *scanner) (Block, error) {
	if list, err := listr(readInline)(s); err != nil {
		return nil, err
	} else {
		return &Para{list}, nil
	}
}

func readHeading(s *scanner) (Block, error) {
	tup, err := tupler(s, 2)
	if err != nil {
		return nil, err
	}
	level, tup, err := readItem(readInt)(s, tup)
	if err != nil {
		return nil, err
	}
	if level < 1 || level > 6 {
		return nil, errorf(s, "invalid heading level %d", level)
	}
	inlines, _, err := readItem(listr(readInline))(s, tup)
	if err != nil {
		return nil, err
	}
	return &Heading{level, inlines}, nil
}

func readBlockQuote(s *scanner) (Block, error) {
	if list, err := listr(readBlock)(s); err != nil {
		return nil, err
	} else {
		return &BlockQuote{list}, nil
	}
}

var readListType = readTags(map[string]ListType{
	"Unordered": Unordered,
	"Ordered":   Ordered,
})

func readList(s *scanner) (Block, error) {
	tup, err := tupler(s, 2)
	if err != nil {
		return nil, err
	}
	typ, tup, err := readItem(readListType)(s, tup)
	if err != nil {
		return nil, err
	}
	items, _, err := readItem(dlistr(readBlock))(s, tup)
	if err != nil {
		return nil, err
	}
	return &List{typ, items}, nil
}

func readCodeBlock(s *scanner) (Block, error) {
	tup, err := tupler(s, 2)
	if err != nil {
		return nil, err
	}
	lang, tup, err := readItem(readOptString)(s, tup)
	if err != nil {
		return nil, err
	}
	text, _, err := readItem(readString)(s, tup)
	if err != nil {
		return nil, err
	}
	return &CodeBlock{lang, text}, nil
}

func readHTMLBlock(s *scanner) (Block, error) {
	if str, err := readString(s); err != nil {
		return nil, err
	} else {
		return &HTMLBlock{str}, nil
	}
}

func readTable(s *scanner) (Block, error) {
	if list, err := listr(readBlock)(s); err != nil {
		return nil, err
	} else {
		return &Table{list}, nil
	}
}

func readTableHeader(s *scanner) (Block, error) {
	if list, err := listr(readBlock)(s); err != nil {
		return nil, err
	} else {
		return &TableHeader{list}, nil
	}
}

func readTableRow(s *scanner) (Block, error) {
	if list, err := listr(readBlock)(s); err != nil {
		return nil, err
	} else {
		return &TableRow{list}, nil
	}
}

func readTableCell(s *scanner) (Block, error) {
	if list, err := listr(readInline)(s); err != nil {
		return nil, err
	} else {
		return &TableCell{list}, nil
	}
}

func readCustomBlock(s *scanner) (Block, error) {
	if str, err := readString(s); err != nil {
		return nil, err
	} else {
		return &CustomBlock{str}, nil
	}
}

// ----------- helpers -------------

// reads the opening of a tagged object up to and including the tag value
func readTag(s *scanner) (Tag, error) {
	if err := s.expect(tokLBrace); err != nil {
		return "", err
	}
	if err := s.expectString("t"); err != nil {
		return "", err
	}
	if err := s.expect(tokColon); err != nil {
		return "", err
	}
	if err := s.expect(tokStr); err != nil {
		return "", err
	}
	return Tag(s.string()), nil
}

// reads content of a tagged object
func readObj[T any](r func(*scanner) (T, error)) func(*scanner) (T, error) {
	return func(s *scanner) (ret T, err error) {
		if err = s.expect(tokComma); err != nil {
			return
		}
		if err = s.expectString("c"); err != nil {
			return
		}
		if err = s.expect(tokColon); err != nil {
			return
		}
		if ret, err = r(s); err != nil {
			return
		}
		err = s.expect(tokRBrace)
		return
	}
}

// reads empty tagged object
func readEmptyObj[T any](v T) func(*scanner) (T, error) {
	return func(s *scanner) (ret T, err error) {
		if err = s.expect(tokRBrace); err != nil {
			return
		}
		return v, nil
	}
}

// reads one of the tags
func readTags[T any](tags map[string]T) func(*scanner) (T, error) {
	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	return func(s *scanner) (ret T, err error) {
		tag, err := readTag(s)
		if err != nil {
			return
		}
		elt, ok := tags[string(tag)]
		if !ok {
			err = errorf(s, "expected one of %v, got %q", names, tag)
			return
		}
		if err = s.expect(tokRBrace); err != nil {
			return
		}
		return elt, nil
	}
}

// tuple reader
type tuple int

// creates a new tuple reader
func tupler(s *scanner, cnt int) (tuple, error) {
	if err := s.expect(tokLBrack); err != nil {
		return 0, err
	} else {
		return tuple(cnt), nil
	}
}

// reads tuple item
func readItem[T any](r func(*scanner) (T, error)) func(*scanner, tuple) (T, tuple, error) {
	return func(s *scanner, t tuple) (ret T, rt tuple, err error) {
		ret, err = r(s)
		if err != nil {
			return
		}
		rt = t - 1
		if rt == 0 {
			err = s.expect(tokRBrack)
		} else {
			err = s.expect(tokComma)
		}
		return
	}
}

// reads a field of an object
func readField[T any](s *scanner, n int, r func(*scanner) (T, error)) (ret T, err error) {
	if err = s.expect(tokColon); err != nil {
		return
	}
	ret, err = r(s)
	if err != nil {
		return
	}
	if n == 1 {
		err = s.expect(tokRBrace)
	} else {
		err = s.expect(tokComma)
	}
	return
}

// ----------- list readers -------------

// a list of lists reader
func dlistr[T any, R func(*scanner) (T, error)](r R) func(*scanner) ([][]T, error) {
	return listr(listr(r))
}

// a list reader; an empty list reads as nil
func listr[T any, R func(*scanner) (T, error)](r R) func(*scanner) ([]T, error) {
	return func(s *scanner) ([]T, error) {
		var ret []T
		if err := s.expect(tokLBrack); err != nil {
			return nil, err
		}
		if s.peek() == tokRBrack {
			s.next()
			return ret, nil
		}
		for {
			item, err := r(s)
			if err != nil {
				return nil, err
			}
			ret = append(ret, item)
			if tok := s.next(); tok == tokRBrack {
				break
			} else if tok != tokComma {
				return nil, s.unexpected(tok, "comma or right bracket")
			}
		}
		return ret, nil
	}
}

// int reader
func readInt(s *scanner) (int, error) {
	if err := s.expect(tokNumber); err != nil {
		return 0, err
	}
	n := s.int()
	if int64(int(n)) != n {
		return 0, errorf(s, "number %d out of range", n)
	}
	return int(n), nil
}

// bool reader
func readBool(s *scanner) (bool, error) {
	switch tok := s.next(); tok {
	case tokTrue:
		return true, nil
	case tokFalse:
		return false, nil
	default:
		return false, s.unexpected(tok, "boolean")
	}
}

// string reader
func readString(s *scanner) (string, error) {
	if err := s.expect(tokStr); err != nil {
		return "", err
	}
	return s.string(), nil
}

// string or null reader
func readOptString(s *scanner) (*string, error) {
	if s.peek() == tokNull {
		s.next()
		return nil, nil
	}
	str, err := readString(s)
	if err != nil {
		return nil, err
	}
	return &str, nil
}

func errorf(s *scanner, f string, a ...any) error {
	return fmt.Errorf("offset %d: %s", s.start, fmt.Sprintf(f, a...))
}

// compares versions component by component; a missing component sorts first
func cmpSemver(mine, their []int) int {
	for i := range mine {
		switch {
		case i >= len(their), mine[i] > their[i]:
			return 1
		case mine[i] < their[i]:
			return -1
		}
	}
	if len(mine) < len(their) {
		return -1
	}
	return 0
}

// ReadDoc parses a JSON encoded tree written by Write. Trees with a
// different major version are rejected with ErrVersion.
func ReadDoc(r io.Reader) (*Doc, error) {
	var s = scanner{}
	s.init(r)
	if err := s.expect(tokLBrace); err != nil {
		return nil, err
	}
	var (
		doc             = &Doc{}
		err             error
		version, blocks bool
	)
	for i := 2; i > 0; i-- {
		if err := s.expect(tokStr); err != nil {
			return nil, err
		}
		switch s.string() {
		case versionKey:
			v, err := readField(&s, i, listr(readInt))
			if err != nil {
				return nil, err
			}
			if len(v) == 0 || cmpSemver(v[:1], _Version[:1]) != 0 {
				return nil, fmt.Errorf("%w %v", ErrVersion, v)
			}
			version = true
		case "blocks":
			if doc.Blocks, err = readField(&s, i, listr(readBlock)); err != nil {
				return nil, err
			}
			blocks = true
		default:
			return nil, errorf(&s, "unknown field %q", s.string())
		}
	}
	if !version || !blocks {
		return nil, fmt.Errorf("incomplete tree: both %q and \"blocks\" are required", versionKey)
	}
	return doc, nil
}
