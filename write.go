package mdflat

import (
	"io"
	"strconv"

	"github.com/growler/go-mdflat/flat"
)

type writable interface {
	write(io.Writer) error
}

// interface check

var _ []writable = []writable{
	&Doc{},

	&Str{},
	&SoftBreak{},
	&LineBreak{},
	&Code{},
	&Emph{},
	&Strong{},
	&Strikethrough{},
	&Link{},
	&Image{},
	&RawHTML{},
	&Mention{},
	&Checkbox{},
	&CustomInline{},

	&Para{},
	&Heading{},
	&BlockQuote{},
	&List{},
	&CodeBlock{},
	&HTMLBlock{},
	&ThematicBreak{},
	&Table{},
	&TableHeader{},
	&TableRow{},
	&TableCell{},
	&CustomBlock{},
}

func (s *Str) write(w io.Writer) error {
	return withTag(s, str(s.Text)).write(w)
}

func (b *SoftBreak) write(w io.Writer) error {
	return taggedStr(b.Tag()).write(w)
}

func (b *LineBreak) write(w io.Writer) error {
	return taggedStr(b.Tag()).write(w)
}

func (c *Code) write(w io.Writer) error {
	return withTag(c, str(c.Text)).write(w)
}

func (e *Emph) write(w io.Writer) error {
	return withTag(e, list(e.Inlines)).write(w)
}

func (s *Strong) write(w io.Writer) error {
	return withTag(s, list(s.Inlines)).write(w)
}

func (s *Strikethrough) write(w io.Writer) error {
	return withTag(s, list(s.Inlines)).write(w)
}

func (l *Link) write(w io.Writer) error {
	return withTag(l, tuple2(list(l.Inlines), tuple2(optStr(l.Title), optStr(l.URL)))).write(w)
}

func (i *Image) write(w io.Writer) error {
	return withTag(i, tuple2(list(i.Inlines), tuple2(optStr(i.Title), optStr(i.URL)))).write(w)
}

func (r *RawHTML) write(w io.Writer) error {
	return withTag(r, str(r.Text)).write(w)
}

func (m *Mention) write(w io.Writer) error {
	return withTag(m, str(m.Login)).write(w)
}

func (c *Checkbox) write(w io.Writer) error {
	return withTag(c, tuple2(wbool(c.Checked), rng(c.Range))).write(w)
}

func (c *CustomInline) write(w io.Writer) error {
	return withTag(c, str(c.Literal)).write(w)
}

func (p *Para) write(w io.Writer) error {
	return withTag(p, list(p.Inlines)).write(w)
}

func (h *Heading) write(w io.Writer) error {
	return withTag(h, tuple2(num(h.Level), list(h.Inlines))).write(w)
}

func (b *BlockQuote) write(w io.Writer) error {
	return withTag(b, list(b.Blocks)).write(w)
}

func (l *List) write(w io.Writer) error {
	return withTag(l, tuple2(listType(l.Type), dlist(l.Items))).write(w)
}

func (b *CodeBlock) write(w io.Writer) error {
	return withTag(b, tuple2(optStr(b.Language), str(b.Text))).write(w)
}

func (b *HTMLBlock) write(w io.Writer) error {
	return withTag(b, str(b.Text)).write(w)
}

func (b *ThematicBreak) write(w io.Writer) error {
	return taggedStr(b.Tag()).write(w)
}

func (t *Table) write(w io.Writer) error {
	return withTag(t, list(t.Rows)).write(w)
}

func (h *TableHeader) write(w io.Writer) error {
	return withTag(h, list(h.Cells)).write(w)
}

func (r *TableRow) write(w io.Writer) error {
	return withTag(r, list(r.Cells)).write(w)
}

func (c *TableCell) write(w io.Writer) error {
	return withTag(c, list(c.Inlines)).write(w)
}

func (c *CustomBlock) write(w io.Writer) error {
	return withTag(c, str(c.Literal)).write(w)
}

const versionKey = "mdflat-api-version"

func (d *Doc) write(w io.Writer) error {
	if err := writeDelim(w, '{'); err != nil {
		return err
	}
	if err := writeKey(w, versionKey); err != nil {
		return err
	}
	if err := writeSeq(w, len(_Version), func(i int) error { return num(_Version[i]).write(w) }); err != nil {
		return err
	}
	if err := writeDelim(w, ','); err != nil {
		return err
	}
	if err := writeKey(w, "blocks"); err != nil {
		return err
	}
	if err := list(d.Blocks).write(w); err != nil {
		return err
	}
	return writeDelim(w, '}')
}

// Write writes the JSON encoding of elt to w.
//
// Example:
//
//	doc := mdflat.Parse(src, mdflat.DefaultConf)
//	if err := mdflat.Write(os.Stdout, doc); err != nil {
//		log.Fatal(err)
//	}
func Write[E Element](w io.Writer, elt E) error {
	return elt.write(w)
}

// WriteElements writes the JSON encoding of folded elements to w.
func WriteElements(w io.Writer, els []flat.Element) error {
	return elements(els).write(w)
}

// -------------------
// folded elements

type elements []flat.Element

func (els elements) write(w io.Writer) error {
	return writeSeq(w, len(els), func(i int) error { return element(els[i]).write(w) })
}

type itemList [][]flat.Element

func (items itemList) write(w io.Writer) error {
	return writeSeq(w, len(items), func(i int) error { return elements(items[i]).write(w) })
}

type textLine flat.TextLine

func (l textLine) write(w io.Writer) error {
	return writeSeq(w, len(l), func(i int) error { return textElement(l[i]).write(w) })
}

type cells []flat.TextLine

func (c cells) write(w io.Writer) error {
	return writeSeq(w, len(c), func(i int) error { return textLine(c[i]).write(w) })
}

type rows []flat.Row

func (r rows) write(w io.Writer) error {
	return writeSeq(w, len(r), func(i int) error {
		tag := Tag("Data")
		if r[i].Kind == flat.HeaderRow {
			tag = "Header"
		}
		return withTag(tag, cells(r[i].Cells)).write(w)
	})
}

type welement struct {
	e flat.Element
}

func element(e flat.Element) welement { return welement{e} }

func (we welement) write(w io.Writer) error {
	switch e := we.e.(type) {
	case *flat.Text:
		return withTag(Tag("Text"), textLine(e.Items)).write(w)
	case *flat.Quote:
		return withTag(Tag("Quote"), tuple2(num(e.Level), textLine(e.Items))).write(w)
	case *flat.Image:
		return withTag(Tag("Image"), tuple2(str(e.Title), str(e.URL))).write(w)
	case *flat.HTML:
		return withTag(Tag("HTML"), str(e.Text)).write(w)
	case *flat.Heading:
		return withTag(Tag("Heading"), tuple2(num(e.Level), textLine(e.Text))).write(w)
	case *flat.List:
		return withTag(Tag("List"), tuple3(listType(e.Type), num(e.Level), itemList(e.Items))).write(w)
	case *flat.Table:
		return withTag(Tag("Table"), rows(e.Rows)).write(w)
	case *flat.ThematicBreak:
		return taggedStr(ThematicBreakTag).write(w)
	case *flat.CodeBlock:
		return withTag(Tag("CodeBlock"), tuple2(optStr(e.Language), str(e.Text))).write(w)
	}
	return writeNull(w)
}

type wtext struct {
	e flat.TextElement
}

func textElement(e flat.TextElement) wtext { return wtext{e} }

func (wt wtext) write(w io.Writer) error {
	switch e := wt.e.(type) {
	case *flat.Str:
		return withTag(StrTag, str(e.Text)).write(w)
	case *flat.SoftBreak:
		return taggedStr(SoftBreakTag).write(w)
	case *flat.LineBreak:
		return taggedStr(LineBreakTag).write(w)
	case *flat.Code:
		return withTag(CodeTag, str(e.Text)).write(w)
	case *flat.Emph:
		return withTag(EmphTag, textLine(e.Children)).write(w)
	case *flat.Strong:
		return withTag(StrongTag, textLine(e.Children)).write(w)
	case *flat.Strikethrough:
		return withTag(StrikethroughTag, textLine(e.Children)).write(w)
	case *flat.Link:
		return withTag(LinkTag, tuple2(textLine(e.Children), tuple2(optStr(e.Title), optStr(e.URL)))).write(w)
	case *flat.Mention:
		return withTag(MentionTag, str(e.Login)).write(w)
	case *flat.Checkbox:
		return withTag(CheckboxTag, tuple2(wbool(e.Checked), rng(e.Range))).write(w)
	}
	return writeNull(w)
}

// -------------------
// primitives

func listType(t ListType) tstr {
	if t == Ordered {
		return "Ordered"
	}
	return "Unordered"
}

func rng(r Range) t2[wnum, wnum] {
	return tuple2(num(r.Start), num(r.End))
}

// taggedStr writes a variant without contents, {"t":"Tag"}
func taggedStr[T ~string](t T) tstr { return tstr(t) }

type tstr string

func (s tstr) write(w io.Writer) error {
	_, err := w.Write(append(appendQuote([]byte(`{"t":`), string(s)), '}'))
	return err
}

func num[T ~int | ~int64](n T) wnum { return wnum(n) }

type wnum int64

func (n wnum) write(w io.Writer) error {
	_, err := w.Write(strconv.AppendInt(nil, int64(n), 10))
	return err
}

type wbool bool

func (b wbool) write(w io.Writer) error {
	_, err := w.Write(strconv.AppendBool(nil, bool(b)))
	return err
}

func str[T ~string](s T) wstr { return wstr(s) }

type wstr string

func (s wstr) write(w io.Writer) error {
	_, err := w.Write(appendQuote(nil, string(s)))
	return err
}

// optional string, null when absent
type wopt struct {
	s *string
}

func optStr(s *string) wopt { return wopt{s} }

func (o wopt) write(w io.Writer) error {
	if o.s == nil {
		return writeNull(w)
	}
	return str(*o.s).write(w)
}

// fixed size arrays of mixed items
type t2[T1, T2 writable] struct {
	e1 T1
	e2 T2
}

func tuple2[T1, T2 writable](e1 T1, e2 T2) t2[T1, T2] { return t2[T1, T2]{e1, e2} }

func (t t2[T1, T2]) write(w io.Writer) error {
	return writeSeq(w, 2, func(i int) error {
		if i == 0 {
			return t.e1.write(w)
		}
		return t.e2.write(w)
	})
}

type t3[T1, T2, T3 writable] struct {
	e1 T1
	e2 T2
	e3 T3
}

func tuple3[T1, T2, T3 writable](e1 T1, e2 T2, e3 T3) t3[T1, T2, T3] {
	return t3[T1, T2, T3]{e1, e2, e3}
}

func (t t3[T1, T2, T3]) write(w io.Writer) error {
	return writeSeq(w, 3, func(i int) error {
		switch i {
		case 0:
			return t.e1.write(w)
		case 1:
			return t.e2.write(w)
		}
		return t.e3.write(w)
	})
}

// withTag wraps c into a tagged variant, {"t":"Tag","c":c}
func withTag[T Tagged, C writable](e T, c C) tagged[C] {
	return tagged[C]{tag: e.Tag(), c: c}
}

type tagged[C writable] struct {
	tag Tag
	c   C
}

func (e tagged[C]) write(w io.Writer) error {
	head := appendQuote([]byte(`{"t":`), string(e.tag))
	if _, err := w.Write(append(head, `,"c":`...)); err != nil {
		return err
	}
	if err := e.c.write(w); err != nil {
		return err
	}
	return writeDelim(w, '}')
}

func list[T writable](lst []T) l[T] { return l[T](lst) }

type l[T writable] []T

func (lst l[T]) write(w io.Writer) error {
	return writeSeq(w, len(lst), func(i int) error { return lst[i].write(w) })
}

func dlist[T writable](l [][]T) dl[T] { return dl[T](l) }

type dl[T writable] [][]T

func (l dl[T]) write(w io.Writer) error {
	return writeSeq(w, len(l), func(i int) error { return list(l[i]).write(w) })
}

// writeSeq writes a JSON array of n items, item(i) writing the i-th.
func writeSeq(w io.Writer, n int, item func(i int) error) error {
	if err := writeDelim(w, '['); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if i > 0 {
			if err := writeDelim(w, ','); err != nil {
				return err
			}
		}
		if err := item(i); err != nil {
			return err
		}
	}
	return writeDelim(w, ']')
}

func writeDelim(w io.Writer, b byte) error {
	_, err := w.Write([]byte{b})
	return err
}

func writeKey(w io.Writer, name string) error {
	_, err := w.Write(append(appendQuote(nil, name), ':'))
	return err
}

func writeNull(w io.Writer) error {
	_, err := io.WriteString(w, "null")
	return err
}

const hex = "0123456789abcdef"

// appendQuote appends s as a JSON string. Control characters other than the
// usual short escapes are written as \u00XX.
func appendQuote(b []byte, s string) []byte {
	b = append(b, '"')
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		b = append(b, s[start:i]...)
		switch c {
		case '"', '\\':
			b = append(b, '\\', c)
		case '\b':
			b = append(b, '\\', 'b')
		case '\f':
			b = append(b, '\\', 'f')
		case '\n':
			b = append(b, '\\', 'n')
		case '\r':
			b = append(b, '\\', 'r')
		case '\t':
			b = append(b, '\\', 't')
		default:
			b = append(b, '\\', 'u', '0', '0', hex[c>>4], hex[c&0xf])
		}
		start = i + 1
	}
	b = append(b, s[start:]...)
	return append(b, '"')
}
