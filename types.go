// Package mdflat folds a CommonMark/GFM syntax tree into a flat sequence of
// semantic elements ready to be drawn by a client UI.
//
// The input tree ([Doc], [Block], [Inline]) is produced by [Parse] from
// Markdown source or read back from JSON with [ReadDoc]. [Doc.FlatElements]
// turns it into [flat.Element] values: paragraph runs, quotes, headings,
// lists, tables, images, raw HTML, rules and code blocks.
//
// Two inline extensions are recognised on top of GFM: user mentions
// (@login) and task list checkboxes ([ ] and [x]), the latter carrying the
// exact byte range of the marker in the source.
package mdflat

import (
	"github.com/growler/go-mdflat/flat"
)

// Implemented tree interchange version.
const Version = "1.0"

var _Version = []int{1, 0}

// Byte range of a checkbox marker in the source (half-open).
type Range = flat.Range

// Kind of a list.
type ListType = flat.ListType

const (
	Unordered = flat.Unordered
	Ordered   = flat.Ordered
)

// A convenience function to check if an element is of a particular type.
//
// Example:
//
//	if mdflat.Is[mdflat.Str](elt) {
//	    ...
func Is[P any, S Element](elt S) bool {
	_, ok := any(elt).(*P)
	return ok
}

// Tree element interface
type Element interface {
	writable
	element()
}

type inlinesContainer interface {
	inlines() []Inline
}

type blocksContainer interface {
	blocks() []Block
}

// Tree object tag
type Tag string

func (t Tag) Tag() Tag       { return t }
func (t Tag) String() string { return string(t) }

// Tree object with tag
type Tagged interface {
	Tag() Tag
}

// Inline element
type Inline interface {
	Element
	Tagged
	inline()
}

// Block element
type Block interface {
	Element
	Tagged
	block()
}

// Parsed document
type Doc struct {
	Blocks []Block
}

func (d *Doc) element()        {}
func (d *Doc) blocks() []Block { return d.Blocks }

// Text (string)
type Str struct {
	Text string
}

const StrTag = Tag("Str")

func (s *Str) Tag() Tag { return StrTag }
func (s *Str) inline()  {}
func (s *Str) element() {}

var SB = &SoftBreak{}

// Soft line break
type SoftBreak struct{}

const SoftBreakTag = Tag("SoftBreak")

func (*SoftBreak) Tag() Tag { return SoftBreakTag }
func (*SoftBreak) inline()  {}
func (*SoftBreak) element() {}

var LB = &LineBreak{}

// Hard line break
type LineBreak struct{}

const LineBreakTag = Tag("LineBreak")

func (*LineBreak) Tag() Tag { return LineBreakTag }
func (*LineBreak) inline()  {}
func (*LineBreak) element() {}

// Inline code (literal)
type Code struct {
	Text string
}

const CodeTag = Tag("Code")

func (c *Code) Tag() Tag { return CodeTag }
func (c *Code) inline()  {}
func (c *Code) element() {}

// Emphasized text (list of inlines)
type Emph struct {
	Inlines []Inline
}

const EmphTag = Tag("Emph")

func (e *Emph) Tag() Tag          { return EmphTag }
func (e *Emph) inlines() []Inline { return e.Inlines }
func (e *Emph) inline()           {}
func (e *Emph) element()          {}

// Strongly emphasized text (list of inlines)
type Strong struct {
	Inlines []Inline
}

const StrongTag = Tag("Strong")

func (s *Strong) Tag() Tag          { return StrongTag }
func (s *Strong) inlines() []Inline { return s.Inlines }
func (s *Strong) inline()           {}
func (s *Strong) element()          {}

// Strikethrough text (list of inlines)
type Strikethrough struct {
	Inlines []Inline
}

const StrikethroughTag = Tag("Strikethrough")

func (s *Strikethrough) Tag() Tag          { return StrikethroughTag }
func (s *Strikethrough) inlines() []Inline { return s.Inlines }
func (s *Strikethrough) inline()           {}
func (s *Strikethrough) element()          {}

// Hyperlink: link text (list of inlines), title, target.
// Title and URL are nil when absent.
type Link struct {
	Inlines []Inline
	Title   *string
	URL     *string
}

const LinkTag = Tag("Link")

func (l *Link) Tag() Tag          { return LinkTag }
func (l *Link) inlines() []Inline { return l.Inlines }
func (l *Link) inline()           {}
func (l *Link) element()          {}

// Image: alt text (list of inlines), title, target
type Image struct {
	Inlines []Inline
	Title   *string
	URL     *string
}

const ImageTag = Tag("Image")

func (i *Image) Tag() Tag          { return ImageTag }
func (i *Image) inlines() []Inline { return i.Inlines }
func (i *Image) inline()           {}
func (i *Image) element()          {}

// Inline raw HTML
type RawHTML struct {
	Text string
}

const RawHTMLTag = Tag("RawHTML")

func (r *RawHTML) Tag() Tag { return RawHTMLTag }
func (r *RawHTML) inline()  {}
func (r *RawHTML) element() {}

// User mention (@login)
type Mention struct {
	Login string
}

const MentionTag = Tag("Mention")

func (m *Mention) Tag() Tag { return MentionTag }
func (m *Mention) inline()  {}
func (m *Mention) element() {}

// Task list checkbox and the source range of its marker
type Checkbox struct {
	Checked bool
	Range   Range
}

const CheckboxTag = Tag("Checkbox")

func (c *Checkbox) Tag() Tag { return CheckboxTag }
func (c *Checkbox) inline()  {}
func (c *Checkbox) element() {}

// Inline the parser has no dedicated variant for
type CustomInline struct {
	Literal string
}

const CustomInlineTag = Tag("CustomInline")

func (c *CustomInline) Tag() Tag { return CustomInlineTag }
func (c *CustomInline) inline()  {}
func (c *CustomInline) element() {}

// Paragraph (list of inlines)
type Para struct {
	Inlines []Inline
}

const ParaTag = Tag("Para")

func (p *Para) Tag() Tag          { return ParaTag }
func (p *Para) inlines() []Inline { return p.Inlines }
func (p *Para) block()            {}
func (p *Para) element()          {}

// Heading - level (integer 1-6) and text (inlines)
type Heading struct {
	Level   int
	Inlines []Inline
}

const HeadingTag = Tag("Heading")

func (h *Heading) Tag() Tag          { return HeadingTag }
func (h *Heading) inlines() []Inline { return h.Inlines }
func (h *Heading) block()            {}
func (h *Heading) element()          {}

// Block quote (list of blocks)
type BlockQuote struct {
	Blocks []Block
}

const BlockQuoteTag = Tag("BlockQuote")

func (b *BlockQuote) Tag() Tag        { return BlockQuoteTag }
func (b *BlockQuote) blocks() []Block { return b.Blocks }
func (b *BlockQuote) block()          {}
func (b *BlockQuote) element()        {}

// Bullet or ordered list; each item is a list of blocks
type List struct {
	Type  ListType
	Items [][]Block
}

const ListTag = Tag("List")

func (l *List) Tag() Tag { return ListTag }
func (l *List) block()   {}
func (l *List) element() {}

// Code block (literal) with an optional info string language
type CodeBlock struct {
	Language *string
	Text     string
}

const CodeBlockTag = Tag("CodeBlock")

func (b *CodeBlock) Tag() Tag { return CodeBlockTag }
func (b *CodeBlock) block()   {}
func (b *CodeBlock) element() {}

// Raw HTML block
type HTMLBlock struct {
	Text string
}

const HTMLBlockTag = Tag("HTMLBlock")

func (b *HTMLBlock) Tag() Tag { return HTMLBlockTag }
func (b *HTMLBlock) block()   {}
func (b *HTMLBlock) element() {}

var HR = &ThematicBreak{}

// Horizontal rule
type ThematicBreak struct{}

const ThematicBreakTag = Tag("ThematicBreak")

func (*ThematicBreak) Tag() Tag { return ThematicBreakTag }
func (*ThematicBreak) block()   {}
func (*ThematicBreak) element() {}

// Table: header and body rows (TableHeader or TableRow)
type Table struct {
	Rows []Block
}

const TableTag = Tag("Table")

func (t *Table) Tag() Tag        { return TableTag }
func (t *Table) blocks() []Block { return t.Rows }
func (t *Table) block()          {}
func (t *Table) element()        {}

// Table header row (list of TableCell)
type TableHeader struct {
	Cells []Block
}

const TableHeaderTag = Tag("TableHeader")

func (h *TableHeader) Tag() Tag        { return TableHeaderTag }
func (h *TableHeader) blocks() []Block { return h.Cells }
func (h *TableHeader) block()          {}
func (h *TableHeader) element()        {}

// Table body row (list of TableCell)
type TableRow struct {
	Cells []Block
}

const TableRowTag = Tag("TableRow")

func (r *TableRow) Tag() Tag        { return TableRowTag }
func (r *TableRow) blocks() []Block { return r.Cells }
func (r *TableRow) block()          {}
func (r *TableRow) element()        {}

// Table cell (list of inlines)
type TableCell struct {
	Inlines []Inline
}

const TableCellTag = Tag("TableCell")

func (c *TableCell) Tag() Tag          { return TableCellTag }
func (c *TableCell) inlines() []Inline { return c.Inlines }
func (c *TableCell) block()            {}
func (c *TableCell) element()          {}

// Block the parser has no dedicated variant for
type CustomBlock struct {
	Literal string
}

const CustomBlockTag = Tag("CustomBlock")

func (c *CustomBlock) Tag() Tag { return CustomBlockTag }
func (c *CustomBlock) block()   {}
func (c *CustomBlock) element() {}
