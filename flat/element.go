// Package flat defines the flattened elements a folded document is made of.
//
// A [TextElement] is a lowered inline (text, emphasis, link, mention,
// checkbox, ...). An [Element] is a block level item: a paragraph run
// ([Text] or [Quote]), a heading, a list, a table, an image, raw HTML, a
// horizontal rule or a code block. Every value is freshly allocated by the
// fold that produced it and owned by the caller.
package flat

// Half-open byte interval into the Markdown source.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the range.
func (r Range) Len() int { return r.End - r.Start }

// Kind of a list
type ListType int

const (
	Unordered ListType = iota
	Ordered
)

func (t ListType) String() string {
	if t == Ordered {
		return "ordered"
	}
	return "unordered"
}

// Lowered inline
type TextElement interface {
	textElement()
	String() string
}

// Sequence of lowered inlines forming one line of text
type TextLine []TextElement

// Flattened block level item
type Element interface {
	element()
	String() string
}

// Text (string)
type Str struct {
	Text string
}

func (*Str) textElement() {}

var SB = &SoftBreak{}

// Soft line break
type SoftBreak struct{}

func (*SoftBreak) textElement() {}

var LB = &LineBreak{}

// Hard line break
type LineBreak struct{}

func (*LineBreak) textElement() {}

// Inline code
type Code struct {
	Text string
}

func (*Code) textElement() {}

// Emphasized text
type Emph struct {
	Children TextLine
}

func (*Emph) textElement() {}

// Strongly emphasized text
type Strong struct {
	Children TextLine
}

func (*Strong) textElement() {}

// Strikethrough text
type Strikethrough struct {
	Children TextLine
}

func (*Strikethrough) textElement() {}

// Hyperlink; Title and URL are nil when absent
type Link struct {
	Children TextLine
	Title    *string
	URL      *string
}

func (*Link) textElement() {}

// User mention
type Mention struct {
	Login string
}

func (*Mention) textElement() {}

// Task list checkbox with the source range of its marker
type Checkbox struct {
	Checked bool
	Range   Range
}

func (*Checkbox) textElement() {}

// Paragraph run outside of any block quote
type Text struct {
	Items TextLine
}

func (*Text) element() {}

// Paragraph run inside Level nested block quotes (Level >= 1)
type Quote struct {
	Items TextLine
	Level int
}

func (*Quote) element() {}

// Image with both title and URL present
type Image struct {
	Title string
	URL   string
}

func (*Image) element() {}

// Raw HTML, block or inline
type HTML struct {
	Text string
}

func (*HTML) element() {}

// Heading of level 1-6
type Heading struct {
	Text  TextLine
	Level int
}

func (*Heading) element() {}

// List. Each item is the folded content of one source list item. Level is
// the number of lists enclosing this one.
type List struct {
	Type  ListType
	Level int
	Items [][]Element
}

func (*List) element() {}

// Kind of a table row
type RowKind int

const (
	DataRow RowKind = iota
	HeaderRow
)

// Table row; every cell is a line of text
type Row struct {
	Kind  RowKind
	Cells []TextLine
}

// Table with the header row first
type Table struct {
	Rows []Row
}

func (*Table) element() {}

var HR = &ThematicBreak{}

// Horizontal rule
type ThematicBreak struct{}

func (*ThematicBreak) element() {}

// Code block with an optional language
type CodeBlock struct {
	Text     string
	Language *string
}

func (*CodeBlock) element() {}
