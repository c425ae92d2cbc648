package mdflat

import (
	"errors"

	"github.com/growler/go-mdflat/flat"
)

// ErrNoDocument is returned when the parser produced no tree to fold.
var ErrNoDocument = errors.New("no document")

type foldOptions struct {
	quoteLevel int
	listLevel  int
}

// FlatElements folds every top-level block of the document, in order. A nil
// document yields nil; a document without content yields an empty, non-nil
// slice.
func (d *Doc) FlatElements() []flat.Element {
	if d == nil {
		return nil
	}
	els := make([]flat.Element, 0, len(d.Blocks))
	for _, b := range d.Blocks {
		els = append(els, foldOptions{}.fold(b)...)
	}
	return els
}

// Fold flattens a single block found inside quoteLevel nested block quotes.
func Fold(b Block, quoteLevel int) []flat.Element {
	return foldOptions{quoteLevel: quoteLevel}.fold(b)
}

func (o foldOptions) fold(b Block) []flat.Element {
	switch b := b.(type) {
	case *Para:
		ib := inlineBuilder{quoteLevel: o.quoteLevel}
		for _, i := range b.Inlines {
			ib.fold(i)
		}
		return ib.finish()
	case *Heading:
		return []flat.Element{&flat.Heading{Text: LowerInlines(b.Inlines), Level: b.Level}}
	case *BlockQuote:
		deeper := o
		deeper.quoteLevel++
		return deeper.foldAll(b.Blocks)
	case *CodeBlock:
		return []flat.Element{&flat.CodeBlock{Text: b.Text, Language: copyString(b.Language)}}
	case *HTMLBlock:
		return []flat.Element{&flat.HTML{Text: b.Text}}
	case *ThematicBreak:
		return []flat.Element{flat.HR}
	case *List:
		nested := o
		nested.listLevel++
		items := make([][]flat.Element, len(b.Items))
		for i, item := range b.Items {
			items[i] = nested.foldAll(item)
		}
		return []flat.Element{&flat.List{Type: b.Type, Level: o.listLevel, Items: items}}
	case *Table:
		return []flat.Element{foldTable(b)}
	}
	// table parts outside of a table, custom blocks
	return nil
}

func (o foldOptions) foldAll(blocks []Block) []flat.Element {
	var els []flat.Element
	for _, b := range blocks {
		els = append(els, o.fold(b)...)
	}
	return els
}

func foldTable(t *Table) *flat.Table {
	var header, data []flat.Row
	for _, r := range t.Rows {
		switch r := r.(type) {
		case *TableHeader:
			header = append(header, flat.Row{Kind: flat.HeaderRow, Cells: foldCells(r.Cells)})
		case *TableRow:
			data = append(data, flat.Row{Kind: flat.DataRow, Cells: foldCells(r.Cells)})
		}
	}
	return &flat.Table{Rows: append(header, data...)}
}

func foldCells(cells []Block) []flat.TextLine {
	lines := make([]flat.TextLine, 0, len(cells))
	for _, c := range cells {
		if c, ok := c.(*TableCell); ok {
			lines = append(lines, LowerInlines(c.Inlines))
		}
	}
	return lines
}

// inlineBuilder collapses the inlines of one paragraph into text runs,
// breaking them at images and raw HTML.
type inlineBuilder struct {
	quoteLevel int
	text       flat.TextLine
	elements   []flat.Element
}

func (b *inlineBuilder) append(e flat.TextElement) {
	b.text = append(b.text, e)
}

func (b *inlineBuilder) flush() {
	if len(b.text) == 0 {
		return
	}
	if b.quoteLevel > 0 {
		b.elements = append(b.elements, &flat.Quote{Items: b.text, Level: b.quoteLevel})
	} else {
		b.elements = append(b.elements, &flat.Text{Items: b.text})
	}
	b.text = nil
}

func (b *inlineBuilder) breakAndEmit(e flat.Element) {
	b.flush()
	b.elements = append(b.elements, e)
}

func (b *inlineBuilder) finish() []flat.Element {
	b.flush()
	return b.elements
}

func (b *inlineBuilder) fold(i Inline) {
	switch i := i.(type) {
	case *Image:
		if i.Title != nil && i.URL != nil {
			b.breakAndEmit(&flat.Image{Title: *i.Title, URL: *i.URL})
		}
	case *RawHTML:
		b.breakAndEmit(&flat.HTML{Text: i.Text})
	default:
		if e := LowerInline(i); e != nil {
			b.append(e)
		}
	}
}
