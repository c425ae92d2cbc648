// Package dot provides short constructors for building block trees,
// meant to be dot-imported in tests and small programs.
package dot

import "github.com/growler/go-mdflat"

var (
	Continue = mdflat.WalkContinue
	Replace  = mdflat.WalkReplace
	Skip     = mdflat.WalkSkip
	Stop     = mdflat.WalkStop
)

const (
	Ordered   = mdflat.Ordered
	Unordered = mdflat.Unordered
)

var (
	SB = mdflat.SB
	LB = mdflat.LB
	HR = mdflat.HR
)

func Doc(b ...mdflat.Block) *mdflat.Doc {
	return &mdflat.Doc{Blocks: b}
}

func Blocks(b ...mdflat.Block) []mdflat.Block {
	return b
}

func Inlines(i ...mdflat.Inline) []mdflat.Inline {
	return i
}

// Text (string)
func Str(s string) *mdflat.Str {
	return &mdflat.Str{Text: s}
}

// Inline code
func Code(s string) *mdflat.Code {
	return &mdflat.Code{Text: s}
}

// Emphasized text (list of inlines)
func Emph(i ...mdflat.Inline) *mdflat.Emph {
	return &mdflat.Emph{Inlines: i}
}

// Strongly emphasized text (list of inlines)
func Strong(i ...mdflat.Inline) *mdflat.Strong {
	return &mdflat.Strong{Inlines: i}
}

// Struck out text (list of inlines)
func Strikethrough(i ...mdflat.Inline) *mdflat.Strikethrough {
	return &mdflat.Strikethrough{Inlines: i}
}

// Hyperlink with an empty title
func Link(url string, i ...mdflat.Inline) *mdflat.Link {
	return &mdflat.Link{Inlines: i, Title: ptr(""), URL: ptr(url)}
}

// Image with alt text
func Image(url, title string, i ...mdflat.Inline) *mdflat.Image {
	return &mdflat.Image{Inlines: i, Title: ptr(title), URL: ptr(url)}
}

func RawHTML(s string) *mdflat.RawHTML {
	return &mdflat.RawHTML{Text: s}
}

func Mention(login string) *mdflat.Mention {
	return &mdflat.Mention{Login: login}
}

// Checkbox occupying the three source bytes at start.
func Checkbox(checked bool, start int) *mdflat.Checkbox {
	return &mdflat.Checkbox{Checked: checked, Range: mdflat.Range{Start: start, End: start + 3}}
}

// Paragraph
func Para(i ...mdflat.Inline) *mdflat.Para {
	return &mdflat.Para{Inlines: i}
}

// Heading of the given level
func Heading(level int, i ...mdflat.Inline) *mdflat.Heading {
	return &mdflat.Heading{Level: level, Inlines: i}
}

func BlockQuote(b ...mdflat.Block) *mdflat.BlockQuote {
	return &mdflat.BlockQuote{Blocks: b}
}

// List of items, each item a list of blocks
func List(t mdflat.ListType, items ...[]mdflat.Block) *mdflat.List {
	return &mdflat.List{Type: t, Items: items}
}

// Fenced code block; an empty language means none.
func CodeBlock(lang, text string) *mdflat.CodeBlock {
	b := &mdflat.CodeBlock{Text: text}
	if lang != "" {
		b.Language = ptr(lang)
	}
	return b
}

func HTMLBlock(s string) *mdflat.HTMLBlock {
	return &mdflat.HTMLBlock{Text: s}
}

// Table from header and data rows
func Table(rows ...mdflat.Block) *mdflat.Table {
	return &mdflat.Table{Rows: rows}
}

func Header(cells ...mdflat.Block) *mdflat.TableHeader {
	return &mdflat.TableHeader{Cells: cells}
}

func Row(cells ...mdflat.Block) *mdflat.TableRow {
	return &mdflat.TableRow{Cells: cells}
}

func Cell(i ...mdflat.Inline) *mdflat.TableCell {
	return &mdflat.TableCell{Inlines: i}
}

func ptr(s string) *string {
	return &s
}
