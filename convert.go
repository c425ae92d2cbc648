package mdflat

import (
	"bytes"
	"strconv"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/util"

	"github.com/growler/go-mdflat/extension"
)

// converter maps a goldmark syntax tree onto the block tree.
type converter struct {
	src []byte
}

func convertDocument(root ast.Node, src []byte) *Doc {
	c := converter{src: src}
	return &Doc{Blocks: c.blocks(root)}
}

func (c *converter) blocks(parent ast.Node) []Block {
	var blocks []Block
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if b := c.block(n); b != nil {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

func (c *converter) block(n ast.Node) Block {
	switch n := n.(type) {
	case *ast.Paragraph:
		return &Para{Inlines: c.inlines(n)}
	case *ast.TextBlock:
		return &Para{Inlines: c.inlines(n)}
	case *ast.Heading:
		return &Heading{Level: n.Level, Inlines: c.inlines(n)}
	case *ast.Blockquote:
		return &BlockQuote{Blocks: c.blocks(n)}
	case *ast.List:
		l := &List{Type: Unordered}
		if n.IsOrdered() {
			l.Type = Ordered
		}
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			l.Items = append(l.Items, c.blocks(item))
		}
		return l
	case *ast.FencedCodeBlock:
		b := &CodeBlock{Text: c.lines(n)}
		if lang := n.Language(c.src); lang != nil {
			s := string(lang)
			b.Language = &s
		}
		return b
	case *ast.CodeBlock:
		return &CodeBlock{Text: c.lines(n)}
	case *ast.HTMLBlock:
		s := c.lines(n)
		if n.HasClosure() {
			s += string(n.ClosureLine.Value(c.src))
		}
		return &HTMLBlock{Text: s}
	case *ast.ThematicBreak:
		return HR
	case *extast.Table:
		return &Table{Rows: c.blocks(n)}
	case *extast.TableHeader:
		return &TableHeader{Cells: c.blocks(n)}
	case *extast.TableRow:
		return &TableRow{Cells: c.blocks(n)}
	case *extast.TableCell:
		return &TableCell{Inlines: c.inlines(n)}
	}
	if n.Type() == ast.TypeBlock {
		return &CustomBlock{Literal: c.lines(n)}
	}
	return nil
}

func (c *converter) lines(n ast.Node) string {
	lines := n.Lines()
	if lines == nil {
		return ""
	}
	return string(lines.Value(c.src))
}

// inlines converts the children of parent. Adjacent text nodes are merged
// into one Str, since goldmark splits text at every position an inline
// parser was tried.
func (c *converter) inlines(parent ast.Node) []Inline {
	var (
		inlines []Inline
		last    *Str
	)
	appendStr := func(s string) {
		if last != nil {
			last.Text += s
			return
		}
		last = &Str{Text: s}
		inlines = append(inlines, last)
	}
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch n := n.(type) {
		case *ast.Text:
			appendStr(c.text(n))
			switch {
			case n.HardLineBreak():
				inlines, last = append(inlines, LB), nil
			case n.SoftLineBreak():
				inlines, last = append(inlines, SB), nil
			}
			continue
		case *ast.String:
			appendStr(string(n.Value))
			continue
		}
		if i := c.inline(n); i != nil {
			inlines, last = append(inlines, i), nil
		}
	}
	return inlines
}

func (c *converter) text(n *ast.Text) string {
	v := n.Segment.Value(c.src)
	if n.IsRaw() {
		return string(v)
	}
	return string(unescape(v))
}

// unescape resolves backslash escapes and character references.
func unescape(b []byte) []byte {
	return util.ResolveEntityNames(util.ResolveNumericReferences(util.UnescapePunctuations(b)))
}

func (c *converter) inline(n ast.Node) Inline {
	switch n := n.(type) {
	case *ast.CodeSpan:
		return &Code{Text: c.codeSpan(n)}
	case *ast.Emphasis:
		if n.Level >= 2 {
			return &Strong{Inlines: c.inlines(n)}
		}
		return &Emph{Inlines: c.inlines(n)}
	case *extast.Strikethrough:
		return &Strikethrough{Inlines: c.inlines(n)}
	case *ast.Link:
		return &Link{
			Inlines: c.inlines(n),
			Title:   title(n.Title),
			URL:     destination(n.Destination),
		}
	case *ast.Image:
		return &Image{
			Inlines: c.inlines(n),
			Title:   title(n.Title),
			URL:     destination(n.Destination),
		}
	case *ast.AutoLink:
		url := n.URL(c.src)
		if n.AutoLinkType == ast.AutoLinkEmail {
			url = append([]byte("mailto:"), url...)
		}
		return &Link{
			Inlines: []Inline{&Str{Text: string(n.Label(c.src))}},
			Title:   title(nil),
			URL:     destination(url),
		}
	case *ast.RawHTML:
		return &RawHTML{Text: string(n.Segments.Value(c.src))}
	case *extension.Mention:
		return &Mention{Login: string(n.Login)}
	case *extension.Checkbox:
		return &Checkbox{
			Checked: n.Checked,
			Range:   Range{Start: n.Segment.Start, End: n.Segment.Stop},
		}
	case *extast.FootnoteLink:
		return &CustomInline{Literal: "[" + strconv.Itoa(n.Index) + "]"}
	}
	return &CustomInline{Literal: c.plain(n)}
}

// Line endings inside a code span read as spaces.
func (c *converter) codeSpan(n *ast.CodeSpan) string {
	var s []byte
	for t := n.FirstChild(); t != nil; t = t.NextSibling() {
		if t, ok := t.(*ast.Text); ok {
			v := t.Segment.Value(c.src)
			if bytes.HasSuffix(v, []byte("\n")) {
				v = append(v[:len(v)-1:len(v)-1], ' ')
			}
			s = append(s, v...)
		}
	}
	return string(s)
}

// plain concatenates the text found under n.
func (c *converter) plain(n ast.Node) string {
	var s []byte
	_ = ast.Walk(n, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Text:
			s = append(s, n.Segment.Value(c.src)...)
		case *ast.String:
			s = append(s, n.Value...)
		}
		return ast.WalkContinue, nil
	})
	return string(s)
}

// Titles are always present, possibly empty.
func title(t []byte) *string {
	s := string(unescape(t))
	return &s
}

func destination(d []byte) *string {
	if len(d) == 0 {
		return nil
	}
	s := string(unescape(d))
	return &s
}
