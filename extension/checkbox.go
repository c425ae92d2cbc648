package extension

import (
	"fmt"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// A Checkbox represents a task list marker. Segment is the position of the
// three byte marker in the source.
type Checkbox struct {
	gast.BaseInline
	Checked bool
	Segment text.Segment
}

// Dump implements Node.Dump.
func (n *Checkbox) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, map[string]string{
		"Checked": fmt.Sprintf("%v", n.Checked),
		"Segment": fmt.Sprintf("[%d, %d)", n.Segment.Start, n.Segment.Stop),
	}, nil)
}

// KindCheckbox is a NodeKind of the Checkbox node.
var KindCheckbox = gast.NewNodeKind("Checkbox")

// Kind implements Node.Kind.
func (n *Checkbox) Kind() gast.NodeKind {
	return KindCheckbox
}

// NewCheckbox returns a new Checkbox node.
func NewCheckbox(checked bool, segment text.Segment) *Checkbox {
	return &Checkbox{Checked: checked, Segment: segment}
}

const markerLen = 3

type checkboxParser struct{}

var defaultCheckboxParser = &checkboxParser{}

// NewCheckboxParser returns an InlineParser recognising [ ] and [x] at the
// very beginning of a list item. It consumes the marker only; the text
// following it is left in place.
// This parser must take precedence over the parser.LinkParser.
func NewCheckboxParser() parser.InlineParser {
	return defaultCheckboxParser
}

func (s *checkboxParser) Trigger() []byte {
	return []byte{'['}
}

func (s *checkboxParser) Parse(parent gast.Node, block text.Reader, pc parser.Context) gast.Node {
	// - List
	//   - ListItem         : parent.Parent
	//     - TextBlock      : parent
	//       (current line)
	if parent.Parent() == nil || parent.Parent().FirstChild() != parent {
		return nil
	}
	if parent.HasChildren() {
		return nil
	}
	if _, ok := parent.Parent().(*gast.ListItem); !ok {
		return nil
	}
	line, seg := block.PeekLine()
	if seg.Padding != 0 || !IsMarker(line) {
		return nil
	}
	if len(line) > markerLen && !util.IsSpace(line[markerLen]) {
		return nil
	}
	block.Advance(markerLen)
	return NewCheckbox(line[1] != ' ', text.NewSegment(seg.Start, seg.Start+markerLen))
}

// IsMarker reports whether b starts with [ ], [x] or [X].
func IsMarker(b []byte) bool {
	if len(b) < markerLen || b[0] != '[' || b[2] != ']' {
		return false
	}
	switch b[1] {
	case ' ', 'x', 'X':
		return true
	}
	return false
}

func (s *checkboxParser) CloseBlock(parent gast.Node, pc parser.Context) {
	// nothing to do
}

// CheckboxHTMLRenderer renders checkboxes as input elements.
type CheckboxHTMLRenderer struct {
	html.Config
}

// NewCheckboxHTMLRenderer returns a new CheckboxHTMLRenderer.
func NewCheckboxHTMLRenderer(opts ...html.Option) renderer.NodeRenderer {
	r := &CheckboxHTMLRenderer{
		Config: html.NewConfig(),
	}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	return r
}

// RegisterFuncs implements renderer.NodeRenderer.RegisterFuncs.
func (r *CheckboxHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindCheckbox, r.renderCheckbox)
}

func (r *CheckboxHTMLRenderer) renderCheckbox(
	w util.BufWriter, source []byte, node gast.Node, entering bool) (gast.WalkStatus, error) {
	if !entering {
		return gast.WalkContinue, nil
	}
	if node.(*Checkbox).Checked {
		_, _ = w.WriteString(`<input type="checkbox" checked />`)
	} else {
		_, _ = w.WriteString(`<input type="checkbox" />`)
	}
	return gast.WalkContinue, nil
}

type checkboxes struct{}

// Checkboxes is an extension recognising task list checkboxes.
var Checkboxes = &checkboxes{}

func (e *checkboxes) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(NewCheckboxParser(), 0),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(NewCheckboxHTMLRenderer(), 500),
	))
}
