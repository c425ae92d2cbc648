// Package extension provides the goldmark extensions for user mentions
// (@login) and task list checkboxes ([ ] and [x]).
package extension

import (
	"fmt"
	"unicode"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// DefaultMentionURL is the prefix mentions link to when none is configured.
const DefaultMentionURL = "https://github.com/"

// A Mention represents an @login reference to a user.
type Mention struct {
	gast.BaseInline
	Login []byte
}

// Dump implements Node.Dump.
func (n *Mention) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, map[string]string{
		"Login": string(n.Login),
	}, nil)
}

// KindMention is a NodeKind of the Mention node.
var KindMention = gast.NewNodeKind("Mention")

// Kind implements Node.Kind.
func (n *Mention) Kind() gast.NodeKind {
	return KindMention
}

// NewMention returns a new Mention node.
func NewMention(login []byte) *Mention {
	return &Mention{Login: login}
}

type mentionParser struct{}

var defaultMentionParser = &mentionParser{}

// NewMentionParser returns an InlineParser recognising @login. The @ must
// start a token and the login is the longest following run of ASCII
// letters, digits and hyphens.
func NewMentionParser() parser.InlineParser {
	return defaultMentionParser
}

func (s *mentionParser) Trigger() []byte {
	return []byte{'@'}
}

func (s *mentionParser) Parse(parent gast.Node, block text.Reader, pc parser.Context) gast.Node {
	if pc.IsInLinkLabel() {
		return nil
	}
	if !isMentionBoundary(block.PrecendingCharacter()) {
		return nil
	}
	line, _ := block.PeekLine()
	// logins start with a letter or digit
	if len(line) < 2 || line[1] >= 0x80 || !util.IsAlphaNumeric(line[1]) {
		return nil
	}
	i := 2
	for ; i < len(line) && isLoginChar(line[i]); i++ {
	}
	login := make([]byte, i-1)
	copy(login, line[1:i])
	block.Advance(i)
	return NewMention(login)
}

func isMentionBoundary(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	switch r {
	case '(', '[', '{', '<', '"', '\'', '*', '_', '~':
		return true
	}
	return false
}

func isLoginChar(c byte) bool {
	return c < 0x80 && (util.IsAlphaNumeric(c) || c == '-')
}

// MentionHTMLRenderer renders mentions as links to the user's page.
type MentionHTMLRenderer struct {
	html.Config
	BaseURL string
}

// NewMentionHTMLRenderer returns a new MentionHTMLRenderer linking to
// baseURL followed by the login.
func NewMentionHTMLRenderer(baseURL string, opts ...html.Option) renderer.NodeRenderer {
	r := &MentionHTMLRenderer{
		Config:  html.NewConfig(),
		BaseURL: baseURL,
	}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	return r
}

// RegisterFuncs implements renderer.NodeRenderer.RegisterFuncs.
func (r *MentionHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindMention, r.renderMention)
}

func (r *MentionHTMLRenderer) renderMention(
	w util.BufWriter, source []byte, node gast.Node, entering bool) (gast.WalkStatus, error) {
	if !entering {
		return gast.WalkContinue, nil
	}
	n := node.(*Mention)
	href := util.URLEscape([]byte(r.BaseURL+string(n.Login)), true)
	_, _ = fmt.Fprintf(w, `<a href="%s">@%s</a>`, util.EscapeHTML(href), n.Login)
	return gast.WalkContinue, nil
}

type mentions struct {
	baseURL string
}

// Mentions is an extension recognising @login mentions that link to
// DefaultMentionURL.
var Mentions = NewMentions(DefaultMentionURL)

// NewMentions returns a mention extension whose links point at baseURL
// followed by the login.
func NewMentions(baseURL string) goldmark.Extender {
	return &mentions{baseURL: baseURL}
}

func (e *mentions) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(NewMentionParser(), 500),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(NewMentionHTMLRenderer(e.baseURL), 500),
	))
}
