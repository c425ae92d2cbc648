package mdflat

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	gext "github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"github.com/growler/go-mdflat/extension"
	"github.com/growler/go-mdflat/flat"
)

// Markdown extensions. All of them are enabled unless switched off.
const (
	ExtTable         = "table"
	ExtStrikethrough = "strikethrough"
	ExtAutolink      = "autolink"
	ExtFootnote      = "footnote"
	ExtMention       = "mention"
	ExtCheckbox      = "checkbox"
)

// Names of all known extensions.
var Extensions = []string{
	ExtTable,
	ExtStrikethrough,
	ExtAutolink,
	ExtFootnote,
	ExtMention,
	ExtCheckbox,
}

// A configuration for parsing and rendering Markdown.
type Conf struct {
	Ext        []string // List of extension toggles, each must start with '+' or '-'
	MentionURL string   // Prefix of the URL mentions link to
	Unsafe     bool     // Render raw HTML and potentially dangerous links
	HardWraps  bool     // Render soft line breaks as hard ones
	XHTML      bool     // Render XHTML
}

var DefaultConf = Conf{
	MentionURL: extension.DefaultMentionURL,
}

func (c Conf) WithExt(ext string) Conf {
	return c.toggle("+"+ext, "-"+ext)
}

func (c Conf) WithoutExt(ext string) Conf {
	return c.toggle("-"+ext, "+"+ext)
}

func (c Conf) toggle(on, off string) Conf {
	ext := make([]string, 0, len(c.Ext)+1)
	for _, e := range c.Ext {
		if e != on && e != off {
			ext = append(ext, e)
		}
	}
	c.Ext = append(ext, on)
	return c
}

// Returns a Conf whose mentions link to url followed by the login.
func (c Conf) WithMentionURL(url string) Conf {
	c.MentionURL = url
	return c
}

func (c Conf) WithUnsafe() Conf {
	c.Unsafe = true
	return c
}

func (c Conf) WithHardWraps() Conf {
	c.HardWraps = true
	return c
}

func (c Conf) WithXHTML() Conf {
	c.XHTML = true
	return c
}

// Enabled reports whether the extension is switched on.
func (c Conf) Enabled(ext string) bool {
	on := true
	for _, e := range c.Ext {
		switch e {
		case "+" + ext:
			on = true
		case "-" + ext:
			on = false
		}
	}
	return on
}

// Validate checks that every toggle names a known extension.
func (c Conf) Validate() error {
outer:
	for _, e := range c.Ext {
		if len(e) < 2 || (e[0] != '+' && e[0] != '-') {
			return fmt.Errorf("extension toggle %q must start with '+' or '-'", e)
		}
		for _, known := range Extensions {
			if e[1:] == known {
				continue outer
			}
		}
		return fmt.Errorf("unknown extension %q", e[1:])
	}
	return nil
}

func (c Conf) markdown() goldmark.Markdown {
	var exts []goldmark.Extender
	if c.Enabled(ExtTable) {
		exts = append(exts, gext.Table)
	}
	if c.Enabled(ExtStrikethrough) {
		exts = append(exts, gext.Strikethrough)
	}
	if c.Enabled(ExtAutolink) {
		exts = append(exts, gext.Linkify)
	}
	if c.Enabled(ExtFootnote) {
		exts = append(exts, gext.Footnote)
	}
	if c.Enabled(ExtMention) {
		url := c.MentionURL
		if url == "" {
			url = extension.DefaultMentionURL
		}
		exts = append(exts, extension.NewMentions(url))
	}
	if c.Enabled(ExtCheckbox) {
		exts = append(exts, extension.Checkboxes)
	}
	var opts []renderer.Option
	if c.Unsafe {
		opts = append(opts, html.WithUnsafe())
	}
	if c.HardWraps {
		opts = append(opts, html.WithHardWraps())
	}
	if c.XHTML {
		opts = append(opts, html.WithXHTML())
	}
	return goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithRendererOptions(opts...),
	)
}

// Parse parses Markdown source into a block tree. It returns nil when the
// source is not valid UTF-8.
func Parse(src []byte, conf Conf) *Doc {
	if !utf8.Valid(src) {
		return nil
	}
	root := conf.markdown().Parser().Parse(text.NewReader(src))
	return convertDocument(root, src)
}

// Flatten parses Markdown source and folds it into flat elements.
func Flatten(src []byte, conf Conf) ([]flat.Element, error) {
	doc := Parse(src, conf)
	if doc == nil {
		return nil, ErrNoDocument
	}
	return doc.FlatElements(), nil
}

// LoadFrom reads and parses Markdown from r.
func LoadFrom(r io.Reader, conf Conf) (*Doc, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	doc := Parse(src, conf)
	if doc == nil {
		return nil, ErrNoDocument
	}
	return doc, nil
}

// LoadFile reads and parses the Markdown file f.
func LoadFile(f string, conf Conf) (*Doc, error) {
	src, err := os.ReadFile(f)
	if err != nil {
		return nil, err
	}
	doc := Parse(src, conf)
	if doc == nil {
		return nil, fmt.Errorf("%s: %w", f, ErrNoDocument)
	}
	return doc, nil
}

// RenderHTML renders Markdown source to w as HTML.
func RenderHTML(w io.Writer, src []byte, conf Conf) error {
	if !utf8.Valid(src) {
		return ErrNoDocument
	}
	return conf.markdown().Convert(src, w)
}

// ToHTML renders Markdown source to an HTML string.
func ToHTML(src []byte, conf Conf) (string, error) {
	var sb strings.Builder
	if err := RenderHTML(&sb, src, conf); err != nil {
		return "", err
	}
	return sb.String(), nil
}
