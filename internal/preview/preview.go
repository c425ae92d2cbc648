// Package preview draws flattened elements on a terminal.
package preview

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/growler/go-mdflat/flat"
)

// DefaultWidth is used when no width is configured and the output is not a
// terminal.
const DefaultWidth = 80

// Options controls rendering.
type Options struct {
	Width     int    // wrap width in cells
	Color     bool   // emit ANSI escapes
	CodeStyle string // chroma style for code blocks
}

// Renderer turns flattened elements into terminal text.
type Renderer struct {
	opts  Options
	lg    *lipgloss.Renderer
	upper cases.Caser

	heading lipgloss.Style
	emph    lipgloss.Style
	strong  lipgloss.Style
	strike  lipgloss.Style
	code    lipgloss.Style
	link    lipgloss.Style
	mention lipgloss.Style
	faint   lipgloss.Style
	quote   lipgloss.Style
	header  lipgloss.Style
	block   lipgloss.Style
}

// New returns a renderer for the given options.
func New(opts Options) *Renderer {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	lg := lipgloss.NewRenderer(io.Discard)
	if opts.Color {
		profile := termenv.EnvColorProfile()
		if profile == termenv.Ascii {
			profile = termenv.ANSI256
		}
		lg.SetColorProfile(profile)
	} else {
		lg.SetColorProfile(termenv.Ascii)
	}
	return &Renderer{
		opts:    opts,
		lg:      lg,
		upper:   cases.Upper(language.Und),
		heading: lg.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		emph:    lg.NewStyle().Italic(true),
		strong:  lg.NewStyle().Bold(true),
		strike:  lg.NewStyle().Strikethrough(true),
		code:    lg.NewStyle().Foreground(lipgloss.Color("203")).Background(lipgloss.Color("236")),
		link:    lg.NewStyle().Underline(true).Foreground(lipgloss.Color("75")),
		mention: lg.NewStyle().Bold(true).Foreground(lipgloss.Color("170")),
		faint:   lg.NewStyle().Faint(true),
		quote:   lg.NewStyle().Foreground(lipgloss.Color("244")),
		header:  lg.NewStyle().Bold(true),
		block: lg.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			PaddingLeft(1),
	}
}

// Render draws the elements separated by blank lines.
func (r *Renderer) Render(els []flat.Element) string {
	return r.elements(els, r.opts.Width, "\n\n")
}

// Write draws the elements to w.
func (r *Renderer) Write(w io.Writer, els []flat.Element) error {
	out := r.Render(els)
	if out != "" {
		out += "\n"
	}
	_, err := io.WriteString(w, out)
	return err
}

func (r *Renderer) elements(els []flat.Element, width int, sep string) string {
	parts := make([]string, 0, len(els))
	for _, e := range els {
		if s := r.element(e, width); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, sep)
}

// element draws one element. Styles pad multi-line text to a block, so the
// padding is stripped again from every line.
func (r *Renderer) element(e flat.Element, width int) string {
	return trimLines(r.draw(e, width))
}

func (r *Renderer) draw(e flat.Element, width int) string {
	switch e := e.(type) {
	case *flat.Text:
		return r.wrap(r.line(e.Items), width)
	case *flat.Quote:
		bar := r.quote.Render(strings.Repeat("│ ", e.Level))
		return prefix(r.wrap(r.line(e.Items), width-2*e.Level), bar, bar)
	case *flat.Heading:
		return r.headingText(e, width)
	case *flat.Image:
		s := "[image] " + e.URL
		if e.Title != "" {
			s += " " + strconv.Quote(e.Title)
		}
		return r.faint.Render(s)
	case *flat.HTML:
		text := htmlText(e.Text)
		if text == "" {
			return ""
		}
		return r.faint.Render(r.wrap(text, width))
	case *flat.ThematicBreak:
		return r.faint.Render(strings.Repeat("─", width))
	case *flat.CodeBlock:
		lang := ""
		if e.Language != nil {
			lang = *e.Language
		}
		code := highlight(strings.TrimRight(e.Text, "\n"), lang, r.opts.CodeStyle, r.opts.Color)
		return r.block.Render(code)
	case *flat.List:
		return r.list(e, width)
	case *flat.Table:
		return r.table(e)
	}
	return ""
}

func (r *Renderer) headingText(h *flat.Heading, width int) string {
	text := r.line(h.Text)
	switch h.Level {
	case 1:
		text = r.upper.String(text)
		return r.heading.Render(text) + "\n" + r.heading.Render(strings.Repeat("═", min(runewidth.StringWidth(text), width)))
	case 2:
		return r.heading.Render(text) + "\n" + r.heading.Render(strings.Repeat("─", min(runewidth.StringWidth(text), width)))
	default:
		return r.heading.Render(strings.Repeat("#", h.Level) + " " + text)
	}
}

func (r *Renderer) list(l *flat.List, width int) string {
	items := make([]string, 0, len(l.Items))
	bullet := "•"
	if l.Level%2 == 1 {
		bullet = "◦"
	}
	for i, item := range l.Items {
		marker := bullet + " "
		if l.Type == flat.Ordered {
			marker = strconv.Itoa(i+1) + ". "
		}
		indent := runewidth.StringWidth(marker)
		body := r.elements(item, width-indent, "\n")
		items = append(items, prefix(body, marker, strings.Repeat(" ", indent)))
	}
	return strings.Join(items, "\n")
}

func (r *Renderer) table(t *flat.Table) string {
	var widths []int
	plain := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		plain[i] = make([]string, len(row.Cells))
		for j, c := range row.Cells {
			s := strings.ReplaceAll(c.Plain(), "\n", " ")
			plain[i][j] = s
			if j >= len(widths) {
				widths = append(widths, 0)
			}
			widths[j] = max(widths[j], runewidth.StringWidth(s))
		}
	}
	sep := r.faint.Render(" │ ")
	var lines []string
	for i, row := range t.Rows {
		if i > 0 && row.Kind == flat.DataRow && t.Rows[i-1].Kind == flat.HeaderRow {
			rule := make([]string, len(widths))
			for j, w := range widths {
				rule[j] = strings.Repeat("─", w)
			}
			lines = append(lines, r.faint.Render(strings.Join(rule, "─┼─")))
		}
		cells := make([]string, len(widths))
		for j := range widths {
			s := ""
			if j < len(plain[i]) {
				s = plain[i][j]
			}
			s = runewidth.FillRight(s, widths[j])
			if row.Kind == flat.HeaderRow {
				s = r.header.Render(s)
			}
			cells[j] = s
		}
		lines = append(lines, strings.TrimRight(strings.Join(cells, sep), " "))
	}
	return strings.Join(lines, "\n")
}

// line renders a text line without wrapping.
func (r *Renderer) line(l flat.TextLine) string {
	var sb strings.Builder
	for _, e := range l {
		switch e := e.(type) {
		case *flat.Str:
			sb.WriteString(e.Text)
		case *flat.SoftBreak:
			sb.WriteByte(' ')
		case *flat.LineBreak:
			sb.WriteByte('\n')
		case *flat.Code:
			sb.WriteString(r.code.Render(e.Text))
		case *flat.Emph:
			sb.WriteString(r.emph.Render(r.line(e.Children)))
		case *flat.Strong:
			sb.WriteString(r.strong.Render(r.line(e.Children)))
		case *flat.Strikethrough:
			sb.WriteString(r.strike.Render(r.line(e.Children)))
		case *flat.Link:
			text := r.line(e.Children)
			sb.WriteString(r.link.Render(text))
			if e.URL != nil && *e.URL != text {
				sb.WriteString(r.faint.Render(" <" + *e.URL + ">"))
			}
		case *flat.Mention:
			sb.WriteString(r.mention.Render("@" + e.Login))
		case *flat.Checkbox:
			sb.WriteString(e.String())
		}
	}
	return sb.String()
}

func (r *Renderer) wrap(s string, width int) string {
	if width < 1 {
		width = 1
	}
	return trimLines(r.lg.NewStyle().Width(width).Render(s))
}

// trimLines drops the padding lipgloss adds to the right of each line.
func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}

// prefix puts first before the first line of s and rest before the others.
func prefix(s, first, rest string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if i == 0 {
			lines[i] = first + l
		} else {
			lines[i] = rest + l
		}
	}
	return strings.Join(lines, "\n")
}
