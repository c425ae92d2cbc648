package flat

import (
	"strconv"
	"strings"
)

func (s *Str) String() string       { return s.Text }
func (*SoftBreak) String() string   { return "\n" }
func (*LineBreak) String() string   { return "\n" }
func (c *Code) String() string      { return "`" + c.Text + "`" }
func (e *Emph) String() string      { return "_" + e.Children.String() + "_" }
func (s *Strong) String() string    { return "**" + s.Children.String() + "**" }
func (m *Mention) String() string   { return "@" + m.Login }
func (s *Strikethrough) String() string {
	return "~~" + s.Children.String() + "~~"
}

func (l *Link) String() string {
	return "[" + l.Children.String() + "](" + deref(l.URL) + " \"" + deref(l.Title) + "\")"
}

func (c *Checkbox) String() string {
	if c.Checked {
		return "[x]"
	}
	return "[ ]"
}

// String concatenates the descriptions of all elements of the line.
func (l TextLine) String() string {
	var sb strings.Builder
	for _, e := range l {
		sb.WriteString(e.String())
	}
	return sb.String()
}

// Plain returns the line as plain text: markup is dropped, mentions keep
// their login and checkboxes disappear.
func (l TextLine) Plain() string {
	var sb strings.Builder
	l.plain(&sb)
	return sb.String()
}

func (l TextLine) plain(sb *strings.Builder) {
	for _, e := range l {
		switch e := e.(type) {
		case *Str:
			sb.WriteString(e.Text)
		case *Code:
			sb.WriteString(e.Text)
		case *SoftBreak, *LineBreak:
			sb.WriteByte('\n')
		case *Emph:
			e.Children.plain(sb)
		case *Strong:
			e.Children.plain(sb)
		case *Strikethrough:
			e.Children.plain(sb)
		case *Link:
			e.Children.plain(sb)
		case *Mention:
			sb.WriteString(e.Login)
		}
	}
}

func (t *Text) String() string  { return "text: " + t.Items.String() }
func (q *Quote) String() string { return "quote: " + q.Items.String() }
func (i *Image) String() string { return "image: " + i.URL }
func (h *HTML) String() string  { return "html: " + h.Text }

func (*ThematicBreak) String() string { return "hr" }

func (h *Heading) String() string {
	return "heading-" + strconv.Itoa(h.Level) + ": " + h.Text.String()
}

func (c *CodeBlock) String() string { return "codeBlock: " + c.Text }

func (l *List) String() string {
	items := make([]string, len(l.Items))
	for i, item := range l.Items {
		parts := make([]string, len(item))
		for j, e := range item {
			parts[j] = e.String()
		}
		items[i] = strings.Join(parts, "; ")
	}
	return "list-" + l.Type.String() + ": " + strings.Join(items, "\n")
}

func (t *Table) String() string {
	rows := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = r.String()
	}
	return "table: " + strings.Join(rows, ", ")
}

func (r Row) String() string {
	cells := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		cells[i] = c.String()
	}
	kind := "data"
	if r.Kind == HeaderRow {
		kind = "header"
	}
	return kind + "(" + strings.Join(cells, " | ") + ")"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
