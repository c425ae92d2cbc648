package mdflat

import (
	"github.com/growler/go-mdflat/flat"
)

// LowerInline maps an inline to its flattened form. Images and raw HTML have
// no inline representation and lower to nil; the block folder promotes them
// to elements of their own.
func LowerInline(i Inline) flat.TextElement {
	switch i := i.(type) {
	case *Str:
		return &flat.Str{Text: i.Text}
	case *SoftBreak:
		return flat.SB
	case *LineBreak:
		return flat.LB
	case *Code:
		return &flat.Code{Text: i.Text}
	case *Emph:
		return &flat.Emph{Children: LowerInlines(i.Inlines)}
	case *Strong:
		return &flat.Strong{Children: LowerInlines(i.Inlines)}
	case *Strikethrough:
		return &flat.Strikethrough{Children: LowerInlines(i.Inlines)}
	case *Link:
		return &flat.Link{
			Children: LowerInlines(i.Inlines),
			Title:    copyString(i.Title),
			URL:      copyString(i.URL),
		}
	case *Mention:
		return &flat.Mention{Login: i.Login}
	case *Checkbox:
		return &flat.Checkbox{Checked: i.Checked, Range: i.Range}
	case *CustomInline:
		return &flat.Str{Text: i.Literal}
	}
	return nil
}

// LowerInlines lowers a sequence of inlines, omitting those that lower to
// nothing.
func LowerInlines(inlines []Inline) flat.TextLine {
	var line flat.TextLine
	for _, i := range inlines {
		if e := LowerInline(i); e != nil {
			line = append(line, e)
		}
	}
	return line
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
