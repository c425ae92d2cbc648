package mdflat

import (
	"errors"
	"fmt"

	"github.com/growler/go-mdflat/extension"
)

// ErrRangeMismatch is returned by ToggleCheckbox when the checkbox range no
// longer points at a checkbox marker in the source.
var ErrRangeMismatch = errors.New("checkbox range does not match source")

// Checkboxes returns every checkbox of the document in source order.
func (d *Doc) Checkboxes() []*Checkbox {
	if d == nil {
		return nil
	}
	var ret []*Checkbox
	Query(d, func(c *Checkbox) WalkResult {
		ret = append(ret, c)
		return WalkContinue
	})
	return ret
}

// Mentions returns the distinct logins mentioned in the document, in order
// of first appearance.
func (d *Doc) Mentions() []string {
	if d == nil {
		return nil
	}
	var (
		ret  []string
		seen = make(map[string]struct{})
	)
	Query(d, func(m *Mention) WalkResult {
		if _, ok := seen[m.Login]; !ok {
			seen[m.Login] = struct{}{}
			ret = append(ret, m.Login)
		}
		return WalkContinue
	})
	return ret
}

// ToggleCheckbox returns a copy of src with the checkbox cb flipped.
// The source is not modified. A nil checkbox matches nothing.
func ToggleCheckbox(src []byte, cb *Checkbox) ([]byte, error) {
	if cb == nil {
		return nil, fmt.Errorf("%w: no checkbox", ErrRangeMismatch)
	}
	r := cb.Range
	if r.Start < 0 || r.End > len(src) || r.Len() != 3 || !extension.IsMarker(src[r.Start:r.End]) {
		return nil, fmt.Errorf("%w: [%d, %d)", ErrRangeMismatch, r.Start, r.End)
	}
	out := make([]byte, len(src))
	copy(out, src)
	if cb.Checked {
		out[r.Start+1] = ' '
	} else {
		out[r.Start+1] = 'x'
	}
	return out, nil
}

// StripHTML returns a copy of the document without raw HTML blocks and
// inline HTML.
func StripHTML(doc *Doc) *Doc {
	if doc == nil {
		return nil
	}
	doc = Filter(doc, func(*HTMLBlock) ([]Block, WalkResult) {
		return nil, WalkReplace
	})
	return Filter(doc, func(*RawHTML) ([]Inline, WalkResult) {
		return nil, WalkReplace
	})
}
