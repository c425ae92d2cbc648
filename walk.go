package mdflat

// WalkResult is the result of a walk operation.
type WalkResult int

// WalkContinue indicates that the walk operation should continue.
const WalkContinue WalkResult = 0

// WalkReplace indicates that the current element should be replaced with the
// elements returned by the function.
const WalkReplace WalkResult = 1

// WalkSkip indicates that the current element should be skipped and
// no children should be processed.
const WalkSkip WalkResult = 2

// WalkStop indicates that the walk operation should stop immediately.
const WalkStop WalkResult = 3

// Query applies the specified function 'fun' to each descendant of 'elt'
// whose type matches P, in document order. The function is not applied to
// 'elt' itself. Query never modifies the tree.
//
//   - WalkStop: Terminates the traversal process immediately.
//   - WalkSkip: Does not descend into the current element.
//   - WalkContinue: Continues to the next element.
//
// Example:
//
//	var headings int
//	mdflat.Query(doc, func(h *mdflat.Heading) mdflat.WalkResult {
//	    headings++
//	    return mdflat.WalkSkip
//	})
func Query[P any, E Element](elt E, fun func(P) WalkResult) {
	queryChildren(Element(elt), fun)
}

func query[P any](e Element, fun func(P) WalkResult) WalkResult {
	if p, ok := e.(P); ok {
		switch fun(p) {
		case WalkStop:
			return WalkStop
		case WalkSkip:
			return WalkContinue
		}
	}
	return queryChildren(e, fun)
}

func queryChildren[P any](e Element, fun func(P) WalkResult) WalkResult {
	switch e := e.(type) {
	case inlinesContainer:
		return queryList(e.inlines(), fun)
	case blocksContainer:
		return queryList(e.blocks(), fun)
	case *List:
		for _, item := range e.Items {
			if queryList(item, fun) == WalkStop {
				return WalkStop
			}
		}
	}
	return WalkContinue
}

func queryList[P any, S Element](lst []S, fun func(P) WalkResult) WalkResult {
	for _, e := range lst {
		if query(Element(e), fun) == WalkStop {
			return WalkStop
		}
	}
	return WalkContinue
}

// Filter applies the specified function 'fun' to each descendant of 'elt'
// whose type matches P and returns the updated tree. Modified containers are
// copied; the original tree is left intact.
//
//   - WalkStop: Terminates the traversal process immediately.
//   - WalkSkip: Keeps the current element and does not descend into it.
//   - WalkReplace: Replaces the current element with the elements returned by 'fun'.
//   - WalkContinue: Keeps the current element and processes its children.
//
// Replacements that do not fit the enclosing list (an Inline among blocks)
// are dropped. To remove an element return an empty slice with WalkReplace.
//
// Example:
//
//	doc = mdflat.Filter(doc, func(m *mdflat.Mention) ([]mdflat.Inline, mdflat.WalkResult) {
//	    return []mdflat.Inline{&mdflat.Str{Text: "@" + m.Login}}, mdflat.WalkReplace
//	})
func Filter[P any, E Element, R Element](elt E, fun func(P) ([]R, WalkResult)) E {
	out, _, _ := filterChildren(Element(elt), fun)
	return out.(E)
}

func filterChildren[P any, R Element](e Element, fun func(P) ([]R, WalkResult)) (Element, bool, WalkResult) {
	switch e := e.(type) {
	case *Doc:
		lst, updated, result := filterList(e.Blocks, fun)
		if updated {
			e = &Doc{Blocks: lst}
		}
		return e, updated, result
	case *Para:
		lst, updated, result := filterList(e.Inlines, fun)
		if updated {
			e = &Para{Inlines: lst}
		}
		return e, updated, result
	case *Heading:
		lst, updated, result := filterList(e.Inlines, fun)
		if updated {
			e = &Heading{Level: e.Level, Inlines: lst}
		}
		return e, updated, result
	case *BlockQuote:
		lst, updated, result := filterList(e.Blocks, fun)
		if updated {
			e = &BlockQuote{Blocks: lst}
		}
		return e, updated, result
	case *List:
		var (
			items   [][]Block
			updated bool
		)
		for i, item := range e.Items {
			lst, u, result := filterList(item, fun)
			if u && !updated {
				updated = true
				items = append([][]Block(nil), e.Items...)
			}
			if u {
				items[i] = lst
			}
			if result == WalkStop {
				if updated {
					e = &List{Type: e.Type, Items: items}
				}
				return e, updated, WalkStop
			}
		}
		if updated {
			e = &List{Type: e.Type, Items: items}
		}
		return e, updated, WalkContinue
	case *Table:
		lst, updated, result := filterList(e.Rows, fun)
		if updated {
			e = &Table{Rows: lst}
		}
		return e, updated, result
	case *TableHeader:
		lst, updated, result := filterList(e.Cells, fun)
		if updated {
			e = &TableHeader{Cells: lst}
		}
		return e, updated, result
	case *TableRow:
		lst, updated, result := filterList(e.Cells, fun)
		if updated {
			e = &TableRow{Cells: lst}
		}
		return e, updated, result
	case *TableCell:
		lst, updated, result := filterList(e.Inlines, fun)
		if updated {
			e = &TableCell{Inlines: lst}
		}
		return e, updated, result
	case *Emph:
		lst, updated, result := filterList(e.Inlines, fun)
		if updated {
			e = &Emph{Inlines: lst}
		}
		return e, updated, result
	case *Strong:
		lst, updated, result := filterList(e.Inlines, fun)
		if updated {
			e = &Strong{Inlines: lst}
		}
		return e, updated, result
	case *Strikethrough:
		lst, updated, result := filterList(e.Inlines, fun)
		if updated {
			e = &Strikethrough{Inlines: lst}
		}
		return e, updated, result
	case *Link:
		lst, updated, result := filterList(e.Inlines, fun)
		if updated {
			e = &Link{Inlines: lst, Title: e.Title, URL: e.URL}
		}
		return e, updated, result
	case *Image:
		lst, updated, result := filterList(e.Inlines, fun)
		if updated {
			e = &Image{Inlines: lst, Title: e.Title, URL: e.URL}
		}
		return e, updated, result

	// following have no children
	//
	case *Str:
	case *SoftBreak:
	case *LineBreak:
	case *Code:
	case *RawHTML:
	case *Mention:
	case *Checkbox:
	case *CustomInline:
	case *CodeBlock:
	case *HTMLBlock:
	case *ThematicBreak:
	case *CustomBlock:
	}
	return e, false, WalkContinue
}

func filterList[P any, S Element, R Element](source []S, fun func(P) ([]R, WalkResult)) ([]S, bool, WalkResult) {
	var (
		out     []S
		updated bool
	)
	// copy-on-write: out is only materialized once something changes
	touch := func(i int) {
		if !updated {
			updated = true
			out = append(make([]S, 0, len(source)), source[:i]...)
		}
	}
	for i, item := range source {
		if p, ok := any(item).(P); ok {
			replace, result := fun(p)
			switch result {
			case WalkStop:
				if updated {
					out = append(out, source[i:]...)
					return out, true, WalkStop
				}
				return source, false, WalkStop
			case WalkSkip:
				if updated {
					out = append(out, item)
				}
				continue
			case WalkReplace:
				touch(i)
				for _, r := range replace {
					if s, ok := any(r).(S); ok {
						out = append(out, s)
					}
				}
				continue
			}
		}
		child, changed, result := filterChildren(Element(item), fun)
		if changed {
			touch(i)
		}
		if updated {
			out = append(out, child.(S))
		}
		if result == WalkStop {
			if updated {
				out = append(out, source[i+1:]...)
				return out, true, WalkStop
			}
			return source, false, WalkStop
		}
	}
	if updated {
		return out, true, WalkContinue
	}
	return source, false, WalkContinue
}
