package mdflat_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growler/go-mdflat"
	"github.com/growler/go-mdflat/flat"
)

func parse(t *testing.T, src string) *mdflat.Doc {
	t.Helper()
	doc := mdflat.Parse([]byte(src), mdflat.DefaultConf)
	require.NotNil(t, doc)
	return doc
}

func flatten(t *testing.T, src string) []flat.Element {
	t.Helper()
	els, err := mdflat.Flatten([]byte(src), mdflat.DefaultConf)
	require.NoError(t, err)
	return els
}

func paragraph(t *testing.T, doc *mdflat.Doc) []mdflat.Inline {
	t.Helper()
	require.NotEmpty(t, doc.Blocks)
	p, ok := doc.Blocks[0].(*mdflat.Para)
	require.True(t, ok, "expected a paragraph, got %T", doc.Blocks[0])
	return p.Inlines
}

func firstItem(t *testing.T, doc *mdflat.Doc) []mdflat.Inline {
	t.Helper()
	require.NotEmpty(t, doc.Blocks)
	l, ok := doc.Blocks[0].(*mdflat.List)
	require.True(t, ok, "expected a list, got %T", doc.Blocks[0])
	require.NotEmpty(t, l.Items)
	require.NotEmpty(t, l.Items[0])
	p, ok := l.Items[0][0].(*mdflat.Para)
	require.True(t, ok)
	return p.Inlines
}

func TestBlockCount(t *testing.T) {
	var tests = []struct {
		src  string
		want int
	}{
		{"# Heading\n## Subheading\nLorem ipsum _dolor sit_ amet.\n* List item 1\n* List item 2\n> Quote\n> > Quote 2", 5},
		{"| foo | bar |\n| --- | --- |\n| baz | bim |", 1},
		{"~~foo~~", 1},
		{"https://github.com", 1},
		{"```swift\nlet a = \"foo\"\n```", 1},
		{"- [ ] foo\n  - [ ] foo 2\n- [x] bar\n  - [x] bar 2", 1},
	}
	for _, tt := range tests {
		assert.Len(t, parse(t, tt.src).Blocks, tt.want, tt.src)
	}
}

func TestInvalidUTF8(t *testing.T) {
	assert.Nil(t, mdflat.Parse([]byte{'a', 0xff}, mdflat.DefaultConf))
	_, err := mdflat.Flatten([]byte{0xff}, mdflat.DefaultConf)
	assert.ErrorIs(t, err, mdflat.ErrNoDocument)
	_, err = mdflat.LoadFrom(strings.NewReader("\xff"), mdflat.DefaultConf)
	assert.ErrorIs(t, err, mdflat.ErrNoDocument)
}

func TestMentions(t *testing.T) {
	var tests = []struct {
		src   string
		login string
	}{
		{"@user", "user"},
		{"@user123'", "user123"},
		{"@user-123", "user-123"},
	}
	for _, tt := range tests {
		inlines := paragraph(t, parse(t, tt.src))
		require.NotEmpty(t, inlines)
		m, ok := inlines[0].(*mdflat.Mention)
		require.True(t, ok, "%q: expected a mention, got %T", tt.src, inlines[0])
		assert.Equal(t, tt.login, m.Login)
	}
}

func TestMentionWithWordsAround(t *testing.T) {
	inlines := paragraph(t, parse(t, "foo @user bar"))
	assert.Equal(t, []mdflat.Inline{
		&mdflat.Str{Text: "foo "},
		&mdflat.Mention{Login: "user"},
		&mdflat.Str{Text: " bar"},
	}, inlines)
}

func TestEmailIsNotMention(t *testing.T) {
	inlines := paragraph(t, parse(t, "me@google"))
	assert.Equal(t, []mdflat.Inline{&mdflat.Str{Text: "me@google"}}, inlines)
}

func TestMentionDisabled(t *testing.T) {
	doc := mdflat.Parse([]byte("@user"), mdflat.DefaultConf.WithoutExt(mdflat.ExtMention))
	require.NotNil(t, doc)
	assert.Equal(t, []mdflat.Inline{&mdflat.Str{Text: "@user"}}, paragraph(t, doc))
}

func TestCheckboxes(t *testing.T) {
	var tests = []struct {
		src     string
		checked bool
	}{
		{"- [ ] test", false},
		{"- [x] test", true},
		{"- [X] test", true},
	}
	for _, tt := range tests {
		inlines := firstItem(t, parse(t, tt.src))
		require.Len(t, inlines, 2)
		assert.Equal(t, &mdflat.Checkbox{Checked: tt.checked, Range: mdflat.Range{Start: 2, End: 5}}, inlines[0])
		assert.Equal(t, &mdflat.Str{Text: " test"}, inlines[1])
	}
}

func TestCheckboxPatternInText(t *testing.T) {
	inlines := firstItem(t, parse(t, "- foo [ ] bar"))
	assert.Equal(t, []mdflat.Inline{&mdflat.Str{Text: "foo [ ] bar"}}, inlines)

	inlines = paragraph(t, parse(t, "foo [ ] bar"))
	assert.Equal(t, []mdflat.Inline{&mdflat.Str{Text: "foo [ ] bar"}}, inlines)
}

func TestKitchenSink(t *testing.T) {
	const src = "# Heading\n" +
		"## Subheading\n" +
		"Lorem @ipsum _dolor sit_ **amet**.\n" +
		"* List item 1\n" +
		"* List item 2\n" +
		"  * Nested list item 1\n" +
		"  * Nested list item 2\n" +
		"> Quote\n" +
		"> > Quote 2\n" +
		"- [ ] check one\n" +
		"- [x] check two"
	els := flatten(t, src)
	require.Len(t, els, 7)

	h1, ok := els[0].(*flat.Heading)
	require.True(t, ok)
	assert.Equal(t, "Heading", h1.Text.Plain())
	assert.Equal(t, 1, h1.Level)

	h2, ok := els[1].(*flat.Heading)
	require.True(t, ok)
	assert.Equal(t, "Subheading", h2.Text.Plain())
	assert.Equal(t, 2, h2.Level)

	t1, ok := els[2].(*flat.Text)
	require.True(t, ok)
	assert.Equal(t, "Lorem ipsum dolor sit amet.", t1.Items.Plain())

	l1, ok := els[3].(*flat.List)
	require.True(t, ok)
	require.Len(t, l1.Items, 2)
	assert.Len(t, l1.Items[0], 1)
	require.Len(t, l1.Items[1], 2)
	nested, ok := l1.Items[1][1].(*flat.List)
	require.True(t, ok)
	assert.Len(t, nested.Items, 2)
	assert.Equal(t, 1, nested.Level)

	q1, ok := els[4].(*flat.Quote)
	require.True(t, ok)
	assert.Equal(t, "Quote", q1.Items.Plain())
	assert.Equal(t, 1, q1.Level)

	q2, ok := els[5].(*flat.Quote)
	require.True(t, ok)
	assert.Equal(t, "Quote 2", q2.Items.Plain())
	assert.Equal(t, 2, q2.Level)

	l2, ok := els[6].(*flat.List)
	require.True(t, ok)
	assertCheckboxItems(t, src, l2, []bool{false, true}, []int{155, 171})
}

func TestSimpleLists(t *testing.T) {
	const src = "paragraph\n- [ ] not checked\n- [x] checked"
	els := flatten(t, src)
	require.Len(t, els, 2)
	l, ok := els[1].(*flat.List)
	require.True(t, ok)
	assertCheckboxItems(t, src, l, []bool{false, true}, []int{12, 30})
}

func TestNestedListsCRLF(t *testing.T) {
	const src = "First unordered list item\r\n" +
		"- Another item\r\n" +
		"  * Unordered sub-list. \r\n" +
		"\r\n" +
		"1. Actual numbers don't matter, just that it's a number\r\n" +
		"    1. Ordered sub-list\r\n" +
		"4. And another item.\r\n" +
		"\r\n" +
		"* Unordered list can use asterisks\r\n" +
		"- Or minuses\r\n" +
		"+ Or pluses\r\n" +
		"\r\n" +
		"- [x] And checked boxes\r\n" +
		"- [ ] Or unchecked"
	els := flatten(t, src)
	require.Len(t, els, 7)
	l, ok := els[6].(*flat.List)
	require.True(t, ok)
	assertCheckboxItems(t, src, l, []bool{true, false}, []int{244, 269})
}

func assertCheckboxItems(t *testing.T, src string, l *flat.List, checked []bool, offsets []int) {
	t.Helper()
	require.Len(t, l.Items, len(checked))
	for i, item := range l.Items {
		require.Len(t, item, 1)
		text, ok := item[0].(*flat.Text)
		require.True(t, ok)
		require.Len(t, text.Items, 2)
		cb, ok := text.Items[0].(*flat.Checkbox)
		require.True(t, ok)
		assert.Equal(t, checked[i], cb.Checked)
		assert.Equal(t, offsets[i], cb.Range.Start)
		assert.Equal(t, 3, cb.Range.Len())
		want := "[ ]"
		if checked[i] {
			want = "[x]"
		}
		assert.Equal(t, want, src[cb.Range.Start:cb.Range.End])
	}
}

func TestComplicatedLists(t *testing.T) {
	els := flatten(t, "- a\n  > b\n  ```\n  c\n  ```\n- d")
	require.Len(t, els, 1)
	l, ok := els[0].(*flat.List)
	require.True(t, ok)
	require.Len(t, l.Items, 2)
	require.Len(t, l.Items[0], 3)
	assert.IsType(t, &flat.Text{}, l.Items[0][0])
	q, ok := l.Items[0][1].(*flat.Quote)
	require.True(t, ok)
	assert.Equal(t, 1, q.Level)
	cb, ok := l.Items[0][2].(*flat.CodeBlock)
	require.True(t, ok)
	assert.Equal(t, "c\n", cb.Text)
	assert.Nil(t, cb.Language)
}

func TestTables(t *testing.T) {
	els := flatten(t, "| foo | bar |\n| --- | --- |\n| baz | bim |")
	require.Len(t, els, 1)
	tbl, ok := els[0].(*flat.Table)
	require.True(t, ok)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, flat.HeaderRow, tbl.Rows[0].Kind)
	assert.Equal(t, flat.DataRow, tbl.Rows[1].Kind)
	var cells []string
	for _, r := range tbl.Rows {
		for _, c := range r.Cells {
			cells = append(cells, c.Plain())
		}
	}
	assert.Equal(t, []string{"foo", "bar", "baz", "bim"}, cells)
}

func TestFencedCodeLanguage(t *testing.T) {
	els := flatten(t, "```swift\nlet a = \"foo\"\n```")
	require.Len(t, els, 1)
	cb, ok := els[0].(*flat.CodeBlock)
	require.True(t, ok)
	require.NotNil(t, cb.Language)
	assert.Equal(t, "swift", *cb.Language)
	assert.Equal(t, "let a = \"foo\"\n", cb.Text)
}

func TestGitHawkSignature(t *testing.T) {
	const src = `<sub>Sent with <a href="githawk.com">GitHawk</a></sub>`
	doc := parse(t, src)
	require.Len(t, doc.Blocks, 1)
	assert.Len(t, paragraph(t, doc), 6)

	var got []string
	for _, e := range doc.FlatElements() {
		got = append(got, e.String())
	}
	assert.Equal(t, []string{
		"html: <sub>",
		"text: Sent with ",
		`html: <a href="githawk.com">`,
		"text: GitHawk",
		"html: </a>",
		"html: </sub>",
	}, got)
}

func TestInlineTextResolution(t *testing.T) {
	var tests = []struct {
		src  string
		want []mdflat.Inline
	}{
		{`a \*b\* &amp; &#35;`, []mdflat.Inline{&mdflat.Str{Text: "a *b* & #"}}},
		{"`` a`b ``", []mdflat.Inline{&mdflat.Code{Text: "a`b"}}},
		{"a  \nb", []mdflat.Inline{&mdflat.Str{Text: "a"}, mdflat.LB, &mdflat.Str{Text: "b"}}},
		{"a\nb", []mdflat.Inline{&mdflat.Str{Text: "a"}, mdflat.SB, &mdflat.Str{Text: "b"}}},
		{"*a*", []mdflat.Inline{&mdflat.Emph{Inlines: []mdflat.Inline{&mdflat.Str{Text: "a"}}}}},
		{"__a__", []mdflat.Inline{&mdflat.Strong{Inlines: []mdflat.Inline{&mdflat.Str{Text: "a"}}}}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, paragraph(t, parse(t, tt.src)), tt.src)
	}
}

func TestLinks(t *testing.T) {
	inlines := paragraph(t, parse(t, `[a](/url "title") ![img](/i.png)`))
	require.Len(t, inlines, 3)
	l, ok := inlines[0].(*mdflat.Link)
	require.True(t, ok)
	require.NotNil(t, l.URL)
	require.NotNil(t, l.Title)
	assert.Equal(t, "/url", *l.URL)
	assert.Equal(t, "title", *l.Title)
	img, ok := inlines[2].(*mdflat.Image)
	require.True(t, ok)
	assert.Equal(t, "/i.png", *img.URL)
	assert.Equal(t, "", *img.Title)

	els := mdflat.Fold(&mdflat.Para{Inlines: inlines}, 0)
	require.Len(t, els, 2)
	assert.Equal(t, "text: [a](/url \"title\") ", els[0].String())
	assert.Equal(t, &flat.Image{URL: "/i.png"}, els[1])
}

func TestAutolink(t *testing.T) {
	inlines := paragraph(t, parse(t, "see https://github.com"))
	require.Len(t, inlines, 2)
	l, ok := inlines[1].(*mdflat.Link)
	require.True(t, ok)
	assert.Equal(t, "https://github.com", *l.URL)
	assert.Equal(t, []mdflat.Inline{&mdflat.Str{Text: "https://github.com"}}, l.Inlines)
}

func TestRenderHTML(t *testing.T) {
	var tests = []struct {
		src, want string
	}{
		{"*Hello World*", "<p><em>Hello World</em></p>\n"},
		{"Mentioning @user bla bla", "<p>Mentioning <a href=\"https://github.com/user\">@user</a> bla bla</p>\n"},
		{"- [ ] One\n- [x] Two", "<ul>\n<li><input type=\"checkbox\" /> One</li>\n<li><input type=\"checkbox\" checked /> Two</li>\n</ul>\n"},
	}
	for _, tt := range tests {
		got, err := mdflat.ToHTML([]byte(tt.src), mdflat.DefaultConf)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestRenderFootnotes(t *testing.T) {
	got, err := mdflat.ToHTML([]byte("Lorem ipsum[^1]\n\n[^1]: Test footnote"), mdflat.DefaultConf)
	require.NoError(t, err)
	assert.Contains(t, got, "footnote-ref")
	assert.Contains(t, got, "Test footnote")
}

func TestConf(t *testing.T) {
	c := mdflat.DefaultConf.WithoutExt(mdflat.ExtTable)
	assert.False(t, c.Enabled(mdflat.ExtTable))
	assert.True(t, c.Enabled(mdflat.ExtMention))
	assert.Empty(t, mdflat.DefaultConf.Ext)

	c = c.WithExt(mdflat.ExtTable)
	assert.True(t, c.Enabled(mdflat.ExtTable))
	assert.Equal(t, []string{"+table"}, c.Ext)
	assert.NoError(t, c.Validate())

	assert.Error(t, mdflat.Conf{Ext: []string{"table"}}.Validate())
	assert.Error(t, mdflat.Conf{Ext: []string{"+tables"}}.Validate())

	doc := mdflat.Parse([]byte("| a |\n| - |\n| b |"), mdflat.DefaultConf.WithoutExt(mdflat.ExtTable))
	require.NotNil(t, doc)
	assert.IsType(t, &mdflat.Para{}, doc.Blocks[0])
}
