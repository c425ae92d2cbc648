package extension

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func newMarkdown() goldmark.Markdown {
	return goldmark.New(goldmark.WithExtensions(Mentions, Checkboxes))
}

func collect[N gast.Node](root gast.Node) []N {
	var found []N
	_ = gast.Walk(root, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if v, ok := n.(N); ok && entering {
			found = append(found, v)
		}
		return gast.WalkContinue, nil
	})
	return found
}

func parse(src string) gast.Node {
	return newMarkdown().Parser().Parse(text.NewReader([]byte(src)))
}

func TestMentionParser(t *testing.T) {
	tests := []struct {
		src    string
		logins []string
	}{
		{"@user", []string{"user"}},
		{"@user123'", []string{"user123"}},
		{"foo @user-123 bar", []string{"user-123"}},
		{"(@a, @b)", []string{"a", "b"}},
		{"me@google", nil},
		{"me@google.com", nil},
		{"@ alone", nil},
		{"@-", nil},
		{"(@a) x@b @--x", []string{"a"}},
		{"@a-", []string{"a-"}},
		{"`@code`", nil},
		{"[@label](http://example.com)", nil},
		{"**@bold**", []string{"bold"}},
	}
	for _, tt := range tests {
		var logins []string
		for _, m := range collect[*Mention](parse(tt.src)) {
			logins = append(logins, string(m.Login))
		}
		assert.Equal(t, tt.logins, logins, "source %q", tt.src)
	}
}

func TestCheckboxParser(t *testing.T) {
	tests := []struct {
		src     string
		checked []bool
	}{
		{"- [ ] one", []bool{false}},
		{"- [x] one\n- [X] two", []bool{true, true}},
		{"- [ ]", []bool{false}},
		{"- foo [ ] bar", nil},
		{"[ ] not in a list", nil},
		{"- [x]done", nil},
		{"- [y] nope", nil},
		{"1. [ ] ordered", []bool{false}},
		{"- item\n\n  [ ] second paragraph", nil},
	}
	for _, tt := range tests {
		var checked []bool
		for _, c := range collect[*Checkbox](parse(tt.src)) {
			checked = append(checked, c.Checked)
		}
		assert.Equal(t, tt.checked, checked, "source %q", tt.src)
	}
}

func TestCheckboxSegment(t *testing.T) {
	src := "paragraph\n- [ ] not checked\n- [x] checked"
	boxes := collect[*Checkbox](parse(src))
	require.Len(t, boxes, 2)
	assert.Equal(t, 12, boxes[0].Segment.Start)
	assert.Equal(t, 30, boxes[1].Segment.Start)
	for _, b := range boxes {
		assert.Equal(t, 3, b.Segment.Len())
		assert.True(t, IsMarker(b.Segment.Value([]byte(src))))
	}
}

func TestCheckboxLeavesText(t *testing.T) {
	root := parse("- [ ] One")
	box := collect[*Checkbox](root)
	require.Len(t, box, 1)
	next, ok := box[0].NextSibling().(*gast.Text)
	require.True(t, ok)
	assert.Equal(t, " One", string(next.Segment.Value([]byte("- [ ] One"))))
}

func TestHTML(t *testing.T) {
	tests := []struct {
		src  string
		html string
	}{
		{"Mentioning @user bla bla", "<p>Mentioning <a href=\"https://github.com/user\">@user</a> bla bla</p>\n"},
		{"- [ ] One\n- [x] Two", "<ul>\n<li><input type=\"checkbox\" /> One</li>\n<li><input type=\"checkbox\" checked /> Two</li>\n</ul>\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		require.NoError(t, newMarkdown().Convert([]byte(tt.src), &buf))
		if buf.String() != tt.html {
			t.Errorf("expected %q, got %q", tt.html, buf.String())
		}
	}
}

func TestMentionBaseURL(t *testing.T) {
	md := goldmark.New(goldmark.WithExtensions(NewMentions("https://example.com/u/")))
	var buf bytes.Buffer
	require.NoError(t, md.Convert([]byte("@rnystrom"), &buf))
	assert.Equal(t, "<p><a href=\"https://example.com/u/rnystrom\">@rnystrom</a></p>\n", buf.String())
}
