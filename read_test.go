package mdflat

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendQuote(t *testing.T) {
	var tests = []struct {
		str, want string
	}{
		{"", `""`},
		{"a", `"a"`},
		{"\"", `"\""`},
		{"a\\b", `"a\\b"`},
		{"\n\t", `"\n\t"`},
		{"\x01", `"\u0001"`},
		{"💩", `"💩"`},
	}
	for i := range tests {
		r := appendQuote(nil, tests[i].str)
		v := []byte(tests[i].want)
		if !bytes.Equal(r, v) {
			t.Errorf("expected [%s], got [%s]", v, r)
		}
	}
}

func TestCompareSemver(t *testing.T) {
	var tests = []struct {
		a, b []int
		want int
	}{
		{[]int{1, 23, 1}, []int{1, 23, 1}, 0},
		{[]int{1, 23, 1}, []int{1, 23, 2}, -1},
		{[]int{1, 23}, []int{1, 23, 2}, -1},
		{[]int{1, 23, 1}, []int{1, 23}, 1},
		{[]int{1}, []int{1, 23, 1}, -1},
		{[]int{2}, []int{1, 23, 1}, 1},
	}
	for _, tt := range tests {
		got := cmpSemver(tt.a, tt.b)
		if got != tt.want {
			t.Errorf("cmpSemver(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func sp(s string) *string { return &s }

func sampleDoc() *Doc {
	return &Doc{Blocks: []Block{
		&Heading{Level: 1, Inlines: []Inline{&Str{"Title"}}},
		&Para{Inlines: []Inline{
			&Str{"Hello "},
			&Mention{"octocat"},
			SB,
			&Emph{[]Inline{&Str{"a"}}},
			&Strong{[]Inline{&Code{"b"}}},
			&Strikethrough{[]Inline{&Str{"c"}}},
			LB,
			&Link{[]Inline{&Str{"link"}}, sp(""), sp("https://example.com")},
			&Image{[]Inline{&Str{"alt"}}, sp("t"), nil},
			&RawHTML{"<br>"},
			&CustomInline{"[1]"},
		}},
		&BlockQuote{[]Block{&Para{[]Inline{&Str{"quoted \"text\"\n"}}}}},
		&List{Ordered, [][]Block{
			{&Para{[]Inline{&Checkbox{true, Range{Start: 2, End: 5}}, &Str{" done"}}}},
			nil,
		}},
		&CodeBlock{sp("go"), "fmt.Println()\n"},
		&CodeBlock{nil, "plain\n"},
		&HTMLBlock{"<div>\n</div>\n"},
		HR,
		&Table{[]Block{
			&TableHeader{[]Block{&TableCell{[]Inline{&Str{"h"}}}}},
			&TableRow{[]Block{&TableCell{nil}}},
		}},
		&CustomBlock{"custom"},
	}}
}

func TestRoundTrip(t *testing.T) {
	doc := sampleDoc()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, doc))
	got, err := ReadDoc(&buf)
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestWriteFormat(t *testing.T) {
	var tests = []struct {
		elt  Element
		want string
	}{
		{&Str{"a"}, `{"t":"Str","c":"a"}`},
		{SB, `{"t":"SoftBreak"}`},
		{&Checkbox{false, Range{Start: 3, End: 6}}, `{"t":"Checkbox","c":[false,[3,6]]}`},
		{&Link{nil, nil, sp("/u")}, `{"t":"Link","c":[[],[null,"/u"]]}`},
		{&Heading{2, []Inline{&Str{"h"}}}, `{"t":"Heading","c":[2,[{"t":"Str","c":"h"}]]}`},
		{&List{Unordered, [][]Block{{HR}}}, `{"t":"List","c":[{"t":"Unordered"},[[{"t":"ThematicBreak"}]]]}`},
		{&CodeBlock{nil, "x"}, `{"t":"CodeBlock","c":[null,"x"]}`},
		{&Doc{}, `{"mdflat-api-version":[1,0],"blocks":[]}`},
	}
	for _, tt := range tests {
		var sb strings.Builder
		if err := Write(&sb, tt.elt); err != nil {
			t.Fatal(err)
		}
		if sb.String() != tt.want {
			t.Errorf("expected %s, got %s", tt.want, sb.String())
		}
	}
}

func TestReadDocErrors(t *testing.T) {
	var tests = []struct {
		name, src string
	}{
		{"empty", ``},
		{"not an object", `[]`},
		{"missing blocks", `{"mdflat-api-version":[1,0]}`},
		{"unknown field", `{"mdflat-api-version":[1,0],"meta":{}}`},
		{"unknown block", `{"mdflat-api-version":[1,0],"blocks":[{"t":"Div","c":[]}]}`},
		{"unknown inline", `{"mdflat-api-version":[1,0],"blocks":[{"t":"Para","c":[{"t":"Space"}]}]}`},
		{"bad heading level", `{"mdflat-api-version":[1,0],"blocks":[{"t":"Heading","c":[7,[]]}]}`},
		{"bad range", `{"mdflat-api-version":[1,0],"blocks":[{"t":"Para","c":[{"t":"Checkbox","c":[true,[5,2]]}]}]}`},
		{"bad list type", `{"mdflat-api-version":[1,0],"blocks":[{"t":"List","c":[{"t":"Bullet"},[]]}]}`},
		{"truncated", `{"mdflat-api-version":[1,0],"blocks":[{"t":"Para","c":[`},
		{"float", `{"mdflat-api-version":[1.5,0],"blocks":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadDoc(strings.NewReader(tt.src))
			assert.Error(t, err)
		})
	}
}

func TestReadDocVersion(t *testing.T) {
	_, err := ReadDoc(strings.NewReader(`{"mdflat-api-version":[2,0],"blocks":[]}`))
	assert.ErrorIs(t, err, ErrVersion)

	doc, err := ReadDoc(strings.NewReader(`{"blocks":[{"t":"ThematicBreak"}],"mdflat-api-version":[1,7]}`))
	require.NoError(t, err)
	assert.Equal(t, &Doc{Blocks: []Block{HR}}, doc)
}

func testData() []byte {
	var buf bytes.Buffer
	doc := &Doc{}
	for i := 0; i < 1000; i++ {
		doc.Blocks = append(doc.Blocks, sampleDoc().Blocks...)
	}
	if err := Write(&buf, doc); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func BenchmarkRead(b *testing.B) {
	b.StopTimer()
	data := testData()
	r := bytes.NewReader(nil)
	b.ReportAllocs()
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		r.Reset(data)
		if _, err := ReadDoc(r); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkQuery(b *testing.B) {
	b.StopTimer()
	doc, err := ReadDoc(bytes.NewReader(testData()))
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		Query(doc, func(elt *Str) WalkResult {
			return WalkContinue
		})
	}
}
