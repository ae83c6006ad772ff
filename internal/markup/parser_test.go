package markup

import (
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/goliatone/go-onboarding/blocks"
)

func paragraph(content string) blocks.ContentBlock {
	return blocks.ContentBlock{Type: blocks.TypeParagraph, Items: []string{}, Content: content}
}

func heading(t blocks.BlockType, content string) blocks.ContentBlock {
	return blocks.ContentBlock{Type: t, Items: []string{}, Content: content}
}

func list(t blocks.BlockType, items ...string) blocks.ContentBlock {
	return blocks.ContentBlock{Type: t, Items: items}
}

func TestParse(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []blocks.ContentBlock
	}{
		{
			name:  "empty input",
			input: "",
			want:  []blocks.ContentBlock{},
		},
		{
			name:  "untagged text becomes paragraph",
			input: "hello",
			want:  []blocks.ContentBlock{paragraph("hello")},
		},
		{
			name:  "heading",
			input: "<h2>Title</h2>",
			want:  []blocks.ContentBlock{heading(blocks.TypeHeading2, "Title")},
		},
		{
			name:  "unordered list",
			input: "<ul><li>a</li><li>b</li></ul>",
			want:  []blocks.ContentBlock{list(blocks.TypeUnorderedList, "a", "b")},
		},
		{
			name:  "paragraph then ordered list",
			input: "<p>intro</p><ol><li>x</li></ol>",
			want: []blocks.ContentBlock{
				paragraph("intro"),
				list(blocks.TypeOrderedList, "x"),
			},
		},
		{
			name:  "consecutive paragraphs",
			input: "<p>one</p><p>two</p>",
			want:  []blocks.ContentBlock{paragraph("one"), paragraph("two")},
		},
		{
			name:  "all heading levels",
			input: "<h1>a</h1><h2>b</h2><h3>c</h3><h4>d</h4>",
			want: []blocks.ContentBlock{
				heading(blocks.TypeHeading1, "a"),
				heading(blocks.TypeHeading2, "b"),
				heading(blocks.TypeHeading3, "c"),
				heading(blocks.TypeHeading4, "d"),
			},
		},
		{
			name:  "line breaks are removed",
			input: "<p>first<br>second<br/>third</p>",
			want:  []blocks.ContentBlock{paragraph("firstsecondthird")},
		},
		{
			name:  "list wrapped in paragraph",
			input: "<p><ul><li>a</li><li>b</li></ul></p>",
			want:  []blocks.ContentBlock{list(blocks.TypeUnorderedList, "a", "b")},
		},
		{
			name:  "ordered list wrapped in paragraph",
			input: "<p><ol><li>x</li></ol></p><p>after</p>",
			want: []blocks.ContentBlock{
				list(blocks.TypeOrderedList, "x"),
				paragraph("after"),
			},
		},
		{
			name:  "inline markup kept verbatim",
			input: "<p>a <strong>bold</strong> &amp; <a href=\"x\">link</a></p>",
			want:  []blocks.ContentBlock{paragraph("a <strong>bold</strong> &amp; <a href=\"x\">link</a>")},
		},
		{
			name:  "unclosed paragraph keeps remaining text",
			input: "<p>dangling",
			want:  []blocks.ContentBlock{paragraph("dangling")},
		},
		{
			name:  "unclosed list keeps remaining items",
			input: "<ul><li>a</li><li>b",
			want:  []blocks.ContentBlock{list(blocks.TypeUnorderedList, "a", "b")},
		},
		{
			name:  "heading followed by untagged text",
			input: "<h1>Welcome</h1>tail",
			want: []blocks.ContentBlock{
				heading(blocks.TypeHeading1, "Welcome"),
				paragraph("tail"),
			},
		},
		{
			name:  "untagged text before heading is swallowed by the implicit paragraph",
			input: "lead<h1>x</h1>",
			want:  []blocks.ContentBlock{paragraph("lead<h1>x</h1>")},
		},
		{
			name:  "empty paragraph is dropped",
			input: "<p></p>",
			want:  []blocks.ContentBlock{},
		},
		{
			name:  "only line breaks",
			input: "<br><br/>",
			want:  []blocks.ContentBlock{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Parse(tc.input)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Parse(%q)\n got: %#v\nwant: %#v", tc.input, got, tc.want)
			}
		})
	}
}

// Inputs the editor never emits. The expectations document current behavior.
func TestParseUnspecifiedInput(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []blocks.ContentBlock
	}{
		{
			name:  "list without items yields a single empty item",
			input: "<ul></ul>",
			want:  []blocks.ContentBlock{list(blocks.TypeUnorderedList, "")},
		},
		{
			name:  "nested tags inside items are preserved",
			input: "<ol><li><em>a</em></li><li>b <code>c</code></li></ol>",
			want:  []blocks.ContentBlock{list(blocks.TypeOrderedList, "<em>a</em>", "b <code>c</code>")},
		},
		{
			name:  "nested list splits at the first close tag",
			input: "<ul><li>a<ul><li>b</li></ul></li></ul>",
			want: []blocks.ContentBlock{
				list(blocks.TypeUnorderedList, "a<ul><li>b"),
				paragraph("</li></ul>"),
			},
		},
		{
			name:  "uppercase tags are not recognized",
			input: "<H1>x</H1>",
			want:  []blocks.ContentBlock{paragraph("<H1>x</H1>")},
		},
		{
			name:  "attributes defeat tag detection",
			input: "<p class=\"x\">y</p>",
			want:  []blocks.ContentBlock{paragraph("<p class=\"x\">y")},
		},
		{
			name:  "stray close tag",
			input: "</p>",
			want:  []blocks.ContentBlock{},
		},
		{
			name:  "short input below tag length",
			input: "<",
			want:  []blocks.ContentBlock{paragraph("<")},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Parse(tc.input)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Parse(%q)\n got: %#v\nwant: %#v", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseBlockShapeInvariant(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"<p>a</p><ul><li>b</li></ul><h3>c</h3>",
		"<ul></ul><ol></ol>",
		"</ul></ol></h1>",
		"<p><p><p>",
		"<li></li><li>",
		"<h4></h4><h4>x",
		"<p><ul><ol><li>z</li></ol></ul></p>",
		strings.Repeat("<p>x</p>", 50),
	}
	for _, input := range inputs {
		for i, block := range Parse(input) {
			assertBlockShape(t, input, i, block)
		}
	}
}

func TestParsePreservesTopLevelOrder(t *testing.T) {
	input := "<h1>t</h1><p>p1</p><ul><li>u</li></ul><h2>s</h2><ol><li>o</li></ol><p>p2</p>"
	want := []blocks.BlockType{
		blocks.TypeHeading1,
		blocks.TypeParagraph,
		blocks.TypeUnorderedList,
		blocks.TypeHeading2,
		blocks.TypeOrderedList,
		blocks.TypeParagraph,
	}

	got := Parse(input)
	if len(got) != len(want) {
		t.Fatalf("expected %d blocks, got %d: %#v", len(want), len(got), got)
	}
	for i, block := range got {
		if block.Type != want[i] {
			t.Fatalf("block %d: expected %s, got %s", i, want[i], block.Type)
		}
	}
}

func TestParseIsSafeForConcurrentUse(t *testing.T) {
	const input = "<p>intro</p><ol><li>x</li><li>y</li></ol>"
	want := Parse(input)

	var wg sync.WaitGroup
	results := make([][]blocks.ContentBlock, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Parse(input)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("goroutine %d: got %#v", i, got)
		}
	}
}

func TestParserSatisfiesInterface(t *testing.T) {
	got := NewParser().Parse("<h3>x</h3>")
	if len(got) != 1 || got[0].Type != blocks.TypeHeading3 {
		t.Fatalf("unexpected blocks: %#v", got)
	}
}

func FuzzParse(f *testing.F) {
	seeds := []string{"", "hello", "<h2>Title</h2>", "<ul><li>a</li><li>b</li></ul>", "<p><ol><li>x</li></ol></p>", "<br/>"}
	for _, seed := range seeds {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, input string) {
		for i, block := range Parse(input) {
			assertBlockShape(t, input, i, block)
		}
	})
}

func assertBlockShape(t *testing.T, input string, index int, block blocks.ContentBlock) {
	t.Helper()
	if !block.Type.Valid() {
		t.Fatalf("Parse(%q) block %d: invalid type %q", input, index, block.Type)
	}
	if block.Type.IsList() {
		if len(block.Items) == 0 || block.Content != "" {
			t.Fatalf("Parse(%q) block %d: list block must carry items only: %#v", input, index, block)
		}
		return
	}
	if block.Content == "" || len(block.Items) != 0 {
		t.Fatalf("Parse(%q) block %d: %s block must carry content only: %#v", input, index, block.Type, block)
	}
}
