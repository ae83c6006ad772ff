package markup

import (
	"strings"

	"github.com/goliatone/go-onboarding/blocks"
	"github.com/goliatone/go-onboarding/pkg/interfaces"
)

const (
	openParagraph  = "<p>"
	closeParagraph = "</p>"
	openItem       = "<li>"
	closeItem      = "</li>"
	itemSeparator  = closeItem + openItem
)

var lineBreaks = []string{"<br>", "<br/>"}

// blockOrder is the precedence used when sniffing a block opening tag.
// Paragraphs are handled first and separately because they may wrap a list.
var blockOrder = []blocks.BlockType{
	blocks.TypeUnorderedList,
	blocks.TypeOrderedList,
	blocks.TypeHeading1,
	blocks.TypeHeading2,
	blocks.TypeHeading3,
	blocks.TypeHeading4,
}

var nestedLists = []blocks.BlockType{
	blocks.TypeUnorderedList,
	blocks.TypeOrderedList,
}

// Parser implements interfaces.MarkupParser on top of Parse. It holds no
// state, so a single value can be shared across goroutines.
type Parser struct{}

var _ interfaces.MarkupParser = Parser{}

// NewParser returns a ready to use Parser.
func NewParser() Parser {
	return Parser{}
}

// Parse satisfies interfaces.MarkupParser.
func (Parser) Parse(markup string) []blocks.ContentBlock {
	return Parse(markup)
}

// Parse scans editor markup and returns its blocks in source order. It never
// fails: input outside the editor's dialect degrades into best-effort blocks.
// The returned slice is never nil.
func Parse(markup string) []blocks.ContentBlock {
	content := stripLineBreaks(markup)
	out := []blocks.ContentBlock{}
	if content == "" {
		return out
	}

	// Untagged runs are implicit paragraphs.
	if !startsWithBlockTag(content) && !strings.HasSuffix(content, closeParagraph) {
		content = openParagraph + content
	}

	for content != "" {
		var (
			block blocks.ContentBlock
			ok    bool
		)
		block, content, ok = nextBlock(content)
		if ok {
			out = append(out, block)
		}
	}
	return out
}

// nextBlock consumes one block from content and returns it together with the
// unconsumed remainder. The remainder is always shorter than content. ok is
// false when the block carries nothing worth emitting.
func nextBlock(content string) (blocks.ContentBlock, string, bool) {
	blockType, rest := detectBlock(content)
	rest = strings.TrimPrefix(rest, openParagraph)

	body, remainder, found := strings.Cut(rest, closeTag(blockType))
	if !found {
		body, remainder = rest, ""
	}

	if blockType.IsList() {
		return blocks.ContentBlock{
			Type:  blockType,
			Items: splitItems(body),
		}, remainder, true
	}

	if body == "" {
		return blocks.ContentBlock{}, remainder, false
	}
	return blocks.ContentBlock{
		Type:    blockType,
		Items:   []string{},
		Content: body,
	}, remainder, true
}

// detectBlock sniffs the opening tag at the start of content. A paragraph
// opening tag immediately followed by a list opening tag yields the list
// type, with both tags consumed. Without a recognized tag the block is a
// paragraph and nothing is consumed.
func detectBlock(content string) (blocks.BlockType, string) {
	if rest, ok := strings.CutPrefix(content, openParagraph); ok {
		for _, list := range nestedLists {
			if inner, ok := strings.CutPrefix(rest, openTag(list)); ok {
				return list, inner
			}
		}
		return blocks.TypeParagraph, rest
	}

	for _, candidate := range blockOrder {
		if rest, ok := strings.CutPrefix(content, openTag(candidate)); ok {
			return candidate, rest
		}
	}
	return blocks.TypeParagraph, content
}

func splitItems(body string) []string {
	body = strings.TrimPrefix(body, openItem)
	fragments := strings.Split(body, itemSeparator)
	items := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		items = append(items, strings.TrimSuffix(fragment, closeItem))
	}
	return items
}

func startsWithBlockTag(content string) bool {
	for _, candidate := range blockOrder {
		if strings.HasPrefix(content, openTag(candidate)) {
			return true
		}
	}
	return false
}

func stripLineBreaks(markup string) string {
	for _, br := range lineBreaks {
		markup = strings.ReplaceAll(markup, br, "")
	}
	return markup
}

func openTag(t blocks.BlockType) string {
	return "<" + t.Tag() + ">"
}

func closeTag(t blocks.BlockType) string {
	return "</" + t.Tag() + ">"
}
