package interfaces

import "github.com/goliatone/go-onboarding/blocks"

// MarkupParser converts editor markup into ordered content blocks.
// Implementations must be safe for concurrent use and must not fail on any
// input string.
type MarkupParser interface {
	Parse(markup string) []blocks.ContentBlock
}
