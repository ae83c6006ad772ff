package importcmd

import (
	"context"
	"testing"

	"github.com/goliatone/go-command/dispatcher"

	contentblocks "github.com/goliatone/go-onboarding/blocks"
	"github.com/goliatone/go-onboarding/internal/markup"
)

func TestHandlerSetSubscribeDispatches(t *testing.T) {
	set, err := NewHandlerSet(&stubImporter{}, markup.NewParser(), nil)
	if err != nil {
		t.Fatalf("NewHandlerSet: %v", err)
	}
	unsubscribe, err := set.Subscribe()
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	t.Cleanup(unsubscribe)

	var got []contentblocks.ContentBlock
	if err := dispatcher.Dispatch(context.Background(), ParseMarkupCommand{
		Markup:   "<h2>Title</h2>",
		OnBlocks: func(b []contentblocks.ContentBlock) { got = b },
	}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if len(got) != 1 || got[0].Type != contentblocks.TypeHeading2 || got[0].Content != "Title" {
		t.Fatalf("unexpected blocks %#v", got)
	}
}
