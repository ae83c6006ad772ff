package importcmd

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	contentblocks "github.com/goliatone/go-onboarding/blocks"
	"github.com/goliatone/go-onboarding/internal/importer"
)

const (
	importRecordsMessageType = "onboarding.import.records"
	parseMarkupMessageType   = "onboarding.blocks.parse_markup"

	maxMarkupLength = 1 << 20
)

// ImportRecordsCommand imports an export payload. OnResult, when set,
// receives the summary after a successful run.
type ImportRecordsCommand struct {
	Payload *importer.Payload `json:"payload"`
	// DryRun parses and counts records without persisting them.
	DryRun bool `json:"dry_run,omitempty"`
	// Replace overwrites records left by an earlier import.
	Replace  bool                   `json:"replace,omitempty"`
	OnResult func(*importer.Result) `json:"-"`
}

// Type implements command.Message.
func (ImportRecordsCommand) Type() string { return importRecordsMessageType }

// Validate ensures a non-empty payload is present before handlers execute.
func (cmd ImportRecordsCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Payload, validation.Required, validation.By(func(value any) error {
			payload, _ := value.(*importer.Payload)
			if payload == nil || payload.Count() == 0 {
				return validation.NewError("onboarding.import.records.payload_empty", "payload contains no records")
			}
			return nil
		})),
	)
}

// ParseMarkupCommand parses editor markup and hands the blocks to OnBlocks.
type ParseMarkupCommand struct {
	Markup   string                             `json:"markup"`
	OnBlocks func([]contentblocks.ContentBlock) `json:"-"`
}

// Type implements command.Message.
func (ParseMarkupCommand) Type() string { return parseMarkupMessageType }

func (cmd ParseMarkupCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Markup, validation.Length(0, maxMarkupLength)),
		validation.Field(&cmd.OnBlocks, validation.By(func(value any) error {
			if fn, _ := value.(func([]contentblocks.ContentBlock)); fn == nil {
				return validation.NewError("onboarding.blocks.parse_markup.sink_required", "result sink is required")
			}
			return nil
		})),
	)
}
