package blocks

import contentblocks "github.com/goliatone/go-onboarding/blocks"

type (
	Record       = contentblocks.Record
	ContentBlock = contentblocks.ContentBlock
	BlockType    = contentblocks.BlockType
)
