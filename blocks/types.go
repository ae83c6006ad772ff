package blocks

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BlockType identifies the semantic category of a content block.
type BlockType string

const (
	TypeParagraph     BlockType = "paragraph"
	TypeUnorderedList BlockType = "unordered_list"
	TypeOrderedList   BlockType = "ordered_list"
	TypeHeading1      BlockType = "heading_1"
	TypeHeading2      BlockType = "heading_2"
	TypeHeading3      BlockType = "heading_3"
	TypeHeading4      BlockType = "heading_4"
)

var blockTags = map[BlockType]string{
	TypeParagraph:     "p",
	TypeUnorderedList: "ul",
	TypeOrderedList:   "ol",
	TypeHeading1:      "h1",
	TypeHeading2:      "h2",
	TypeHeading3:      "h3",
	TypeHeading4:      "h4",
}

// Tag returns the markup tag name used by the editor for the block type.
func (t BlockType) Tag() string {
	return blockTags[t]
}

// IsList reports whether blocks of this type carry items instead of content.
func (t BlockType) IsList() bool {
	return t == TypeUnorderedList || t == TypeOrderedList
}

// Valid reports whether t is one of the known block types.
func (t BlockType) Valid() bool {
	_, ok := blockTags[t]
	return ok
}

// ContentBlock is one unit of parsed editor markup. List blocks populate
// Items, every other type populates Content.
type ContentBlock struct {
	Type    BlockType `json:"block_type"`
	Items   []string  `json:"items"`
	Content string    `json:"content"`
}

// Record persists a content block as an ordered child of an owner entity.
type Record struct {
	bun.BaseModel `bun:"table:content_blocks,alias:cb"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	OwnerID   uuid.UUID `bun:"owner_id,notnull,type:uuid" json:"owner_id"`
	OwnerKind string    `bun:"owner_kind,notnull" json:"owner_kind"`
	Position  int       `bun:"position,notnull,default:0" json:"position"`
	Type      BlockType `bun:"block_type,notnull" json:"block_type"`
	Content   string    `bun:"content" json:"content"`
	Items     []string  `bun:"items,type:jsonb" json:"items"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Block projects the stored record back into its content block form.
func (r *Record) Block() ContentBlock {
	if r == nil {
		return ContentBlock{Items: []string{}}
	}
	items := make([]string, len(r.Items))
	copy(items, r.Items)
	return ContentBlock{
		Type:    r.Type,
		Items:   items,
		Content: r.Content,
	}
}
