package records

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Kind names the onboarding record types that can own content blocks.
type Kind string

const (
	KindToDo            Kind = "to_do"
	KindPreboarding     Kind = "preboarding"
	KindBadge           Kind = "badge"
	KindSequence        Kind = "sequence"
	KindCondition       Kind = "condition"
	KindExternalMessage Kind = "external_message"
	KindPendingTask     Kind = "pending_task"
)

// Resource is an imported onboarding record. Fields that carry no block
// content are kept verbatim in Attributes.
type Resource struct {
	bun.BaseModel `bun:"table:onboarding_resources,alias:res"`

	ID         uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	Kind       Kind           `bun:"kind,notnull" json:"kind"`
	ParentID   *uuid.UUID     `bun:"parent_id,type:uuid" json:"parent_id,omitempty"`
	Name       string         `bun:"name,notnull" json:"name"`
	Slug       string         `bun:"slug" json:"slug,omitempty"`
	Position   int            `bun:"position,notnull,default:0" json:"position"`
	Attributes map[string]any `bun:"attributes,type:jsonb" json:"attributes,omitempty"`
	CreatedAt  time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Colleague is a person imported alongside the onboarding records.
type Colleague struct {
	bun.BaseModel `bun:"table:onboarding_colleagues,alias:col"`

	ID         uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	Email      string         `bun:"email,notnull,unique" json:"email"`
	FirstName  string         `bun:"first_name" json:"first_name,omitempty"`
	LastName   string         `bun:"last_name" json:"last_name,omitempty"`
	Attributes map[string]any `bun:"attributes,type:jsonb" json:"attributes,omitempty"`
	CreatedAt  time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}
