package blocks

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Repository persists content block records grouped by owner.
type Repository interface {
	CreateMany(ctx context.Context, records []*Record) ([]*Record, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Record, error)
	// ListByOwner returns the owner's records ordered by position.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Record, error)
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)
	// ReplaceByOwner swaps the owner's records for the given ones in one
	// unit. On error the previous records are left untouched.
	ReplaceByOwner(ctx context.Context, ownerID uuid.UUID, records []*Record) ([]*Record, error)
}

// NotFoundError is returned when a block record cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}
