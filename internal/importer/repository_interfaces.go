package importer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// ResourceRepository persists imported onboarding records.
type ResourceRepository interface {
	Create(ctx context.Context, resource *Resource) (*Resource, error)
	Update(ctx context.Context, resource *Resource) (*Resource, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Resource, error)
	// List returns resources of the given kind ordered by position. An empty
	// kind lists every resource.
	List(ctx context.Context, kind Kind) ([]*Resource, error)
	ListChildren(ctx context.Context, parentID uuid.UUID) ([]*Resource, error)
}

// ColleagueRepository persists imported colleagues.
type ColleagueRepository interface {
	Create(ctx context.Context, colleague *Colleague) (*Colleague, error)
	GetByEmail(ctx context.Context, email string) (*Colleague, error)
	List(ctx context.Context) ([]*Colleague, error)
}

// NotFoundError is returned when an imported record cannot be located.
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
