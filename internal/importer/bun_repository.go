package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunResourceRepository implements ResourceRepository with optional caching.
type BunResourceRepository struct {
	repo repository.Repository[*Resource]
}

var _ ResourceRepository = (*BunResourceRepository)(nil)

// NewBunResourceRepository creates a resource repository without caching.
func NewBunResourceRepository(db *bun.DB) *BunResourceRepository {
	return NewBunResourceRepositoryWithCache(db, nil, nil)
}

// NewBunResourceRepositoryWithCache creates a resource repository with caching services.
func NewBunResourceRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunResourceRepository {
	base := NewResourceRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunResourceRepository{repo: base}
}

func (r *BunResourceRepository) Create(ctx context.Context, resource *Resource) (*Resource, error) {
	record, err := r.repo.Create(ctx, resource)
	if err != nil {
		return nil, mapRepositoryError(err, "onboarding_resource", resource.ID.String())
	}
	return record, nil
}

func (r *BunResourceRepository) Update(ctx context.Context, resource *Resource) (*Resource, error) {
	updated, err := r.repo.Update(ctx, resource,
		repository.UpdateByID(resource.ID.String()),
		repository.UpdateColumns(
			"name",
			"slug",
			"position",
			"attributes",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "onboarding_resource", resource.ID.String())
	}
	return updated, nil
}

func (r *BunResourceRepository) GetByID(ctx context.Context, id uuid.UUID) (*Resource, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "onboarding_resource", id.String())
	}
	return record, nil
}

func (r *BunResourceRepository) List(ctx context.Context, kind Kind) ([]*Resource, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			if kind == "" {
				return q
			}
			return q.Where("?TableAlias.kind = ?", string(kind))
		}),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.position ASC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "onboarding_resource", string(kind))
	}
	return records, nil
}

func (r *BunResourceRepository) ListChildren(ctx context.Context, parentID uuid.UUID) ([]*Resource, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.parent_id = ?", parentID)
		}),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.position ASC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "onboarding_resource", parentID.String())
	}
	return records, nil
}

// BunColleagueRepository implements ColleagueRepository.
type BunColleagueRepository struct {
	repo repository.Repository[*Colleague]
}

var _ ColleagueRepository = (*BunColleagueRepository)(nil)

func NewBunColleagueRepository(db *bun.DB) *BunColleagueRepository {
	return &BunColleagueRepository{repo: NewColleagueRepository(db)}
}

func (r *BunColleagueRepository) Create(ctx context.Context, colleague *Colleague) (*Colleague, error) {
	record, err := r.repo.Create(ctx, colleague)
	if repository.IsDuplicatedKey(err) {
		return nil, fmt.Errorf("%w: %s", ErrColleagueExists, colleague.Email)
	}
	if err != nil {
		return nil, mapRepositoryError(err, "onboarding_colleague", colleague.Email)
	}
	return record, nil
}

func (r *BunColleagueRepository) GetByEmail(ctx context.Context, email string) (*Colleague, error) {
	key := emailKey(email)
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("LOWER(?TableAlias.email) = ?", key)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "onboarding_colleague", email)
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "onboarding_colleague", Key: strings.TrimSpace(email)}
	}
	return records[0], nil
}

func (r *BunColleagueRepository) List(ctx context.Context) ([]*Colleague, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("?TableAlias.email ASC")
	}))
	if err != nil {
		return nil, mapRepositoryError(err, "onboarding_colleague", "")
	}
	return records, nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}
