package blocks

import (
	"context"
	"fmt"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunRepository implements Repository with optional caching.
type BunRepository struct {
	db   *bun.DB
	repo repository.Repository[*Record]
}

var _ Repository = (*BunRepository)(nil)

// NewBunRepository creates a block repository without caching.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache creates a block repository backed by the
// go-repository-cache decorator when both cache collaborators are supplied.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunRepository {
	base := NewRecordRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunRepository{db: db, repo: base}
}

// CreateMany inserts all records or none of them.
func (r *BunRepository) CreateMany(ctx context.Context, records []*Record) ([]*Record, error) {
	var out []*Record
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		created, err := r.createTx(ctx, tx, records)
		out = created
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BunRepository) ReplaceByOwner(ctx context.Context, ownerID uuid.UUID, records []*Record) ([]*Record, error) {
	var out []*Record
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := r.repo.DeleteWhereTx(ctx, tx, ownerCriteria(ownerID)); err != nil {
			return mapRepositoryError(err, "content_block", ownerID.String())
		}
		created, err := r.createTx(ctx, tx, records)
		out = created
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BunRepository) createTx(ctx context.Context, tx bun.IDB, records []*Record) ([]*Record, error) {
	batch := make([]*Record, 0, len(records))
	for _, record := range records {
		if record != nil {
			batch = append(batch, record)
		}
	}
	if len(batch) == 0 {
		return []*Record{}, nil
	}
	created, err := r.repo.CreateManyTx(ctx, tx, batch)
	if err != nil {
		return nil, mapRepositoryError(err, "content_block", batch[0].OwnerID.String())
	}
	return created, nil
}

func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "content_block", id.String())
	}
	return record, nil
}

func (r *BunRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Record, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.owner_id = ?", ownerID)
		}),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.position ASC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "content_block", ownerID.String())
	}
	return records, nil
}

func (r *BunRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	count, err := r.db.NewSelect().
		Model((*Record)(nil)).
		Where("?TableAlias.owner_id = ?", ownerID).
		Count(ctx)
	if err != nil {
		return 0, mapRepositoryError(err, "content_block", ownerID.String())
	}
	if err := r.repo.DeleteWhere(ctx, ownerCriteria(ownerID)); err != nil {
		return 0, mapRepositoryError(err, "content_block", ownerID.String())
	}
	return count, nil
}

func ownerCriteria(ownerID uuid.UUID) repository.DeleteCriteria {
	return func(q *bun.DeleteQuery) *bun.DeleteQuery {
		return q.Where("?TableAlias.owner_id = ?", ownerID)
	}
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
