package importer

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewResourceRepository creates a go-repository-bun repository for resources.
func NewResourceRepository(db *bun.DB) repository.Repository[*Resource] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Resource]{
		NewRecord:          func() *Resource { return &Resource{} },
		GetID:              func(r *Resource) uuid.UUID { return r.ID },
		SetID:              func(r *Resource, id uuid.UUID) { r.ID = id },
		GetIdentifier:      func() string { return "slug" },
		GetIdentifierValue: func(r *Resource) string { return r.Slug },
	})
}

// NewColleagueRepository creates a go-repository-bun repository for colleagues.
func NewColleagueRepository(db *bun.DB) repository.Repository[*Colleague] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Colleague]{
		NewRecord:          func() *Colleague { return &Colleague{} },
		GetID:              func(c *Colleague) uuid.UUID { return c.ID },
		SetID:              func(c *Colleague, id uuid.UUID) { c.ID = id },
		GetIdentifier:      func() string { return "email" },
		GetIdentifierValue: func(c *Colleague) string { return c.Email },
	})
}
