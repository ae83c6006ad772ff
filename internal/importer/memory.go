package importer

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// NewMemoryResourceRepository constructs an in-memory resource repository.
func NewMemoryResourceRepository() ResourceRepository {
	return &memoryResourceRepository{
		byID: make(map[uuid.UUID]*Resource),
	}
}

type memoryResourceRepository struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]*Resource
	order []uuid.UUID
}

func (m *memoryResourceRepository) Create(_ context.Context, resource *Resource) (*Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneResource(resource)
	if _, exists := m.byID[cloned.ID]; !exists {
		m.order = append(m.order, cloned.ID)
	}
	m.byID[cloned.ID] = cloned
	return cloneResource(cloned), nil
}

func (m *memoryResourceRepository) Update(_ context.Context, resource *Resource) (*Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[resource.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "onboarding_resource", Key: resource.ID.String()}
	}
	cloned := cloneResource(resource)
	cloned.CreatedAt = existing.CreatedAt
	m.byID[cloned.ID] = cloned
	return cloneResource(cloned), nil
}

func (m *memoryResourceRepository) GetByID(_ context.Context, id uuid.UUID) (*Resource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "onboarding_resource", Key: id.String()}
	}
	return cloneResource(record), nil
}

func (m *memoryResourceRepository) List(_ context.Context, kind Kind) ([]*Resource, error) {
	return m.filter(func(r *Resource) bool {
		return kind == "" || r.Kind == kind
	}), nil
}

func (m *memoryResourceRepository) ListChildren(_ context.Context, parentID uuid.UUID) ([]*Resource, error) {
	return m.filter(func(r *Resource) bool {
		return r.ParentID != nil && *r.ParentID == parentID
	}), nil
}

func (m *memoryResourceRepository) filter(keep func(*Resource) bool) []*Resource {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []*Resource{}
	for _, id := range m.order {
		if record := m.byID[id]; keep(record) {
			out = append(out, cloneResource(record))
		}
	}
	slices.SortStableFunc(out, func(a, b *Resource) int {
		return a.Position - b.Position
	})
	return out
}

// NewMemoryColleagueRepository constructs an in-memory colleague repository.
func NewMemoryColleagueRepository() ColleagueRepository {
	return &memoryColleagueRepository{
		byEmail: make(map[string]*Colleague),
	}
}

type memoryColleagueRepository struct {
	mu      sync.RWMutex
	byEmail map[string]*Colleague
	order   []string
}

func (m *memoryColleagueRepository) Create(_ context.Context, colleague *Colleague) (*Colleague, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := emailKey(colleague.Email)
	if _, exists := m.byEmail[key]; exists {
		return nil, ErrColleagueExists
	}
	cloned := cloneColleague(colleague)
	m.byEmail[key] = cloned
	m.order = append(m.order, key)
	return cloneColleague(cloned), nil
}

func (m *memoryColleagueRepository) GetByEmail(_ context.Context, email string) (*Colleague, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byEmail[emailKey(email)]
	if !ok {
		return nil, &NotFoundError{Resource: "onboarding_colleague", Key: email}
	}
	return cloneColleague(record), nil
}

func (m *memoryColleagueRepository) List(context.Context) ([]*Colleague, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Colleague, 0, len(m.order))
	for _, key := range m.order {
		out = append(out, cloneColleague(m.byEmail[key]))
	}
	return out, nil
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func cloneResource(resource *Resource) *Resource {
	if resource == nil {
		return nil
	}
	cloned := *resource
	cloned.Attributes = maps.Clone(resource.Attributes)
	if resource.ParentID != nil {
		parent := *resource.ParentID
		cloned.ParentID = &parent
	}
	return &cloned
}

func cloneColleague(colleague *Colleague) *Colleague {
	if colleague == nil {
		return nil
	}
	cloned := *colleague
	cloned.Attributes = maps.Clone(colleague.Attributes)
	return &cloned
}
