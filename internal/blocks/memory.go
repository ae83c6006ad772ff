package blocks

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// NewMemoryRepository constructs an in-memory block repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		byID:    make(map[uuid.UUID]*Record),
		byOwner: make(map[uuid.UUID][]uuid.UUID),
	}
}

type memoryRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*Record
	byOwner map[uuid.UUID][]uuid.UUID
}

func (m *memoryRepository) CreateMany(_ context.Context, records []*Record) ([]*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*Record, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		cloned := cloneRecord(record)
		if _, exists := m.byID[cloned.ID]; !exists {
			m.byOwner[cloned.OwnerID] = append(m.byOwner[cloned.OwnerID], cloned.ID)
		}
		m.byID[cloned.ID] = cloned
		out = append(out, cloneRecord(cloned))
	}
	return out, nil
}

func (m *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "content_block", Key: id.String()}
	}
	return cloneRecord(record), nil
}

func (m *memoryRepository) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := m.byOwner[ownerID]
	out := make([]*Record, 0, len(ids))
	for _, id := range ids {
		out = append(out, cloneRecord(m.byID[id]))
	}
	slices.SortStableFunc(out, func(a, b *Record) int {
		return a.Position - b.Position
	})
	return out, nil
}

func (m *memoryRepository) DeleteByOwner(_ context.Context, ownerID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := m.byOwner[ownerID]
	for _, id := range ids {
		delete(m.byID, id)
	}
	delete(m.byOwner, ownerID)
	return len(ids), nil
}

func (m *memoryRepository) ReplaceByOwner(_ context.Context, ownerID uuid.UUID, records []*Record) ([]*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[uuid.UUID]struct{}, len(records))
	batch := make([]*Record, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		if _, dup := seen[record.ID]; dup {
			return nil, fmt.Errorf("content_block repository error: duplicate id %s", record.ID)
		}
		if existing, ok := m.byID[record.ID]; ok && existing.OwnerID != ownerID {
			return nil, fmt.Errorf("content_block repository error: id %s belongs to another owner", record.ID)
		}
		seen[record.ID] = struct{}{}
		batch = append(batch, cloneRecord(record))
	}

	for _, id := range m.byOwner[ownerID] {
		delete(m.byID, id)
	}
	ids := make([]uuid.UUID, 0, len(batch))
	out := make([]*Record, 0, len(batch))
	for _, record := range batch {
		record.OwnerID = ownerID
		m.byID[record.ID] = record
		ids = append(ids, record.ID)
		out = append(out, cloneRecord(record))
	}
	if len(ids) == 0 {
		delete(m.byOwner, ownerID)
	} else {
		m.byOwner[ownerID] = ids
	}
	return out, nil
}

func cloneRecord(record *Record) *Record {
	if record == nil {
		return nil
	}
	cloned := *record
	cloned.Items = slices.Clone(record.Items)
	return &cloned
}
