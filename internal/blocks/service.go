package blocks

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/goliatone/go-onboarding/internal/identity"
	"github.com/goliatone/go-onboarding/internal/logging"
	"github.com/goliatone/go-onboarding/internal/markup"
	"github.com/goliatone/go-onboarding/pkg/interfaces"
	"github.com/google/uuid"
)

// Service turns editor markup into persisted, ordered content blocks.
type Service interface {
	AttachMarkup(ctx context.Context, input AttachMarkupInput) ([]*Record, error)
	ListContent(ctx context.Context, ownerID uuid.UUID) ([]*Record, error)
	Preview(markup string) []ContentBlock
}

// AttachMarkupInput identifies the owner of the parsed blocks.
type AttachMarkupInput struct {
	OwnerID   uuid.UUID
	OwnerKind string
	Markup    string
	// Replace removes the owner's existing blocks before storing new ones.
	Replace bool
}

var (
	ErrOwnerRequired     = errors.New("blocks: owner id required")
	ErrOwnerKindRequired = errors.New("blocks: owner kind required")
)

type ServiceOption func(*service)

func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithParser overrides the markup parser. Defaults to markup.Parser.
func WithParser(parser interfaces.MarkupParser) ServiceOption {
	return func(s *service) {
		if parser != nil {
			s.parser = parser
		}
	}
}

func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	records Repository
	parser  interfaces.MarkupParser
	logger  interfaces.Logger
	now     func() time.Time
}

func NewService(repo Repository, opts ...ServiceOption) Service {
	s := &service{
		records: repo,
		parser:  markup.NewParser(),
		logger:  logging.NoOp(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) AttachMarkup(ctx context.Context, input AttachMarkupInput) ([]*Record, error) {
	if input.OwnerID == uuid.Nil {
		return nil, ErrOwnerRequired
	}
	kind := strings.TrimSpace(input.OwnerKind)
	if kind == "" {
		return nil, ErrOwnerKindRequired
	}

	logger := logging.WithOwnerContext(logging.FromContext(ctx, s.logger), kind, input.OwnerID.String(), "")

	offset := 0
	if !input.Replace {
		existing, err := s.records.ListByOwner(ctx, input.OwnerID)
		if err != nil {
			return nil, err
		}
		offset = nextPosition(existing)
	}

	parsed := s.parser.Parse(input.Markup)
	now := s.now()
	records := make([]*Record, 0, len(parsed))
	for i, block := range parsed {
		records = append(records, newRecord(input.OwnerID, kind, offset+i, block, now))
	}

	var (
		created []*Record
		err     error
	)
	if input.Replace {
		created, err = s.records.ReplaceByOwner(ctx, input.OwnerID, records)
	} else {
		created, err = s.records.CreateMany(ctx, records)
	}
	if err != nil {
		logger.Error("blocks.attach.failed", "replace", input.Replace, "error", err)
		return nil, err
	}
	logger.Debug("blocks.attach.completed", "count", len(created))
	return created, nil
}

func (s *service) ListContent(ctx context.Context, ownerID uuid.UUID) ([]*Record, error) {
	if ownerID == uuid.Nil {
		return nil, ErrOwnerRequired
	}
	return s.records.ListByOwner(ctx, ownerID)
}

func (s *service) Preview(markup string) []ContentBlock {
	return s.parser.Parse(markup)
}

// nextPosition returns the position after the last stored block so appended
// blocks keep following the existing ones.
func nextPosition(existing []*Record) int {
	next := 0
	for _, record := range existing {
		if record.Position >= next {
			next = record.Position + 1
		}
	}
	return next
}

// newRecord keeps the block's emission order as its position. List blocks
// store an empty content and other blocks an empty item list.
func newRecord(owner uuid.UUID, kind string, position int, block ContentBlock, now time.Time) *Record {
	items := block.Items
	if items == nil {
		items = []string{}
	}
	return &Record{
		ID:        identity.BlockUUID(owner, position),
		OwnerID:   owner,
		OwnerKind: kind,
		Position:  position,
		Type:      block.Type,
		Content:   block.Content,
		Items:     items,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
