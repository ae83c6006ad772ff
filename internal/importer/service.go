package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-onboarding/internal/blocks"
	"github.com/goliatone/go-onboarding/internal/identity"
	"github.com/goliatone/go-onboarding/internal/logging"
	"github.com/goliatone/go-onboarding/pkg/interfaces"
	"github.com/goliatone/go-onboarding/records"
	"github.com/goliatone/go-slug"
	"github.com/google/uuid"
)

// Service rebuilds onboarding records from an export payload. Rich-text
// fields are parsed into content blocks owned by the imported record.
type Service interface {
	Import(ctx context.Context, payload Payload, opts Options) (*Result, error)
	GetResource(ctx context.Context, id uuid.UUID) (*Resource, error)
	ListResources(ctx context.Context, kind Kind) ([]*Resource, error)
	ListColleagues(ctx context.Context) ([]*Colleague, error)
}

// Options tunes an import run.
type Options struct {
	// DryRun parses and counts without writing.
	DryRun bool
	// Replace overwrites records imported by a previous run instead of
	// skipping them.
	Replace bool
}

// Result summarizes an import run.
type Result struct {
	DryRun     bool         `json:"dry_run"`
	Created    map[Kind]int `json:"created"`
	Updated    map[Kind]int `json:"updated"`
	Colleagues int          `json:"colleagues"`
	Blocks     int          `json:"blocks"`
	Skipped    []string     `json:"skipped,omitempty"`
}

var ErrColleagueExists = errors.New("importer: colleague already exists")

type ServiceOption func(*service)

func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
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
	resources  ResourceRepository
	colleagues ColleagueRepository
	blocks     blocks.Service
	logger     interfaces.Logger
	now        func() time.Time
}

func NewService(resources ResourceRepository, colleagues ColleagueRepository, blockSvc blocks.Service, opts ...ServiceOption) Service {
	s := &service{
		resources:  resources,
		colleagues: colleagues,
		blocks:     blockSvc,
		logger:     logging.NoOp(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type action int

const (
	actionCreate action = iota
	actionUpdate
	actionSkip
)

type resourceInput struct {
	kind     Kind
	parent   uuid.UUID
	position int
	name     string
	// natural overrides name as the source of the record's identity.
	natural    string
	attributes map[string]any
	markup     *string
}

// importRun carries the state of one Import call.
type importRun struct {
	opts     Options
	result   *Result
	siblings map[string]int
	emails   map[string]struct{}
}

// handle returns the natural key of a record among its siblings. Repeated
// slugs under the same parent within one payload get an occurrence suffix.
func (r *importRun) handle(kind Kind, parent uuid.UUID, slugValue string) string {
	key := string(kind) + "|" + parent.String() + "|" + slugValue
	n := r.siblings[key]
	r.siblings[key] = n + 1
	if n == 0 {
		return slugValue
	}
	return fmt.Sprintf("%s~%d", slugValue, n+1)
}

func (s *service) Import(ctx context.Context, payload Payload, opts Options) (*Result, error) {
	result := &Result{
		DryRun:  opts.DryRun,
		Created: map[Kind]int{},
		Updated: map[Kind]int{},
	}
	run := &importRun{
		opts:     opts,
		result:   result,
		siblings: map[string]int{},
		emails:   map[string]struct{}{},
	}
	logger := logging.FromContext(ctx, s.logger)

	groups := []struct {
		kind  Kind
		items []Fields
	}{
		{records.KindToDo, payload.Records.ToDo},
		{records.KindPreboarding, payload.Records.Preboarding},
		{records.KindBadge, payload.Records.Badge},
	}
	for _, group := range groups {
		for i, fields := range group.items {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			in := resourceInput{
				kind:       group.kind,
				position:   i,
				name:       fields.String("name"),
				attributes: fields.without("content"),
				markup:     optionalString(fields["content"]),
			}
			if group.kind == records.KindToDo {
				normalizeForm(in.attributes)
			}
			if _, err := s.importResource(ctx, run, in); err != nil {
				return result, err
			}
		}
	}

	for i, sequence := range payload.Records.Sequences {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := s.importSequence(ctx, run, i, sequence); err != nil {
			return result, err
		}
	}

	for _, fields := range payload.Records.Colleagues {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := s.importColleague(ctx, run, fields); err != nil {
			return result, err
		}
	}

	logger.Info("importer.import.completed",
		"dry_run", opts.DryRun,
		"created", sum(result.Created),
		"updated", sum(result.Updated),
		"colleagues", result.Colleagues,
		"blocks", result.Blocks,
		"skipped", len(result.Skipped),
	)
	return result, nil
}

func (s *service) importSequence(ctx context.Context, run *importRun, position int, sequence Sequence) error {
	seq, err := s.importResource(ctx, run, resourceInput{
		kind:       records.KindSequence,
		position:   position,
		name:       sequence.Name,
		attributes: map[string]any{},
	})
	if err != nil {
		return err
	}

	for j, condition := range sequence.Conditions {
		cond, err := s.importResource(ctx, run, resourceInput{
			kind:     records.KindCondition,
			parent:   seq.ID,
			position: j,
			name:     fmt.Sprint(condition.ConditionType),
			natural:  fmt.Sprintf("type %v day %v", condition.ConditionType, condition.Days),
			attributes: map[string]any{
				"condition_type": condition.ConditionType,
				"days":           condition.Days,
			},
		})
		if err != nil {
			return err
		}

		for k, message := range condition.ExternalMessages {
			if _, err := s.importResource(ctx, run, resourceInput{
				kind:       records.KindExternalMessage,
				parent:     cond.ID,
				position:   k,
				name:       message.String("name"),
				attributes: message.without("content_json"),
				markup:     optionalString(message["content_json"]),
			}); err != nil {
				return err
			}
		}

		for k, task := range condition.PendingTasks {
			if _, err := s.importResource(ctx, run, resourceInput{
				kind:       records.KindPendingTask,
				parent:     cond.ID,
				position:   k,
				name:       task.String("name"),
				attributes: task.without(),
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *service) importResource(ctx context.Context, run *importRun, in resourceInput) (*Resource, error) {
	opts, result := run.opts, run.result
	slugValue := slugFor(in.name, string(in.kind))
	natural := slugValue
	if in.natural != "" {
		natural = slugFor(in.natural, string(in.kind))
	}
	handle := run.handle(in.kind, in.parent, natural)
	id := identity.ResourceUUID(string(in.kind), in.parent, handle)
	key := string(in.kind) + "/" + handle
	logger := logging.WithOwnerContext(logging.FromContext(ctx, s.logger), string(in.kind), id.String(), key)

	now := s.now()
	resource := &Resource{
		ID:         id,
		Kind:       in.kind,
		Name:       strings.TrimSpace(in.name),
		Slug:       slugValue,
		Position:   in.position,
		Attributes: in.attributes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if in.parent != uuid.Nil {
		parent := in.parent
		resource.ParentID = &parent
	}

	act, existing, err := s.plan(ctx, id, opts)
	if err != nil {
		return nil, err
	}
	if act == actionSkip {
		result.Skipped = append(result.Skipped, key)
		logger.Debug("importer.resource.skipped")
		return existing, nil
	}
	if existing != nil {
		resource.CreatedAt = existing.CreatedAt
	}

	if !opts.DryRun {
		if act == actionUpdate {
			_, err = s.resources.Update(ctx, resource)
		} else {
			_, err = s.resources.Create(ctx, resource)
		}
		if err != nil {
			logger.Error("importer.resource.failed", "error", err)
			return nil, err
		}
	}
	if act == actionUpdate {
		result.Updated[in.kind]++
	} else {
		result.Created[in.kind]++
	}

	if in.markup == nil {
		return resource, nil
	}
	if opts.DryRun {
		result.Blocks += len(s.blocks.Preview(*in.markup))
		return resource, nil
	}
	created, err := s.blocks.AttachMarkup(ctx, blocks.AttachMarkupInput{
		OwnerID:   id,
		OwnerKind: string(in.kind),
		Markup:    *in.markup,
		Replace:   true,
	})
	if err != nil {
		return nil, err
	}
	result.Blocks += len(created)
	return resource, nil
}

// plan decides whether the record with id is created, updated or skipped.
func (s *service) plan(ctx context.Context, id uuid.UUID, opts Options) (action, *Resource, error) {
	existing, err := s.resources.GetByID(ctx, id)
	var notFound *NotFoundError
	switch {
	case errors.As(err, &notFound):
		return actionCreate, nil, nil
	case err != nil:
		return actionSkip, nil, err
	case opts.Replace:
		return actionUpdate, existing, nil
	default:
		return actionSkip, existing, nil
	}
}

func (s *service) importColleague(ctx context.Context, run *importRun, fields Fields) error {
	opts, result := run.opts, run.result
	email := strings.TrimSpace(fields.String("email"))
	normalized := strings.ToLower(email)
	key := "colleague/" + normalized

	if _, seen := run.emails[normalized]; seen {
		result.Skipped = append(result.Skipped, key)
		return nil
	}
	run.emails[normalized] = struct{}{}

	if _, err := s.colleagues.GetByEmail(ctx, email); err == nil {
		result.Skipped = append(result.Skipped, key)
		return nil
	} else {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}

	now := s.now()
	colleague := &Colleague{
		ID:         identity.ColleagueUUID(email),
		Email:      email,
		FirstName:  fields.String("first_name"),
		LastName:   fields.String("last_name"),
		Attributes: fields.without("email", "first_name", "last_name"),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if !opts.DryRun {
		if _, err := s.colleagues.Create(ctx, colleague); err != nil {
			if errors.Is(err, ErrColleagueExists) {
				result.Skipped = append(result.Skipped, key)
				return nil
			}
			return err
		}
	}
	result.Colleagues++
	return nil
}

func (s *service) GetResource(ctx context.Context, id uuid.UUID) (*Resource, error) {
	return s.resources.GetByID(ctx, id)
}

func (s *service) ListResources(ctx context.Context, kind Kind) ([]*Resource, error) {
	return s.resources.List(ctx, kind)
}

func (s *service) ListColleagues(ctx context.Context) ([]*Colleague, error) {
	return s.colleagues.List(ctx)
}

// normalizeForm mirrors the export format where to-dos without a form carry
// null instead of an empty list.
func normalizeForm(attributes map[string]any) {
	if value, ok := attributes["form"]; !ok || value == nil {
		attributes["form"] = []any{}
	}
}

func optionalString(value any) *string {
	text, ok := value.(string)
	if !ok {
		return nil
	}
	return &text
}

func slugFor(name, fallback string) string {
	if normalized, err := slug.Normalize(name); err == nil && normalized != "" {
		return normalized
	}
	return strings.ReplaceAll(fallback, "/", "-")
}

func sum(counts map[Kind]int) int {
	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}
