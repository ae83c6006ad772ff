package blocks_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	contentblocks "github.com/goliatone/go-onboarding/blocks"
	"github.com/goliatone/go-onboarding/internal/blocks"
	"github.com/goliatone/go-onboarding/internal/identity"
	"github.com/google/uuid"
)

var fixedNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newMemoryService() (blocks.Service, blocks.Repository) {
	repo := blocks.NewMemoryRepository()
	svc := blocks.NewService(repo, blocks.WithClock(func() time.Time { return fixedNow }))
	return svc, repo
}

func TestAttachMarkupStoresBlocksInOrder(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemoryService()
	owner := uuid.MustParse("00000000-0000-0000-0000-0000000000a1")

	created, err := svc.AttachMarkup(ctx, blocks.AttachMarkupInput{
		OwnerID:   owner,
		OwnerKind: "to_do",
		Markup:    "<h1>Welcome</h1><p>intro</p><ul><li>laptop</li><li>badge</li></ul>",
	})
	if err != nil {
		t.Fatalf("AttachMarkup: %v", err)
	}
	if len(created) != 3 {
		t.Fatalf("expected 3 records, got %d", len(created))
	}

	listed, err := svc.ListContent(ctx, owner)
	if err != nil {
		t.Fatalf("ListContent: %v", err)
	}
	wantTypes := []contentblocks.BlockType{contentblocks.TypeHeading1, contentblocks.TypeParagraph, contentblocks.TypeUnorderedList}
	for i, record := range listed {
		if record.Position != i {
			t.Fatalf("record %d: expected position %d, got %d", i, i, record.Position)
		}
		if record.Type != wantTypes[i] {
			t.Fatalf("record %d: expected %s, got %s", i, wantTypes[i], record.Type)
		}
		if record.ID != identity.BlockUUID(owner, i) {
			t.Fatalf("record %d: expected deterministic id", i)
		}
		if record.OwnerKind != "to_do" || !record.CreatedAt.Equal(fixedNow) {
			t.Fatalf("record %d: unexpected metadata %#v", i, record)
		}
	}
	if !reflect.DeepEqual(listed[2].Items, []string{"laptop", "badge"}) {
		t.Fatalf("unexpected items %#v", listed[2].Items)
	}
	if listed[1].Items == nil || len(listed[1].Items) != 0 {
		t.Fatalf("expected empty, non-nil items for paragraph, got %#v", listed[1].Items)
	}
}

func TestAttachMarkupAppendsAfterExistingBlocks(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemoryService()
	owner := uuid.New()

	input := blocks.AttachMarkupInput{OwnerID: owner, OwnerKind: "badge", Markup: "<p>one</p>"}
	if _, err := svc.AttachMarkup(ctx, input); err != nil {
		t.Fatalf("first AttachMarkup: %v", err)
	}
	input.Markup = "<p>two</p><p>three</p>"
	if _, err := svc.AttachMarkup(ctx, input); err != nil {
		t.Fatalf("second AttachMarkup: %v", err)
	}

	listed, err := svc.ListContent(ctx, owner)
	if err != nil {
		t.Fatalf("ListContent: %v", err)
	}
	var got []string
	for _, record := range listed {
		got = append(got, record.Content)
	}
	if !reflect.DeepEqual(got, []string{"one", "two", "three"}) {
		t.Fatalf("unexpected order %#v", got)
	}
}

func TestAttachMarkupReplaceDropsPreviousBlocks(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemoryService()
	owner := uuid.New()

	if _, err := svc.AttachMarkup(ctx, blocks.AttachMarkupInput{OwnerID: owner, OwnerKind: "badge", Markup: "<p>a</p><p>b</p>"}); err != nil {
		t.Fatalf("AttachMarkup: %v", err)
	}
	if _, err := svc.AttachMarkup(ctx, blocks.AttachMarkupInput{OwnerID: owner, OwnerKind: "badge", Markup: "<h2>c</h2>", Replace: true}); err != nil {
		t.Fatalf("AttachMarkup replace: %v", err)
	}

	listed, err := svc.ListContent(ctx, owner)
	if err != nil {
		t.Fatalf("ListContent: %v", err)
	}
	if len(listed) != 1 || listed[0].Type != contentblocks.TypeHeading2 || listed[0].Position != 0 {
		t.Fatalf("unexpected records after replace: %#v", listed)
	}
}

func TestAttachMarkupValidatesOwner(t *testing.T) {
	svc, _ := newMemoryService()
	ctx := context.Background()

	if _, err := svc.AttachMarkup(ctx, blocks.AttachMarkupInput{OwnerKind: "to_do"}); !errors.Is(err, blocks.ErrOwnerRequired) {
		t.Fatalf("expected ErrOwnerRequired, got %v", err)
	}
	if _, err := svc.AttachMarkup(ctx, blocks.AttachMarkupInput{OwnerID: uuid.New(), OwnerKind: "  "}); !errors.Is(err, blocks.ErrOwnerKindRequired) {
		t.Fatalf("expected ErrOwnerKindRequired, got %v", err)
	}
	if _, err := svc.ListContent(ctx, uuid.Nil); !errors.Is(err, blocks.ErrOwnerRequired) {
		t.Fatalf("expected ErrOwnerRequired from ListContent, got %v", err)
	}
}

func TestAttachMarkupEmptyMarkupStoresNothing(t *testing.T) {
	svc, _ := newMemoryService()
	created, err := svc.AttachMarkup(context.Background(), blocks.AttachMarkupInput{OwnerID: uuid.New(), OwnerKind: "to_do"})
	if err != nil {
		t.Fatalf("AttachMarkup: %v", err)
	}
	if len(created) != 0 {
		t.Fatalf("expected no records, got %d", len(created))
	}
}

type stubParser struct {
	calls []string
}

func (s *stubParser) Parse(markup string) []contentblocks.ContentBlock {
	s.calls = append(s.calls, markup)
	return []contentblocks.ContentBlock{{Type: contentblocks.TypeHeading4, Items: []string{}, Content: "stub"}}
}

func TestServiceUsesInjectedParser(t *testing.T) {
	parser := &stubParser{}
	svc := blocks.NewService(blocks.NewMemoryRepository(), blocks.WithParser(parser))

	preview := svc.Preview("anything")
	if len(preview) != 1 || preview[0].Content != "stub" {
		t.Fatalf("unexpected preview %#v", preview)
	}
	if len(parser.calls) != 1 || parser.calls[0] != "anything" {
		t.Fatalf("expected parser to be called with markup, got %#v", parser.calls)
	}
}

func TestMemoryRepositoryGetByID(t *testing.T) {
	ctx := context.Background()
	repo := blocks.NewMemoryRepository()
	record := &contentblocks.Record{ID: uuid.New(), OwnerID: uuid.New(), OwnerKind: "badge", Items: []string{"a"}}
	if _, err := repo.CreateMany(ctx, []*contentblocks.Record{record}); err != nil {
		t.Fatalf("CreateMany: %v", err)
	}

	got, err := repo.GetByID(ctx, record.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	got.Items[0] = "mutated"
	again, _ := repo.GetByID(ctx, record.ID)
	if again.Items[0] != "a" {
		t.Fatalf("expected stored record to be isolated from callers")
	}

	var notFound *blocks.NotFoundError
	if _, err := repo.GetByID(ctx, uuid.New()); !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

type failingReplaceRepository struct {
	blocks.Repository
	deleted bool
}

func (r *failingReplaceRepository) ReplaceByOwner(context.Context, uuid.UUID, []*contentblocks.Record) ([]*contentblocks.Record, error) {
	return nil, errors.New("insert failed")
}

func (r *failingReplaceRepository) DeleteByOwner(ctx context.Context, owner uuid.UUID) (int, error) {
	r.deleted = true
	return r.Repository.DeleteByOwner(ctx, owner)
}

func TestAttachMarkupReplaceFailureKeepsPreviousBlocks(t *testing.T) {
	ctx := context.Background()
	repo := &failingReplaceRepository{Repository: blocks.NewMemoryRepository()}
	svc := blocks.NewService(repo)
	owner := uuid.New()

	if _, err := svc.AttachMarkup(ctx, blocks.AttachMarkupInput{OwnerID: owner, OwnerKind: "badge", Markup: "<p>a</p><p>b</p>"}); err != nil {
		t.Fatalf("AttachMarkup: %v", err)
	}
	created, err := svc.AttachMarkup(ctx, blocks.AttachMarkupInput{OwnerID: owner, OwnerKind: "badge", Markup: "<h2>c</h2>", Replace: true})
	if err == nil {
		t.Fatal("expected replace error")
	}
	if created != nil {
		t.Fatalf("expected no records on failure, got %#v", created)
	}
	if repo.deleted {
		t.Fatal("replace must not delete outside ReplaceByOwner")
	}

	listed, err := svc.ListContent(ctx, owner)
	if err != nil {
		t.Fatalf("ListContent: %v", err)
	}
	if len(listed) != 2 || listed[0].Content != "a" || listed[1].Content != "b" {
		t.Fatalf("previous blocks lost: %#v", listed)
	}
}

func TestMemoryReplaceByOwnerRejectsDuplicateIDs(t *testing.T) {
	ctx := context.Background()
	repo := blocks.NewMemoryRepository()
	owner := uuid.New()
	original := &contentblocks.Record{ID: uuid.New(), OwnerID: owner, OwnerKind: "badge", Type: contentblocks.TypeParagraph, Content: "keep", Items: []string{}}
	if _, err := repo.CreateMany(ctx, []*contentblocks.Record{original}); err != nil {
		t.Fatalf("CreateMany: %v", err)
	}

	dup := uuid.New()
	_, err := repo.ReplaceByOwner(ctx, owner, []*contentblocks.Record{
		{ID: dup, OwnerID: owner, OwnerKind: "badge", Type: contentblocks.TypeParagraph, Content: "x", Items: []string{}},
		{ID: dup, OwnerID: owner, OwnerKind: "badge", Position: 1, Type: contentblocks.TypeParagraph, Content: "y", Items: []string{}},
	})
	if err == nil {
		t.Fatal("expected duplicate id error")
	}

	listed, err := repo.ListByOwner(ctx, owner)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(listed) != 1 || listed[0].Content != "keep" {
		t.Fatalf("unexpected records after failed replace: %#v", listed)
	}
}
