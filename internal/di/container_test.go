package di_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-onboarding/internal/blocks"
	"github.com/goliatone/go-onboarding/internal/di"
	"github.com/goliatone/go-onboarding/internal/importer"
	"github.com/goliatone/go-onboarding/internal/logging"
	"github.com/goliatone/go-onboarding/internal/runtimeconfig"
	"github.com/goliatone/go-onboarding/pkg/interfaces"
	"github.com/google/uuid"
)

type staticProvider struct{}

func (staticProvider) GetLogger(string) interfaces.Logger { return logging.NoOp() }

func memoryConfig() runtimeconfig.Config {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Driver = runtimeconfig.DriverMemory
	cfg.Storage.DSN = ""
	return cfg
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := memoryConfig()
	cfg.Storage.Driver = "oracle"

	if _, err := di.NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrStorageDriverUnknown) {
		t.Fatalf("expected ErrStorageDriverUnknown, got %v", err)
	}
}

func TestMemoryContainerWiresServices(t *testing.T) {
	ctx := context.Background()
	container, err := di.NewContainer(memoryConfig(), di.WithLoggerProvider(staticProvider{}))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if container.DB() != nil {
		t.Fatalf("expected no database for memory driver")
	}
	if _, ok := container.LoggerProvider().(staticProvider); !ok {
		t.Fatalf("expected injected logger provider, got %T", container.LoggerProvider())
	}

	owner := uuid.New()
	if _, err := container.BlockService().AttachMarkup(ctx, blocks.AttachMarkupInput{
		OwnerID:   owner,
		OwnerKind: "badge",
		Markup:    "<h1>Hi</h1>",
	}); err != nil {
		t.Fatalf("AttachMarkup: %v", err)
	}

	payload := importer.Payload{Records: importer.Records{
		Badge: []importer.Fields{{"name": "Helper", "content": "<p>a</p><p>b</p>"}},
	}}
	result, err := container.ImportService().Import(ctx, payload, importer.Options{})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if result.Blocks != 2 {
		t.Fatalf("expected 2 blocks, got %d", result.Blocks)
	}
}

func TestOpenSQLiteContainer(t *testing.T) {
	ctx := context.Background()
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.DSN = "file:di_open?mode=memory&cache=shared&_fk=1"
	cfg.Logging.Level = "error"

	container, closeDB, err := di.Open(ctx, cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = closeDB() })
	if container.DB() == nil {
		t.Fatalf("expected bun database")
	}

	payload := importer.Payload{Records: importer.Records{
		ToDo: []importer.Fields{{"name": "Laptop", "content": "<ul><li>a</li></ul>"}},
	}}
	if _, err := container.ImportService().Import(ctx, payload, importer.Options{}); err != nil {
		t.Fatalf("Import: %v", err)
	}
	listed, err := container.ImportService().ListResources(ctx, "to_do")
	if err != nil || len(listed) != 1 {
		t.Fatalf("expected one stored to-do, got %d (%v)", len(listed), err)
	}
}
