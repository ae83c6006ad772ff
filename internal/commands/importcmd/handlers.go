package importcmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-onboarding/internal/commands"
	"github.com/goliatone/go-onboarding/internal/importer"
	"github.com/goliatone/go-onboarding/internal/logging"
	"github.com/goliatone/go-onboarding/pkg/interfaces"
)

const (
	importOperation = "import.records"
	parseOperation  = "blocks.parse_markup"
)

var ErrServiceRequired = errors.New("import command: service is nil")

// ImportRecordsHandler runs imports through the shared command handler.
type ImportRecordsHandler struct {
	inner *commands.Handler[ImportRecordsCommand]
}

func NewImportRecordsHandler(service importer.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ImportRecordsCommand]) *ImportRecordsHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ImportRecordsCommand) error {
		if service == nil {
			return ErrServiceRequired
		}
		result, err := service.Import(ctx, *msg.Payload, importer.Options{
			DryRun:  msg.DryRun,
			Replace: msg.Replace,
		})
		if err != nil {
			return err
		}

		created, updated := 0, 0
		for _, n := range result.Created {
			created += n
		}
		for _, n := range result.Updated {
			updated += n
		}
		logging.WithFields(baseLogger, map[string]any{
			"created_count":   created,
			"updated_count":   updated,
			"colleague_count": result.Colleagues,
			"block_count":     result.Blocks,
			"skipped_count":   len(result.Skipped),
			"dry_run":         msg.DryRun,
		}).Info("import.command.records.completed")

		if msg.OnResult != nil {
			msg.OnResult(result)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ImportRecordsCommand]{
		commands.WithLogger[ImportRecordsCommand](baseLogger),
		commands.WithOperation[ImportRecordsCommand](importOperation),
		commands.WithMessageFields(func(msg ImportRecordsCommand) map[string]any {
			fields := map[string]any{}
			if msg.Payload != nil {
				fields["records"] = msg.Payload.Count()
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			if msg.Replace {
				fields["replace"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ImportRecordsCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportRecordsHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ImportRecordsCommand].
func (h *ImportRecordsHandler) Execute(ctx context.Context, msg ImportRecordsCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ParseMarkupHandler parses markup without touching storage.
type ParseMarkupHandler struct {
	inner *commands.Handler[ParseMarkupCommand]
}

func NewParseMarkupHandler(parser interfaces.MarkupParser, logger interfaces.Logger, opts ...commands.HandlerOption[ParseMarkupCommand]) *ParseMarkupHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ParseMarkupCommand) error {
		if parser == nil {
			return ErrServiceRequired
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		msg.OnBlocks(parser.Parse(msg.Markup))
		return nil
	}

	handlerOpts := []commands.HandlerOption[ParseMarkupCommand]{
		commands.WithLogger[ParseMarkupCommand](baseLogger),
		commands.WithOperation[ParseMarkupCommand](parseOperation),
		commands.WithMessageFields(func(msg ParseMarkupCommand) map[string]any {
			return map[string]any{"markup_length": len(msg.Markup)}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ParseMarkupHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ParseMarkupCommand].
func (h *ParseMarkupHandler) Execute(ctx context.Context, msg ParseMarkupCommand) error {
	return h.inner.Execute(ctx, msg)
}
