package importcmd

import (
	"errors"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"

	"github.com/goliatone/go-onboarding/internal/commands"
	"github.com/goliatone/go-onboarding/internal/importer"
	"github.com/goliatone/go-onboarding/pkg/interfaces"
)

// HandlerSet groups the handlers produced by Register.
type HandlerSet struct {
	Import *ImportRecordsHandler
	Parse  *ParseMarkupHandler

	importRetries int
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	importHandlerOpts []commands.HandlerOption[ImportRecordsCommand]
	parseHandlerOpts  []commands.HandlerOption[ParseMarkupCommand]
	importRetries     int
}

// WithImportRetries sets how often the dispatcher re-runs a failed import.
func WithImportRetries(n int) Option {
	return func(cfg *options) {
		if n > 0 {
			cfg.importRetries = n
		}
	}
}

// WithImportHandlerOptions forwards options to the ImportRecordsHandler constructor.
func WithImportHandlerOptions(opts ...commands.HandlerOption[ImportRecordsCommand]) Option {
	return func(cfg *options) {
		cfg.importHandlerOpts = append(cfg.importHandlerOpts, opts...)
	}
}

// WithParseHandlerOptions forwards options to the ParseMarkupHandler constructor.
func WithParseHandlerOptions(opts ...commands.HandlerOption[ParseMarkupCommand]) Option {
	return func(cfg *options) {
		cfg.parseHandlerOpts = append(cfg.parseHandlerOpts, opts...)
	}
}

// NewHandlerSet builds both handlers with loggers from provider.
func NewHandlerSet(service importer.Service, parser interfaces.MarkupParser, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if service == nil || parser == nil {
		return nil, ErrServiceRequired
	}
	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &HandlerSet{
		Import: NewImportRecordsHandler(service, commands.CommandLogger(provider, "import"), cfg.importHandlerOpts...),
		Parse:  NewParseMarkupHandler(parser, commands.CommandLogger(provider, "blocks"), cfg.parseHandlerOpts...),

		importRetries: cfg.importRetries,
	}, nil
}

// Subscribe registers the handlers with the go-command dispatcher. The
// returned function removes both subscriptions.
func (s *HandlerSet) Subscribe() (func(), error) {
	if s == nil || s.Import == nil || s.Parse == nil {
		return nil, errors.New("import command: handler set incomplete")
	}
	importSub := dispatcher.SubscribeCommand(s.Import, runner.WithMaxRetries(s.importRetries))
	parseSub := dispatcher.SubscribeCommand(s.Parse)
	return func() {
		importSub.Unsubscribe()
		parseSub.Unsubscribe()
	}, nil
}
