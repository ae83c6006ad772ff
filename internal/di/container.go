package di

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-onboarding/internal/blocks"
	"github.com/goliatone/go-onboarding/internal/importer"
	"github.com/goliatone/go-onboarding/internal/logging"
	"github.com/goliatone/go-onboarding/internal/logging/gologger"
	"github.com/goliatone/go-onboarding/internal/markup"
	"github.com/goliatone/go-onboarding/internal/runtimeconfig"
	"github.com/goliatone/go-onboarding/internal/storage"
	"github.com/goliatone/go-onboarding/pkg/interfaces"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

// Container wires the parser, repositories and services for one runtime
// configuration. Without a database every repository is in memory.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	parser         interfaces.MarkupParser
	now            func() time.Time

	bunDB         *bun.DB
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	blockRepo     blocks.Repository
	resourceRepo  importer.ResourceRepository
	colleagueRepo importer.ColleagueRepository

	blockSvc  blocks.Service
	importSvc importer.Service
}

// Option mutates the container before it is finalised.
type Option func(*Container)

func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the repository cache.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the go-logger provider built from config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

func WithParser(parser interfaces.MarkupParser) Option {
	return func(c *Container) {
		c.parser = parser
	}
}

func WithClock(clock func() time.Time) Option {
	return func(c *Container) {
		c.now = clock
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config: cfg,
		parser: markup.NewParser(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLogger(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()

	c.blockSvc = blocks.NewService(c.blockRepo,
		blocks.WithParser(c.parser),
		blocks.WithClock(c.now),
		blocks.WithLogger(logging.BlocksLogger(c.loggerProvider)),
	)
	c.importSvc = importer.NewService(c.resourceRepo, c.colleagueRepo, c.blockSvc,
		importer.WithClock(c.now),
		importer.WithLogger(logging.ImporterLogger(c.loggerProvider)),
	)
	return c, nil
}

// Open connects the configured storage, migrates it when requested and
// builds the container. The returned close function releases the database.
func Open(ctx context.Context, cfg runtimeconfig.Config, opts ...Option) (*Container, func() error, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	closer := func() error { return nil }

	if cfg.StorageDriver() != runtimeconfig.DriverMemory {
		db, err := storage.Open(ctx, storage.Config{Driver: cfg.Storage.Driver, DSN: cfg.Storage.DSN})
		if err != nil {
			return nil, nil, err
		}
		if cfg.Storage.AutoMigrate {
			if err := storage.EnsureSchema(ctx, db); err != nil {
				_ = db.Close()
				return nil, nil, err
			}
		}
		closer = db.Close
		opts = append([]Option{WithBunDB(db)}, opts...)
	}

	container, err := NewContainer(cfg, opts...)
	if err != nil {
		_ = closer()
		return nil, nil, err
	}
	return container, closer, nil
}

func (c *Container) configureLogger() error {
	if c.loggerProvider != nil {
		return nil
	}
	provider, err := gologger.NewProvider(gologger.Config{
		Level:     c.Config.Logging.Level,
		Format:    c.Config.Logging.Format,
		AddSource: c.Config.Logging.AddSource,
		Focus:     c.Config.Logging.Focus,
	})
	if err != nil {
		return fmt.Errorf("di: configure logger: %w", err)
	}
	c.loggerProvider = provider
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.Config.Cache.DefaultTTL > 0 {
			cfg.TTL = c.Config.Cache.DefaultTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB != nil {
		c.blockRepo = blocks.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.resourceRepo = importer.NewBunResourceRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.colleagueRepo = importer.NewBunColleagueRepository(c.bunDB)
		return
	}
	c.blockRepo = blocks.NewMemoryRepository()
	c.resourceRepo = importer.NewMemoryResourceRepository()
	c.colleagueRepo = importer.NewMemoryColleagueRepository()
}

func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

func (c *Container) Parser() interfaces.MarkupParser {
	return c.parser
}

func (c *Container) BlockService() blocks.Service {
	return c.blockSvc
}

func (c *Container) ImportService() importer.Service {
	return c.importSvc
}

// DB returns the bun handle, nil for in-memory containers.
func (c *Container) DB() *bun.DB {
	return c.bunDB
}
