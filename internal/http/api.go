package http

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-onboarding/internal/blocks"
	"github.com/goliatone/go-onboarding/internal/commands/importcmd"
	"github.com/goliatone/go-onboarding/internal/importer"
	"github.com/goliatone/go-onboarding/internal/logging"
	"github.com/goliatone/go-onboarding/pkg/interfaces"
)

const defaultMaxPayloadBytes = 10 << 20

// API registers the onboarding endpoints on a gin router.
type API struct {
	basePath        string
	handlers        *importcmd.HandlerSet
	importer        importer.Service
	blocks          blocks.Service
	logger          interfaces.Logger
	maxPayloadBytes int64
}

// Option mutates the API configuration.
type Option func(*API)

// NewAPI constructs an API instance.
func NewAPI(opts ...Option) *API {
	api := &API{
		basePath:        "/api",
		logger:          logging.NoOp(),
		maxPayloadBytes: defaultMaxPayloadBytes,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/api").
func WithBasePath(path string) Option {
	return func(api *API) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = "/" + strings.Trim(trimmed, "/")
		}
	}
}

// WithHandlers wires the import and parse command handlers.
func WithHandlers(set *importcmd.HandlerSet) Option {
	return func(api *API) {
		api.handlers = set
	}
}

func WithImportService(service importer.Service) Option {
	return func(api *API) {
		api.importer = service
	}
}

func WithBlockService(service blocks.Service) Option {
	return func(api *API) {
		api.blocks = service
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(api *API) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// WithMaxPayloadBytes caps the import request body.
func WithMaxPayloadBytes(limit int64) Option {
	return func(api *API) {
		if limit > 0 {
			api.maxPayloadBytes = limit
		}
	}
}

// Register attaches the endpoints to router.
func (api *API) Register(router gin.IRouter) error {
	if router == nil {
		return errors.New("http: router is required")
	}
	if api == nil {
		return errors.New("http: api is nil")
	}
	if api.handlers == nil || api.importer == nil || api.blocks == nil {
		return errors.New("http: handlers, import service and block service are required")
	}

	group := router.Group(api.basePath)
	group.POST("/blocks/parse", api.parseMarkup)
	group.POST("/import", api.importRecords)
	group.GET("/resources/:id/content", api.resourceContent)
	return nil
}

// NewRouter builds a gin engine with recovery, request context and request
// logging middleware and the API routes.
func NewRouter(api *API) (*gin.Engine, error) {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(AttachRequestContext())
	engine.Use(RequestLogger(api.logger))

	engine.GET("/healthcheck", func(c *gin.Context) {
		RespondOK(c, gin.H{"status": "ok"})
	})
	if err := api.Register(engine); err != nil {
		return nil, err
	}
	return engine, nil
}
