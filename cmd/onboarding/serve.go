package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-onboarding/internal/commands"
	"github.com/goliatone/go-onboarding/internal/commands/importcmd"
	"github.com/goliatone/go-onboarding/internal/di"
	onboardinghttp "github.com/goliatone/go-onboarding/internal/http"
	"github.com/goliatone/go-onboarding/internal/logging"
)

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the onboarding HTTP API",
		Args:  cobra.NoArgs,
		RunE:  a.runServe,
	}
	cmd.Flags().String("addr", "", "Listen address (overrides http.address)")
	a.v.BindPFlag("http.address", cmd.Flags().Lookup("addr"))
	return cmd
}

func (a *app) runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, closeDB, err := di.Open(ctx, a.cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	set, err := importcmd.NewHandlerSet(container.ImportService(), container.Parser(), container.LoggerProvider(),
		importcmd.WithImportHandlerOptions(commands.WithTimeout[importcmd.ImportRecordsCommand](a.cfg.Import.Timeout)),
		importcmd.WithImportRetries(a.cfg.Import.Retries),
	)
	if err != nil {
		return err
	}

	gin.SetMode(a.cfg.HTTP.Mode)
	logger := logging.HTTPLogger(container.LoggerProvider())
	engine, err := onboardinghttp.NewRouter(onboardinghttp.NewAPI(
		onboardinghttp.WithHandlers(set),
		onboardinghttp.WithImportService(container.ImportService()),
		onboardinghttp.WithBlockService(container.BlockService()),
		onboardinghttp.WithLogger(logger),
		onboardinghttp.WithMaxPayloadBytes(a.cfg.Import.MaxPayloadBytes),
	))
	if err != nil {
		return err
	}

	logger.Info("http.server.start", "address", a.cfg.HTTP.Address, "storage", a.cfg.StorageDriver())
	server := onboardinghttp.NewServer(engine, a.cfg.HTTP.Address, a.cfg.HTTP.ReadTimeout, a.cfg.HTTP.WriteTimeout)
	return server.Run(ctx)
}
