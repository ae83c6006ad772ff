package main

import (
	"context"
	"os"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-onboarding/internal/commands"
	"github.com/goliatone/go-onboarding/internal/commands/importcmd"
	"github.com/goliatone/go-onboarding/internal/di"
	"github.com/goliatone/go-onboarding/internal/importer"
)

func (a *app) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <payload.json>",
		Short: "Import an onboarding export into storage",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runImport,
	}
	cmd.Flags().Bool("dry-run", false, "Parse and count records without writing")
	cmd.Flags().Bool("replace", false, "Overwrite records from a previous import")
	return cmd
}

func (a *app) runImport(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	replace, _ := cmd.Flags().GetBool("replace")

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	payload, err := importer.DecodePayload(data)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
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
	unsubscribe, err := set.Subscribe()
	if err != nil {
		return err
	}
	defer unsubscribe()

	var result *importer.Result
	if err := dispatcher.Dispatch(ctx, importcmd.ImportRecordsCommand{
		Payload:  &payload,
		DryRun:   dryRun,
		Replace:  replace,
		OnResult: func(r *importer.Result) { result = r },
	}); err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), result)
}
