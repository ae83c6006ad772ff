package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"

	contentblocks "github.com/goliatone/go-onboarding/blocks"
	"github.com/goliatone/go-onboarding/internal/commands/importcmd"
	"github.com/goliatone/go-onboarding/internal/logging"
	"github.com/goliatone/go-onboarding/internal/markup"
)

func (a *app) parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse markup into JSON content blocks",
		Long: `Reads editor markup from file, or stdin when no file is given,
and prints the parsed content blocks as JSON.`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runParse,
	}
}

func (a *app) runParse(cmd *cobra.Command, args []string) error {
	var source []byte
	var err error
	if len(args) == 1 {
		source, err = os.ReadFile(args[0])
	} else {
		source, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return err
	}

	handler := importcmd.NewParseMarkupHandler(markup.NewParser(), logging.NoOp())
	var parsed []contentblocks.ContentBlock
	if err := handler.Execute(cmd.Context(), importcmd.ParseMarkupCommand{
		Markup:   string(source),
		OnBlocks: func(out []contentblocks.ContentBlock) { parsed = out },
	}); err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), parsed)
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
