package main

import (
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-onboarding/internal/runtimeconfig"
)

type app struct {
	v   *viper.Viper
	cfg runtimeconfig.Config
	in  io.Reader
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{v: viper.New(), in: in}

	rootCmd := &cobra.Command{
		Use:   "onboarding",
		Short: "Onboarding content tools",
		Long: `Parse editor markup into content blocks, import onboarding
exports and serve the onboarding API.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.loadConfig,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (default ./onboarding.yaml)")
	flags.String("log-level", "", "Log level: trace, debug, info, warn, error, fatal")
	flags.String("log-format", "", "Log format: json, console, pretty")
	flags.String("db-driver", "", "Storage driver: memory, sqlite, postgres")
	flags.String("db-dsn", "", "Storage connection string")

	a.v.BindPFlag("logging.level", flags.Lookup("log-level"))
	a.v.BindPFlag("logging.format", flags.Lookup("log-format"))
	a.v.BindPFlag("storage.driver", flags.Lookup("db-driver"))
	a.v.BindPFlag("storage.dsn", flags.Lookup("db-dsn"))

	rootCmd.AddCommand(a.parseCmd(), a.importCmd(), a.serveCmd())
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	return rootCmd
}

func (a *app) loadConfig(cmd *cobra.Command, _ []string) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	if path = strings.TrimSpace(path); path != "" {
		a.v.SetConfigFile(path)
	}
	cfg, err := runtimeconfig.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}
