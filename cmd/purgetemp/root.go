package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aatumaykin/purgetemp/internal/app"
	"github.com/aatumaykin/purgetemp/internal/config"
	"github.com/aatumaykin/purgetemp/internal/constants"
	"github.com/aatumaykin/purgetemp/internal/errcode"
	"github.com/aatumaykin/purgetemp/internal/logger"
	"github.com/aatumaykin/purgetemp/internal/pathutil"
	"github.com/aatumaykin/purgetemp/internal/version"
)

var (
	settingsFile string
	envFile      string
	baseDir      string

	// exitCode is the process exit status, the result code of the last purge.
	exitCode int
)

// rootCmd runs one purge when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "purgetemp",
	Short: "Staged temp file purge",
	Long: version.Banner() + `

Files placed in the newest stage folder move one stage further on every
purge and are deleted when they leave the oldest stage. Run without a
subcommand to execute one purge; the exit status is the result code.`,
	SilenceUsage: true,
	RunE:         runPurge,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&settingsFile, "settings-file", "s", "", "TOML or YAML settings file (default: built-in defaults)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", constants.DefaultEnvPath, "optional .env file loaded before the settings")
	rootCmd.PersistentFlags().StringVar(&baseDir, "base-dir", "", "directory relative paths are resolved against (default: executable directory)")
	registerSettingFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(scheduleCmd)
}

func runPurge(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		exitCode = int(errcode.Of(err))
		return err
	}
	defer a.Shutdown()

	code := a.RunOnce(commandContext(cmd))
	exitCode = int(code)
	return nil
}

// loadConfig reads the .env file, the settings file and the setting flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := config.LoadEnvOptional(envFile); err != nil {
		return nil, errcode.Wrap(err, errcode.InvalidArguments, "failed to load env file")
	}
	cfg, err := config.LoadOrDefault(settingsFile)
	if err != nil {
		return nil, errcode.Wrap(err, errcode.InvalidArguments, "failed to load settings")
	}

	settings, err := applySettingFlags(cmd.Flags(), cfg.AppSettings)
	if err != nil {
		return nil, errcode.Wrap(err, errcode.InvalidArguments, "invalid setting flag")
	}
	cfg.AppSettings = settings

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, errcode.Wrap(errors.Join(errs...), errcode.InvalidArguments, "configuration validation failed")
	}
	return cfg, nil
}

func resolver() (pathutil.Resolver, error) {
	if baseDir == "" {
		return pathutil.NewResolver(), nil
	}
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return pathutil.Resolver{}, errcode.Wrap(err, errcode.InvalidArguments, "invalid base dir")
	}
	return pathutil.Resolver{BaseDir: abs}, nil
}

// newApp loads the configuration and initializes an App whose scheduled
// runs reload it.
func newApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	r, err := resolver()
	if err != nil {
		return nil, err
	}

	a := app.New(cfg, app.Options{
		Resolver: r,
		Console:  cmd.OutOrStdout(),
		Reload:   func() (*config.Config, error) { return loadConfig(cmd) },
	})
	if err := a.Initialize(); err != nil {
		return nil, errcode.Wrap(err, errcode.InvalidArguments, "initialization failed")
	}
	logger.SetDefault(a.Logger())

	a.Logger().Debug("purgetemp started",
		logger.Field{Key: "version", Value: version.Version},
		logger.Field{Key: "git_commit", Value: version.GitCommit},
		logger.Field{Key: "settings_file", Value: settingsFile},
		logger.Field{Key: "base_dir", Value: r.BaseDir})
	return a, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func printErr(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
}
