package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aatumaykin/purgetemp/internal/errcode"
)

var showFormat string

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Validate and inspect the effective PurgeTemp configuration.`,
}

// configValidateCmd represents the config validate command
var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the settings",
	Long: `Load the settings file and the setting flags and run every check a purge
runs before it touches the filesystem. The exit status is the result code.`,
	Args: cobra.NoArgs,
	RunE: runConfigValidate,
}

// configShowCmd prints the effective configuration with secrets masked
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	configShowCmd.Flags().StringVar(&showFormat, "format", "toml", "output format: toml or yaml")
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		exitCode = int(errcode.Of(err))
		printErr(cmd, "%v", err)
		return nil
	}
	defer a.Shutdown()

	e := a.Executor()
	if err := e.ValidateGeneralSettings(); err != nil {
		return validationFailed(cmd, err)
	}
	if _, err := e.CheckStageFolders(); err != nil {
		return validationFailed(cmd, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid")
	exitCode = int(errcode.Success)
	return nil
}

func validationFailed(cmd *cobra.Command, err error) error {
	code := errcode.Of(err)
	printErr(cmd, "%s (code %d): %v", code, int(code), err)
	exitCode = int(code)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		exitCode = int(errcode.Of(err))
		return err
	}
	masked := cfg.Masked()

	out := cmd.OutOrStdout()
	switch strings.ToLower(showFormat) {
	case "toml":
		err = toml.NewEncoder(out).Encode(masked)
	case "yaml", "yml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		err = enc.Encode(masked)
		if err == nil {
			err = enc.Close()
		}
	default:
		err = fmt.Errorf("unsupported format %q (expected: toml, yaml)", showFormat)
	}
	if err != nil {
		exitCode = int(errcode.InvalidArguments)
		return err
	}
	exitCode = int(errcode.Success)
	return nil
}
