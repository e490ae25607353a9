package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	search "github.com/TFMV/ff/internal/search"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var version = "0.1.0"

var errNoCommand = errors.New("no command given, see 'ff search --help'")

// Execute builds the command tree and runs it against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd returns the ff command with its subcommands. Each call gets its
// own viper instance so that commands can be executed more than once.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "ff",
		Short: "Find files and directories by name",
		Long: `ff recursively searches a directory tree for files and directories
whose name contains a given fragment, optionally filtered by extension,
depth and case sensitivity.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v, cfgFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
			return errNoCommand
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default is $HOME/.ff.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (error|warn|info|debug)")

	v.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	v.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(newSearchCmd(v))
	rootCmd.AddCommand(newWatchCmd(v))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// initConfig reads in config file and ENV variables if set.
func initConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		// Use config file from the flag.
		v.SetConfigFile(cfgFile)
	} else {
		// Search config in home directory with name ".ff" (without extension).
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigType("yaml")
		v.SetConfigName(".ff")
	}

	v.SetEnvPrefix("FF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config: %w", err)
	}
	return nil
}

// newLogger builds the logger selected by --verbose and --log-level.
func newLogger(v *viper.Viper) (*zap.Logger, error) {
	if v.GetBool("verbose") {
		return search.NewLogger(search.LogLevelDebug), nil
	}
	level, err := search.ParseLogLevel(v.GetString("log-level"))
	if err != nil {
		return nil, err
	}
	return search.NewLogger(level), nil
}
