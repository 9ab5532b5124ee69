package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/potax/internal/common"
	"github.com/Veraticus/potax/internal/config"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "potax",
		Short: "📦 Purchase-order taxonomy classifier",
		Long: `potax classifies purchase-order descriptions into a three-level
L1/L2/L3 procurement taxonomy using an LLM.

Run it once from the command line, open the interactive form, serve the
web form, or classify a whole CSV file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return initConfig(cfgFile)
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/potax/config.yaml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.String("provider", "", "LLM provider (openai, anthropic, gemini, claudecode, static)")
	flags.String("model", "", "LLM model name")
	flags.String("taxonomy", "", "YAML file listing allowed L1/L2/L3 labels")
	flags.Duration("timeout", 0, "classifier call timeout (default 60s)")
	flags.Bool("no-color", false, "disable colored output")

	// Bind flags to viper
	bindFlag(rootCmd, "logging.level", "log-level")
	bindFlag(rootCmd, "logging.format", "log-format")
	bindFlag(rootCmd, "llm.provider", "provider")
	bindFlag(rootCmd, "llm.model", "model")
	bindFlag(rootCmd, "llm.taxonomy_file", "taxonomy")
	bindFlag(rootCmd, "classifier.timeout", "timeout")
	bindFlag(rootCmd, "ui.no_color", "no-color")

	// Add commands
	rootCmd.AddCommand(classifyCmd())
	rootCmd.AddCommand(formCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(batchCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func bindFlag(cmd *cobra.Command, key, name string) {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.PersistentFlags().Lookup(name)
	}
	_ = viper.BindPFlag(key, flag)
}

func main() {
	// Set up signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		var userErr *common.UserError
		if errors.As(err, &userErr) {
			fmt.Fprintln(os.Stderr, userErr.UserMessage)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func initConfig(cfgFile string) error {
	v := viper.GetViper()
	config.SetDefaults(v)

	// Set up config file
	if cfgFile != "" {
		v.SetConfigFile(config.ExpandPath(cfgFile))
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		// Search for config in standard locations
		v.AddConfigPath(fmt.Sprintf("%s/.config/potax", home))
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Environment variables
	v.SetEnvPrefix("POTAX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	// Set up logging
	if err := common.SetupLogger(os.Stderr, v.GetString("logging.level"), v.GetString("logging.format")); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	slog.Debug("configuration loaded", "config_file", v.ConfigFileUsed())
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "potax %s\n", version)
		},
	}
}
