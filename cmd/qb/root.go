package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/qjebbs/go-qb/config"
)

var (
	// Global state set during PersistentPreRunE
	cfg        *config.Config
	configPath string
	logger     *slog.Logger

	// Persistent flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "qb",
	Short: "Render and execute SQL statements",
	Long: `qb - render and execute SQL statements described in YAML files.

Statements are built with the qb builder, so the clause order and the
operands are checked before anything reaches the database.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, configPath, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		level := slog.LevelInfo
		if verbose || cfg.Debug {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		if configPath != "" {
			logger.Debug("config loaded", "path", configPath)
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: auto-discover qb.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug messages")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(execCmd)
	rootCmd.SetOut(os.Stdout)
}
