package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/roster/internal/config"
	logpkg "github.com/kailas-cloud/roster/internal/logger"
	"github.com/kailas-cloud/roster/internal/repository/fixture"
)

func newSeedCmd() *cobra.Command {
	var configPath, file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Validate and load a YAML fixture into the configured store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env := config.GetEnv()
			cfg, err := loadConfig(env, configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if file == "" {
				file = cfg.Seed.File
			}
			if file == "" {
				return fmt.Errorf("no fixture: pass --file or set seed.file")
			}

			logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()
			ctx := logpkg.ContextWithLogger(cmd.Context(), logger)

			set, err := fixture.Load(file)
			if err != nil {
				return err
			}

			store, err := openStore(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer store.Close()

			sum, err := seed(ctx, newServices(store, cfg), set)
			if err != nil {
				return err
			}
			logger.Info("Seed finished", zap.String("file", file), zap.Int("rejected", sum.Failed()))

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(sum); err != nil {
				return fmt.Errorf("write summary: %w", err)
			}
			if n := sum.Failed(); n > 0 {
				return fmt.Errorf("%d records rejected", n)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: config/<ENV>.yaml)")
	cmd.Flags().StringVar(&file, "file", "", "fixture file (default: seed.file from config)")
	return cmd
}
