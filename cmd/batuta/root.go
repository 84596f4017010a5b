package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/batuta-io/batuta"
	fileStore "github.com/batuta-io/batuta/internal/adapters/file"
	redisStore "github.com/batuta-io/batuta/internal/adapters/redis"
	"github.com/batuta-io/batuta/internal/config"
	"github.com/batuta-io/batuta/internal/logging"
	"github.com/batuta-io/batuta/pkg/adapters/memory"
	"github.com/batuta-io/batuta/pkg/domain"
	"github.com/batuta-io/batuta/pkg/ports"
)

var rootCmd = &cobra.Command{
	Use:   "batuta",
	Short: "Batuta is a pipeline orchestration engine",
	Long: `Batuta classifies free-form requests and routes them to named
workflows: pipelines of stages that communicate through per-session
shared state.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to the configuration file (default batuta.yaml if present)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
}

// loadConfig resolves the effective configuration and logger for a command.
func loadConfig(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, nil, err
	}

	level := cfg.LogLevel
	if flag, _ := cmd.Flags().GetString("log-level"); flag != "" {
		level = flag
	}
	return cfg, logging.New(logging.ParseLevel(level)), nil
}

// buildStore constructs the session backend the config selects. The locker
// is non-nil only for backends shared between replicas.
func buildStore(cfg config.Config) (ports.StateStore, ports.DistributedLocker, error) {
	switch cfg.Store.Backend {
	case config.StoreMemory:
		return memory.NewStore(), nil, nil

	case config.StoreFile:
		return fileStore.New(cfg.Store.Dir), nil, nil

	case config.StoreRedis:
		store := redisStore.New(cfg.Store.Redis.Addr, cfg.Store.Redis.Password, cfg.Store.Redis.DB,
			redisStore.WithTTL(cfg.Store.Redis.TTL))
		locker := redisStore.NewLocker(store.Client(), "batuta:lock:")
		return store, locker, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// buildEngine wires a fully configured engine for a command.
func buildEngine(cmd *cobra.Command, hooks domain.LifecycleHooks) (*batuta.Engine, config.Config, *slog.Logger, error) {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return nil, cfg, nil, err
	}

	store, locker, err := buildStore(cfg)
	if err != nil {
		return nil, cfg, nil, err
	}

	opts := []batuta.Option{
		batuta.WithLogger(logger),
		batuta.WithStore(store),
		batuta.WithLifecycleHooks(hooks),
		batuta.WithLoopIterations(cfg.Engine.LoopIterations),
		batuta.WithStageTimeout(cfg.Engine.StageTimeout),
	}
	if locker != nil {
		opts = append(opts, batuta.WithLocker(locker))
	}

	engine, err := batuta.New(opts...)
	if err != nil {
		return nil, cfg, nil, err
	}
	return engine, cfg, logger, nil
}
