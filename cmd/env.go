package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/focusflow/internal/analysis"
	"github.com/abhisek/focusflow/internal/app"
	"github.com/abhisek/focusflow/internal/config"
	"github.com/abhisek/focusflow/internal/llm"
	"github.com/abhisek/focusflow/internal/logging"
	"github.com/abhisek/focusflow/internal/persist"
	"github.com/abhisek/focusflow/internal/store"
)

// appEnv is everything a command needs: configuration, logger, the open
// store and the application controller.
type appEnv struct {
	cfg    config.Config
	logger *zap.Logger
	store  *store.Store
	ctrl   *app.Controller
}

func (e *appEnv) Close() {
	_ = e.store.Close()
	_ = e.logger.Sync()
}

// loadConfig reads --config, or the default location.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Config{}, err
		}
		path = p
	}
	return config.Load(path)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the config file / FOCUSFLOW_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.Storage.DBPath != "" {
		return cfg.Storage.DBPath, store.EnsureDir(cfg.Storage.DBPath)
	}
	return store.DefaultDBPath()
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	path := cfg.Log.Path
	if path == "" {
		p, err := config.DefaultLogPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return logging.New(path, cfg.Log.Level)
}

// openStore opens only the database, for the inspection commands.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// openEnv loads config, opens the store and builds the controller.
func openEnv(cmd *cobra.Command) (*appEnv, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	// From here on a failure is logged and the logger flushed before
	// returning, as Close would.
	fail := func(err error) (*appEnv, error) {
		logger.Error("startup failed", zap.Error(err))
		_ = logger.Sync()
		return nil, err
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return fail(fmt.Errorf("resolve DB path: %w", err))
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fail(fmt.Errorf("open store: %w", err))
	}
	logger.Info("store opened", zap.String("path", dbPath))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctrl := app.NewController(ctx, persist.New(st.KV(), logger), newAnalyzer(cfg, st, logger), logger)
	return &appEnv{cfg: cfg, logger: logger, store: st, ctrl: ctrl}, nil
}

// newAnalyzer builds the analysis client. A provider is created per call
// so a key saved mid-session takes effect immediately.
func newAnalyzer(cfg config.Config, st *store.Store, logger *zap.Logger) *analysis.Client {
	factory := func(ctx context.Context, apiKey string) (llm.Provider, error) {
		return llm.NewProvider(ctx, llm.FromSettings(cfg.LLM, apiKey), st.EventRepo(), logger)
	}
	return analysis.NewClient(factory, analysis.Config{
		MaxTokens:         cfg.LLM.MaxTokens,
		Temperature:       cfg.LLM.Temperature,
		Timeout:           cfg.LLM.Timeout.Duration,
		RequireCredential: cfg.LLM.Provider != llm.ProviderMock,
	})
}
