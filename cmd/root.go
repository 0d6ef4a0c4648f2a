package cmd

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zhihang-app/zhihang/internal/llm"
	"github.com/zhihang-app/zhihang/internal/logger"
	"github.com/zhihang-app/zhihang/internal/store"
	"github.com/zhihang-app/zhihang/internal/user"
)

var rootCmd = &cobra.Command{
	Use:   "zhihang",
	Short: "Academic planning dashboard for university students",
	Long:  "Zhihang tracks course, research and competition progress against major requirements and serves an AI-assisted planning API.",
}

func Execute() error {
	// A missing .env file is fine; env vars may come from the shell.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("data", "", "Path to the data directory (overrides ZHIHANG_DATA env var)")
	rootCmd.PersistentFlags().String("sqlite", "", "Path to a SQLite file for user records (catalogs stay on JSON files)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDataDir returns the data directory using --data flag (highest
// priority), then ZHIHANG_DATA env var, then the default XDG path.
func resolveDataDir(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("data"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDataDir()
}

// openStores opens the catalog source plus the user repository, which
// lives in SQLite when --sqlite is set and in the JSON files otherwise.
func openStores(cmd *cobra.Command) (*store.FileStore, user.Repository, func() error, error) {
	dir, err := resolveDataDir(cmd)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("resolve data directory: %w", err)
	}

	fs, err := store.NewFileStore(dir)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open data directory: %w", err)
	}

	if dsn, _ := cmd.Flags().GetString("sqlite"); dsn != "" {
		db, err := store.OpenSQLite(dsn)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		return fs, db, db.Close, nil
	}
	return fs, fs, func() error { return nil }, nil
}

func newLogger() (*zap.Logger, error) {
	return logger.New("production")
}

func newProvider(ctx context.Context, log *zap.Logger) (llm.Provider, error) {
	cfg, ok := llm.DiscoverConfig()
	if !ok {
		return nil, fmt.Errorf("no LLM provider configured; set ZHIHANG_DEEPSEEK_API_KEY or a sibling key")
	}
	return llm.NewProvider(ctx, cfg, log)
}
