// Momentum is a personal productivity server: habit tracking with
// streaks, a to-do list, focus sessions, and book recommendations,
// backed by a local SQLite database and exposed over an HTTP API.
//
// Usage:
//
//	# Start with defaults (~/.config/momentum/config.yaml)
//	momentum
//
//	# Point at a specific config and seed the book catalogue
//	momentum -config ./config.yaml -seed ./books.yaml
//
//	# Write the resolved configuration (defaults included) and exit
//	momentum -config ./config.yaml -write-config
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/nhle/momentum/internal/model"
	"github.com/nhle/momentum/internal/server"
	"github.com/nhle/momentum/internal/store"
)

func main() {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to the YAML configuration file")
	seedPath := flag.String("seed", "", "optional YAML file with a book catalogue to load at startup")
	writeConfig := flag.Bool("write-config", false, "write the resolved configuration to the config file and exit")
	flag.Parse()

	if *writeConfig {
		cfg, err := model.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Config error: %v", err)
		}
		if err := model.SaveConfig(*configPath, cfg); err != nil {
			log.Fatalf("Config error: %v", err)
		}
		log.Printf("Config written to %s", *configPath)
		return
	}

	// Setup signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Printf("Received signal %v, shutting down gracefully...", sig)
		cancel()
	}()

	if err := run(ctx, *configPath, *seedPath); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server shutdown complete")
}

func run(ctx context.Context, configPath, seedPath string) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync()

	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}

	if dir := dbDir(cfg.Database.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating database directory %s: %w", dir, err)
		}
	}

	st, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	if seedPath != "" {
		n, err := seedBooks(ctx, st, seedPath)
		if err != nil {
			return err
		}
		logger.Info("book catalogue seeded", zap.Int("books", n), zap.String("file", seedPath))
	}

	srv, err := server.NewServer(st, logger, cfg)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// seedBooks loads a YAML catalogue file of the form:
//
//	books:
//	  - title: Deep Work
//	    goal: focus
//	    mood: motivated
//	    minutes_per_day: 30
//
// and upserts each entry into the store.
func seedBooks(ctx context.Context, st store.Store, path string) (int, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return 0, fmt.Errorf("reading seed file %s: %w", path, err)
	}

	var catalogue struct {
		Books []model.Book `mapstructure:"books"`
	}
	if err := v.Unmarshal(&catalogue); err != nil {
		return 0, fmt.Errorf("parsing seed file %s: %w", path, err)
	}

	for _, book := range catalogue.Books {
		if _, err := st.UpsertBook(ctx, book); err != nil {
			return 0, fmt.Errorf("seeding book %q: %w", book.Title, err)
		}
	}
	return len(catalogue.Books), nil
}

// dbDir returns the parent directory of the database path, or "" for
// in-memory databases.
func dbDir(path string) string {
	if path == "" || path == ":memory:" {
		return ""
	}
	return filepath.Dir(path)
}
