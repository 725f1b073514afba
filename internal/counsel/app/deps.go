package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/globalgrad/counsellor/internal/counsel/domain"
	"github.com/globalgrad/counsellor/internal/counsel/events"
	"github.com/globalgrad/counsellor/internal/counsel/store"
	"github.com/globalgrad/counsellor/internal/counsel/store/drivers/postgres"
	"github.com/globalgrad/counsellor/internal/counsel/store/drivers/sqlite"
)

// OpenStore picks a driver from the URL scheme and applies migrations. A
// value without a scheme is a SQLite file path. An empty URL yields
// store.Unconfigured.
func OpenStore(ctx context.Context, url string, logger *slog.Logger) (store.Store, error) {
	if url == "" {
		logger.Warn("DATABASE_URL not set; data endpoints will report the database as not configured")
		return store.Unconfigured(), nil
	}

	var (
		db     store.Store
		driver string
	)
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		pg, err := postgres.NewStore(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		db, driver = pg, "postgres"
	case strings.HasPrefix(url, "sqlite://"), strings.HasPrefix(url, "file:"), !strings.Contains(url, "://"):
		dsn := url
		if path, ok := strings.CutPrefix(url, "sqlite://"); ok {
			dsn = sqlite.FileDSN(path)
		} else if !strings.HasPrefix(url, "file:") {
			dsn = sqlite.FileDSN(url)
		}
		lite, err := sqlite.NewStore(dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		db, driver = lite, "sqlite"
	default:
		return nil, fmt.Errorf("unsupported DATABASE_URL scheme in %q", redactURL(url))
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}

	logger.Info("database migrations applied successfully", "driver", driver)
	return db, nil
}

// OpenBus returns a Redis bus when url is set and an in-process bus otherwise.
func OpenBus(ctx context.Context, url string, logger *slog.Logger) (events.Bus, error) {
	if url == "" {
		return events.NewMemoryBus(logger), nil
	}
	bus, err := events.NewRedisBus(ctx, url, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("event bus connected", "backend", "redis")
	return bus, nil
}

// LoadCatalog reads path, or returns the built-in catalog when path is empty.
func LoadCatalog(path string) (*domain.Catalog, error) {
	if path == "" {
		return domain.DefaultCatalog(), nil
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return domain.ParseCatalog(data)
}

// redactURL masks the userinfo of url. Values without a scheme are shown
// as given, minus anything before an "@".
func redactURL(url string) string {
	scheme, rest, ok := strings.Cut(url, "://")
	if !ok {
		scheme, rest = "", url
	}
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		rest = "***" + rest[at:]
	}
	if scheme == "" {
		return rest
	}
	return scheme + "://" + rest
}
