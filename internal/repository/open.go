package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alligatorO15/fin-mentor/internal/config"
	"github.com/alligatorO15/fin-mentor/internal/database"
)

// Open подключает хранилище из конфига, накатывает миграции и собирает репозитории.
// Вторым значением возвращается функция закрытия соединения, вызывать после остановки сервисов
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Repositories, func(), error) {
	switch cfg.Storage {
	case config.StoragePostgres:
		pool, err := database.NewPostgresDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := database.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("postgres migrations: %w", err)
		}
		logger.Info("storage ready", "backend", cfg.Storage)
		return NewRepositories(pool), pool.Close, nil

	case config.StorageSQLite:
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := database.RunSQLiteMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("sqlite migrations: %w", err)
		}
		logger.Info("storage ready", "backend", cfg.Storage, "path", cfg.SQLitePath)
		return NewSQLiteRepositories(db), func() { _ = db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}
}
