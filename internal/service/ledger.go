package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/alligatorO15/fin-mentor/internal/models"
	"github.com/alligatorO15/fin-mentor/internal/repository"
	"github.com/alligatorO15/fin-mentor/internal/state"
)

// Ledger единственный вход к состоянию. Все вызовы сериализуются мьютексом,
// изменение сначала применяется к Store, потом сохраняется; при ошибке сохранения
// Store откатывается к снимку
type Ledger struct {
	mu     sync.Mutex
	store  *state.Store
	repos  *repository.Repositories
	logger *slog.Logger
}

// persistFunc сохраняет уже примененное изменение, выполняется в транзакции БД
type persistFunc func(ctx context.Context, repos *repository.Repositories) error

// NewLedger поднимает состояние из хранилища. repos == nil - только память
func NewLedger(ctx context.Context, store *state.Store, repos *repository.Repositories, logger *slog.Logger) (*Ledger, error) {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Ledger{store: store, repos: repos, logger: logger}
	if repos == nil {
		return l, nil
	}

	snap, err := repos.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	if err := store.Restore(snap); err != nil {
		return nil, fmt.Errorf("restore state: %w", err)
	}
	logger.Info("state loaded",
		"income_set", snap.Income != nil,
		"expenses", len(snap.Expenses),
		"transactions", len(snap.Transactions),
		"goal_set", snap.Goal != nil,
	)
	return l, nil
}

// Read выполняет fn под замком, без изменений
func (l *Ledger) Read(fn func(s *state.Store) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(l.store)
}

// Mutate применяет fn и сохраняет результат. fn возвращает функцию сохранения
// (nil - сохранять нечего)
func (l *Ledger) Mutate(ctx context.Context, fn func(s *state.Store) (persistFunc, error)) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap := l.store.Snapshot()
	persist, err := fn(l.store)
	if err != nil {
		l.rollback(snap)
		return err
	}
	if persist == nil || l.repos == nil {
		return nil
	}

	err = l.repos.TxManager.WithTx(ctx, func(ctx context.Context) error {
		return persist(ctx, l.repos)
	})
	if err != nil {
		l.logger.Error("failed to persist state, rolling back", "error", err)
		l.rollback(snap)
		return fmt.Errorf("persist state: %w", err)
	}
	return nil
}

func (l *Ledger) rollback(snap models.Snapshot) {
	if err := l.store.Restore(snap); err != nil {
		l.logger.Error("failed to restore state snapshot", "error", err)
	}
}

func saveProfile(s *state.Store) persistFunc {
	profile := &models.Profile{Income: s.Income(), Ratios: s.Ratios()}
	return func(ctx context.Context, repos *repository.Repositories) error {
		return repos.Profile.Save(ctx, profile)
	}
}
