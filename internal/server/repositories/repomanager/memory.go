package repomanager

import (
	"context"

	"github.com/dmitrijs2005/bmic/internal/server/repositories/accounts"
)

// MemoryRepositoryManager serves a process-local directory. Its contents are
// lost on exit.
type MemoryRepositoryManager struct {
	accounts *accounts.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{accounts: accounts.NewMemoryRepository()}
}

func (m *MemoryRepositoryManager) Accounts() accounts.Repository {
	return m.accounts
}

func (m *MemoryRepositoryManager) InTx(ctx context.Context, fn func(ctx context.Context, repo accounts.Repository) error) error {
	return m.accounts.InTx(ctx, fn)
}

func (m *MemoryRepositoryManager) Ping(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Close() error { return nil }
