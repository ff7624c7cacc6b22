// Package repomanager selects the storage backend for the account
// directory and scopes repositories to transactions.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/bmic/internal/server/repositories/accounts"
)

type RepositoryManager interface {
	// Accounts returns a repository bound to the manager's connection.
	Accounts() accounts.Repository
	// InTx runs fn with a repository whose writes commit together or not at all.
	InTx(ctx context.Context, fn func(ctx context.Context, repo accounts.Repository) error) error
	Ping(ctx context.Context) error
	Close() error
}
