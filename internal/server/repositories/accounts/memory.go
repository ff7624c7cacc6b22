package accounts

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/bmic/internal/common"
	"github.com/dmitrijs2005/bmic/internal/server/models"
)

// MemoryRepository keeps the directory in process memory. It backs the
// server when no database is configured and is safe for concurrent use.
type MemoryRepository struct {
	mu       sync.RWMutex
	txMu     sync.Mutex
	accounts map[string]models.Account
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{accounts: make(map[string]models.Account)}
}

func (r *MemoryRepository) Create(_ context.Context, account *models.Account) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account.Email = common.NormalizeEmail(account.Email)

	if _, ok := r.accounts[account.ID]; ok {
		return nil, common.ErrorAlreadyExists
	}
	for _, a := range r.accounts {
		if a.Email == account.Email {
			return nil, common.ErrorAlreadyExists
		}
	}

	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}
	r.accounts[account.ID] = *account

	return account, nil
}

func (r *MemoryRepository) find(match func(models.Account) bool) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if match(a) {
			found := a
			return &found, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.Account, error) {
	return r.find(func(a models.Account) bool { return a.ID == id })
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	email = common.NormalizeEmail(email)
	return r.find(func(a models.Account) bool { return a.Email == email })
}

func (r *MemoryRepository) GetCanonical(_ context.Context) (*models.Account, error) {
	return r.find(func(a models.Account) bool { return a.Canonical })
}

func (r *MemoryRepository) SetCanonical(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[id]; !ok {
		return common.ErrorNotFound
	}
	for k, a := range r.accounts {
		a.Canonical = k == id
		r.accounts[k] = a
	}
	return nil
}

func (r *MemoryRepository) UpdateAvatar(_ context.Context, id, avatar string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return common.ErrorNotFound
	}
	a.Avatar = avatar
	r.accounts[id] = a
	return nil
}

func (r *MemoryRepository) List(_ context.Context) ([]models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// InTx runs fn against r with all-or-nothing semantics: if fn fails the
// directory is restored to its state before the call. Calls to InTx are
// serialized with each other.
func (r *MemoryRepository) InTx(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	r.mu.RLock()
	saved := make(map[string]models.Account, len(r.accounts))
	for k, v := range r.accounts {
		saved[k] = v
	}
	r.mu.RUnlock()

	if err := fn(ctx, r); err != nil {
		r.mu.Lock()
		r.accounts = saved
		r.mu.Unlock()
		return err
	}
	return nil
}
