// Package accounts stores the server's account directory.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/bmic/internal/server/models"
)

// Repository is the account directory. Lookups that find nothing return
// common.ErrorNotFound; Create on a taken email returns
// common.ErrorAlreadyExists. Emails are stored normalized.
type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetCanonical(ctx context.Context) (*models.Account, error)
	// List returns every account ordered by creation time.
	List(ctx context.Context) ([]models.Account, error)
	// SetCanonical marks id canonical and clears the flag everywhere else.
	SetCanonical(ctx context.Context, id string) error
	UpdateAvatar(ctx context.Context, id, avatar string) error
}
