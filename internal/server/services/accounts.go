package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/bmic/internal/common"
	"github.com/dmitrijs2005/bmic/internal/server/auth"
	sc "github.com/dmitrijs2005/bmic/internal/server/config"
	"github.com/dmitrijs2005/bmic/internal/server/models"
	"github.com/dmitrijs2005/bmic/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/bmic/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

var newAccountID = uuid.NewString

// LoginUser and LoginPayload mirror the JSON the CLI expects from the login
// endpoint.
type LoginUser struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

type LoginPayload struct {
	User  LoginUser `json:"user"`
	Token string    `json:"token"`
}

type AccountService struct {
	repomanager repomanager.RepositoryManager
	secretKey   []byte
	validity    time.Duration
}

// NewAccountService builds the service. An empty secret in config is
// replaced by a random one, so tokens do not survive a restart.
func NewAccountService(repomanager repomanager.RepositoryManager, config *sc.Config) (*AccountService, error) {
	secret := config.SecretKey
	if secret == "" {
		s, err := common.MakeRandHexString(32)
		if err != nil {
			return nil, fmt.Errorf("generate secret: %w", err)
		}
		secret = s
	}

	return &AccountService{
		repomanager: repomanager,
		secretKey:   []byte(secret),
		validity:    config.TokenValidityDuration,
	}, nil
}

// Login returns the canonical account with a freshly signed token, or
// common.ErrorNotFound when none is configured.
func (s *AccountService) Login(ctx context.Context) (*LoginPayload, error) {
	a, err := s.repomanager.Accounts().GetCanonical(ctx)
	if err != nil {
		return nil, err
	}

	token, err := auth.GenerateToken(a.ID, s.secretKey, s.validity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	return &LoginPayload{
		User:  LoginUser{ID: a.ID, Email: a.Email, Avatar: a.Avatar},
		Token: token,
	}, nil
}

// Register makes email the canonical account, creating it first when it is
// unknown. A non-empty avatar replaces the stored one. created reports
// whether a new account was inserted.
func (s *AccountService) Register(ctx context.Context, email, avatar string) (account *models.Account, created bool, err error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, false, fmt.Errorf("%w: invalid email %q", common.ErrorValidation, email)
	}

	err = s.repomanager.InTx(ctx, func(ctx context.Context, repo accounts.Repository) error {
		existing, err := repo.GetByEmail(ctx, email)
		switch {
		case err == nil:
			if avatar != "" {
				if err := repo.UpdateAvatar(ctx, existing.ID, avatar); err != nil {
					return err
				}
			}
			if err := repo.SetCanonical(ctx, existing.ID); err != nil {
				return err
			}
			account, err = repo.GetByID(ctx, existing.ID)
			return err

		case errors.Is(err, common.ErrorNotFound):
			a, err := repo.Create(ctx, &models.Account{ID: newAccountID(), Email: email, Avatar: avatar})
			if err != nil {
				return err
			}
			if err := repo.SetCanonical(ctx, a.ID); err != nil {
				return err
			}
			a.Canonical = true
			account, created = a, true
			return nil

		default:
			return err
		}
	})
	if err != nil {
		return nil, false, err
	}

	return account, created, nil
}

// AccountByToken resolves a token issued by Login back to its account.
func (s *AccountService) AccountByToken(ctx context.Context, token string) (*models.Account, error) {
	id, err := auth.GetAccountIDFromToken(token, s.secretKey)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Accounts().GetByID(ctx, id)
}

func (s *AccountService) List(ctx context.Context) ([]models.Account, error) {
	return s.repomanager.Accounts().List(ctx)
}

func (s *AccountService) SetAvatar(ctx context.Context, id, avatar string) error {
	return s.repomanager.Accounts().UpdateAvatar(ctx, id, avatar)
}
