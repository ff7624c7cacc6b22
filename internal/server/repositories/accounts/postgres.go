package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bmic/internal/common"
	"github.com/dmitrijs2005/bmic/internal/dbx"
	"github.com/dmitrijs2005/bmic/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {

	query :=
		`INSERT INTO accounts (id, email, avatar, canonical)
         VALUES ($1, $2, $3, $4)
		 RETURNING created_at
		 `

	account.Email = common.NormalizeEmail(account.Email)

	err := r.db.QueryRowContext(ctx, query,
		account.ID, account.Email, account.Avatar, account.Canonical).Scan(&account.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

func (r *PostgresRepository) getOne(ctx context.Context, where string, args ...any) (*models.Account, error) {
	query := `SELECT id, email, avatar, canonical, created_at FROM accounts WHERE ` + where

	a := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.Email, &a.Avatar, &a.Canonical, &a.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	return r.getOne(ctx, `id = $1`, id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	return r.getOne(ctx, `email = $1`, common.NormalizeEmail(email))
}

func (r *PostgresRepository) GetCanonical(ctx context.Context) (*models.Account, error) {
	return r.getOne(ctx, `canonical`)
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, email, avatar, canonical, created_at FROM accounts ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]models.Account, 0)
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.Email, &a.Avatar, &a.Canonical, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return out, nil
}

// SetCanonical issues two statements; run it inside dbx.WithTx so readers
// never observe zero or two canonical rows.
func (r *PostgresRepository) SetCanonical(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE accounts SET canonical = FALSE WHERE canonical AND id <> $1`, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `UPDATE accounts SET canonical = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return expectOneRow(res)
}

func (r *PostgresRepository) UpdateAvatar(ctx context.Context, id, avatar string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE accounts SET avatar = $2 WHERE id = $1`, id, avatar)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
