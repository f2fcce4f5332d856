package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/hisabat-app/hisabat-backend/internal/apperrors"
	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
	portsrepo "github.com/hisabat-app/hisabat-backend/internal/core/ports/repositories"
	"github.com/hisabat-app/hisabat-backend/internal/models"
	"github.com/hisabat-app/hisabat-backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepository
var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

const accountColumns = `code, company_id, name, name_ar, account_type, normal_balance, parent_code, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	var parentCode sql.NullString
	err := row.Scan(
		&m.Code,
		&m.CompanyID,
		&m.Name,
		&m.NameAr,
		&m.AccountType,
		&m.NormalBalance,
		&parentCode,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if parentCode.Valid {
		m.ParentCode = parentCode.String
	}
	return m, err
}

// SeedAccounts inserts the default chart, skipping codes that already exist.
func (r *PgxAccountRepository) SeedAccounts(ctx context.Context, accounts []domain.Account) (int, error) {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (company_id, code) DO NOTHING;
	`
	batch := &pgx.Batch{}
	for _, account := range accounts {
		m := mapping.ToModelAccount(account)
		var parentCode sql.NullString
		if m.ParentCode != "" {
			parentCode = sql.NullString{String: m.ParentCode, Valid: true}
		}
		batch.Queue(query,
			m.Code,
			m.CompanyID,
			m.Name,
			m.NameAr,
			m.AccountType,
			m.NormalBalance,
			parentCode,
			m.IsActive,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := r.Pool.SendBatch(ctx, batch)
	defer br.Close()

	created := 0
	for range accounts {
		tag, err := br.Exec()
		if err != nil {
			return created, apperrors.NewAppError(500, "failed to seed accounts", err)
		}
		created += int(tag.RowsAffected())
	}
	return created, nil
}

// FindAccountByCode retrieves one account by its code within a company.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, companyID, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1 AND code = $2;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, companyID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account "+code, err)
	}
	d := mapping.ToDomainAccount(m)
	return &d, nil
}

// FindAccountsByCodes retrieves multiple accounts keyed by code.
func (r *PgxAccountRepository) FindAccountsByCodes(ctx context.Context, companyID string, codes []string) (map[string]domain.Account, error) {
	if len(codes) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1 AND code = ANY($2);`
	rows, err := r.Pool.Query(ctx, query, companyID, codes)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by codes", err)
	}
	defer rows.Close()

	result := make(map[string]domain.Account, len(codes))
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		result[m.Code] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return result, nil
}

// ListAccounts retrieves the full chart for a company ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, companyID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1 ORDER BY code;`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts for company "+companyID, err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return mapping.ToDomainAccountSlice(accounts), nil
}

// SetAccountActive flips the activation flag, the only mutable field.
func (r *PgxAccountRepository) SetAccountActive(ctx context.Context, companyID, code string, active bool, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE company_id = $1 AND code = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, companyID, code, active, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update account "+code, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
