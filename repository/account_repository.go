package repository

import (
	"context"
	"fmt"

	"wheel/database"
	"wheel/models"
	"wheel/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AccountRepository implements the service.AccountRepository interface
type AccountRepository struct {
	q queryable
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *database.DB) *AccountRepository {
	return &AccountRepository{q: db.Pool}
}

// GetByID retrieves an account by its ID
func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	query := `
		SELECT id, name, email, role, access_code, created_at
		FROM accounts
		WHERE id = $1
	`

	return r.getOne(ctx, query, id)
}

// GetByEmail retrieves an account by its email
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := `
		SELECT id, name, email, role, access_code, created_at
		FROM accounts
		WHERE email = $1
	`

	return r.getOne(ctx, query, email)
}

// GetByEmailExcluding returns the account holding the given email, ignoring
// the account with the excluded ID
func (r *AccountRepository) GetByEmailExcluding(ctx context.Context, email string, excludeID uuid.UUID) (*models.Account, error) {
	query := `
		SELECT id, name, email, role, access_code, created_at
		FROM accounts
		WHERE email = $1
		  AND id <> $2
	`

	return r.getOne(ctx, query, email, excludeID)
}

// Create creates a new account
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (name, email, role, access_code)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query, account.Name, account.Email, account.Role, account.AccessCode).Scan(
		&account.ID,
		&account.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &service.DomainError{
				Kind:    service.KindConflict,
				Message: fmt.Sprintf("the email %s is already in use", account.Email),
				Err:     err,
			}
		}
		return fmt.Errorf("failed to create account %s: %w", account.Email, err)
	}

	return nil
}

// Update persists name, email and access-code changes for an account
func (r *AccountRepository) Update(ctx context.Context, account *models.Account) error {
	query := `
		UPDATE accounts
		SET name = $2, email = $3, access_code = $4
		WHERE id = $1
	`

	result, err := r.q.Exec(ctx, query, account.ID, account.Name, account.Email, account.AccessCode)
	if err != nil {
		if isUniqueViolation(err) {
			return &service.DomainError{
				Kind:    service.KindConflict,
				Message: fmt.Sprintf("the email %s is already in use", account.Email),
				Err:     err,
			}
		}
		return fmt.Errorf("failed to update account %s: %w", account.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("account with ID %s not found", account.ID)
	}

	return nil
}

// GetAll returns all accounts sorted by creation time
func (r *AccountRepository) GetAll(ctx context.Context) ([]*models.Account, error) {
	query := `
		SELECT id, name, email, role, access_code, created_at
		FROM accounts
		ORDER BY created_at ASC
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all accounts: %w", err)
	}
	defer rows.Close()

	return scanAccounts(rows)
}

// ListAdmins returns all admin accounts sorted by creation time
func (r *AccountRepository) ListAdmins(ctx context.Context) ([]*models.Account, error) {
	query := `
		SELECT id, name, email, role, access_code, created_at
		FROM accounts
		WHERE role = 'admin'
		ORDER BY created_at ASC
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	defer rows.Close()

	return scanAccounts(rows)
}

func (r *AccountRepository) getOne(ctx context.Context, query string, args ...any) (*models.Account, error) {
	var account models.Account
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.Role,
		&account.AccessCode,
		&account.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &account, nil
}

func scanAccounts(rows pgx.Rows) ([]*models.Account, error) {
	var accounts []*models.Account
	for rows.Next() {
		var account models.Account
		err := rows.Scan(
			&account.ID,
			&account.Name,
			&account.Email,
			&account.Role,
			&account.AccessCode,
			&account.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, &account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	return accounts, nil
}
