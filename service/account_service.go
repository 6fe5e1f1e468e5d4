package service

import (
	"context"
	"fmt"
	"strings"

	"wheel/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// accountService implements the AccountService interface
type accountService struct {
	accountRepo AccountRepository
}

// NewAccountService creates a new account service
func NewAccountService(accountRepo AccountRepository) AccountService {
	return &accountService{accountRepo: accountRepo}
}

// Login verifies an email and access code pair. Unknown email and wrong
// access code fail identically so the response leaks nothing about which
// part was wrong.
func (s *accountService) Login(ctx context.Context, email, accessCode string) (*models.Account, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(normalized, "@") || accessCode == "" {
		return nil, NewError(KindInvalidInput, "email and access code are required")
	}

	account, err := s.accountRepo.GetByEmail(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if account == nil {
		return nil, NewError(KindUnauthorized, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.AccessCode), []byte(accessCode)); err != nil {
		return nil, NewError(KindUnauthorized, "invalid credentials")
	}

	return account, nil
}

// ListAccounts returns all accounts sorted by creation time; admin only
func (s *accountService) ListAccounts(ctx context.Context, actorID string) ([]*models.Account, error) {
	if _, err := requireAdmin(ctx, s.accountRepo, actorID); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// ListAdmins returns the admin accounts
func (s *accountService) ListAdmins(ctx context.Context) ([]*models.Account, error) {
	admins, err := s.accountRepo.ListAdmins(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	return admins, nil
}

// UpdateAccountEmail changes an account's email address. The new email is
// trimmed and lowercased and must be unique among all other accounts.
func (s *accountService) UpdateAccountEmail(ctx context.Context, actorID, accountID, newEmail string) (*models.Account, error) {
	if _, err := requireAdmin(ctx, s.accountRepo, actorID); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(accountID)
	if err != nil {
		return nil, NewError(KindInvalidID, "invalid account identifier %q", accountID)
	}

	normalized := strings.ToLower(strings.TrimSpace(newEmail))
	if !strings.Contains(normalized, "@") {
		return nil, NewError(KindInvalidInput, "invalid email address")
	}

	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, NewError(KindNotFound, "account not found")
	}

	holder, err := s.accountRepo.GetByEmailExcluding(ctx, normalized, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if holder != nil {
		return nil, NewError(KindConflict, "the email %s is already in use", normalized)
	}

	account.Email = normalized
	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	return account, nil
}

// UpdateAccountName changes an account's display name
func (s *accountService) UpdateAccountName(ctx context.Context, actorID, accountID, newName string) (*models.Account, error) {
	if _, err := requireAdmin(ctx, s.accountRepo, actorID); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(accountID)
	if err != nil {
		return nil, NewError(KindInvalidID, "invalid account identifier %q", accountID)
	}

	normalized := strings.TrimSpace(newName)
	if normalized == "" {
		return nil, NewError(KindInvalidInput, "the name cannot be empty")
	}

	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, NewError(KindNotFound, "account not found")
	}

	account.Name = normalized
	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	return account, nil
}

// EnsureAdmin creates the seed admin account, or refreshes its name and
// access code when it already exists
func (s *accountService) EnsureAdmin(ctx context.Context, name, email, accessCode string) (*models.Account, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))

	hash, err := bcrypt.GenerateFromPassword([]byte(accessCode), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin access code: %w", err)
	}

	existing, err := s.accountRepo.GetByEmail(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to look up admin account: %w", err)
	}

	if existing != nil {
		existing.Name = name
		existing.AccessCode = string(hash)
		if err := s.accountRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to refresh admin account: %w", err)
		}
		log.WithField("email", normalized).Info("Admin account refreshed")
		return existing, nil
	}

	admin := &models.Account{
		Name:       name,
		Email:      normalized,
		Role:       models.RoleAdmin,
		AccessCode: string(hash),
	}
	if err := s.accountRepo.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("failed to create admin account: %w", err)
	}

	log.WithField("email", normalized).Info("Admin account created")
	return admin, nil
}
