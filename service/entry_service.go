package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"wheel/config"
	"wheel/events"
	"wheel/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// entryService implements the EntryService interface
type entryService struct {
	entryRepo   EntryRepository
	accountRepo AccountRepository
	publisher   EventPublisher
	cfg         *config.Config
}

// NewEntryService creates a new entry service
func NewEntryService(entryRepo EntryRepository, accountRepo AccountRepository, publisher EventPublisher, cfg *config.Config) EntryService {
	return &entryService{
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
		publisher:   publisher,
		cfg:         cfg,
	}
}

// AddEntries inserts the given labels as active entries.
//
// Labels are trimmed, empty strings dropped and duplicates collapsed while
// preserving first-seen order. Labels held by ANY existing entry are skipped,
// including inactive ones: a deactivated label stays reserved forever.
func (s *entryService) AddEntries(ctx context.Context, actorID string, labels []string) (*models.AddEntriesResult, error) {
	admin, err := requireAdmin(ctx, s.accountRepo, actorID)
	if err != nil {
		return nil, err
	}

	normalized := normalizeLabels(labels)
	if len(normalized) == 0 {
		return nil, NewError(KindInvalidInput, "no valid label provided")
	}

	existing, err := s.entryRepo.FindByLabels(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing labels: %w", err)
	}

	existingLabels := make(map[string]bool, len(existing))
	for _, entry := range existing {
		existingLabels[entry.Label] = true
	}

	var toInsert []*models.Entry
	for _, label := range normalized {
		if existingLabels[label] {
			continue
		}
		toInsert = append(toInsert, &models.Entry{
			Label:     label,
			IsActive:  true,
			CreatedBy: &admin.ID,
		})
	}

	if len(toInsert) == 0 {
		return nil, NewError(KindConflict, "all provided labels already exist")
	}

	if err := s.entryRepo.CreateBatch(ctx, toInsert); err != nil {
		return nil, fmt.Errorf("failed to insert entries: %w", err)
	}

	// Provisioning accounts is a best-effort side effect: a failed account
	// never rolls back the entry insert.
	accountsCreated := s.provisionAccounts(ctx, toInsert)

	s.publisher.Publish(ctx, events.EntriesAddedEvent{
		Labels:          labelsOf(toInsert),
		AddedBy:         admin.ID,
		AccountsCreated: accountsCreated,
	})

	return &models.AddEntriesResult{
		Inserted:        len(toInsert),
		AccountsCreated: accountsCreated,
	}, nil
}

// provisionAccounts creates a user account per inserted label when no account
// with the derived email exists yet. Returns the number of accounts created.
func (s *entryService) provisionAccounts(ctx context.Context, entries []*models.Entry) int {
	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.DefaultAccessCode), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Error("Failed to hash default access code, skipping account provisioning")
		return 0
	}

	created := 0
	for _, entry := range entries {
		email := deriveEmail(entry.Label, s.cfg.AccountEmailDomain)

		existing, err := s.accountRepo.GetByEmail(ctx, email)
		if err != nil {
			log.WithError(err).WithField("email", email).Warn("Failed to check existing account, skipping")
			continue
		}
		if existing != nil {
			continue
		}

		account := &models.Account{
			Name:       entry.Label,
			Email:      email,
			Role:       models.RoleUser,
			AccessCode: string(hash),
		}
		if err := s.accountRepo.Create(ctx, account); err != nil {
			log.WithError(err).WithField("email", email).Warn("Failed to provision account, skipping")
			continue
		}

		created++
		s.publisher.Publish(ctx, events.AccountProvisionedEvent{
			AccountID: account.ID,
			Email:     email,
		})
	}

	return created
}

// RenameEntry changes an entry's label in place. The new label must be unique
// among all other entries; renaming an entry to its own label succeeds.
func (s *entryService) RenameEntry(ctx context.Context, actorID, entryID, newLabel string) (*models.Entry, error) {
	if _, err := requireAdmin(ctx, s.accountRepo, actorID); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(entryID)
	if err != nil {
		return nil, NewError(KindInvalidID, "invalid entry identifier %q", entryID)
	}

	normalized := strings.TrimSpace(newLabel)
	if normalized == "" {
		return nil, NewError(KindInvalidInput, "the new label cannot be empty")
	}

	entry, err := s.entryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	if entry == nil {
		return nil, NewError(KindNotFound, "entry not found")
	}

	holder, err := s.entryRepo.GetByLabelExcluding(ctx, normalized, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check label uniqueness: %w", err)
	}
	if holder != nil {
		return nil, NewError(KindConflict, "the label %q already exists on the wheel", normalized)
	}

	oldLabel := entry.Label
	entry.Label = normalized
	if err := s.entryRepo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}

	s.publisher.Publish(ctx, events.EntryRenamedEvent{
		EntryID:  entry.ID,
		OldLabel: oldLabel,
		NewLabel: normalized,
	})

	return entry, nil
}

// DeactivateEntry soft-deletes an entry. The entry row is never removed, so
// its label stays reserved; deactivating twice is a conflict.
func (s *entryService) DeactivateEntry(ctx context.Context, actorID, entryID string) (*models.Entry, error) {
	if _, err := requireAdmin(ctx, s.accountRepo, actorID); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(entryID)
	if err != nil {
		return nil, NewError(KindInvalidID, "invalid entry identifier %q", entryID)
	}

	entry, err := s.entryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	if entry == nil {
		return nil, NewError(KindNotFound, "entry not found")
	}
	if !entry.IsActive {
		return nil, NewError(KindConflict, "the entry is already inactive")
	}

	entry.IsActive = false
	if err := s.entryRepo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}

	s.publisher.Publish(ctx, events.EntryDeactivatedEvent{
		EntryID: entry.ID,
		Label:   entry.Label,
	})

	return entry, nil
}

// ListActiveEntries returns the active pool sorted by label
func (s *entryService) ListActiveEntries(ctx context.Context) ([]*models.Entry, error) {
	entries, err := s.entryRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active entries: %w", err)
	}
	return entries, nil
}

// normalizeLabels trims labels, drops empties and collapses duplicates
// while preserving first-seen order. Comparison is case-sensitive.
func normalizeLabels(labels []string) []string {
	seen := make(map[string]bool, len(labels))
	normalized := make([]string, 0, len(labels))
	for _, label := range labels {
		trimmed := strings.TrimSpace(label)
		if trimmed == "" || seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		normalized = append(normalized, trimmed)
	}
	return normalized
}

// deriveEmail builds the account email for a label: whitespace runs become
// dots, the result is lowercased and suffixed with the configured domain.
func deriveEmail(label, domain string) string {
	local := strings.ToLower(whitespaceRe.ReplaceAllString(label, "."))
	return local + "@" + domain
}

func labelsOf(entries []*models.Entry) []string {
	labels := make([]string, 0, len(entries))
	for _, entry := range entries {
		labels = append(labels, entry.Label)
	}
	return labels
}
