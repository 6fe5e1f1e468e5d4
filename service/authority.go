package service

import (
	"context"
	"fmt"

	"wheel/models"

	"github.com/google/uuid"
)

// requireAdmin resolves the acting account and verifies admin authority.
// Every mutating operation goes through this check before touching state.
func requireAdmin(ctx context.Context, accounts AccountRepository, actorID string) (*models.Account, error) {
	id, err := uuid.Parse(actorID)
	if err != nil {
		return nil, NewError(KindInvalidID, "invalid admin identifier %q", actorID)
	}

	account, err := accounts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve acting account: %w", err)
	}
	if account == nil || !account.IsAdmin() {
		return nil, NewError(KindUnauthorized, "only an administrator may perform this action")
	}

	return account, nil
}
