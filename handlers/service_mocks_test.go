package handlers

import (
	"context"

	"wheel/models"

	"github.com/stretchr/testify/mock"
)

type mockEntryService struct {
	mock.Mock
}

func (m *mockEntryService) AddEntries(ctx context.Context, actorID string, labels []string) (*models.AddEntriesResult, error) {
	args := m.Called(ctx, actorID, labels)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AddEntriesResult), args.Error(1)
}

func (m *mockEntryService) RenameEntry(ctx context.Context, actorID, entryID, newLabel string) (*models.Entry, error) {
	args := m.Called(ctx, actorID, entryID, newLabel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Entry), args.Error(1)
}

func (m *mockEntryService) DeactivateEntry(ctx context.Context, actorID, entryID string) (*models.Entry, error) {
	args := m.Called(ctx, actorID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Entry), args.Error(1)
}

func (m *mockEntryService) ListActiveEntries(ctx context.Context) ([]*models.Entry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Entry), args.Error(1)
}

type mockDrawService struct {
	mock.Mock
}

func (m *mockDrawService) PerformDraw(ctx context.Context, actorID string) (*models.Draw, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Draw), args.Error(1)
}

func (m *mockDrawService) GetLastDraw(ctx context.Context) (*models.DrawDetail, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DrawDetail), args.Error(1)
}

type mockAccountService struct {
	mock.Mock
}

func (m *mockAccountService) Login(ctx context.Context, email, accessCode string) (*models.Account, error) {
	args := m.Called(ctx, email, accessCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *mockAccountService) ListAccounts(ctx context.Context, actorID string) ([]*models.Account, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Account), args.Error(1)
}

func (m *mockAccountService) ListAdmins(ctx context.Context) ([]*models.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Account), args.Error(1)
}

func (m *mockAccountService) UpdateAccountEmail(ctx context.Context, actorID, accountID, newEmail string) (*models.Account, error) {
	args := m.Called(ctx, actorID, accountID, newEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *mockAccountService) UpdateAccountName(ctx context.Context, actorID, accountID, newName string) (*models.Account, error) {
	args := m.Called(ctx, actorID, accountID, newName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *mockAccountService) EnsureAdmin(ctx context.Context, name, email, accessCode string) (*models.Account, error) {
	args := m.Called(ctx, name, email, accessCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}
