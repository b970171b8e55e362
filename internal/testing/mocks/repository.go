// Package mocks provides testify mocks of the repository interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/SpaceCases_Go/internal/domain"
	"github.com/osse101/SpaceCases_Go/internal/repository"
)

// querierMock carries the methods shared by Store and Tx
type querierMock struct {
	mock.Mock
}

func (m *querierMock) CreateAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *querierMock) GetAccount(ctx context.Context, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *querierMock) DeleteAccount(ctx context.Context, accountID int64) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *querierMock) TryDeduct(ctx context.Context, accountID, amount int64) (bool, error) {
	args := m.Called(ctx, accountID, amount)
	return args.Bool(0), args.Error(1)
}

func (m *querierMock) ChangeBalance(ctx context.Context, accountID, delta int64) (int64, error) {
	args := m.Called(ctx, accountID, delta)
	return args.Get(0).(int64), args.Error(1)
}

func (m *querierMock) AddItem(ctx context.Context, accountID int64, item domain.NewItem) (*domain.Item, error) {
	args := m.Called(ctx, accountID, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *querierMock) RemoveItem(ctx context.Context, accountID, itemID int64) (bool, error) {
	args := m.Called(ctx, accountID, itemID)
	return args.Bool(0), args.Error(1)
}

func (m *querierMock) GetItem(ctx context.Context, accountID, itemID int64) (bool, *domain.Item, error) {
	args := m.Called(ctx, accountID, itemID)
	if args.Get(1) == nil {
		return args.Bool(0), nil, args.Error(2)
	}
	return args.Bool(0), args.Get(1).(*domain.Item), args.Error(2)
}

func (m *querierMock) ReplaceItem(ctx context.Context, accountID, itemID int64, item domain.NewItem) (bool, error) {
	args := m.Called(ctx, accountID, itemID, item)
	return args.Bool(0), args.Error(1)
}

func (m *querierMock) ListItems(ctx context.Context, accountID int64) (*domain.Inventory, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inventory), args.Error(1)
}

func (m *querierMock) CreateSettlement(ctx context.Context, s domain.Settlement) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *querierMock) GetSettlement(ctx context.Context, sessionID uuid.UUID) (*domain.Settlement, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settlement), args.Error(1)
}

func (m *querierMock) ListOpenSettlements(ctx context.Context) ([]domain.Settlement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Settlement), args.Error(1)
}

func (m *querierMock) FinalizeSettlement(ctx context.Context, sessionID uuid.UUID, status domain.SettlementStatus, settledAt time.Time) (bool, error) {
	args := m.Called(ctx, sessionID, status, settledAt)
	return args.Bool(0), args.Error(1)
}

// MockStore implements repository.Store for testing
type MockStore struct {
	querierMock
}

func (m *MockStore) BeginTx(ctx context.Context) (repository.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.Tx), args.Error(1)
}

func (m *MockStore) BeginSerializableTx(ctx context.Context) (repository.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.Tx), args.Error(1)
}

// MockTx implements repository.Tx for testing
type MockTx struct {
	querierMock
}

func (m *MockTx) GetAccountForUpdate(ctx context.Context, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockTx) UpdateClaim(ctx context.Context, accountID int64, streak int, claimedAt time.Time, reward int64) (int64, error) {
	args := m.Called(ctx, accountID, streak, claimedAt, reward)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// ExpectRollback allows any number of deferred rollbacks
func (m *MockTx) ExpectRollback() *MockTx {
	m.On("Rollback", mock.Anything).Return(nil).Maybe()
	return m
}

var (
	_ repository.Store = (*MockStore)(nil)
	_ repository.Tx    = (*MockTx)(nil)
)
