package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpaceCases_Go/internal/catalog"
	"github.com/osse101/SpaceCases_Go/internal/domain"
	"github.com/osse101/SpaceCases_Go/internal/inventory"
	"github.com/osse101/SpaceCases_Go/internal/settlement"
	"github.com/osse101/SpaceCases_Go/internal/upgrade"
)

// MockDBPool mocks the database.Pool interface
type MockDBPool struct {
	mock.Mock
}

func (m *MockDBPool) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDBPool) Close() {
	m.Called()
}

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Register(ctx context.Context, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) Close(ctx context.Context, accountID int64) error {
	return m.Called(ctx, accountID).Error(0)
}

func (m *MockLedgerService) Balance(ctx context.Context, accountID int64) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerService) TryDeduct(ctx context.Context, accountID, amount int64) (bool, error) {
	args := m.Called(ctx, accountID, amount)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerService) ChangeBalance(ctx context.Context, accountID, delta int64) (int64, error) {
	args := m.Called(ctx, accountID, delta)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerService) Transfer(ctx context.Context, senderID, recipientID, amount int64) (*domain.TransferResult, error) {
	args := m.Called(ctx, senderID, recipientID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferResult), args.Error(1)
}

func (m *MockLedgerService) Claim(ctx context.Context, accountID int64) (*domain.ClaimResult, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClaimResult), args.Error(1)
}

type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) AddItem(ctx context.Context, accountID int64, item domain.NewItem) (*domain.Item, error) {
	args := m.Called(ctx, accountID, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockInventoryService) RemoveItem(ctx context.Context, accountID, itemID int64) (bool, error) {
	args := m.Called(ctx, accountID, itemID)
	return args.Bool(0), args.Error(1)
}

func (m *MockInventoryService) GetItem(ctx context.Context, accountID, itemID int64) (bool, *domain.Item, error) {
	args := m.Called(ctx, accountID, itemID)
	item, _ := args.Get(1).(*domain.Item)
	return args.Bool(0), item, args.Error(2)
}

func (m *MockInventoryService) ReplaceItem(ctx context.Context, accountID, itemID int64, item domain.NewItem) (bool, error) {
	args := m.Called(ctx, accountID, itemID, item)
	return args.Bool(0), args.Error(1)
}

func (m *MockInventoryService) ListInventory(ctx context.Context, accountID int64) (*domain.Inventory, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inventory), args.Error(1)
}

func (m *MockInventoryService) SellItem(ctx context.Context, accountID, itemID int64) (*inventory.SellResult, error) {
	args := m.Called(ctx, accountID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.SellResult), args.Error(1)
}

type MockSettlementService struct {
	mock.Mock
}

func (m *MockSettlementService) Open(ctx context.Context, accountID int64, containerName string) (*settlement.Session, error) {
	args := m.Called(ctx, accountID, containerName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settlement.Session), args.Error(1)
}

func (m *MockSettlementService) Keep(ctx context.Context, accountID int64, sessionID uuid.UUID) (*domain.SettlementOutcome, error) {
	args := m.Called(ctx, accountID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementOutcome), args.Error(1)
}

func (m *MockSettlementService) Sell(ctx context.Context, accountID int64, sessionID uuid.UUID) (*domain.SettlementOutcome, error) {
	args := m.Called(ctx, accountID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementOutcome), args.Error(1)
}

func (m *MockSettlementService) Expire(ctx context.Context, sessionID uuid.UUID) (*domain.SettlementOutcome, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementOutcome), args.Error(1)
}

func (m *MockSettlementService) Get(ctx context.Context, sessionID uuid.UUID) (*domain.Settlement, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settlement), args.Error(1)
}

func (m *MockSettlementService) ListOpen(ctx context.Context) ([]domain.Settlement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Settlement), args.Error(1)
}

type MockUpgradeService struct {
	mock.Mock
}

func (m *MockUpgradeService) Quote(ctx context.Context, accountID, itemID int64, target string) (*upgrade.Quote, error) {
	args := m.Called(ctx, accountID, itemID, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*upgrade.Quote), args.Error(1)
}

func (m *MockUpgradeService) Execute(ctx context.Context, accountID, itemID int64, target string) (*upgrade.Result, error) {
	args := m.Called(ctx, accountID, itemID, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*upgrade.Result), args.Error(1)
}

// serve routes one request through a chi router so URL params resolve
func serve(pattern, method, target, body string, h http.HandlerFunc) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Method(method, pattern, h)

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func testSnapshot(t *testing.T) *catalog.Store {
	t.Helper()
	snap, err := catalog.NewSnapshot(3, time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
		[]domain.CatalogEntry{
			{Name: "sticker | crown (foil)", DisplayName: "Sticker | Crown (Foil)", Kind: domain.ItemKindSticker, Price: 400},
		},
		[]domain.Container{
			{
				Name: "crown capsule", DisplayName: "Crown Capsule", Kind: domain.ContainerKindStickerCapsule,
				Price: 100,
				Tiers: []domain.Tier{{
					Rarity:  domain.RarityMilSpec,
					Entries: []domain.PoolEntry{{Kind: domain.ItemKindSticker, Name: "sticker | crown (foil)"}},
				}},
			},
			{
				Name: "chroma case", DisplayName: "Chroma Case", Kind: domain.ContainerKindCase,
				Price: 50, RequiresKey: true,
				Tiers: []domain.Tier{{
					Rarity:  domain.RarityMilSpec,
					Entries: []domain.PoolEntry{{Kind: domain.ItemKindSticker, Name: "sticker | crown (foil)"}},
				}},
			},
		})
	require.NoError(t, err)
	store := catalog.NewStore(nil)
	store.Swap(snap)
	return store
}
