package postgres

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpaceCases_Go/internal/catalog"
	"github.com/osse101/SpaceCases_Go/internal/domain"
	"github.com/osse101/SpaceCases_Go/internal/drop"
	"github.com/osse101/SpaceCases_Go/internal/settlement"
)

type lastRandom struct{}

func (lastRandom) IntN(n int) int   { return n - 1 }
func (lastRandom) Float64() float64 { return 0.5 }

func testSettlementCatalog(t *testing.T) *catalog.Store {
	t.Helper()
	snap, err := catalog.NewSnapshot(1, time.Now(),
		[]domain.CatalogEntry{{Name: "Sticker | Crown (Foil)", Kind: domain.ItemKindSticker, Price: 250, Rarity: domain.RarityMilSpec}},
		[]domain.Container{{
			Name:  "Crown Capsule",
			Kind:  domain.ContainerKindStickerCapsule,
			Price: 100,
			Tiers: []domain.Tier{{Rarity: domain.RarityMilSpec, Entries: []domain.PoolEntry{{Kind: domain.ItemKindSticker, Name: "Sticker | Crown (Foil)"}}}},
		}})
	require.NoError(t, err)
	store := catalog.NewStore(nil)
	store.Swap(snap)
	return store
}

func newSettlementService(t *testing.T, s *Store, window time.Duration) settlement.Service {
	t.Helper()
	return settlement.NewService(s, testSettlementCatalog(t), drop.NewEngine(lastRandom{}), nil,
		settlement.Config{KeyPrice: settlement.DefaultKeyPrice, Window: window})
}

func balanceOf(t *testing.T, s *Store, id int64) int64 {
	t.Helper()
	acc, err := s.GetAccount(context.Background(), id)
	require.NoError(t, err)
	return acc.Balance
}

func TestSettlementRows(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	createAccount(t, s, 1, 0, 10)

	now := time.Now().UTC().Truncate(time.Microsecond)
	row := domain.Settlement{
		ID:            uuid.New(),
		AccountID:     1,
		ContainerName: "crowncapsule",
		AmountPaid:    100,
		Item:          skin("ak47redlinefieldtested", 0.31),
		SellPrice:     1250,
		Status:        domain.SettlementStatusReserved,
		ExpiresAt:     now.Add(30 * time.Second),
		CreatedAt:     now,
	}
	require.NoError(t, s.CreateSettlement(ctx, row))

	got, err := s.GetSettlement(ctx, row.ID)
	require.NoError(t, err)
	assert.Equal(t, row.Item.CatalogRef, got.Item.CatalogRef)
	require.NotNil(t, got.Item.Attributes.Float)
	assert.InDelta(t, 0.31, *got.Item.Attributes.Float, 1e-12)
	assert.True(t, row.ExpiresAt.Equal(got.ExpiresAt))
	assert.Nil(t, got.SettledAt)

	open, err := s.ListOpenSettlements(ctx)
	require.NoError(t, err)
	require.Len(t, open, 1)

	ok, err := s.FinalizeSettlement(ctx, row.ID, domain.SettlementStatusSold, now)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.FinalizeSettlement(ctx, row.ID, domain.SettlementStatusKept, now)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err = s.GetSettlement(ctx, row.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SettlementStatusSold, got.Status)
	assert.NotNil(t, got.SettledAt)

	open, err = s.ListOpenSettlements(ctx)
	require.NoError(t, err)
	assert.Empty(t, open)

	_, err = s.GetSettlement(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrSettlementNotFound)

	_, err = s.FinalizeSettlement(ctx, row.ID, domain.SettlementStatusReserved, now)
	assert.Error(t, err)
}

func TestFinalizeSettlement_OneWinner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	createAccount(t, s, 1, 0, 10)

	id := uuid.New()
	require.NoError(t, s.CreateSettlement(ctx, domain.Settlement{
		ID: id, AccountID: 1, ContainerName: "crowncapsule", AmountPaid: 100,
		Item: sticker("stickercrownfoil"), SellPrice: 250,
		Status: domain.SettlementStatusReserved, ExpiresAt: time.Now().Add(time.Minute), CreatedAt: time.Now(),
	}))

	var wg sync.WaitGroup
	var winners int32
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := s.FinalizeSettlement(ctx, id, domain.SettlementStatusAutoSold, time.Now())
			assert.NoError(t, err)
			if ok {
				atomic.AddInt32(&winners, 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), winners)
}

func TestSettlement_OpenThenSell(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	createAccount(t, s, 1, 500, 10)
	svc := newSettlementService(t, s, time.Minute)

	session, err := svc.Open(ctx, 1, "crowncapsule")
	require.NoError(t, err)
	assert.Equal(t, int64(400), balanceOf(t, s, 1))

	out, err := svc.Sell(ctx, 1, session.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(650), *out.Balance)
	assert.Equal(t, int64(650), balanceOf(t, s, 1))

	_, err = svc.Keep(ctx, 1, session.ID)
	assert.ErrorIs(t, err, domain.ErrSettlementAlreadyFinalized)
	_, err = svc.Expire(ctx, session.ID)
	assert.ErrorIs(t, err, domain.ErrSettlementAlreadyFinalized)
	assert.Equal(t, int64(650), balanceOf(t, s, 1))
}

func TestSettlement_OpenWithoutFundsChargesNothing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	createAccount(t, s, 1, 99, 10)

	_, err := newSettlementService(t, s, time.Minute).Open(ctx, 1, "crowncapsule")
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Equal(t, int64(99), balanceOf(t, s, 1))

	open, err := s.ListOpenSettlements(ctx)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestSettlement_KeepWithFullInventory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	createAccount(t, s, 1, 100, 1)
	_, err := s.AddItem(ctx, 1, sticker("stickercrownfoil"))
	require.NoError(t, err)

	svc := newSettlementService(t, s, time.Minute)
	session, err := svc.Open(ctx, 1, "crowncapsule")
	require.NoError(t, err)

	_, err = svc.Keep(ctx, 1, session.ID)
	assert.ErrorIs(t, err, domain.ErrInventoryFull)

	got, err := svc.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SettlementStatusReserved, got.Status, "failed keep must not consume the session")

	out, err := svc.Sell(ctx, 1, session.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(250), *out.Balance)
}

func TestSettlement_KeepAfterDeadline(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	createAccount(t, s, 1, 100, 10)

	svc := newSettlementService(t, s, time.Millisecond)
	session, err := svc.Open(ctx, 1, "crowncapsule")
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)

	_, err = svc.Keep(ctx, 1, session.ID)
	assert.ErrorIs(t, err, domain.ErrSettlementExpired)

	out, err := svc.Expire(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SettlementStatusAutoSold, out.Settlement.Status)
	assert.Equal(t, int64(250), balanceOf(t, s, 1))
}

func TestSettlement_ConcurrentFinalizersSettleOnce(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	createAccount(t, s, 1, 100, 10)

	svc := newSettlementService(t, s, time.Minute)
	session, err := svc.Open(ctx, 1, "crowncapsule")
	require.NoError(t, err)

	attempts := []func() error{
		func() error { _, err := svc.Keep(ctx, 1, session.ID); return err },
		func() error { _, err := svc.Sell(ctx, 1, session.ID); return err },
		func() error { _, err := svc.Expire(ctx, session.ID); return err },
	}

	var wg sync.WaitGroup
	var succeeded int32
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func(fn func() error) {
			defer wg.Done()
			err := fn()
			switch {
			case err == nil:
				atomic.AddInt32(&succeeded, 1)
			case errors.Is(err, domain.ErrSettlementAlreadyFinalized):
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(attempts[i%len(attempts)])
	}
	wg.Wait()
	require.Equal(t, int32(1), succeeded)

	got, err := svc.Get(ctx, session.ID)
	require.NoError(t, err)
	inv, err := s.ListItems(ctx, 1)
	require.NoError(t, err)

	switch got.Status {
	case domain.SettlementStatusKept:
		assert.Len(t, inv.Items, 1)
		assert.Equal(t, int64(0), balanceOf(t, s, 1))
	case domain.SettlementStatusSold, domain.SettlementStatusAutoSold:
		assert.Empty(t, inv.Items)
		assert.Equal(t, int64(250), balanceOf(t, s, 1))
	default:
		t.Fatalf("session left in status %s", got.Status)
	}
}

func TestSettlement_CloseAccountCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	createAccount(t, s, 1, 100, 10)

	svc := newSettlementService(t, s, time.Minute)
	session, err := svc.Open(ctx, 1, "crowncapsule")
	require.NoError(t, err)

	require.NoError(t, s.DeleteAccount(ctx, 1))
	_, err = svc.Expire(ctx, session.ID)
	assert.ErrorIs(t, err, domain.ErrSettlementNotFound)
}
