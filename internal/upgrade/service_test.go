package upgrade

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpaceCases_Go/internal/catalog"
	"github.com/osse101/SpaceCases_Go/internal/domain"
	"github.com/osse101/SpaceCases_Go/internal/testing/mocks"
)

// floats returns its values from Float64 in order
type floats struct {
	t      *testing.T
	values []float64
}

func (f *floats) IntN(int) int {
	f.t.Fatal("unexpected IntN")
	return 0
}

func (f *floats) Float64() float64 {
	require.NotEmpty(f.t, f.values, "random sequence exhausted")
	v := f.values[0]
	f.values = f.values[1:]
	return v
}

func testCatalog(t *testing.T) *catalog.Store {
	t.Helper()
	snap, err := catalog.NewSnapshot(1, time.Now(), []domain.CatalogEntry{
		{Name: "AK-47 | Redline (Field-Tested)", Kind: domain.ItemKindSkin, Price: 100, Rarity: domain.RarityClassified,
			Condition: domain.ConditionFieldTested, Float: domain.FloatRange{Min: 0.1, Max: 0.7}},
		{Name: "AWP | Asiimov (Field-Tested)", Kind: domain.ItemKindSkin, Price: 1000, Rarity: domain.RarityCovert,
			Condition: domain.ConditionFieldTested, Float: domain.FloatRange{Min: 0.18, Max: 1}},
		{Name: "Sticker | Crown (Foil)", Kind: domain.ItemKindSticker, Price: 400, Rarity: domain.RarityClassified},
		{Name: "P250 | Sand Dune (Battle-Scarred)", Kind: domain.ItemKindSkin, Price: 0, Rarity: domain.RarityConsumer,
			Condition: domain.ConditionBattleScarred, Float: domain.FloatRange{Min: 0, Max: 1}},
	}, nil)
	require.NoError(t, err)
	store := catalog.NewStore(nil)
	store.Swap(snap)
	return store
}

func redline(id int64) *domain.Item {
	return &domain.Item{ID: id, AccountID: 1, Kind: domain.ItemKindSkin, CatalogRef: "ak47redlinefieldtested", Attributes: domain.SkinAttributes(0.25)}
}

func TestQuote(t *testing.T) {
	ctx := context.Background()
	store := &mocks.MockStore{}
	store.On("GetItem", ctx, int64(1), int64(10)).Return(true, redline(10), nil)

	q, err := NewService(store, testCatalog(t), &floats{t: t}).Quote(ctx, 1, 10, "AWP | Asiimov (Field-Tested)")
	require.NoError(t, err)
	assert.Equal(t, "awpasiimovfieldtested", q.Target.Name)
	assert.InDelta(t, 0.01, q.Odds.Chance, 1e-9)
	assert.Equal(t, int64(10), q.Item.ID)
}

func TestQuote_Errors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		found   bool
		item    *domain.Item
		target  string
		wantErr error
	}{
		{name: "account missing", found: false, target: "awpasiimovfieldtested", wantErr: domain.ErrAccountNotFound},
		{name: "not owned", found: true, target: "awpasiimovfieldtested", wantErr: domain.ErrItemNotFound},
		{name: "unknown target", found: true, item: redline(10), target: "awpdragonlore", wantErr: domain.ErrCatalogEntryMissing},
		{name: "start not in catalog", found: true, item: &domain.Item{ID: 10, Kind: domain.ItemKindSticker, CatalogRef: "gone"}, target: "awpasiimovfieldtested", wantErr: domain.ErrCatalogEntryMissing},
		{name: "downgrade", found: true, item: redline(10), target: "p250sanddunebattlescarred", wantErr: domain.ErrUpgradeNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mocks.MockStore{}
			store.On("GetItem", ctx, int64(1), int64(10)).Return(tt.found, tt.item, nil)

			_, err := NewService(store, testCatalog(t), &floats{t: t}).Quote(ctx, 1, 10, tt.target)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestQuote_CatalogUnavailable(t *testing.T) {
	_, err := NewService(&mocks.MockStore{}, catalog.NewStore(nil), &floats{t: t}).Quote(context.Background(), 1, 10, "x")
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}

func TestExecute_Success(t *testing.T) {
	ctx := context.Background()
	store := &mocks.MockStore{}
	store.On("GetItem", ctx, int64(1), int64(10)).Return(true, redline(10), nil)
	store.On("ReplaceItem", ctx, int64(1), int64(10), mock.MatchedBy(func(n domain.NewItem) bool {
		return n.CatalogRef == "awpasiimovfieldtested" && n.Attributes.Float != nil
	})).Return(true, nil)

	// roll under 0.01, then the float draw inside [0.18, 0.38]
	rnd := &floats{t: t, values: []float64{0.005, 0.5}}
	res, err := NewService(store, testCatalog(t), rnd).Execute(ctx, 1, 10, "awpasiimovfieldtested")
	require.NoError(t, err)
	assert.True(t, res.Success)
	require.NotNil(t, res.Item)
	assert.InDelta(t, 0.28, *res.Item.Attributes.Float, 1e-9)
	assert.Equal(t, domain.ConditionFieldTested, domain.ConditionForFloat(*res.Item.Attributes.Float))
	store.AssertExpectations(t)
}

func TestExecute_StickerTarget(t *testing.T) {
	ctx := context.Background()
	store := &mocks.MockStore{}
	store.On("GetItem", ctx, int64(1), int64(10)).Return(true, redline(10), nil)
	store.On("ReplaceItem", ctx, int64(1), int64(10), domain.NewItem{Kind: domain.ItemKindSticker, CatalogRef: "stickercrownfoil"}).Return(true, nil)

	res, err := NewService(store, testCatalog(t), &floats{t: t, values: []float64{0}}).Execute(ctx, 1, 10, "stickercrownfoil")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Nil(t, res.Item.Attributes.Float)
}

func TestExecute_Failure(t *testing.T) {
	ctx := context.Background()
	store := &mocks.MockStore{}
	store.On("GetItem", ctx, int64(1), int64(10)).Return(true, redline(10), nil)
	store.On("RemoveItem", ctx, int64(1), int64(10)).Return(true, nil)

	res, err := NewService(store, testCatalog(t), &floats{t: t, values: []float64{0.01}}).Execute(ctx, 1, 10, "awpasiimovfieldtested")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Nil(t, res.Item)
	store.AssertNotCalled(t, "ReplaceItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_ItemVanished(t *testing.T) {
	ctx := context.Background()

	t.Run("before replace", func(t *testing.T) {
		store := &mocks.MockStore{}
		store.On("GetItem", ctx, int64(1), int64(10)).Return(true, redline(10), nil)
		store.On("ReplaceItem", ctx, int64(1), int64(10), mock.Anything).Return(false, nil)

		_, err := NewService(store, testCatalog(t), &floats{t: t, values: []float64{0, 0.5}}).Execute(ctx, 1, 10, "awpasiimovfieldtested")
		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})

	t.Run("before remove", func(t *testing.T) {
		store := &mocks.MockStore{}
		store.On("GetItem", ctx, int64(1), int64(10)).Return(true, redline(10), nil)
		store.On("RemoveItem", ctx, int64(1), int64(10)).Return(false, nil)

		_, err := NewService(store, testCatalog(t), &floats{t: t, values: []float64{0.9}}).Execute(ctx, 1, 10, "awpasiimovfieldtested")
		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})
}

func TestExecute_RejectedDoesNotRoll(t *testing.T) {
	ctx := context.Background()
	store := &mocks.MockStore{}
	store.On("GetItem", ctx, int64(1), int64(10)).Return(true, redline(10), nil)

	_, err := NewService(store, testCatalog(t), &floats{t: t}).Execute(ctx, 1, 10, "p250sanddunebattlescarred")
	assert.ErrorIs(t, err, domain.ErrUpgradeNotAllowed)
	store.AssertNotCalled(t, "RemoveItem", mock.Anything, mock.Anything, mock.Anything)
}
