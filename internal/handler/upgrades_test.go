package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpaceCases_Go/internal/domain"
	"github.com/osse101/SpaceCases_Go/internal/upgrade"
)

func testQuote() upgrade.Quote {
	return upgrade.Quote{
		Item:   domain.Item{ID: 11, AccountID: 3, Kind: domain.ItemKindSkin, CatalogRef: "ak47redlineft"},
		Start:  domain.CatalogEntry{Name: "ak47redlineft", Price: 100, Rarity: domain.RarityClassified},
		Target: domain.CatalogEntry{Name: "awpasiimovft", Price: 1000, Rarity: domain.RarityCovert},
		Odds:   upgrade.Odds{From: 100, To: 1000, Multiplier: 10, Chance: 0.01},
	}
}

func TestHandleUpgradeQuote(t *testing.T) {
	InitValidator()

	t.Run("success", func(t *testing.T) {
		svc := &MockUpgradeService{}
		q := testQuote()
		svc.On("Quote", mock.Anything, int64(3), int64(11), "AWP | Asiimov (Field-Tested)").Return(&q, nil)

		w := serve("/upgrades/quote", http.MethodPost, "/upgrades/quote",
			`{"account_id":3,"item_id":11,"target":"AWP | Asiimov (Field-Tested)"}`, HandleUpgradeQuote(svc))

		require.Equal(t, http.StatusOK, w.Code)
		var got upgrade.Quote
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.InDelta(t, 0.01, got.Odds.Chance, 1e-9)
	})

	t.Run("not allowed", func(t *testing.T) {
		svc := &MockUpgradeService{}
		svc.On("Quote", mock.Anything, int64(3), int64(11), "P250 | Sand Dune").Return(nil, domain.ErrUpgradeNotAllowed)

		w := serve("/upgrades/quote", http.MethodPost, "/upgrades/quote",
			`{"account_id":3,"item_id":11,"target":"P250 | Sand Dune"}`, HandleUpgradeQuote(svc))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), CodeUpgradeNotAllowed)
	})
}

func TestHandleUpgradeExecute(t *testing.T) {
	InitValidator()

	t.Run("lost roll is still a 200", func(t *testing.T) {
		svc := &MockUpgradeService{}
		svc.On("Execute", mock.Anything, int64(3), int64(11), "awpasiimovft").Return(&upgrade.Result{
			Quote: testQuote(), Success: false, Roll: 0.73,
		}, nil)

		w := serve("/upgrades/execute", http.MethodPost, "/upgrades/execute",
			`{"account_id":3,"item_id":11,"target":"awpasiimovft"}`, HandleUpgradeExecute(svc))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"success":false`)
		assert.NotContains(t, w.Body.String(), `"item":{"kind"`)
	})

	t.Run("item vanished", func(t *testing.T) {
		svc := &MockUpgradeService{}
		svc.On("Execute", mock.Anything, int64(3), int64(11), "awpasiimovft").Return(nil, domain.ErrItemNotFound)

		w := serve("/upgrades/execute", http.MethodPost, "/upgrades/execute",
			`{"account_id":3,"item_id":11,"target":"awpasiimovft"}`, HandleUpgradeExecute(svc))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), CodeItemNotFound)
	})
}
