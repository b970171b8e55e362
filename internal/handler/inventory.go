package handler

import (
	"net/http"

	"github.com/osse101/SpaceCases_Go/internal/domain"
	"github.com/osse101/SpaceCases_Go/internal/inventory"
	"github.com/osse101/SpaceCases_Go/internal/logger"
)

// HandleGetInventory handles GET /accounts/{id}/inventory
func HandleGetInventory(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := accountIDParam(w, r)
		if !ok {
			return
		}

		inv, err := svc.ListInventory(r.Context(), accountID)
		if err != nil {
			respondServiceError(w, r, "inventory", err)
			return
		}
		respondJSON(w, r, http.StatusOK, inv)
	}
}

// HandleGetItem handles GET /accounts/{id}/items/{itemID}
func HandleGetItem(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := accountIDParam(w, r)
		if !ok {
			return
		}
		itemID, ok := itemIDParam(w, r)
		if !ok {
			return
		}

		found, item, err := svc.GetItem(r.Context(), accountID, itemID)
		if err != nil {
			respondServiceError(w, r, "get item", err)
			return
		}
		if !found {
			respondServiceError(w, r, "get item", domain.ErrAccountNotFound)
			return
		}
		if item == nil {
			respondServiceError(w, r, "get item", domain.ErrItemNotFound)
			return
		}
		respondJSON(w, r, http.StatusOK, item)
	}
}

// HandleSellItem handles POST /accounts/{id}/items/{itemID}/sell
func HandleSellItem(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := accountIDParam(w, r)
		if !ok {
			return
		}
		itemID, ok := itemIDParam(w, r)
		if !ok {
			return
		}

		result, err := svc.SellItem(r.Context(), accountID, itemID)
		if err != nil {
			respondServiceError(w, r, "sell item", err)
			return
		}

		logger.FromContext(r.Context()).Info(LogMsgItemSold,
			"account_id", accountID,
			"item", result.Item.CatalogRef,
			"price", result.Price)
		respondJSON(w, r, http.StatusOK, result)
	}
}
