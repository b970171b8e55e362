package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/osse101/SpaceCases_Go/internal/catalog"
	"github.com/osse101/SpaceCases_Go/internal/domain"
	"github.com/osse101/SpaceCases_Go/internal/naming"
)

const (
	defaultSuggestLimit = 10
	maxSuggestLimit     = 50
)

// ContainerSummary is the listing view of one container
type ContainerSummary struct {
	Name        string               `json:"name"`
	DisplayName string               `json:"display_name"`
	Kind        domain.ContainerKind `json:"kind"`
	Price       int64                `json:"price"`
	RequiresKey bool                 `json:"requires_key"`
	Cost        int64                `json:"cost"`
	ImageURL    string               `json:"image_url,omitempty"`
}

// ContainerListResponse lists containers of the active catalog version
type ContainerListResponse struct {
	Version    uint64             `json:"version"`
	LoadedAt   time.Time          `json:"loaded_at"`
	Containers []ContainerSummary `json:"containers"`
}

// SuggestResponse carries display names matching a prefix
type SuggestResponse struct {
	Query   string   `json:"query"`
	Matches []string `json:"matches"`
}

// HandleListContainers handles GET /catalog/containers. Cost includes the
// key for containers that need one.
func HandleListContainers(provider catalog.Provider, keyPrice int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := provider.Current()
		if err != nil {
			respondServiceError(w, r, "list containers", err)
			return
		}

		containers := snap.Containers()
		out := make([]ContainerSummary, 0, len(containers))
		for _, c := range containers {
			out = append(out, ContainerSummary{
				Name:        c.Name,
				DisplayName: c.DisplayName,
				Kind:        c.Kind,
				Price:       c.Price,
				RequiresKey: c.RequiresKey,
				Cost:        c.Cost(keyPrice),
				ImageURL:    c.ImageURL,
			})
		}

		respondJSON(w, r, http.StatusOK, ContainerListResponse{
			Version:    snap.Version,
			LoadedAt:   snap.LoadedAt,
			Containers: out,
		})
	}
}

// HandleSuggest handles GET /catalog/suggest?q=...&limit=...
func HandleSuggest(resolver naming.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		if q == "" {
			respondError(w, r, http.StatusBadRequest, CodeInvalidRequest, fmt.Sprintf(ErrMsgMissingQueryParam, "q"))
			return
		}
		limit, ok := queryLimit(w, r, defaultSuggestLimit, maxSuggestLimit)
		if !ok {
			return
		}

		matches := resolver.Suggest(q, limit)
		if matches == nil {
			matches = []string{}
		}
		respondJSON(w, r, http.StatusOK, SuggestResponse{Query: q, Matches: matches})
	}
}
