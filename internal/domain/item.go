package domain

import (
	"fmt"
	"time"
)

// ItemKind is the closed set of item families an inventory can hold
type ItemKind string

const (
	ItemKindSkin    ItemKind = "skin"
	ItemKindSticker ItemKind = "sticker"
)

// Valid reports whether k is a known item kind
func (k ItemKind) Valid() bool {
	switch k {
	case ItemKindSkin, ItemKindSticker:
		return true
	default:
		return false
	}
}

// ItemAttributes is the per-instance data stored alongside an item.
// Skins carry a float in [0,1]; stickers carry nothing.
type ItemAttributes struct {
	Float *float64 `json:"float,omitempty"`
}

// SkinAttributes builds attributes for a skin with the given float
func SkinAttributes(f float64) ItemAttributes {
	return ItemAttributes{Float: &f}
}

// Item is a single owned inventory row
type Item struct {
	ID         int64          `json:"item_id"`
	AccountID  int64          `json:"account_id"`
	Kind       ItemKind       `json:"kind"`
	CatalogRef string         `json:"catalog_ref"`
	Attributes ItemAttributes `json:"attributes"`
	CreatedAt  time.Time      `json:"created_at"`
}

// NewItem describes an item that has not been persisted yet
type NewItem struct {
	Kind       ItemKind       `json:"kind"`
	CatalogRef string         `json:"catalog_ref"`
	Attributes ItemAttributes `json:"attributes"`
}

// Validate checks that the attributes agree with the kind
func (n NewItem) Validate() error {
	switch n.Kind {
	case ItemKindSkin:
		if n.Attributes.Float == nil {
			return fmt.Errorf("skin %q has no float", n.CatalogRef)
		}
		if f := *n.Attributes.Float; f < 0 || f > 1 {
			return fmt.Errorf("skin %q float %v out of range", n.CatalogRef, f)
		}
	case ItemKindSticker:
		if n.Attributes.Float != nil {
			return fmt.Errorf("sticker %q cannot carry a float", n.CatalogRef)
		}
	default:
		return fmt.Errorf("unknown item kind %q", n.Kind)
	}
	if n.CatalogRef == "" {
		return fmt.Errorf("empty catalog reference")
	}
	return nil
}
