package domain

// CatalogEntry is the market metadata for one concrete item identity.
// A price of 0 means no market data is available.
type CatalogEntry struct {
	Name        string     `json:"name"`
	DisplayName string     `json:"display_name"`
	Kind        ItemKind   `json:"kind"`
	Price       int64      `json:"price"`
	Rarity      Rarity     `json:"rarity"`
	Condition   Condition  `json:"condition,omitempty"`
	Float       FloatRange `json:"float_range"`
	ImageURL    string     `json:"image_url,omitempty"`
}

// HasPrice reports whether market data exists for the entry
func (e CatalogEntry) HasPrice() bool {
	return e.Price > 0
}

// Variant is the overlay applied to a drawn identity
type Variant string

const (
	VariantNone     Variant = ""
	VariantStatTrak Variant = "stattrak"
	VariantSouvenir Variant = "souvenir"
)

// Prefix returns the identifier prefix for the variant
func (v Variant) Prefix() string {
	return string(v)
}
