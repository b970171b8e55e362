package domain

import "fmt"

// ContainerKind is the closed set of openable container families
type ContainerKind string

const (
	ContainerKindCase            ContainerKind = "case"
	ContainerKindSouvenirPackage ContainerKind = "souvenir_package"
	ContainerKindStickerCapsule  ContainerKind = "sticker_capsule"
)

// PoolEntry is one possible drop. Skin entries carry a float range and an
// optional phase group; sticker entries carry only a name.
type PoolEntry struct {
	Kind        ItemKind   `json:"kind"`
	Name        string     `json:"name"`
	DisplayName string     `json:"display_name"`
	Float       FloatRange `json:"float_range"`
	PhaseGroup  PhaseGroup `json:"phase_group,omitempty"`
}

// Tier is a rarity bucket within a container
type Tier struct {
	Rarity  Rarity      `json:"rarity"`
	Entries []PoolEntry `json:"entries"`
}

// Container is an immutable openable definition. Tiers are ordered from the
// most common grade to the rarest.
type Container struct {
	Name        string        `json:"name"`
	DisplayName string        `json:"display_name"`
	Kind        ContainerKind `json:"kind"`
	Price       int64         `json:"price"`
	RequiresKey bool          `json:"requires_key"`
	Tiers       []Tier        `json:"tiers"`
	RarePool    []PoolEntry   `json:"rare_pool"`
	ImageURL    string        `json:"image_url,omitempty"`
}

// Cost is the amount reserved to open the container
func (c Container) Cost(keyPrice int64) int64 {
	if c.RequiresKey {
		return c.Price + keyPrice
	}
	return c.Price
}

// Validate enforces the structural rules the drop algorithm depends on.
// Tier order must be strictly ascending in rarity.
func (c Container) Validate() error {
	switch c.Kind {
	case ContainerKindCase, ContainerKindSouvenirPackage, ContainerKindStickerCapsule:
	default:
		return fmt.Errorf("%w: %s: unknown kind %q", ErrInvalidContainer, c.Name, c.Kind)
	}
	if c.Price < 0 {
		return fmt.Errorf("%w: %s: negative price", ErrInvalidContainer, c.Name)
	}
	if len(c.Tiers) == 0 {
		return fmt.Errorf("%w: %s: no tiers", ErrInvalidContainer, c.Name)
	}
	for i, tier := range c.Tiers {
		if tier.Rarity == RarityUnknown {
			return fmt.Errorf("%w: %s: tier %d has no rarity", ErrInvalidContainer, c.Name, i)
		}
		if i > 0 && tier.Rarity <= c.Tiers[i-1].Rarity {
			return fmt.Errorf("%w: %s: tier %s listed after %s", ErrInvalidContainer, c.Name, tier.Rarity, c.Tiers[i-1].Rarity)
		}
		if len(tier.Entries) == 0 {
			return fmt.Errorf("%w: %s: tier %s is empty", ErrInvalidContainer, c.Name, tier.Rarity)
		}
		for _, e := range tier.Entries {
			if err := e.validate(); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalidContainer, c.Name, err)
			}
		}
	}
	for _, e := range c.RarePool {
		if err := e.validate(); err != nil {
			return fmt.Errorf("%w: %s: rare pool: %v", ErrInvalidContainer, c.Name, err)
		}
	}
	return nil
}

func (e PoolEntry) validate() error {
	if e.Name == "" {
		return fmt.Errorf("entry without name")
	}
	switch e.Kind {
	case ItemKindSkin:
		if e.Float.Min < 0 || e.Float.Max > 1 || e.Float.Min > e.Float.Max {
			return fmt.Errorf("entry %s has float range [%v,%v]", e.Name, e.Float.Min, e.Float.Max)
		}
		if !e.PhaseGroup.Valid() {
			return fmt.Errorf("entry %s has unknown phase group %q", e.Name, e.PhaseGroup)
		}
	case ItemKindSticker:
		if e.PhaseGroup != PhaseGroupNone {
			return fmt.Errorf("sticker entry %s cannot have a phase group", e.Name)
		}
	default:
		return fmt.Errorf("entry %s has unknown kind %q", e.Name, e.Kind)
	}
	return nil
}
