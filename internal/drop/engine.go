package drop

import (
	"fmt"

	"github.com/osse101/SpaceCases_Go/internal/domain"
	"github.com/osse101/SpaceCases_Go/internal/naming"
)

// Random is a uniform randomness source. IntN returns a value in [0,n) and
// Float64 returns a value in [0,1).
type Random interface {
	IntN(n int) int
	Float64() float64
}

// Drop is a fully resolved draw ready for settlement
type Drop struct {
	CatalogRef string           `json:"catalog_ref"`
	Kind       domain.ItemKind  `json:"kind"`
	Float      *float64         `json:"float,omitempty"`
	Condition  domain.Condition `json:"condition,omitempty"`
	Phase      string           `json:"phase,omitempty"`
	Variant    domain.Variant   `json:"variant,omitempty"`
	Rarity     domain.Rarity    `json:"rarity"`
	Rare       bool             `json:"rare"`
}

// NewItem converts the drop into an insertable item
func (d Drop) NewItem() domain.NewItem {
	attrs := domain.ItemAttributes{}
	if d.Float != nil {
		attrs = domain.SkinAttributes(*d.Float)
	}
	return domain.NewItem{Kind: d.Kind, CatalogRef: d.CatalogRef, Attributes: attrs}
}

// Engine draws items from container definitions. It performs no I/O; the
// same container and random sequence always yield the same drop.
type Engine struct {
	rnd Random
}

// NewEngine creates an engine over rnd
func NewEngine(rnd Random) *Engine {
	return &Engine{rnd: rnd}
}

// Open draws one item from c. Draw order is fixed: tier, entry, float
// bucket, float resample, phase, variant.
func (e *Engine) Open(c domain.Container) (Drop, error) {
	entry, rarity, rare, err := e.selectEntry(c)
	if err != nil {
		return Drop{}, err
	}

	d := Drop{Kind: entry.Kind, Rarity: rarity, Rare: rare}

	switch entry.Kind {
	case domain.ItemKindSkin:
		f := e.drawFloat(entry.Float)
		d.Float = &f
		d.Condition = domain.ConditionForFloat(f)
		if phases := entry.PhaseGroup.Phases(); len(phases) > 0 {
			d.Phase = phases[e.rnd.IntN(len(phases))]
		}
		d.Variant = e.variantFor(c.Kind)
		d.CatalogRef = naming.SkinIdentity(entry.Name, d.Phase, d.Condition, d.Variant)
	case domain.ItemKindSticker:
		d.Variant = e.variantFor(c.Kind)
		d.CatalogRef = naming.GenericIdentity(entry.Name, d.Variant)
	default:
		return Drop{}, fmt.Errorf("%w: %s: entry %s has unknown kind %q", domain.ErrInvalidContainer, c.Name, entry.Name, entry.Kind)
	}

	return d, nil
}

type tierWeight struct {
	index      int
	cumulative int64
}

// weightTable builds the cumulative table over tiers in reverse rarity
// order: rarest first with weight 1+5, the most common last with the
// largest weight.
func weightTable(tiers []domain.Tier) ([]tierWeight, int64) {
	table := make([]tierWeight, 0, len(tiers))
	var cum, pow int64 = 0, 1
	for i := len(tiers) - 1; i >= 0; i-- {
		pow *= TierWeightBase
		cum += 1 + pow
		table = append(table, tierWeight{index: i, cumulative: cum})
	}
	return table, cum
}

func (e *Engine) selectEntry(c domain.Container) (domain.PoolEntry, domain.Rarity, bool, error) {
	if len(c.Tiers) == 0 {
		return domain.PoolEntry{}, domain.RarityUnknown, false, fmt.Errorf("%w: %s: no tiers", domain.ErrInvalidContainer, c.Name)
	}
	if len(c.Tiers) > MaxTiers {
		return domain.PoolEntry{}, domain.RarityUnknown, false, fmt.Errorf("%w: %s: %d tiers exceeds %d", domain.ErrInvalidContainer, c.Name, len(c.Tiers), MaxTiers)
	}

	table, total := weightTable(c.Tiers)
	draw := int64(e.rnd.IntN(int(total))) + 1

	// An empty rare pool lets the draw fall through to the rarest tier.
	if draw == RareDraw && len(c.RarePool) > 0 {
		return c.RarePool[e.rnd.IntN(len(c.RarePool))], domain.RarityUnknown, true, nil
	}

	for _, tw := range table {
		if draw <= tw.cumulative {
			tier := c.Tiers[tw.index]
			if len(tier.Entries) == 0 {
				return domain.PoolEntry{}, domain.RarityUnknown, false, fmt.Errorf("%w: %s: tier %s is empty", domain.ErrInvalidContainer, c.Name, tier.Rarity)
			}
			return tier.Entries[e.rnd.IntN(len(tier.Entries))], tier.Rarity, false, nil
		}
	}

	// unreachable: draw never exceeds total
	return domain.PoolEntry{}, domain.RarityUnknown, false, fmt.Errorf("draw %d above weight total %d", draw, total)
}

// drawFloat picks a wear bucket with one draw in (0,1], resamples inside
// the bucket, then interpolates into the entry's own float range
func (e *Engine) drawFloat(r domain.FloatRange) float64 {
	u := 1 - e.rnd.Float64()
	b := floatBuckets[len(floatBuckets)-1]
	for _, fb := range floatBuckets {
		if u <= fb.upper {
			b = fb
			break
		}
	}
	resampled := b.lo + e.rnd.Float64()*(b.hi-b.lo)
	return resampled*(r.Max-r.Min) + r.Min
}

func (e *Engine) variantFor(kind domain.ContainerKind) domain.Variant {
	switch kind {
	case domain.ContainerKindCase:
		if e.rnd.IntN(StatTrakOdds) == 0 {
			return domain.VariantStatTrak
		}
		return domain.VariantNone
	case domain.ContainerKindSouvenirPackage:
		return domain.VariantSouvenir
	case domain.ContainerKindStickerCapsule:
		return domain.VariantNone
	default:
		return domain.VariantNone
	}
}

// FloatForCondition draws a float uniformly inside the overlap of the
// condition's wear range and the skin's own range. When the two do not
// overlap the skin range alone is used.
func FloatForCondition(rnd Random, cond domain.Condition, skin domain.FloatRange) (float64, error) {
	wear, err := cond.Range()
	if err != nil {
		return 0, err
	}
	r, ok := wear.Intersect(skin)
	if !ok {
		r = skin
	}
	return r.Min + rnd.Float64()*(r.Max-r.Min), nil
}
