package domain

import "fmt"

// Condition is the wear label derived from a skin's float
type Condition string

const (
	ConditionFactoryNew    Condition = "factorynew"
	ConditionMinimalWear   Condition = "minimalwear"
	ConditionFieldTested   Condition = "fieldtested"
	ConditionWellWorn      Condition = "wellworn"
	ConditionBattleScarred Condition = "battlescarred"
)

// FloatRange is a closed interval of float values
type FloatRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Intersect returns the overlap of two ranges and whether it is non-empty
func (r FloatRange) Intersect(o FloatRange) (FloatRange, bool) {
	out := FloatRange{Min: max(r.Min, o.Min), Max: min(r.Max, o.Max)}
	return out, out.Min <= out.Max
}

// conditionBreakpoints is ordered from worst to best wear. A float belongs
// to the first condition whose lower bound it strictly exceeds.
var conditionBreakpoints = []struct {
	condition Condition
	lower     float64
}{
	{ConditionBattleScarred, 0.45},
	{ConditionWellWorn, 0.38},
	{ConditionFieldTested, 0.15},
	{ConditionMinimalWear, 0.07},
	{ConditionFactoryNew, 0.00},
}

var conditionRanges = map[Condition]FloatRange{
	ConditionFactoryNew:    {Min: 0.00, Max: 0.07},
	ConditionMinimalWear:   {Min: 0.07, Max: 0.15},
	ConditionFieldTested:   {Min: 0.15, Max: 0.38},
	ConditionWellWorn:      {Min: 0.38, Max: 0.45},
	ConditionBattleScarred: {Min: 0.45, Max: 1.00},
}

var conditionNames = map[Condition]string{
	ConditionFactoryNew:    "Factory New",
	ConditionMinimalWear:   "Minimal Wear",
	ConditionFieldTested:   "Field-Tested",
	ConditionWellWorn:      "Well-Worn",
	ConditionBattleScarred: "Battle-Scarred",
}

// ConditionForFloat maps a float to its wear label. Floats at or below
// every positive breakpoint, including exactly 0, are Factory New.
func ConditionForFloat(f float64) Condition {
	for _, bp := range conditionBreakpoints {
		if f > bp.lower {
			return bp.condition
		}
	}
	return ConditionFactoryNew
}

// Range returns the float interval covered by the condition
func (c Condition) Range() (FloatRange, error) {
	r, ok := conditionRanges[c]
	if !ok {
		return FloatRange{}, fmt.Errorf("unknown condition %q", c)
	}
	return r, nil
}

// DisplayName returns the human readable label
func (c Condition) DisplayName() string {
	if n, ok := conditionNames[c]; ok {
		return n
	}
	return string(c)
}

// Valid reports whether c is a known condition
func (c Condition) Valid() bool {
	_, ok := conditionRanges[c]
	return ok
}
