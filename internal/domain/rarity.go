package domain

import (
	"fmt"
	"strings"
	"unicode"
)

// Rarity is an ordered quality grade. Higher values are rarer.
type Rarity int

const (
	RarityUnknown Rarity = iota
	RarityConsumer
	RarityIndustrial
	RarityMilSpec
	RarityRestricted
	RarityClassified
	RarityCovert
	RarityContraband
)

var rarityNames = map[Rarity]string{
	RarityConsumer:   "Consumer Grade",
	RarityIndustrial: "Industrial Grade",
	RarityMilSpec:    "Mil-Spec Grade",
	RarityRestricted: "Restricted",
	RarityClassified: "Classified",
	RarityCovert:     "Covert",
	RarityContraband: "Contraband",
}

// rarityAliases maps folded names to grades. Sticker grades share the
// ordering of the weapon grades they sit beside.
var rarityAliases = map[string]Rarity{
	"consumer":        RarityConsumer,
	"consumergrade":   RarityConsumer,
	"basegrade":       RarityConsumer,
	"industrial":      RarityIndustrial,
	"industrialgrade": RarityIndustrial,
	"milspec":         RarityMilSpec,
	"milspecgrade":    RarityMilSpec,
	"highgrade":       RarityMilSpec,
	"restricted":      RarityRestricted,
	"remarkable":      RarityRestricted,
	"classified":      RarityClassified,
	"exotic":          RarityClassified,
	"covert":          RarityCovert,
	"extraordinary":   RarityCovert,
	"contraband":      RarityContraband,
}

// ParseRarity resolves a display or token name to a grade
func ParseRarity(s string) (Rarity, error) {
	folded := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, s)
	if r, ok := rarityAliases[folded]; ok {
		return r, nil
	}
	return RarityUnknown, fmt.Errorf("unknown rarity %q", s)
}

func (r Rarity) String() string {
	if name, ok := rarityNames[r]; ok {
		return name
	}
	return "Unknown"
}

// MarshalText implements encoding.TextMarshaler
func (r Rarity) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (r *Rarity) UnmarshalText(b []byte) error {
	parsed, err := ParseRarity(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
