// Package catalog provides the default reward catalog for new drops.
package catalog

import (
	"fmt"
	"math/rand/v2"

	"dropradar/config"
	"dropradar/internal/domain/entity"
	"dropradar/internal/domain/service"
)

const cardPoolSize = 200

type weighted[T any] struct {
	value  T
	weight float64
}

//nolint:gochecknoglobals
var (
	defaultTypeWeights = map[entity.DropType]float64{
		entity.DropTypePack:     0.35,
		entity.DropTypeCard:     0.40,
		entity.DropTypeCurrency: 0.20,
		entity.DropTypeSpecial:  0.05,
	}

	rarityTable = []weighted[string]{
		{value: "common", weight: 0.60},
		{value: "uncommon", weight: 0.25},
		{value: "rare", weight: 0.12},
		{value: "legendary", weight: 0.03},
	}
)

// weightedCatalog draws a drop type by weight, then fills its rewards.
type weightedCatalog struct {
	types []weighted[entity.DropType]
}

// NewWeightedCatalog builds the catalog from drops.rewardWeights. Unknown types
// and non-positive weights are ignored; an empty result falls back to the defaults.
func NewWeightedCatalog(cfg *config.Config) service.RewardCatalog {
	var configured map[string]float64
	if cfg != nil && cfg.Drops != nil {
		configured = cfg.Drops.RewardWeights
	}

	types := make([]weighted[entity.DropType], 0, len(entity.AllDropTypes()))
	for _, dropType := range entity.AllDropTypes() {
		weight, ok := configured[dropType.String()]
		if !ok || weight <= 0 {
			continue
		}
		types = append(types, weighted[entity.DropType]{value: dropType, weight: weight})
	}

	if len(types) == 0 {
		for _, dropType := range entity.AllDropTypes() {
			types = append(types, weighted[entity.DropType]{value: dropType, weight: defaultTypeWeights[dropType]})
		}
	}

	return &weightedCatalog{types: types}
}

// Draw returns a drop type and its rewards.
func (c *weightedCatalog) Draw(rng *rand.Rand) (entity.DropType, []entity.RewardRef) {
	dropType := pick(rng, c.types)

	switch dropType {
	case entity.DropTypePack:
		return dropType, []entity.RewardRef{
			{Kind: "pack", RefID: "pack-standard", Rarity: pick(rng, rarityTable), Quantity: 1},
		}
	case entity.DropTypeCard:
		return dropType, []entity.RewardRef{
			{Kind: "card", RefID: fmt.Sprintf("card-%03d", rng.IntN(cardPoolSize)+1), Rarity: pick(rng, rarityTable), Quantity: 1},
		}
	case entity.DropTypeCurrency:
		return dropType, []entity.RewardRef{
			{Kind: "currency", RefID: "coins", Rarity: "common", Quantity: 10 * (rng.IntN(10) + 1)},
		}
	default:
		return entity.DropTypeSpecial, []entity.RewardRef{
			{Kind: "special", RefID: "event-token", Rarity: "legendary", Quantity: 1},
			{Kind: "currency", RefID: "coins", Rarity: "common", Quantity: 100},
		}
	}
}

func pick[T any](rng *rand.Rand, table []weighted[T]) T {
	total := 0.0
	for _, entry := range table {
		total += entry.weight
	}

	target := rng.Float64() * total
	for _, entry := range table {
		if target < entry.weight {
			return entry.value
		}
		target -= entry.weight
	}

	return table[len(table)-1].value
}
