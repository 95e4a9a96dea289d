package service

import (
	"math/rand/v2"

	"dropradar/internal/domain/entity"
)

// RewardCatalog picks the type and contents of a new drop.
type RewardCatalog interface {
	// Draw returns a drop type and its ordered rewards using the given random source.
	Draw(rng *rand.Rand) (entity.DropType, []entity.RewardRef)
}
