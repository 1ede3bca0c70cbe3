package client

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/kfiggins/pest-control-empire/internal/catalog"
)

// NewRandom creates a client of the given archetype with a pooled name and a
// fresh id. An invalid or empty archetype draws one uniformly.
func NewRandom(rng *rand.Rand, a catalog.Archetype) *Client {
	if !a.Valid() {
		a = catalog.Archetypes[rng.Intn(len(catalog.Archetypes))]
	}
	pool := a.NamePool()
	return New(uuid.NewString(), pool[rng.Intn(len(pool))], a)
}
