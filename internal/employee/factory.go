package employee

import (
	"math/rand"

	"github.com/kfiggins/pest-control-empire/internal/catalog"
)

// RandomTier draws a hire candidate tier using the catalog hire weights.
func RandomTier(rng *rand.Rand) catalog.Tier {
	roll := rng.Intn(100)
	acc := 0
	for _, t := range catalog.Tiers {
		acc += t.HireWeight()
		if roll < acc {
			return t
		}
	}
	return catalog.Trainee
}

// RandomName draws a first/last pair from the name pools.
func RandomName(rng *rand.Rand) string {
	first := catalog.EmployeeFirstNames[rng.Intn(len(catalog.EmployeeFirstNames))]
	last := catalog.EmployeeLastNames[rng.Intn(len(catalog.EmployeeLastNames))]
	return first + " " + last
}
