package catalog

// Archetype is the closed set of client categories.
type Archetype string

const (
	Residential  Archetype = "residential"
	SpeedFocused Archetype = "speed_focused"
	EcoFocused   Archetype = "eco_focused"
	Commercial   Archetype = "commercial"
)

// Archetypes lists every archetype in declaration order.
var Archetypes = []Archetype{Residential, SpeedFocused, EcoFocused, Commercial}

// ArchetypeInfo is the immutable per-archetype data copied onto clients at
// creation time.
type ArchetypeInfo struct {
	Name              string   `json:"name"`
	BaseRevenue       int      `json:"base_revenue"`
	AcquisitionCost   int      `json:"acquisition_cost"`
	SatisfactionDecay int      `json:"satisfaction_decay"`
	Demands           []string `json:"demands"`
}

func (a Archetype) Valid() bool {
	switch a {
	case Residential, SpeedFocused, EcoFocused, Commercial:
		return true
	}
	return false
}

func (a Archetype) Info() ArchetypeInfo {
	switch a {
	case SpeedFocused:
		return ArchetypeInfo{
			Name:              "Speed Priority",
			BaseRevenue:       450,
			AcquisitionCost:   350,
			SatisfactionDecay: 5,
			Demands:           []string{"fast", "responsive"},
		}
	case EcoFocused:
		return ArchetypeInfo{
			Name:              "Eco-Conscious",
			BaseRevenue:       500,
			AcquisitionCost:   400,
			SatisfactionDecay: 4,
			Demands:           []string{"eco-friendly", "humane"},
		}
	case Commercial:
		return ArchetypeInfo{
			Name:              "Commercial",
			BaseRevenue:       800,
			AcquisitionCost:   600,
			SatisfactionDecay: 6,
			Demands:           []string{"professional", "discreet"},
		}
	default:
		return ArchetypeInfo{
			Name:              "Residential",
			BaseRevenue:       300,
			AcquisitionCost:   200,
			SatisfactionDecay: 3,
			Demands:           []string{"affordable", "reliable"},
		}
	}
}

// NamePool returns the display-name pool for the archetype. Commercial
// clients draw business names, everyone else draws household names.
func (a Archetype) NamePool() []string {
	if a == Commercial {
		return commercialNames
	}
	return residentialNames
}
