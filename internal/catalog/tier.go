package catalog

import "fmt"

// Tier is the ordered employee skill level. The ordering is load-bearing:
// synergy bonuses and promotions compare tiers directly.
type Tier int

const (
	Trainee Tier = iota
	Junior
	Experienced
	Expert
)

var tierNames = map[Tier]string{
	Trainee:     "trainee",
	Junior:      "junior",
	Experienced: "experienced",
	Expert:      "expert",
}

func (t Tier) String() string {
	if n, ok := tierNames[t]; ok {
		return n
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

func (t Tier) Valid() bool {
	return t >= Trainee && t <= Expert
}

func ParseTier(s string) (Tier, bool) {
	for t, n := range tierNames {
		if n == s {
			return t, true
		}
	}
	return Trainee, false
}

// MarshalText keeps tiers human-readable in saves and API payloads.
func (t Tier) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("unknown tier: %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *Tier) UnmarshalText(b []byte) error {
	parsed, ok := ParseTier(string(b))
	if !ok {
		return fmt.Errorf("unknown tier: %q", string(b))
	}
	*t = parsed
	return nil
}

// TierInfo is the immutable per-tier data. PromotionXP and PromotionCost are
// the requirements to reach this tier from the one below it.
type TierInfo struct {
	Name          string `json:"name"`
	HireCost      int    `json:"hire_cost"`
	WeeklySalary  int    `json:"weekly_salary"`
	MaxClients    int    `json:"max_clients"`
	ServiceBonus  int    `json:"service_bonus"`
	PromotionXP   int    `json:"promotion_xp"`
	PromotionCost int    `json:"promotion_cost"`
}

func (t Tier) Info() TierInfo {
	switch t {
	case Junior:
		return TierInfo{Name: "Junior", HireCost: 1200, WeeklySalary: 600, MaxClients: 3, ServiceBonus: 15, PromotionXP: 30, PromotionCost: 600}
	case Experienced:
		return TierInfo{Name: "Experienced", HireCost: 1800, WeeklySalary: 900, MaxClients: 4, ServiceBonus: 20, PromotionXP: 60, PromotionCost: 900}
	case Expert:
		return TierInfo{Name: "Expert", HireCost: 2500, WeeklySalary: 1200, MaxClients: 5, ServiceBonus: 25, PromotionXP: 100, PromotionCost: 1250}
	default:
		return TierInfo{Name: "Trainee", HireCost: 800, WeeklySalary: 400, MaxClients: 2, ServiceBonus: 10}
	}
}

// Next returns the tier above t, or false at the top.
func (t Tier) Next() (Tier, bool) {
	if t >= Expert {
		return t, false
	}
	return t + 1, true
}

// HireWeight is the percentage weight used when hiring a random candidate;
// lower tiers are the most common walk-ins.
func (t Tier) HireWeight() int {
	switch t {
	case Trainee:
		return 50
	case Junior:
		return 30
	case Experienced:
		return 15
	case Expert:
		return 5
	}
	return 0
}

// Tiers lists every tier in ascending order.
var Tiers = []Tier{Trainee, Junior, Experienced, Expert}
