package catalog

// UpgradeID identifies a permanent business upgrade.
type UpgradeID string

const (
	Speed1 UpgradeID = "speed_1"
	Speed2 UpgradeID = "speed_2"
	Speed3 UpgradeID = "speed_3"

	Service1 UpgradeID = "service_1"
	Service2 UpgradeID = "service_2"
	Service3 UpgradeID = "service_3"

	Eco1 UpgradeID = "eco_1"
	Eco2 UpgradeID = "eco_2"
	Eco3 UpgradeID = "eco_3"

	Ops1 UpgradeID = "ops_1"
	Ops2 UpgradeID = "ops_2"
	Ops3 UpgradeID = "ops_3"
)

// UpgradeEffects is the fixed effect schema. Numeric fields sum across owned
// upgrades; capability flags are present if any owned upgrade grants them.
type UpgradeEffects struct {
	JobSpeed          int     `json:"job_speed,omitempty"`
	SatisfactionBonus int     `json:"satisfaction_bonus,omitempty"`
	RevenueBonus      float64 `json:"revenue_bonus,omitempty"`
	EcoClientBonus    int     `json:"eco_client_bonus,omitempty"`
	SpeedClientBonus  int     `json:"speed_client_bonus,omitempty"`

	AutoAssign    bool `json:"auto_assign,omitempty"`
	SmartMatching bool `json:"smart_matching,omitempty"`
	AutoPromote   bool `json:"auto_promote,omitempty"`
	AutoHire      bool `json:"auto_hire,omitempty"`
}

type Upgrade struct {
	ID          UpgradeID      `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Cost        int            `json:"cost"`
	Path        string         `json:"path"`
	Tier        int            `json:"tier"`
	Requires    UpgradeID      `json:"requires,omitempty"`
	Effects     UpgradeEffects `json:"effects"`
}

// UpgradeOrder lists the upgrade tree in display order, grouped by path.
var UpgradeOrder = []UpgradeID{
	Speed1, Speed2, Speed3,
	Service1, Service2, Service3,
	Eco1, Eco2, Eco3,
	Ops1, Ops2, Ops3,
}

var upgradeTable = map[UpgradeID]Upgrade{
	Speed1: {
		ID: Speed1, Name: "Efficient Routing",
		Description: "Optimize travel routes between jobs",
		Cost:        1000, Path: "speed", Tier: 1,
		Effects: UpgradeEffects{JobSpeed: 10},
	},
	Speed2: {
		ID: Speed2, Name: "Quick Response Team",
		Description: "Faster job completion across all employees",
		Cost:        2500, Path: "speed", Tier: 2, Requires: Speed1,
		Effects: UpgradeEffects{JobSpeed: 20},
	},
	Speed3: {
		ID: Speed3, Name: "Express Service",
		Description: "Ultra-fast service for speed-focused clients",
		Cost:        5000, Path: "speed", Tier: 3, Requires: Speed2,
		Effects: UpgradeEffects{JobSpeed: 30, SpeedClientBonus: 15},
	},
	Service1: {
		ID: Service1, Name: "Customer Training",
		Description: "Train employees in customer relations",
		Cost:        1200, Path: "service", Tier: 1,
		Effects: UpgradeEffects{SatisfactionBonus: 5},
	},
	Service2: {
		ID: Service2, Name: "Premium Service Package",
		Description: "Offer premium services that delight clients",
		Cost:        3000, Path: "service", Tier: 2, Requires: Service1,
		Effects: UpgradeEffects{SatisfactionBonus: 10, RevenueBonus: 0.1},
	},
	Service3: {
		ID: Service3, Name: "VIP Client Program",
		Description: "Exclusive benefits for high-value clients",
		Cost:        6000, Path: "service", Tier: 3, Requires: Service2,
		Effects: UpgradeEffects{SatisfactionBonus: 20, RevenueBonus: 0.25},
	},
	Eco1: {
		ID: Eco1, Name: "Green Certification",
		Description: "Certified eco-friendly pest control methods",
		Cost:        1500, Path: "eco", Tier: 1,
		Effects: UpgradeEffects{EcoClientBonus: 10},
	},
	Eco2: {
		ID: Eco2, Name: "Organic Solutions",
		Description: "Use only organic, pet-safe products",
		Cost:        3500, Path: "eco", Tier: 2, Requires: Eco1,
		Effects: UpgradeEffects{EcoClientBonus: 20, SatisfactionBonus: 5},
	},
	Eco3: {
		ID: Eco3, Name: "Zero-Harm Initiative",
		Description: "Revolutionary humane pest management",
		Cost:        7000, Path: "eco", Tier: 3, Requires: Eco2,
		Effects: UpgradeEffects{EcoClientBonus: 35, SatisfactionBonus: 10, RevenueBonus: 0.15},
	},
	Ops1: {
		ID: Ops1, Name: "Dispatch Software",
		Description: "Route unserviced clients to available technicians automatically",
		Cost:        2000, Path: "ops", Tier: 1,
		Effects: UpgradeEffects{AutoAssign: true},
	},
	Ops2: {
		ID: Ops2, Name: "Smart Scheduling",
		Description: "Pair the toughest accounts with the most skilled technicians",
		Cost:        4500, Path: "ops", Tier: 2, Requires: Ops1,
		Effects: UpgradeEffects{SmartMatching: true},
	},
	Ops3: {
		ID: Ops3, Name: "Back-Office Suite",
		Description: "Automated recruiting and career development",
		Cost:        8000, Path: "ops", Tier: 3, Requires: Ops2,
		Effects: UpgradeEffects{AutoPromote: true, AutoHire: true},
	},
}

func UpgradeByID(id UpgradeID) (Upgrade, bool) {
	u, ok := upgradeTable[id]
	return u, ok
}

func AllUpgrades() []Upgrade {
	out := make([]Upgrade, 0, len(UpgradeOrder))
	for _, id := range UpgradeOrder {
		out = append(out, upgradeTable[id])
	}
	return out
}

// UpgradesByPath filters the tree for one prerequisite chain.
func UpgradesByPath(path string) []Upgrade {
	out := []Upgrade{}
	for _, id := range UpgradeOrder {
		if u := upgradeTable[id]; u.Path == path {
			out = append(out, u)
		}
	}
	return out
}
