package catalog

// EquipmentID identifies a purchasable tool.
type EquipmentID string

const (
	BasicSprayer    EquipmentID = "basic_sprayer"
	AdvancedSprayer EquipmentID = "advanced_sprayer"
	EcoSprayer      EquipmentID = "eco_sprayer"
	BasicTrapKit    EquipmentID = "basic_trap_kit"
	SmartTrapSystem EquipmentID = "smart_trap_system"
	ProtectiveGear  EquipmentID = "protective_gear"
)

type Equipment struct {
	ID                EquipmentID `json:"id"`
	Name              string      `json:"name"`
	Description       string      `json:"description"`
	Cost              int         `json:"cost"`
	SatisfactionBonus int         `json:"satisfaction_bonus"`
	SpeedBonus        int         `json:"speed_bonus"`
	EcoBonus          int         `json:"eco_bonus"`
	Tier              int         `json:"tier"`
	Category          string      `json:"category"`

	// Requires is the single prerequisite forming a chain per category.
	Requires EquipmentID `json:"requires,omitempty"`
}

// EquipmentOrder lists the catalog in display order.
var EquipmentOrder = []EquipmentID{
	BasicSprayer, AdvancedSprayer, EcoSprayer,
	BasicTrapKit, SmartTrapSystem, ProtectiveGear,
}

var equipmentTable = map[EquipmentID]Equipment{
	BasicSprayer: {
		ID: BasicSprayer, Name: "Basic Sprayer",
		Description:       "Standard pest control sprayer",
		Cost:              500,
		SatisfactionBonus: 5,
		Tier:              1, Category: "tool",
	},
	AdvancedSprayer: {
		ID: AdvancedSprayer, Name: "Advanced Sprayer",
		Description:       "Professional-grade sprayer with better coverage",
		Cost:              1500,
		SatisfactionBonus: 10, SpeedBonus: 5,
		Tier: 2, Category: "tool",
		Requires: BasicSprayer,
	},
	EcoSprayer: {
		ID: EcoSprayer, Name: "Eco-Friendly Sprayer",
		Description:       "Uses organic solutions, loved by eco-conscious clients",
		Cost:              2000,
		SatisfactionBonus: 15, EcoBonus: 20,
		Tier: 3, Category: "tool",
		Requires: AdvancedSprayer,
	},
	BasicTrapKit: {
		ID: BasicTrapKit, Name: "Basic Trap Kit",
		Description:       "Humane traps for rodents and pests",
		Cost:              400,
		SatisfactionBonus: 5,
		Tier:              1, Category: "trap",
	},
	SmartTrapSystem: {
		ID: SmartTrapSystem, Name: "Smart Trap System",
		Description:       "IoT-enabled traps with remote monitoring",
		Cost:              1800,
		SatisfactionBonus: 12, SpeedBonus: 10,
		Tier: 2, Category: "trap",
		Requires: BasicTrapKit,
	},
	ProtectiveGear: {
		ID: ProtectiveGear, Name: "Protective Gear Set",
		Description:       "Professional safety equipment",
		Cost:              600,
		SatisfactionBonus: 8,
		Tier:              1, Category: "safety",
	},
}

func EquipmentByID(id EquipmentID) (Equipment, bool) {
	e, ok := equipmentTable[id]
	return e, ok
}

func AllEquipment() []Equipment {
	out := make([]Equipment, 0, len(EquipmentOrder))
	for _, id := range EquipmentOrder {
		out = append(out, equipmentTable[id])
	}
	return out
}
