package config

// Balance holds the gameplay balance knobs consumed by the turn engine.
type Balance struct {
	// Money
	StartingCash      int `yaml:"starting_cash" json:"starting_cash"`
	TruckCost         int `yaml:"truck_cost" json:"truck_cost"`
	WeeklyOverhead    int `yaml:"weekly_overhead" json:"weekly_overhead"`
	OverheadStartWeek int `yaml:"overhead_start_week" json:"overhead_start_week"`

	// Clients
	ServiceRestore  int     `yaml:"service_restore" json:"service_restore"`
	ChurnThreshold  int     `yaml:"churn_threshold" json:"churn_threshold"`
	ReferralChance  float64 `yaml:"referral_chance" json:"referral_chance"`
	ReferralCutoff  int     `yaml:"referral_cutoff" json:"referral_cutoff"`
	AcquisitionRate float64 `yaml:"acquisition_rate" json:"acquisition_rate"`

	// Employees
	XPPerJob int `yaml:"xp_per_job" json:"xp_per_job"`

	// Events
	EventChanceMultiplier   float64 `yaml:"event_chance_multiplier" json:"event_chance_multiplier"`
	SeasonalEventMultiplier float64 `yaml:"seasonal_event_multiplier" json:"seasonal_event_multiplier"`

	// Win/loss
	VictoryWeeklyProfit int `yaml:"victory_weekly_profit" json:"victory_weekly_profit"`
	VictoryClients      int `yaml:"victory_clients" json:"victory_clients"`
	VictoryEmployees    int `yaml:"victory_employees" json:"victory_employees"`

	// Automation cash buffers (defaults; the player can override per save)
	HireCashBuffer    int `yaml:"hire_cash_buffer" json:"hire_cash_buffer"`
	PromoteCashBuffer int `yaml:"promote_cash_buffer" json:"promote_cash_buffer"`
}

// Default returns the normal-difficulty balance.
func Default() Balance {
	return Balance{
		StartingCash:            2000,
		TruckCost:               1000,
		WeeklyOverhead:          300,
		OverheadStartWeek:       5,
		ServiceRestore:          15,
		ChurnThreshold:          20,
		ReferralChance:          0.03,
		ReferralCutoff:          80,
		AcquisitionRate:         1.3,
		XPPerJob:                3,
		EventChanceMultiplier:   1.0,
		SeasonalEventMultiplier: 1.5,
		VictoryWeeklyProfit:     25000,
		VictoryClients:          12,
		VictoryEmployees:        6,
		HireCashBuffer:          2000,
		PromoteCashBuffer:       1000,
	}
}

// Casual eases the early game.
func Casual() Balance {
	b := Default()
	b.StartingCash = 3000
	b.WeeklyOverhead = 200
	b.OverheadStartWeek = 8
	b.ReferralChance = 0.05
	return b
}

// Hard tightens cash and makes events more frequent.
func Hard() Balance {
	b := Default()
	b.StartingCash = 1500
	b.WeeklyOverhead = 400
	b.EventChanceMultiplier = 1.25
	return b
}

// ForDifficulty maps a difficulty name to its preset. Unknown names get the
// normal preset.
func ForDifficulty(name string) Balance {
	switch name {
	case "casual":
		return Casual()
	case "hard":
		return Hard()
	default:
		return Default()
	}
}
