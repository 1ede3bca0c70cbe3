package config

import (
	"os"
	"strconv"
)

// FromEnv applies PESTEMPIRE_* environment overrides on top of cfg.
// Unset or unparseable variables leave the config untouched.
func FromEnv(cfg *Config) {
	if v := os.Getenv("PESTEMPIRE_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("PESTEMPIRE_DATA_DIR"); v != "" {
		cfg.Data.Dir = v
	}
	if v := os.Getenv("PESTEMPIRE_SAVE_BACKEND"); v != "" {
		cfg.Data.SaveBackend = v
	}
	if v := os.Getenv("PESTEMPIRE_DIFFICULTY"); v != "" {
		cfg.Game.Difficulty = v
		cfg.Balance = ForDifficulty(v)
	}
	if v := getEnvInt("PESTEMPIRE_SEED"); v != 0 {
		cfg.Game.Seed = int64(v)
	}
	if v := getEnvInt("PESTEMPIRE_STARTING_CASH"); v > 0 {
		cfg.Balance.StartingCash = v
	}
	if v := getEnvInt("PESTEMPIRE_WEEKLY_OVERHEAD"); v > 0 {
		cfg.Balance.WeeklyOverhead = v
	}
	if v := getEnvInt("PESTEMPIRE_VICTORY_PROFIT"); v > 0 {
		cfg.Balance.VictoryWeeklyProfit = v
	}
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}
