package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig `yaml:"server" json:"server"`
	Data    DataConfig   `yaml:"data" json:"data"`
	Game    GameConfig   `yaml:"game" json:"game"`
	Balance Balance      `yaml:"balance" json:"balance"`
}

type ServerConfig struct {
	Addr     string `yaml:"addr" json:"addr"`
	LogLimit int    `yaml:"log_limit" json:"log_limit"`
}

type DataConfig struct {
	Dir string `yaml:"dir" json:"dir"`

	// SaveBackend selects where the save envelope lives: "file" or "sqlite".
	SaveBackend string `yaml:"save_backend" json:"save_backend"`
}

type GameConfig struct {
	// Seed of 0 means "seed from the wall clock".
	Seed       int64  `yaml:"seed" json:"seed"`
	Difficulty string `yaml:"difficulty" json:"difficulty"`
}

func (c *Config) ApplyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.LogLimit <= 0 {
		c.Server.LogLimit = 500
	}
	if c.Data.Dir == "" {
		c.Data.Dir = "data"
	}
	if c.Data.SaveBackend == "" {
		c.Data.SaveBackend = "file"
	}
	if c.Game.Difficulty == "" {
		c.Game.Difficulty = "normal"
	}
	if c.Balance == (Balance{}) {
		c.Balance = ForDifficulty(c.Game.Difficulty)
	}
}

// Load reads the YAML config at path. A missing file is not an error; the
// defaults are returned instead so the server can run unconfigured.
func Load(path string) (*Config, error) {
	var c Config
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			c.ApplyDefaults()
			return &c, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	return &c, nil
}
