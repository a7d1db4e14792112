// Package config loads table and bot definitions from HCL files.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdem/game"
	"github.com/lox/holdem/internal/bot"
)

// Config represents a complete configuration file
type Config struct {
	Settings *Settings     `hcl:"settings,block"`
	Tables   []TableConfig `hcl:"table,block"`
	Bots     []BotConfig   `hcl:"bot,block"`
}

// Settings contains process-level configuration
type Settings struct {
	LogLevel   string `hcl:"log_level,optional"`
	Seed       int64  `hcl:"seed,optional"`
	Hands      int    `hcl:"hands,optional"`
	HistoryDir string `hcl:"history_dir,optional"`
}

// TableConfig defines a poker table
type TableConfig struct {
	Name       string `hcl:"name,label"`
	MinPlayers int    `hcl:"min_players,optional"`
	MaxPlayers int    `hcl:"max_players,optional"`
	SmallBlind int    `hcl:"small_blind"`
	BigBlind   int    `hcl:"big_blind"`
	BuyInMin   int    `hcl:"buy_in_min,optional"`
	BuyInMax   int    `hcl:"buy_in_max,optional"`
	Limit      string `hcl:"limit,optional"`
	ShotClock  string `hcl:"shot_clock,optional"`
}

// BotConfig defines a bot and the tables it sits at
type BotConfig struct {
	Name     string   `hcl:"name,label"`
	Strategy string   `hcl:"strategy,optional"`
	Tables   []string `hcl:"tables,optional"`
	BuyIn    int      `hcl:"buy_in,optional"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	cfg := &Config{
		Tables: []TableConfig{{
			Name:       "main",
			SmallBlind: 10,
			BigBlind:   20,
			Limit:      "fixed",
		}},
		Bots: []BotConfig{
			{Name: "callie", Strategy: bot.StrategyCall},
			{Name: "randy", Strategy: bot.StrategyRandom},
			{Name: "tilly", Strategy: bot.StrategyTight},
			{Name: "manny", Strategy: bot.StrategyManiac},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from an HCL file. A missing file yields Default.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return Parse(src, filename)
}

// Parse decodes HCL source. filename is only used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Settings == nil {
		c.Settings = &Settings{}
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = "info"
	}
	if c.Settings.Hands == 0 {
		c.Settings.Hands = 100
	}

	for i := range c.Tables {
		t := &c.Tables[i]
		if t.MinPlayers == 0 {
			t.MinPlayers = 2
		}
		if t.MaxPlayers == 0 {
			t.MaxPlayers = 6
		}
		if t.BuyInMin == 0 {
			t.BuyInMin = t.BigBlind * 20
		}
		if t.BuyInMax == 0 {
			t.BuyInMax = t.BigBlind * 200
		}
		if t.Limit == "" {
			t.Limit = "fixed"
		}
	}

	for i := range c.Bots {
		b := &c.Bots[i]
		if b.Strategy == "" {
			b.Strategy = bot.StrategyCall
		}
		if len(b.Tables) == 0 {
			for _, t := range c.Tables {
				b.Tables = append(b.Tables, t.Name)
			}
		}
	}
}

// Validate checks every table and bot
func (c *Config) Validate() error {
	if len(c.Tables) == 0 {
		return fmt.Errorf("at least one table must be configured")
	}

	seen := map[string]bool{}
	for _, t := range c.Tables {
		if seen[t.Name] {
			return fmt.Errorf("table %s: defined twice", t.Name)
		}
		seen[t.Name] = true
		if _, err := t.GameConfig(); err != nil {
			return fmt.Errorf("table %s: %w", t.Name, err)
		}
		if _, err := t.ShotClockDuration(); err != nil {
			return fmt.Errorf("table %s: %w", t.Name, err)
		}
	}

	strategies := bot.Strategies()
	for _, b := range c.Bots {
		if !slices.Contains(strategies, b.Strategy) {
			return fmt.Errorf("bot %s: invalid strategy %s", b.Name, b.Strategy)
		}
		for _, name := range b.Tables {
			t := c.Table(name)
			if t == nil {
				return fmt.Errorf("bot %s: unknown table %s", b.Name, name)
			}
			if buyIn := b.BuyInFor(*t); buyIn < t.BuyInMin || buyIn > t.BuyInMax {
				return fmt.Errorf("bot %s: buy-in %d outside table %s range [%d, %d]", b.Name, buyIn, name, t.BuyInMin, t.BuyInMax)
			}
		}
	}
	return nil
}

// GameConfig converts the table definition for game.NewTable
func (t TableConfig) GameConfig() (game.Config, error) {
	limit, err := game.ParseLimit(t.Limit)
	if err != nil {
		return game.Config{}, err
	}
	cfg := game.Config{
		Name:       t.Name,
		SmallBlind: t.SmallBlind,
		BigBlind:   t.BigBlind,
		MinPlayers: t.MinPlayers,
		MaxPlayers: t.MaxPlayers,
		MinBuyIn:   t.BuyInMin,
		MaxBuyIn:   t.BuyInMax,
		Limit:      limit,
	}
	return cfg, cfg.Validate()
}

// ShotClockDuration parses the shot clock. Zero means no clock.
func (t TableConfig) ShotClockDuration() (time.Duration, error) {
	if t.ShotClock == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(t.ShotClock)
	if err != nil {
		return 0, fmt.Errorf("invalid shot_clock: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("shot_clock must not be negative")
	}
	return d, nil
}

// BuyInFor returns the bot's buy-in at a table, defaulting to the table maximum
func (b BotConfig) BuyInFor(t TableConfig) int {
	if b.BuyIn > 0 {
		return b.BuyIn
	}
	return t.BuyInMax / 2
}

// Table returns a table configuration by name
func (c *Config) Table(name string) *TableConfig {
	for i := range c.Tables {
		if c.Tables[i].Name == name {
			return &c.Tables[i]
		}
	}
	return nil
}

// BotsForTable returns all bots configured for a table
func (c *Config) BotsForTable(name string) []BotConfig {
	var bots []BotConfig
	for _, b := range c.Bots {
		if slices.Contains(b.Tables, name) {
			bots = append(bots, b)
		}
	}
	return bots
}
