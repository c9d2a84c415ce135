package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	Provider ProviderConfig `yaml:"provider"`
	Model    ModelConfig    `yaml:"model"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Telegram TelegramConfig `yaml:"telegram"`
	HTTP     HTTPConfig     `yaml:"http"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	PicksTTL time.Duration `yaml:"picks_ttl"` // cache TTL for /api/picks
}

type ProviderConfig struct {
	APIFootball APIFootballConfig `yaml:"api_football"`
}

type APIFootballConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
	// LeagueIDs restricts the fixtures pull to the leagues the model has
	// baselines for.
	LeagueIDs []int64 `yaml:"league_ids"`
}

type ModelConfig struct {
	LeagueGoalAverages map[string]float64 `yaml:"league_goal_averages"`
	DefaultGoalAverage float64            `yaml:"default_goal_average"`
	HomeAdvantage      float64            `yaml:"home_advantage"`
	AwayDisadvantage   float64            `yaml:"away_disadvantage"`
	HomeShare          float64            `yaml:"home_share"`
	AwayShare          float64            `yaml:"away_share"`

	SupportedThresholds []float64 `yaml:"supported_thresholds"`
	MinEdgePercent      float64   `yaml:"min_edge_percent"`
	StrongEdgePercent   float64   `yaml:"strong_edge_percent"`
	ModerateEdgePercent float64   `yaml:"moderate_edge_percent"`
}

type PipelineConfig struct {
	HorizonHours       int           `yaml:"horizon_hours"`
	QuoteBatchSize     int           `yaml:"quote_batch_size"`
	QuoteBatchPause    time.Duration `yaml:"quote_batch_pause"`
	ProviderTimeout    time.Duration `yaml:"provider_timeout"`
	TopPicksLimit      int           `yaml:"top_picks_limit"`
	PublicationMinEdge float64       `yaml:"publication_min_edge"`
}

type TelegramConfig struct {
	Enabled bool   `yaml:"enabled"`
	Token   string `yaml:"token"`
	ChatID  int64  `yaml:"chat_id"`
}

type HTTPConfig struct {
	Addr              string        `yaml:"addr"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Load reads a YAML config file. ${VAR} references are expanded from the
// environment so secrets (API keys, DSN) stay out of the file.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Provider.APIFootball.BaseURL == "" {
		c.Provider.APIFootball.BaseURL = "https://v3.football.api-sports.io"
	}
	if c.Provider.APIFootball.Timeout <= 0 {
		c.Provider.APIFootball.Timeout = 15 * time.Second
	}
	if c.Model.DefaultGoalAverage <= 0 {
		c.Model.DefaultGoalAverage = 2.5
	}
	if c.Model.HomeAdvantage <= 0 {
		c.Model.HomeAdvantage = 1.15
	}
	if c.Model.AwayDisadvantage <= 0 {
		c.Model.AwayDisadvantage = 0.85
	}
	if c.Model.HomeShare <= 0 {
		c.Model.HomeShare = 0.55
	}
	if c.Model.AwayShare <= 0 {
		c.Model.AwayShare = 0.45
	}
	if len(c.Model.SupportedThresholds) == 0 {
		c.Model.SupportedThresholds = []float64{1.5, 2.5, 3.5}
	}
	if c.Model.StrongEdgePercent <= 0 {
		c.Model.StrongEdgePercent = 5
	}
	if c.Model.ModerateEdgePercent <= 0 {
		c.Model.ModerateEdgePercent = 3
	}
	if c.Pipeline.HorizonHours <= 0 {
		c.Pipeline.HorizonHours = 72
	}
	if c.Pipeline.QuoteBatchSize <= 0 {
		c.Pipeline.QuoteBatchSize = 5
	}
	if c.Pipeline.QuoteBatchPause <= 0 {
		c.Pipeline.QuoteBatchPause = time.Second
	}
	if c.Pipeline.ProviderTimeout <= 0 {
		c.Pipeline.ProviderTimeout = 30 * time.Second
	}
	if c.Pipeline.TopPicksLimit <= 0 {
		c.Pipeline.TopPicksLimit = 10
	}
	if c.Pipeline.PublicationMinEdge <= 0 {
		c.Pipeline.PublicationMinEdge = 2
	}
	if c.Redis.PicksTTL <= 0 {
		c.Redis.PicksTTL = 5 * time.Minute
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.HTTP.ReadHeaderTimeout <= 0 {
		c.HTTP.ReadHeaderTimeout = 10 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}
