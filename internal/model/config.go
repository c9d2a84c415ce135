package model

import (
	"github.com/agsports/valuepicks/internal/pkg/config"
)

// ParamsFromConfig builds model parameters from the config section,
// falling back to the defaults for anything unset.
func ParamsFromConfig(cfg config.ModelConfig) ModelParams {
	params := DefaultModelParams()
	if len(cfg.LeagueGoalAverages) > 0 {
		params.LeagueGoalAverages = cfg.LeagueGoalAverages
	}
	if cfg.DefaultGoalAverage > 0 {
		params.DefaultGoalAverage = cfg.DefaultGoalAverage
	}
	if cfg.HomeAdvantage > 0 {
		params.HomeAdvantage = cfg.HomeAdvantage
	}
	if cfg.AwayDisadvantage > 0 {
		params.AwayDisadvantage = cfg.AwayDisadvantage
	}
	if cfg.HomeShare > 0 {
		params.HomeShare = cfg.HomeShare
	}
	if cfg.AwayShare > 0 {
		params.AwayShare = cfg.AwayShare
	}
	return params
}

// GeneratorConfigFromConfig builds the generator tuning from the config
// section.
func GeneratorConfigFromConfig(cfg config.ModelConfig) GeneratorConfig {
	gen := DefaultGeneratorConfig()
	if len(cfg.SupportedThresholds) > 0 {
		gen.SupportedThresholds = cfg.SupportedThresholds
	}
	if cfg.MinEdgePercent > 0 {
		gen.MinEdgePercent = cfg.MinEdgePercent
	}
	if cfg.StrongEdgePercent > 0 {
		gen.Tiers.Strong = cfg.StrongEdgePercent
	}
	if cfg.ModerateEdgePercent > 0 {
		gen.Tiers.Moderate = cfg.ModerateEdgePercent
	}
	return gen
}
