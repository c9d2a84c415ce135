package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/agsports/valuepicks/internal/pkg/models"
)

// Input validation errors. They indicate a skipped quote, never a
// failed pipeline run.
var (
	ErrInvalidProbability = errors.New("probability must be in (0, 1]")
	ErrInvalidOdd         = errors.New("market odd must be greater than 1")
)

// TierThresholds defines the edge percentages separating value tiers.
type TierThresholds struct {
	Strong   float64 // edge above this is "strong"
	Moderate float64 // edge above this (up to Strong) is "moderate"
}

// DefaultTierThresholds returns the system defaults: strong above 5%,
// moderate above 3%.
func DefaultTierThresholds() TierThresholds {
	return TierThresholds{Strong: 5, Moderate: 3}
}

// ComputeEdge derives the fair odd, edge percentage and tier for a model
// probability against a market price. Full precision throughout; callers
// round at persistence/presentation boundaries only.
func ComputeEdge(probability, marketOdd float64, tiers TierThresholds) (models.EdgeAssessment, error) {
	if probability <= 0 || probability > 1 {
		return models.EdgeAssessment{}, fmt.Errorf("%w: got %v", ErrInvalidProbability, probability)
	}
	if marketOdd <= 1 {
		return models.EdgeAssessment{}, fmt.Errorf("%w: got %v", ErrInvalidOdd, marketOdd)
	}

	fairOdd := 1 / probability
	edgePercent := (marketOdd/fairOdd - 1) * 100

	return models.EdgeAssessment{
		Probability: probability,
		FairOdd:     fairOdd,
		MarketOdd:   marketOdd,
		EdgePercent: edgePercent,
		Tier:        tiers.Tier(edgePercent),
	}, nil
}

// Tier classifies an edge percentage.
func (t TierThresholds) Tier(edgePercent float64) string {
	switch {
	case edgePercent > t.Strong:
		return models.TierStrong
	case edgePercent > t.Moderate:
		return models.TierModerate
	case edgePercent > 0:
		return models.TierWeak
	default:
		return models.TierAvoid
	}
}

// RoundProbability rounds to 4 decimals for storage and display.
func RoundProbability(p float64) float64 {
	return math.Round(p*10000) / 10000
}

// RoundOdd rounds to 2 decimals for storage and display.
func RoundOdd(o float64) float64 {
	return math.Round(o*100) / 100
}

// RoundEdge rounds an edge percentage to 2 decimals.
func RoundEdge(e float64) float64 {
	return math.Round(e*100) / 100
}
