package model

import (
	"fmt"
	"math"
)

// PoissonPmf returns P(X = k) for X ~ Poisson(lambda).
// lambda must be positive and k non-negative; anything else is a caller
// error. The term is built by recurrence (term *= lambda/i) instead of
// evaluating lambda^k / k! directly, so large k does not overflow.
func PoissonPmf(lambda float64, k int) (float64, error) {
	if lambda <= 0 {
		return 0, fmt.Errorf("poisson pmf: lambda must be positive, got %v", lambda)
	}
	if k < 0 {
		return 0, fmt.Errorf("poisson pmf: k must be non-negative, got %d", k)
	}

	term := math.Exp(-lambda)
	for i := 1; i <= k; i++ {
		term *= lambda / float64(i)
	}
	return term, nil
}

// ProbabilityUnder returns P(X <= threshold) for X ~ Poisson(lambda),
// accumulated iteratively over the pmf. Goal thresholds in football stay
// in single digits; that range is the tested envelope.
func ProbabilityUnder(lambda float64, threshold int) (float64, error) {
	if lambda <= 0 {
		return 0, fmt.Errorf("poisson cumulative: lambda must be positive, got %v", lambda)
	}
	if threshold < 0 {
		return 0, fmt.Errorf("poisson cumulative: threshold must be non-negative, got %d", threshold)
	}

	term := math.Exp(-lambda)
	sum := term
	for i := 1; i <= threshold; i++ {
		term *= lambda / float64(i)
		sum += term
	}
	return sum, nil
}

// ProbabilityOver returns P(X > threshold), the complement of
// ProbabilityUnder at the same threshold.
func ProbabilityOver(lambda float64, threshold int) (float64, error) {
	under, err := ProbabilityUnder(lambda, threshold)
	if err != nil {
		return 0, err
	}
	return 1 - under, nil
}
