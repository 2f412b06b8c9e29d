package services

import "math"

const (
	riskBase           = 10.0
	riskCap            = 95.0
	riskLargeAmount    = 50000.0
	riskVeryLarge      = 100000.0
	riskLowCreditScore = 600
)

// RiskScore maps application attributes to a bounded heuristic risk score.
// creditScore is nil when the applicant did not provide one.
func RiskScore(amount float64, creditScore *int, previousDefaults bool) int {
	score := riskBase
	if amount > riskLargeAmount {
		score += 30
	}
	if amount > riskVeryLarge {
		score += 20
	}
	if creditScore != nil && *creditScore < riskLowCreditScore {
		score += 30
	}
	if previousDefaults {
		score += 20
	}
	return int(math.Min(riskCap, math.Round(score)))
}
