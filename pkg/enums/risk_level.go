package enums

import "fmt"

// RiskLevel is the banded interpretation of a modification risk score.
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

var validRiskLevels = []RiskLevel{
	RiskLevelLow,
	RiskLevelMedium,
	RiskLevelHigh,
}

// String implements fmt.Stringer.
func (l RiskLevel) String() string {
	return string(l)
}

// IsValid reports whether the value is known.
func (l RiskLevel) IsValid() bool {
	for _, candidate := range validRiskLevels {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseRiskLevel converts raw input into a RiskLevel.
func ParseRiskLevel(value string) (RiskLevel, error) {
	for _, candidate := range validRiskLevels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid risk level %q", value)
}
