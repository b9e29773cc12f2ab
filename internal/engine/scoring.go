package engine

import "github.com/WIlski54/Adaptives-Lernsystem/internal/oracle"

// ScoringPolicy selects how points are awarded per answered turn. The
// historical app variants disagreed on this, so it is a deployment
// choice rather than a constant.
type ScoringPolicy string

const (
	// ScoringFlat awards a fixed small increment per answered turn.
	ScoringFlat ScoringPolicy = "flat"
	// ScoringTiered awards points by the oracle's understanding label.
	ScoringTiered ScoringPolicy = "tiered"
)

const (
	flatTurnPoints     = 5
	tieredGoodPoints   = 10
	tieredMediumPoints = 5
)

// Valid reports whether p names a known policy.
func (p ScoringPolicy) Valid() bool {
	return p == ScoringFlat || p == ScoringTiered
}

// Points returns the score increment for one answered turn. Always
// non-negative, so the cumulative score never decreases.
func (p ScoringPolicy) Points(understanding string) int {
	if p == ScoringFlat {
		return flatTurnPoints
	}
	switch understanding {
	case oracle.UnderstandingGood:
		return tieredGoodPoints
	case oracle.UnderstandingMedium:
		return tieredMediumPoints
	default:
		return 0
	}
}
