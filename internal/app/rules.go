package app

import (
	"time"

	"millionaire-game-service/internal/domain"
)

// Rules holds the deployment-configurable game parameters: the prize
// ladder, the fireproof milestone levels, and the wall-clock budget for
// a whole session. Amounts and milestones are configuration, not engine
// logic; defaults follow the classic TV format.
type Rules struct {
	// Ladder maps cleared level index 0..14 to the prize amount banked
	// for clearing it. Must hold exactly one ascending amount per level.
	Ladder []int
	// FireproofLevels are cleared-level indexes whose ladder amount is
	// kept as a floor after a later loss.
	FireproofLevels []int
	// TimeBudget is how long a session may run before any answer is
	// treated as a timeout.
	TimeBudget time.Duration
}

// DefaultRules returns the classic ladder: 100 to 1,000,000 with
// fireproof floors after questions 5, 10, and 15, and a 35 minute clock.
func DefaultRules() Rules {
	return Rules{
		Ladder: []int{
			100, 200, 300, 500, 1000,
			2000, 4000, 8000, 16000, 32000,
			64000, 125000, 250000, 500000, 1000000,
		},
		FireproofLevels: []int{4, 9, 14},
		TimeBudget:      35 * time.Minute,
	}
}

// normalized fills any zero-valued field from the defaults so callers
// can override only what they care about.
func (r Rules) normalized() Rules {
	def := DefaultRules()
	if len(r.Ladder) != domain.QuestionLevels {
		r.Ladder = def.Ladder
	}
	if len(r.FireproofLevels) == 0 {
		r.FireproofLevels = def.FireproofLevels
	}
	if r.TimeBudget <= 0 {
		r.TimeBudget = def.TimeBudget
	}
	return r
}

// Tier returns the prize banked after clearing the given number of
// levels: the ladder amount of the last cleared level, zero before the
// first.
func (r Rules) Tier(cleared int) int {
	if cleared <= 0 {
		return 0
	}
	if cleared > len(r.Ladder) {
		cleared = len(r.Ladder)
	}
	return r.Ladder[cleared-1]
}

// MaxPrize is the amount for clearing the whole ladder.
func (r Rules) MaxPrize() int {
	return r.Ladder[len(r.Ladder)-1]
}

// FireproofFloor returns the prize retained on a loss after clearing
// the given number of levels: the ladder amount of the highest
// fireproof level already cleared, zero below the first milestone.
func (r Rules) FireproofFloor(cleared int) int {
	floor := 0
	for _, level := range r.FireproofLevels {
		if level < cleared && level < len(r.Ladder) && r.Ladder[level] > floor {
			floor = r.Ladder[level]
		}
	}
	return floor
}
