package casino

import (
	"cmp"
	"maps"
	"slices"

	"github.com/lox/holdem-casino/poker"
)

// Outcome is how a round ended.
type Outcome int

const (
	// NoContest means nobody was dealt in.
	NoContest Outcome = iota
	// Win means a single player holds the best hand.
	Win
	// Push means two or more players tie for the best hand.
	Push
)

func (o Outcome) String() string {
	switch o {
	case NoContest:
		return "no contest"
	case Win:
		return "win"
	case Push:
		return "push"
	default:
		return "unknown"
	}
}

// Standing is one player's hand and its rank in a round.
type Standing struct {
	Player Player
	Hand   []poker.Card
	Rank   poker.HandRank
}

// leadingSet returns the best rank among standings and every player who
// holds it. Standings may arrive in any order: HandRank comparison is a
// strict total order, so the result never depends on iteration order.
// Leaders are returned sorted by name, then identity.
func leadingSet(standings []Standing) (poker.HandRank, []Standing) {
	var (
		best    poker.HandRank
		hasBest bool
		leaders = make(map[PlayerID]Standing)
	)

	for _, s := range standings {
		if !hasBest {
			best, hasBest = s.Rank, true
			leaders[s.Player.ID] = s
			continue
		}
		switch poker.CompareHands(s.Rank, best) {
		case 1:
			best = s.Rank
			clear(leaders)
			leaders[s.Player.ID] = s
		case 0:
			leaders[s.Player.ID] = s
		default:
			// Beaten; no effect.
		}
	}

	out := slices.Collect(maps.Values(leaders))
	slices.SortFunc(out, func(a, b Standing) int {
		return cmp.Or(cmp.Compare(a.Player.Name, b.Player.Name), cmp.Compare(a.Player.ID, b.Player.ID))
	})
	return best, out
}

// outcomeFor classifies a leading set.
func outcomeFor(leaders []Standing) Outcome {
	switch len(leaders) {
	case 0:
		return NoContest
	case 1:
		return Win
	default:
		return Push
	}
}
