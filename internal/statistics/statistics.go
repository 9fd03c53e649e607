package statistics

import (
	"cmp"
	"fmt"
	"maps"
	"math"
	"slices"
)

// Participant identifies a player in a round. Counters are keyed by ID;
// the name is only for display.
type Participant struct {
	ID   string
	Name string
}

// RoundResult represents the outcome of a single resolved round
type RoundResult struct {
	Players       []Participant // everyone dealt in
	Leaders       []Participant // the winner, or every player in a push
	WinningHand   string        // hand type of the leading hand, empty for no contest
	StartingHands []string      // hole-card category of each leader
}

// PlayerStats tracks results for a single player
type PlayerStats struct {
	Name   string
	Rounds int
	Wins   int
	Pushes int
}

// Statistics aggregates round outcomes across one or more tables
type Statistics struct {
	Rounds     int
	Wins       int // rounds with an outright winner
	Pushes     int // rounds split between two or more players
	NoContests int // rounds nobody was dealt into

	Players       map[string]*PlayerStats // keyed by player ID
	WinningHands  map[string]int // leading hand type per decided round
	StartingHands map[string]int // hole-card category of every leader
}

// Add incorporates a new round result into the statistics
func (s *Statistics) Add(result RoundResult) {
	s.Rounds++
	switch len(result.Leaders) {
	case 0:
		s.NoContests++
	case 1:
		s.Wins++
	default:
		s.Pushes++
	}

	if s.Players == nil {
		s.Players = make(map[string]*PlayerStats)
	}
	for _, p := range result.Players {
		s.player(p.ID, p.Name).Rounds++
	}
	for _, p := range result.Leaders {
		if len(result.Leaders) == 1 {
			s.player(p.ID, p.Name).Wins++
		} else {
			s.player(p.ID, p.Name).Pushes++
		}
	}

	if result.WinningHand != "" {
		if s.WinningHands == nil {
			s.WinningHands = make(map[string]int)
		}
		s.WinningHands[result.WinningHand]++
	}

	for _, category := range result.StartingHands {
		if s.StartingHands == nil {
			s.StartingHands = make(map[string]int)
		}
		s.StartingHands[category]++
	}
}

func (s *Statistics) player(id, name string) *PlayerStats {
	ps, ok := s.Players[id]
	if !ok {
		ps = &PlayerStats{Name: name}
		s.Players[id] = ps
	}
	return ps
}

// Merge folds other into s
func (s *Statistics) Merge(other *Statistics) {
	if other == nil {
		return
	}
	s.Rounds += other.Rounds
	s.Wins += other.Wins
	s.Pushes += other.Pushes
	s.NoContests += other.NoContests

	if len(other.Players) > 0 && s.Players == nil {
		s.Players = make(map[string]*PlayerStats, len(other.Players))
	}
	for id, ps := range other.Players {
		mine := s.player(id, ps.Name)
		mine.Rounds += ps.Rounds
		mine.Wins += ps.Wins
		mine.Pushes += ps.Pushes
	}

	if len(other.WinningHands) > 0 && s.WinningHands == nil {
		s.WinningHands = make(map[string]int, len(other.WinningHands))
	}
	for hand, n := range other.WinningHands {
		s.WinningHands[hand] += n
	}

	if len(other.StartingHands) > 0 && s.StartingHands == nil {
		s.StartingHands = make(map[string]int, len(other.StartingHands))
	}
	for category, n := range other.StartingHands {
		s.StartingHands[category] += n
	}
}

// WinRate returns the fraction of a player's rounds they won outright
func (s *Statistics) WinRate(id string) float64 {
	ps, ok := s.Players[id]
	if !ok || ps.Rounds == 0 {
		return 0
	}
	return float64(ps.Wins) / float64(ps.Rounds)
}

// WinRateCI95 returns the 95% confidence interval for a player's win
// rate using the normal approximation
func (s *Statistics) WinRateCI95(id string) (float64, float64) {
	ps, ok := s.Players[id]
	if !ok || ps.Rounds == 0 {
		return 0, 0
	}
	p := s.WinRate(id)
	margin := 1.96 * math.Sqrt(p*(1-p)/float64(ps.Rounds))
	return math.Max(0, p-margin), math.Min(1, p+margin)
}

// PushRate returns the fraction of rounds that ended in a push
func (s *Statistics) PushRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Pushes) / float64(s.Rounds)
}

// PlayerIDs returns every player seen, ordered by name and then ID
func (s *Statistics) PlayerIDs() []string {
	ids := slices.Collect(maps.Keys(s.Players))
	slices.SortFunc(ids, func(a, b string) int {
		return cmp.Or(cmp.Compare(s.Players[a].Name, s.Players[b].Name), cmp.Compare(a, b))
	})
	return ids
}

// HandCount is a winning hand type and how often it led a round
type HandCount struct {
	Hand  string
	Count int
}

// WinningHandCounts returns the hand type histogram ordered by count,
// most common first
func (s *Statistics) WinningHandCounts() []HandCount {
	return sortedCounts(s.WinningHands)
}

// StartingHandCounts returns the leaders' hole-card categories ordered by
// count, most common first
func (s *Statistics) StartingHandCounts() []HandCount {
	return sortedCounts(s.StartingHands)
}

func sortedCounts(histogram map[string]int) []HandCount {
	counts := make([]HandCount, 0, len(histogram))
	for hand, n := range histogram {
		counts = append(counts, HandCount{Hand: hand, Count: n})
	}
	slices.SortFunc(counts, func(a, b HandCount) int {
		return cmp.Or(cmp.Compare(b.Count, a.Count), cmp.Compare(a.Hand, b.Hand))
	})
	return counts
}

// Validate performs consistency checks on the counters
func (s *Statistics) Validate() error {
	if s.Wins+s.Pushes+s.NoContests != s.Rounds {
		return fmt.Errorf("outcome mismatch: wins=%d pushes=%d no-contests=%d rounds=%d",
			s.Wins, s.Pushes, s.NoContests, s.Rounds)
	}

	decided := 0
	for _, n := range s.WinningHands {
		decided += n
	}
	if decided != s.Wins+s.Pushes {
		return fmt.Errorf("winning hand total (%d) does not match decided rounds (%d)",
			decided, s.Wins+s.Pushes)
	}

	totalWins := 0
	for id, ps := range s.Players {
		if ps.Wins+ps.Pushes > ps.Rounds {
			return fmt.Errorf("player %s (%s): wins (%d) and pushes (%d) exceed rounds (%d)",
				ps.Name, id, ps.Wins, ps.Pushes, ps.Rounds)
		}
		totalWins += ps.Wins
	}
	if totalWins != s.Wins {
		return fmt.Errorf("player wins total (%d) does not match outright wins (%d)", totalWins, s.Wins)
	}

	return nil
}
