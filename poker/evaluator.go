package poker

import (
	"fmt"
	"math/bits"
)

// HandRank represents the strength of a poker hand. Higher values are
// stronger, so plain integer comparison orders hands.
//
// Layout: bits 20-23 hold the HandType, bits 0-19 hold up to five
// tie-break ranks as nibbles (most significant first). Each nibble stores
// rank+1 so a missing kicker sorts below any real card.
type HandRank uint32

// HandType enumerates the categories of poker hands ordered from weakest to strongest.
type HandType uint8

const (
	HighCard HandType = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

const (
	typeShift   = 20
	nibbleCount = 5
)

// String returns a human-readable category name.
func (t HandType) String() string {
	switch t {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// Type returns the category of the hand.
func (hr HandRank) Type() HandType {
	return HandType(hr >> typeShift)
}

// String returns the category name, e.g. "Two Pair".
func (hr HandRank) String() string {
	return hr.Type().String()
}

// ranks decodes the tie-break ranks, skipping empty slots.
func (hr HandRank) ranks() []uint8 {
	out := make([]uint8, 0, nibbleCount)
	for i := nibbleCount - 1; i >= 0; i-- {
		n := uint8((hr >> (4 * i)) & 0xF)
		if n == 0 {
			continue
		}
		out = append(out, n-1)
	}
	return out
}

// Describe returns a detailed description such as "Pair of Aces" or
// "Full House, Kings over Sevens".
func (hr HandRank) Describe() string {
	r := hr.ranks()
	if len(r) == 0 {
		return hr.String()
	}

	switch hr.Type() {
	case HighCard:
		return fmt.Sprintf("%s High", RankName(r[0]))
	case Pair:
		return fmt.Sprintf("Pair of %s", plural(r[0]))
	case TwoPair:
		return fmt.Sprintf("Two Pair, %s and %s", plural(r[0]), plural(r[1]))
	case ThreeOfAKind:
		return fmt.Sprintf("Three of a Kind, %s", plural(r[0]))
	case Straight:
		return fmt.Sprintf("Straight, %s High", RankName(r[0]))
	case Flush:
		return fmt.Sprintf("Flush, %s High", RankName(r[0]))
	case FullHouse:
		return fmt.Sprintf("Full House, %s over %s", plural(r[0]), plural(r[1]))
	case FourOfAKind:
		return fmt.Sprintf("Four of a Kind, %s", plural(r[0]))
	case StraightFlush:
		if r[0] == Ace {
			return "Royal Flush"
		}
		return fmt.Sprintf("Straight Flush, %s High", RankName(r[0]))
	default:
		return hr.String()
	}
}

func plural(rank uint8) string {
	if rank == Six {
		return "Sixes"
	}
	return RankName(rank) + "s"
}

// CompareHands returns 1 if a beats b, -1 if b beats a and 0 for a tie.
func CompareHands(a, b HandRank) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

// Evaluator is the default hand-ranking oracle.
type Evaluator struct{}

// Rank evaluates the best hand that can be made from the given cards.
func (Evaluator) Rank(cards []Card) HandRank {
	return Evaluate(cards...)
}

// Evaluate ranks between zero and seven cards. Fewer than five cards can
// only make pairs, trips or quads; straights and flushes need five.
// Duplicate cards collapse into one.
func Evaluate(cards ...Card) HandRank {
	return EvaluateHand(NewHand(cards...))
}

// EvaluateHand ranks the cards held in a Hand bitset.
func EvaluateHand(hand Hand) HandRank {
	var counts [13]uint8
	var rankMask uint16
	flushSuit := -1
	for suit := uint8(0); suit < 4; suit++ {
		suitMask := hand.GetSuitMask(suit)
		rankMask |= suitMask
		if bits.OnesCount16(suitMask) >= 5 {
			flushSuit = int(suit)
		}
		for rank := uint8(0); rank < 13; rank++ {
			if suitMask&(1<<rank) != 0 {
				counts[rank]++
			}
		}
	}

	if flushSuit >= 0 {
		suitMask := hand.GetSuitMask(uint8(flushSuit))
		if high, ok := straightHigh(suitMask); ok {
			return makeRank(StraightFlush, high)
		}
		return makeRank(Flush, topRanks(suitMask, 5)...)
	}

	if quad := findNOfAKind(counts, 4, -1); quad >= 0 {
		kickers := findKickers(counts, 1, uint8(quad))
		return makeRank(FourOfAKind, append([]uint8{uint8(quad)}, kickers...)...)
	}

	trips := findNOfAKind(counts, 3, -1)
	if trips >= 0 {
		if pair := findNOfAKind(counts, 2, trips); pair >= 0 {
			return makeRank(FullHouse, uint8(trips), uint8(pair))
		}
	}

	if high, ok := straightHigh(rankMask); ok {
		return makeRank(Straight, high)
	}

	if trips >= 0 {
		kickers := findKickers(counts, 2, uint8(trips))
		return makeRank(ThreeOfAKind, append([]uint8{uint8(trips)}, kickers...)...)
	}

	pair1 := findNOfAKind(counts, 2, -1)
	if pair1 >= 0 {
		if pair2 := findNOfAKind(counts, 2, pair1); pair2 >= 0 {
			kickers := findKickers(counts, 1, uint8(pair1), uint8(pair2))
			return makeRank(TwoPair, append([]uint8{uint8(pair1), uint8(pair2)}, kickers...)...)
		}
		kickers := findKickers(counts, 3, uint8(pair1))
		return makeRank(Pair, append([]uint8{uint8(pair1)}, kickers...)...)
	}

	return makeRank(HighCard, topRanks(rankMask, 5)...)
}

func makeRank(t HandType, ranks ...uint8) HandRank {
	hr := HandRank(t) << typeShift
	for i, r := range ranks {
		if i >= nibbleCount {
			break
		}
		hr |= HandRank(r+1) << (4 * (nibbleCount - 1 - i))
	}
	return hr
}

// findNOfAKind finds the highest rank held at least n times, excluding one rank (-1 for none)
func findNOfAKind(counts [13]uint8, n uint8, except int) int {
	for rank := 12; rank >= 0; rank-- {
		if rank != except && counts[rank] >= n {
			return rank
		}
	}
	return -1
}

// findKickers finds the top n ranks excluding used ranks
func findKickers(counts [13]uint8, n int, used ...uint8) []uint8 {
	kickers := make([]uint8, 0, n)
	for rank := 12; rank >= 0 && len(kickers) < n; rank-- {
		if counts[rank] == 0 || contains(used, uint8(rank)) {
			continue
		}
		kickers = append(kickers, uint8(rank))
	}
	return kickers
}

func contains(ranks []uint8, r uint8) bool {
	for _, x := range ranks {
		if x == r {
			return true
		}
	}
	return false
}

// topRanks returns the n highest ranks present in mask
func topRanks(mask uint16, n int) []uint8 {
	out := make([]uint8, 0, n)
	for rank := 12; rank >= 0 && len(out) < n; rank-- {
		if mask&(1<<rank) != 0 {
			out = append(out, uint8(rank))
		}
	}
	return out
}

// straightHigh returns the high card of the best straight in mask.
func straightHigh(mask uint16) (uint8, bool) {
	for high := 12; high >= 4; high-- {
		straightMask := uint16(0x1F) << (high - 4)
		if mask&straightMask == straightMask {
			return uint8(high), true
		}
	}
	// Wheel: A-2-3-4-5
	if mask&0x100F == 0x100F {
		return Five, true
	}
	return 0, false
}
