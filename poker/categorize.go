package poker

// HoleCardCategory is a coarse strength bucket for a two-card starting hand
type HoleCardCategory string

const (
	CategoryPremium HoleCardCategory = "Premium"
	CategoryStrong  HoleCardCategory = "Strong"
	CategoryMedium  HoleCardCategory = "Medium"
	CategoryWeak    HoleCardCategory = "Weak"
	CategoryTrash   HoleCardCategory = "Trash"
	CategoryUnknown HoleCardCategory = "Unknown"
)

// Categorize buckets a starting hand. Anything other than two distinct
// valid cards is CategoryUnknown.
//
//	Premium: JJ+, AK
//	Strong:  TT, AQ, AJ
//	Medium:  77-99, suited broadway
//	Weak:    22-66, suited connectors and one-gappers
//	Trash:   everything else
func Categorize(hole []Card) HoleCardCategory {
	if len(hole) != 2 || hole[0] == hole[1] {
		return CategoryUnknown
	}
	lo, hi := hole[0].Rank(), hole[1].Rank()
	if lo > Ace || hi > Ace {
		return CategoryUnknown
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	pair := lo == hi
	suited := hole[0].Suit() == hole[1].Suit()

	switch {
	case pair && lo >= Jack, lo == King && hi == Ace:
		return CategoryPremium
	case pair && lo == Ten, hi == Ace && (lo == Queen || lo == Jack):
		return CategoryStrong
	case pair && lo >= Seven, suited && lo >= Ten:
		return CategoryMedium
	case pair, suited && hi-lo <= 2:
		return CategoryWeak
	default:
		return CategoryTrash
	}
}
