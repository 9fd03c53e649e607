package poker

import (
	"testing"
)

func TestEvaluateHandTypes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		cards    string
		wantType HandType
		describe string
	}{
		{"As Ah", Pair, "Pair of Aces"},
		{"As Kh", HighCard, "Ace High"},
		{"6s 6h", Pair, "Pair of Sixes"},
		{"As Ks Qs Js Ts 2d 3c", StraightFlush, "Royal Flush"},
		{"As 2s 3s 4s 5s Kd Qc", StraightFlush, "Straight Flush, Five High"},
		{"9c 9d 9h 9s 2c", FourOfAKind, "Four of a Kind, Nines"},
		{"Kc Kd Kh 7s 7c 2d", FullHouse, "Full House, Kings over Sevens"},
		{"Kc Kd Kh 7s 7c 7d", FullHouse, "Full House, Kings over Sevens"},
		{"Ah 9h 7h 4h 2h Kd", Flush, "Flush, Ace High"},
		{"Ts 9h 8d 7c 6s", Straight, "Straight, Ten High"},
		{"Ad 2h 3c 4s 5d", Straight, "Straight, Five High"},
		{"Qc Qd Qh 5s 2c", ThreeOfAKind, "Three of a Kind, Queens"},
		{"Ac Ad Kh Ks 2c", TwoPair, "Two Pair, Aces and Kings"},
		{"2c 7d 9h Js Kc", HighCard, "King High"},
	}

	for _, tc := range tests {
		t.Run(tc.cards, func(t *testing.T) {
			t.Parallel()
			rank := Evaluate(MustParseCards(tc.cards)...)
			if rank.Type() != tc.wantType {
				t.Errorf("Type = %s, want %s", rank.Type(), tc.wantType)
			}
			if got := rank.Describe(); got != tc.describe {
				t.Errorf("Describe = %q, want %q", got, tc.describe)
			}
		})
	}
}

func TestEvaluateOrdering(t *testing.T) {
	t.Parallel()
	// Each entry beats the one after it.
	ordered := []string{
		"As Ks Qs Js Ts",
		"9c 9d 9h 9s Ac",
		"9c 9d 9h 9s Kc",
		"Kc Kd Kh 7s 7c",
		"Ah 9h 7h 4h 2h",
		"Ts 9h 8d 7c 6s",
		"Ad 2h 3c 4s 5d",
		"Qc Qd Qh 5s 2c",
		"Ac Ad Kh Ks 2c",
		"Ac Ad 3h 3s Kc",
		"As Ah",
		"3c 3d Ah Ks Qd",
		"2c 2d Ah Ks Qd",
		"As Kh",
		"As Qh",
		"",
	}

	ranks := make([]HandRank, len(ordered))
	for i, s := range ordered {
		ranks[i] = Evaluate(MustParseCards(s)...)
	}

	for i := 0; i+1 < len(ranks); i++ {
		if CompareHands(ranks[i], ranks[i+1]) != 1 {
			t.Errorf("%q (%s) should beat %q (%s)", ordered[i], ranks[i].Describe(), ordered[i+1], ranks[i+1].Describe())
		}
	}
}

func TestEvaluateIgnoresSuitAndOrder(t *testing.T) {
	t.Parallel()
	a := Evaluate(MustParseCards("As Ah")...)
	b := Evaluate(MustParseCards("Ad Ac")...)
	if a != b {
		t.Errorf("Pairs of aces should tie: %d vs %d", a, b)
	}

	c := Evaluate(MustParseCards("Kd 7c 2h")...)
	d := Evaluate(MustParseCards("2h Kd 7c")...)
	if c != d {
		t.Errorf("Card order should not matter: %d vs %d", c, d)
	}

	if CompareHands(a, a) != 0 {
		t.Error("A rank should tie with itself")
	}
}

func TestEvaluatorImplementsRanking(t *testing.T) {
	t.Parallel()
	var e Evaluator
	got := e.Rank(MustParseCards("Kc Kd"))
	if got.Describe() != "Pair of Kings" {
		t.Errorf("Rank = %q, want Pair of Kings", got.Describe())
	}
	if Evaluate().String() != "High Card" {
		t.Errorf("Empty hand should be High Card, got %s", Evaluate())
	}
}
