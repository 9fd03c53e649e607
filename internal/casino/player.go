package casino

import (
	"github.com/lox/holdem-casino/internal/playerid"
)

// DefaultBuyInChips is the balance given to players created without an
// explicit chip count.
const DefaultBuyInChips = 100

// PlayerID is an opaque, globally unique player identity.
type PlayerID string

// IDGenerator produces fresh player identities.
type IDGenerator interface {
	Generate() string
}

// Player is a casino patron. Two players are the same player only when
// their IDs match; name and chips play no part in identity.
type Player struct {
	ID    PlayerID
	Name  string
	Chips int
}

// NewPlayer creates a player with a fresh identity. Negative chip counts
// are clamped to zero.
func NewPlayer(ids IDGenerator, name string, chips int) Player {
	if ids == nil {
		ids = playerid.NewGenerator(nil)
	}
	if chips < 0 {
		chips = 0
	}
	return Player{
		ID:    PlayerID(ids.Generate()),
		Name:  name,
		Chips: chips,
	}
}

// Equal reports whether p and other are the same player.
func (p Player) Equal(other Player) bool {
	return p.ID == other.ID
}

func (p Player) String() string {
	return p.Name
}
