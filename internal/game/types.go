// Package game holds the domain model of the card-game economy: record
// types, their bounds, and the overflow rules their mutations obey.
package game

import (
	"fmt"
	"time"
)

// Bounds and fixed rewards. These match the persisted layout: every
// variable-length field has an explicit maximum.
const (
	MaxCardCreators   = 10
	MaxNameLen        = 32
	MaxUsernameLen    = 32
	MaxDescriptionLen = 200
	MaxImageURILen    = 200
	MaxPoolCards      = 100
	MaxDecks          = 5
	MaxDeckCards      = 10
	MaxPackCards      = 100

	FreeStarterTickets = 10
	BaseTrophyGain     = 30
	TrophyLoss         = 30
	WinReward          = 100

	// Marketplace fee: floor(price * FeeNumerator / FeeDenominator), burned.
	FeeNumerator   = 25
	FeeDenominator = 1000

	// ExchangeScale is the base-unit denomination of the external token:
	// credit = floor(externalAmount * rate / ExchangeScale).
	ExchangeScale = 1_000_000_000
)

// Rarity is a named probability band governing which pool a draw samples.
type Rarity uint8

const (
	RarityCommon Rarity = iota
	RarityRare
	RarityLegendary
)

// ParseRarity converts a stored discriminant back into a Rarity.
func ParseRarity(d uint8) (Rarity, error) {
	switch Rarity(d) {
	case RarityCommon, RarityRare, RarityLegendary:
		return Rarity(d), nil
	default:
		return 0, ErrInvalidRarity
	}
}

func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "common"
	case RarityRare:
		return "rare"
	case RarityLegendary:
		return "legendary"
	default:
		return "unknown"
	}
}

// TraitType is the combat archetype of a card template.
type TraitType uint8

const (
	TraitWarrior TraitType = iota
	TraitArcher
	TraitAssassin
)

// ParseTrait converts a stored discriminant back into a TraitType.
func ParseTrait(d uint8) (TraitType, error) {
	switch TraitType(d) {
	case TraitWarrior, TraitArcher, TraitAssassin:
		return TraitType(d), nil
	default:
		return 0, ErrInvalidTrait
	}
}

func (t TraitType) String() string {
	switch t {
	case TraitWarrior:
		return "warrior"
	case TraitArcher:
		return "archer"
	case TraitAssassin:
		return "assassin"
	default:
		return "unknown"
	}
}

// Config is the singleton game configuration. Authority is fixed at
// initialization; creators grow via authority-only appends up to
// MaxCardCreators.
type Config struct {
	Authority     Identity
	CardCreators  []Identity
	PackPrice     int64
	PackCardCount int
	ExchangeRate  int64
	TicketPrice   int64
	CommonPct     uint8
	RarePct       uint8
	LegendaryPct  uint8
}

// IsAuthorizedCreator reports whether id may create card templates.
func (c Config) IsAuthorizedCreator(id Identity) bool {
	if id == c.Authority {
		return true
	}
	for _, creator := range c.CardCreators {
		if creator == id {
			return true
		}
	}

	return false
}

// Template is the immutable stat-range definition of a card type.
type Template struct {
	CardTypeID  uint32
	Name        string
	Trait       TraitType
	Rarity      Rarity
	MinAttack   uint16
	MaxAttack   uint16
	MinHealth   uint16
	MaxHealth   uint16
	Description string
	ImageURI    string
}

// Profile is a player's economy ledger. Balances never wrap: every update
// is overflow-checked, except trophy loss which saturates at zero.
type Profile struct {
	Owner          Identity
	Username       string
	StarterClaimed bool
	Tickets        int64
	Currency       int64
	Trophies       int32
	TotalWins      int32
	TotalLosses    int32
	WinStreak      int32
}

// Custody says who currently controls a card's transfer rights. While a
// card is listed it belongs to the listing's escrow, not the seller; the
// Owner field stays untouched until a sale resolves.
type Custody uint8

const (
	CustodyOwner Custody = iota
	CustodyEscrow
)

func (c Custody) String() string {
	if c == CustodyEscrow {
		return "escrow"
	}

	return "owner"
}

// ParseCustody converts a stored custody tag back into a Custody.
func ParseCustody(s string) (Custody, error) {
	switch s {
	case "owner":
		return CustodyOwner, nil
	case "escrow":
		return CustodyEscrow, nil
	default:
		return 0, fmt.Errorf("unknown custody tag %q", s)
	}
}

// Card is a minted card instance with stats fixed at draw time.
type Card struct {
	Ref        CardRef
	CardTypeID uint32
	Attack     uint16
	Health     uint16
	Owner      Identity
	Custody    Custody
}

// Deck is one of a player's up to MaxDecks saved decks. A "deleted" deck is
// cleared in place so the slot stays reusable.
type Deck struct {
	Owner  Identity
	Slot   uint8
	Name   string
	Cards  []CardRef
	Active bool
}

// Listing is an active marketplace escrow. The record is destroyed on
// cancel or sale, so an existing row is always active.
type Listing struct {
	Seller    Identity
	Card      CardRef
	Price     int64
	Active    bool
	CreatedAt time.Time
}
