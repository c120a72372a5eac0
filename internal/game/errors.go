package game

import "errors"

// Kind classifies a domain error. Every kind aborts the enclosing
// transaction; the kind only decides how the failure is reported.
type Kind uint8

const (
	KindValidation    Kind = iota // bad input
	KindAuthorization             // caller is not authority/creator/owner/seller
	KindState                     // wrong lifecycle state or duplicate key
	KindArithmetic                // overflow on a balance update
)

// Error is a tagged domain error with a machine-readable code.
type Error struct {
	Kind Kind
	Code string
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

var (
	ErrEmptyString      = &Error{KindValidation, "EMPTY_STRING", "name or description cannot be empty"}
	ErrStringTooLong    = &Error{KindValidation, "STRING_TOO_LONG", "string exceeds maximum length"}
	ErrInvalidStatRange = &Error{KindValidation, "INVALID_STAT_RANGE", "min cannot be greater than max"}
	ErrInvalidRarity    = &Error{KindValidation, "INVALID_RARITY", "invalid rarity"}
	ErrInvalidTrait     = &Error{KindValidation, "INVALID_TRAIT", "invalid trait type"}
	ErrInvalidAmount    = &Error{KindValidation, "INVALID_AMOUNT", "amount must be greater than 0"}
	ErrInvalidPrice     = &Error{KindValidation, "INVALID_PRICE", "price must be greater than 0"}
	ErrInvalidBands     = &Error{KindValidation, "INVALID_BANDS", "rarity bands must sum to 100"}
	ErrInvalidDeckSlot  = &Error{KindValidation, "INVALID_DECK_SLOT", "deck slot must be 0-4"}
	ErrTooManyDeckCards = &Error{KindValidation, "TOO_MANY_DECK_CARDS", "too many cards in deck (max 10)"}
	ErrPackTooLarge     = &Error{KindValidation, "PACK_TOO_LARGE", "pack card count exceeds maximum"}

	ErrSamePlayer = &Error{KindValidation, "SAME_PLAYER", "winner and loser must differ"}

	ErrUnauthorized = &Error{KindAuthorization, "UNAUTHORIZED", "unauthorized access"}

	ErrAlreadyInitialized  = &Error{KindState, "ALREADY_INITIALIZED", "game config already initialized"}
	ErrCreatorsListFull    = &Error{KindState, "CREATORS_LIST_FULL", "card creators list is full"}
	ErrCreatorExists       = &Error{KindState, "CREATOR_EXISTS", "creator already registered"}
	ErrDuplicateTemplate   = &Error{KindState, "DUPLICATE_CARD_TYPE", "card type id already exists"}
	ErrPoolFull            = &Error{KindState, "POOL_FULL", "rarity pool is full"}
	ErrEmptyPool           = &Error{KindState, "EMPTY_POOL", "rarity pool is empty"}
	ErrPlayerExists        = &Error{KindState, "PLAYER_EXISTS", "player already registered"}
	ErrStarterClaimed      = &Error{KindState, "STARTER_CLAIMED", "starter tickets already claimed"}
	ErrInsufficientTickets = &Error{KindState, "INSUFFICIENT_TICKETS", "insufficient gacha tickets"}
	ErrInsufficientBalance = &Error{KindState, "INSUFFICIENT_BALANCE", "insufficient currency balance"}
	ErrDuplicateListing    = &Error{KindState, "DUPLICATE_LISTING", "card is already listed"}
	ErrListingNotActive    = &Error{KindState, "LISTING_NOT_ACTIVE", "listing is not active"}
	ErrCannotBuyOwnCard    = &Error{KindState, "CANNOT_BUY_OWN_CARD", "cannot buy your own card"}
	ErrCardInEscrow        = &Error{KindState, "CARD_IN_ESCROW", "card is held in escrow"}

	ErrOverflow = &Error{KindArithmetic, "NUMERICAL_OVERFLOW", "numerical overflow"}
)

// KindOf reports the Kind of a domain error and whether err is one.
func KindOf(err error) (Kind, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind, true
	}

	return 0, false
}
