package game

import (
	crand "crypto/rand"
	"encoding/hex"
	"fmt"
)

// Identity is the pre-verified 32-byte public key of a caller or record
// owner. Authorization is a plain byte comparison against stored fields;
// signature verification happens before requests reach this package.
type Identity [32]byte

// ParseIdentity decodes a 64-character hex string into an Identity.
func ParseIdentity(s string) (Identity, error) {
	var id Identity

	b, err := hex.DecodeString(s)
	if err != nil {
		return id, fmt.Errorf("decode identity: %w", err)
	}
	if len(b) != len(id) {
		return id, fmt.Errorf("identity must be %d bytes, got %d", len(id), len(b))
	}

	copy(id[:], b)

	return id, nil
}

func (id Identity) String() string {
	return hex.EncodeToString(id[:])
}

func (id Identity) IsZero() bool {
	return id == Identity{}
}

// CardRef is the unique 32-byte token reference of a minted card instance.
// It doubles as the marketplace listing key: the store guarantees at most
// one active listing per card because the listing row is keyed by it.
type CardRef [32]byte

// NewCardRef generates a fresh high-entropy card reference.
func NewCardRef() (CardRef, error) {
	var ref CardRef

	_, err := crand.Read(ref[:])
	if err != nil {
		return ref, fmt.Errorf("read card ref entropy: %w", err)
	}

	return ref, nil
}

// ParseCardRef decodes a 64-character hex string into a CardRef.
func ParseCardRef(s string) (CardRef, error) {
	var ref CardRef

	b, err := hex.DecodeString(s)
	if err != nil {
		return ref, fmt.Errorf("decode card ref: %w", err)
	}
	if len(b) != len(ref) {
		return ref, fmt.Errorf("card ref must be %d bytes, got %d", len(ref), len(b))
	}

	copy(ref[:], b)

	return ref, nil
}

func (r CardRef) String() string {
	return hex.EncodeToString(r[:])
}
