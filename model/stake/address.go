package stake

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"
)

// AddressLength is the byte length of account addresses.
const AddressLength = 32

// Address is a 32-byte account address. Validator identities are addressed
// by the account derived from their consensus public key.
type Address [AddressLength]byte

// SystemAddress is the well-known identity used as the proposer of NIL
// blocks, where consensus produced no real proposer.
var SystemAddress = Address{}

// DeriveAddress derives the account address bound to a consensus public key.
// The address is the SHA3-256 digest of the raw key bytes.
func DeriveAddress(consensusPubkey []byte) Address {
	var addr Address
	h := sha3.New256()
	h.Write(consensusPubkey)
	copy(addr[:], h.Sum(nil))
	return addr
}

// HexToAddress parses a hex string (with or without 0x prefix) into an
// address.
func HexToAddress(s string) (Address, error) {
	if len(s) >= 2 && s[0:2] == "0x" {
		s = s[2:]
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return Address{}, errors.Wrap(err, "invalid address hex")
	}
	if len(b) != AddressLength {
		return Address{}, errors.Errorf("invalid address length (%d != %d)", len(b), AddressLength)
	}
	var addr Address
	copy(addr[:], b)
	return addr, nil
}

// Hex returns the hex string representation of the address.
func (a Address) Hex() string {
	return "0x" + hex.EncodeToString(a[:])
}

func (a Address) String() string {
	return a.Hex()
}

// IsSystem returns true if the address is the NIL-block system identity.
func (a Address) IsSystem() bool {
	return a == SystemAddress
}

func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Hex())
}

func (a *Address) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("could not decode address: %w", err)
	}
	addr, err := HexToAddress(s)
	if err != nil {
		return fmt.Errorf("could not parse address: %w", err)
	}
	*a = addr
	return nil
}
