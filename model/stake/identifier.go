package stake

import (
	"encoding/hex"

	"github.com/vmihailenco/msgpack/v4"
	"golang.org/x/crypto/sha3"
)

// Identifier is a 32-byte content digest used to fingerprint entities such
// as DKG sessions and consensus-info snapshots.
type Identifier [32]byte

// ZeroID is the zero value identifier.
var ZeroID = Identifier{}

func (id Identifier) String() string {
	return hex.EncodeToString(id[:])
}

// MakeID produces the identifier of an arbitrary entity by hashing its
// canonical msgpack encoding. Entities must be deterministic under msgpack
// for MakeID to be stable.
func MakeID(entity interface{}) Identifier {
	data, err := msgpack.Marshal(entity)
	if err != nil {
		// all entities fingerprinted by this package are plain structs of
		// scalars and byte slices, which msgpack always encodes
		panic("could not encode entity: " + err.Error())
	}
	var id Identifier
	h := sha3.New256()
	h.Write(data)
	copy(id[:], h.Sum(nil))
	return id
}
