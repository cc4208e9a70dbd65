// Package cbor provides the binary wire encoding of challenges and responses,
// by wrapping functions provided by github.com/fxamacker/cbor.
//
// 1. CBOR is encoded using Core Deterministic Encoding defined in
//    RFC 8949, so that equal challenges always encode to equal bytes.
// 2. CBOR decoder detects and rejects duplicate map keys and caps array and
//    byte string sizes, since the input is pasted in by another player.
//
// For more info, see:
//   * https://github.com/fxamacker/cbor
//   * https://tools.ietf.org/html/rfc8949
package cbor

import (
	"github.com/fxamacker/cbor/v2" // imports as cbor
)

// MaxArrayElements bounds the number of puzzles a decoded challenge may hold.
const MaxArrayElements = 1 << 16

// MaxMapPairs bounds the number of fields of a decoded structure.
const MaxMapPairs = 64

// MaxNestedLevels bounds nesting; challenges and responses are at most three levels deep.
const MaxNestedLevels = 8

var (
	encOptions = cbor.EncOptions{
		// Core Deterministic Encoding, see https://datatracker.ietf.org/doc/html/rfc8949#section-4.2.1
		IndefLength:   cbor.IndefLengthForbidden,
		ShortestFloat: cbor.ShortestFloat16,
		Sort:          cbor.SortCoreDeterministic,

		// Big integers are encoded as decimal text by the big package, never as tagged bignums
		TagsMd: cbor.TagsForbidden,
	}

	decOptions = cbor.DecOptions{
		IndefLength: cbor.IndefLengthForbidden,

		DupMapKey:        cbor.DupMapKeyEnforcedAPF,
		MaxArrayElements: MaxArrayElements,
		MaxMapPairs:      MaxMapPairs,
		MaxNestedLevels:  MaxNestedLevels,

		TagsMd: cbor.TagsForbidden,

		// Unknown fields are allowed for forward compatibility
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}

	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	if encMode, err = encOptions.EncMode(); err != nil {
		panic(err)
	}
	if decMode, err = decOptions.DecMode(); err != nil {
		panic(err)
	}
}

// Marshal encodes src into a CBOR-encoded byte slice.
func Marshal(src interface{}) ([]byte, error) {
	return encMode.Marshal(src)
}

// Unmarshal decodes CBOR in data into dst.
func Unmarshal(data []byte, dst interface{}) error {
	return decMode.Unmarshal(data, dst)
}
