package common

import (
	"crypto/sha256"

	"github.com/privacybydesign/spyfall/big"
)

// HashFixedWidth computes the sha256 hash over the big-endian representation of x,
// left-padded with zeroes to width bytes. If x does not fit in width bytes its
// minimal representation is hashed instead.
func HashFixedWidth(x *big.Int, width int) [sha256.Size]byte {
	if n := (x.BitLen() + 7) / 8; n > width {
		width = n
	}
	return sha256.Sum256(x.FillBytes(make([]byte, width)))
}
