package common

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sync/atomic"

	"github.com/privacybydesign/spyfall/big"
)

var globalCprng *CPRNG

// CPRNG is a simple thread-safe cryptographically secure pseudo-random number generator.
// Implemented with AES in counter mode with the seed as key and an
// atomic uint64 as counter.
//
// It feeds the starting points and polynomial constants of the factoring search,
// which runs in many goroutines at once during a brute force, so reads must not contend.
type CPRNG struct {
	block   cipher.Block
	counter uint64
}

func NewCPRNG(seed *[32]byte) (*CPRNG, error) {
	c, err := aes.NewCipher(seed[:])
	if err != nil {
		return nil, err
	}
	return &CPRNG{block: c}, nil
}

func init() {
	var seed [32]byte
	if _, err := rand.Read(seed[:]); err != nil {
		panic(fmt.Sprintf("Failed to generate seed for CPRNG: %v", err))
	}
	cprng, err := NewCPRNG(&seed)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize CPRNG: %v", err))
	}
	globalCprng = cprng
}

func (c *CPRNG) Read(buf []byte) (n int, err error) {
	n = len(buf)
	if n == 0 {
		return
	}

	// Reserve all blocks we need at once, so concurrent readers never share a block.
	nBlocks := uint64((n-1)/16 + 1)
	ctr := atomic.AddUint64(&c.counter, nBlocks) - nBlocks

	var pt, ct [16]byte
	for len(buf) > 0 {
		binary.LittleEndian.PutUint64(pt[:], ctr)
		ctr++
		if len(buf) >= 16 {
			c.block.Encrypt(buf, pt[:])
			buf = buf[16:]
			continue
		}
		c.block.Encrypt(ct[:], pt[:])
		copy(buf, ct[:len(buf)])
		buf = nil
	}
	return
}

// FastRandomBigInt derives a random number uniformly chosen below the given limit
// from a random 256 bit seed generated when the application starts.
func FastRandomBigInt(limit *big.Int) *big.Int {
	res, err := big.RandInt(globalCprng, limit)
	if err != nil {
		panic(fmt.Sprintf("big.RandInt failed: %v", err))
	}
	return res
}

// FastRandomInRange returns a random number uniformly chosen from [lo, hi).
// It panics if hi <= lo.
func FastRandomInRange(lo, hi *big.Int) *big.Int {
	width := new(big.Int).Sub(hi, lo)
	r := FastRandomBigInt(width)
	return r.Add(r, lo)
}
