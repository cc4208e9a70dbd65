// Package prime generates random probable primes of an exact bit length, and composes
// them into the semiprimes that serve as proof-of-work puzzles.
package prime

import (
	"fmt"
	"io"

	"github.com/go-errors/errors"
	"github.com/privacybydesign/spyfall/big"
	"github.com/privacybydesign/spyfall/internal/common"
)

// PrimalityRounds is the number of Miller-Rabin rounds with random bases used by ProbablyPrime,
// which bounds the probability that a composite passes by 4^-64 = 2^-128.
const PrimalityRounds = 64

// FilterBound is the bound below which primes are used to cheaply reject candidates
// before the Miller-Rabin test.
const FilterBound = 1 << 10

var ErrPrimeGenerationExhausted = errors.New("prime generation exhausted")

// MaxAttempts returns the number of candidates Generate tries for the given bit length.
// A random odd number of b bits is prime with probability about 2.9/b, so this cap
// is only reached with negligible probability.
func MaxAttempts(bits uint) int {
	return 1000 + 100*int(bits)
}

// ProbablyPrime reports whether x is prime, with a false positive probability
// of at most 2^-128.
func ProbablyPrime(x *big.Int) bool {
	return x.Sign() > 0 && x.ProbablyPrime(PrimalityRounds)
}

// Generate returns a random probable prime of exactly the given bit length.
func Generate(rand io.Reader, bits uint) (*big.Int, error) {
	return GenerateWithAttempts(rand, bits, MaxAttempts(bits))
}

// GenerateWithAttempts returns a random probable prime of exactly the given bit length,
// trying at most attempts candidates.
// This code is an adaption of Go's own Prime function in rand/util.go
func GenerateWithAttempts(rand io.Reader, bits uint, attempts int) (*big.Int, error) {
	if bits < 2 {
		return nil, errors.WrapPrefix(ErrPrimeGenerationExhausted, "prime size must be at least 2 bits", 0)
	}

	b := bits % 8
	if b == 0 {
		b = 8
	}
	bytes := make([]byte, (bits+7)/8)
	filter := common.PrimeTableBelow(FilterBound)
	p := new(big.Int)

	for i := 0; i < attempts; i++ {
		if _, err := io.ReadFull(rand, bytes); err != nil {
			return nil, err
		}

		// Clear bits in the first byte to make sure the candidate has a size <= bits,
		// then set the top bit so that its size is exactly bits.
		bytes[0] &= uint8(int(1<<b) - 1)
		bytes[0] |= 1 << (b - 1)
		// Make the value odd since an even number this large certainly isn't prime.
		bytes[len(bytes)-1] |= 1

		p.SetBytes(bytes)

		// This check is much cheaper than ProbablyPrime() below.
		if _, ok := filter.SmallestFactor(p); ok {
			continue
		}
		if ProbablyPrime(p) {
			return p, nil
		}
	}

	return nil, errors.WrapPrefix(ErrPrimeGenerationExhausted,
		fmt.Sprintf("no %d-bit prime found in %d attempts", bits, attempts), 0)
}
