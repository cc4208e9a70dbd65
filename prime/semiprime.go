package prime

import (
	"fmt"
	"io"

	"github.com/go-errors/errors"
	"github.com/privacybydesign/spyfall/big"
)

// maxPairAttempts bounds the number of times Semiprime draws a second prime equal to the first.
const maxPairAttempts = 64

// Semiprime returns the product of two distinct random primes of exactly the given bit length.
// The factors are not returned; whoever wants them has to factor the result.
func Semiprime(rand io.Reader, bits uint) (*big.Int, error) {
	p, err := Generate(rand, bits)
	if err != nil {
		return nil, err
	}
	for i := 0; i < maxPairAttempts; i++ {
		q, err := Generate(rand, bits)
		if err != nil {
			return nil, err
		}
		if p.Cmp(q) != 0 {
			return q.Mul(p, q), nil
		}
	}
	return nil, errors.WrapPrefix(ErrPrimeGenerationExhausted,
		fmt.Sprintf("no two distinct %d-bit primes found", bits), 0)
}
