package spyfall

import (
	"crypto/rand"
	"fmt"

	"github.com/go-errors/errors"
	"github.com/google/uuid"
	"github.com/privacybydesign/spyfall/big"
	"github.com/privacybydesign/spyfall/catalog"
	"github.com/privacybydesign/spyfall/cbor"
	"github.com/privacybydesign/spyfall/factor"
	"github.com/privacybydesign/spyfall/prime"
	"github.com/sirupsen/logrus"
)

// Challenge is a list of semiprime puzzles, each the product of two distinct primes of
// Bits bits. The factors are forgotten as soon as the challenge is generated.
type Challenge struct {
	ID      string     `json:"id"`
	Bits    uint       `json:"bits"`
	Puzzles []*big.Int `json:"puzzles"`
}

// GenerateChallenge generates count puzzles with primes of bitsPerPrime bits.
// The challenge does not depend on the secret of the round.
func GenerateChallenge(count int, bitsPerPrime uint) (*Challenge, error) {
	if count < 1 {
		return nil, errors.WrapPrefix(ErrMalformedChallenge, "challenge: puzzle count must be at least 1", 0)
	}
	if bitsPerPrime > MaxBitsPerPrime {
		return nil, errors.WrapPrefix(ErrMalformedChallenge,
			fmt.Sprintf("challenge: primes of more than %d bits", MaxBitsPerPrime), 0)
	}

	puzzles := make([]*big.Int, count)
	for i := range puzzles {
		if i > 0 && i%5 == 0 {
			Logger.WithFields(logrus.Fields{"done": i, "total": count}).Debug("generating puzzles")
		}
		n, err := prime.Semiprime(rand.Reader, bitsPerPrime)
		if err != nil {
			return nil, errors.WrapPrefix(err, "challenge: generate puzzle", 0)
		}
		puzzles[i] = n
	}

	return &Challenge{
		ID:      uuid.NewString(),
		Bits:    bitsPerPrime,
		Puzzles: puzzles,
	}, nil
}

// Validate checks that the challenge could have been generated by GenerateChallenge.
func (c *Challenge) Validate() error {
	if c == nil {
		return errors.WrapPrefix(ErrMalformedChallenge, "missing", 0)
	}
	if c.Bits < 2 || c.Bits > MaxBitsPerPrime {
		return errors.WrapPrefix(ErrMalformedChallenge, fmt.Sprintf("invalid prime size %d", c.Bits), 0)
	}
	if len(c.Puzzles) == 0 {
		return errors.WrapPrefix(ErrMalformedChallenge, "no puzzles", 0)
	}
	// the product of two b-bit numbers has 2b-1 or 2b bits
	size := 2 * int(c.Bits)
	for i, n := range c.Puzzles {
		if n == nil || n.Sign() <= 0 {
			return errors.WrapPrefix(ErrMalformedChallenge, fmt.Sprintf("puzzle %d is not positive", i), 0)
		}
		if l := n.BitLen(); l < size-1 || l > size {
			return errors.WrapPrefix(ErrMalformedChallenge,
				fmt.Sprintf("puzzle %d has %d bits, expected %d or %d", i, l, size-1, size), 0)
		}
	}
	return nil
}

// width is the byte size of the primes, used to derive keys from them.
func (c *Challenge) width() int {
	return ParamSize(int(c.Bits))
}

// solve factors the puzzle that secret maps to.
func (c *Challenge) solve(secret string, cat *catalog.Catalog) (p, q *big.Int, err error) {
	i, err := cat.IndexOf(secret, len(c.Puzzles))
	if err != nil {
		return nil, nil, errors.WrapPrefix(err, "select puzzle", 0)
	}
	if p, q, err = factor.Factor(c.Puzzles[i]); err != nil {
		return nil, nil, errors.WrapPrefix(err, "factor puzzle", 0)
	}
	if err = c.checkFactors(i, p, q); err != nil {
		return nil, nil, err
	}
	return p, q, nil
}

// checkFactors rejects puzzle i unless its factors p and q are distinct and of Bits bits each.
// The factors are kept out of the error.
func (c *Challenge) checkFactors(i int, p, q *big.Int) error {
	b := int(c.Bits)
	if p.Cmp(q) == 0 || p.BitLen() != b || q.BitLen() != b {
		return errors.WrapPrefix(ErrMalformedChallenge,
			fmt.Sprintf("puzzle %d does not have two distinct primes of %d bits", i, c.Bits), 0)
	}
	return nil
}

// Bytes returns the CBOR encoding of the challenge.
func (c *Challenge) Bytes() ([]byte, error) {
	return cbor.Marshal(c)
}

// ParseChallenge decodes and validates a CBOR-encoded challenge.
func ParseChallenge(data []byte) (*Challenge, error) {
	c := &Challenge{}
	if err := cbor.Unmarshal(data, c); err != nil {
		return nil, errors.WrapPrefix(ErrMalformedChallenge, err.Error(), 0)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
