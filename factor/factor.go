// Package factor recovers the two prime factors of a semiprime puzzle, by trial division
// followed by Pollard's rho method with Brent's cycle detection.
package factor

import (
	"fmt"

	"github.com/go-errors/errors"
	"github.com/privacybydesign/spyfall/big"
	"github.com/privacybydesign/spyfall/internal/common"
	"github.com/privacybydesign/spyfall/prime"
	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

func init() {
	Logger = logrus.StandardLogger()
}

var (
	// ErrFailure is returned when the input is not the product of exactly two primes.
	ErrFailure = errors.New("factorization failure")
	// ErrTimeout is returned when the iteration budget of every polynomial was exhausted.
	ErrTimeout = errors.New("factorization timeout")
)

// Config tunes the factoring search.
type Config struct {
	// TrialBound is the bound below which all primes are tried as divisors first.
	TrialBound uint64
	// IterationScale determines the iteration budget of each polynomial when MaxIterations
	// is zero: IterationScale * 2^ceil(bitlen(n)/4), a comfortable multiple of the
	// square root of the smallest factor that rho is expected to need.
	IterationScale int64
	// MaxIterations, if nonzero, fixes the iteration budget of each polynomial.
	MaxIterations int64
	// Retries is the number of polynomials tried before giving up.
	Retries int
}

// DefaultConfig is used by Factor.
var DefaultConfig = Config{
	TrialBound:     1 << 16,
	IterationScale: 16,
	Retries:        8,
}

var (
	bigONE   = big.NewInt(1)
	bigTHREE = big.NewInt(3)
)

// Factor returns the prime factors p <= q of n = pq using DefaultConfig.
func Factor(n *big.Int) (p, q *big.Int, err error) {
	return DefaultConfig.Factor(n)
}

// Factor returns the prime factors p <= q of n = pq. The result depends only on n,
// although the search itself is randomized.
func (c Config) Factor(n *big.Int) (p, q *big.Int, err error) {
	if n == nil || n.Cmp(bigTHREE) <= 0 {
		return nil, nil, errors.WrapPrefix(ErrFailure, "input too small to be a semiprime", 0)
	}

	if d, ok := common.PrimeTableBelow(c.TrialBound).SmallestFactor(n); ok {
		p = new(big.Int).SetUint64(d)
	} else {
		bound := new(big.Int).SetUint64(c.TrialBound)
		if n.Cmp(bound.Mul(bound, bound)) < 0 || prime.ProbablyPrime(n) {
			return nil, nil, errors.WrapPrefix(ErrFailure, "input is prime", 0)
		}
		if p, err = c.rho(n); err != nil {
			return nil, nil, err
		}
	}

	q = new(big.Int).Quo(n, p)
	if q.Cmp(p) < 0 {
		p, q = q, p
	}
	if err = check(n, p, q); err != nil {
		return nil, nil, err
	}
	return p, q, nil
}

// check verifies that n = pq with p and q prime.
func check(n, p, q *big.Int) error {
	if new(big.Int).Mul(p, q).Cmp(n) != 0 {
		return errors.WrapPrefix(ErrFailure, "factors do not multiply to input", 0)
	}
	if !prime.ProbablyPrime(p) || !prime.ProbablyPrime(q) {
		return errors.WrapPrefix(ErrFailure, "input has more than two prime factors", 0)
	}
	return nil
}

func (c Config) budget(n *big.Int) int64 {
	if c.MaxIterations > 0 {
		return c.MaxIterations
	}
	shift := uint(n.BitLen()+3) / 4
	if shift > 40 {
		shift = 40
	}
	return c.IterationScale << shift
}

// rho runs Pollard's rho with up to c.Retries random polynomials x^2 + a mod n,
// returning a nontrivial factor of n.
func (c Config) rho(n *big.Int) (*big.Int, error) {
	budget := c.budget(n)
	// a is drawn from [1, n-2), avoiding the degenerate polynomials x^2 and x^2 - 2
	hi := new(big.Int).Sub(n, big.NewInt(2))
	for i := 0; i < c.Retries; i++ {
		a := common.FastRandomInRange(bigONE, hi)
		x0 := common.FastRandomBigInt(n)
		if d := brent(n, a, x0, budget); d != nil {
			return d, nil
		}
		Logger.WithFields(logrus.Fields{"attempt": i + 1, "bitlen": n.BitLen()}).
			Debug("rho polynomial exhausted, restarting")
	}
	return nil, errors.WrapPrefix(ErrTimeout,
		fmt.Sprintf("%d polynomials of %d iterations tried", c.Retries, budget), 0)
}

// batchSize is the number of differences multiplied together before taking a gcd.
const batchSize = 128

// brent looks for a cycle in the sequence x_{i+1} = x_i^2 + a mod n starting at x0,
// see R. P. Brent, An improved Monte Carlo factorization algorithm, BIT 20 (1980).
// It returns a nontrivial factor of n, or nil if none was found within budget iterations.
func brent(n, a, x0 *big.Int, budget int64) *big.Int {
	var (
		x, d big.Int
		y    = new(big.Int).Set(x0)
		ys   = new(big.Int)
		prod = big.NewInt(1)
		g    = big.NewInt(1)
		its  int64
	)
	step := func(v *big.Int) {
		v.Mul(v, v).Add(v, a).Mod(v, n)
	}

	for r := int64(1); g.Cmp(bigONE) == 0; r <<= 1 {
		if its >= budget {
			return nil
		}
		x.Set(y)
		for i := int64(0); i < r; i++ {
			step(y)
		}
		its += r
		for k := int64(0); k < r && g.Cmp(bigONE) == 0; k += batchSize {
			m := r - k
			if m > batchSize {
				m = batchSize
			}
			ys.Set(y)
			for i := int64(0); i < m; i++ {
				step(y)
				prod.Mul(prod, d.Abs(d.Sub(&x, y))).Mod(prod, n)
			}
			g.GCD(nil, nil, prod, n)
			its += m
		}
	}

	if g.Cmp(n) == 0 {
		// The product overshot, replay the last batch one step at a time.
		for i := 0; i < batchSize; i++ {
			step(ys)
			g.GCD(nil, nil, d.Abs(d.Sub(&x, ys)), n)
			if g.Cmp(bigONE) != 0 {
				break
			}
		}
	}
	if g.Cmp(bigONE) == 0 || g.Cmp(n) == 0 {
		return nil
	}
	return g
}
