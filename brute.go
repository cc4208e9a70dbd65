package spyfall

import (
	"context"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/go-errors/errors"
	"github.com/privacybydesign/spyfall/big"
	"github.com/privacybydesign/spyfall/catalog"
	"github.com/privacybydesign/spyfall/commitment"
	"github.com/privacybydesign/spyfall/factor"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Brute finds the secret that resp commits to without knowing it, by solving the puzzle
// of every secret in the catalog on all CPU cores until one of them opens the response.
//
// Work already started is not interrupted: cancelling ctx or exceeding its deadline
// prevents new puzzles from being started, and Brute then returns ErrNotFound without
// waiting for the puzzles in progress.
func Brute(ctx context.Context, ch *Challenge, resp *Response, cat *catalog.Catalog) (string, error) {
	if err := validatePair(ch, resp); err != nil {
		return "", errors.WrapPrefix(err, "brute", 0)
	}
	if cat == nil {
		return "", errors.WrapPrefix(ErrInvalidCatalog, "brute: missing catalog", 0)
	}
	s := &search{challenge: ch, response: resp, cache: newFactorCache()}
	return s.run(ctx, cat, runtime.GOMAXPROCS(0))
}

type search struct {
	challenge *Challenge
	response  *Response
	cache     *factorCache

	// found is checked by each task before it starts factoring
	found  atomic.Bool
	mu     sync.Mutex
	result string
}

func (s *search) run(ctx context.Context, cat *catalog.Catalog, workers int) (string, error) {
	var g errgroup.Group
	g.SetLimit(workers)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, name := range cat.Names() {
			if s.found.Load() || ctx.Err() != nil {
				break
			}
			name := name
			g.Go(func() error {
				s.try(ctx, cat, name)
				return nil
			})
		}
		_ = g.Wait()
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}

	if secret, ok := s.secret(); ok {
		return secret, nil
	}
	if err := ctx.Err(); err != nil {
		return "", errors.WrapPrefix(ErrNotFound, "brute: "+err.Error(), 0)
	}
	return "", errors.WrapPrefix(ErrNotFound, "brute", 0)
}

// try checks whether the response commits to name.
func (s *search) try(ctx context.Context, cat *catalog.Catalog, name string) {
	log := Logger.WithField("secret", name)
	if s.found.Load() || ctx.Err() != nil {
		log.Trace("search is over, skipping")
		return
	}

	i, err := cat.IndexOf(name, len(s.challenge.Puzzles))
	if err != nil {
		log.WithError(err).Debug("cannot select puzzle")
		return
	}
	p, q, err := s.cache.factor(i, s.challenge.Puzzles[i])
	if err == nil {
		err = s.challenge.checkFactors(i, p, q)
	}
	if err != nil {
		log.WithError(err).Debug("cannot solve puzzle")
		return
	}
	if s.found.Load() {
		return
	}

	keys := commitment.KeyCandidates(s.challenge.width(), p, q)
	if !s.response.Matches([]byte(name), keys...) {
		log.Trace("no match")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == "" {
		s.result = name
		s.found.Store(true)
		log.Debug("secret found")
	}
}

func (s *search) secret() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result, s.result != ""
}

// factorCache remembers the solution of each puzzle, since secrets that share a puzzle
// would otherwise have it factored once each.
type factorCache struct {
	mu      sync.Mutex
	entries map[int]factorResult
	flight  singleflight.Group
}

type factorResult struct {
	p, q *big.Int
	err  error
}

func newFactorCache() *factorCache {
	return &factorCache{entries: map[int]factorResult{}}
}

// factor returns the factors of n, the puzzle at the given index. Concurrent callers
// for the same index wait for a single factorization.
func (c *factorCache) factor(index int, n *big.Int) (p, q *big.Int, err error) {
	c.mu.Lock()
	r, ok := c.entries[index]
	c.mu.Unlock()
	if !ok {
		v, _, _ := c.flight.Do(strconv.Itoa(index), func() (interface{}, error) {
			// a flight for index may have completed since the lookup above
			c.mu.Lock()
			r, ok := c.entries[index]
			c.mu.Unlock()
			if ok {
				return r, nil
			}
			r.p, r.q, r.err = factor.Factor(n)
			c.mu.Lock()
			c.entries[index] = r
			c.mu.Unlock()
			return r, nil
		})
		r = v.(factorResult)
	}
	return r.p, r.q, r.err
}
