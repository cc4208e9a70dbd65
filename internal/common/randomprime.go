// Copyright 2016 Maarten Everts, 2026 The spyfall Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package common

import (
	"math"
	"sync"

	"github.com/privacybydesign/spyfall/big"
)

// Primes returns all prime numbers below the given bound, in increasing order.
func Primes(below uint64) []uint64 {
	if below < 3 {
		return nil
	}
	sieve := make([]bool, below)
	for i := 2; i < len(sieve); i++ {
		sieve[i] = true
	}
	for p := 2; p*p < len(sieve); p++ {
		if !sieve[p] {
			continue
		}
		for i := p * p; i < len(sieve); i += p {
			sieve[i] = false
		}
	}
	// About N / log N primes live below N
	nF := float64(below)
	out := make([]uint64, 0, int(nF/math.Log(nF))+1)
	for p := uint64(2); p < below; p++ {
		if sieve[p] {
			out = append(out, p)
		}
	}
	return out
}

// primeGroup is a run of consecutive small primes whose product fits in a uint64,
// so that a candidate is reduced modulo the product once and then checked against
// each prime without further big.Int operations.
type primeGroup struct {
	product *big.Int
	primes  []uint64
}

// PrimeTable allows us to rapidly find small factors of a number, used both to
// exclude composite prime candidates cheaply and as the trial division stage of
// factoring.
type PrimeTable struct {
	Bound  uint64
	groups []primeGroup
}

// NewPrimeTable creates a table of all primes below bound.
func NewPrimeTable(bound uint64) *PrimeTable {
	t := &PrimeTable{Bound: bound}
	var group []uint64
	product := uint64(1)
	for _, p := range Primes(bound) {
		if product > math.MaxUint64/p {
			t.groups = append(t.groups, primeGroup{new(big.Int).SetUint64(product), group})
			group, product = nil, 1
		}
		group = append(group, p)
		product *= p
	}
	if len(group) > 0 {
		t.groups = append(t.groups, primeGroup{new(big.Int).SetUint64(product), group})
	}
	return t
}

var primeTables sync.Map // map[uint64]*PrimeTable

// PrimeTableBelow returns a shared table of the primes below bound, computing it on first use.
func PrimeTableBelow(bound uint64) *PrimeTable {
	if t, ok := primeTables.Load(bound); ok {
		return t.(*PrimeTable)
	}
	t, _ := primeTables.LoadOrStore(bound, NewPrimeTable(bound))
	return t.(*PrimeTable)
}

// SmallestFactor returns the smallest prime in the table that divides n, if any.
// A prime in the table is not reported as a factor of itself. n must be positive.
func (t *PrimeTable) SmallestFactor(n *big.Int) (uint64, bool) {
	var self uint64
	if n.IsUint64() {
		self = n.Uint64()
	}
	var mod big.Int
	for _, g := range t.groups {
		m := mod.Mod(n, g.product).Uint64()
		for _, p := range g.primes {
			if m%p == 0 && p != self {
				return p, true
			}
		}
	}
	return 0, false
}
