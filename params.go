// Copyright 2026 The spyfall Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spyfall

// Parameters determine the amount of work in a round: each puzzle is the product of two
// primes of BitsPerPrime bits, and a challenge holds PuzzleCount puzzles.
type Parameters struct {
	BitsPerPrime uint
	PuzzleCount  int
}

// DefaultParameters makes factoring a single puzzle take a few seconds, with one puzzle
// for each location of the classic game.
var DefaultParameters = Parameters{
	BitsPerPrime: 48,
	PuzzleCount:  28,
}

// MaxBitsPerPrime is the largest prime size accepted in a challenge.
const MaxBitsPerPrime = 4096

// GenerateChallenge generates a challenge with these parameters.
func (p Parameters) GenerateChallenge() (*Challenge, error) {
	return GenerateChallenge(p.PuzzleCount, p.BitsPerPrime)
}

// ParamSize computes the size of a parameter in bytes given the size in bits.
func ParamSize(a int) int {
	return (a + 8 - 1) / 8
}
