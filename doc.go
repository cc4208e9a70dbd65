// Copyright 2026 The spyfall Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package spyfall lets players prove that they know a shared secret location without
// revealing it, in the spirit of the game Spyfall.
//
// A questioner publishes a Challenge: a list of semiprimes, none of which depends on the
// secret. A responder who knows the secret picks the puzzle that the secret maps to,
// factors it, and encrypts the secret under a key derived from a factor. A verifier who
// knows the secret factors the same puzzle and checks that the Response opens to it.
// A spy who does not know the secret can only factor the puzzles of every candidate
// secret, which Brute does in parallel; the puzzle size and count determine how long
// that takes.
//
// See spyfall_test.go for a complete round.
package spyfall
