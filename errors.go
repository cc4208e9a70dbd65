package spyfall

import (
	"github.com/go-errors/errors"
	"github.com/privacybydesign/spyfall/catalog"
	"github.com/privacybydesign/spyfall/commitment"
	"github.com/privacybydesign/spyfall/factor"
	"github.com/privacybydesign/spyfall/prime"
)

// Errors returned by this package, possibly wrapped with a prefix naming the failing step.
// Use errors.Is from github.com/go-errors/errors to test for them.
var (
	ErrUnknownSecret            = catalog.ErrUnknownSecret
	ErrInvalidCatalog           = catalog.ErrInvalidCatalog
	ErrFactorizationFailure     = factor.ErrFailure
	ErrFactorizationTimeout     = factor.ErrTimeout
	ErrAuthenticationFailure    = commitment.ErrAuthenticationFailure
	ErrPrimeGenerationExhausted = prime.ErrPrimeGenerationExhausted

	ErrMalformedChallenge = errors.New("malformed challenge")
	ErrMalformedResponse  = errors.New("malformed response")
	ErrNotFound           = errors.New("secret not found")
)
