package spyfall

import (
	"crypto/rand"

	"github.com/go-errors/errors"
	"github.com/privacybydesign/spyfall/catalog"
	"github.com/privacybydesign/spyfall/cbor"
	"github.com/privacybydesign/spyfall/commitment"
)

// Response proves that its creator solved the puzzle of a secret, by carrying that secret
// encrypted under a key derived from the solution. Which puzzle was solved is not part of
// the response: only those who know the secret can tell.
type Response struct {
	ChallengeID string `json:"challenge_id"`
	commitment.EncryptedSecret
}

// GenerateResponse solves the puzzle that secret maps to, and commits to secret under
// the smaller of its factors.
func GenerateResponse(ch *Challenge, secret string, cat *catalog.Catalog) (*Response, error) {
	if err := ch.Validate(); err != nil {
		return nil, errors.WrapPrefix(err, "respond", 0)
	}
	p, _, err := ch.solve(secret, cat)
	if err != nil {
		return nil, errors.WrapPrefix(err, "respond", 0)
	}
	enc, err := commitment.Seal(rand.Reader, []byte(secret), commitment.DeriveKey(p, ch.width()))
	if err != nil {
		return nil, errors.WrapPrefix(err, "respond: encrypt secret", 0)
	}
	return &Response{ChallengeID: ch.ID, EncryptedSecret: *enc}, nil
}

// Verify reports whether resp was created by someone who knows secret, by solving the
// same puzzle as the responder did. Errors are returned only if verification could not
// be carried out; a response for a different secret yields false.
func Verify(ch *Challenge, resp *Response, secret string, cat *catalog.Catalog) (bool, error) {
	if err := validatePair(ch, resp); err != nil {
		return false, errors.WrapPrefix(err, "verify", 0)
	}
	p, q, err := ch.solve(secret, cat)
	if err != nil {
		return false, errors.WrapPrefix(err, "verify", 0)
	}
	ok := resp.Matches([]byte(secret), commitment.KeyCandidates(ch.width(), p, q)...)
	Logger.WithField("verified", ok).Debug("response checked")
	return ok, nil
}

// Validate checks the sizes of the fields of the response.
func (r *Response) Validate() error {
	if r == nil {
		return errors.WrapPrefix(ErrMalformedResponse, "missing", 0)
	}
	if err := r.EncryptedSecret.Validate(); err != nil {
		return errors.WrapPrefix(ErrMalformedResponse, err.Error(), 0)
	}
	if len(r.Ciphertext) == 0 {
		return errors.WrapPrefix(ErrMalformedResponse, "empty ciphertext", 0)
	}
	return nil
}

func validatePair(ch *Challenge, resp *Response) error {
	if err := ch.Validate(); err != nil {
		return err
	}
	if err := resp.Validate(); err != nil {
		return err
	}
	if ch.ID != resp.ChallengeID {
		return errors.WrapPrefix(ErrMalformedResponse, "challenge id mismatch", 0)
	}
	return nil
}

// Bytes returns the CBOR encoding of the response.
func (r *Response) Bytes() ([]byte, error) {
	return cbor.Marshal(r)
}

// ParseResponse decodes and validates a CBOR-encoded response.
func ParseResponse(data []byte) (*Response, error) {
	r := &Response{}
	if err := cbor.Unmarshal(data, r); err != nil {
		return nil, errors.WrapPrefix(ErrMalformedResponse, err.Error(), 0)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}
