// Package commitment binds a secret name to a solved puzzle: the name is encrypted with
// AES-256-GCM under a key that can only be derived from one of the puzzle's prime factors.
package commitment

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"
	"fmt"
	"io"

	"github.com/go-errors/errors"
	"github.com/privacybydesign/spyfall/big"
	"github.com/privacybydesign/spyfall/internal/common"
)

const (
	KeySize   = 32
	NonceSize = 12
	TagSize   = 16
)

var (
	ErrAuthenticationFailure = errors.New("authentication failure")
	ErrMalformed             = errors.New("malformed encrypted secret")
)

// Key is a symmetric key derived from a prime factor.
type Key [KeySize]byte

// EncryptedSecret is an authenticated encryption of a secret name.
type EncryptedSecret struct {
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
	Tag        []byte `json:"tag"`
}

// DeriveKey hashes the big-endian representation of factor, padded to width bytes.
// All parties use the byte size of the primes of the challenge as width.
func DeriveKey(factor *big.Int, width int) Key {
	return common.HashFixedWidth(factor, width)
}

// KeyCandidates derives a key from each of the given factors. The responder may have
// used either factor of a puzzle, so a verifier tries all of them.
func KeyCandidates(width int, factors ...*big.Int) []Key {
	keys := make([]Key, len(factors))
	for i, f := range factors {
		keys[i] = DeriveKey(f, width)
	}
	return keys
}

func newAEAD(key Key) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Seal encrypts secret under key with a fresh random nonce.
func Seal(rand io.Reader, secret []byte, key Key) (*EncryptedSecret, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, NonceSize)
	if _, err = io.ReadFull(rand, nonce); err != nil {
		return nil, err
	}
	sealed := aead.Seal(nil, nonce, secret, nil)
	split := len(sealed) - TagSize
	return &EncryptedSecret{
		Nonce:      nonce,
		Ciphertext: sealed[:split:split],
		Tag:        sealed[split:],
	}, nil
}

// Validate checks the sizes of the nonce and tag.
func (e *EncryptedSecret) Validate() error {
	if e == nil {
		return errors.WrapPrefix(ErrMalformed, "missing", 0)
	}
	if len(e.Nonce) != NonceSize {
		return errors.WrapPrefix(ErrMalformed, fmt.Sprintf("nonce of %d bytes", len(e.Nonce)), 0)
	}
	if len(e.Tag) != TagSize {
		return errors.WrapPrefix(ErrMalformed, fmt.Sprintf("tag of %d bytes", len(e.Tag)), 0)
	}
	return nil
}

// Open decrypts the secret, returning ErrAuthenticationFailure if it was not sealed under key.
func (e *EncryptedSecret) Open(key Key) ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}
	sealed := make([]byte, 0, len(e.Ciphertext)+TagSize)
	sealed = append(append(sealed, e.Ciphertext...), e.Tag...)
	plaintext, err := aead.Open(nil, e.Nonce, sealed, nil)
	if err != nil {
		return nil, ErrAuthenticationFailure
	}
	return plaintext, nil
}

// Matches reports whether one of the keys opens the commitment to exactly expected.
func (e *EncryptedSecret) Matches(expected []byte, keys ...Key) bool {
	for _, key := range keys {
		plaintext, err := e.Open(key)
		if err != nil {
			continue
		}
		if subtle.ConstantTimeCompare(plaintext, expected) == 1 {
			return true
		}
	}
	return false
}
