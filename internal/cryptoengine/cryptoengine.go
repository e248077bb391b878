// Package cryptoengine implements the cryptographic envelope around the
// pointer-chain: master key derivation, AES-256 encrypt/decrypt, and keyed
// HMAC-SHA256. Every operation except DeriveMasterKey (which draws from
// crypto/rand) is a pure function of its inputs, and no IV
// or nonce is ever persisted separately from K — decode reconstructs
// identical cipher state from K alone, per spec.md §4.1.
package cryptoengine

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/pbkdf2"
)

// KeySize is the length in bytes of the 256-bit master key K.
const KeySize = 32

// PBKDF2Iterations matches spec.md §4.1's fixed iteration count.
const PBKDF2Iterations = 1_000_000

const (
	ctrIVSalt = "chainstego-ctr-iv"
	ctrIVInfo = "nonce"
)

// Error is returned for any failure inside this package, satisfying
// spec.md §7's CryptoError variant.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("cryptoengine: %s: %v", e.Op, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

// DeriveMasterKey draws a fresh 256-bit random password and 256-bit random
// salt and runs PBKDF2-HMAC-SHA256 over them for PBKDF2Iterations rounds,
// producing a 32-byte master key K. Used only on encode; decode
// reconstructs K from the serialised key instead.
func DeriveMasterKey() ([]byte, error) {
	password := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, password); err != nil {
		return nil, &Error{"derive-master-key", err}
	}
	salt := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, &Error{"derive-master-key", err}
	}
	return pbkdf2.Key(password, salt, PBKDF2Iterations, KeySize, sha256.New), nil
}

// ctrIV derives a deterministic 16-byte AES-CTR IV from K via HKDF-SHA256,
// so encode and decode never need to exchange or persist a nonce.
func ctrIV(key []byte) ([]byte, error) {
	r := hkdf.New(sha256.New, key, []byte(ctrIVSalt), []byte(ctrIVInfo))
	iv := make([]byte, aes.BlockSize)
	if _, err := io.ReadFull(r, iv); err != nil {
		return nil, err
	}
	return iv, nil
}

// EncryptAES256 encrypts plaintext under K using AES-256-CTR with a
// K-derived IV (spec.md §9 Open Question 1, resolved). Output length always
// equals len(plaintext).
func EncryptAES256(key, plaintext []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, &Error{"encrypt", fmt.Errorf("key must be %d bytes, got %d", KeySize, len(key))}
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, &Error{"encrypt", err}
	}
	iv, err := ctrIV(key)
	if err != nil {
		return nil, &Error{"encrypt", err}
	}
	out := make([]byte, len(plaintext))
	cipher.NewCTR(block, iv).XORKeyStream(out, plaintext)
	return out, nil
}

// DecryptAES256 reverses EncryptAES256. CTR mode is its own inverse, so this
// is symmetric with encryption; there is no authentication tag to check
// here, matching spec.md §4.1's "if an authenticated mode is chosen" hedge —
// this implementation chose an unauthenticated mode, so DecryptError can
// only ever surface from downstream consumers of malformed plaintext.
func DecryptAES256(key, ciphertext []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, &Error{"decrypt", fmt.Errorf("key must be %d bytes, got %d", KeySize, len(key))}
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, &Error{"decrypt", err}
	}
	iv, err := ctrIV(key)
	if err != nil {
		return nil, &Error{"decrypt", err}
	}
	out := make([]byte, len(ciphertext))
	cipher.NewCTR(block, iv).XORKeyStream(out, ciphertext)
	return out, nil
}

// HMACSHA256 computes the keyed tag used by the pointer-resolution
// function, next(K, p).
func HMACSHA256(key, msg []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(msg)
	return mac.Sum(nil)
}
