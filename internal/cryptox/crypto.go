// Package cryptox holds the key derivation and per-field encryption used by
// the vault. A passphrase is stretched with argon2id into a 32-byte key, and
// every secret field is sealed on its own with AES-256-GCM under a fresh
// random nonce.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"github.com/dmitrijs2005/keychain/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	// KeySize selects AES-256.
	KeySize = 32

	// NonceSize is the standard GCM nonce length. It is the leading part of
	// every field blob.
	NonceSize = 12

	// SaltSize is the length of the per-vault argon2id salt.
	SaltSize = 32

	// AlgoArgon2id names the only supported derivation in the vault header.
	AlgoArgon2id = "argon2id"

	// VerifierSize is the length of a key verifier (SHA-256).
	VerifierSize = sha256.Size
)

// Upper bounds for KDF parameters read from a vault header.
const (
	MaxTime    = 10
	MaxMemory  = 1024 * 1024 // KiB, 1 GiB
	MaxThreads = 64

	MinSaltSize = 16
	MaxSaltSize = 64
)

// KDFParams describes how the vault key is derived from the passphrase.
// It is stored in the vault header so that the same passphrase always
// yields the same key for that vault.
type KDFParams struct {
	Algo    string `json:"algo"`
	Time    uint32 `json:"time"`
	Memory  uint32 `json:"memory"` // KiB
	Threads uint8  `json:"threads"`
	Salt    []byte `json:"salt"`
}

// DefaultKDFParams returns the default argon2id cost parameters for salt.
func DefaultKDFParams(salt []byte) KDFParams {
	return KDFParams{
		Algo:    AlgoArgon2id,
		Time:    1,
		Memory:  64 * 1024,
		Threads: 4,
		Salt:    salt,
	}
}

// NewKDFParams returns the default parameters with a fresh random salt.
func NewKDFParams() KDFParams {
	return DefaultKDFParams(common.GenerateRandByteArray(SaltSize))
}

// Validate reports whether p can be used for derivation.
func (p KDFParams) Validate() error {
	if p.Algo != AlgoArgon2id {
		return fmt.Errorf("%w: unsupported kdf %q", common.ErrMalformedVault, p.Algo)
	}
	if p.Time == 0 || p.Memory == 0 || p.Threads == 0 {
		return fmt.Errorf("%w: zero kdf cost parameter", common.ErrMalformedVault)
	}
	if p.Time > MaxTime || p.Memory > MaxMemory || p.Threads > MaxThreads {
		return fmt.Errorf("%w: kdf cost out of range (time=%d memory=%d threads=%d)",
			common.ErrMalformedVault, p.Time, p.Memory, p.Threads)
	}
	if len(p.Salt) < MinSaltSize || len(p.Salt) > MaxSaltSize {
		return fmt.Errorf("%w: kdf salt has %d bytes", common.ErrMalformedVault, len(p.Salt))
	}
	return nil
}

// MakeVerifier returns the value stored next to the KDF parameters to check
// a passphrase on session start.
func MakeVerifier(masterKey []byte) []byte {
	hash := sha256.Sum256(masterKey)
	return hash[:]
}

// CheckVerifier compares a candidate key against a stored verifier in
// constant time.
func CheckVerifier(masterKey, verifier []byte) bool {
	return subtle.ConstantTimeCompare(MakeVerifier(masterKey), verifier) == 1
}

// DeriveKey stretches passphrase with the parameters from a vault header.
func DeriveKey(passphrase []byte, p KDFParams) []byte {
	return argon2.IDKey(passphrase, p.Salt, p.Time, p.Memory, p.Threads, KeySize)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("new aes cipher: %w", err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("new gcm: %w", err)
	}
	return aesgcm, nil
}

// EncryptField seals one secret field with AES-GCM.
//
// The key must be a valid AES key length (16, 24, or 32 bytes). A new
// random 12-byte nonce is generated for each call, so encrypting the same
// plaintext twice gives two different blobs. The result is the nonce
// followed by the ciphertext (which carries the GCM tag):
//
//	blob = nonce[12] || ciphertext || tag[16]
//
// An empty plaintext is valid and yields a blob of NonceSize+16 bytes.
func EncryptField(plaintext, key []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := common.GenerateRandByteArray(NonceSize)

	blob := make([]byte, 0, NonceSize+len(plaintext)+aesgcm.Overhead())
	blob = append(blob, nonce...)
	return aesgcm.Seal(blob, nonce, plaintext, nil), nil
}

// DecryptField opens a blob produced by EncryptField.
//
// A blob shorter than one nonce, a tampered blob and a blob sealed under a
// different key all fail with an error wrapping common.ErrCannotDecrypt.
func DecryptField(blob, key []byte) ([]byte, error) {
	if len(blob) < NonceSize {
		return nil, fmt.Errorf("%w: blob too short (%d bytes)", common.ErrCannotDecrypt, len(blob))
	}

	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCannotDecrypt, err)
	}

	plaintext, err := aesgcm.Open(nil, blob[:NonceSize], blob[NonceSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCannotDecrypt, err)
	}
	if plaintext == nil {
		plaintext = []byte{}
	}
	return plaintext, nil
}
