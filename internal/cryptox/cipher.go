package cryptox

import (
	"fmt"

	"github.com/dmitrijs2005/keychain/internal/common"
)

// FieldCipher binds the session key to EncryptField/DecryptField.
// It owns its copy of the key; call Wipe when the session ends.
type FieldCipher struct {
	key []byte
}

// NewFieldCipher copies key into a new FieldCipher.
func NewFieldCipher(key []byte) (*FieldCipher, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("invalid key size %d", len(key))
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &FieldCipher{key: k}, nil
}

// Seal encrypts plaintext into a self-contained blob.
func (c *FieldCipher) Seal(plaintext []byte) ([]byte, error) {
	if c.key == nil {
		return nil, fmt.Errorf("field cipher is wiped")
	}
	return EncryptField(plaintext, c.key)
}

// Open decrypts a blob produced by Seal.
func (c *FieldCipher) Open(blob []byte) ([]byte, error) {
	if c.key == nil {
		return nil, fmt.Errorf("%w: field cipher is wiped", common.ErrCannotDecrypt)
	}
	return DecryptField(blob, c.key)
}

// Wipe zeroes the key. The cipher is unusable afterwards.
func (c *FieldCipher) Wipe() {
	common.WipeByteArray(c.key)
	c.key = nil
}
