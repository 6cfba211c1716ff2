// Package common defines shared sentinel errors and small helpers used across
// keychain layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrorNotFound   = errors.New("record not found")
	ErrorValidation = errors.New("validation error")

	// Crypto errors.
	ErrCannotDecrypt   = errors.New("cannot decrypt")
	ErrWrongPassphrase = errors.New("wrong passphrase")

	// Persistence errors.
	ErrPersistence    = errors.New("persistence error")
	ErrMalformedVault = errors.New("malformed vault data")
)
