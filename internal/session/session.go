// Package session holds the state of one keychain run: the key derived from
// the passphrase, the vault header and the record store. It is created once
// at startup and passed to the presentation layer; nothing in the core
// reaches for process-wide state.
package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/keychain/internal/common"
	"github.com/dmitrijs2005/keychain/internal/cryptox"
	"github.com/dmitrijs2005/keychain/internal/vault"
)

// Session is the explicit session context. It is not safe for concurrent use.
type Session struct {
	header vault.Header
	cipher *cryptox.FieldCipher
	store  *vault.Store
}

// Open derives the session key from passphrase and loads snap into a store.
//
// For a vault with a header the key is checked against the stored verifier
// and common.ErrWrongPassphrase is returned on mismatch. A snapshot without
// a header gets fresh KDF parameters; they are persisted on the next save.
func Open(passphrase []byte, snap *vault.Snapshot) (*Session, error) {
	if len(passphrase) == 0 {
		return nil, fmt.Errorf("%w: passphrase is empty", common.ErrorValidation)
	}
	if snap == nil {
		snap = &vault.Snapshot{}
	}

	if err := snap.Validate(); err != nil {
		return nil, err
	}

	var header vault.Header
	if snap.Header != nil {
		header = *snap.Header
	} else {
		header.KDF = cryptox.NewKDFParams()
	}

	key := cryptox.DeriveKey(passphrase, header.KDF)
	defer common.WipeByteArray(key)

	if snap.Header != nil {
		if !cryptox.CheckVerifier(key, header.Verifier) {
			return nil, common.ErrWrongPassphrase
		}
	} else {
		header.Verifier = cryptox.MakeVerifier(key)
	}

	store, err := vault.NewStore(snap.Records...)
	if err != nil {
		return nil, err
	}

	c, err := cryptox.NewFieldCipher(key)
	if err != nil {
		return nil, err
	}

	return &Session{header: header, cipher: c, store: store}, nil
}

// Close wipes the session key.
func (s *Session) Close() {
	s.cipher.Wipe()
}

// Len returns the number of records.
func (s *Session) Len() int {
	return s.store.Len()
}

// Snapshot returns the state to persist. Secret fields stay encrypted.
func (s *Session) Snapshot() *vault.Snapshot {
	h := s.header
	return &vault.Snapshot{Header: &h, Records: s.store.List()}
}

// Draft is user input for a new record. Empty secrets stay absent.
type Draft struct {
	Domain     string
	Subdomains []string
	Date       vault.Date
	Login      string
	Password   string
	Remark     string
}

// Add encrypts the secrets of d and stores the record. It returns the
// record's position.
func (s *Session) Add(d Draft) (int, error) {
	r := vault.Record{
		Domain:     strings.TrimSpace(d.Domain),
		Subdomains: d.Subdomains,
		Date:       d.Date,
	}
	for _, f := range []struct {
		dst   *[]byte
		value string
	}{
		{&r.Login, d.Login},
		{&r.Password, d.Password},
		{&r.Remark, d.Remark},
	} {
		blob, err := s.seal(f.value)
		if err != nil {
			return 0, err
		}
		*f.dst = blob
	}
	return s.store.Add(r)
}

func (s *Session) seal(value string) ([]byte, error) {
	if value == "" {
		return nil, nil
	}
	p := []byte(value)
	defer common.WipeByteArray(p)
	return s.cipher.Seal(p)
}

// Update applies one field change to the record at position.
func (s *Session) Update(position int, u vault.Update) error {
	if su, ok := u.(vault.SetSecret); ok {
		defer common.WipeByteArray(su.Plaintext)
	}
	return s.store.Update(position, u, s.cipher)
}

// Delete removes the record at position.
func (s *Session) Delete(position int) (vault.Record, error) {
	return s.store.Delete(position)
}

// Summaries returns the non-secret part of every record, in order.
func (s *Session) Summaries() []View {
	records := s.store.List()
	out := make([]View, len(records))
	for i, r := range records {
		out[i] = summary(i+1, r)
	}
	return out
}

// Reveal returns the record at position with its secrets decrypted.
// A field that fails to decrypt is reported as SecretUndecryptable; the
// record itself is not touched.
func (s *Session) Reveal(position int) (View, error) {
	r, err := s.store.Get(position)
	if err != nil {
		return View{}, err
	}
	v := summary(position, r)
	v.Login = s.open(r.Login)
	v.Password = s.open(r.Password)
	v.Remark = s.open(r.Remark)
	return v, nil
}

func (s *Session) open(blob []byte) Secret {
	if blob == nil {
		return Secret{State: SecretAbsent}
	}
	p, err := s.cipher.Open(blob)
	if err != nil {
		if !errors.Is(err, common.ErrCannotDecrypt) {
			err = fmt.Errorf("%w: %v", common.ErrCannotDecrypt, err)
		}
		return Secret{State: SecretUndecryptable, Err: err}
	}
	defer common.WipeByteArray(p)
	return Secret{State: SecretRevealed, Text: string(p)}
}
