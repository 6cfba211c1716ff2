package vault

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/keychain/internal/common"
)

// Field enumerates the editable parts of a Record in edit-menu order.
type Field int

const (
	FieldDomain Field = iota + 1
	FieldSubdomains
	FieldDate
	FieldLogin
	FieldPassword
	FieldRemark
)

// Fields lists every Field in menu order.
var Fields = []Field{FieldDomain, FieldSubdomains, FieldDate, FieldLogin, FieldPassword, FieldRemark}

// SecretFields are the encrypted fields.
var SecretFields = []Field{FieldLogin, FieldPassword, FieldRemark}

func (f Field) String() string {
	switch f {
	case FieldDomain:
		return "Domain"
	case FieldSubdomains:
		return "Subdomains"
	case FieldDate:
		return "Date"
	case FieldLogin:
		return "Login"
	case FieldPassword:
		return "Password"
	case FieldRemark:
		return "Remark"
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// IsSecret reports whether f is stored encrypted.
func (f Field) IsSecret() bool {
	return f == FieldLogin || f == FieldPassword || f == FieldRemark
}

// Sealer encrypts one field value. *cryptox.FieldCipher implements it.
type Sealer interface {
	Seal(plaintext []byte) ([]byte, error)
}

// Update is a single-field change applied by Store.Update.
// The set of implementations is closed: SetDomain, SetSubdomains, SetDate
// and SetSecret.
type Update interface {
	// Field names the field the update touches.
	Field() Field
	apply(r *Record, s Sealer) error
}

// SetDomain replaces the domain. The store re-sorts afterwards.
type SetDomain struct {
	Domain string
}

func (u SetDomain) Field() Field { return FieldDomain }

func (u SetDomain) apply(r *Record, _ Sealer) error {
	d := strings.TrimSpace(u.Domain)
	if d == "" {
		return fmt.Errorf("%w: domain is required", common.ErrorValidation)
	}
	r.Domain = d
	return nil
}

// SetSubdomains replaces the subdomain list; an empty list clears it.
type SetSubdomains struct {
	Subdomains []string
}

func (u SetSubdomains) Field() Field { return FieldSubdomains }

func (u SetSubdomains) apply(r *Record, _ Sealer) error {
	if len(u.Subdomains) == 0 {
		r.Subdomains = nil
		return nil
	}
	r.Subdomains = slices.Clone(u.Subdomains)
	return nil
}

// SetDate replaces the date. The store re-sorts afterwards.
type SetDate struct {
	Date Date
}

func (u SetDate) Field() Field { return FieldDate }

func (u SetDate) apply(r *Record, _ Sealer) error {
	if u.Date.IsZero() {
		return fmt.Errorf("%w: date is required", common.ErrorValidation)
	}
	r.Date = u.Date
	return nil
}

// SetSecret re-encrypts one of login, password or remark. An empty
// Plaintext clears the field to absent.
type SetSecret struct {
	Target    Field
	Plaintext []byte
}

func (u SetSecret) Field() Field { return u.Target }

func (u SetSecret) apply(r *Record, s Sealer) error {
	if !u.Target.IsSecret() {
		return fmt.Errorf("%w: %s is not a secret field", common.ErrorValidation, u.Target)
	}
	if len(u.Plaintext) == 0 {
		return r.setSecret(u.Target, nil)
	}
	if s == nil {
		return fmt.Errorf("no cipher to seal %s", u.Target)
	}
	blob, err := s.Seal(u.Plaintext)
	if err != nil {
		return fmt.Errorf("seal %s: %w", u.Target, err)
	}
	return r.setSecret(u.Target, blob)
}

// affectsOrder reports whether applying u can move the record.
func affectsOrder(u Update) bool {
	switch u.(type) {
	case SetDomain, SetDate:
		return true
	case SetSubdomains, SetSecret:
		return false
	}
	return true
}
