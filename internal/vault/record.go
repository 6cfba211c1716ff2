package vault

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/keychain/internal/common"
)

// Record is one credential entry. Login, Password and Remark hold
// ciphertext blobs produced by the session cipher, or nil when absent.
type Record struct {
	Domain     string   `json:"domain"`
	Subdomains []string `json:"subdomains,omitempty"`
	Date       Date     `json:"date"`
	Login      []byte   `json:"login,omitempty"`
	Password   []byte   `json:"password,omitempty"`
	Remark     []byte   `json:"remark,omitempty"`
}

// HasSubdomains reports whether there is anything to display. Older vaults
// store a single empty element for "none".
func (r Record) HasSubdomains() bool {
	return len(r.Subdomains) > 0 && r.Subdomains[0] != ""
}

// Secret returns the blob held in one of the secret fields.
func (r Record) Secret(f Field) []byte {
	switch f {
	case FieldLogin:
		return r.Login
	case FieldPassword:
		return r.Password
	case FieldRemark:
		return r.Remark
	}
	return nil
}

func (r *Record) setSecret(f Field, blob []byte) error {
	switch f {
	case FieldLogin:
		r.Login = blob
	case FieldPassword:
		r.Password = blob
	case FieldRemark:
		r.Remark = blob
	default:
		return fmt.Errorf("%w: %s is not a secret field", common.ErrorValidation, f)
	}
	return nil
}

// clone returns a deep copy so callers never alias store memory.
func (r Record) clone() Record {
	c := r
	c.Subdomains = slices.Clone(r.Subdomains)
	c.Login = slices.Clone(r.Login)
	c.Password = slices.Clone(r.Password)
	c.Remark = slices.Clone(r.Remark)
	return c
}

// normalize turns zero-length blobs into absent fields.
func (r *Record) normalize() {
	for _, f := range SecretFields {
		if b := r.Secret(f); b != nil && len(b) == 0 {
			_ = r.setSecret(f, nil)
		}
	}
}

func (r Record) validate() error {
	if strings.TrimSpace(r.Domain) == "" {
		return fmt.Errorf("%w: domain is required", common.ErrorValidation)
	}
	if r.Date.IsZero() {
		return fmt.Errorf("%w: date is required", common.ErrorValidation)
	}
	return nil
}

// Less implements the vault order: dated records first, ascending by date;
// equal or missing dates fall back to domain.
func Less(a, b Record) bool {
	return compare(a, b) < 0
}

func compare(a, b Record) int {
	switch {
	case a.Date.IsZero() && !b.Date.IsZero():
		return 1
	case !a.Date.IsZero() && b.Date.IsZero():
		return -1
	case !a.Date.IsZero():
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
	}
	return strings.Compare(a.Domain, b.Domain)
}
