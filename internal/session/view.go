package session

import (
	"slices"

	"github.com/dmitrijs2005/keychain/internal/vault"
)

// SecretState tells the renderer how to show a secret field.
type SecretState int

const (
	SecretAbsent SecretState = iota
	SecretRevealed
	SecretUndecryptable
)

// Secret is one secret field prepared for display.
type Secret struct {
	State SecretState
	Text  string
	Err   error
}

// View is a transient, display-ready copy of a record. Secrets are only
// filled in by Session.Reveal; drop the View once it has been rendered.
type View struct {
	Position   int
	Domain     string
	Subdomains []string
	Date       vault.Date
	Login      Secret
	Password   Secret
	Remark     Secret
}

// Secret returns the view of one secret field.
func (v View) Secret(f vault.Field) Secret {
	switch f {
	case vault.FieldLogin:
		return v.Login
	case vault.FieldPassword:
		return v.Password
	case vault.FieldRemark:
		return v.Remark
	}
	return Secret{}
}

func summary(position int, r vault.Record) View {
	v := View{Position: position, Domain: r.Domain, Date: r.Date}
	if r.HasSubdomains() {
		v.Subdomains = slices.Clone(r.Subdomains)
	}
	return v
}
