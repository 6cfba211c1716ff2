package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/keychain/internal/session"
	"github.com/dmitrijs2005/keychain/internal/vault"
)

const (
	nullText         = "<null>"
	undecryptableTxt = "<cannot decrypt>"

	// labelWidth fits "Subdomains: ".
	labelWidth = 12
)

// writeField prints label and value in aligned columns. Extra lines are
// indented under the first value.
func writeField(w io.Writer, label string, lines ...string) {
	writeLines(w, fmt.Sprintf("%-*s", labelWidth, label+":"), lines)
}

func writeLines(w io.Writer, head string, lines []string) {
	pad := strings.Repeat(" ", len(head))
	for i, l := range lines {
		if i == 0 {
			fmt.Fprintf(w, "%s%s\n", head, l)
			continue
		}
		fmt.Fprintf(w, "%s%s\n", pad, l)
	}
}

func secretText(s session.Secret) string {
	switch s.State {
	case session.SecretRevealed:
		return s.Text
	case session.SecretUndecryptable:
		return undecryptableTxt
	}
	return ""
}

// writeSummary prints the non-secret part of a record.
func writeSummary(w io.Writer, v session.View) {
	writeField(w, "Domain", v.Domain)
	if len(v.Subdomains) > 0 {
		writeField(w, "Subdomains", v.Subdomains...)
	}
	writeField(w, "Date", v.Date.String())
}

// writeDetails prints a revealed record. Absent secrets are left out.
func writeDetails(w io.Writer, v session.View) {
	writeSummary(w, v)
	for _, f := range vault.SecretFields {
		s := v.Secret(f)
		if s.State == session.SecretAbsent {
			continue
		}
		writeField(w, f.String(), secretText(s))
	}
}

// writeEditView prints every field numbered by its vault.Field value, with
// <null> for anything absent.
func writeEditView(w io.Writer, v session.View) {
	for _, f := range vault.Fields {
		var lines []string
		switch f {
		case vault.FieldDomain:
			lines = []string{v.Domain}
		case vault.FieldSubdomains:
			lines = v.Subdomains
		case vault.FieldDate:
			lines = []string{v.Date.String()}
		default:
			if s := v.Secret(f); s.State != session.SecretAbsent {
				lines = []string{secretText(s)}
			}
		}
		if len(lines) == 0 || lines[0] == "" {
			lines = []string{nullText}
		}

		writeLines(w, fmt.Sprintf("%d. %-*s", int(f), labelWidth, f.String()+":"), lines)
	}
	fmt.Fprintln(w, "0. Exit")
}
