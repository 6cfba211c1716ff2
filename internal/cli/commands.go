package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/keychain/internal/common"
	"github.com/dmitrijs2005/keychain/internal/session"
	"github.com/dmitrijs2005/keychain/internal/vault"
)

const wrongNumber = "Wrong record number!"

// List prints every record without its secrets.
func (a *App) List(ctx context.Context) error {
	a.Clear()
	views := a.session.Summaries()
	if len(views) == 0 {
		fmt.Fprintln(a.out, "No records.")
	}
	for _, v := range views {
		fmt.Fprintf(a.out, "%d\n", v.Position)
		writeSummary(a.out, v)
		fmt.Fprintln(a.out)
	}
	a.pause()
	return nil
}

// readPosition asks for a record number and resolves it to a view with
// secrets revealed.
func (a *App) readPosition() (session.View, error) {
	s, err := GetSimpleText(a.reader, "Enter record number:", a.out)
	if err != nil {
		return session.View{}, err
	}
	pos, err := ParsePosition(s)
	if err != nil {
		return session.View{}, err
	}
	return a.session.Reveal(pos)
}

// report prints the user-facing message for a failed command.
func (a *App) report(ctx context.Context, err error) {
	switch {
	case errors.Is(err, io.EOF):
	case errors.Is(err, common.ErrorNotFound):
		fmt.Fprintln(a.out, wrongNumber)
	case errors.Is(err, common.ErrorValidation):
		fmt.Fprintf(a.out, "Invalid input: %v\n", err)
	case errors.Is(err, common.ErrPersistence):
		fmt.Fprintf(a.out, "Save failed: %v\n", err)
	default:
		a.logger.Error(ctx, "command failed", "error", err)
		fmt.Fprintf(a.out, "Error: %v\n", err)
	}
}

// Show prints one record with its secrets.
func (a *App) Show(ctx context.Context) error {
	v, err := a.readPosition()
	a.Clear()
	if err != nil {
		a.report(ctx, err)
		a.pause()
		return err
	}
	writeDetails(a.out, v)
	fmt.Fprintln(a.out)
	a.pause()
	return nil
}

// Add asks for every field of a new record and stores it.
func (a *App) Add(ctx context.Context) error {
	a.Clear()
	err := a.add(ctx)
	if err != nil {
		a.report(ctx, err)
	}
	fmt.Fprintln(a.out)
	a.pause()
	return err
}

func (a *App) add(ctx context.Context) error {
	var d session.Draft
	var err error

	if d.Domain, err = GetRequired(a.reader, "Enter domain (required):", a.out); err != nil {
		return err
	}
	subs, err := GetSimpleText(a.reader, "Enter subdomains (through a space):", a.out)
	if err != nil {
		return err
	}
	d.Subdomains = SplitSubdomains(subs)
	if d.Date, err = GetDate(a.reader, "Enter date (required, dd.mm.yyyy):", a.out); err != nil {
		return err
	}
	if d.Login, err = GetSimpleText(a.reader, "Enter login:", a.out); err != nil {
		return err
	}
	pw, err := a.readSecret("Enter password:")
	if err != nil {
		return err
	}
	d.Password = string(pw)
	common.WipeByteArray(pw)
	if d.Remark, err = GetSimpleText(a.reader, "Enter remark:", a.out); err != nil {
		return err
	}

	pos, err := a.session.Add(d)
	if err != nil {
		return err
	}
	a.dirty = true
	a.logger.Debug(ctx, "record added", "position", pos)
	fmt.Fprintf(a.out, "Record added as number %d.\n", pos)
	return nil
}

// Edit shows a record with numbered fields and replaces the chosen one.
func (a *App) Edit(ctx context.Context) error {
	v, err := a.readPosition()
	a.Clear()
	if err == nil {
		err = a.edit(ctx, v)
	}
	if err != nil {
		a.report(ctx, err)
	}
	fmt.Fprintln(a.out)
	a.pause()
	return err
}

func (a *App) edit(ctx context.Context, v session.View) error {
	writeEditView(a.out, v)
	fmt.Fprintln(a.out)

	s, err := GetSimpleText(a.reader, "Enter number of value to edit:", a.out)
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > len(vault.Fields) {
		fmt.Fprintln(a.out, "Unknown field.")
		return nil
	}
	if n == 0 {
		return nil
	}

	u, err := a.readUpdate(vault.Field(n))
	if err != nil {
		return err
	}
	if err := a.session.Update(v.Position, u); err != nil {
		return err
	}
	a.dirty = true
	a.logger.Debug(ctx, "record updated", "position", v.Position, "field", u.Field().String())
	fmt.Fprintln(a.out, "Record updated.")
	return nil
}

func (a *App) readUpdate(f vault.Field) (vault.Update, error) {
	switch f {
	case vault.FieldDomain:
		s, err := GetRequired(a.reader, "Enter domain (required):", a.out)
		return vault.SetDomain{Domain: s}, err
	case vault.FieldSubdomains:
		s, err := GetSimpleText(a.reader, "Enter subdomains (through a space):", a.out)
		return vault.SetSubdomains{Subdomains: SplitSubdomains(s)}, err
	case vault.FieldDate:
		d, err := GetDate(a.reader, "Enter date (required, dd.mm.yyyy):", a.out)
		return vault.SetDate{Date: d}, err
	case vault.FieldPassword:
		p, err := a.readSecret("Enter password (empty to clear):")
		return vault.SetSecret{Target: f, Plaintext: p}, err
	default:
		s, err := GetSimpleText(a.reader, fmt.Sprintf("Enter %s (empty to clear):", strings.ToLower(f.String())), a.out)
		return vault.SetSecret{Target: f, Plaintext: []byte(s)}, err
	}
}

// Delete removes a record by number.
func (a *App) Delete(ctx context.Context) error {
	s, err := GetSimpleText(a.reader, "Enter record number:", a.out)
	a.Clear()
	if err == nil {
		var pos int
		if pos, err = ParsePosition(s); err == nil {
			_, err = a.session.Delete(pos)
		}
	}
	if err != nil {
		a.report(ctx, err)
	} else {
		a.dirty = true
		fmt.Fprintln(a.out, "Record removed.")
	}
	fmt.Fprintln(a.out)
	a.pause()
	return err
}

// Save writes the vault. On failure the in-memory state is kept so the
// user can retry.
func (a *App) Save(ctx context.Context) error {
	snap := a.session.Snapshot()
	if err := a.repo.Save(ctx, snap); err != nil {
		a.logger.Error(ctx, "vault save failed", "error", err)
		a.report(ctx, err)
		return err
	}
	a.dirty = false
	a.logger.Info(ctx, "vault saved", "records", len(snap.Records))
	fmt.Fprintf(a.out, "Saved %d records.\n", len(snap.Records))
	return nil
}

// Exit saves the vault. A non-nil error means the REPL should keep going.
func (a *App) Exit(ctx context.Context) error {
	if err := a.Save(ctx); err != nil {
		fmt.Fprintln(a.out, "Nothing was lost; fix the problem and save or exit again.")
		return err
	}
	return nil
}
