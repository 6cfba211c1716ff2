// Package vault defines the credential record model and the ordered store
// that holds the records of a session.
//
// # Data Model
//
// A Record has a domain, optional subdomains, a day-precision Date and three
// optional secret fields (login, password, remark). Secret fields only ever
// hold ciphertext blobs; plaintext is sealed through a Sealer at the moment
// it enters the store.
//
// # Ordering
//
// Records with a date come first, ascending by date. Equal dates, and
// records without a date, are ordered by domain. Every Store operation
// re-sorts before it resolves a 1-based position.
//
// # Edits
//
// Field changes are expressed as an Update: SetDomain, SetSubdomains,
// SetDate or SetSecret. Store.Update applies one to a copy of the record
// and commits only on success.
//
// Typical Usage
//
//	st, _ := vault.NewStore(snapshot.Records...)
//	pos, _ := st.Add(vault.Record{Domain: "example.com", Date: d})
//	_ = st.Update(pos, vault.SetSecret{Target: vault.FieldPassword, Plaintext: pw}, cipher)
//	rec, err := st.Get(pos)
//	if errors.Is(err, common.ErrorNotFound) { ... }
package vault
