// Package cli implements the interactive keychain front end.
//
// It wires a storage backend to a session, asks for the passphrase and
// runs a numbered menu loop:
//
//	1. List of records
//	2. Details of record
//	3. Add new record
//	4. Edit record
//	5. Delete record
//	6. Save
//	0. Exit
//
// Word aliases (list, show, add, edit, delete, save, exit, help) are
// accepted too. Exiting, including end of input, saves the vault.
package cli
