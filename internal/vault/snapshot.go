package vault

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/keychain/internal/common"
	"github.com/dmitrijs2005/keychain/internal/cryptox"
)

// FormatVersion is written into every persisted vault.
const FormatVersion = 1

// Header carries what is needed to re-derive and check the session key.
type Header struct {
	KDF      cryptox.KDFParams `json:"kdf"`
	Verifier []byte            `json:"verifier"`
}

// Validate checks a header read from storage.
func (h *Header) Validate() error {
	if err := h.KDF.Validate(); err != nil {
		return err
	}
	if len(h.Verifier) != cryptox.VerifierSize {
		return fmt.Errorf("%w: key verifier has %d bytes", common.ErrMalformedVault, len(h.Verifier))
	}
	return nil
}

// Snapshot is the unit exchanged with storage: the header (nil for a vault
// that was never saved) and the records in sorted order, blobs untouched.
type Snapshot struct {
	Header  *Header
	Records []Record
}

// Validate checks a snapshot read from storage. Anything it rejects is
// reported as common.ErrMalformedVault. Encrypted fields without a header
// are rejected: there is no way to re-derive their key.
func (s *Snapshot) Validate() error {
	if s.Header != nil {
		if err := s.Header.Validate(); err != nil {
			return err
		}
	}
	for i, r := range s.Records {
		if strings.TrimSpace(r.Domain) == "" {
			return fmt.Errorf("%w: record %d has no domain", common.ErrMalformedVault, i+1)
		}
		if s.Header == nil && (len(r.Login) > 0 || len(r.Password) > 0 || len(r.Remark) > 0) {
			return fmt.Errorf("%w: record %d has encrypted fields but the vault has no header",
				common.ErrMalformedVault, i+1)
		}
	}
	return nil
}
