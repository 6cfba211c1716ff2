package vault

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/keychain/internal/common"
)

// Store is the ordered record collection of one session.
//
// Records are addressed by their 1-based position in the sorted view. Each
// operation resolves the position against the current order, applies the
// change and re-sorts before returning, so a position must never be cached
// across two calls. On error the store is left unchanged.
//
// Store is not safe for concurrent use; the session is its only owner.
type Store struct {
	records []Record
}

// NewStore loads records read from storage. Blobs are kept as they are,
// zero-length blobs become absent, and the result is sorted.
// A record without a domain makes the whole set malformed.
func NewStore(records ...Record) (*Store, error) {
	s := &Store{records: make([]Record, 0, len(records))}
	for i, r := range records {
		if strings.TrimSpace(r.Domain) == "" {
			return nil, fmt.Errorf("%w: record %d has no domain", common.ErrMalformedVault, i+1)
		}
		r = r.clone()
		r.normalize()
		s.records = append(s.records, r)
	}
	s.sort()
	return s, nil
}

func (s *Store) sort() {
	slices.SortStableFunc(s.records, compare)
}

// resolve turns a 1-based position into a slice index.
func (s *Store) resolve(position int) (int, error) {
	s.sort()
	if position < 1 || position > len(s.records) {
		return 0, fmt.Errorf("position %d of %d: %w", position, len(s.records), common.ErrorNotFound)
	}
	return position - 1, nil
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// List returns a sorted deep copy of all records.
func (s *Store) List() []Record {
	s.sort()
	out := make([]Record, len(s.records))
	for i, r := range s.records {
		out[i] = r.clone()
	}
	return out
}

// Add validates r, inserts it and returns its position after sorting.
// Domains need not be unique.
func (s *Store) Add(r Record) (int, error) {
	r = r.clone()
	r.Domain = strings.TrimSpace(r.Domain)
	if err := r.validate(); err != nil {
		return 0, err
	}
	r.normalize()

	// Stable sort keeps an equal record added later after existing ones, so
	// the last match is the new record.
	s.records = append(s.records, r)
	s.sort()
	for i := len(s.records) - 1; i >= 0; i-- {
		if compare(s.records[i], r) == 0 {
			return i + 1, nil
		}
	}
	return len(s.records), nil
}

// Get returns a copy of the record at position.
func (s *Store) Get(position int) (Record, error) {
	i, err := s.resolve(position)
	if err != nil {
		return Record{}, err
	}
	return s.records[i].clone(), nil
}

// Update applies u to the record at position. Secret values are sealed with
// sealer; nothing is decrypted. Domain and date changes re-sort the store.
func (s *Store) Update(position int, u Update, sealer Sealer) error {
	if u == nil {
		return fmt.Errorf("%w: empty update", common.ErrorValidation)
	}
	i, err := s.resolve(position)
	if err != nil {
		return err
	}

	next := s.records[i].clone()
	if err := u.apply(&next, sealer); err != nil {
		return err
	}
	s.records[i] = next

	if affectsOrder(u) {
		s.sort()
	}
	return nil
}

// Delete removes the record at position and returns it. The remaining
// records keep their relative order.
func (s *Store) Delete(position int) (Record, error) {
	i, err := s.resolve(position)
	if err != nil {
		return Record{}, err
	}
	removed := s.records[i]
	s.records = slices.Delete(s.records, i, i+1)
	return removed, nil
}
