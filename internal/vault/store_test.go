package vault

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/dmitrijs2005/keychain/internal/common"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSealer marks plaintext instead of encrypting it.
type fakeSealer struct {
	err   error
	calls int
}

func (f *fakeSealer) Seal(p []byte) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]byte("sealed:"), p...), nil
}

func rec(t *testing.T, domain, date string) Record {
	t.Helper()
	r := Record{Domain: domain}
	if date != "" {
		r.Date = mustDate(t, date)
	}
	return r
}

func domains(rs []Record) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Domain
	}
	return out
}

func TestStore_OrderingScenario(t *testing.T) {
	s, err := NewStore()
	require.NoError(t, err)

	_, err = s.Add(rec(t, "b.com", "02.01.2024"))
	require.NoError(t, err)
	_, err = s.Add(rec(t, "a.com", "02.01.2024"))
	require.NoError(t, err)

	assert.Equal(t, []string{"a.com", "b.com"}, domains(s.List()))
}

func TestStore_SortInvariant(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	loaded := make([]Record, 0, 60)
	for i := 0; i < 60; i++ {
		r := Record{Domain: fmt.Sprintf("d%02d.com", rnd.Intn(20))}
		if rnd.Intn(5) != 0 {
			r.Date = mustDate(t, fmt.Sprintf("%d.%d.%d", 1+rnd.Intn(28), 1+rnd.Intn(12), 2020+rnd.Intn(3)))
		}
		loaded = append(loaded, r)
	}

	s, err := NewStore(loaded...)
	require.NoError(t, err)

	list := s.List()
	require.Len(t, list, 60)
	seenUndated := false
	for i := 1; i < len(list); i++ {
		prev, cur := list[i-1], list[i]
		if prev.Date.IsZero() {
			seenUndated = true
		}
		if seenUndated {
			require.True(t, cur.Date.IsZero(), "dated record after undated at %d", i)
		}
		require.False(t, Less(cur, prev), "out of order at %d: %+v before %+v", i, prev, cur)
		if !prev.Date.IsZero() && !cur.Date.IsZero() && prev.Date == cur.Date {
			require.LessOrEqual(t, prev.Domain, cur.Domain)
		}
	}
}

func TestStore_UndatedSortLastByDomain(t *testing.T) {
	s, err := NewStore(
		rec(t, "z.com", ""),
		rec(t, "y.com", "01.01.2030"),
		rec(t, "a.com", ""),
		rec(t, "x.com", "01.01.2000"),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"x.com", "y.com", "a.com", "z.com"}, domains(s.List()))
}

func TestNewStore_RejectsEmptyDomain(t *testing.T) {
	_, err := NewStore(rec(t, "ok.com", "01.01.2024"), Record{Domain: "  "})
	assert.ErrorIs(t, err, common.ErrMalformedVault)
}

func TestNewStore_NormalizesEmptyBlobs(t *testing.T) {
	s, err := NewStore(Record{Domain: "a.com", Login: []byte{}, Password: []byte("blob")})
	require.NoError(t, err)

	r, err := s.Get(1)
	require.NoError(t, err)
	assert.Nil(t, r.Login)
	assert.Equal(t, []byte("blob"), r.Password)
}

func TestStore_AddValidation(t *testing.T) {
	s, err := NewStore()
	require.NoError(t, err)

	_, err = s.Add(rec(t, "", "01.01.2024"))
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = s.Add(rec(t, "a.com", ""))
	assert.ErrorIs(t, err, common.ErrorValidation)

	assert.Equal(t, 0, s.Len())
}

func TestStore_AddReturnsPositionAndAllowsDuplicates(t *testing.T) {
	s, err := NewStore(rec(t, "m.com", "05.05.2024"), rec(t, "a.com", "01.01.2024"))
	require.NoError(t, err)

	pos, err := s.Add(rec(t, "b.com", "03.03.2024"))
	require.NoError(t, err)
	assert.Equal(t, 2, pos)

	dup := rec(t, "b.com", "03.03.2024")
	dup.Remark = []byte("second")
	pos, err = s.Add(dup)
	require.NoError(t, err)
	assert.Equal(t, 3, pos)

	got, err := s.Get(pos)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got.Remark)
	assert.Equal(t, 4, s.Len())
}

func TestStore_GetOutOfRange(t *testing.T) {
	s, err := NewStore(rec(t, "a.com", "01.01.2024"))
	require.NoError(t, err)

	for _, p := range []int{-1, 0, 2, 100} {
		_, err := s.Get(p)
		assert.ErrorIs(t, err, common.ErrorNotFound, "position %d", p)
	}
}

func TestStore_GetReturnsCopy(t *testing.T) {
	s, err := NewStore(Record{Domain: "a.com", Subdomains: []string{"x"}, Login: []byte("blob")})
	require.NoError(t, err)

	r, err := s.Get(1)
	require.NoError(t, err)
	r.Login[0] = 'X'
	r.Subdomains[0] = "changed"

	again, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, []byte("blob"), again.Login)
	assert.Equal(t, []string{"x"}, again.Subdomains)
}

func TestStore_DeleteShiftsPositions(t *testing.T) {
	s, err := NewStore(
		rec(t, "a.com", "01.01.2024"),
		rec(t, "b.com", "02.01.2024"),
		rec(t, "c.com", "03.01.2024"),
		rec(t, "d.com", "04.01.2024"),
	)
	require.NoError(t, err)

	before := s.List()

	removed, err := s.Delete(2)
	require.NoError(t, err)
	assert.Equal(t, "b.com", removed.Domain)

	for i := 1; i <= s.Len(); i++ {
		got, err := s.Get(i)
		require.NoError(t, err)
		prev := i
		if i >= 2 {
			prev = i + 1
		}
		assert.Empty(t, cmp.Diff(before[prev-1], got), "position %d", i)
	}

	_, err = s.Get(4)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = s.Delete(4)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.Equal(t, 3, s.Len())
}

func TestStore_UpdateSecret(t *testing.T) {
	s, err := NewStore(rec(t, "a.com", "01.01.2024"))
	require.NoError(t, err)
	sealer := &fakeSealer{}

	require.NoError(t, s.Update(1, SetSecret{Target: FieldPassword, Plaintext: []byte("pw")}, sealer))
	r, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, []byte("sealed:pw"), r.Password)
	assert.Nil(t, r.Login)

	require.NoError(t, s.Update(1, SetSecret{Target: FieldPassword}, sealer))
	r, err = s.Get(1)
	require.NoError(t, err)
	assert.Nil(t, r.Password)
	assert.Equal(t, 1, sealer.calls, "clearing must not seal")
}

func TestStore_UpdateReordersOnDomainAndDate(t *testing.T) {
	s, err := NewStore(
		rec(t, "a.com", "01.01.2024"),
		rec(t, "b.com", "01.01.2024"),
		rec(t, "c.com", "05.01.2024"),
	)
	require.NoError(t, err)

	require.NoError(t, s.Update(1, SetDomain{Domain: "z.com"}, nil))
	assert.Equal(t, []string{"b.com", "z.com", "c.com"}, domains(s.List()))

	require.NoError(t, s.Update(3, SetDate{Date: mustDate(t, "01.12.2023")}, nil))
	assert.Equal(t, []string{"c.com", "b.com", "z.com"}, domains(s.List()))

	require.NoError(t, s.Update(1, SetSubdomains{Subdomains: []string{"www", "mail"}}, nil))
	r, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"www", "mail"}, r.Subdomains)
	assert.True(t, r.HasSubdomains())

	require.NoError(t, s.Update(1, SetSubdomains{}, nil))
	r, err = s.Get(1)
	require.NoError(t, err)
	assert.False(t, r.HasSubdomains())
}

func TestStore_UpdateIsAtomic(t *testing.T) {
	orig := rec(t, "a.com", "01.01.2024")
	orig.Login = []byte("old")
	s, err := NewStore(orig)
	require.NoError(t, err)

	boom := errors.New("boom")
	tests := []struct {
		name   string
		pos    int
		update Update
		sealer Sealer
		target error
	}{
		{"seal failure", 1, SetSecret{Target: FieldLogin, Plaintext: []byte("new")}, &fakeSealer{err: boom}, boom},
		{"empty domain", 1, SetDomain{Domain: " "}, nil, common.ErrorValidation},
		{"zero date", 1, SetDate{}, nil, common.ErrorValidation},
		{"non-secret target", 1, SetSecret{Target: FieldDomain, Plaintext: []byte("x")}, &fakeSealer{}, common.ErrorValidation},
		{"bad position", 2, SetDomain{Domain: "b.com"}, nil, common.ErrorNotFound},
		{"nil update", 1, nil, nil, common.ErrorValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Update(tt.pos, tt.update, tt.sealer)
			assert.ErrorIs(t, err, tt.target)

			r, err := s.Get(1)
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(orig, r))
		})
	}
}

func TestField_Strings(t *testing.T) {
	names := make([]string, 0, len(Fields))
	for _, f := range Fields {
		names = append(names, f.String())
	}
	assert.Equal(t, []string{"Domain", "Subdomains", "Date", "Login", "Password", "Remark"}, names)
	assert.Equal(t, "Field(42)", Field(42).String())

	for _, f := range SecretFields {
		assert.True(t, f.IsSecret())
	}
	assert.False(t, FieldDate.IsSecret())
}

func TestUpdate_FieldTags(t *testing.T) {
	assert.Equal(t, FieldDomain, SetDomain{}.Field())
	assert.Equal(t, FieldSubdomains, SetSubdomains{}.Field())
	assert.Equal(t, FieldDate, SetDate{}.Field())
	assert.Equal(t, FieldRemark, SetSecret{Target: FieldRemark}.Field())
}

func TestRecord_HasSubdomains(t *testing.T) {
	assert.False(t, Record{}.HasSubdomains())
	assert.False(t, Record{Subdomains: []string{""}}.HasSubdomains())
	assert.True(t, Record{Subdomains: []string{"www"}}.HasSubdomains())
}
