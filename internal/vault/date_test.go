package vault

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dmitrijs2005/keychain/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "01.01.2024", want: Date{2024, time.January, 1}},
		{in: "2.1.2024", want: Date{2024, time.January, 2}},
		{in: " 29.02.2024 ", want: Date{2024, time.February, 29}},
		{in: "31.12.1999", want: Date{1999, time.December, 31}},
		{in: "29.02.2023", wantErr: true},
		{in: "31.02.2024", wantErr: true},
		{in: "01.13.2024", wantErr: true},
		{in: "00.01.2024", wantErr: true},
		{in: "01.01.24", wantErr: true},
		{in: "2024-01-01", wantErr: true},
		{in: "01.01.2024x", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrorValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewDate(t *testing.T) {
	d, err := NewDate(2024, time.March, 5)
	require.NoError(t, err)
	assert.Equal(t, "05.03.2024", d.String())

	_, err = NewDate(2024, time.April, 31)
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestDate_Compare(t *testing.T) {
	a := mustDate(t, "01.01.2024")
	b := mustDate(t, "02.01.2024")
	c := mustDate(t, "01.02.2023")

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, 1, a.Compare(c))
}

func TestDate_ZeroAndString(t *testing.T) {
	var z Date
	assert.True(t, z.IsZero())
	assert.Equal(t, "", z.String())
	assert.False(t, mustDate(t, "1.1.2000").IsZero())
}

func TestDate_JSON(t *testing.T) {
	type wrap struct {
		D Date `json:"d"`
	}

	b, err := json.Marshal(wrap{D: mustDate(t, "07.08.2021")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"2021-08-07"}`, string(b))

	b, err = json.Marshal(wrap{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":""}`, string(b))

	var w wrap
	require.NoError(t, json.Unmarshal([]byte(`{"d":"2021-08-07"}`), &w))
	assert.Equal(t, mustDate(t, "07.08.2021"), w.D)

	w = wrap{}
	require.NoError(t, json.Unmarshal([]byte(`{"d":null}`), &w))
	assert.True(t, w.D.IsZero())

	err = json.Unmarshal([]byte(`{"d":"07.08.2021"}`), &w)
	assert.ErrorIs(t, err, common.ErrMalformedVault)
}
