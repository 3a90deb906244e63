package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrings(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "top level string",
			in:   `{"Name": "O'Brien"}`,
			want: `{"Name": "O''Brien"}`,
		},
		{
			name: "nested object",
			in:   `{"Customer": {"Name": "D'Angelo", "Age": 40}}`,
			want: `{"Customer": {"Name": "D''Angelo", "Age": 40}}`,
		},
		{
			name: "array of strings",
			in:   `{"Items": ["plain", "it's", "also plain"]}`,
			want: `{"Items": ["plain", "it''s", "also plain"]}`,
		},
		{
			name: "array of objects",
			in:   `{"Lines": [{"Desc": "children's book"}, {"Desc": "pen"}]}`,
			want: `{"Lines": [{"Desc": "children''s book"}, {"Desc": "pen"}]}`,
		},
		{
			name: "multiple apostrophes in one value",
			in:   `{"Note": "it's Bob's"}`,
			want: `{"Note": "it''s Bob''s"}`,
		},
		{
			name: "non-string values untouched",
			in:   `{"Committed": false, "Total": 12.5, "Ref": null}`,
			want: `{"Committed": false, "Total": 12.5, "Ref": null}`,
		},
		{
			name: "key with dot",
			in:   `{"a.b": "it's"}`,
			want: `{"a.b": "it''s"}`,
		},
		{
			name: "key with pipe",
			in:   `{"a|b": "it's"}`,
			want: `{"a|b": "it''s"}`,
		},
		{
			name: "key with leading at sign",
			in:   `{"@this": "it's"}`,
			want: `{"@this": "it''s"}`,
		},
		{
			name: "key with hash",
			in:   `{"#": "it's"}`,
			want: `{"#": "it''s"}`,
		},
		{
			name: "key with backslash",
			in:   `{"a\\b": "it's"}`,
			want: `{"a\\b": "it''s"}`,
		},
		{
			name: "key with wildcard characters",
			in:   `{"a*b?c": "it's"}`,
			want: `{"a*b?c": "it''s"}`,
		},
		{
			name: "nested object under metacharacter key",
			in:   `{"a|b": {"Name": "O'Brien"}}`,
			want: `{"a|b": {"Name": "O''Brien"}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Strings([]byte(tt.in))
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(out))
		})
	}
}

func TestStrings_NoApostrophesLeavesBytesIntact(t *testing.T) {
	in := []byte(`{"Committed": false, "Cart": {"Total": 10}}`)
	out, err := Strings(in)
	require.NoError(t, err)
	assert.Equal(t, in, out, "payload without apostrophes must pass through untouched")
}
