package vndb

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQueryFilter(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "leaf", input: `["id", "=", "v17"]`, want: `["id","=","v17"]`},
		{name: "nested", input: `["and", ["lang","=","en"], ["rating",">=",80]]`, want: `["and",["lang","=","en"],["rating",">=",80]]`},
		{name: "null", input: `null`, want: `null`},
		{name: "unterminated", input: `["id", "=",`, wantErr: true},
		{name: "garbage", input: `not json`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ParseQueryFilter(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrJSON)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.String())
		})
	}
}

func TestQueryFilterDefaultsToNull(t *testing.T) {
	var f QueryFilter
	assert.True(t, f.IsNull())
	data, err := json.Marshal(struct {
		Filters QueryFilter `json:"filters"`
	}{f})
	require.NoError(t, err)
	assert.JSONEq(t, `{"filters":null}`, string(data))
}

func TestQueryFilterClear(t *testing.T) {
	f := Eq("id", "v17")
	assert.False(t, f.IsNull())
	f.Clear()
	assert.True(t, f.IsNull())
	assert.Equal(t, "null", f.String())
}

func TestFilterHelpers(t *testing.T) {
	f := And(Eq("lang", "en"), Or(Cmp("rating", ">=", 80), Eq("olang", "ja")))
	assert.JSONEq(t,
		`["and",["lang","=","en"],["or",["rating",">=",80],["olang","=","ja"]]]`,
		f.String())

	g, err := NewQueryFilter([]any{"search", "=", "Yosuga"})
	require.NoError(t, err)
	assert.Equal(t, `["search","=","Yosuga"]`, g.String())

	h, err := NewQueryFilter(json.RawMessage(`["id", "=", "r80"]`))
	require.NoError(t, err)
	assert.Equal(t, `["id","=","r80"]`, h.String())
}
