package vndb

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestCharacterDecode(t *testing.T) {
	data := `{
		"id": "c81501",
		"name": "Sora",
		"birthday": [3, 14],
		"sex": ["f", null],
		"vns": [{"id": "v17", "title": "Ever17", "role": "main", "release": {"id": "r80"}}],
		"traits": [{"id": "i229", "name": "Twin", "spoiler": 0}]
	}`

	var got Character
	require.NoError(t, json.Unmarshal([]byte(data), &got))

	female := SexFemale
	want := Character{
		ID:       "c81501",
		Name:     ptr("Sora"),
		Birthday: &Birthday{Month: 3, Day: 14},
		Sex:      &CharacterSex{Apparent: &female},
		VisualNovels: []CharacterVisualNovel{{
			VisualNovel: VisualNovel{ID: "v17", Title: ptr("Ever17")},
			Release:     &Release{ID: "r80"},
			Role:        ptr("main"),
		}},
		Traits: []CharacterTrait{{
			Trait:   Trait{ID: "i229", Name: ptr("Twin")},
			Spoiler: ptr(0),
		}},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Character mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "03-14", got.Birthday.String())
}

func TestResolutionDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Resolution
		wantErr bool
	}{
		{name: "pair", input: `[1280, 720]`, want: Resolution{Width: 1280, Height: 720}},
		{name: "label", input: `"non-standard"`, want: Resolution{Label: "non-standard"}},
		{name: "number", input: `7`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Resolution
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "1280x720", Resolution{Width: 1280, Height: 720}.String())
}

func TestEnumRanges(t *testing.T) {
	tests := []struct {
		name    string
		target  any
		input   string
		wantErr bool
	}{
		{name: "voiced low", target: new(Voiced), input: `1`},
		{name: "voiced high", target: new(Voiced), input: `4`},
		{name: "voiced zero", target: new(Voiced), input: `0`, wantErr: true},
		{name: "voiced five", target: new(Voiced), input: `5`, wantErr: true},
		{name: "devstatus low", target: new(DevStatus), input: `0`},
		{name: "devstatus high", target: new(DevStatus), input: `2`},
		{name: "devstatus three", target: new(DevStatus), input: `3`, wantErr: true},
		{name: "length low", target: new(Length), input: `1`},
		{name: "length high", target: new(Length), input: `5`},
		{name: "length zero", target: new(Length), input: `0`, wantErr: true},
		{name: "length six", target: new(Length), input: `6`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := json.Unmarshal([]byte(tt.input), tt.target)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLanguageDecode(t *testing.T) {
	var langs []Language
	require.NoError(t, json.Unmarshal([]byte(`["ja", "zh-Hant", "pt-br", "tlh"]`), &langs))

	want := []Language{
		{Code: "ja", Kind: LanguageJapanese},
		{Code: "zh-Hant", Kind: LanguageChinese},
		{Code: "pt-br", Kind: LanguagePortuguese},
		{Code: "tlh", Kind: LanguageUnknown},
	}
	if diff := cmp.Diff(want, langs); diff != "" {
		t.Errorf("languages mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Chinese", langs[1].String())
	assert.Equal(t, "tlh", langs[3].String())

	data, err := json.Marshal(langs[1])
	require.NoError(t, err)
	assert.Equal(t, `"zh-Hant"`, string(data))
}

func TestUsersDropsNulls(t *testing.T) {
	var users Users
	require.NoError(t, json.Unmarshal([]byte(`{
		"u1": {"id": "u1", "username": "yorhel"},
		"nobody": null
	}`), &users))

	assert.Len(t, users, 1)
	assert.Equal(t, "yorhel", users["u1"].Username)
	_, ok := users["nobody"]
	assert.False(t, ok)
}

func TestResponseFirst(t *testing.T) {
	var resp Response[Release]
	require.NoError(t, json.Unmarshal([]byte(`{"results":[{"id":"r80"},{"id":"r81"}],"more":true,"count":2}`), &resp))

	first, ok := resp.First()
	require.True(t, ok)
	assert.Equal(t, ReleaseID("r80"), first.ID)
	assert.True(t, resp.More)
	require.NotNil(t, resp.Count)
	assert.Equal(t, uint32(2), *resp.Count)

	var empty *Response[Release]
	_, ok = empty.First()
	assert.False(t, ok)
}

func TestUserQueryTokens(t *testing.T) {
	q := new(UserQuery).Number(500).ID("u1000").Name("yorhel", "u1000")
	assert.Equal(t, []string{"u1000", "u500", "yorhel"}, q.Tokens())
	assert.Equal(t, []string{"u1000", "u500", "yorhel"}, q.URLQuery()["q"])

	assert.Equal(t, 3, new(UserQuery).Range(7, 9).Len())
	assert.Equal(t, []string{"u42"}, ParseUserQuery("42").Tokens())
	assert.Equal(t, []string{"yorhel"}, ParseUserQuery("yorhel").Tokens())
}
