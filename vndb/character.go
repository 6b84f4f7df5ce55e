package vndb

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Character is an entry of the character database
type Character struct {
	ID           CharacterID            `json:"id"`
	Age          *int                   `json:"age,omitempty"`
	Aliases      []string               `json:"aliases,omitempty"`
	Birthday     *Birthday              `json:"birthday,omitempty"`
	BloodType    *string                `json:"blood_type,omitempty"`
	Bust         *int                   `json:"bust,omitempty"`
	Cup          *string                `json:"cup,omitempty"`
	Description  *string                `json:"description,omitempty"`
	Height       *int                   `json:"height,omitempty"`
	Hips         *int                   `json:"hips,omitempty"`
	Image        *Image                 `json:"image,omitempty"`
	Name         *string                `json:"name,omitempty"`
	Original     *string                `json:"original,omitempty"`
	Sex          *CharacterSex          `json:"sex,omitempty"`
	Traits       []CharacterTrait       `json:"traits,omitempty"`
	VisualNovels []CharacterVisualNovel `json:"vns,omitempty"`
	Waist        *int                   `json:"waist,omitempty"`
	Weight       *int                   `json:"weight,omitempty"`
}

// Birthday is sent as [month, day]
type Birthday struct {
	Month int
	Day   int
}

func (b Birthday) String() string {
	return fmt.Sprintf("%02d-%02d", b.Month, b.Day)
}

func (b Birthday) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{b.Month, b.Day})
}

func (b *Birthday) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("birthday: %w", err)
	}
	b.Month, b.Day = pair[0], pair[1]
	return nil
}

// SexValue is one of b, f, m or n
type SexValue string

const (
	SexBoth   SexValue = "b"
	SexFemale SexValue = "f"
	SexMale   SexValue = "m"
	SexNone   SexValue = "n"
)

// CharacterSex is sent as [apparent, real]; either may be null
type CharacterSex struct {
	Apparent *SexValue
	Real     *SexValue
}

func (s CharacterSex) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]*SexValue{s.Apparent, s.Real})
}

func (s *CharacterSex) UnmarshalJSON(data []byte) error {
	var pair [2]*SexValue
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("sex: %w", err)
	}
	s.Apparent, s.Real = pair[0], pair[1]
	return nil
}

// CharacterTrait is a trait as linked from a character
type CharacterTrait struct {
	Trait
	Lie     *bool `json:"lie,omitempty"`
	Spoiler *int  `json:"spoiler,omitempty"`
}

// CharacterVisualNovel is a visual novel the character appears in
type CharacterVisualNovel struct {
	VisualNovel
	Release *Release `json:"release,omitempty"`
	Role    *string  `json:"role,omitempty"`
	Spoiler *int     `json:"spoiler,omitempty"`
}

// CharacterField selects a character attribute
type CharacterField string

const (
	CharacterAge           CharacterField = "age"
	CharacterAliases       CharacterField = "aliases"
	CharacterBirthday      CharacterField = "birthday"
	CharacterBloodType     CharacterField = "blood_type"
	CharacterBust          CharacterField = "bust"
	CharacterCup           CharacterField = "cup"
	CharacterDescription   CharacterField = "description"
	CharacterHeight        CharacterField = "height"
	CharacterHips          CharacterField = "hips"
	CharacterIDField       CharacterField = "id"
	CharacterImageID       CharacterField = "image.id"
	CharacterImageURL      CharacterField = "image.url"
	CharacterName          CharacterField = "name"
	CharacterOriginal      CharacterField = "original"
	CharacterSexField      CharacterField = "sex"
	CharacterTraitsID      CharacterField = "traits.id"
	CharacterTraitsLie     CharacterField = "traits.lie"
	CharacterTraitsSpoiler CharacterField = "traits.spoiler"
	CharacterVNsAliases    CharacterField = "vns.aliases"
	CharacterVNsAltTitle   CharacterField = "vns.alttitle"
	CharacterVNsID         CharacterField = "vns.id"
	CharacterVNsReleaseID  CharacterField = "vns.release.id"
	CharacterVNsRole       CharacterField = "vns.role"
	CharacterVNsSpoiler    CharacterField = "vns.spoiler"
	CharacterVNsTitle      CharacterField = "vns.title"
	CharacterWaist         CharacterField = "waist"
	CharacterWeight        CharacterField = "weight"
)

var characterFields = []CharacterField{
	CharacterAge, CharacterAliases, CharacterBirthday, CharacterBloodType, CharacterBust,
	CharacterCup, CharacterDescription, CharacterHeight, CharacterHips, CharacterIDField,
	CharacterImageID, CharacterImageURL, CharacterName, CharacterOriginal, CharacterSexField,
	CharacterTraitsID, CharacterTraitsLie, CharacterTraitsSpoiler, CharacterVNsAliases,
	CharacterVNsAltTitle, CharacterVNsID, CharacterVNsReleaseID, CharacterVNsRole,
	CharacterVNsSpoiler, CharacterVNsTitle, CharacterWaist, CharacterWeight,
}

// Variants returns every character field
func (CharacterField) Variants() []CharacterField { return slices.Clone(characterFields) }

// CharacterSort orders character queries
type CharacterSort string

const (
	SortCharacterByID         CharacterSort = "id"
	SortCharacterByName       CharacterSort = "name"
	SortCharacterBySearchRank CharacterSort = "searchrank"
)

// CharacterQuery is a query builder for the character endpoint
type CharacterQuery = QueryBuilder[CharacterField, CharacterSort, Character]
