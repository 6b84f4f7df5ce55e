package vndb

import "slices"

// Staff is a person credited on visual novels
type Staff struct {
	ID          StaffID        `json:"id"`
	AID         *int           `json:"aid,omitempty"`
	Aliases     []StaffAlias   `json:"aliases,omitempty"`
	Description *string        `json:"description,omitempty"`
	ExtLinks    []ExternalLink `json:"extlinks,omitempty"`
	Gender      *StaffGender   `json:"gender,omitempty"`
	IsMain      *bool          `json:"ismain,omitempty"`
	Lang        *Language      `json:"lang,omitempty"`
	Name        *string        `json:"name,omitempty"`
	Original    *string        `json:"original,omitempty"`
}

// StaffAlias is one of the names a staff member is credited under
type StaffAlias struct {
	AID    *int    `json:"aid,omitempty"`
	IsMain *bool   `json:"ismain,omitempty"`
	Latin  *string `json:"latin,omitempty"`
	Name   *string `json:"name,omitempty"`
}

type StaffGender string

const (
	StaffFemale StaffGender = "f"
	StaffMale   StaffGender = "m"
)

// StaffField selects a staff attribute
type StaffField string

const (
	StaffAID           StaffField = "aid"
	StaffAliasesAID    StaffField = "aliases.aid"
	StaffAliasesIsMain StaffField = "aliases.ismain"
	StaffAliasesLatin  StaffField = "aliases.latin"
	StaffAliasesName   StaffField = "aliases.name"
	StaffDescription   StaffField = "description"
	StaffExtLinksID    StaffField = "extlinks.id"
	StaffExtLinksLabel StaffField = "extlinks.label"
	StaffExtLinksName  StaffField = "extlinks.name"
	StaffExtLinksURL   StaffField = "extlinks.url"
	StaffGenderField   StaffField = "gender"
	StaffIDField       StaffField = "id"
	StaffIsMain        StaffField = "ismain"
	StaffLang          StaffField = "lang"
	StaffName          StaffField = "name"
	StaffOriginal      StaffField = "original"
)

var staffFields = []StaffField{
	StaffAID, StaffAliasesAID, StaffAliasesIsMain, StaffAliasesLatin, StaffAliasesName,
	StaffDescription, StaffExtLinksID, StaffExtLinksLabel, StaffExtLinksName, StaffExtLinksURL,
	StaffGenderField, StaffIDField, StaffIsMain, StaffLang, StaffName, StaffOriginal,
}

// Variants returns every staff field
func (StaffField) Variants() []StaffField { return slices.Clone(staffFields) }

// StaffSort orders staff queries
type StaffSort string

const (
	SortStaffByID         StaffSort = "id"
	SortStaffByName       StaffSort = "name"
	SortStaffBySearchRank StaffSort = "searchrank"
)

// StaffQuery is a query builder for the staff endpoint
type StaffQuery = QueryBuilder[StaffField, StaffSort, Staff]
