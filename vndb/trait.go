package vndb

import "slices"

// Trait is a character trait
type Trait struct {
	ID          TraitID  `json:"id"`
	Aliases     []string `json:"aliases,omitempty"`
	Applicable  *bool    `json:"applicable,omitempty"`
	CharCount   *int     `json:"char_count,omitempty"`
	Description *string  `json:"description,omitempty"`
	GroupID     *TraitID `json:"group_id,omitempty"`
	GroupName   *string  `json:"group_name,omitempty"`
	Name        *string  `json:"name,omitempty"`
	Searchable  *bool    `json:"searchable,omitempty"`
}

// TraitField selects a trait attribute
type TraitField string

const (
	TraitAliases     TraitField = "aliases"
	TraitApplicable  TraitField = "applicable"
	TraitCharCount   TraitField = "char_count"
	TraitDescription TraitField = "description"
	TraitGroupID     TraitField = "group_id"
	TraitGroupName   TraitField = "group_name"
	TraitIDField     TraitField = "id"
	TraitName        TraitField = "name"
	TraitSearchable  TraitField = "searchable"
)

var traitFields = []TraitField{
	TraitAliases, TraitApplicable, TraitCharCount, TraitDescription, TraitGroupID,
	TraitGroupName, TraitIDField, TraitName, TraitSearchable,
}

// Variants returns every trait field
func (TraitField) Variants() []TraitField { return slices.Clone(traitFields) }

// TraitSort orders trait queries
type TraitSort string

const (
	SortTraitByCharCount  TraitSort = "char_count"
	SortTraitByID         TraitSort = "id"
	SortTraitByName       TraitSort = "name"
	SortTraitBySearchRank TraitSort = "searchrank"
)

// TraitQuery is a query builder for the trait endpoint
type TraitQuery = QueryBuilder[TraitField, TraitSort, Trait]
