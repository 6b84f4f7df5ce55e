package vndb

import "slices"

type Tag struct {
	ID          TagID        `json:"id"`
	Aliases     []string     `json:"aliases,omitempty"`
	Applicable  *bool        `json:"applicable,omitempty"`
	Category    *TagCategory `json:"category,omitempty"`
	Description *string      `json:"description,omitempty"`
	Name        *string      `json:"name,omitempty"`
	Searchable  *bool        `json:"searchable,omitempty"`
	VNCount     *int         `json:"vn_count,omitempty"`
}

// TagCategory is cont (content), ero (sexual content) or tech (technical)
type TagCategory string

const (
	TagContent   TagCategory = "cont"
	TagEro       TagCategory = "ero"
	TagTechnical TagCategory = "tech"
)

// TagField selects a tag attribute
type TagField string

const (
	TagAliases       TagField = "aliases"
	TagApplicable    TagField = "applicable"
	TagCategoryField TagField = "category"
	TagDescription   TagField = "description"
	TagIDField       TagField = "id"
	TagName          TagField = "name"
	TagSearchable    TagField = "searchable"
	TagVNCount       TagField = "vn_count"
)

var tagFields = []TagField{
	TagAliases, TagApplicable, TagCategoryField, TagDescription,
	TagIDField, TagName, TagSearchable, TagVNCount,
}

// Variants returns every tag field
func (TagField) Variants() []TagField { return slices.Clone(tagFields) }

// TagSort orders tag queries
type TagSort string

const (
	SortTagByID         TagSort = "id"
	SortTagByName       TagSort = "name"
	SortTagBySearchRank TagSort = "searchrank"
	SortTagByVNCount    TagSort = "vn_count"
)

// TagQuery is a query builder for the tag endpoint
type TagQuery = QueryBuilder[TagField, TagSort, Tag]
