package vndb

import "slices"

// Producer is a company, individual or amateur group
type Producer struct {
	ID          ProducerID    `json:"id"`
	Aliases     []string      `json:"aliases,omitempty"`
	Description *string       `json:"description,omitempty"`
	Lang        *Language     `json:"lang,omitempty"`
	Name        *string       `json:"name,omitempty"`
	Original    *string       `json:"original,omitempty"`
	Type        *ProducerType `json:"type,omitempty"`
}

// ProducerType is co, in or ng
type ProducerType string

const (
	ProducerCompany      ProducerType = "co"
	ProducerIndividual   ProducerType = "in"
	ProducerAmateurGroup ProducerType = "ng"
)

func (t ProducerType) String() string {
	switch t {
	case ProducerCompany:
		return "company"
	case ProducerIndividual:
		return "individual"
	case ProducerAmateurGroup:
		return "amateur group"
	default:
		return string(t)
	}
}

// ProducerField selects a producer attribute
type ProducerField string

const (
	ProducerAliases     ProducerField = "aliases"
	ProducerDescription ProducerField = "description"
	ProducerIDField     ProducerField = "id"
	ProducerLang        ProducerField = "lang"
	ProducerName        ProducerField = "name"
	ProducerOriginal    ProducerField = "original"
	ProducerTypeField   ProducerField = "type"
)

var producerFields = []ProducerField{
	ProducerAliases, ProducerDescription, ProducerIDField, ProducerLang,
	ProducerName, ProducerOriginal, ProducerTypeField,
}

// Variants returns every producer field
func (ProducerField) Variants() []ProducerField { return slices.Clone(producerFields) }

// ProducerSort orders producer queries
type ProducerSort string

const (
	SortProducerByID         ProducerSort = "id"
	SortProducerByName       ProducerSort = "name"
	SortProducerBySearchRank ProducerSort = "searchrank"
)

// ProducerQuery is a query builder for the producer endpoint
type ProducerQuery = QueryBuilder[ProducerField, ProducerSort, Producer]
