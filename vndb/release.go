package vndb

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Release is a published edition of one or more visual novels
type Release struct {
	ID           ReleaseID            `json:"id"`
	AltTitle     *string              `json:"alttitle,omitempty"`
	Catalog      *string              `json:"catalog,omitempty"`
	Engine       *string              `json:"engine,omitempty"`
	ExtLinks     []ExternalLink       `json:"extlinks,omitempty"`
	Freeware     *bool                `json:"freeware,omitempty"`
	GTIN         *string              `json:"gtin,omitempty"`
	HasEro       *bool                `json:"has_ero,omitempty"`
	Images       []ReleaseImage       `json:"images,omitempty"`
	Languages    []ReleaseLanguage    `json:"languages,omitempty"`
	Media        []ReleaseMedia       `json:"media,omitempty"`
	MinAge       *int                 `json:"minage,omitempty"`
	Notes        *string              `json:"notes,omitempty"`
	Official     *bool                `json:"official,omitempty"`
	Patch        *bool                `json:"patch,omitempty"`
	Platforms    []string             `json:"platforms,omitempty"`
	Producers    []ReleaseProducer    `json:"producers,omitempty"`
	Released     *string              `json:"released,omitempty"`
	Resolution   *Resolution          `json:"resolution,omitempty"`
	Title        *string              `json:"title,omitempty"`
	Uncensored   *bool                `json:"uncensored,omitempty"`
	VisualNovels []ReleaseVisualNovel `json:"vns,omitempty"`
	Voiced       *Voiced              `json:"voiced,omitempty"`
}

// ReleaseImageType classifies a release image
type ReleaseImageType string

const (
	ReleaseImageDigital    ReleaseImageType = "dig"
	ReleaseImagePkgBack    ReleaseImageType = "pkgback"
	ReleaseImagePkgContent ReleaseImageType = "pkgcontent"
	ReleaseImagePkgFront   ReleaseImageType = "pkgfront"
	ReleaseImagePkgMedia   ReleaseImageType = "pkgmed"
	ReleaseImagePkgSide    ReleaseImageType = "pkgside"
)

// ReleaseImage is a cover or package photo of a release
type ReleaseImage struct {
	Image
	Languages   []Language        `json:"languages,omitempty"`
	Photo       *bool             `json:"photo,omitempty"`
	Type        *ReleaseImageType `json:"type,omitempty"`
	VisualNovel *VisualNovelID    `json:"vn,omitempty"`
}

type ReleaseLanguage struct {
	Lang  *Language `json:"lang,omitempty"`
	Latin *string   `json:"latin,omitempty"`
	Main  *bool     `json:"main,omitempty"`
	MTL   *bool     `json:"mtl,omitempty"`
	Title *string   `json:"title,omitempty"`
}

type ReleaseMedia struct {
	Medium *string `json:"medium,omitempty"`
	Qty    *int    `json:"qty,omitempty"`
}

// ReleaseProducer is a producer credited on a release
type ReleaseProducer struct {
	Producer
	Developer *bool `json:"developer,omitempty"`
	Publisher *bool `json:"publisher,omitempty"`
}

// ReleaseType tells how much of a visual novel a release covers
type ReleaseType string

const (
	ReleaseComplete ReleaseType = "complete"
	ReleasePartial  ReleaseType = "partial"
	ReleaseTrial    ReleaseType = "trial"
)

// ReleaseVisualNovel is a visual novel linked to a release
type ReleaseVisualNovel struct {
	VisualNovel
	RType *ReleaseType `json:"rtype,omitempty"`
}

// Resolution is either a [width, height] pair or a non-standard label
// such as "non-standard"
type Resolution struct {
	Width  int
	Height int
	Label  string
}

// IsStandard reports whether the resolution has pixel dimensions
func (r Resolution) IsStandard() bool {
	return r.Label == ""
}

func (r Resolution) String() string {
	if r.IsStandard() {
		return fmt.Sprintf("%dx%d", r.Width, r.Height)
	}
	return r.Label
}

func (r Resolution) MarshalJSON() ([]byte, error) {
	if r.IsStandard() {
		return json.Marshal([2]int{r.Width, r.Height})
	}
	return json.Marshal(r.Label)
}

func (r *Resolution) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		*r = Resolution{Label: label}
		return nil
	}
	var dims [2]int
	if err := json.Unmarshal(data, &dims); err != nil {
		return fmt.Errorf("resolution: %w", err)
	}
	*r = Resolution{Width: dims[0], Height: dims[1]}
	return nil
}

// Voiced is the voice acting coverage of a release
type Voiced int

const (
	NotVoiced       Voiced = 1
	OnlyEroScenes   Voiced = 2
	PartiallyVoiced Voiced = 3
	FullyVoiced     Voiced = 4
)

func (v Voiced) String() string {
	switch v {
	case NotVoiced:
		return "not voiced"
	case OnlyEroScenes:
		return "only ero scenes"
	case PartiallyVoiced:
		return "partially voiced"
	case FullyVoiced:
		return "fully voiced"
	default:
		return "unknown"
	}
}

func (v *Voiced) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if n < int(NotVoiced) || n > int(FullyVoiced) {
		return fmt.Errorf("invalid release voiced value: %d", n)
	}
	*v = Voiced(n)
	return nil
}

// ReleaseField selects a release attribute
type ReleaseField string

const (
	ReleaseAltTitle           ReleaseField = "alttitle"
	ReleaseCatalog            ReleaseField = "catalog"
	ReleaseEngine             ReleaseField = "engine"
	ReleaseExtLinksID         ReleaseField = "extlinks.id"
	ReleaseExtLinksLabel      ReleaseField = "extlinks.label"
	ReleaseExtLinksName       ReleaseField = "extlinks.name"
	ReleaseExtLinksURL        ReleaseField = "extlinks.url"
	ReleaseFreeware           ReleaseField = "freeware"
	ReleaseGTIN               ReleaseField = "gtin"
	ReleaseHasEro             ReleaseField = "has_ero"
	ReleaseIDField            ReleaseField = "id"
	ReleaseImagesID           ReleaseField = "images.id"
	ReleaseImagesLanguages    ReleaseField = "images.languages"
	ReleaseImagesPhoto        ReleaseField = "images.photo"
	ReleaseImagesType         ReleaseField = "images.type"
	ReleaseImagesURL          ReleaseField = "images.url"
	ReleaseImagesVN           ReleaseField = "images.vn"
	ReleaseLanguagesLang      ReleaseField = "languages.lang"
	ReleaseLanguagesLatin     ReleaseField = "languages.latin"
	ReleaseLanguagesMain      ReleaseField = "languages.main"
	ReleaseLanguagesMTL       ReleaseField = "languages.mtl"
	ReleaseLanguagesTitle     ReleaseField = "languages.title"
	ReleaseMediaMedium        ReleaseField = "media.medium"
	ReleaseMediaQty           ReleaseField = "media.qty"
	ReleaseMinAge             ReleaseField = "minage"
	ReleaseNotes              ReleaseField = "notes"
	ReleaseOfficial           ReleaseField = "official"
	ReleasePatch              ReleaseField = "patch"
	ReleasePlatforms          ReleaseField = "platforms"
	ReleaseProducersDeveloper ReleaseField = "producers.developer"
	ReleaseProducersID        ReleaseField = "producers.id"
	ReleaseProducersPublisher ReleaseField = "producers.publisher"
	ReleaseReleased           ReleaseField = "released"
	ReleaseResolutionField    ReleaseField = "resolution"
	ReleaseTitle              ReleaseField = "title"
	ReleaseUncensored         ReleaseField = "uncensored"
	ReleaseVNsID              ReleaseField = "vns.id"
	ReleaseVNsRType           ReleaseField = "vns.rtype"
	ReleaseVoiced             ReleaseField = "voiced"
)

var releaseFields = []ReleaseField{
	ReleaseAltTitle, ReleaseCatalog, ReleaseEngine, ReleaseExtLinksID, ReleaseExtLinksLabel,
	ReleaseExtLinksName, ReleaseExtLinksURL, ReleaseFreeware, ReleaseGTIN, ReleaseHasEro,
	ReleaseIDField, ReleaseImagesID, ReleaseImagesLanguages, ReleaseImagesPhoto, ReleaseImagesType,
	ReleaseImagesURL, ReleaseImagesVN, ReleaseLanguagesLang, ReleaseLanguagesLatin,
	ReleaseLanguagesMain, ReleaseLanguagesMTL, ReleaseLanguagesTitle, ReleaseMediaMedium,
	ReleaseMediaQty, ReleaseMinAge, ReleaseNotes, ReleaseOfficial, ReleasePatch, ReleasePlatforms,
	ReleaseProducersDeveloper, ReleaseProducersID, ReleaseProducersPublisher, ReleaseReleased,
	ReleaseResolutionField, ReleaseTitle, ReleaseUncensored, ReleaseVNsID, ReleaseVNsRType,
	ReleaseVoiced,
}

// Variants returns every release field
func (ReleaseField) Variants() []ReleaseField { return slices.Clone(releaseFields) }

// ReleaseSort orders release queries
type ReleaseSort string

const (
	SortReleaseByID         ReleaseSort = "id"
	SortReleaseByReleased   ReleaseSort = "released"
	SortReleaseBySearchRank ReleaseSort = "searchrank"
	SortReleaseByTitle      ReleaseSort = "title"
)

// ReleaseQuery is a query builder for the release endpoint
type ReleaseQuery = QueryBuilder[ReleaseField, ReleaseSort, Release]
