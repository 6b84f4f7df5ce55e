package vndb

import (
	"encoding/json"
	"fmt"
	"slices"
)

// VisualNovel is an entry of the visual novel database
type VisualNovel struct {
	ID            VisualNovelID         `json:"id"`
	Aliases       []string              `json:"aliases,omitempty"`
	AltTitle      *string               `json:"alttitle,omitempty"`
	Average       *float64              `json:"average,omitempty"`
	Description   *string               `json:"description,omitempty"`
	Developers    []Producer            `json:"developers,omitempty"`
	DevStatus     *DevStatus            `json:"devstatus,omitempty"`
	Editions      []Edition             `json:"editions,omitempty"`
	ExtLinks      []ExternalLink        `json:"extlinks,omitempty"`
	Image         *Image                `json:"image,omitempty"`
	Languages     []Language            `json:"languages,omitempty"`
	Length        *Length               `json:"length,omitempty"`
	LengthMinutes *int                  `json:"length_minutes,omitempty"`
	LengthVotes   *int                  `json:"length_votes,omitempty"`
	OLang         *Language             `json:"olang,omitempty"`
	Platforms     []string              `json:"platforms,omitempty"`
	Rating        *float64              `json:"rating,omitempty"`
	Relations     []VisualNovelRelation `json:"relations,omitempty"`
	Released      *string               `json:"released,omitempty"`
	Screenshots   []Image               `json:"screenshots,omitempty"`
	Staff         []VisualNovelStaff    `json:"staff,omitempty"`
	Tags          []VisualNovelTag      `json:"tags,omitempty"`
	Title         *string               `json:"title,omitempty"`
	Titles        []VisualNovelTitle    `json:"titles,omitempty"`
	VoiceActors   []VoiceActor          `json:"va,omitempty"`
	VoteCount     *int                  `json:"votecount,omitempty"`
}

// DevStatus is the development status of a visual novel
type DevStatus int

const (
	DevFinished      DevStatus = 0
	DevInDevelopment DevStatus = 1
	DevCancelled     DevStatus = 2
)

func (s DevStatus) String() string {
	switch s {
	case DevFinished:
		return "finished"
	case DevInDevelopment:
		return "in development"
	case DevCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

func (s *DevStatus) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if n < int(DevFinished) || n > int(DevCancelled) {
		return fmt.Errorf("invalid visual novel devstatus value: %d", n)
	}
	*s = DevStatus(n)
	return nil
}

// Length is the rough play time bucket, 1 (very short) to 5 (very long)
type Length int

const (
	LengthVeryShort Length = 1
	LengthShort     Length = 2
	LengthAverage   Length = 3
	LengthLong      Length = 4
	LengthVeryLong  Length = 5
)

func (l Length) String() string {
	switch l {
	case LengthVeryShort:
		return "very short"
	case LengthShort:
		return "short"
	case LengthAverage:
		return "average"
	case LengthLong:
		return "long"
	case LengthVeryLong:
		return "very long"
	default:
		return "unknown"
	}
}

func (l *Length) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if n < int(LengthVeryShort) || n > int(LengthVeryLong) {
		return fmt.Errorf("invalid visual novel length value: %d", n)
	}
	*l = Length(n)
	return nil
}

type Edition struct {
	EID      *int      `json:"eid,omitempty"`
	Lang     *Language `json:"lang,omitempty"`
	Name     *string   `json:"name,omitempty"`
	Official *bool     `json:"official,omitempty"`
}

// VisualNovelRelation is a related visual novel, e.g. a sequel
type VisualNovelRelation struct {
	VisualNovel
	Relation         *string `json:"relation,omitempty"`
	RelationOfficial *bool   `json:"relation_official,omitempty"`
}

// VisualNovelStaff is a staff credit on a visual novel
type VisualNovelStaff struct {
	Staff
	EID  *int    `json:"eid,omitempty"`
	Note *string `json:"note,omitempty"`
	Role *string `json:"role,omitempty"`
}

// VisualNovelTag is a tag vote summary on a visual novel
type VisualNovelTag struct {
	Tag
	Lie     *bool    `json:"lie,omitempty"`
	Rating  *float64 `json:"rating,omitempty"`
	Spoiler *int     `json:"spoiler,omitempty"`
}

type VisualNovelTitle struct {
	Lang     *Language `json:"lang,omitempty"`
	Latin    *string   `json:"latin,omitempty"`
	Main     *bool     `json:"main,omitempty"`
	Official *bool     `json:"official,omitempty"`
	Title    *string   `json:"title,omitempty"`
}

// VoiceActor credits a staff member for voicing a character
type VoiceActor struct {
	Note      *string    `json:"note,omitempty"`
	Staff     *Staff     `json:"staff,omitempty"`
	Character *Character `json:"character,omitempty"`
}

// VisualNovelField selects a visual novel attribute
type VisualNovelField string

const (
	VisualNovelAliases               VisualNovelField = "aliases"
	VisualNovelAltTitle              VisualNovelField = "alttitle"
	VisualNovelAverage               VisualNovelField = "average"
	VisualNovelDescription           VisualNovelField = "description"
	VisualNovelDevelopersAliases     VisualNovelField = "developers.aliases"
	VisualNovelDevelopersDescription VisualNovelField = "developers.description"
	VisualNovelDevelopersID          VisualNovelField = "developers.id"
	VisualNovelDevelopersLang        VisualNovelField = "developers.lang"
	VisualNovelDevelopersName        VisualNovelField = "developers.name"
	VisualNovelDevelopersOriginal    VisualNovelField = "developers.original"
	VisualNovelDevelopersType        VisualNovelField = "developers.type"
	VisualNovelDevStatus             VisualNovelField = "devstatus"
	VisualNovelEditionsEID           VisualNovelField = "editions.eid"
	VisualNovelEditionsLang          VisualNovelField = "editions.lang"
	VisualNovelEditionsName          VisualNovelField = "editions.name"
	VisualNovelEditionsOfficial      VisualNovelField = "editions.official"
	VisualNovelExtLinksID            VisualNovelField = "extlinks.id"
	VisualNovelExtLinksLabel         VisualNovelField = "extlinks.label"
	VisualNovelExtLinksName          VisualNovelField = "extlinks.name"
	VisualNovelExtLinksURL           VisualNovelField = "extlinks.url"
	VisualNovelIDField               VisualNovelField = "id"
	VisualNovelImageDims             VisualNovelField = "image.dims"
	VisualNovelImageID               VisualNovelField = "image.id"
	VisualNovelImageSexual           VisualNovelField = "image.sexual"
	VisualNovelImageThumbnail        VisualNovelField = "image.thumbnail"
	VisualNovelImageThumbnailDims    VisualNovelField = "image.thumbnail_dims"
	VisualNovelImageURL              VisualNovelField = "image.url"
	VisualNovelImageViolence         VisualNovelField = "image.violence"
	VisualNovelImageVoteCount        VisualNovelField = "image.votecount"
	VisualNovelLanguages             VisualNovelField = "languages"
	VisualNovelLength                VisualNovelField = "length"
	VisualNovelLengthMinutes         VisualNovelField = "length_minutes"
	VisualNovelLengthVotes           VisualNovelField = "length_votes"
	VisualNovelOLang                 VisualNovelField = "olang"
	VisualNovelPlatforms             VisualNovelField = "platforms"
	VisualNovelRating                VisualNovelField = "rating"
	VisualNovelRelationsID           VisualNovelField = "relations.id"
	VisualNovelRelationsRelation     VisualNovelField = "relations.relation"
	VisualNovelRelationsOfficial     VisualNovelField = "relations.relation_official"
	VisualNovelReleased              VisualNovelField = "released"
	VisualNovelScreenshotsDims       VisualNovelField = "screenshots.dims"
	VisualNovelScreenshotsID         VisualNovelField = "screenshots.id"
	VisualNovelScreenshotsSexual     VisualNovelField = "screenshots.sexual"
	VisualNovelScreenshotsThumbnail  VisualNovelField = "screenshots.thumbnail"
	VisualNovelScreenshotsThumbDims  VisualNovelField = "screenshots.thumbnail_dims"
	VisualNovelScreenshotsURL        VisualNovelField = "screenshots.url"
	VisualNovelScreenshotsViolence   VisualNovelField = "screenshots.violence"
	VisualNovelScreenshotsVoteCount  VisualNovelField = "screenshots.votecount"
	VisualNovelStaffEID              VisualNovelField = "staff.eid"
	VisualNovelStaffNote             VisualNovelField = "staff.note"
	VisualNovelStaffRole             VisualNovelField = "staff.role"
	VisualNovelTagsID                VisualNovelField = "tags.id"
	VisualNovelTagsLie               VisualNovelField = "tags.lie"
	VisualNovelTagsRating            VisualNovelField = "tags.rating"
	VisualNovelTagsSpoiler           VisualNovelField = "tags.spoiler"
	VisualNovelTitleField            VisualNovelField = "title"
	VisualNovelTitlesLang            VisualNovelField = "titles.lang"
	VisualNovelTitlesLatin           VisualNovelField = "titles.latin"
	VisualNovelTitlesMain            VisualNovelField = "titles.main"
	VisualNovelTitlesOfficial        VisualNovelField = "titles.official"
	VisualNovelTitlesTitle           VisualNovelField = "titles.title"
	VisualNovelVACharacterID         VisualNovelField = "va.character.id"
	VisualNovelVANote                VisualNovelField = "va.note"
	VisualNovelVAStaffID             VisualNovelField = "va.staff.id"
	VisualNovelVoteCount             VisualNovelField = "votecount"
)

var visualNovelFields = []VisualNovelField{
	VisualNovelAliases, VisualNovelAltTitle, VisualNovelAverage, VisualNovelDescription,
	VisualNovelDevelopersAliases, VisualNovelDevelopersDescription, VisualNovelDevelopersID,
	VisualNovelDevelopersLang, VisualNovelDevelopersName, VisualNovelDevelopersOriginal,
	VisualNovelDevelopersType, VisualNovelDevStatus, VisualNovelEditionsEID,
	VisualNovelEditionsLang, VisualNovelEditionsName, VisualNovelEditionsOfficial,
	VisualNovelExtLinksID, VisualNovelExtLinksLabel, VisualNovelExtLinksName,
	VisualNovelExtLinksURL, VisualNovelIDField, VisualNovelImageDims, VisualNovelImageID,
	VisualNovelImageSexual, VisualNovelImageThumbnail, VisualNovelImageThumbnailDims,
	VisualNovelImageURL, VisualNovelImageViolence, VisualNovelImageVoteCount,
	VisualNovelLanguages, VisualNovelLength, VisualNovelLengthMinutes, VisualNovelLengthVotes,
	VisualNovelOLang, VisualNovelPlatforms, VisualNovelRating, VisualNovelRelationsID,
	VisualNovelRelationsRelation, VisualNovelRelationsOfficial, VisualNovelReleased,
	VisualNovelScreenshotsDims, VisualNovelScreenshotsID, VisualNovelScreenshotsSexual,
	VisualNovelScreenshotsThumbnail, VisualNovelScreenshotsThumbDims, VisualNovelScreenshotsURL,
	VisualNovelScreenshotsViolence, VisualNovelScreenshotsVoteCount, VisualNovelStaffEID,
	VisualNovelStaffNote, VisualNovelStaffRole, VisualNovelTagsID, VisualNovelTagsLie,
	VisualNovelTagsRating, VisualNovelTagsSpoiler, VisualNovelTitleField, VisualNovelTitlesLang,
	VisualNovelTitlesLatin, VisualNovelTitlesMain, VisualNovelTitlesOfficial,
	VisualNovelTitlesTitle, VisualNovelVACharacterID, VisualNovelVANote, VisualNovelVAStaffID,
	VisualNovelVoteCount,
}

// Variants returns every visual novel field
func (VisualNovelField) Variants() []VisualNovelField { return slices.Clone(visualNovelFields) }

// VisualNovelSort orders visual novel queries
type VisualNovelSort string

const (
	SortVisualNovelByID         VisualNovelSort = "id"
	SortVisualNovelByRating     VisualNovelSort = "rating"
	SortVisualNovelByReleased   VisualNovelSort = "released"
	SortVisualNovelBySearchRank VisualNovelSort = "searchrank"
	SortVisualNovelByTitle      VisualNovelSort = "title"
	SortVisualNovelByVoteCount  VisualNovelSort = "votecount"
)

// VisualNovelQuery is a query builder for the vn endpoint
type VisualNovelQuery = QueryBuilder[VisualNovelField, VisualNovelSort, VisualNovel]
