package vndb

import (
	"encoding/json"
	"regexp"
	"strconv"
)

// ID is implemented by every resource id type
type ID interface {
	~string
	String() string
}

type idFormat struct {
	resource string
	prefix   string
	pattern  *regexp.Regexp
}

var (
	visualNovelIDs = idFormat{"visual novel", "v", regexp.MustCompile(`^v\d+$`)}
	releaseIDs     = idFormat{"release", "r", regexp.MustCompile(`^r\d+$`)}
	characterIDs   = idFormat{"character", "c", regexp.MustCompile(`^c\d+$`)}
	producerIDs    = idFormat{"producer", "p", regexp.MustCompile(`^p\d+$`)}
	staffIDs       = idFormat{"staff", "s", regexp.MustCompile(`^s\d+$`)}
	tagIDs         = idFormat{"tag", "g", regexp.MustCompile(`^g\d+$`)}
	traitIDs       = idFormat{"trait", "i", regexp.MustCompile(`^i\d+$`)}
	userIDs        = idFormat{"user", "u", regexp.MustCompile(`^u\d+$`)}
)

func (f idFormat) parse(s string) (string, error) {
	if !f.pattern.MatchString(s) {
		return "", &InvalidIDError{Resource: f.resource, Value: s}
	}
	return s, nil
}

func (f idFormat) format(n uint32) string {
	return f.prefix + strconv.FormatUint(uint64(n), 10)
}

func (f idFormat) number(s string) (uint32, error) {
	if _, err := f.parse(s); err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(s[len(f.prefix):], 10, 32)
	if err != nil {
		return 0, &InvalidIDError{Resource: f.resource, Value: s}
	}
	return uint32(n), nil
}

func (f idFormat) unmarshal(data []byte, dst *string) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := f.parse(raw)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// VisualNovelID identifies a visual novel, e.g. "v17"
type VisualNovelID string

// ParseVisualNovelID validates s as a visual novel id
func ParseVisualNovelID(s string) (VisualNovelID, error) {
	v, err := visualNovelIDs.parse(s)
	return VisualNovelID(v), err
}

// NewVisualNovelID builds an id from its number without validation
func NewVisualNovelID(n uint32) VisualNovelID { return VisualNovelID(visualNovelIDs.format(n)) }

func (id VisualNovelID) String() string { return string(id) }

// Number returns the numeric part of the id
func (id VisualNovelID) Number() (uint32, error) { return visualNovelIDs.number(string(id)) }

func (id *VisualNovelID) UnmarshalJSON(data []byte) error {
	return visualNovelIDs.unmarshal(data, (*string)(id))
}

// ReleaseID identifies a release, e.g. "r80"
type ReleaseID string

// ParseReleaseID validates s as a release id
func ParseReleaseID(s string) (ReleaseID, error) {
	v, err := releaseIDs.parse(s)
	return ReleaseID(v), err
}

// NewReleaseID builds an id from its number without validation
func NewReleaseID(n uint32) ReleaseID { return ReleaseID(releaseIDs.format(n)) }

func (id ReleaseID) String() string { return string(id) }

// Number returns the numeric part of the id
func (id ReleaseID) Number() (uint32, error) { return releaseIDs.number(string(id)) }

func (id *ReleaseID) UnmarshalJSON(data []byte) error {
	return releaseIDs.unmarshal(data, (*string)(id))
}

// CharacterID identifies a character, e.g. "c81501"
type CharacterID string

// ParseCharacterID validates s as a character id
func ParseCharacterID(s string) (CharacterID, error) {
	v, err := characterIDs.parse(s)
	return CharacterID(v), err
}

// NewCharacterID builds an id from its number without validation
func NewCharacterID(n uint32) CharacterID { return CharacterID(characterIDs.format(n)) }

func (id CharacterID) String() string { return string(id) }

// Number returns the numeric part of the id
func (id CharacterID) Number() (uint32, error) { return characterIDs.number(string(id)) }

func (id *CharacterID) UnmarshalJSON(data []byte) error {
	return characterIDs.unmarshal(data, (*string)(id))
}

// ProducerID identifies a producer, e.g. "p332"
type ProducerID string

// ParseProducerID validates s as a producer id
func ParseProducerID(s string) (ProducerID, error) {
	v, err := producerIDs.parse(s)
	return ProducerID(v), err
}

// NewProducerID builds an id from its number without validation
func NewProducerID(n uint32) ProducerID { return ProducerID(producerIDs.format(n)) }

func (id ProducerID) String() string { return string(id) }

// Number returns the numeric part of the id
func (id ProducerID) Number() (uint32, error) { return producerIDs.number(string(id)) }

func (id *ProducerID) UnmarshalJSON(data []byte) error {
	return producerIDs.unmarshal(data, (*string)(id))
}

// StaffID identifies a staff member, e.g. "s4466"
type StaffID string

// ParseStaffID validates s as a staff id
func ParseStaffID(s string) (StaffID, error) {
	v, err := staffIDs.parse(s)
	return StaffID(v), err
}

// NewStaffID builds an id from its number without validation
func NewStaffID(n uint32) StaffID { return StaffID(staffIDs.format(n)) }

func (id StaffID) String() string { return string(id) }

// Number returns the numeric part of the id
func (id StaffID) Number() (uint32, error) { return staffIDs.number(string(id)) }

func (id *StaffID) UnmarshalJSON(data []byte) error {
	return staffIDs.unmarshal(data, (*string)(id))
}

// TagID identifies a tag, e.g. "g994"
type TagID string

// ParseTagID validates s as a tag id
func ParseTagID(s string) (TagID, error) {
	v, err := tagIDs.parse(s)
	return TagID(v), err
}

// NewTagID builds an id from its number without validation
func NewTagID(n uint32) TagID { return TagID(tagIDs.format(n)) }

func (id TagID) String() string { return string(id) }

// Number returns the numeric part of the id
func (id TagID) Number() (uint32, error) { return tagIDs.number(string(id)) }

func (id *TagID) UnmarshalJSON(data []byte) error {
	return tagIDs.unmarshal(data, (*string)(id))
}

// TraitID identifies a trait, e.g. "i229"
type TraitID string

// ParseTraitID validates s as a trait id
func ParseTraitID(s string) (TraitID, error) {
	v, err := traitIDs.parse(s)
	return TraitID(v), err
}

// NewTraitID builds an id from its number without validation
func NewTraitID(n uint32) TraitID { return TraitID(traitIDs.format(n)) }

func (id TraitID) String() string { return string(id) }

// Number returns the numeric part of the id
func (id TraitID) Number() (uint32, error) { return traitIDs.number(string(id)) }

func (id *TraitID) UnmarshalJSON(data []byte) error {
	return traitIDs.unmarshal(data, (*string)(id))
}

// UserID identifies a user account, e.g. "u1000"
type UserID string

// ParseUserID validates s as a user id
func ParseUserID(s string) (UserID, error) {
	v, err := userIDs.parse(s)
	return UserID(v), err
}

// NewUserID builds an id from its number without validation
func NewUserID(n uint32) UserID { return UserID(userIDs.format(n)) }

func (id UserID) String() string { return string(id) }

// Number returns the numeric part of the id
func (id UserID) Number() (uint32, error) { return userIDs.number(string(id)) }

func (id *UserID) UnmarshalJSON(data []byte) error {
	return userIDs.unmarshal(data, (*string)(id))
}
