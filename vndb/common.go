package vndb

import (
	"encoding/json"
)

// Image is an image reference with its flagging votes.
// Thumbnail fields are only filled for visual novel images and screenshots.
type Image struct {
	ID            *string  `json:"id,omitempty"`
	URL           *string  `json:"url,omitempty"`
	Dims          *[2]int  `json:"dims,omitempty"`
	Sexual        *float64 `json:"sexual,omitempty"`
	Violence      *float64 `json:"violence,omitempty"`
	VoteCount     *int     `json:"votecount,omitempty"`
	Thumbnail     *string  `json:"thumbnail,omitempty"`
	ThumbnailDims *[2]int  `json:"thumbnail_dims,omitempty"`
}

// ExternalLink points to a page on another site
type ExternalLink struct {
	ID    json.RawMessage `json:"id,omitempty"`
	Label string          `json:"label"`
	Name  string          `json:"name"`
	URL   string          `json:"url"`
}

// LanguageKind groups language codes the library knows about
type LanguageKind int

const (
	LanguageUnknown LanguageKind = iota
	LanguageChinese
	LanguageEnglish
	LanguageJapanese
	LanguageKorean
	LanguagePortuguese
	LanguageRussian
	LanguageSpanish
)

var languageNames = map[LanguageKind]string{
	LanguageChinese:    "Chinese",
	LanguageEnglish:    "English",
	LanguageJapanese:   "Japanese",
	LanguageKorean:     "Korean",
	LanguagePortuguese: "Portuguese",
	LanguageRussian:    "Russian",
	LanguageSpanish:    "Spanish",
}

var languageCodes = map[string]LanguageKind{
	"zh":      LanguageChinese,
	"zh-Hans": LanguageChinese,
	"zh-Hant": LanguageChinese,
	"en":      LanguageEnglish,
	"ja":      LanguageJapanese,
	"ko":      LanguageKorean,
	"pt-br":   LanguagePortuguese,
	"pt-pt":   LanguagePortuguese,
	"ru":      LanguageRussian,
	"es":      LanguageSpanish,
}

// Language is a language code as sent by the API. Regional variants fold
// into one Kind; codes without a Kind keep only their Code.
type Language struct {
	Code string
	Kind LanguageKind
}

// ParseLanguage classifies a language code
func ParseLanguage(code string) Language {
	return Language{Code: code, Kind: languageCodes[code]}
}

func (l Language) String() string {
	if name, ok := languageNames[l.Kind]; ok {
		return name
	}
	return l.Code
}

func (l Language) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Code)
}

func (l *Language) UnmarshalJSON(data []byte) error {
	var code string
	if err := json.Unmarshal(data, &code); err != nil {
		return err
	}
	*l = ParseLanguage(code)
	return nil
}
