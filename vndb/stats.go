package vndb

import "encoding/json"

// Stats holds database wide entry counts
type Stats struct {
	Chars     uint32 `json:"chars"`
	Producers uint32 `json:"producers"`
	Releases  uint32 `json:"releases"`
	Staff     uint32 `json:"staff"`
	Tags      uint32 `json:"tags"`
	Traits    uint32 `json:"traits"`
	VN        uint32 `json:"vn"`
}

// TokenPermission is a permission granted to an API token
type TokenPermission string

const (
	PermissionListRead  TokenPermission = "listread"
	PermissionListWrite TokenPermission = "listwrite"
)

// AuthInfo describes the token the client authenticates with
type AuthInfo struct {
	ID          UserID            `json:"id"`
	Username    string            `json:"username"`
	Permissions []TokenPermission `json:"permissions"`
}

// Can reports whether the token carries permission p
func (a AuthInfo) Can(p TokenPermission) bool {
	for _, have := range a.Permissions {
		if have == p {
			return true
		}
	}
	return false
}

// Schema is the API's self description, kept as raw JSON
type Schema struct {
	APIFields json.RawMessage `json:"api_fields"`
	Enums     SchemaEnums     `json:"enums"`
	ExtLinks  json.RawMessage `json:"extlinks"`
}

type SchemaEnums struct {
	Language  json.RawMessage `json:"language"`
	Medium    json.RawMessage `json:"medium"`
	Platform  json.RawMessage `json:"platform"`
	StaffRole json.RawMessage `json:"staff_role"`
}
