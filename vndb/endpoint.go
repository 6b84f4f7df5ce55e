package vndb

// DefaultBaseURL is the origin of the kana API
const DefaultBaseURL = "https://api.vndb.org/kana"

// Endpoint names one API resource path
type Endpoint string

const (
	EndpointAuthInfo    Endpoint = "authinfo"
	EndpointCharacter   Endpoint = "character"
	EndpointProducer    Endpoint = "producer"
	EndpointRelease     Endpoint = "release"
	EndpointRList       Endpoint = "rlist"
	EndpointSchema      Endpoint = "schema"
	EndpointStaff       Endpoint = "staff"
	EndpointStats       Endpoint = "stats"
	EndpointTag         Endpoint = "tag"
	EndpointTrait       Endpoint = "trait"
	EndpointUList       Endpoint = "ulist"
	EndpointUListLabels Endpoint = "ulist_labels"
	EndpointUser        Endpoint = "user"
	EndpointVisualNovel Endpoint = "vn"
)

// URL joins the endpoint path onto base
func (e Endpoint) URL(base string) string {
	return base + "/" + string(e)
}

func (e Endpoint) String() string {
	return string(e)
}
