package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/s0up4200/govndb/filter"
	"github.com/s0up4200/govndb/vndb"
)

// resources maps command line names and their one letter aliases to
// endpoints. The alias is also the id prefix.
var resources = map[string]vndb.Endpoint{
	"character": vndb.EndpointCharacter, "c": vndb.EndpointCharacter,
	"producer": vndb.EndpointProducer, "p": vndb.EndpointProducer,
	"release": vndb.EndpointRelease, "r": vndb.EndpointRelease,
	"staff": vndb.EndpointStaff, "s": vndb.EndpointStaff,
	"tag": vndb.EndpointTag, "g": vndb.EndpointTag,
	"trait": vndb.EndpointTrait, "i": vndb.EndpointTrait,
	"vn": vndb.EndpointVisualNovel, "v": vndb.EndpointVisualNovel,
}

var idPrefixes = map[vndb.Endpoint]string{
	vndb.EndpointCharacter:   "c",
	vndb.EndpointProducer:    "p",
	vndb.EndpointRelease:     "r",
	vndb.EndpointStaff:       "s",
	vndb.EndpointTag:         "g",
	vndb.EndpointTrait:       "i",
	vndb.EndpointVisualNovel: "v",
}

func parseResource(name string) (vndb.Endpoint, error) {
	endpoint, ok := resources[strings.ToLower(name)]
	if !ok {
		return "", fmt.Errorf("unknown resource %q (expected character, producer, release, staff, tag, trait or vn)", name)
	}
	return endpoint, nil
}

// normalizeID accepts "17" or "v17" for a visual novel and validates the result
func normalizeID(endpoint vndb.Endpoint, raw string) (string, error) {
	id := strings.ToLower(strings.TrimSpace(raw))
	if id != "" && id[0] >= '0' && id[0] <= '9' {
		id = idPrefixes[endpoint] + id
	}

	var err error
	switch endpoint {
	case vndb.EndpointCharacter:
		_, err = vndb.ParseCharacterID(id)
	case vndb.EndpointProducer:
		_, err = vndb.ParseProducerID(id)
	case vndb.EndpointRelease:
		_, err = vndb.ParseReleaseID(id)
	case vndb.EndpointStaff:
		_, err = vndb.ParseStaffID(id)
	case vndb.EndpointTag:
		_, err = vndb.ParseTagID(id)
	case vndb.EndpointTrait:
		_, err = vndb.ParseTraitID(id)
	case vndb.EndpointVisualNovel:
		_, err = vndb.ParseVisualNovelID(id)
	default:
		err = fmt.Errorf("no ids for endpoint %s", endpoint)
	}
	return id, err
}

// normalizeUserID accepts "2" or "u2" for --user
func normalizeUserID(raw string) (vndb.UserID, error) {
	id := strings.ToLower(strings.TrimSpace(raw))
	if id != "" && id[0] >= '0' && id[0] <= '9' {
		id = "u" + id
	}
	return vndb.ParseUserID(id)
}

// queryOptions are the builder settings shared by every list command
type queryOptions struct {
	fields            []string
	sort              string
	reverse           bool
	results           int
	page              int
	count             bool
	user              string
	compactFilters    bool
	normalizedFilters bool
}

// result is a response with its entries decoded into generic records
type result struct {
	Records           []filter.Record `json:"results"`
	More              bool            `json:"more"`
	Count             *uint32         `json:"count,omitempty"`
	CompactFilters    *string         `json:"compact_filters,omitempty"`
	NormalizedFilters json.RawMessage `json:"normalized_filters,omitempty"`
}

// execute applies opts to a builder, sends it and converts the response
func execute[F vndb.Field[F], S vndb.SortKey, V any](ctx context.Context, b *vndb.QueryBuilder[F, S, V], opts queryOptions) (*result, error) {
	if opts.user != "" {
		user, err := normalizeUserID(opts.user)
		if err != nil {
			return nil, fmt.Errorf("invalid --user: %w", err)
		}
		b.User(user)
	}
	b.RawFields(opts.fields...)
	if opts.sort != "" {
		b.Sort(S(opts.sort))
	}
	if opts.reverse {
		b.Reverse()
	}
	if opts.results > 0 {
		b.Results(opts.results)
	}
	if opts.page > 0 {
		b.Page(opts.page)
	}
	if opts.count {
		b.Count()
	}
	if opts.compactFilters {
		b.CompactFilters()
	}
	if opts.normalizedFilters {
		b.NormalizedFilters()
	}

	resp, err := b.Send(ctx)
	if err != nil {
		return nil, err
	}

	records, err := filter.ToRecords(resp.Results)
	if err != nil {
		return nil, err
	}
	return &result{
		Records:           records,
		More:              resp.More,
		Count:             resp.Count,
		CompactFilters:    resp.CompactFilters,
		NormalizedFilters: resp.NormalizedFilters,
	}, nil
}

// runQuery sends a filtered query to the endpoint's typed builder
func runQuery(ctx context.Context, endpoint vndb.Endpoint, filters vndb.QueryFilter, opts queryOptions) (*result, error) {
	post := client.Post()
	switch endpoint {
	case vndb.EndpointCharacter:
		return execute(ctx, post.Character().Filters(filters), opts)
	case vndb.EndpointProducer:
		return execute(ctx, post.Producer().Filters(filters), opts)
	case vndb.EndpointRelease:
		return execute(ctx, post.Release().Filters(filters), opts)
	case vndb.EndpointStaff:
		return execute(ctx, post.Staff().Filters(filters), opts)
	case vndb.EndpointTag:
		return execute(ctx, post.Tag().Filters(filters), opts)
	case vndb.EndpointTrait:
		return execute(ctx, post.Trait().Filters(filters), opts)
	case vndb.EndpointVisualNovel:
		return execute(ctx, post.VisualNovel().Filters(filters), opts)
	default:
		return execute(ctx, post.Raw(endpoint).Filters(filters), opts)
	}
}

// runRandom picks a random entry using the cached database counts
func runRandom(ctx context.Context, endpoint vndb.Endpoint, opts queryOptions) (*result, error) {
	switch endpoint {
	case vndb.EndpointCharacter:
		b, err := client.RandomCharacter(ctx)
		if err != nil {
			return nil, err
		}
		return execute(ctx, b, opts)
	case vndb.EndpointProducer:
		b, err := client.RandomProducer(ctx)
		if err != nil {
			return nil, err
		}
		return execute(ctx, b, opts)
	case vndb.EndpointRelease:
		b, err := client.RandomRelease(ctx)
		if err != nil {
			return nil, err
		}
		return execute(ctx, b, opts)
	case vndb.EndpointStaff:
		b, err := client.RandomStaff(ctx)
		if err != nil {
			return nil, err
		}
		return execute(ctx, b, opts)
	case vndb.EndpointTag:
		b, err := client.RandomTag(ctx)
		if err != nil {
			return nil, err
		}
		return execute(ctx, b, opts)
	case vndb.EndpointTrait:
		b, err := client.RandomTrait(ctx)
		if err != nil {
			return nil, err
		}
		return execute(ctx, b, opts)
	case vndb.EndpointVisualNovel:
		b, err := client.RandomVisualNovel(ctx)
		if err != nil {
			return nil, err
		}
		return execute(ctx, b, opts)
	default:
		return nil, fmt.Errorf("random is not supported for %s", endpoint)
	}
}

// splitFields turns repeated or comma separated --fields values into tokens
func splitFields(values []string) []string {
	var out []string
	for _, v := range values {
		for _, f := range strings.Split(v, ",") {
			if f = strings.TrimSpace(f); f != "" {
				out = append(out, f)
			}
		}
	}
	return out
}
