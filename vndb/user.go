package vndb

import (
	"encoding/json"
	"net/url"
	"slices"
	"strconv"
)

// User is a VNDB account
type User struct {
	ID             UserID `json:"id"`
	Username       string `json:"username"`
	LengthVotes    *int   `json:"lengthvotes,omitempty"`
	LengthVotesSum *int   `json:"lengthvotes_sum,omitempty"`
}

// Users maps each lookup token to the user it matched. Tokens that matched
// nobody are left out.
type Users map[string]User

func (u *Users) UnmarshalJSON(data []byte) error {
	var raw map[string]*User
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Users, len(raw))
	for k, v := range raw {
		if v != nil {
			out[k] = *v
		}
	}
	*u = out
	return nil
}

// UserField selects a user attribute; id and username are always returned
type UserField string

const (
	UserLengthVotes    UserField = "lengthvotes"
	UserLengthVotesSum UserField = "lengthvotes_sum"
)

var userFields = []UserField{UserLengthVotes, UserLengthVotesSum}

// Variants returns every user field
func (UserField) Variants() []UserField { return slices.Clone(userFields) }

// UserQuery is a set of user ids or usernames to look up
type UserQuery struct {
	tokens map[string]struct{}
}

// NewUserQuery creates a lookup for the given ids or usernames
func NewUserQuery(tokens ...string) *UserQuery {
	q := &UserQuery{tokens: make(map[string]struct{}, len(tokens))}
	return q.Name(tokens...)
}

// Name adds usernames, or ids already in "u123" form
func (q *UserQuery) Name(names ...string) *UserQuery {
	if q.tokens == nil {
		q.tokens = make(map[string]struct{}, len(names))
	}
	for _, n := range names {
		q.tokens[n] = struct{}{}
	}
	return q
}

// ID adds user ids
func (q *UserQuery) ID(ids ...UserID) *UserQuery {
	for _, id := range ids {
		q.Name(id.String())
	}
	return q
}

// Number adds numeric user ids, 500 becoming "u500"
func (q *UserQuery) Number(ns ...uint32) *UserQuery {
	for _, n := range ns {
		q.Name(NewUserID(n).String())
	}
	return q
}

// Range adds every numeric id in [from, to]
func (q *UserQuery) Range(from, to uint32) *UserQuery {
	for n := from; n <= to; n++ {
		q.Number(n)
		if n == ^uint32(0) {
			break
		}
	}
	return q
}

func (q *UserQuery) Len() int {
	if q == nil {
		return 0
	}
	return len(q.tokens)
}

// Tokens returns the lookup tokens in sorted order
func (q *UserQuery) Tokens() []string {
	if q == nil {
		return nil
	}
	out := make([]string, 0, len(q.tokens))
	for t := range q.tokens {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// URLQuery renders the tokens as repeated "q" parameters
func (q *UserQuery) URLQuery() url.Values {
	return url.Values{"q": q.Tokens()}
}

// ParseUserQuery turns a command line style token into a lookup: digits
// become numeric ids, anything else is used as is.
func ParseUserQuery(token string) *UserQuery {
	if n, err := strconv.ParseUint(token, 10, 32); err == nil {
		return new(UserQuery).Number(uint32(n))
	}
	return NewUserQuery(token)
}
