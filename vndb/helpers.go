package vndb

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

func idFilter[I ID](id I) QueryFilter {
	return Eq("id", id.String())
}

func searchFilter(text string) QueryFilter {
	return Eq("search", text)
}

// FindCharacter returns a query filtered on ["id", "=", id]
func (c *Client) FindCharacter(id CharacterID) *CharacterQuery {
	return c.Post().Character().Filters(idFilter(id))
}

// SearchCharacter returns a query filtered on ["search", "=", text]
func (c *Client) SearchCharacter(text string) *CharacterQuery {
	return c.Post().Character().Filters(searchFilter(text))
}

// FindProducer returns a query filtered on ["id", "=", id]
func (c *Client) FindProducer(id ProducerID) *ProducerQuery {
	return c.Post().Producer().Filters(idFilter(id))
}

// SearchProducer returns a query filtered on ["search", "=", text]
func (c *Client) SearchProducer(text string) *ProducerQuery {
	return c.Post().Producer().Filters(searchFilter(text))
}

// FindRelease returns a query filtered on ["id", "=", id]
func (c *Client) FindRelease(id ReleaseID) *ReleaseQuery {
	return c.Post().Release().Filters(idFilter(id))
}

// SearchRelease returns a query filtered on ["search", "=", text]
func (c *Client) SearchRelease(text string) *ReleaseQuery {
	return c.Post().Release().Filters(searchFilter(text))
}

// FindStaff returns a query filtered on ["id", "=", id]
func (c *Client) FindStaff(id StaffID) *StaffQuery {
	return c.Post().Staff().Filters(idFilter(id))
}

// SearchStaff returns a query filtered on ["search", "=", text]
func (c *Client) SearchStaff(text string) *StaffQuery {
	return c.Post().Staff().Filters(searchFilter(text))
}

// FindTag returns a query filtered on ["id", "=", id]
func (c *Client) FindTag(id TagID) *TagQuery {
	return c.Post().Tag().Filters(idFilter(id))
}

// SearchTag returns a query filtered on ["search", "=", text]
func (c *Client) SearchTag(text string) *TagQuery {
	return c.Post().Tag().Filters(searchFilter(text))
}

// FindTrait returns a query filtered on ["id", "=", id]
func (c *Client) FindTrait(id TraitID) *TraitQuery {
	return c.Post().Trait().Filters(idFilter(id))
}

// SearchTrait returns a query filtered on ["search", "=", text]
func (c *Client) SearchTrait(text string) *TraitQuery {
	return c.Post().Trait().Filters(searchFilter(text))
}

// FindVisualNovel returns a query filtered on ["id", "=", id]
func (c *Client) FindVisualNovel(id VisualNovelID) *VisualNovelQuery {
	return c.Post().VisualNovel().Filters(idFilter(id))
}

// SearchVisualNovel returns a query filtered on ["search", "=", text]
func (c *Client) SearchVisualNovel(text string) *VisualNovelQuery {
	return c.Post().VisualNovel().Filters(searchFilter(text))
}

// FindUser looks up a single user with every user field. It returns nil
// when nothing matched.
func (c *Client) FindUser(ctx context.Context, query *UserQuery) (*User, error) {
	users, err := c.Get().Users(ctx, query, AllFields[UserField]())
	if err != nil {
		return nil, err
	}
	for _, token := range query.Tokens() {
		if u, ok := users[token]; ok {
			return &u, nil
		}
	}
	return nil, nil
}

// FindVisualNovels fetches several visual novels by id, one request each,
// with at most MaxConcurrentRequests in flight. Results keep the order of
// ids; an id that matched nothing is left as nil.
func (c *Client) FindVisualNovels(ctx context.Context, ids []VisualNovelID, fields *FieldSet[VisualNovelField]) ([]*VisualNovel, error) {
	out := make([]*VisualNovel, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.MaxConcurrentRequests())

	for i, id := range ids {
		g.Go(func() error {
			resp, err := c.FindVisualNovel(id).FieldSet(fields).Send(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch %s: %w", id, err)
			}
			if vn, ok := resp.First(); ok {
				out[i] = &vn
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
