package vndb

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
)

// ErrNoEntries is returned by the random helpers when stats report zero
// entries for a resource
var ErrNoEntries = errors.New("no entries to pick from")

// resourceCounts memoizes entry counts from Stats. Zero means unknown;
// concurrent loads all store the same value.
type resourceCounts struct {
	character   atomic.Uint32
	producer    atomic.Uint32
	release     atomic.Uint32
	staff       atomic.Uint32
	tag         atomic.Uint32
	trait       atomic.Uint32
	visualNovel atomic.Uint32
}

func (rc *resourceCounts) store(s *Stats) {
	rc.character.Store(s.Chars)
	rc.producer.Store(s.Producers)
	rc.release.Store(s.Releases)
	rc.staff.Store(s.Staff)
	rc.tag.Store(s.Tags)
	rc.trait.Store(s.Traits)
	rc.visualNovel.Store(s.VN)
}

// count returns the cached counter, fetching Stats once if it is unknown.
// A failed fetch is not cached.
func (c *Client) count(ctx context.Context, cell *atomic.Uint32) (uint32, error) {
	if n := cell.Load(); n != 0 {
		return n, nil
	}
	stats, err := c.Get().Stats(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load entry counts: %w", err)
	}
	c.state.counts.store(stats)
	n := cell.Load()
	if n == 0 {
		return 0, ErrNoEntries
	}
	return n, nil
}

// randomBetween picks uniformly in [lo, hi]; the bounds may be given in
// either order
func randomBetween(lo, hi uint32) uint32 {
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo + uint32(rand.Uint64N(uint64(hi)-uint64(lo)+1))
}

// RandomCharacter returns a query for a uniformly chosen character id
func (c *Client) RandomCharacter(ctx context.Context) (*CharacterQuery, error) {
	n, err := c.count(ctx, &c.state.counts.character)
	if err != nil {
		return nil, err
	}
	return c.RandomCharacterInRange(1, n), nil
}

// RandomCharacterInRange returns a query for a character id in [lo, hi]
func (c *Client) RandomCharacterInRange(lo, hi uint32) *CharacterQuery {
	return c.FindCharacter(NewCharacterID(randomBetween(lo, hi)))
}

// RandomProducer returns a query for a uniformly chosen producer id
func (c *Client) RandomProducer(ctx context.Context) (*ProducerQuery, error) {
	n, err := c.count(ctx, &c.state.counts.producer)
	if err != nil {
		return nil, err
	}
	return c.RandomProducerInRange(1, n), nil
}

// RandomProducerInRange returns a query for a producer id in [lo, hi]
func (c *Client) RandomProducerInRange(lo, hi uint32) *ProducerQuery {
	return c.FindProducer(NewProducerID(randomBetween(lo, hi)))
}

// RandomRelease returns a query for a uniformly chosen release id
func (c *Client) RandomRelease(ctx context.Context) (*ReleaseQuery, error) {
	n, err := c.count(ctx, &c.state.counts.release)
	if err != nil {
		return nil, err
	}
	return c.RandomReleaseInRange(1, n), nil
}

// RandomReleaseInRange returns a query for a release id in [lo, hi]
func (c *Client) RandomReleaseInRange(lo, hi uint32) *ReleaseQuery {
	return c.FindRelease(NewReleaseID(randomBetween(lo, hi)))
}

// RandomStaff returns a query for a uniformly chosen staff id
func (c *Client) RandomStaff(ctx context.Context) (*StaffQuery, error) {
	n, err := c.count(ctx, &c.state.counts.staff)
	if err != nil {
		return nil, err
	}
	return c.RandomStaffInRange(1, n), nil
}

// RandomStaffInRange returns a query for a staff id in [lo, hi]
func (c *Client) RandomStaffInRange(lo, hi uint32) *StaffQuery {
	return c.FindStaff(NewStaffID(randomBetween(lo, hi)))
}

// RandomTag returns a query for a uniformly chosen tag id
func (c *Client) RandomTag(ctx context.Context) (*TagQuery, error) {
	n, err := c.count(ctx, &c.state.counts.tag)
	if err != nil {
		return nil, err
	}
	return c.RandomTagInRange(1, n), nil
}

// RandomTagInRange returns a query for a tag id in [lo, hi]
func (c *Client) RandomTagInRange(lo, hi uint32) *TagQuery {
	return c.FindTag(NewTagID(randomBetween(lo, hi)))
}

// RandomTrait returns a query for a uniformly chosen trait id
func (c *Client) RandomTrait(ctx context.Context) (*TraitQuery, error) {
	n, err := c.count(ctx, &c.state.counts.trait)
	if err != nil {
		return nil, err
	}
	return c.RandomTraitInRange(1, n), nil
}

// RandomTraitInRange returns a query for a trait id in [lo, hi]
func (c *Client) RandomTraitInRange(lo, hi uint32) *TraitQuery {
	return c.FindTrait(NewTraitID(randomBetween(lo, hi)))
}

// RandomVisualNovel returns a query for a uniformly chosen visual novel id
func (c *Client) RandomVisualNovel(ctx context.Context) (*VisualNovelQuery, error) {
	n, err := c.count(ctx, &c.state.counts.visualNovel)
	if err != nil {
		return nil, err
	}
	return c.RandomVisualNovelInRange(1, n), nil
}

// RandomVisualNovelInRange returns a query for a visual novel id in [lo, hi]
func (c *Client) RandomVisualNovelInRange(lo, hi uint32) *VisualNovelQuery {
	return c.FindVisualNovel(NewVisualNovelID(randomBetween(lo, hi)))
}
