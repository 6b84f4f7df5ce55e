// Package vndb provides a typed client for the VNDB kana API.
//
// VNDB is a database of visual novels and everything around them: releases,
// producers, staff, characters, tags and traits. This package builds the
// queries, sends them through a rate limited dispatcher and decodes the
// answers into Go types.
//
// # Architecture
//
// The package is organized into several components:
//
//   - Client: Owns the concurrency gate, token, pacing delay, timeout and user agent
//   - GetHandle / PostHandle: Weak handles exposing one method per endpoint
//   - QueryBuilder: Fluent builder for list queries (fields, filters, sort, paging)
//   - FieldSet / QueryFilter: Field selection and opaque filter trees
//   - Types: Resource models, id types and their field and sort enums
//   - Errors: Sentinel errors plus RequestError, JSONError and InvalidIDError
//
// # Usage
//
//	client := vndb.New(
//		vndb.WithMaxConcurrentRequests(5),
//		vndb.WithDelay(200*time.Millisecond),
//		vndb.WithTimeout(10*time.Second),
//	)
//	defer client.Close()
//
//	resp, err := client.FindRelease("r80").
//		Fields(vndb.ReleaseTitle, vndb.ReleaseAltTitle).
//		Send(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	vns, err := client.Post().VisualNovel().
//		Filters(vndb.And(vndb.Eq("lang", "en"), vndb.Cmp("rating", ">=", 80))).
//		Fields(vndb.VisualNovelTitleField, vndb.VisualNovelRating).
//		Sort(vndb.SortVisualNovelByRating).
//		Reverse().
//		Results(25).
//		Send(ctx)
//
// # Rate limiting
//
// Every request takes one permit from a semaphore sized by
// WithMaxConcurrentRequests (10 by default). With WithDelay the permit is
// handed back only after the delay has passed, in the background, so the
// caller gets its response immediately while the next request waits.
// Cancelling the context while waiting for a permit gives up the wait
// without leaking anything.
//
// # Client lifetime
//
// Handles returned by Get and Post, and query builders made from them, do
// not keep the client alive. After Close, or once the client is garbage
// collected, they fail with ErrDisconnected.
//
// # Error Handling
//
//   - ErrDisconnected: The owning client is gone
//   - ErrInvalidID: A string failed id validation (see InvalidIDError)
//   - ErrJSON: Encoding or decoding failed (see JSONError)
//   - ErrRequestFailed: Transport failure or non-2xx status (see RequestError)
//   - ErrTokenNeeded: AuthInfo called without a token
//
//	var reqErr *vndb.RequestError
//	if errors.As(err, &reqErr) && reqErr.IsRateLimited() {
//		// back off
//	}
package vndb
