package planner

import "context"

// Repository abstracts durable profile storage, one row per user. A missing
// row is the expected not-found branch, reported through the bool, never as
// an error. Upsert is insert-or-replace, last writer wins.
type Repository interface {
	Get(ctx context.Context, userID int64) (PartialProfile, bool, error)
	Upsert(ctx context.Context, userID int64, profile Profile) error
}
