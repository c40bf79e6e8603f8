package usecase

import "context"

// MatcherUsecase matches stored geometries against user interest zones.
type MatcherUsecase interface {
	// RunOnce performs one matching pass over unmatched geometries and
	// returns the number of notifications produced.
	RunOnce(ctx context.Context) (int, error)
}
