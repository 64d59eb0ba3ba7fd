package game

import "errors"

// ErrIllegalAction marks an actor request that is not legal for the current
// hand (split on a non-pair, double on three cards, and so on). Distinct
// from ErrInvalidState so callers can tell a bad move from a broken engine.
var ErrIllegalAction = errors.New("illegal action")

// ErrInvalidState marks a programming-invariant violation inside the round
// engine: a hand resolved twice, or the pending work-list not accounting for
// every hand. These corrupt trackers for the whole run and are never
// swallowed.
var ErrInvalidState = errors.New("invalid game state")
