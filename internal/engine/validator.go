package engine

import (
	"baduk_lab/internal/domain/game"
)

// Validator fronts a ChainTracker with coordinate bounds checking. Pass moves
// carry no coordinates and bypass the bounds check entirely.
type Validator struct {
	tracker *ChainTracker
}

func NewValidator(tracker *ChainTracker) *Validator {
	return &Validator{tracker: tracker}
}

func (v *Validator) Tracker() *ChainTracker {
	return v.tracker
}

// Play validates and commits one move, returning the stones it captured.
// Any rejection is an *IllegalMoveError and leaves the position unchanged.
func (v *Validator) Play(m game.Move, ignoreKo bool) ([]game.Move, error) {
	if !m.Pass {
		size := v.tracker.Size()
		if m.X < 0 || m.X >= size || m.Y < 0 || m.Y >= size {
			return nil, &IllegalMoveError{Move: m, Reason: ErrOutOfBounds}
		}
	}
	return v.tracker.Apply(m, ignoreKo)
}
