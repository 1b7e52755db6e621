package engine

import (
	"errors"
	"fmt"

	"baduk_lab/internal/domain/game"
)

var (
	ErrOutOfBounds = errors.New("outside board coordinates")
	ErrOccupied    = errors.New("space occupied")
	ErrKo          = errors.New("ko")
	ErrSuicide     = errors.New("suicide")
)

// IllegalMoveError rejects a move with one of the reasons above. The tracker
// guarantees its committed state is untouched whenever this is returned, so
// the caller can simply prompt for another move.
type IllegalMoveError struct {
	Move   game.Move
	Reason error
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s: %v", e.Move, e.Reason)
}

func (e *IllegalMoveError) Unwrap() error {
	return e.Reason
}

// IsIllegalMove reports whether err is an ordinary move rejection, as opposed
// to an internal fault.
func IsIllegalMove(err error) bool {
	var ime *IllegalMoveError
	return errors.As(err, &ime)
}
