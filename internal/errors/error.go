package errors

import "errors"

var (
	ErrGameNotFound     = errors.New("game not found")
	ErrCreateGameFailed = errors.New("create game failed")
	ErrBadHandicap      = errors.New("handicap must be between 2 and 9 stones")
	ErrNoAnalysis       = errors.New("no analysis available for the current position")
	ErrHistoryCorrupt   = errors.New("stored move history is inconsistent")
	ErrInternal         = errors.New("internal error")
)
