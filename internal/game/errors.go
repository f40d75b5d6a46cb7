package game

import "errors"

// Core errors. Fallible gameplay operations report these as values;
// nothing in this package panics or aborts.
var (
	ErrResearchUnknown       = errors.New("unknown research")
	ErrResearchCompleted     = errors.New("research already completed")
	ErrResearchInProgress    = errors.New("another research is already in progress")
	ErrResearchLocked        = errors.New("required research not completed")
	ErrBuildingUnknown       = errors.New("unknown building")
	ErrInstanceUnknown       = errors.New("unknown building instance")
	ErrTechnologyLocked      = errors.New("required technology not unlocked")
	ErrOutOfBounds           = errors.New("placement outside map bounds")
	ErrTileOccupied          = errors.New("placement overlaps another building")
	ErrInsufficientResources = errors.New("insufficient resources")
)
