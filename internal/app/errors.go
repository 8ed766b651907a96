package app

import "errors"

var (
	// ErrInvalidWeek is returned for a target week outside 1..53.
	ErrInvalidWeek = errors.New("invalid week")
	// ErrWeekExists is returned when saving over a saved week without force.
	ErrWeekExists = errors.New("week already saved")
	// ErrNothingToSave is returned when a schedule has no bound positions.
	ErrNothingToSave = errors.New("nothing to save")
	// ErrInvalidCatalog is returned when imported tables are inconsistent.
	ErrInvalidCatalog = errors.New("invalid catalog")
	// ErrBoundaryIO wraps failures of storage, files and other I/O around
	// the scheduling pipeline.
	ErrBoundaryIO = errors.New("i/o failure")
)
