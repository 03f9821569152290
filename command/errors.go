package command

import "errors"

var (
	// ErrLoadingRoadmapFailed wraps repository errors while reading roadmaps.
	ErrLoadingRoadmapFailed = errors.New("loading roadmap failed")

	// ErrSavingRoadmapFailed wraps repository errors while saving a roadmap.
	ErrSavingRoadmapFailed = errors.New("saving roadmap failed")

	// ErrDeletingRoadmapFailed wraps repository errors while deleting a roadmap.
	ErrDeletingRoadmapFailed = errors.New("deleting roadmap failed")

	// ErrLoadingNoteFailed wraps repository errors while reading notes.
	ErrLoadingNoteFailed = errors.New("loading note failed")

	// ErrSavingNoteFailed wraps repository errors while saving a note.
	ErrSavingNoteFailed = errors.New("saving note failed")

	// ErrDeletingNoteFailed wraps repository errors while deleting a note.
	ErrDeletingNoteFailed = errors.New("deleting note failed")

	// ErrEmptyTitle is returned when a title or name is blank.
	ErrEmptyTitle = errors.New("title must not be empty")
)
