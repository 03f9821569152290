package command

import (
	"context"
	"errors"
	"time"

	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap"
	"github.com/AntonStoeckl/roadmap-aggregate-go/shell"
)

const (
	commandTypeCreateNote = "CreateNote"
	commandTypeUpdateNote = "UpdateNote"
	commandTypeDeleteNote = "DeleteNote"

	queryTypeGetNote         = "GetNote"
	queryTypeListNotes       = "ListNotes"
	queryTypeNotesByCategory = "NotesByCategory"
	queryTypeNotesByPriority = "NotesByPriority"
	queryTypeNotesByTimeline = "NotesByTimeline"
)

// NoteService handles roadmap notes. Notes raise no domain events.
type NoteService struct {
	repo NoteRepository
	rt   runtime
}

// NewNoteService creates a NoteService.
func NewNoteService(repo NoteRepository, opts ...Option) NoteService {
	return NoteService{repo: repo, rt: newRuntime(opts...)}
}

// Create saves a new note.
func (s NoteService) Create(ctx context.Context, in NoteInput) (roadmap.Note, error) {
	note, err := buildNote(in)
	if err != nil {
		return roadmap.Note{}, err
	}

	start := time.Now()
	shell.LogCommandStart(ctx, s.rt.logger, commandTypeCreateNote, note.ID())

	if err = s.repo.Save(ctx, note); err != nil {
		return roadmap.Note{}, s.fail(ctx, commandTypeCreateNote, note.ID(), errors.Join(ErrSavingNoteFailed, err), start)
	}

	s.succeed(ctx, commandTypeCreateNote, note.ID(), start)

	return note, nil
}

// Update applies a patch. It reports false if the note does not exist.
func (s NoteService) Update(ctx context.Context, noteID string, patch roadmap.NotePatch) (roadmap.Note, bool, error) {
	if patch.Title != nil {
		if err := requireTitle(*patch.Title); err != nil {
			return roadmap.Note{}, false, err
		}
	}

	start := time.Now()
	shell.LogCommandStart(ctx, s.rt.logger, commandTypeUpdateNote, noteID)

	note, found, err := s.repo.FindByID(ctx, noteID)
	if err != nil {
		return roadmap.Note{}, false, s.fail(ctx, commandTypeUpdateNote, noteID, errors.Join(ErrLoadingNoteFailed, err), start)
	}

	if !found {
		shell.RecordCommandMetrics(ctx, s.rt.metrics, commandTypeUpdateNote, shell.StatusNotFound, time.Since(start))
		return roadmap.Note{}, false, nil
	}

	note = note.Update(patch)
	if err = s.repo.Save(ctx, note); err != nil {
		return roadmap.Note{}, true, s.fail(ctx, commandTypeUpdateNote, noteID, errors.Join(ErrSavingNoteFailed, err), start)
	}

	s.succeed(ctx, commandTypeUpdateNote, noteID, start)

	return note, true, nil
}

// Delete removes a note. It reports false if there was none.
func (s NoteService) Delete(ctx context.Context, noteID string) (bool, error) {
	start := time.Now()
	shell.LogCommandStart(ctx, s.rt.logger, commandTypeDeleteNote, noteID)

	deleted, err := s.repo.Delete(ctx, noteID)
	if err != nil {
		return false, s.fail(ctx, commandTypeDeleteNote, noteID, errors.Join(ErrDeletingNoteFailed, err), start)
	}

	if !deleted {
		shell.RecordCommandMetrics(ctx, s.rt.metrics, commandTypeDeleteNote, shell.StatusNotFound, time.Since(start))
		return false, nil
	}

	s.succeed(ctx, commandTypeDeleteNote, noteID, start)

	return true, nil
}

// Get returns a note, or false if there is none.
func (s NoteService) Get(ctx context.Context, noteID string) (roadmap.Note, bool, error) {
	start := time.Now()

	note, found, err := s.repo.FindByID(ctx, noteID)
	if err != nil {
		err = errors.Join(ErrLoadingNoteFailed, err)
	}

	s.observeQuery(ctx, queryTypeGetNote, err, start)

	return note, found, err
}

// List returns all notes.
func (s NoteService) List(ctx context.Context) ([]roadmap.Note, error) {
	return s.query(ctx, queryTypeListNotes, s.repo.FindAll)
}

// ByCategory returns the notes of one category.
func (s NoteService) ByCategory(ctx context.Context, category roadmap.Category) ([]roadmap.Note, error) {
	return s.query(ctx, queryTypeNotesByCategory, func(ctx context.Context) ([]roadmap.Note, error) {
		return s.repo.FindByCategory(ctx, category)
	})
}

// ByPriority returns the notes of one priority.
func (s NoteService) ByPriority(ctx context.Context, priority roadmap.Priority) ([]roadmap.Note, error) {
	return s.query(ctx, queryTypeNotesByPriority, func(ctx context.Context) ([]roadmap.Note, error) {
		return s.repo.FindByPriority(ctx, priority)
	})
}

// ByTimeline returns the notes planned for a timeline label.
func (s NoteService) ByTimeline(ctx context.Context, timeline string) ([]roadmap.Note, error) {
	return s.query(ctx, queryTypeNotesByTimeline, func(ctx context.Context) ([]roadmap.Note, error) {
		return s.repo.FindByTimeline(ctx, timeline)
	})
}

func (s NoteService) query(
	ctx context.Context,
	queryType string,
	find func(ctx context.Context) ([]roadmap.Note, error),
) ([]roadmap.Note, error) {
	start := time.Now()

	notes, err := find(ctx)
	if err != nil {
		err = errors.Join(ErrLoadingNoteFailed, err)
	}

	s.observeQuery(ctx, queryType, err, start)

	return notes, err
}

func (s NoteService) succeed(ctx context.Context, commandType, noteID string, start time.Time) {
	duration := time.Since(start)
	shell.RecordCommandMetrics(ctx, s.rt.metrics, commandType, shell.StatusSuccess, duration)
	shell.LogCommandSuccess(ctx, s.rt.logger, commandType, noteID, shell.HandlerResult{RetryAttempts: 1}, duration)
}

func (s NoteService) fail(ctx context.Context, commandType, noteID string, err error, start time.Time) error {
	duration := time.Since(start)
	shell.RecordCommandMetrics(ctx, s.rt.metrics, commandType, shell.ClassifyError(err), duration)
	shell.LogCommandError(ctx, s.rt.logger, commandType, noteID, err, duration)

	return err
}

func (s NoteService) observeQuery(ctx context.Context, queryType string, err error, start time.Time) {
	duration := time.Since(start)
	shell.RecordQueryMetrics(ctx, s.rt.metrics, queryType, shell.ClassifyError(err), duration)
	shell.LogQueryResult(ctx, s.rt.logger, queryType, err, duration)
}
