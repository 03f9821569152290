package postgresengine

import (
	"context"
	"errors"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap"
)

// NoteRepository stores notes as jsonb documents with filter columns.
type NoteRepository struct {
	runner    runner
	tableName string
}

// FindByID returns the note, or false if there is none.
func (repo NoteRepository) FindByID(ctx context.Context, id string) (roadmap.Note, bool, error) {
	notes, err := repo.find(ctx, "find note", goqu.Ex{colID: id})
	if err != nil || len(notes) == 0 {
		return roadmap.Note{}, false, err
	}

	return notes[0], true, nil
}

// FindAll returns all notes ordered by id.
func (repo NoteRepository) FindAll(ctx context.Context) ([]roadmap.Note, error) {
	return repo.find(ctx, "list notes", nil)
}

// FindByCategory returns the notes of one category.
func (repo NoteRepository) FindByCategory(ctx context.Context, category roadmap.Category) ([]roadmap.Note, error) {
	return repo.find(ctx, "notes by category", goqu.Ex{colCategory: category.String()})
}

// FindByPriority returns the notes of one priority.
func (repo NoteRepository) FindByPriority(ctx context.Context, priority roadmap.Priority) ([]roadmap.Note, error) {
	return repo.find(ctx, "notes by priority", goqu.Ex{colPriority: priority.String()})
}

// FindByTimeline returns the notes whose timeline matches exactly.
func (repo NoteRepository) FindByTimeline(ctx context.Context, timeline string) ([]roadmap.Note, error) {
	return repo.find(ctx, "notes by timeline", goqu.Ex{colTimeline: timeline})
}

// Save inserts or replaces the note.
func (repo NoteRepository) Save(ctx context.Context, note roadmap.Note) error {
	sqlQuery, err := repo.buildUpsertQuery(note)
	if err != nil {
		return err
	}

	_, err = repo.runner.exec(ctx, "save note", sqlQuery)

	return err
}

func (repo NoteRepository) buildUpsertQuery(note roadmap.Note) (string, error) {
	doc, err := roadmap.MarshalNote(note)
	if err != nil {
		return "", err
	}

	sqlQuery, _, err := repo.runner.builder().
		Insert(repo.tableName).
		Rows(goqu.Record{
			colID:        note.ID(),
			colCategory:  note.Category().String(),
			colPriority:  note.Priority().String(),
			colTimeline:  note.Timeline(),
			colDocument:  goqu.L(castJsonb, string(doc)),
			colUpdatedAt: note.UpdatedAt(),
		}).
		OnConflict(goqu.DoUpdate(colID, goqu.Record{
			colCategory:  goqu.L(excludedCol + colCategory),
			colPriority:  goqu.L(excludedCol + colPriority),
			colTimeline:  goqu.L(excludedCol + colTimeline),
			colDocument:  goqu.L(excludedCol + colDocument),
			colUpdatedAt: goqu.L(excludedCol + colUpdatedAt),
		})).
		ToSQL()
	if err != nil {
		return "", buildFailed(err)
	}

	return sqlQuery, nil
}

// Delete removes a note and reports whether it existed.
func (repo NoteRepository) Delete(ctx context.Context, id string) (bool, error) {
	sqlQuery, _, err := repo.runner.builder().
		Delete(repo.tableName).
		Where(goqu.Ex{colID: id}).
		ToSQL()
	if err != nil {
		return false, buildFailed(err)
	}

	rowsAffected, err := repo.runner.exec(ctx, "delete note", sqlQuery)
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

func (repo NoteRepository) find(ctx context.Context, action string, where goqu.Ex) ([]roadmap.Note, error) {
	stmt := repo.runner.builder().
		From(repo.tableName).
		Select(colDocument).
		Order(goqu.I(colID).Asc())

	if len(where) > 0 {
		stmt = stmt.Where(where)
	}

	sqlQuery, _, err := stmt.ToSQL()
	if err != nil {
		return nil, buildFailed(err)
	}

	docs, err := repo.runner.documents(ctx, action, sqlQuery)
	if err != nil {
		return nil, err
	}

	notes := make([]roadmap.Note, 0, len(docs))
	for _, doc := range docs {
		note, decodeErr := roadmap.UnmarshalNote(doc)
		if decodeErr != nil {
			return nil, errors.Join(ErrDecodingDocumentFailed, decodeErr)
		}

		notes = append(notes, note)
	}

	return notes, nil
}
