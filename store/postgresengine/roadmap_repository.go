package postgresengine

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap"
	"github.com/AntonStoeckl/roadmap-aggregate-go/shell"
)

// RoadmapRepository stores whole roadmaps as jsonb documents.
type RoadmapRepository struct {
	runner    runner
	tableName string
}

// FindByID returns the stored roadmap, or false if there is none.
func (repo RoadmapRepository) FindByID(ctx context.Context, id string) (roadmap.Roadmap, bool, error) {
	sqlQuery, _, err := repo.runner.builder().
		From(repo.tableName).
		Select(colDocument).
		Where(goqu.Ex{colID: id}).
		ToSQL()
	if err != nil {
		return roadmap.Roadmap{}, false, buildFailed(err)
	}

	docs, err := repo.runner.documents(ctx, "find roadmap", sqlQuery)
	if err != nil {
		return roadmap.Roadmap{}, false, err
	}

	if len(docs) == 0 {
		return roadmap.Roadmap{}, false, nil
	}

	r, err := roadmap.UnmarshalRoadmap(docs[0])
	if err != nil {
		return roadmap.Roadmap{}, false, errors.Join(ErrDecodingDocumentFailed, err)
	}

	return r, true, nil
}

// FindAll returns all roadmaps ordered by id. Generated ids are time ordered.
func (repo RoadmapRepository) FindAll(ctx context.Context) ([]roadmap.Roadmap, error) {
	sqlQuery, _, err := repo.runner.builder().
		From(repo.tableName).
		Select(colDocument).
		Order(goqu.I(colID).Asc()).
		ToSQL()
	if err != nil {
		return nil, buildFailed(err)
	}

	docs, err := repo.runner.documents(ctx, "list roadmaps", sqlQuery)
	if err != nil {
		return nil, err
	}

	out := make([]roadmap.Roadmap, 0, len(docs))
	for _, doc := range docs {
		r, decodeErr := roadmap.UnmarshalRoadmap(doc)
		if decodeErr != nil {
			return nil, errors.Join(ErrDecodingDocumentFailed, decodeErr)
		}

		out = append(out, r)
	}

	return out, nil
}

// Save inserts revision 1 or replaces the row holding the preceding revision.
// Any other state fails with shell.ErrConcurrencyConflict.
func (repo RoadmapRepository) Save(ctx context.Context, r roadmap.Roadmap) error {
	if r.Revision() == 0 {
		return errors.Join(shell.ErrConcurrencyConflict, fmt.Errorf("roadmap %q has no revision to save", r.ID()))
	}

	sqlQuery, err := repo.buildSaveQuery(r)
	if err != nil {
		return err
	}

	rowsAffected, err := repo.runner.exec(ctx, "save roadmap", sqlQuery)
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		repo.runner.logConflict(r.ID(), r.Revision())

		return errors.Join(
			shell.ErrConcurrencyConflict,
			fmt.Errorf("roadmap %q was not at revision %d", r.ID(), r.Revision()-1),
		)
	}

	return nil
}

func (repo RoadmapRepository) buildSaveQuery(r roadmap.Roadmap) (string, error) {
	doc, err := roadmap.MarshalRoadmap(r)
	if err != nil {
		return "", err
	}

	row := goqu.Record{
		colRevision:  r.Revision(),
		colTitle:     r.Title(),
		colDocument:  goqu.L(castJsonb, string(doc)),
		colUpdatedAt: r.UpdatedAt(),
	}

	builder := repo.runner.builder()

	var sqlQuery string

	if r.Revision() == 1 {
		row[colID] = r.ID()
		sqlQuery, _, err = builder.
			Insert(repo.tableName).
			Rows(row).
			OnConflict(goqu.DoNothing()).
			ToSQL()
	} else {
		sqlQuery, _, err = builder.
			Update(repo.tableName).
			Set(row).
			Where(goqu.Ex{colID: r.ID(), colRevision: r.Revision() - 1}).
			ToSQL()
	}

	if err != nil {
		return "", buildFailed(err)
	}

	return sqlQuery, nil
}

// Delete removes a roadmap and reports whether it existed.
func (repo RoadmapRepository) Delete(ctx context.Context, id string) (bool, error) {
	sqlQuery, _, err := repo.runner.builder().
		Delete(repo.tableName).
		Where(goqu.Ex{colID: id}).
		ToSQL()
	if err != nil {
		return false, buildFailed(err)
	}

	rowsAffected, err := repo.runner.exec(ctx, "delete roadmap", sqlQuery)
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}
