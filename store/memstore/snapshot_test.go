package memstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap"
	"github.com/AntonStoeckl/roadmap-aggregate-go/store/memstore"
)

func Test_Snapshot_WriteAndRestore(t *testing.T) {
	// arrange
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "roadmaps.json")

	roadmaps := memstore.NewRoadmapRepository()
	notes := memstore.NewNoteRepository()
	r := roadmap.New("R", "", "1.0", "alice", roadmap.NewTimeframe("Q1", 0)).NextRevision()
	note := roadmap.NewNote("Caching", "", roadmap.CategoryInfrastructure, roadmap.PriorityLow, "Q3")
	require.NoError(t, roadmaps.Save(ctx, r))
	require.NoError(t, notes.Save(ctx, note))

	// act
	require.NoError(t, memstore.TakeSnapshot(roadmaps, notes).WriteFile(path))

	snapshot, err := memstore.ReadSnapshotFile(path)
	require.NoError(t, err)

	restoredRoadmaps := memstore.NewRoadmapRepository()
	restoredNotes := memstore.NewNoteRepository()
	err = snapshot.Restore(restoredRoadmaps, restoredNotes)

	// assert
	require.NoError(t, err)

	found, ok, err := restoredRoadmaps.FindByID(ctx, r.ID())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, r.ToRecord(), found.ToRecord())
	assert.NoError(t, restoredRoadmaps.Save(ctx, found.NextRevision()), "the restored revision continues the sequence")

	foundNote, ok, err := restoredNotes.FindByID(ctx, note.ID())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, note.ToRecord(), foundNote.ToRecord())
}

func Test_ReadSnapshotFile_MissingFile_IsEmpty(t *testing.T) {
	snapshot, err := memstore.ReadSnapshotFile(filepath.Join(t.TempDir(), "absent.json"))

	require.NoError(t, err)
	assert.Empty(t, snapshot.Roadmaps)
	assert.Empty(t, snapshot.Notes)
}

func Test_ReadSnapshotFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"roadmaps":`), 0o600))

	_, err := memstore.ReadSnapshotFile(path)

	assert.ErrorIs(t, err, memstore.ErrReadingSnapshotFailed)
}

func Test_Snapshot_Restore_InvalidRecord_ReplacesNothing(t *testing.T) {
	// arrange
	ctx := context.Background()
	roadmaps := memstore.NewRoadmapRepository()
	existing := roadmap.New("R", "", "", "").NextRevision()
	require.NoError(t, roadmaps.Save(ctx, existing))

	snapshot := memstore.Snapshot{Notes: []roadmap.NoteRecord{{ID: "n-1", Category: "marketing", Priority: "high"}}}

	// act
	err := snapshot.Restore(roadmaps, memstore.NewNoteRepository())

	// assert
	assert.ErrorIs(t, err, roadmap.ErrUnknownEnumValue)

	_, ok, err := roadmaps.FindByID(ctx, existing.ID())
	require.NoError(t, err)
	assert.True(t, ok)
}
