package memstore

import (
	"errors"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap"
)

var snapshotJSON = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	// ErrReadingSnapshotFailed wraps errors while reading or decoding a snapshot file.
	ErrReadingSnapshotFailed = errors.New("reading snapshot failed")

	// ErrWritingSnapshotFailed wraps errors while encoding or writing a snapshot file.
	ErrWritingSnapshotFailed = errors.New("writing snapshot failed")
)

// Snapshot is the serialized content of a roadmap and a note repository.
type Snapshot struct {
	Roadmaps []roadmap.RoadmapRecord `json:"roadmaps"`
	Notes    []roadmap.NoteRecord    `json:"notes"`
}

// TakeSnapshot copies the records of both repositories in insertion order. A nil notes repository is skipped.
func TakeSnapshot(roadmaps *RoadmapRepository, notes *NoteRepository) Snapshot {
	snapshot := Snapshot{Roadmaps: []roadmap.RoadmapRecord{}, Notes: []roadmap.NoteRecord{}}

	roadmaps.mu.RLock()
	for _, id := range roadmaps.ids {
		snapshot.Roadmaps = append(snapshot.Roadmaps, roadmaps.records[id])
	}
	roadmaps.mu.RUnlock()

	if notes == nil {
		return snapshot
	}

	notes.mu.RLock()
	for _, id := range notes.ids {
		snapshot.Notes = append(snapshot.Notes, notes.records[id])
	}
	notes.mu.RUnlock()

	return snapshot
}

// Restore replaces the content of both repositories with the snapshot.
// Records are validated first; on error nothing is replaced.
func (s Snapshot) Restore(roadmaps *RoadmapRepository, notes *NoteRepository) error {
	for _, rec := range s.Roadmaps {
		if _, err := roadmap.FromRecord(rec); err != nil {
			return err
		}
	}

	for _, rec := range s.Notes {
		if _, err := roadmap.NoteFromRecord(rec); err != nil {
			return err
		}
	}

	roadmaps.mu.Lock()
	roadmaps.ids = roadmaps.ids[:0]
	roadmaps.records = make(map[string]roadmap.RoadmapRecord, len(s.Roadmaps))
	for _, rec := range s.Roadmaps {
		if _, exists := roadmaps.records[rec.ID]; !exists {
			roadmaps.ids = append(roadmaps.ids, rec.ID)
		}
		roadmaps.records[rec.ID] = rec
	}
	roadmaps.mu.Unlock()

	if notes == nil {
		return nil
	}

	notes.mu.Lock()
	notes.ids = notes.ids[:0]
	notes.records = make(map[string]roadmap.NoteRecord, len(s.Notes))
	for _, rec := range s.Notes {
		if _, exists := notes.records[rec.ID]; !exists {
			notes.ids = append(notes.ids, rec.ID)
		}
		notes.records[rec.ID] = rec
	}
	notes.mu.Unlock()

	return nil
}

// ReadSnapshotFile decodes a snapshot file. A missing file yields an empty snapshot.
func ReadSnapshotFile(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Snapshot{}, nil
	}

	if err != nil {
		return Snapshot{}, errors.Join(ErrReadingSnapshotFailed, err)
	}

	snapshot := Snapshot{}
	if err = snapshotJSON.Unmarshal(data, &snapshot); err != nil {
		return Snapshot{}, errors.Join(ErrReadingSnapshotFailed, err)
	}

	return snapshot, nil
}

// WriteFile writes the snapshot as indented JSON, replacing the file atomically.
func (s Snapshot) WriteFile(path string) error {
	data, err := snapshotJSON.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Join(ErrWritingSnapshotFailed, err)
	}

	tmp := path + ".tmp"
	if err = os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Join(ErrWritingSnapshotFailed, err)
	}

	if err = os.Rename(tmp, path); err != nil {
		return errors.Join(ErrWritingSnapshotFailed, err)
	}

	return nil
}
