package redisengine

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap"
	"github.com/AntonStoeckl/roadmap-aggregate-go/shell"
)

const (
	logMsgStaleIndexEntry = "note index points to a missing document"
	logAttrNoteID         = "note_id"
)

var (
	// ErrNilClient is returned when NewNoteRepository gets a nil client.
	ErrNilClient = errors.New("redis client must not be nil")

	// ErrEmptyKeyPrefix is returned by WithKeyPrefix for a blank prefix.
	ErrEmptyKeyPrefix = errors.New("key prefix must not be empty")

	// ErrRedisCommandFailed wraps errors returned by Redis.
	ErrRedisCommandFailed = errors.New("redis command failed")

	// ErrDecodingNoteFailed wraps errors while decoding a stored note.
	ErrDecodingNoteFailed = errors.New("decoding stored note failed")
)

// NoteRepository stores notes in Redis.
type NoteRepository struct {
	client redis.UniversalClient
	keys   keys
	logger shell.Logger
}

// Option configures a NoteRepository.
type Option func(*NoteRepository) error

// WithKeyPrefix sets the key prefix. Trailing colons are trimmed.
func WithKeyPrefix(prefix string) Option {
	return func(repo *NoteRepository) error {
		prefix = strings.TrimRight(strings.TrimSpace(prefix), ":")
		if prefix == "" {
			return ErrEmptyKeyPrefix
		}

		repo.keys = keys{prefix: prefix}

		return nil
	}
}

// WithLogger sets the logger for stale index warnings.
func WithLogger(logger shell.Logger) Option {
	return func(repo *NoteRepository) error {
		repo.logger = logger
		return nil
	}
}

// NewNoteRepository creates a NoteRepository on a client built from config.RedisOptions.
func NewNoteRepository(client redis.UniversalClient, options ...Option) (*NoteRepository, error) {
	if client == nil {
		return nil, ErrNilClient
	}

	repo := &NoteRepository{client: client, keys: keys{prefix: DefaultKeyPrefix}}

	for _, option := range options {
		if err := option(repo); err != nil {
			return nil, err
		}
	}

	return repo, nil
}

// FindByID returns the note, or false if there is none.
func (repo *NoteRepository) FindByID(ctx context.Context, id string) (roadmap.Note, bool, error) {
	data, err := repo.client.Get(ctx, repo.keys.data(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return roadmap.Note{}, false, nil
	}

	if err != nil {
		return roadmap.Note{}, false, errors.Join(ErrRedisCommandFailed, err)
	}

	note, err := roadmap.UnmarshalNote(data)
	if err != nil {
		return roadmap.Note{}, false, errors.Join(ErrDecodingNoteFailed, err)
	}

	return note, true, nil
}

// FindAll returns all notes ordered by id.
func (repo *NoteRepository) FindAll(ctx context.Context) ([]roadmap.Note, error) {
	return repo.findIndexed(ctx, repo.keys.all())
}

// FindByCategory returns the notes of one category.
func (repo *NoteRepository) FindByCategory(ctx context.Context, category roadmap.Category) ([]roadmap.Note, error) {
	return repo.findIndexed(ctx, repo.keys.category(category.String()))
}

// FindByPriority returns the notes of one priority.
func (repo *NoteRepository) FindByPriority(ctx context.Context, priority roadmap.Priority) ([]roadmap.Note, error) {
	return repo.findIndexed(ctx, repo.keys.priority(priority.String()))
}

// FindByTimeline returns the notes whose timeline matches exactly.
func (repo *NoteRepository) FindByTimeline(ctx context.Context, timeline string) ([]roadmap.Note, error) {
	return repo.findIndexed(ctx, repo.keys.timeline(timeline))
}

// Save writes the document and moves the note between index sets in one transaction.
func (repo *NoteRepository) Save(ctx context.Context, note roadmap.Note) error {
	data, err := roadmap.MarshalNote(note)
	if err != nil {
		return err
	}

	previous, existed, err := repo.FindByID(ctx, note.ID())
	if err != nil {
		return err
	}

	_, err = repo.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if existed {
			repo.unindex(ctx, pipe, previous)
		}

		pipe.Set(ctx, repo.keys.data(note.ID()), data, 0)
		repo.index(ctx, pipe, note)

		return nil
	})
	if err != nil {
		return errors.Join(ErrRedisCommandFailed, err)
	}

	return nil
}

// Delete removes a note and reports whether it existed.
func (repo *NoteRepository) Delete(ctx context.Context, id string) (bool, error) {
	previous, existed, err := repo.FindByID(ctx, id)
	if err != nil || !existed {
		return false, err
	}

	_, err = repo.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, repo.keys.data(id))
		repo.unindex(ctx, pipe, previous)
		pipe.SRem(ctx, repo.keys.all(), id)

		return nil
	})
	if err != nil {
		return false, errors.Join(ErrRedisCommandFailed, err)
	}

	return true, nil
}

func (repo *NoteRepository) index(ctx context.Context, pipe redis.Pipeliner, note roadmap.Note) {
	pipe.SAdd(ctx, repo.keys.all(), note.ID())
	pipe.SAdd(ctx, repo.keys.category(note.Category().String()), note.ID())
	pipe.SAdd(ctx, repo.keys.priority(note.Priority().String()), note.ID())
	pipe.SAdd(ctx, repo.keys.timeline(note.Timeline()), note.ID())
}

func (repo *NoteRepository) unindex(ctx context.Context, pipe redis.Pipeliner, note roadmap.Note) {
	pipe.SRem(ctx, repo.keys.category(note.Category().String()), note.ID())
	pipe.SRem(ctx, repo.keys.priority(note.Priority().String()), note.ID())
	pipe.SRem(ctx, repo.keys.timeline(note.Timeline()), note.ID())
}

func (repo *NoteRepository) findIndexed(ctx context.Context, indexKey string) ([]roadmap.Note, error) {
	ids, err := repo.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Join(ErrRedisCommandFailed, err)
	}

	if len(ids) == 0 {
		return []roadmap.Note{}, nil
	}

	slices.Sort(ids)

	dataKeys := make([]string, 0, len(ids))
	for _, id := range ids {
		dataKeys = append(dataKeys, repo.keys.data(id))
	}

	values, err := repo.client.MGet(ctx, dataKeys...).Result()
	if err != nil {
		return nil, errors.Join(ErrRedisCommandFailed, err)
	}

	notes := make([]roadmap.Note, 0, len(values))

	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			repo.warnStale(ctx, ids[i])
			continue
		}

		note, decodeErr := roadmap.UnmarshalNote([]byte(raw))
		if decodeErr != nil {
			return nil, errors.Join(ErrDecodingNoteFailed, decodeErr)
		}

		notes = append(notes, note)
	}

	return notes, nil
}

func (repo *NoteRepository) warnStale(ctx context.Context, id string) {
	if contextual := shell.ContextualLoggerFrom(repo.logger); contextual != nil {
		contextual.WarnContext(ctx, logMsgStaleIndexEntry, logAttrNoteID, id)
	} else if repo.logger != nil {
		repo.logger.Warn(logMsgStaleIndexEntry, logAttrNoteID, id)
	}
}
