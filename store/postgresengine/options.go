package postgresengine

import (
	"github.com/AntonStoeckl/roadmap-aggregate-go/shell"
)

const (
	defaultRoadmapTableName = "roadmaps"
	defaultNoteTableName    = "roadmap_notes"
)

type settings struct {
	roadmapTableName string
	noteTableName    string
	logger           shell.Logger
	metrics          shell.MetricsCollector
}

// Option configures a Store.
type Option func(*settings) error

// WithRoadmapTableName sets the table for roadmaps.
func WithRoadmapTableName(tableName string) Option {
	return func(s *settings) error {
		if tableName == "" {
			return ErrEmptyTableName
		}

		s.roadmapTableName = tableName

		return nil
	}
}

// WithNoteTableName sets the table for notes.
func WithNoteTableName(tableName string) Option {
	return func(s *settings) error {
		if tableName == "" {
			return ErrEmptyTableName
		}

		s.noteTableName = tableName

		return nil
	}
}

// WithLogger sets the logger.
//
// Debug level: SQL statements with execution timing
// Info level: concurrency conflicts
// Error level: failures that abort an operation.
func WithLogger(logger shell.Logger) Option {
	return func(s *settings) error {
		s.logger = logger
		return nil
	}
}

// WithMetrics sets the collector for statement durations.
func WithMetrics(collector shell.MetricsCollector) Option {
	return func(s *settings) error {
		s.metrics = collector
		return nil
	}
}

func newSettings(options []Option) (settings, error) {
	s := settings{
		roadmapTableName: defaultRoadmapTableName,
		noteTableName:    defaultNoteTableName,
	}

	for _, option := range options {
		if err := option(&s); err != nil {
			return settings{}, err
		}
	}

	return s, nil
}
