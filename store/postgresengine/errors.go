package postgresengine

import "errors"

var (
	// ErrNilDatabaseConnection is returned when a constructor gets a nil connection.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrEmptyTableName is returned when a table name option is empty.
	ErrEmptyTableName = errors.New("table name must not be empty")

	// ErrBuildingQueryFailed wraps goqu errors.
	ErrBuildingQueryFailed = errors.New("building query failed")

	// ErrQueryingFailed wraps database errors on reads.
	ErrQueryingFailed = errors.New("querying database failed")

	// ErrScanningRowFailed wraps row scan errors.
	ErrScanningRowFailed = errors.New("scanning db row failed")

	// ErrExecFailed wraps database errors on writes.
	ErrExecFailed = errors.New("executing statement failed")

	// ErrGettingRowsAffectedFailed wraps errors while reading the affected row count.
	ErrGettingRowsAffectedFailed = errors.New("getting rows affected failed")

	// ErrDecodingDocumentFailed wraps errors while decoding a stored document.
	ErrDecodingDocumentFailed = errors.New("decoding stored document failed")
)
