// Package config loads the roadmapctl configuration and builds database clients from it.
//
// Configuration comes from a YAML file on top of built-in defaults, followed by
// a small set of environment overrides. The builders in this package turn the
// storage sections into a pgxpool.Config, a *sql.DB, a *sqlx.DB or redis.Options
// with the connection pool settings used across the project.
//
// This package is part of the shell (infrastructure) layer.
package config
