// Package postgres provides PostgreSQL-backed implementations of the
// interfaces in internal/store, built on database/sql with the pgx driver.
// Constraint violations are translated into the named store errors at this
// boundary so raw database errors never leak upward.
package postgres
