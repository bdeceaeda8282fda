// Package postgres implements the store interfaces on top of PostgreSQL,
// accessed through database/sql with the pgx driver. Identifiers are
// BIGSERIAL values returned by INSERT .. RETURNING; timestamps are assigned
// explicitly before each write rather than by database triggers.
package postgres
