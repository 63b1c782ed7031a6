// Package pg wires PostgreSQL access through pgx/v5.
//
// Connect opens a pgxpool.Pool with bounded retries, Migrate applies goose
// migrations from an fs.FS (usually an embed.FS), WithTx runs a callback in a
// transaction and Healthcheck adapts the pool to readiness probes. Error
// helpers classify driver errors (no rows, unique violation, foreign key
// violation) so repositories can translate them into domain errors.
package pg
