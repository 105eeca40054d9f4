// Package journal persists processing runs in SQLite.
//
// Every batch or single-file operation records a row when it starts and
// updates it when it finishes, so repeated runs over the same audio
// directory can be audited later. The database is a processing log, not an
// archive; schema changes bump the version in schema.go and users delete
// the database to adopt the new schema.
package journal
