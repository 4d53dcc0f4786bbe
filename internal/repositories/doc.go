// Package repositories implements SQLite persistence for the local station catalog.
//
// [StationRepository] reads and writes the radio application's StationList table.
// Frequencies are stored as integer tenths of a MHz and names are cut to [models.MaxNameLength].
// Write statements are prepared lazily on first use and reused for the lifetime of the repository.
//
// The read-all query only returns rows in the favourite (2) and normal (3) categories.
package repositories
