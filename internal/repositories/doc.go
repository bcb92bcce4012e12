// Package repositories implements SQLite persistence for all domain entities.
//
// The [Store] owns the *sql.DB for the process lifetime and composes one
// repository per entity. [Store.Begin] returns a [Tx] with repositories
// bound to a single transaction so composite inserts (artist, genre, song)
// apply completely or not at all.
//
// Key Implementations:
//   - [ArtistRepository] : Artist rows with case-insensitive name dedup
//   - [GenreRepository] : Genre rows, same rules in an independent namespace
//   - [SongRepository] : Song rows, joined reads, search and aggregate stats
//
// Driver errors never escape raw: every method classifies them into the
// shared taxonomy (duplicate key, foreign key violation, not found,
// storage failure) via storageErr.
package repositories
