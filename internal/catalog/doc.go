// Package catalog implements the business-level view over song storage.
//
// The [Service] wraps a repositories.Store and adds the semantics raw
// storage does not have:
//   - Dedup-safe composite inserts: [Service.AddSong] finds or creates
//     the artist and genre case-insensitively inside one transaction, so
//     "queen" never spawns a second "Queen" row
//   - Idempotent cataloging: re-adding a known url reports
//     shared.ErrAlreadyCataloged instead of duplicating the song
//   - A read-through cache, consulted first on reads and synchronously
//     updated by every mutation, so a read after a write always observes
//     the write
//   - Suggestions and search with case-insensitive substring matching
//
// Storage-level errors (duplicate key, foreign key violation) never cross
// the service boundary raw; they are translated into domain outcomes.
// Aggregate stats always come from storage, never from cached rows.
package catalog
