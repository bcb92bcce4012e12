// Package models defines the domain entities for the crate song catalog.
//
// The catalog manages three persistent entities:
//   - [Artist] : Created on first reference by name, unique case-insensitively
//   - [Genre] : Same lifecycle as Artist, independent namespace
//   - [Song] : Title plus source URL (unique) with references to one artist and one genre
//
// Entities use integer surrogate ids generated by the storage layer.
// Deleting a song never deletes its artist or genre; orphaned artists and
// genres are permitted and simply absent from song listings.
//
// Two derived types support playback and reporting:
//   - [PlayableItem] : The (id, title, url) triple handed to the player
//   - [CatalogStats] : Aggregate song/artist/genre counts
package models
