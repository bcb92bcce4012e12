// package models defines the data model for the song catalog
package models

// Artist represents a catalog artist. Artists are created on first
// reference by name and never updated; name uniqueness is case-insensitive.
type Artist struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Genre represents a catalog genre. Same shape and lifecycle as [Artist],
// in an independent namespace.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Song represents a cataloged song. URL is the natural deduplication key:
// a given source URL is cataloged at most once.
//
// Artist and Genre carry the joined entity names when the song was read
// through a listing query.
type Song struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	ArtistID int64  `json:"artist_id"`
	GenreID  int64  `json:"genre_id"`
	Artist   string `json:"artist,omitempty"`
	Genre    string `json:"genre,omitempty"`
}

// Playable converts the song into the minimal item handed to the player.
func (s Song) Playable() PlayableItem {
	return PlayableItem{SongID: s.ID, Title: s.Title, URL: s.URL}
}

// PlayableItem is the minimal data needed to hand a song to the player:
// what to show and what to open.
type PlayableItem struct {
	SongID int64  `json:"song_id"`
	Title  string `json:"title"`
	URL    string `json:"url"`
}

// CatalogStats holds aggregate catalog counts, computed by the storage
// layer rather than derived from cached rows.
type CatalogStats struct {
	SongCount   int `json:"song_count"`
	ArtistCount int `json:"artist_count"`
	GenreCount  int `json:"genre_count"`
}
