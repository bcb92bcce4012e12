package catalog

import (
	"sort"
	"sync"

	"github.com/desertthunder/crate/internal/models"
	"github.com/desertthunder/crate/internal/shared"
)

// cache is the in-memory read-through mirror of storage. It is derived
// state, rebuildable at any time, and never the source of truth.
//
// Songs are held in ascending id order behind a warm flag so an empty
// catalog is distinguishable from a cold cache. Artists and genres are
// indexed by their normalized name and kept in insertion (id) order,
// which is the tie-break order for suggestions.
type cache struct {
	mu sync.RWMutex

	songsWarm bool
	songs     []*models.Song

	entitiesWarmFlag bool
	artistsByKey     map[string]*models.Artist
	artistOrder      []*models.Artist
	genresByKey      map[string]*models.Genre
	genreOrder       []*models.Genre
}

// cloneSong copies a song so the cache never shares struct memory with
// callers. Songs cross the cache boundary in both directions; without
// the copy, a caller mutating a returned song would edit cached state.
func cloneSong(song *models.Song) *models.Song {
	cloned := *song
	return &cloned
}

// allSongs returns the cached song list and whether the cache is warm.
func (c *cache) allSongs() ([]*models.Song, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.songsWarm {
		return nil, false
	}

	songs := make([]*models.Song, len(c.songs))
	for i, song := range c.songs {
		songs[i] = cloneSong(song)
	}
	return songs, true
}

// songByID scans the warm cache for a song id.
func (c *cache) songByID(id int64) (*models.Song, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.songsWarm {
		return nil, false
	}

	for _, song := range c.songs {
		if song.ID == id {
			return cloneSong(song), true
		}
	}
	return nil, false
}

// songByURL scans the warm cache for a song url.
func (c *cache) songByURL(url string) (*models.Song, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.songsWarm {
		return nil, false
	}

	for _, song := range c.songs {
		if song.URL == url {
			return cloneSong(song), true
		}
	}
	return nil, false
}

// setSongs replaces the song cache with a fresh storage listing.
func (c *cache) setSongs(songs []*models.Song) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.songs = make([]*models.Song, len(songs))
	for i, song := range songs {
		c.songs[i] = cloneSong(song)
	}
	c.songsWarm = true
}

// putSong appends a newly committed song. Ids are monotonically
// increasing, so appending preserves the order invariant. A cold cache
// stays cold; it will be rebuilt whole on the next read.
func (c *cache) putSong(song *models.Song) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.songsWarm {
		return
	}
	c.songs = append(c.songs, cloneSong(song))
}

// replaceSong swaps the cached entry for an updated song.
func (c *cache) replaceSong(song *models.Song) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.songsWarm {
		return
	}

	for i, cached := range c.songs {
		if cached.ID == song.ID {
			c.songs[i] = cloneSong(song)
			return
		}
	}
	c.songs = append(c.songs, cloneSong(song))
}

// dropSong removes a deleted song from the cache.
func (c *cache) dropSong(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.songsWarm {
		return
	}

	for i, cached := range c.songs {
		if cached.ID == id {
			c.songs = append(c.songs[:i], c.songs[i+1:]...)
			return
		}
	}
}

// artistByName looks up an artist by normalized name.
func (c *cache) artistByName(name string) (*models.Artist, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	artist, ok := c.artistsByKey[shared.NormalizeName(name)]
	return artist, ok
}

// genreByName looks up a genre by normalized name.
func (c *cache) genreByName(name string) (*models.Genre, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	genre, ok := c.genresByKey[shared.NormalizeName(name)]
	return genre, ok
}

// putArtist indexes a single artist without marking the entity caches
// warm; warmth requires a full listing via setEntities.
func (c *cache) putArtist(artist *models.Artist) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := shared.NormalizeName(artist.Name)
	if c.artistsByKey == nil {
		c.artistsByKey = make(map[string]*models.Artist)
	}
	if _, exists := c.artistsByKey[key]; exists {
		return
	}

	c.artistsByKey[key] = artist
	c.artistOrder = append(c.artistOrder, artist)
	sort.Slice(c.artistOrder, func(i, j int) bool { return c.artistOrder[i].ID < c.artistOrder[j].ID })
}

// putGenre indexes a single genre.
func (c *cache) putGenre(genre *models.Genre) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := shared.NormalizeName(genre.Name)
	if c.genresByKey == nil {
		c.genresByKey = make(map[string]*models.Genre)
	}
	if _, exists := c.genresByKey[key]; exists {
		return
	}

	c.genresByKey[key] = genre
	c.genreOrder = append(c.genreOrder, genre)
	sort.Slice(c.genreOrder, func(i, j int) bool { return c.genreOrder[i].ID < c.genreOrder[j].ID })
}

// entitiesWarm reports whether the name caches hold a full listing.
func (c *cache) entitiesWarm() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entitiesWarmFlag
}

// setEntities replaces the artist and genre caches with full storage
// listings and marks them warm. Input order does not matter; the order
// slices are kept in ascending id order.
func (c *cache) setEntities(artists []*models.Artist, genres []*models.Genre) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.artistsByKey = make(map[string]*models.Artist, len(artists))
	c.artistOrder = make([]*models.Artist, len(artists))
	copy(c.artistOrder, artists)
	sort.Slice(c.artistOrder, func(i, j int) bool { return c.artistOrder[i].ID < c.artistOrder[j].ID })
	for _, artist := range c.artistOrder {
		c.artistsByKey[shared.NormalizeName(artist.Name)] = artist
	}

	c.genresByKey = make(map[string]*models.Genre, len(genres))
	c.genreOrder = make([]*models.Genre, len(genres))
	copy(c.genreOrder, genres)
	sort.Slice(c.genreOrder, func(i, j int) bool { return c.genreOrder[i].ID < c.genreOrder[j].ID })
	for _, genre := range c.genreOrder {
		c.genresByKey[shared.NormalizeName(genre.Name)] = genre
	}

	c.entitiesWarmFlag = true
}

// matchArtists returns artist names containing the partial input,
// case-insensitively, in insertion order.
func (c *cache) matchArtists(partial string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := []string{}
	for _, artist := range c.artistOrder {
		if partial == "" || shared.ContainsFold(artist.Name, partial) {
			names = append(names, artist.Name)
		}
	}
	return names
}

// matchGenres returns genre names containing the partial input.
func (c *cache) matchGenres(partial string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := []string{}
	for _, genre := range c.genreOrder {
		if partial == "" || shared.ContainsFold(genre.Name, partial) {
			names = append(names, genre.Name)
		}
	}
	return names
}
