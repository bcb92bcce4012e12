package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/crate/internal/models"
	"github.com/desertthunder/crate/internal/repositories"
	"github.com/desertthunder/crate/internal/shared"
)

// Scope selects the entity set a search runs against.
type Scope string

const (
	ScopeSongs   Scope = "songs"
	ScopeArtists Scope = "artists"
	ScopeGenres  Scope = "genres"
)

// SearchResults holds the matches for one search, populated according to
// the requested scope.
type SearchResults struct {
	Songs   []*models.Song `json:"songs,omitempty"`
	Artists []string       `json:"artists,omitempty"`
	Genres  []string       `json:"genres,omitempty"`
}

// UpdateSongParams describes a partial song update. Empty fields keep the
// stored value.
type UpdateSongParams struct {
	Title      string
	URL        string
	ArtistName string
	GenreName  string
}

// Service is the business-level view over the storage engine: dedup-safe
// composite inserts, search, suggestions and a read-through cache.
//
// Construct with [NewService]; there are no package-level singletons. The
// zero value is not usable.
type Service struct {
	store  *repositories.Store
	logger *log.Logger
	cache  cache
}

// NewService creates a catalog service over an open store. The cache
// starts cold and is filled on first read.
func NewService(store *repositories.Store, logger *log.Logger) *Service {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Service{store: store, logger: logger.With("component", "catalog")}
}

// AddSong catalogs a song, creating its artist and genre on first
// reference. Artist and genre names are trimmed of surrounding
// whitespace and matched case-insensitively against existing entities,
// so "queen" and " Queen " both reuse "Queen". Trimming happens here,
// before any cache or storage access, so both layers always see the
// same key.
//
// The whole operation is one storage transaction: artist-create,
// genre-create and song-create apply together or not at all. A url that
// is already cataloged fails with [shared.ErrAlreadyCataloged] and leaves
// the existing row untouched.
func (s *Service) AddSong(title, url, artistName, genreName string) (*models.Song, error) {
	artistName = strings.TrimSpace(artistName)
	genreName = strings.TrimSpace(genreName)

	if title == "" || url == "" || artistName == "" || genreName == "" {
		return nil, fmt.Errorf("%w: title, url, artist and genre are required", shared.ErrInvalidArgument)
	}

	tx, err := s.store.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	artist, artistCreated, err := s.resolveArtist(tx, artistName)
	if err != nil {
		return nil, err
	}

	genre, genreCreated, err := s.resolveGenre(tx, genreName)
	if err != nil {
		return nil, err
	}

	song, err := tx.Songs.Create(title, url, artist.ID, genre.ID)
	if err != nil {
		if errors.Is(err, shared.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", shared.ErrAlreadyCataloged, url)
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	song.Artist = artist.Name
	song.Genre = genre.Name

	if artistCreated {
		s.cache.putArtist(artist)
	}
	if genreCreated {
		s.cache.putGenre(genre)
	}
	s.cache.putSong(song)

	s.logger.Debug("cataloged song", "id", song.ID, "title", title, "artist", artist.Name, "genre", genre.Name)
	return song, nil
}

// UpdateSong applies a partial update to an existing song. Changed artist
// or genre names follow the same find-or-create discipline as [AddSong],
// inside one transaction. Changing the url to one held by another song
// fails with [shared.ErrAlreadyCataloged].
func (s *Service) UpdateSong(id int64, params UpdateSongParams) (*models.Song, error) {
	params.ArtistName = strings.TrimSpace(params.ArtistName)
	params.GenreName = strings.TrimSpace(params.GenreName)

	tx, err := s.store.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	song, err := tx.Songs.Get(id)
	if err != nil {
		return nil, err
	}

	if params.Title != "" {
		song.Title = params.Title
	}
	if params.URL != "" {
		song.URL = params.URL
	}

	var createdArtist, createdGenre bool
	var artist *models.Artist
	var genre *models.Genre

	if params.ArtistName != "" {
		if artist, createdArtist, err = s.resolveArtist(tx, params.ArtistName); err != nil {
			return nil, err
		}
		song.ArtistID = artist.ID
		song.Artist = artist.Name
	}

	if params.GenreName != "" {
		if genre, createdGenre, err = s.resolveGenre(tx, params.GenreName); err != nil {
			return nil, err
		}
		song.GenreID = genre.ID
		song.Genre = genre.Name
	}

	if err := tx.Songs.Update(song); err != nil {
		if errors.Is(err, shared.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", shared.ErrAlreadyCataloged, song.URL)
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	if createdArtist {
		s.cache.putArtist(artist)
	}
	if createdGenre {
		s.cache.putGenre(genre)
	}
	s.cache.replaceSong(song)

	s.logger.Debug("updated song", "id", id)
	return song, nil
}

// RemoveSong deletes a song from the catalog. The artist and genre stay
// even when this was their last song; orphans are permitted.
func (s *Service) RemoveSong(id int64) error {
	if err := s.store.Songs.Delete(id); err != nil {
		return err
	}

	s.cache.dropSong(id)
	s.logger.Debug("removed song", "id", id)
	return nil
}

// FindOrCreateArtist returns the artist with the given name, matched
// case-insensitively, creating it when absent.
func (s *Service) FindOrCreateArtist(name string) (*models.Artist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: artist name is required", shared.ErrInvalidArgument)
	}

	tx, err := s.store.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	artist, created, err := s.resolveArtist(tx, name)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	if created {
		s.cache.putArtist(artist)
	}
	return artist, nil
}

// FindOrCreateGenre returns the genre with the given name, matched
// case-insensitively, creating it when absent.
func (s *Service) FindOrCreateGenre(name string) (*models.Genre, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: genre name is required", shared.ErrInvalidArgument)
	}

	tx, err := s.store.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	genre, created, err := s.resolveGenre(tx, name)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	if created {
		s.cache.putGenre(genre)
	}
	return genre, nil
}

// Songs returns every cataloged song with joined artist and genre names,
// in ascending id order. Served from the cache when warm.
func (s *Service) Songs() ([]*models.Song, error) {
	return s.cachedSongs()
}

// SongsByArtist returns the artist's songs in ascending id order. An
// unknown artist name fails with [shared.ErrNotFound]; a known artist
// with no songs yields an empty slice.
func (s *Service) SongsByArtist(name string) ([]*models.Song, error) {
	artist, err := s.lookupArtist(name)
	if err != nil {
		return nil, err
	}

	songs, err := s.cachedSongs()
	if err != nil {
		return nil, err
	}

	var matched []*models.Song
	for _, song := range songs {
		if song.ArtistID == artist.ID {
			matched = append(matched, song)
		}
	}
	return matched, nil
}

// SongsByGenre returns the genre's songs in ascending id order, with the
// same semantics as [Service.SongsByArtist].
func (s *Service) SongsByGenre(name string) ([]*models.Song, error) {
	genre, err := s.lookupGenre(name)
	if err != nil {
		return nil, err
	}

	songs, err := s.cachedSongs()
	if err != nil {
		return nil, err
	}

	var matched []*models.Song
	for _, song := range songs {
		if song.GenreID == genre.ID {
			matched = append(matched, song)
		}
	}
	return matched, nil
}

// SongByURL returns the song cataloged under the given url.
func (s *Service) SongByURL(url string) (*models.Song, error) {
	if song, ok := s.cache.songByURL(url); ok {
		return song, nil
	}

	song, err := s.store.Songs.GetByURL(url)
	if err != nil {
		return nil, err
	}

	// Cache miss with a storage hit means the cache was cold or stale;
	// rebuild it from storage.
	if _, err := s.refreshSongs(); err != nil {
		return nil, err
	}
	return song, nil
}

// SongByID returns the song with the given id.
func (s *Service) SongByID(id int64) (*models.Song, error) {
	if song, ok := s.cache.songByID(id); ok {
		return song, nil
	}

	song, err := s.store.Songs.Get(id)
	if err != nil {
		return nil, err
	}

	if _, err := s.refreshSongs(); err != nil {
		return nil, err
	}
	return song, nil
}

// Artists returns all artists ordered by name.
func (s *Service) Artists() ([]*models.Artist, error) {
	return s.store.Artists.List()
}

// Genres returns all genres ordered by name.
func (s *Service) Genres() ([]*models.Genre, error) {
	return s.store.Genres.List()
}

// SuggestArtists returns artist names containing the partial input,
// case-insensitively, in insertion order. An empty partial returns every
// name. Used by front ends to steer input away from near-duplicate
// entities.
func (s *Service) SuggestArtists(partial string) ([]string, error) {
	if err := s.ensureEntities(); err != nil {
		return nil, err
	}
	return s.cache.matchArtists(partial), nil
}

// SuggestGenres returns genre names containing the partial input, with
// the same semantics as [Service.SuggestArtists].
func (s *Service) SuggestGenres(partial string) ([]string, error) {
	if err := s.ensureEntities(); err != nil {
		return nil, err
	}
	return s.cache.matchGenres(partial), nil
}

// Search runs a case-insensitive substring search in the given scope.
// Songs match on title or artist name.
func (s *Service) Search(query string, scope Scope) (*SearchResults, error) {
	switch scope {
	case ScopeSongs:
		songs, err := s.store.Songs.Search(query)
		if err != nil {
			return nil, err
		}
		return &SearchResults{Songs: songs}, nil
	case ScopeArtists:
		names, err := s.SuggestArtists(query)
		if err != nil {
			return nil, err
		}
		return &SearchResults{Artists: names}, nil
	case ScopeGenres:
		names, err := s.SuggestGenres(query)
		if err != nil {
			return nil, err
		}
		return &SearchResults{Genres: names}, nil
	default:
		return nil, fmt.Errorf("%w: unknown search scope %q", shared.ErrInvalidArgument, scope)
	}
}

// Stats returns aggregate catalog counts. Always computed by the storage
// engine, never from the cache.
func (s *Service) Stats() (*models.CatalogStats, error) {
	return s.store.Stats()
}

// resolveArtist finds the named artist in the cache or storage, creating
// it in the transaction when absent. Reports whether a row was created.
func (s *Service) resolveArtist(tx *repositories.Tx, name string) (*models.Artist, bool, error) {
	if artist, ok := s.cache.artistByName(name); ok {
		return artist, false, nil
	}

	artist, err := tx.Artists.GetByName(name)
	if err == nil {
		return artist, false, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, false, err
	}

	if artist, err = tx.Artists.Create(name); err != nil {
		return nil, false, err
	}
	return artist, true, nil
}

// resolveGenre is the genre counterpart of resolveArtist.
func (s *Service) resolveGenre(tx *repositories.Tx, name string) (*models.Genre, bool, error) {
	if genre, ok := s.cache.genreByName(name); ok {
		return genre, false, nil
	}

	genre, err := tx.Genres.GetByName(name)
	if err == nil {
		return genre, false, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, false, err
	}

	if genre, err = tx.Genres.Create(name); err != nil {
		return nil, false, err
	}
	return genre, true, nil
}

// lookupArtist resolves a name for reads: cache first, then storage.
// Trimmed like the write path so both resolve the same key.
func (s *Service) lookupArtist(name string) (*models.Artist, error) {
	name = strings.TrimSpace(name)
	if artist, ok := s.cache.artistByName(name); ok {
		return artist, nil
	}

	artist, err := s.store.Artists.GetByName(name)
	if err != nil {
		return nil, err
	}

	s.cache.putArtist(artist)
	return artist, nil
}

// lookupGenre resolves a name for reads: cache first, then storage.
func (s *Service) lookupGenre(name string) (*models.Genre, error) {
	name = strings.TrimSpace(name)
	if genre, ok := s.cache.genreByName(name); ok {
		return genre, nil
	}

	genre, err := s.store.Genres.GetByName(name)
	if err != nil {
		return nil, err
	}

	s.cache.putGenre(genre)
	return genre, nil
}

// cachedSongs serves the song list from the cache, rebuilding it from
// storage when cold.
func (s *Service) cachedSongs() ([]*models.Song, error) {
	if songs, ok := s.cache.allSongs(); ok {
		return songs, nil
	}
	return s.refreshSongs()
}

// refreshSongs rebuilds the song cache from storage.
func (s *Service) refreshSongs() ([]*models.Song, error) {
	songs, err := s.store.Songs.List(repositories.SongFilter{})
	if err != nil {
		return nil, err
	}

	s.cache.setSongs(songs)
	return songs, nil
}

// ensureEntities warms the artist and genre name caches from storage.
func (s *Service) ensureEntities() error {
	if s.cache.entitiesWarm() {
		return nil
	}

	artists, err := s.store.Artists.List()
	if err != nil {
		return err
	}
	genres, err := s.store.Genres.List()
	if err != nil {
		return err
	}

	s.cache.setEntities(artists, genres)
	return nil
}
