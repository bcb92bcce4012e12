package repositories

import (
	"database/sql"

	"github.com/desertthunder/crate/internal/models"
)

// songColumns is the joined projection shared by every song read: the song
// row plus the artist and genre names, resolved in the same query so a
// listing is never N+1.
const songColumns = `
	SELECT s.id, s.title, s.url, s.artist_id, s.genre_id, a.name, g.name
	FROM songs s
	JOIN artists a ON a.id = s.artist_id
	JOIN genres g ON g.id = s.genre_id
`

// SongFilter narrows a song listing. The zero value selects everything;
// at most one field is expected to be set.
type SongFilter struct {
	ArtistID int64
	GenreID  int64
	URL      string
}

// SongRepository handles persistence for cataloged songs.
//
// The url column is unique, so Create with an already-cataloged url fails
// with [shared.ErrDuplicateKey]; dangling artist or genre ids fail with
// [shared.ErrForeignKeyViolation].
type SongRepository struct {
	db executor
}

// NewSongRepository creates a new SongRepository with the given database connection
func NewSongRepository(db executor) *SongRepository {
	return &SongRepository{db: db}
}

// Create inserts a new song and returns it with the generated id.
// The ArtistID and GenreID must reference existing rows.
func (r *SongRepository) Create(title, url string, artistID, genreID int64) (*models.Song, error) {
	query := "INSERT INTO songs (title, url, artist_id, genre_id) VALUES (?, ?, ?, ?)"

	result, err := r.db.Exec(query, title, url, artistID, genreID)
	if err != nil {
		return nil, storageErr("create song", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, storageErr("create song", err)
	}

	return &models.Song{ID: id, Title: title, URL: url, ArtistID: artistID, GenreID: genreID}, nil
}

// Get retrieves a song by id, joined with its artist and genre names.
func (r *SongRepository) Get(id int64) (*models.Song, error) {
	row := r.db.QueryRow(songColumns+" WHERE s.id = ?", id)
	return r.scanOne(row, "get song")
}

// GetByURL retrieves a song by its unique url.
func (r *SongRepository) GetByURL(url string) (*models.Song, error) {
	row := r.db.QueryRow(songColumns+" WHERE s.url = ?", url)
	return r.scanOne(row, "get song by url")
}

// List retrieves songs matching the filter, joined with artist and genre
// names, in ascending id (insertion) order.
func (r *SongRepository) List(filter SongFilter) ([]*models.Song, error) {
	query := songColumns + " WHERE 1 = 1"
	args := []any{}

	if filter.ArtistID != 0 {
		query += " AND s.artist_id = ?"
		args = append(args, filter.ArtistID)
	}

	if filter.GenreID != 0 {
		query += " AND s.genre_id = ?"
		args = append(args, filter.GenreID)
	}

	if filter.URL != "" {
		query += " AND s.url = ?"
		args = append(args, filter.URL)
	}

	query += " ORDER BY s.id ASC"

	return r.list(query, args...)
}

// Search retrieves songs whose title or artist name contains the query,
// case-insensitively, in ascending id order.
func (r *SongRepository) Search(query string) ([]*models.Song, error) {
	// instr on lowered text instead of LIKE so %, _ in the query are
	// treated literally.
	stmt := songColumns + `
		WHERE instr(lower(s.title), lower(?)) > 0
		   OR instr(lower(a.name), lower(?)) > 0
		ORDER BY s.id ASC
	`
	return r.list(stmt, query, query)
}

// Update modifies an existing song's title, url, artist and genre.
func (r *SongRepository) Update(song *models.Song) error {
	query := "UPDATE songs SET title = ?, url = ?, artist_id = ?, genre_id = ? WHERE id = ?"

	result, err := r.db.Exec(query, song.Title, song.URL, song.ArtistID, song.GenreID, song.ID)
	if err != nil {
		return storageErr("update song", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storageErr("update song", err)
	}
	if rows == 0 {
		return storageErr("update song", sql.ErrNoRows)
	}

	return nil
}

// Delete removes a song by id. The referenced artist and genre rows are
// left untouched even when this was the last song referencing them.
func (r *SongRepository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM songs WHERE id = ?", id)
	if err != nil {
		return storageErr("delete song", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storageErr("delete song", err)
	}
	if rows == 0 {
		return storageErr("delete song", sql.ErrNoRows)
	}

	return nil
}

// list runs a joined song query and scans all rows.
func (r *SongRepository) list(query string, args ...any) ([]*models.Song, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, storageErr("list songs", err)
	}
	defer rows.Close()

	var songs []*models.Song
	for rows.Next() {
		var song models.Song
		err := rows.Scan(&song.ID, &song.Title, &song.URL, &song.ArtistID, &song.GenreID, &song.Artist, &song.Genre)
		if err != nil {
			return nil, storageErr("scan song", err)
		}
		songs = append(songs, &song)
	}

	if err := rows.Err(); err != nil {
		return nil, storageErr("list songs", err)
	}

	return songs, nil
}

// scanOne scans a single joined [sql.Row] into a [models.Song]
func (r *SongRepository) scanOne(row *sql.Row, op string) (*models.Song, error) {
	var song models.Song
	err := row.Scan(&song.ID, &song.Title, &song.URL, &song.ArtistID, &song.GenreID, &song.Artist, &song.Genre)
	if err != nil {
		return nil, storageErr(op, err)
	}
	return &song, nil
}

// statsQuery computes aggregate catalog counts in a single statement
// without loading any entity rows.
func statsQuery(db executor) (*models.CatalogStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM songs),
			(SELECT COUNT(*) FROM artists),
			(SELECT COUNT(*) FROM genres)
	`

	var stats models.CatalogStats
	err := db.QueryRow(query).Scan(&stats.SongCount, &stats.ArtistCount, &stats.GenreCount)
	if err != nil {
		return nil, storageErr("catalog stats", err)
	}

	return &stats, nil
}
