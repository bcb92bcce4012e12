package repositories

import (
	"database/sql"

	"github.com/desertthunder/crate/internal/models"
)

// ArtistRepository handles persistence for catalog artists.
//
// Artists are created on first reference by name and never updated or
// deleted; the name column carries a case-insensitive unique constraint,
// so Create with any casing of an existing name fails with
// [shared.ErrDuplicateKey].
type ArtistRepository struct {
	db executor
}

// NewArtistRepository creates a new ArtistRepository with the given database connection
func NewArtistRepository(db executor) *ArtistRepository {
	return &ArtistRepository{db: db}
}

// Create inserts a new artist and returns it with the generated id.
func (r *ArtistRepository) Create(name string) (*models.Artist, error) {
	result, err := r.db.Exec("INSERT INTO artists (name) VALUES (?)", name)
	if err != nil {
		return nil, storageErr("create artist", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, storageErr("create artist", err)
	}

	return &models.Artist{ID: id, Name: name}, nil
}

// Get retrieves an artist by id.
func (r *ArtistRepository) Get(id int64) (*models.Artist, error) {
	row := r.db.QueryRow("SELECT id, name FROM artists WHERE id = ?", id)
	return r.scanOne(row, "get artist")
}

// GetByName retrieves an artist by name. The comparison is
// case-insensitive via the column collation, so "queen" finds "Queen".
func (r *ArtistRepository) GetByName(name string) (*models.Artist, error) {
	row := r.db.QueryRow("SELECT id, name FROM artists WHERE name = ?", name)
	return r.scanOne(row, "get artist by name")
}

// List retrieves all artists ordered by name.
func (r *ArtistRepository) List() ([]*models.Artist, error) {
	rows, err := r.db.Query("SELECT id, name FROM artists ORDER BY name ASC")
	if err != nil {
		return nil, storageErr("list artists", err)
	}
	defer rows.Close()

	var artists []*models.Artist
	for rows.Next() {
		var artist models.Artist
		if err := rows.Scan(&artist.ID, &artist.Name); err != nil {
			return nil, storageErr("scan artist", err)
		}
		artists = append(artists, &artist)
	}

	if err := rows.Err(); err != nil {
		return nil, storageErr("list artists", err)
	}

	return artists, nil
}

// scanOne scans a single [sql.Row] into a [models.Artist]
func (r *ArtistRepository) scanOne(row *sql.Row, op string) (*models.Artist, error) {
	var artist models.Artist
	if err := row.Scan(&artist.ID, &artist.Name); err != nil {
		return nil, storageErr(op, err)
	}
	return &artist, nil
}
