package repositories

import (
	"database/sql"

	"github.com/desertthunder/crate/internal/models"
)

// GenreRepository handles persistence for catalog genres. Same lifecycle
// and dedup rules as [ArtistRepository], in an independent namespace.
type GenreRepository struct {
	db executor
}

// NewGenreRepository creates a new GenreRepository with the given database connection
func NewGenreRepository(db executor) *GenreRepository {
	return &GenreRepository{db: db}
}

// Create inserts a new genre and returns it with the generated id.
func (r *GenreRepository) Create(name string) (*models.Genre, error) {
	result, err := r.db.Exec("INSERT INTO genres (name) VALUES (?)", name)
	if err != nil {
		return nil, storageErr("create genre", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, storageErr("create genre", err)
	}

	return &models.Genre{ID: id, Name: name}, nil
}

// Get retrieves a genre by id.
func (r *GenreRepository) Get(id int64) (*models.Genre, error) {
	row := r.db.QueryRow("SELECT id, name FROM genres WHERE id = ?", id)
	return r.scanOne(row, "get genre")
}

// GetByName retrieves a genre by name, case-insensitively.
func (r *GenreRepository) GetByName(name string) (*models.Genre, error) {
	row := r.db.QueryRow("SELECT id, name FROM genres WHERE name = ?", name)
	return r.scanOne(row, "get genre by name")
}

// List retrieves all genres ordered by name.
func (r *GenreRepository) List() ([]*models.Genre, error) {
	rows, err := r.db.Query("SELECT id, name FROM genres ORDER BY name ASC")
	if err != nil {
		return nil, storageErr("list genres", err)
	}
	defer rows.Close()

	var genres []*models.Genre
	for rows.Next() {
		var genre models.Genre
		if err := rows.Scan(&genre.ID, &genre.Name); err != nil {
			return nil, storageErr("scan genre", err)
		}
		genres = append(genres, &genre)
	}

	if err := rows.Err(); err != nil {
		return nil, storageErr("list genres", err)
	}

	return genres, nil
}

// scanOne scans a single [sql.Row] into a [models.Genre]
func (r *GenreRepository) scanOne(row *sql.Row, op string) (*models.Genre, error) {
	var genre models.Genre
	if err := row.Scan(&genre.ID, &genre.Name); err != nil {
		return nil, storageErr(op, err)
	}
	return &genre, nil
}
