// package repositories provides the persistence layer for the song catalog.
//
// The [Store] owns the database handle and composes one repository per
// entity. Repositories translate driver errors into the shared taxonomy
// so callers never see raw SQLite errors.
package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/crate/internal/models"
	"github.com/desertthunder/crate/internal/shared"
	"github.com/mattn/go-sqlite3"
)

// executor abstracts *sql.DB and *sql.Tx so repository methods run
// unchanged inside or outside a transaction.
type executor interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Store owns the database connection for the process lifetime and is the
// sole writer to the on-disk catalog.
type Store struct {
	db      *sql.DB
	Artists *ArtistRepository
	Genres  *GenreRepository
	Songs   *SongRepository
}

// NewStore creates a Store over an open database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db:      db,
		Artists: NewArtistRepository(db),
		Genres:  NewGenreRepository(db),
		Songs:   NewSongRepository(db),
	}
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Stats returns aggregate catalog counts in a single query, without
// loading any rows.
func (s *Store) Stats() (*models.CatalogStats, error) {
	return statsQuery(s.db)
}

// Begin starts a transaction and returns repositories scoped to it.
// A composite insert (artist, genre, song) committed through the returned
// Tx either applies completely or not at all.
func (s *Store) Begin() (*Tx, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to begin transaction: %v", shared.ErrStorageFailure, err)
	}

	return &Tx{
		tx:      tx,
		Artists: &ArtistRepository{db: tx},
		Genres:  &GenreRepository{db: tx},
		Songs:   &SongRepository{db: tx},
	}, nil
}

// Tx wraps an open transaction with repositories bound to it.
type Tx struct {
	tx      *sql.Tx
	Artists *ArtistRepository
	Genres  *GenreRepository
	Songs   *SongRepository
}

// Commit commits the transaction.
func (t *Tx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit transaction: %v", shared.ErrStorageFailure, err)
	}
	return nil
}

// Rollback aborts the transaction. Safe to defer after a successful
// Commit; the resulting ErrTxDone is discarded.
func (t *Tx) Rollback() {
	_ = t.tx.Rollback()
}

// storageErr maps a driver error onto the shared error taxonomy.
// The op string names the failed operation for the caller.
func storageErr(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", shared.ErrNotFound, op)
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: %s", shared.ErrDuplicateKey, op)
		case sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%w: %s", shared.ErrForeignKeyViolation, op)
		}
	}

	return fmt.Errorf("%w: %s: %v", shared.ErrStorageFailure, op, err)
}
