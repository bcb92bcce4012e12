// Package playlist turns a catalog selection into an ordered, playable
// sequence.
//
// The [Builder] reads through the catalog service only; it holds no state
// of its own and never mutates the catalog. Items come back in ascending
// song-id order, which is insertion order. An empty selection is a valid
// empty sequence, not an error; an unknown artist or genre name is
// shared.ErrNotFound, distinguishing "no such artist" from "artist with
// zero songs".
package playlist

import (
	"github.com/desertthunder/crate/internal/catalog"
	"github.com/desertthunder/crate/internal/models"
)

// Builder derives playable sequences from the catalog.
type Builder struct {
	catalog *catalog.Service
}

// NewBuilder creates a Builder over the given catalog service.
func NewBuilder(svc *catalog.Service) *Builder {
	return &Builder{catalog: svc}
}

// BuildAll returns every cataloged song as a playable sequence.
func (b *Builder) BuildAll() ([]models.PlayableItem, error) {
	songs, err := b.catalog.Songs()
	if err != nil {
		return nil, err
	}
	return toPlayable(songs), nil
}

// BuildByArtist returns the named artist's songs as a playable sequence.
func (b *Builder) BuildByArtist(artistName string) ([]models.PlayableItem, error) {
	songs, err := b.catalog.SongsByArtist(artistName)
	if err != nil {
		return nil, err
	}
	return toPlayable(songs), nil
}

// BuildByGenre returns the named genre's songs as a playable sequence.
func (b *Builder) BuildByGenre(genreName string) ([]models.PlayableItem, error) {
	songs, err := b.catalog.SongsByGenre(genreName)
	if err != nil {
		return nil, err
	}
	return toPlayable(songs), nil
}

// BuildSong returns a single-item sequence for the song with the given id.
func (b *Builder) BuildSong(id int64) ([]models.PlayableItem, error) {
	song, err := b.catalog.SongByID(id)
	if err != nil {
		return nil, err
	}
	return []models.PlayableItem{song.Playable()}, nil
}

func toPlayable(songs []*models.Song) []models.PlayableItem {
	items := make([]models.PlayableItem, 0, len(songs))
	for _, song := range songs {
		items = append(items, song.Playable())
	}
	return items
}
