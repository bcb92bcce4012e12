package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/desertthunder/crate/internal/catalog"
	"github.com/desertthunder/crate/internal/models"
	"github.com/desertthunder/crate/internal/shared"
	"github.com/urfave/cli/v3"
)

// parseSongID parses a positional song id argument.
func parseSongID(raw string) (int64, error) {
	if raw == "" {
		return 0, fmt.Errorf("%w: song id is required", shared.ErrMissingArgument)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid song id %q", shared.ErrInvalidArgument, raw)
	}

	return id, nil
}

// AddSong catalogs a new song, creating its artist and genre on first use.
func (r *Runner) AddSong(ctx context.Context, cmd *cli.Command) error {
	title := cmd.StringArg("title")
	url := cmd.StringArg("url")
	artist := cmd.String("artist")
	genre := cmd.String("genre")

	svc, closer, err := r.openCatalog(cmd)
	if err != nil {
		return err
	}
	defer closer()

	song, err := svc.AddSong(title, url, artist, genre)
	if err != nil {
		return fmt.Errorf("failed to catalog song: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(song, true)
	}

	r.writePlain("✓ Cataloged #%d: %s - %s [%s]\n", song.ID, song.Artist, song.Title, song.Genre)
	return nil
}

// ListSongs lists cataloged songs, optionally filtered by artist, genre
// or url.
func (r *Runner) ListSongs(ctx context.Context, cmd *cli.Command) error {
	svc, closer, err := r.openCatalog(cmd)
	if err != nil {
		return err
	}
	defer closer()

	var songs []*models.Song
	if url := cmd.String("url"); url != "" {
		song, err := svc.SongByURL(url)
		if err != nil {
			return fmt.Errorf("failed to list songs: %w", err)
		}
		songs = []*models.Song{song}
	} else if songs, err = listSongs(svc, cmd.String("artist"), cmd.String("genre")); err != nil {
		return fmt.Errorf("failed to list songs: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(songs, cmd.Bool("pretty"))
	}

	r.writePlain("Found %d song(s):\n\n", len(songs))
	for _, song := range songs {
		r.writePlain("%d. %s - %s [%s]\n", song.ID, song.Artist, song.Title, song.Genre)
	}
	return nil
}

func listSongs(svc *catalog.Service, artist, genre string) ([]*models.Song, error) {
	switch {
	case artist != "":
		return svc.SongsByArtist(artist)
	case genre != "":
		return svc.SongsByGenre(genre)
	default:
		return svc.Songs()
	}
}

// ListArtists lists cataloged artists.
func (r *Runner) ListArtists(ctx context.Context, cmd *cli.Command) error {
	svc, closer, err := r.openCatalog(cmd)
	if err != nil {
		return err
	}
	defer closer()

	artists, err := svc.Artists()
	if err != nil {
		return fmt.Errorf("failed to list artists: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(artists, true)
	}

	r.writePlain("Found %d artist(s):\n\n", len(artists))
	for _, artist := range artists {
		r.writePlain("%d. %s\n", artist.ID, artist.Name)
	}
	return nil
}

// ListGenres lists cataloged genres.
func (r *Runner) ListGenres(ctx context.Context, cmd *cli.Command) error {
	svc, closer, err := r.openCatalog(cmd)
	if err != nil {
		return err
	}
	defer closer()

	genres, err := svc.Genres()
	if err != nil {
		return fmt.Errorf("failed to list genres: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(genres, true)
	}

	r.writePlain("Found %d genre(s):\n\n", len(genres))
	for _, genre := range genres {
		r.writePlain("%d. %s\n", genre.ID, genre.Name)
	}
	return nil
}

// UpdateSong applies a partial update to a cataloged song.
func (r *Runner) UpdateSong(ctx context.Context, cmd *cli.Command) error {
	id, err := parseSongID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	params := catalog.UpdateSongParams{
		Title:      cmd.String("title"),
		URL:        cmd.String("url"),
		ArtistName: cmd.String("artist"),
		GenreName:  cmd.String("genre"),
	}

	if params == (catalog.UpdateSongParams{}) {
		return fmt.Errorf("%w: nothing to update, pass at least one of --title, --url, --artist, --genre", shared.ErrMissingArgument)
	}

	svc, closer, err := r.openCatalog(cmd)
	if err != nil {
		return err
	}
	defer closer()

	song, err := svc.UpdateSong(id, params)
	if err != nil {
		return fmt.Errorf("failed to update song: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(song, true)
	}

	r.writePlain("✓ Updated #%d: %s - %s [%s]\n", song.ID, song.Artist, song.Title, song.Genre)
	return nil
}

// RemoveSong deletes a song from the catalog. Its artist and genre are
// kept even when no other song references them.
func (r *Runner) RemoveSong(ctx context.Context, cmd *cli.Command) error {
	id, err := parseSongID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	svc, closer, err := r.openCatalog(cmd)
	if err != nil {
		return err
	}
	defer closer()

	if err := svc.RemoveSong(id); err != nil {
		return fmt.Errorf("failed to remove song: %w", err)
	}

	r.writePlain("✓ Removed song #%d\n", id)
	return nil
}
