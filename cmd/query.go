package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/crate/internal/catalog"
	"github.com/desertthunder/crate/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search runs a scoped catalog search and prints the matches.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: search query is required", shared.ErrMissingArgument)
	}

	scope := catalog.Scope(cmd.String("scope"))

	svc, closer, err := r.openCatalog(cmd)
	if err != nil {
		return err
	}
	defer closer()

	results, err := svc.Search(query, scope)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(results, cmd.Bool("pretty"))
	}

	switch scope {
	case catalog.ScopeSongs:
		r.writePlain("Found %d song(s):\n\n", len(results.Songs))
		for _, song := range results.Songs {
			r.writePlain("%d. %s - %s [%s]\n", song.ID, song.Artist, song.Title, song.Genre)
		}
	case catalog.ScopeArtists:
		r.writePlain("Found %d artist(s):\n\n", len(results.Artists))
		for i, name := range results.Artists {
			r.writePlain("%d. %s\n", i+1, name)
		}
	case catalog.ScopeGenres:
		r.writePlain("Found %d genre(s):\n\n", len(results.Genres))
		for i, name := range results.Genres {
			r.writePlain("%d. %s\n", i+1, name)
		}
	}

	return nil
}

// SuggestArtists completes artist names from a partial. An empty partial
// lists every name.
func (r *Runner) SuggestArtists(ctx context.Context, cmd *cli.Command) error {
	return r.suggest(cmd, func(svc *catalog.Service, partial string) ([]string, error) {
		return svc.SuggestArtists(partial)
	})
}

// SuggestGenres completes genre names from a partial. An empty partial
// lists every name.
func (r *Runner) SuggestGenres(ctx context.Context, cmd *cli.Command) error {
	return r.suggest(cmd, func(svc *catalog.Service, partial string) ([]string, error) {
		return svc.SuggestGenres(partial)
	})
}

func (r *Runner) suggest(cmd *cli.Command, match func(*catalog.Service, string) ([]string, error)) error {
	svc, closer, err := r.openCatalog(cmd)
	if err != nil {
		return err
	}
	defer closer()

	names, err := match(svc, cmd.StringArg("partial"))
	if err != nil {
		return fmt.Errorf("suggestion failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(names, true)
	}

	for _, name := range names {
		r.writePlain("%s\n", name)
	}
	return nil
}

// Stats prints aggregate catalog counts.
func (r *Runner) Stats(ctx context.Context, cmd *cli.Command) error {
	svc, closer, err := r.openCatalog(cmd)
	if err != nil {
		return err
	}
	defer closer()

	stats, err := svc.Stats()
	if err != nil {
		return fmt.Errorf("failed to compute stats: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(stats, true)
	}

	r.writePlain("Songs:   %d\n", stats.SongCount)
	r.writePlain("Artists: %d\n", stats.ArtistCount)
	r.writePlain("Genres:  %d\n", stats.GenreCount)
	return nil
}
