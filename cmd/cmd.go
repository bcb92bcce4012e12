// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// setupCommand handles setup operations for the configuration and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent database migration",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupRollback,
			},
		},
	}
}

// addCommand catalogs a new song.
func addCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Catalog a song with its artist and genre",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "title"},
			&cli.StringArg{Name: "url"},
		},
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:     "artist",
				Aliases:  []string{"a"},
				Usage:    "Artist name (created on first use)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "genre",
				Aliases:  []string{"g"},
				Usage:    "Genre name (created on first use)",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the cataloged song as JSON",
			},
		},
		Action: r.AddSong,
	}
}

// songsCommand lists cataloged songs.
func songsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "songs",
		Aliases: []string{"ls"},
		Usage:   "List cataloged songs",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "artist",
				Aliases: []string{"a"},
				Usage:   "Only songs by this artist",
			},
			&cli.StringFlag{
				Name:    "genre",
				Aliases: []string{"g"},
				Usage:   "Only songs in this genre",
			},
			&cli.StringFlag{
				Name:  "url",
				Usage: "Only the song cataloged under this URL",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.ListSongs,
	}
}

// artistsCommand lists cataloged artists.
func artistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "artists",
		Usage: "List cataloged artists",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.ListArtists,
	}
}

// genresCommand lists cataloged genres.
func genresCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "genres",
		Usage: "List cataloged genres",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.ListGenres,
	}
}

// searchCommand searches the catalog.
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search songs, artists or genres",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "query"},
		},
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "scope",
				Aliases: []string{"s"},
				Usage:   "Search scope: songs, artists or genres",
				Value:   "songs",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Search,
	}
}

// suggestCommand completes artist or genre names from a partial.
func suggestCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "suggest",
		Usage: "Suggest entity names matching a partial",
		Commands: []*cli.Command{
			{
				Name:  "artist",
				Usage: "Suggest artist names; an empty partial lists all",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "partial"},
				},
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.SuggestArtists,
			},
			{
				Name:  "genre",
				Usage: "Suggest genre names; an empty partial lists all",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "partial"},
				},
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.SuggestGenres,
			},
		},
	}
}

// statsCommand reports aggregate catalog counts.
func statsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show catalog statistics",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Stats,
	}
}

// updateCommand edits a cataloged song.
func updateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "update",
		Usage: "Update a cataloged song; omitted fields keep their value",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id"},
		},
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "title",
				Usage: "New song title",
			},
			&cli.StringFlag{
				Name:  "url",
				Usage: "New song URL",
			},
			&cli.StringFlag{
				Name:    "artist",
				Aliases: []string{"a"},
				Usage:   "New artist name (created on first use)",
			},
			&cli.StringFlag{
				Name:    "genre",
				Aliases: []string{"g"},
				Usage:   "New genre name (created on first use)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the updated song as JSON",
			},
		},
		Action: r.UpdateSong,
	}
}

// removeCommand deletes a song from the catalog.
func removeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "rm",
		Aliases: []string{"remove"},
		Usage:   "Remove a song from the catalog",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id"},
		},
		Flags:  []cli.Flag{configFlag()},
		Action: r.RemoveSong,
	}
}

// playCommand plays a catalog selection through the configured player.
func playCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "Play the catalog, an artist, a genre, or a single song",
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:    "song",
				Aliases: []string{"s"},
				Usage:   "Play a single song by id",
			},
			&cli.StringFlag{
				Name:    "artist",
				Aliases: []string{"a"},
				Usage:   "Play all songs by this artist",
			},
			&cli.StringFlag{
				Name:    "genre",
				Aliases: []string{"g"},
				Usage:   "Play all songs in this genre",
			},
			&cli.BoolFlag{
				Name:  "shuffle",
				Usage: "Play the selection in random order",
			},
			&cli.IntFlag{
				Name:  "seed",
				Usage: "Shuffle seed for reproducible order (0 seeds from the clock)",
			},
			&cli.IntFlag{
				Name:  "volume",
				Usage: "Playback volume percent (0-100, overrides config)",
				Value: -1,
			},
			&cli.BoolFlag{
				Name:  "video",
				Usage: "Show video output instead of audio-only",
			},
		},
		Action: r.Play,
	}
}

// exportCommand writes the catalog to a file.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the catalog to JSON, CSV or plain text",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format: json, csv or txt",
				Value:   "json",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path",
			},
			&cli.StringFlag{
				Name:    "artist",
				Aliases: []string{"a"},
				Usage:   "Only export songs by this artist",
			},
			&cli.StringFlag{
				Name:    "genre",
				Aliases: []string{"g"},
				Usage:   "Only export songs in this genre",
			},
		},
		Action: r.Export,
	}
}

// tuiCommand returns the top-level TUI command for interactive playback.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for browsing and playing the catalog",
		Flags:   []cli.Flag{configFlag()},
		Action:  r.TUI,
	}
}
