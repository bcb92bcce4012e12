package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/desertthunder/crate/internal/models"
	"github.com/desertthunder/crate/internal/playback"
	"github.com/desertthunder/crate/internal/player"
	"github.com/desertthunder/crate/internal/playlist"
	"github.com/urfave/cli/v3"
)

// Play builds a playable selection and runs it through the queue engine.
// SIGINT stops the queue at the next item boundary; the partial result is
// still reported.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	svc, closer, err := r.openCatalog(cmd)
	if err != nil {
		return err
	}
	defer closer()

	builder := playlist.NewBuilder(svc)

	var items []models.PlayableItem
	switch {
	case cmd.Int("song") > 0:
		items, err = builder.BuildSong(int64(cmd.Int("song")))
	case cmd.String("artist") != "":
		items, err = builder.BuildByArtist(cmd.String("artist"))
	case cmd.String("genre") != "":
		items, err = builder.BuildByGenre(cmd.String("genre"))
	default:
		items, err = builder.BuildAll()
	}
	if err != nil {
		return fmt.Errorf("failed to build play queue: %w", err)
	}

	if len(items) == 0 {
		return r.writePlain("Nothing to play\n")
	}

	opts := playback.Options{
		Player: player.Config{
			VolumePercent: config.Player.Volume,
			VideoMode:     config.Player.Video,
			ExtraArgs:     config.Player.ExtraArgs,
		},
		Shuffle:    cmd.Bool("shuffle"),
		Seed:       int64(cmd.Int("seed")),
		LaunchRate: config.Player.LaunchRate,
	}
	if volume := cmd.Int("volume"); volume >= 0 {
		opts.Player.VolumePercent = volume
	}
	if cmd.Bool("video") {
		opts.Player.VideoMode = true
	}

	engine := playback.NewQueueEngine(r.openPlayer(config), r.logger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	progress := make(chan playback.ProgressUpdate, 50)
	drained := make(chan struct{})
	go func() {
		for update := range progress {
			r.writePlain("%s\n", update.Message)
		}
		close(drained)
	}()

	result, err := engine.Run(ctx, progress, items, opts)
	close(progress)
	<-drained

	if err != nil {
		return fmt.Errorf("playback failed: %w", err)
	}

	if result.Stopped {
		r.writePlainln("Stopped after %d of %d item(s) (%d failed)", result.Played+result.Failed, len(items), result.Failed)
	} else {
		r.writePlainln("✓ Queue finished: %d played, %d failed", result.Played, result.Failed)
	}
	return nil
}
