package main

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/crate/internal/playback"
	"github.com/desertthunder/crate/internal/player"
	"github.com/desertthunder/crate/internal/playlist"
	"github.com/desertthunder/crate/internal/shared"
	"github.com/desertthunder/crate/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for browsing and playing the catalog.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	svc, closer, err := r.openCatalog(cmd)
	if err != nil {
		return err
	}
	defer closer()

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/crate-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, log.DebugLevel)
	r.SetLogger(fileLogger)

	p := r.openPlayer(config)
	if mpv, ok := p.(*player.MPV); ok {
		// Player output would draw over the interface
		mpv.SetOutput(io.Discard, io.Discard)
	}

	opts := playback.Options{
		Player: player.Config{
			VolumePercent: config.Player.Volume,
			VideoMode:     config.Player.Video,
			ExtraArgs:     config.Player.ExtraArgs,
		},
		LaunchRate: config.Player.LaunchRate,
	}

	builder := playlist.NewBuilder(svc)
	engine := playback.NewQueueEngine(p, fileLogger)

	model := ui.NewModel(ctx, svc, builder, engine, opts)
	program := tea.NewProgram(model)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
