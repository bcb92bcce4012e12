// Package player drives the external media player.
//
// The catalog core never interprets player output: a playback attempt
// either succeeds or fails, and the failure is surfaced upward unchanged.
package player

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/crate/internal/models"
	"github.com/desertthunder/crate/internal/shared"
)

// Config carries per-playback settings handed to the player.
type Config struct {
	VolumePercent int      // 0..100
	VideoMode     bool     // Show video output instead of audio-only
	ExtraArgs     []string // Additional player arguments from config
}

// Player plays a single item synchronously to completion or failure.
// Cancelling the context kills playback mid-item.
type Player interface {
	Play(ctx context.Context, item models.PlayableItem, cfg Config) error
	Name() string
}

// MPV runs an mpv-compatible player as a subprocess, one invocation per
// item, with the item url as the last argument.
type MPV struct {
	command string
	stdout  io.Writer
	stderr  io.Writer
	logger  *log.Logger
}

// NewMPV creates an MPV adapter for the given player command. An empty
// command defaults to "mpv". Player output goes to the process terminal.
func NewMPV(command string, logger *log.Logger) *MPV {
	if command == "" {
		command = "mpv"
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &MPV{
		command: command,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		logger:  logger.With("component", "player"),
	}
}

// SetOutput redirects player stdout and stderr, used by the TUI so the
// subprocess does not draw over the interface.
func (m *MPV) SetOutput(stdout, stderr io.Writer) {
	m.stdout = stdout
	m.stderr = stderr
}

// Name returns the configured player command.
func (m *MPV) Name() string { return m.command }

// Play launches the player for one item and blocks until it exits.
// A missing binary is [shared.ErrPlayerNotFound]; a non-zero exit is
// [shared.ErrPlaybackFailed]; a cancelled context surfaces as the
// context error.
func (m *MPV) Play(ctx context.Context, item models.PlayableItem, cfg Config) error {
	if cfg.VolumePercent < 0 || cfg.VolumePercent > 100 {
		return fmt.Errorf("%w: volume %d out of range 0..100", shared.ErrInvalidArgument, cfg.VolumePercent)
	}

	path, err := exec.LookPath(m.command)
	if err != nil {
		return fmt.Errorf("%w: %s", shared.ErrPlayerNotFound, m.command)
	}

	args := []string{fmt.Sprintf("--volume=%d", cfg.VolumePercent)}
	if !cfg.VideoMode {
		args = append(args, "--no-video")
	}
	args = append(args, cfg.ExtraArgs...)
	args = append(args, item.URL)

	m.logger.Debug("launching player", "command", m.command, "title", item.Title)

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = m.stdout
	cmd.Stderr = m.stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %s: %v", shared.ErrPlaybackFailed, item.Title, err)
	}

	return nil
}
