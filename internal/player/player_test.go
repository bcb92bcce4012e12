package player

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/desertthunder/crate/internal/models"
	"github.com/desertthunder/crate/internal/shared"
)

var testItem = models.PlayableItem{SongID: 1, Title: "Numb", URL: "http://x/3"}

func TestMPVName(t *testing.T) {
	if got := NewMPV("", nil).Name(); got != "mpv" {
		t.Errorf("expected default command 'mpv', got %s", got)
	}
	if got := NewMPV("vlc", nil).Name(); got != "vlc" {
		t.Errorf("expected 'vlc', got %s", got)
	}
}

func TestMPVPlay(t *testing.T) {
	t.Run("rejects out-of-range volume", func(t *testing.T) {
		p := NewMPV("mpv", nil)

		for _, volume := range []int{-1, 101} {
			err := p.Play(context.Background(), testItem, Config{VolumePercent: volume})
			if !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("volume %d: expected ErrInvalidArgument, got %v", volume, err)
			}
		}
	})

	t.Run("missing binary", func(t *testing.T) {
		p := NewMPV("definitely-not-a-real-player", nil)

		err := p.Play(context.Background(), testItem, Config{VolumePercent: 80})
		if !errors.Is(err, shared.ErrPlayerNotFound) {
			t.Errorf("expected ErrPlayerNotFound, got %v", err)
		}
	})

	t.Run("clean exit", func(t *testing.T) {
		// `true` ignores its arguments and exits 0, standing in for a
		// player that finished the item.
		p := NewMPV("true", nil)
		p.SetOutput(io.Discard, io.Discard)

		err := p.Play(context.Background(), testItem, Config{VolumePercent: 80})
		if err != nil {
			t.Errorf("expected clean exit, got %v", err)
		}
	})

	t.Run("non-zero exit", func(t *testing.T) {
		p := NewMPV("false", nil)
		p.SetOutput(io.Discard, io.Discard)

		err := p.Play(context.Background(), testItem, Config{VolumePercent: 80})
		if !errors.Is(err, shared.ErrPlaybackFailed) {
			t.Errorf("expected ErrPlaybackFailed, got %v", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		p := NewMPV("true", nil)
		p.SetOutput(io.Discard, io.Discard)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := p.Play(ctx, testItem, Config{VolumePercent: 80})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}
