// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/crate/internal/models"
	"github.com/desertthunder/crate/internal/player"
	"github.com/desertthunder/crate/internal/shared"
)

// FakePlayer is a test double for [player.Player]. It records every item
// it is asked to play and can be told to fail specific urls.
type FakePlayer struct {
	mu       sync.Mutex
	played   []models.PlayableItem
	FailURLs map[string]bool // urls whose playback should fail
	Delay    time.Duration   // simulated playback duration per item
}

func NewFakePlayer() *FakePlayer {
	return &FakePlayer{FailURLs: map[string]bool{}}
}

func (f *FakePlayer) Play(ctx context.Context, item models.PlayableItem, cfg player.Config) error {
	if f.Delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(f.Delay):
		}
	} else if ctx.Err() != nil {
		return ctx.Err()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailURLs[item.URL] {
		return fmt.Errorf("%w: %s", shared.ErrPlaybackFailed, item.URL)
	}

	f.played = append(f.played, item)
	return nil
}

func (f *FakePlayer) Name() string { return "fake" }

// Played returns a copy of the successfully played items in order.
func (f *FakePlayer) Played() []models.PlayableItem {
	f.mu.Lock()
	defer f.mu.Unlock()

	items := make([]models.PlayableItem, len(f.played))
	copy(items, f.played)
	return items
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
