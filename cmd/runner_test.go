package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/crate/internal/catalog"
	"github.com/desertthunder/crate/internal/models"
	"github.com/desertthunder/crate/internal/repositories"
	"github.com/desertthunder/crate/internal/shared"
	tu "github.com/desertthunder/crate/internal/testing"
	"github.com/urfave/cli/v3"
)

// setupTestCatalog builds a catalog service over an in-memory database.
func setupTestCatalog(t *testing.T) *catalog.Service {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	store := repositories.NewStore(db)
	t.Cleanup(func() { store.Close() })

	return catalog.NewService(store, nil)
}

// runCommand executes one CLI invocation against a runner with an
// injected catalog and player, returning the captured output.
func runCommand(t *testing.T, runner *Runner, args ...string) (string, error) {
	t.Helper()

	output, ok := runner.output.(*bytes.Buffer)
	if !ok {
		t.Fatal("runner output must be a bytes.Buffer")
	}
	output.Reset()

	app := &cli.Command{Name: "crate", Commands: runner.register()}
	err := app.Run(context.Background(), append([]string{"crate"}, args...))
	return output.String(), err
}

func newTestRunner(t *testing.T) (*Runner, *tu.FakePlayer) {
	t.Helper()

	// High launch rate keeps queue tests from waiting on the limiter.
	config := shared.DefaultConfig()
	config.Player.LaunchRate = 1000

	fake := tu.NewFakePlayer()
	runner := NewRunner(RunnerOpts{
		Config:  config,
		Catalog: setupTestCatalog(t),
		Player:  fake,
		Output:  &bytes.Buffer{},
	})
	return runner, fake
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			svc := setupTestCatalog(t)
			fake := tu.NewFakePlayer()

			runner := NewRunner(RunnerOpts{
				Config:     config,
				ConfigPath: "config.toml",
				Logger:     logger,
				Output:     output,
				Catalog:    svc,
				Player:     fake,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.configPath != "config.toml" {
				t.Error("expected configPath to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.catalog != svc {
				t.Error("expected catalog to be set")
			}
			if runner.player != fake {
				t.Error("expected player to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			expected := `{"key":"value"}` + "\n"
			if result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			// channels cannot be marshaled to JSON
			data := make(chan int)
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)

			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("hello %s", "world")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if output.String() != "hello world" {
				t.Errorf("expected 'hello world', got %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})
}

func TestCatalogCommands(t *testing.T) {
	t.Run("add catalogs a song", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		out, err := runCommand(t, runner, "add", "--artist", "Queen", "--genre", "Rock", "Bohemian Rhapsody", "https://example.com/br")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "Queen - Bohemian Rhapsody") {
			t.Errorf("expected confirmation, got %q", out)
		}
	})

	t.Run("add duplicate url fails", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		if _, err := runCommand(t, runner, "add", "--artist", "Queen", "--genre", "Rock", "First", "https://example.com/dup"); err != nil {
			t.Fatalf("first add failed: %v", err)
		}

		_, err := runCommand(t, runner, "add", "--artist", "Muse", "--genre", "Rock", "Second", "https://example.com/dup")
		if !errors.Is(err, shared.ErrAlreadyCataloged) {
			t.Errorf("expected ErrAlreadyCataloged, got %v", err)
		}
	})

	t.Run("songs lists cataloged songs", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		if _, err := runCommand(t, runner, "add", "--artist", "Linkin Park", "--genre", "Rock", "In the End", "https://example.com/ite"); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		out, err := runCommand(t, runner, "songs")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "Found 1 song(s)") || !strings.Contains(out, "Linkin Park - In the End") {
			t.Errorf("unexpected listing: %q", out)
		}
	})

	t.Run("songs with json outputs parseable songs", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		if _, err := runCommand(t, runner, "add", "--artist", "Linkin Park", "--genre", "Rock", "Numb", "https://example.com/numb"); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		out, err := runCommand(t, runner, "songs", "--json")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var songs []*models.Song
		if err := json.Unmarshal([]byte(out), &songs); err != nil {
			t.Fatalf("expected valid JSON, got %q: %v", out, err)
		}
		if len(songs) != 1 || songs[0].Title != "Numb" {
			t.Errorf("unexpected songs: %+v", songs)
		}
	})

	t.Run("songs filters by url", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		for _, args := range [][]string{
			{"add", "--artist", "Queen", "--genre", "Rock", "Bohemian Rhapsody", "https://example.com/br"},
			{"add", "--artist", "Linkin Park", "--genre", "Rock", "In the End", "https://example.com/ite"},
		} {
			if _, err := runCommand(t, runner, args...); err != nil {
				t.Fatalf("add failed: %v", err)
			}
		}

		out, err := runCommand(t, runner, "songs", "--url", "https://example.com/ite")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "Found 1 song(s)") || !strings.Contains(out, "In the End") {
			t.Errorf("unexpected listing: %q", out)
		}

		_, err = runCommand(t, runner, "songs", "--url", "https://example.com/missing")
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("songs filters by unknown artist", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		_, err := runCommand(t, runner, "songs", "--artist", "Nobody")
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("update changes fields", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		if _, err := runCommand(t, runner, "add", "--artist", "Linkin Park", "--genre", "Rock", "Numbb", "https://example.com/numb"); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		out, err := runCommand(t, runner, "update", "--title", "Numb", "1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "Linkin Park - Numb") {
			t.Errorf("expected updated title, got %q", out)
		}
	})

	t.Run("update with no fields fails", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		_, err := runCommand(t, runner, "update", "1")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("update with bad id fails", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		_, err := runCommand(t, runner, "update", "--title", "x", "abc")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("rm removes a song", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		if _, err := runCommand(t, runner, "add", "--artist", "Linkin Park", "--genre", "Rock", "Numb", "https://example.com/numb"); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		if _, err := runCommand(t, runner, "rm", "1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out, err := runCommand(t, runner, "songs")
		if err != nil {
			t.Fatalf("songs failed: %v", err)
		}
		if !strings.Contains(out, "Found 0 song(s)") {
			t.Errorf("expected empty catalog, got %q", out)
		}
	})

	t.Run("rm missing song fails", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		_, err := runCommand(t, runner, "rm", "42")
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("artists and genres list entities", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		if _, err := runCommand(t, runner, "add", "--artist", "Linkin Park", "--genre", "Rock", "Numb", "https://example.com/numb"); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		out, err := runCommand(t, runner, "artists")
		if err != nil {
			t.Fatalf("artists failed: %v", err)
		}
		if !strings.Contains(out, "Linkin Park") {
			t.Errorf("expected artist listing, got %q", out)
		}

		out, err = runCommand(t, runner, "genres")
		if err != nil {
			t.Fatalf("genres failed: %v", err)
		}
		if !strings.Contains(out, "Rock") {
			t.Errorf("expected genre listing, got %q", out)
		}
	})
}

func TestQueryCommands(t *testing.T) {
	seed := func(t *testing.T, runner *Runner) {
		t.Helper()
		for _, args := range [][]string{
			{"add", "--artist", "Queen", "--genre", "Rock", "Bohemian Rhapsody", "https://example.com/br"},
			{"add", "--artist", "Queen", "--genre", "Rock", "Somebody to Love", "https://example.com/stl"},
			{"add", "--artist", "Linkin Park", "--genre", "Rock", "In the End", "https://example.com/ite"},
		} {
			if _, err := runCommand(t, runner, args...); err != nil {
				t.Fatalf("seed failed: %v", err)
			}
		}
		runner.output.(*bytes.Buffer).Reset()
	}

	t.Run("search songs by title", func(t *testing.T) {
		runner, _ := newTestRunner(t)
		seed(t, runner)

		out, err := runCommand(t, runner, "search", "love")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "Somebody to Love") {
			t.Errorf("expected title match, got %q", out)
		}
	})

	t.Run("search artists scope", func(t *testing.T) {
		runner, _ := newTestRunner(t)
		seed(t, runner)

		out, err := runCommand(t, runner, "search", "--scope", "artists", "que")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "Queen") {
			t.Errorf("expected artist match, got %q", out)
		}
	})

	t.Run("search unknown scope fails", func(t *testing.T) {
		runner, _ := newTestRunner(t)
		seed(t, runner)

		_, err := runCommand(t, runner, "search", "--scope", "albums", "x")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("search without query fails", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		_, err := runCommand(t, runner, "search")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("suggest artists", func(t *testing.T) {
		runner, _ := newTestRunner(t)
		seed(t, runner)

		out, err := runCommand(t, runner, "suggest", "artist", "lin")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "Linkin Park") {
			t.Errorf("expected suggestion, got %q", out)
		}
		if strings.Contains(out, "Queen") {
			t.Errorf("expected only matching names, got %q", out)
		}
	})

	t.Run("suggest genre with empty partial lists all", func(t *testing.T) {
		runner, _ := newTestRunner(t)
		seed(t, runner)

		out, err := runCommand(t, runner, "suggest", "genre")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "Rock") {
			t.Errorf("expected all genres, got %q", out)
		}
	})

	t.Run("stats reports counts", func(t *testing.T) {
		runner, _ := newTestRunner(t)
		seed(t, runner)

		out, err := runCommand(t, runner, "stats")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "Songs:   3") || !strings.Contains(out, "Artists: 2") || !strings.Contains(out, "Genres:  1") {
			t.Errorf("unexpected stats: %q", out)
		}
	})

	t.Run("stats json outputs parseable counts", func(t *testing.T) {
		runner, _ := newTestRunner(t)
		seed(t, runner)

		out, err := runCommand(t, runner, "stats", "--json")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var stats models.CatalogStats
		if err := json.Unmarshal([]byte(out), &stats); err != nil {
			t.Fatalf("expected valid JSON, got %q: %v", out, err)
		}
		if stats.SongCount != 3 || stats.ArtistCount != 2 || stats.GenreCount != 1 {
			t.Errorf("unexpected stats: %+v", stats)
		}
	})
}

func TestPlayCommand(t *testing.T) {
	t.Run("plays the whole catalog", func(t *testing.T) {
		runner, fake := newTestRunner(t)

		for _, args := range [][]string{
			{"add", "--artist", "Queen", "--genre", "Rock", "Bohemian Rhapsody", "https://example.com/br"},
			{"add", "--artist", "Linkin Park", "--genre", "Rock", "In the End", "https://example.com/ite"},
		} {
			if _, err := runCommand(t, runner, args...); err != nil {
				t.Fatalf("seed failed: %v", err)
			}
		}

		out, err := runCommand(t, runner, "play")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		played := fake.Played()
		if len(played) != 2 {
			t.Fatalf("expected 2 items played, got %d", len(played))
		}
		if played[0].Title != "Bohemian Rhapsody" || played[1].Title != "In the End" {
			t.Errorf("unexpected play order: %+v", played)
		}
		if !strings.Contains(out, "2 played, 0 failed") {
			t.Errorf("unexpected summary: %q", out)
		}
	})

	t.Run("plays one artist", func(t *testing.T) {
		runner, fake := newTestRunner(t)

		for _, args := range [][]string{
			{"add", "--artist", "Queen", "--genre", "Rock", "Bohemian Rhapsody", "https://example.com/br"},
			{"add", "--artist", "Linkin Park", "--genre", "Rock", "In the End", "https://example.com/ite"},
		} {
			if _, err := runCommand(t, runner, args...); err != nil {
				t.Fatalf("seed failed: %v", err)
			}
		}

		if _, err := runCommand(t, runner, "play", "--artist", "Queen"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		played := fake.Played()
		if len(played) != 1 || played[0].Title != "Bohemian Rhapsody" {
			t.Errorf("expected only Queen songs, got %+v", played)
		}
	})

	t.Run("empty catalog is a no-op", func(t *testing.T) {
		runner, fake := newTestRunner(t)

		out, err := runCommand(t, runner, "play")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "Nothing to play") {
			t.Errorf("expected no-op message, got %q", out)
		}
		if len(fake.Played()) != 0 {
			t.Error("expected no items played")
		}
	})

	t.Run("failed item does not stop the queue", func(t *testing.T) {
		runner, fake := newTestRunner(t)
		fake.FailURLs["https://example.com/br"] = true

		for _, args := range [][]string{
			{"add", "--artist", "Queen", "--genre", "Rock", "Bohemian Rhapsody", "https://example.com/br"},
			{"add", "--artist", "Linkin Park", "--genre", "Rock", "In the End", "https://example.com/ite"},
		} {
			if _, err := runCommand(t, runner, args...); err != nil {
				t.Fatalf("seed failed: %v", err)
			}
		}

		out, err := runCommand(t, runner, "play")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "1 played, 1 failed") {
			t.Errorf("unexpected summary: %q", out)
		}

		played := fake.Played()
		if len(played) != 1 || played[0].Title != "In the End" {
			t.Errorf("expected second item played, got %+v", played)
		}
	})

	t.Run("unknown artist fails", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		_, err := runCommand(t, runner, "play", "--artist", "Nobody")
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestExportCommand(t *testing.T) {
	seed := func(t *testing.T, runner *Runner) {
		t.Helper()
		if _, err := runCommand(t, runner, "add", "--artist", "Linkin Park", "--genre", "Rock", "Numb", "https://example.com/numb"); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
		runner.output.(*bytes.Buffer).Reset()
	}

	t.Run("exports json to a file", func(t *testing.T) {
		runner, _ := newTestRunner(t)
		seed(t, runner)

		path := filepath.Join(t.TempDir(), "catalog.json")
		out, err := runCommand(t, runner, "export", "--format", "json", "--output", path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "Exported 1 song(s)") {
			t.Errorf("unexpected summary: %q", out)
		}

		tu.AssertFileExists(t, path)
		content := tu.MustReadFile(t, path)
		if !strings.Contains(content, "Numb") {
			t.Errorf("expected exported song, got %q", content)
		}
	})

	t.Run("exports csv to a file", func(t *testing.T) {
		runner, _ := newTestRunner(t)
		seed(t, runner)

		path := filepath.Join(t.TempDir(), "catalog.csv")
		if _, err := runCommand(t, runner, "export", "--format", "csv", "--output", path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		content := tu.MustReadFile(t, path)
		if !strings.Contains(content, "Title") || !strings.Contains(content, "Numb") {
			t.Errorf("unexpected csv content: %q", content)
		}
	})

	t.Run("unknown format fails", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		_, err := runCommand(t, runner, "export", "--format", "xml")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}
