package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/crate/internal/formatter"
	"github.com/desertthunder/crate/internal/shared"
	"github.com/urfave/cli/v3"
)

// Export writes the catalog, optionally filtered by artist or genre, to a
// file in the requested format.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	output := cmd.String("output")

	svc, closer, err := r.openCatalog(cmd)
	if err != nil {
		return err
	}
	defer closer()

	songs, err := listSongs(svc, cmd.String("artist"), cmd.String("genre"))
	if err != nil {
		return fmt.Errorf("failed to list songs: %w", err)
	}

	var path string
	switch format {
	case "json":
		path, err = formatter.WriteJSONExport(songs, output)
	case "csv":
		path, err = formatter.WriteCSVExport(songs, output)
	case "txt", "text":
		path, err = formatter.WriteTextExport(songs, output)
	default:
		return fmt.Errorf("%w: unknown export format %q, expected json, csv or txt", shared.ErrInvalidArgument, format)
	}
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	r.writePlain("✓ Exported %d song(s) to %s\n", len(songs), path)
	return nil
}
