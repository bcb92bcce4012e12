package ui

import (
	"github.com/desertthunder/crate/internal/models"
	"github.com/desertthunder/crate/internal/playback"
)

// songsFetchedMsg carries the catalog listing loaded on startup.
type songsFetchedMsg struct {
	songs []*models.Song
	err   error
}

// progressUpdateMsg wraps one queue progress event.
type progressUpdateMsg playback.ProgressUpdate

// playbackCompleteMsg carries the final result of a queue run.
type playbackCompleteMsg struct {
	result *playback.RunResult
	err    error
}
