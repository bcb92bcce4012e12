// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow over the song catalog:
//  1. [SongListView] : Browse and filter cataloged songs
//  2. [ConfirmView] : Confirm a playback selection
//  3. [PlayingView] : Monitor queue progress in real time
//  4. [ResultView] : Display played/failed counts per run
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the playback QueueEngine, providing non-blocking status reporting while songs play.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
