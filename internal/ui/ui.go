package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/crate/internal/catalog"
	"github.com/desertthunder/crate/internal/models"
	"github.com/desertthunder/crate/internal/playback"
	"github.com/desertthunder/crate/internal/playlist"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SongListView ViewState = iota
	ConfirmView
	PlayingView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	catalog      *catalog.Service
	builder      *playlist.Builder
	engine       *playback.QueueEngine
	opts         playback.Options
	width        int
	height       int
	songList     list.Model
	songs        []*models.Song
	pendingItems []models.PlayableItem
	pendingLabel string
	progressChan chan playback.ProgressUpdate
	resultChan   chan playbackCompleteMsg
	progress     playback.ProgressUpdate
	result       *playback.RunResult
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, svc *catalog.Service, builder *playlist.Builder, engine *playback.QueueEngine, opts playback.Options) *Model {
	return &Model{
		ctx:     ctx,
		view:    SongListView,
		catalog: svc,
		builder: builder,
		engine:  engine,
		opts:    opts,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init initializes the TUI by loading songs from the catalog.
func (m *Model) Init() tea.Cmd {
	return m.fetchSongs()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.songList.Width() == 0 {
			m.songList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case SongListView:
			return m.handleSongListKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case PlayingView:
			return m.handlePlayingKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case songsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.songs = msg.songs
		items := make([]list.Item, len(msg.songs))
		for i, song := range msg.songs {
			items[i] = songItem{song: song}
		}
		m.songList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.songList.Title = "Cataloged Songs"
		m.songList.SetSize(m.width-4, m.height-8)
		return m, nil

	case progressUpdateMsg:
		m.progress = playback.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case playbackCompleteMsg:
		m.result = msg.result
		m.err = msg.err
		m.view = ResultView
		m.progressChan = nil
		m.resultChan = nil
		return m, nil
	}

	return m.updateList(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case SongListView:
		return m.renderSongList()
	case ConfirmView:
		return m.renderConfirm()
	case PlayingView:
		return m.renderPlaying()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleSongListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		selected := m.songList.SelectedItem()
		if selected != nil {
			if it, ok := selected.(songItem); ok {
				m.pendingItems = []models.PlayableItem{it.song.Playable()}
				m.pendingLabel = fmt.Sprintf("%s - %s", it.song.Artist, it.song.Title)
				m.view = ConfirmView
				return m, nil
			}
		}
	case "a":
		items, err := m.builder.BuildAll()
		if err != nil {
			m.err = err
			return m, nil
		}
		m.pendingItems = items
		m.pendingLabel = fmt.Sprintf("all %d song(s)", len(items))
		m.view = ConfirmView
		return m, nil
	}

	var cmd tea.Cmd
	m.songList, cmd = m.songList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		m.view = SongListView
		m.pendingItems = nil
		return m, nil
	case "y":
		m.view = PlayingView
		return m, m.startPlayback()
	}
	return m, nil
}

func (m *Model) handlePlayingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.view = SongListView
		m.pendingItems = nil
		m.result = nil
		m.err = nil
		return m, m.fetchSongs()
	}
	return m, nil
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.view == SongListView {
		m.songList, cmd = m.songList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchSongs() tea.Cmd {
	return func() tea.Msg {
		songs, err := m.catalog.Songs()
		return songsFetchedMsg{songs: songs, err: err}
	}
}

// startPlayback runs the queue in a goroutine. The final result travels
// over resultChan rather than being written to the model directly, so the
// Update loop stays the only writer of model state.
func (m *Model) startPlayback() tea.Cmd {
	m.progressChan = make(chan playback.ProgressUpdate, 50)
	m.resultChan = make(chan playbackCompleteMsg, 1)

	items := m.pendingItems
	progress := m.progressChan
	done := m.resultChan

	go func() {
		result, err := m.engine.Run(m.ctx, progress, items, m.opts)
		done <- playbackCompleteMsg{result: result, err: err}
		close(progress)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	progress := m.progressChan
	done := m.resultChan

	return func() tea.Msg {
		if progress == nil {
			return playbackCompleteMsg{result: m.result, err: m.err}
		}

		update, ok := <-progress
		if !ok {
			return <-done
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderSongList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.all, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.songList.View(), helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Play %s?", m.pendingLabel))
	info := fmt.Sprintf("\nQueue: %d item(s)\n", len(m.pendingItems))

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderPlaying() string {
	title := styles.title.Render("Playing Queue")

	var phase string
	switch m.progress.Phase {
	case playback.QueueStart:
		phase = fmt.Sprintf("Starting queue of %d song(s)...", m.progress.Total)
	case playback.PlayItem:
		phase = fmt.Sprintf("Playing (%d/%d)", m.progress.Step, m.progress.Total)
	case playback.ItemDone, playback.ItemFailed:
		phase = fmt.Sprintf("Finished (%d/%d)", m.progress.Step, m.progress.Total)
	default:
		phase = "Waiting for player..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Playback failed: %v\n\nPress r to go back, q to quit", m.err))
	}

	if m.result == nil {
		return styles.err.Render("No result available\n\nPress r to go back, q to quit")
	}

	title := styles.ok.Render("✓ Queue Finished")
	if m.result.Stopped {
		title = styles.warn.Render("Queue Stopped")
	}
	info := fmt.Sprintf("\nPlayed: %d\nFailed: %d\n", m.result.Played, m.result.Failed)

	var failed string
	if m.result.Failed > 0 {
		failed = fmt.Sprintf("\n%s", styles.warn.Render("Failed items:"))
		for _, item := range m.result.Results {
			if item.Err != nil {
				failed += fmt.Sprintf("\n  • %s", item.Item.Title)
			}
		}
		failed += "\n"
	}

	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s%s\n%s", title, info, failed, helpView)
}
