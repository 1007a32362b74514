// Package ui implements the episodes screen: a horizontally paged row of
// episode tiles above a player panel.
//
// State flows down from the view model as snapshots and events flow up as
// calls to OnPlaySelected. Every frame is derived from the latest snapshot
// plus the focus position; nothing else is remembered between frames.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"portal/internal/episodes"
	"portal/internal/media"
	"portal/internal/player"
)

// prefetchDistance is how close to the last loaded tile focus may get
// before the next page is requested.
const prefetchDistance = 3

// fadeDuration is how long the panel's cross-fade frame lasts.
const fadeDuration = 150 * time.Millisecond

// ViewModel is what the screen needs from the episodes view model.
type ViewModel interface {
	State() episodes.State
	Subscribe(fn func(episodes.State)) (unsubscribe func())
	OnPlaySelected(url string)
	LoadMore(ctx context.Context) error
}

// Recorder stores watch history.
type Recorder interface {
	Record(ctx context.Context, entry media.HistoryEntry) error
}

// Options configures the screen. Desktop is resolved once at startup.
type Options struct {
	Desktop bool
	Player  player.Player // nil disables external playback
	History Recorder      // nil disables history
}

// playback is the external player session for the current selection.
type playback struct {
	id      int
	url     string
	episode media.Episode
	cancel  context.CancelFunc
	status  string
}

// Screen is the root model of the episodes screen.
type Screen struct {
	vm   ViewModel
	opts Options
	size SizeHint

	ctx         context.Context
	cancel      context.CancelFunc
	updates     chan episodes.State
	unsubscribe func()

	state  episodes.State
	focus  int
	offset int
	width  int
	height int

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	fading    bool
	activated media.Episode // last tile played from this screen
	session   playback
	sessions int
	status   string
}

// NewScreen creates the screen and subscribes it to vm.
func NewScreen(vm ViewModel, opts Options) *Screen {
	ctx, cancel := context.WithCancel(context.Background())

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPortal)

	m := &Screen{
		vm:      vm,
		opts:    opts,
		size:    SizeFor(opts.Desktop),
		ctx:     ctx,
		cancel:  cancel,
		updates: make(chan episodes.State, 1),
		state:   vm.State(),
		width:   80,
		keys:    newKeyMap(),
		help:    help.New(),
		spinner: s,
	}
	m.unsubscribe = vm.Subscribe(m.push)
	return m
}

// push delivers a snapshot to the update loop. Only the latest snapshot
// matters, so an undelivered older one is replaced.
func (m *Screen) push(st episodes.State) {
	for {
		select {
		case m.updates <- st:
			return
		default:
		}
		select {
		case <-m.updates:
		default:
		}
	}
}

func (m *Screen) waitForState() tea.Cmd {
	updates := m.updates
	ctx := m.ctx
	return func() tea.Msg {
		select {
		case st := <-updates:
			return stateMsg(st)
		case <-ctx.Done():
			return nil
		}
	}
}

func (m *Screen) loadMore() tea.Cmd {
	vm, ctx := m.vm, m.ctx
	return func() tea.Msg {
		if err := vm.LoadMore(ctx); err != nil {
			return loadErrMsg{Err: err}
		}
		return nil
	}
}

// Init implements tea.Model.
func (m *Screen) Init() tea.Cmd {
	return tea.Batch(
		m.waitForState(),
		m.spinner.Tick,
		m.loadMore(),
	)
}

// Update implements tea.Model.
func (m *Screen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.scrollToFocus()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case stateMsg:
		return m, tea.Batch(m.applyState(episodes.State(msg)), m.waitForState())

	case loadErrMsg:
		m.status = msg.Err.Error()
		return m, nil

	case fadeDoneMsg:
		m.fading = false
		return m, nil

	case playbackEndedMsg:
		return m, m.handlePlaybackEnded(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// applyState adopts a snapshot. Side effects (fade, player launch) only
// happen when PlayVideo actually changes, so repeated snapshots are inert.
func (m *Screen) applyState(st episodes.State) tea.Cmd {
	prev := m.state.Playing()
	prevURL := m.state.PlayVideo
	m.state = st

	if n := len(st.Episodes.Items); m.focus >= n && n > 0 {
		m.focus = n - 1
	}
	if st.Episodes.Err == nil {
		m.status = ""
	}

	var cmds []tea.Cmd
	if st.PlayVideo != prevURL {
		if st.Playing() != prev {
			m.fading = true
			cmds = append(cmds, tea.Tick(fadeDuration, func(time.Time) tea.Msg { return fadeDoneMsg{} }))
		}
		cmds = append(cmds, m.syncPlayback())
	}
	cmds = append(cmds, m.maybePrefetch())
	return tea.Batch(cmds...)
}

// syncPlayback stops the running player and starts one for the current
// selection, if any.
func (m *Screen) syncPlayback() tea.Cmd {
	if m.session.cancel != nil {
		m.session.cancel()
	}
	m.session = playback{}

	url := m.state.PlayVideo
	if !m.state.Playing() {
		return nil
	}

	m.sessions++
	ep := m.episodeFor(url)
	m.session = playback{id: m.sessions, url: url, episode: ep}

	p := m.opts.Player
	if p == nil {
		return nil
	}
	if !p.Available() {
		m.session.status = fmt.Sprintf("%s not found in PATH", p.Name())
		return nil
	}

	ctx, cancel := context.WithCancel(m.ctx)
	m.session.cancel = cancel
	m.session.status = "playing in " + p.Name()

	id := m.session.id
	req := player.Request{
		URL:    url,
		Title:  episodeTitle(ep),
		Width:  m.size.Width,
		Height: m.size.Height,
	}
	logrus.WithFields(logrus.Fields{"player": p.Name(), "url": url}).Debug("starting playback")

	return func() tea.Msg {
		res, err := p.Play(ctx, req)
		return playbackEndedMsg{Session: id, Episode: ep, URL: url, Result: res, Err: err}
	}
}

func (m *Screen) handlePlaybackEnded(msg playbackEndedMsg) tea.Cmd {
	if msg.Err != nil {
		logrus.WithError(msg.Err).Warn("playback failed")
	}
	if msg.Session == m.session.id {
		if msg.Err != nil {
			m.session.status = msg.Err.Error()
		} else {
			m.session.status = "player closed, press x to close the video"
		}
	}

	h := m.opts.History
	if h == nil || msg.Err != nil || msg.Episode.Episode == "" {
		return nil
	}
	entry := media.HistoryEntry{
		Code:      msg.Episode.Episode,
		Name:      msg.Episode.Name,
		VideoURL:  msg.URL,
		Position:  msg.Result.Position,
		Duration:  msg.Result.Duration,
		WatchedAt: time.Now(),
	}
	ctx := m.ctx
	return func() tea.Msg {
		if err := h.Record(ctx, entry); err != nil {
			logrus.WithError(err).Warn("recording history")
		}
		return nil
	}
}

func (m *Screen) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.shutdown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.left):
		if m.focus > 0 {
			m.focus--
			m.scrollToFocus()
		}
		return m, nil

	case key.Matches(msg, m.keys.right):
		if m.focus < len(m.state.Episodes.Items)-1 {
			m.focus++
			m.scrollToFocus()
		}
		return m, m.maybePrefetch()

	case key.Matches(msg, m.keys.play):
		if item, ok := m.focusedItem(); ok {
			m.activated = item.Episode
			item.Activate()
		}
		return m, nil

	case key.Matches(msg, m.keys.close):
		m.panel().Close()
		return m, nil

	case key.Matches(msg, m.keys.retry):
		if m.state.Episodes.Err != nil && !m.state.Episodes.Loading {
			m.status = ""
			return m, m.loadMore()
		}
		return m, nil

	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m, nil
}

// shutdown stops playback and detaches from the view model.
func (m *Screen) shutdown() {
	if m.session.cancel != nil {
		m.session.cancel()
	}
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.cancel()
}

func (m *Screen) maybePrefetch() tea.Cmd {
	eps := m.state.Episodes
	if eps.Loading || eps.Done || eps.Err != nil {
		return nil
	}
	if len(eps.Items) > 0 && m.focus < len(eps.Items)-prefetchDistance {
		return nil
	}
	return m.loadMore()
}

func (m *Screen) focusedItem() (EpisodeItem, bool) {
	items := m.state.Episodes.Items
	if m.focus < 0 || m.focus >= len(items) {
		return EpisodeItem{}, false
	}
	return m.item(items[m.focus]), true
}

func (m *Screen) item(ep media.Episode) EpisodeItem {
	return EpisodeItem{Episode: ep, OnSelected: m.vm.OnPlaySelected}
}

func (m *Screen) panel() PlayerPanel {
	status := ""
	if m.session.url == m.state.PlayVideo {
		status = m.session.status
	}
	return PlayerPanel{
		PlayVideo: m.state.PlayVideo,
		Size:      m.size,
		Status:    status,
		OnClose:   func() { m.vm.OnPlaySelected("") },
	}
}

// episodeFor finds the episode behind url. Several episodes can share one
// video (season-wide links), so the tile last played here wins, then the
// focused tile, then the first match.
func (m *Screen) episodeFor(url string) media.Episode {
	if m.activated.VideoURL == url && m.activated.Episode != "" {
		return m.activated
	}
	if item, ok := m.focusedItem(); ok && item.Episode.VideoURL == url {
		return item.Episode
	}
	for _, ep := range m.state.Episodes.Items {
		if ep.VideoURL == url {
			return ep
		}
	}
	return media.Episode{}
}

func episodeTitle(ep media.Episode) string {
	switch {
	case ep.Episode != "" && ep.Name != "" && ep.Name != ep.Episode:
		return ep.Episode + " " + ep.Name
	case ep.Episode != "":
		return ep.Episode
	case ep.Name != "":
		return ep.Name
	default:
		return "portal"
	}
}

// visibleTiles is how many tiles fit across the terminal.
func (m *Screen) visibleTiles() int {
	n := m.width / (tileWidth + 2)
	if n < 1 {
		return 1
	}
	return n
}

func (m *Screen) scrollToFocus() {
	visible := m.visibleTiles()
	if m.focus < m.offset {
		m.offset = m.focus
	}
	if m.focus >= m.offset+visible {
		m.offset = m.focus - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// View implements tea.Model.
func (m *Screen) View() string {
	var b strings.Builder

	b.WriteString("\n " + TitleStyle.Render("Episodes"))
	if n := len(m.state.Episodes.Items); n > 0 {
		b.WriteString(StatusStyle.Render(fmt.Sprintf("%d/%d", m.focus+1, n)))
	}
	b.WriteString("\n\n")

	b.WriteString(m.rowView())
	b.WriteString("\n")

	panel := m.panel().View(m.width)
	if m.fading {
		panel = FadeStyle.Render(panel)
	}
	b.WriteString(panel)
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(ErrorStyle.Render(m.status) + "\n")
	}
	b.WriteString(" " + m.help.View(m.keys))

	return b.String()
}

// rowView renders the visible window of the paged row.
func (m *Screen) rowView() string {
	eps := m.state.Episodes

	if len(eps.Items) == 0 {
		switch {
		case eps.Err != nil:
			return ErrorStyle.Render("Couldn't load episodes. Press r to retry.")
		case eps.Done:
			return StatusStyle.Render("No episodes.")
		default:
			return m.loadingView()
		}
	}

	visible := m.visibleTiles()
	end := m.offset + visible
	if end > len(eps.Items) {
		end = len(eps.Items)
	}

	tiles := make([]string, 0, visible+1)
	for i := m.offset; i < end; i++ {
		tiles = append(tiles, m.item(eps.Items[i]).View(i == m.focus))
	}
	if eps.Loading && end == len(eps.Items) && len(tiles) < visible {
		tiles = append(tiles, TileStyle.Render(m.spinner.View()))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}

func (m *Screen) loadingView() string {
	return lipgloss.NewStyle().
		Padding(2, 2).
		Render(m.spinner.View() + " Loading episodes…")
}
