package ui

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/mlbv/internal/models"
	"github.com/desertthunder/mlbv/internal/services"
	"github.com/desertthunder/mlbv/internal/shared"
	"github.com/desertthunder/mlbv/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	GameListView ViewState = iota
	ResolvingView
	ResultView
)

// PlayRequest describes the game picked in the list.
//
// Feed is nil when the default feed for Team should be used.
type PlayRequest struct {
	Game  models.GameRecord
	Team  models.Team
	Media models.MediaType
	Feed  *models.FeedType
}

// PlayFunc resolves and plays req, reporting progress on the channel. It returns the URL that was played.
type PlayFunc func(ctx context.Context, req PlayRequest, progress chan<- tasks.ProgressUpdate) (string, error)

// Opts configures [NewModel].
type Opts struct {
	Schedule      services.ScheduleService
	Play          PlayFunc
	Date          time.Time
	Favorites     []string // team codes
	FavoriteColor string
	Location      *time.Location
}

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	schedule     services.ScheduleService
	play         PlayFunc
	date         time.Time
	favorites    []string
	loc          *time.Location
	width        int
	height       int
	games        list.Model
	ready        bool
	spinner      spinner.Model
	progressChan chan tasks.ProgressUpdate
	done         chan playResult
	progress     tasks.ProgressUpdate
	audio        bool
	feed         *models.FeedType
	url          string
	err          error
	help         help.Model
	keys         keyMap
}

var feedCycle = []*models.FeedType{nil, feedPtr(models.FeedHome), feedPtr(models.FeedAway), feedPtr(models.FeedNetwork)}

func feedPtr(f models.FeedType) *models.FeedType { return &f }

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, opts Opts) *Model {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	styles = styles.WithFavorite(opts.FavoriteColor)

	var favorites []string
	for _, code := range opts.Favorites {
		if team, err := models.ParseTeamCode(code); err == nil {
			favorites = append(favorites, team.Name)
		}
	}

	return &Model{
		ctx:       ctx,
		view:      GameListView,
		schedule:  opts.Schedule,
		play:      opts.Play,
		date:      opts.Date,
		favorites: favorites,
		loc:       loc,
		width:     80,
		height:    24,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init initializes the TUI by fetching the day's schedule.
func (m *Model) Init() tea.Cmd {
	return m.fetchSchedule()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.ready {
			m.games.SetSize(msg.Width-4, msg.Height-6)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case GameListView:
			return m.handleListKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		default:
			if key.Matches(msg, m.keys.quit) {
				return m, tea.Quit
			}
			return m, nil
		}

	case spinner.TickMsg:
		if m.view != ResolvingView {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateList(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgScheduleFetched:
		res := msg.data.(scheduleResult)
		if res.err != nil {
			m.err = res.err
			return m, nil
		}
		m.setGames(res.day)
		return m, nil

	case MsgProgressUpdate:
		m.progress = msg.data.(tasks.ProgressUpdate)
		return m, m.waitForProgress()

	case MsgPlayed:
		res := msg.data.(playResult)
		m.url = res.url
		m.err = res.err
		m.view = ResultView
		m.progressChan = nil
		m.done = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) setGames(day *models.DaySchedule) {
	var items []list.Item
	if day != nil {
		for _, g := range day.Games {
			fav := slices.Contains(m.favorites, g.Teams.Home.Team.Name) || slices.Contains(m.favorites, g.Teams.Away.Team.Name)
			items = append(items, gameItem{game: g, favorite: fav, loc: m.loc})
		}
	}

	m.games = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-6)
	m.games.Title = "Games on " + m.date.Format("Mon Jan 2, 2006")
	m.games.SetShowHelp(false)
	m.games.Styles.Title = styles.title
	m.ready = true
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case GameListView:
		return m.renderGameList()
	case ResolvingView:
		return m.renderResolving()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.ready {
		if key.Matches(msg, m.keys.quit) {
			return m, tea.Quit
		}
		return m, nil
	}
	if m.games.FilterState() == list.Filtering {
		return m.updateList(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.audio):
		m.audio = !m.audio
		return m, nil
	case key.Matches(msg, m.keys.feed):
		m.feed = nextFeed(m.feed)
		return m, nil
	case key.Matches(msg, m.keys.enter):
		item, ok := m.games.SelectedItem().(gameItem)
		if !ok {
			return m, nil
		}
		req, err := m.request(item.game)
		if err != nil {
			m.err = err
			m.view = ResultView
			return m, nil
		}
		m.view = ResolvingView
		m.err = nil
		m.url = ""
		m.progress = tasks.ProgressUpdate{}
		return m, tea.Batch(m.spinner.Tick, m.startPlayback(req))
	}

	return m.updateList(msg)
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.enter):
		m.view = GameListView
		m.err = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.ready || m.view != GameListView {
		return m, nil
	}
	var cmd tea.Cmd
	m.games, cmd = m.games.Update(msg)
	return m, cmd
}

// request picks the team whose perspective is used: a favorite when one is playing, the home side otherwise.
func (m *Model) request(game models.GameRecord) (PlayRequest, error) {
	name := game.Teams.Home.Team.Name
	if slices.Contains(m.favorites, game.Teams.Away.Team.Name) && !slices.Contains(m.favorites, name) {
		name = game.Teams.Away.Team.Name
	}

	team, ok := models.TeamByName(name)
	if !ok {
		return PlayRequest{}, fmt.Errorf("%w: unknown team %q", shared.ErrInvalidTeam, name)
	}
	return PlayRequest{Game: game, Team: team, Media: models.MediaTypeFor(m.audio), Feed: m.feed}, nil
}

func nextFeed(current *models.FeedType) *models.FeedType {
	for i, f := range feedCycle {
		if (f == nil && current == nil) || (f != nil && current != nil && *f == *current) {
			return feedCycle[(i+1)%len(feedCycle)]
		}
	}
	return nil
}

func (m *Model) fetchSchedule() tea.Cmd {
	return func() tea.Msg {
		day, err := m.schedule.FetchScheduleByDate(m.ctx, m.date, nil)
		return scheduleFetchedMsg(day, err)
	}
}

func (m *Model) startPlayback(req PlayRequest) tea.Cmd {
	progress := make(chan tasks.ProgressUpdate, 16)
	done := make(chan playResult, 1)
	m.progressChan = progress
	m.done = done

	go func() {
		url, err := m.play(m.ctx, req, progress)
		close(progress)
		done <- playResult{url, err}
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	progress, done := m.progressChan, m.done
	return func() tea.Msg {
		if progress == nil {
			return playedMsg(m.url, m.err)
		}

		update, ok := <-progress
		if !ok {
			res := <-done
			return playedMsg(res.url, res.err)
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) settings() string {
	media := "video"
	if m.audio {
		media = "audio"
	}
	feed := "default"
	if m.feed != nil {
		feed = m.feed.Label()
	}
	return styles.help.Render(fmt.Sprintf("media: %s • feed: %s", media, feed))
}

func (m *Model) renderGameList() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}
	if !m.ready {
		return "Loading schedule...\n"
	}
	if len(m.games.Items()) == 0 {
		return styles.warn.Render(fmt.Sprintf("No games on %s\n\nPress q to quit", m.date.Format(shared.DateLayout)))
	}
	return fmt.Sprintf("%s\n%s\n%s", m.games.View(), m.settings(), m.help.ShortHelpView(m.keys.ShortHelp()))
}

func (m *Model) renderResolving() string {
	message := m.progress.Message
	if message == "" {
		message = "Resolving..."
	}
	step := ""
	if m.progress.Total > 0 {
		step = fmt.Sprintf(" (%d/%d)", m.progress.Step, m.progress.Total)
	}
	return fmt.Sprintf("%s %s%s\n\n%s", m.spinner.View(), message, step, m.help.ShortHelpView([]key.Binding{m.keys.quit}))
}

func (m *Model) renderResult() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Playback failed: %v", m.err)) + "\n\n" + helpView
	}
	if m.url == "" {
		return styles.warn.Render("Nothing to play for this game") + "\n\n" + helpView
	}
	return fmt.Sprintf("%s\n%s\n\n%s", styles.ok.Render("✓ Playing"), m.url, helpView)
}

// Err returns the last error shown by the model.
func (m *Model) Err() error {
	return m.err
}
