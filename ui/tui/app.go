package tui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"ecosoap/internal/auth"
	"ecosoap/internal/config"
	"ecosoap/internal/logging"
	"ecosoap/internal/model"
	"ecosoap/internal/output"
	"ecosoap/internal/store"
	"ecosoap/ui/tui/components"
	"ecosoap/ui/tui/state"
	"ecosoap/ui/tui/styles"
	"ecosoap/ui/tui/views"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	zone "github.com/lrstanley/bubblezone"
)

// DataSource is the part of the store the console reads and writes.
type DataSource interface {
	PropertiesForUser(ctx context.Context, userID uuid.UUID) ([]model.Property, error)
	PickupsForProperty(ctx context.Context, propertyID uuid.UUID) ([]model.Pickup, error)
	PickupSummary(ctx context.Context, propertyID uuid.UUID) (*store.Summary, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, p store.Profile) (*model.User, error)
}

// MainModel is the Bubble Tea Model acting as the Controller
type MainModel struct {
	cfg      config.Config
	data     DataSource
	provider auth.IdentityProvider
	session  *auth.Session
	log      *slog.Logger

	state    state.AppState
	spinner  spinner.Model
	help     help.Model
	selector *components.PropertySelector
	chart    *components.PickupChart

	loginInputs   []textinput.Model
	profileInputs []textinput.Model
	focus         int

	// commands produced by session events, flushed at the end of Update
	queued []tea.Cmd

	quitting bool
	width    int
	height   int
}

// Messages
type AnimateMsg time.Time

type LoginResultMsg struct {
	User *model.User
	Err  error
}

type PropertiesLoadedMsg struct {
	UserID     uuid.UUID
	Properties []model.Property
	Err        error
}

type HistoryLoadedMsg struct {
	PropertyID uuid.UUID
	History    *output.HistoryView
	Err        error
}

type ProfileSavedMsg struct {
	User *model.User
	Err  error
}

func NewMainModel(cfg config.Config, data DataSource, provider auth.IdentityProvider, log *slog.Logger) *MainModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.BrandColor)

	m := &MainModel{
		cfg:      cfg,
		data:     data,
		provider: provider,
		session:  auth.NewSession(provider),
		log:      logging.OrDiscard(log),
		spinner:  s,
		help:     help.New(),
		chart:    components.NewPickupChart(30, 10, cfg.ChartMonths),
		state:    state.AppState{Page: state.PageLogin},
	}
	m.session.Subscribe(m.handleSessionEvent)
	m.loginInputs = newLoginInputs()
	m.profileInputs = newProfileInputs()
	return m
}

func newLoginInputs() []textinput.Model {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 72

	return []textinput.Model{username, password}
}

func newProfileInputs() []textinput.Model {
	placeholders := []string{"First name", "Last name", "name@example.com", "Phone"}
	inputs := make([]textinput.Model, len(placeholders))
	for i, p := range placeholders {
		inputs[i] = textinput.New()
		inputs[i].Placeholder = p
		inputs[i].CharLimit = 128
	}
	return inputs
}

func (m *MainModel) Init() tea.Cmd {
	zone.NewGlobal()
	return tea.Batch(
		m.spinner.Tick,
		textinput.Blink,
		m.animateCmd(),
	)
}

// Commands
func (m *MainModel) animateCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(max(m.cfg.AnimationFPS, 1)), func(t time.Time) tea.Msg {
		return AnimateMsg(t)
	})
}

func (m *MainModel) context() (context.Context, context.CancelFunc) {
	if m.cfg.DBTimeout.Duration > 0 {
		return context.WithTimeout(context.Background(), m.cfg.DBTimeout.Duration)
	}
	return context.WithCancel(context.Background())
}

func (m *MainModel) loginCmd(username, password string) tea.Cmd {
	provider := m.provider
	return func() tea.Msg {
		ctx, cancel := m.context()
		defer cancel()
		u, err := provider.Authenticate(ctx, username, password)
		return LoginResultMsg{User: u, Err: err}
	}
}

func (m *MainModel) loadPropertiesCmd(userID uuid.UUID) tea.Cmd {
	data := m.data
	return func() tea.Msg {
		ctx, cancel := m.context()
		defer cancel()
		props, err := data.PropertiesForUser(ctx, userID)
		return PropertiesLoadedMsg{UserID: userID, Properties: props, Err: err}
	}
}

func (m *MainModel) loadHistoryCmd(p model.Property) tea.Cmd {
	data := m.data
	return func() tea.Msg {
		ctx, cancel := m.context()
		defer cancel()

		pickups, err := data.PickupsForProperty(ctx, p.ID)
		if err != nil {
			return HistoryLoadedMsg{PropertyID: p.ID, Err: err}
		}
		summary, err := data.PickupSummary(ctx, p.ID)
		if err != nil {
			return HistoryLoadedMsg{PropertyID: p.ID, Err: err}
		}
		view := output.BuildHistory(p, pickups, summary)
		return HistoryLoadedMsg{PropertyID: p.ID, History: &view}
	}
}

func (m *MainModel) saveProfileCmd(userID uuid.UUID, p store.Profile) tea.Cmd {
	data := m.data
	return func() tea.Msg {
		ctx, cancel := m.context()
		defer cancel()
		u, err := data.UpdateProfile(ctx, userID, p)
		return ProfileSavedMsg{User: u, Err: err}
	}
}

func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.route(msg)
	return next, tea.Batch(cmd, m.flush())
}

func (m *MainModel) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case AnimateMsg:
		return m.handleAnimateMsg(msg)

	case tea.WindowSizeMsg:
		return m.handleWindowSizeMsg(msg)

	case LoginResultMsg:
		return m.handleLoginResultMsg(msg)

	case PropertiesLoadedMsg:
		return m.handlePropertiesLoadedMsg(msg)

	case HistoryLoadedMsg:
		return m.handleHistoryLoadedMsg(msg)

	case ProfileSavedMsg:
		return m.handleProfileSavedMsg(msg)

	case components.PropertyChangedMsg:
		return m.handlePropertyChangedMsg(msg)

	case components.TimerFiredMsg:
		if m.selector == nil {
			return m, nil
		}
		_, cmd := m.selector.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)
	}

	return m, m.updateFocusedInput(msg)
}

func (m *MainModel) flush() tea.Cmd {
	if len(m.queued) == 0 {
		return nil
	}
	cmds := m.queued
	m.queued = nil
	return tea.Batch(cmds...)
}

// handleSessionEvent runs inside Update, from Session.SetUser or Logout.
func (m *MainModel) handleSessionEvent(e auth.Event) {
	m.log.Info("session changed", "event", e.Kind.String())

	switch e.Kind {
	case auth.LoggedIn:
		m.closeSelector()
		m.state = state.AppState{
			User:    e.User,
			Page:    state.PageHistory,
			Loading: true,
		}
		m.loginInputs = newLoginInputs()
		m.focus = 0
		m.queued = append(m.queued, m.loadPropertiesCmd(e.User.ID))

	case auth.LoggedOut:
		m.closeSelector()
		m.chart.SetData(nil)
		m.state = state.AppState{Page: state.PageLogin, Notice: "Signed out."}
		m.loginInputs = newLoginInputs()
		m.focus = 0
		m.queued = append(m.queued, textinput.Blink)
	}
}

func (m *MainModel) closeSelector() {
	if m.selector != nil {
		m.selector.Close()
		m.selector = nil
	}
}

func (m *MainModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, quitKey) {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state.Page {
	case state.PageLogin:
		return m.handleLoginKey(msg)
	case state.PageProfile:
		return m.handleProfileKey(msg)
	default:
		return m.handleHistoryKey(msg)
	}
}

func (m *MainModel) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state.Loading {
		return m, nil
	}

	switch {
	case key.Matches(msg, loginKeyMap.Next):
		return m, m.moveFocus(m.loginInputs, 1)
	case key.Matches(msg, loginKeyMap.Prev):
		return m, m.moveFocus(m.loginInputs, -1)
	case key.Matches(msg, loginKeyMap.Submit):
		username := strings.TrimSpace(m.loginInputs[0].Value())
		password := m.loginInputs[1].Value()
		if username == "" || password == "" {
			m.state.Err = errors.New("enter a username and password")
			return m, nil
		}
		m.state.Err = nil
		m.state.Notice = ""
		m.state.Loading = true
		return m, m.loginCmd(username, password)
	}

	return m, m.updateFocusedInput(msg)
}

func (m *MainModel) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, historyKeyMap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, historyKeyMap.Refresh):
		if m.state.Current == nil {
			return m, nil
		}
		m.state.Loading = true
		return m, m.loadHistoryCmd(*m.state.Current)

	case key.Matches(msg, historyKeyMap.Profile):
		return m, m.openProfile()

	case key.Matches(msg, historyKeyMap.Logout):
		m.session.Logout()
		return m, nil
	}

	if m.selector == nil {
		return m, nil
	}
	_, cmd := m.selector.Update(msg)
	return m, cmd
}

func (m *MainModel) openProfile() tea.Cmd {
	if m.selector != nil {
		m.selector.Hide()
		m.selector.Blur()
	}

	u := m.state.User
	m.profileInputs = newProfileInputs()
	if u != nil {
		for i, v := range []string{u.FirstName, u.LastName, u.Email, u.Phone} {
			m.profileInputs[i].SetValue(v)
		}
	}
	m.focus = 0
	m.state.Page = state.PageProfile
	m.state.Err = nil
	m.state.Notice = ""
	return m.profileInputs[0].Focus()
}

func (m *MainModel) closeProfile() tea.Cmd {
	m.state.Page = state.PageHistory
	m.state.Err = nil
	m.state.Notice = ""
	if m.selector == nil {
		return nil
	}
	m.selector.Focus()
	return m.selector.Show()
}

func (m *MainModel) handleProfileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, profileKeyMap.Back):
		return m, m.closeProfile()
	case key.Matches(msg, profileKeyMap.Next):
		return m, m.moveFocus(m.profileInputs, 1)
	case key.Matches(msg, profileKeyMap.Prev):
		return m, m.moveFocus(m.profileInputs, -1)
	case key.Matches(msg, profileKeyMap.Submit):
		if m.state.User == nil || m.state.Saving {
			return m, nil
		}
		p := store.Profile{
			FirstName: strings.TrimSpace(m.profileInputs[0].Value()),
			LastName:  strings.TrimSpace(m.profileInputs[1].Value()),
			Email:     strings.TrimSpace(m.profileInputs[2].Value()),
			Phone:     strings.TrimSpace(m.profileInputs[3].Value()),
		}
		if p.Email != "" && !strings.Contains(p.Email, "@") {
			m.state.Err = errors.New("email address looks incomplete")
			return m, nil
		}
		m.state.Err = nil
		m.state.Saving = true
		return m, m.saveProfileCmd(m.state.User.ID, p)
	}

	return m, m.updateFocusedInput(msg)
}

func (m *MainModel) moveFocus(inputs []textinput.Model, delta int) tea.Cmd {
	inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(inputs)) % len(inputs)
	return inputs[m.focus].Focus()
}

func (m *MainModel) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var inputs []textinput.Model
	switch m.state.Page {
	case state.PageLogin:
		inputs = m.loginInputs
	case state.PageProfile:
		inputs = m.profileInputs
	default:
		return nil
	}
	var cmd tea.Cmd
	inputs[m.focus], cmd = inputs[m.focus].Update(msg)
	return cmd
}

func (m *MainModel) handleLoginResultMsg(msg LoginResultMsg) (tea.Model, tea.Cmd) {
	m.state.Loading = false
	if msg.Err != nil {
		if errors.Is(msg.Err, auth.ErrInvalidCredentials) {
			m.state.Err = errors.New("invalid username or password")
		} else {
			m.log.Error("sign in failed", "err", msg.Err)
			m.state.Err = msg.Err
		}
		return m, nil
	}
	m.session.SetUser(msg.User)
	return m, nil
}

func (m *MainModel) handlePropertiesLoadedMsg(msg PropertiesLoadedMsg) (tea.Model, tea.Cmd) {
	if m.state.User == nil || m.state.User.ID != msg.UserID {
		return m, nil
	}
	m.state.Loading = false
	if msg.Err != nil {
		m.log.Error("load properties failed", "user", msg.UserID, "err", msg.Err)
		m.state.Err = msg.Err
		return m, nil
	}

	m.state.Properties = msg.Properties
	if len(msg.Properties) == 0 {
		return m, nil
	}

	sel, err := components.NewPropertySelector(m.state.PropertyNames(), m.cfg.Selector(), m.cfg.AnimationFPS, m.log)
	if err != nil {
		m.state.Err = err
		return m, nil
	}
	m.closeSelector()
	m.selector = sel

	current := msg.Properties[0]
	m.state.Current = &current
	m.state.Loading = true

	var initCmd tea.Cmd
	if m.state.Page == state.PageHistory {
		initCmd = m.selector.Init()
	}
	return m, tea.Batch(initCmd, m.loadHistoryCmd(current))
}

func (m *MainModel) handleHistoryLoadedMsg(msg HistoryLoadedMsg) (tea.Model, tea.Cmd) {
	if m.state.Current == nil || m.state.Current.ID != msg.PropertyID {
		return m, nil
	}
	m.state.Loading = false
	if msg.Err != nil {
		m.log.Error("load pickups failed", "property", msg.PropertyID, "err", msg.Err)
		m.state.Err = msg.Err
		return m, nil
	}

	m.state.Err = nil
	m.state.History = msg.History
	m.state.LastUpdate = time.Now()
	m.chart.SetData(msg.History.Monthly)
	return m, nil
}

func (m *MainModel) handlePropertyChangedMsg(msg components.PropertyChangedMsg) (tea.Model, tea.Cmd) {
	p := m.state.PropertyByName(msg.Name)
	if p == nil {
		return m, nil
	}
	current := *p
	m.state.Current = &current
	m.state.History = nil
	m.state.Loading = true
	m.log.Debug("property changed", "property", current.Name)
	return m, m.loadHistoryCmd(current)
}

func (m *MainModel) handleProfileSavedMsg(msg ProfileSavedMsg) (tea.Model, tea.Cmd) {
	m.state.Saving = false
	if msg.Err != nil {
		m.log.Error("save profile failed", "err", msg.Err)
		m.state.Err = msg.Err
		return m, nil
	}
	m.session.Update(msg.User)
	m.state.User = m.session.User()
	m.state.Notice = "Profile saved."
	return m, nil
}

func (m *MainModel) handleAnimateMsg(msg AnimateMsg) (tea.Model, tea.Cmd) {
	if m.selector != nil {
		m.selector.Animate()
	}
	return m, m.animateCmd()
}

func (m *MainModel) handleWindowSizeMsg(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	newW := msg.Width/2 - 6
	if newW > 10 {
		m.chart.Resize(newW, 10)
	}
	return m, nil
}

func (m *MainModel) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.state.Page != state.PageHistory || m.selector == nil {
		return m, nil
	}
	_, cmd := m.selector.Update(msg)
	return m, cmd
}

func (m *MainModel) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	props := views.ViewProps{
		Width:       m.width,
		Height:      m.height,
		SpinnerView: m.spinner.View(),
		Focus:       m.focus,
	}

	switch m.state.Page {
	case state.PageHistory:
		if m.selector != nil {
			props.SelectorView = m.selector.View()
		}
		props.ChartView = m.chart.View()
		props.HelpView = m.help.View(historyKeyMap)
		return views.RenderHistory(m.state, props)
	case state.PageProfile:
		props.Inputs = inputViews(m.profileInputs)
		props.HelpView = m.help.View(profileKeyMap)
		return views.RenderProfile(m.state, props)
	default:
		props.Inputs = inputViews(m.loginInputs)
		props.HelpView = m.help.View(loginKeyMap)
		return views.RenderLogin(m.state, props)
	}
}

func inputViews(inputs []textinput.Model) []string {
	out := make([]string, len(inputs))
	for i := range inputs {
		out[i] = inputs[i].View()
	}
	return out
}

func Start(cfg config.Config, data DataSource, provider auth.IdentityProvider, log *slog.Logger) error {
	m := NewMainModel(cfg, data, provider, log)
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
