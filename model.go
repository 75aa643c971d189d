package main

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/KaiqueGovani/legotris/pkg/engine"
	"github.com/KaiqueGovani/legotris/pkg/scores"
)

type Screen int

const (
	screenMenu Screen = iota
	screenGame
	screenScores
	screenConfig
	screenNameEntry
)

type soundMsg struct{}
type countdownTickMsg struct{}
type effectTickMsg struct{}

const (
	lineClearFlashDuration = 140 * time.Millisecond
	tetrisFlashDuration    = 200 * time.Millisecond
	topOutDuration         = 240 * time.Millisecond
	countdownSteps         = 2
)

type modelOptions struct {
	config         Config
	configPath     string
	store          scores.Store
	remote         *scores.Remote
	sessionOptions []engine.Option
	sound          *SoundEngine
	music          *MusicPlayer
}

type Model struct {
	screen       Screen
	scoresFrom   Screen
	width        int
	height       int
	menuIndex    int
	configIndex  int
	scoresOffset int
	themeIndex   int
	config       Config
	configPath   string

	session        *engine.Session
	sessionOptions []engine.Option
	frames         frameClock
	startCount     int
	overlayPaused  bool

	store       scores.Store
	remote      *scores.Remote
	scores      []scores.Entry
	lastEntryID string
	nameInput   textinput.Model
	syncWarning string
	syncLoading bool
	syncDots    int

	sound *SoundEngine
	music *MusicPlayer

	flashRows    []int
	flashStart   time.Time
	flashUntil   time.Time
	lastDelta    int
	lastEvent    string
	lastEventTil time.Time
	topOutTil    time.Time
}

func NewModel(opts modelOptions) Model {
	config := opts.config.normalized()
	store := opts.store
	if store == nil {
		store = scores.NewMemoryStore()
	}
	input := textinput.New()
	input.Placeholder = "Anonymous"
	input.CharLimit = scores.MaxNameLength
	input.Width = scores.MaxNameLength + 1
	return Model{
		screen:         screenMenu,
		config:         config,
		configPath:     opts.configPath,
		themeIndex:     themeIndexByName(config.Theme),
		sessionOptions: append([]engine.Option{engine.WithLogger(DebugLogf)}, opts.sessionOptions...),
		store:          store,
		remote:         opts.remote,
		scores:         scores.LoadOrEmpty(store, DebugLogf),
		nameInput:      input,
		sound:          opts.sound,
		music:          opts.music,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case frameMsg:
		elapsed, next, ok := m.frames.Frame(msg)
		if !ok {
			return m, nil
		}
		if m.screen != screenGame || m.session == nil {
			m.frames.Stop()
			return m, nil
		}
		m.updateEffects(msg.at)
		cmd := m.handleEvent(engine.ActionUnknown, m.session.Tick(elapsed))
		if m.frames.Running() {
			return m, tea.Batch(next, cmd)
		}
		return m, cmd
	case countdownTickMsg:
		if m.screen != screenGame || m.startCount <= 0 {
			return m, nil
		}
		m.startCount--
		if m.startCount > 0 {
			return m, countdownTickCmd()
		}
		m.syncMusicForScreen()
		return m, tea.Batch(m.playSound(SoundMenuSelect), m.frames.Start(time.Now()))
	case effectTickMsg:
		if m.screen != screenGame || m.topOutTil.IsZero() {
			return m, nil
		}
		if time.Now().Before(m.topOutTil) {
			return m, effectTickCmd()
		}
		return m, m.finishGame()
	case soundMsg:
		return m, nil
	case syncTickMsg:
		if m.syncLoading {
			m.syncDots = (m.syncDots + 1) % 4
			return m, syncTickCmd()
		}
		return m, nil
	case scoresFetchedMsg:
		m.syncLoading = false
		if msg.err != nil {
			DebugLogf("scores fetch error: %v", msg.err)
			m.syncWarning = "Offline: scores not synced."
			return m, nil
		}
		m.scores = scores.Merge(m.scores, msg.list)
		if err := m.store.Save(m.scores); err != nil {
			DebugLogf("scores save after sync: %v", err)
		}
		return m, nil
	case scoreUploadedMsg:
		if msg.err != nil {
			DebugLogf("score upload error: %v", msg.err)
			m.syncWarning = "Offline: scores not synced."
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+=", "ctrl++":
			m.adjustScale(1)
			return m, nil
		case "ctrl+-", "ctrl+_":
			m.adjustScale(-1)
			return m, nil
		}
		switch m.screen {
		case screenMenu:
			return m, m.updateMenu(msg)
		case screenGame:
			return m, m.updateGame(msg)
		case screenScores:
			return m, m.updateScores(msg)
		case screenConfig:
			return m, m.updateConfig(msg)
		case screenNameEntry:
			return m, m.updateNameEntry(msg)
		}
	}
	return m, nil
}

func (m Model) View() string {
	switch m.screen {
	case screenMenu:
		return viewMenu(m)
	case screenGame:
		return viewGame(m)
	case screenScores:
		return viewScores(m)
	case screenConfig:
		return viewConfig(m)
	case screenNameEntry:
		return viewNameEntry(m)
	default:
		return ""
	}
}

func countdownTickCmd() tea.Cmd {
	return tea.Tick(380*time.Millisecond, func(time.Time) tea.Msg { return countdownTickMsg{} })
}

func effectTickCmd() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(time.Time) tea.Msg { return effectTickMsg{} })
}

func playSound(player *SoundEngine, event SoundEvent) tea.Cmd {
	return func() tea.Msg {
		if player != nil {
			player.Play(event)
		}
		return soundMsg{}
	}
}

func (m *Model) playSound(events ...SoundEvent) tea.Cmd {
	if !m.config.Sound || m.sound == nil || len(events) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(events))
	for _, event := range events {
		cmds = append(cmds, playSound(m.sound, event))
	}
	return tea.Batch(cmds...)
}

var gameKeys = map[string]engine.Action{
	"left":  engine.ActionMoveLeft,
	"h":     engine.ActionMoveLeft,
	"right": engine.ActionMoveRight,
	"l":     engine.ActionMoveRight,
	"up":    engine.ActionRotate,
	"x":     engine.ActionRotate,
	"z":     engine.ActionRotate,
	"down":  engine.ActionSoftDrop,
	"j":     engine.ActionSoftDrop,
	" ":     engine.ActionHardDrop,
	"space": engine.ActionHardDrop,
}

func (m *Model) updateGame(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key == "q" || key == "esc" {
		return m.leaveGame()
	}
	if m.startCount > 0 || !m.topOutTil.IsZero() || m.session.IsGameOver() {
		return nil
	}
	switch key {
	case "p":
		return m.togglePause()
	case "s":
		return m.openScoresOverlay()
	}
	action, ok := gameKeys[key]
	if !ok {
		return nil
	}
	return m.handleEvent(action, m.session.Apply(action))
}

// handleEvent turns an engine event into sound and visual effects, and ends
// the game when the session is over.
func (m *Model) handleEvent(action engine.Action, ev engine.Event) tea.Cmd {
	if !ev.Changed() {
		return nil
	}
	if ev.Kind != engine.EventMoved && ev.Kind != engine.EventRotated {
		DebugLogf("%s action=%s cleared=%d delta=%d dropped=%d", ev.Kind, action, ev.Cleared, ev.ScoreDelta, ev.Dropped)
	}
	cmds := []tea.Cmd{m.playSound(soundsForEvent(action, ev)...)}
	m.applyScoreEvent(ev, time.Now())
	if ev.Kind == engine.EventGameOver {
		cmds = append(cmds, m.startTopOutEffect())
	}
	return tea.Batch(cmds...)
}

func (m *Model) togglePause() tea.Cmd {
	if m.session.Pause() {
		m.frames.Stop()
		if m.music != nil {
			m.music.Pause()
		}
		return nil
	}
	if m.session.Resume() {
		m.syncMusicForScreen()
		return m.frames.Start(time.Now())
	}
	return nil
}

func (m *Model) startGame() tea.Cmd {
	m.session = engine.NewSession(m.sessionOptions...)
	m.session.Start()
	m.frames.Stop()
	m.startCount = countdownSteps
	m.overlayPaused = false
	m.clearEffects()
	return tea.Batch(m.setScreen(screenGame), countdownTickCmd())
}

func (m *Model) leaveGame() tea.Cmd {
	m.frames.Stop()
	m.startCount = 0
	m.overlayPaused = false
	m.topOutTil = time.Time{}
	m.clearEffects()
	return m.setScreen(screenMenu)
}

// finishGame runs after the top-out effect. Scores that make the list go to
// name entry, anything else straight to the list.
func (m *Model) finishGame() tea.Cmd {
	m.topOutTil = time.Time{}
	m.clearEffects()
	snap := m.session.Snapshot()
	DebugLogf("game over score=%d lines=%d level=%d", snap.Score, snap.Lines, snap.Level)
	if scores.Qualifies(m.scores, snap.Score) {
		return m.enterNameEntry()
	}
	return m.openScores(screenMenu)
}

func (m *Model) enterNameEntry() tea.Cmd {
	m.nameInput.Reset()
	cmd := m.nameInput.Focus()
	return tea.Batch(cmd, m.setScreen(screenNameEntry))
}

func (m *Model) updateNameEntry(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		return m.submitScore()
	case tea.KeyEsc:
		m.nameInput.Blur()
		return m.setScreen(screenMenu)
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return cmd
}

func (m *Model) submitScore() tea.Cmd {
	m.nameInput.Blur()
	snap := m.session.Snapshot()
	entry := scores.NewEntry(m.nameInput.Value(), snap.Score, snap.Lines, snap.Level, time.Now())
	m.lastEntryID = entry.ID
	m.scores = scores.Insert(m.scores, entry)
	m.syncWarning = ""
	if err := m.store.Save(m.scores); err != nil {
		DebugLogf("scores save error: %v", err)
		m.syncWarning = "Storage unavailable: score kept for this run only."
	}
	cmd := m.openScores(screenMenu)
	if !m.syncEnabled() {
		return cmd
	}
	return tea.Batch(cmd, tea.Sequence(uploadScoreCmd(m.remote, entry), fetchScoresCmd(m.remote)))
}

func (m *Model) syncEnabled() bool {
	return m.remote.Enabled() && m.config.Sync
}

// openScoresOverlay shows the list over a running game. The game is paused
// only if it was running, and resumed on close.
func (m *Model) openScoresOverlay() tea.Cmd {
	if m.session.Pause() {
		m.overlayPaused = true
		m.frames.Stop()
	}
	return m.openScores(screenGame)
}

func (m *Model) openScores(from Screen) tea.Cmd {
	m.scoresFrom = from
	m.scoresOffset = 0
	if from != screenGame {
		m.scores = scores.Merge(m.scores, scores.LoadOrEmpty(m.store, DebugLogf))
	}
	cmd := m.setScreen(screenScores)
	if !m.syncEnabled() {
		return cmd
	}
	m.syncLoading = true
	m.syncDots = 0
	return tea.Batch(cmd, fetchScoresCmd(m.remote), syncTickCmd())
}

func (m *Model) closeScores() tea.Cmd {
	if m.scoresFrom != screenGame {
		return m.setScreen(screenMenu)
	}
	cmd := m.setScreen(screenGame)
	if !m.overlayPaused {
		return cmd
	}
	m.overlayPaused = false
	if m.session.Resume() {
		m.syncMusicForScreen()
		return tea.Batch(cmd, m.frames.Start(time.Now()))
	}
	return cmd
}

func (m *Model) updateScores(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "esc", "enter", "s":
		return tea.Batch(m.closeScores(), m.playSound(SoundMenuSelect))
	case "up", "k":
		if m.scoresOffset > 0 {
			m.scoresOffset--
		}
	case "down", "j":
		max := len(m.scores) - scoresPageSize
		if max < 0 {
			max = 0
		}
		if m.scoresOffset < max {
			m.scoresOffset++
		}
	}
	return nil
}

var menuItems = []string{
	"Start Game",
	"High Scores",
	"Config",
	"Quit",
}

func (m *Model) updateMenu(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
			return m.playSound(SoundMenuMove)
		}
	case "down", "j":
		if m.menuIndex < len(menuItems)-1 {
			m.menuIndex++
			return m.playSound(SoundMenuMove)
		}
	case "enter":
		cmd := m.playSound(SoundMenuSelect)
		switch m.menuIndex {
		case 0:
			return tea.Batch(cmd, m.startGame())
		case 1:
			return tea.Batch(cmd, m.openScores(screenMenu))
		case 2:
			return tea.Batch(cmd, m.setScreen(screenConfig))
		case 3:
			return tea.Quit
		}
	case "q", "esc":
		return tea.Quit
	}
	return nil
}

var configItems = []string{
	"Theme",
	"Sound Effects",
	"Music",
	"Volume",
	"Shadow",
	"Line Clear Animation",
	"Game Scale",
	"Score Sync",
}

func (m *Model) updateConfig(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if m.configIndex > 0 {
			m.configIndex--
			return m.playSound(SoundMenuMove)
		}
	case "down", "j":
		if m.configIndex < len(configItems)-1 {
			m.configIndex++
			return m.playSound(SoundMenuMove)
		}
	case "enter":
		switch m.configIndex {
		case 0:
			m.cycleTheme(1)
		case 1:
			m.config.Sound = !m.config.Sound
			if m.sound != nil {
				m.sound.SetEnabled(m.config.Sound)
			}
		case 2:
			m.config.Music = !m.config.Music
			m.syncMusicForScreen()
		case 3:
			m.adjustVolume(5)
		case 4:
			m.config.Shadow = !m.config.Shadow
		case 5:
			m.config.Animations = !m.config.Animations
			if !m.config.Animations {
				m.clearEffects()
			}
		case 6:
			m.adjustScale(1)
		case 7:
			m.config.Sync = !m.config.Sync
		}
		m.persistConfig()
		return m.playSound(SoundMenuSelect)
	case "left", "h":
		return m.adjustConfigItem(-1)
	case "right", "l":
		return m.adjustConfigItem(1)
	case "q", "esc":
		return m.setScreen(screenMenu)
	}
	return nil
}

func (m *Model) adjustConfigItem(dir int) tea.Cmd {
	switch m.configIndex {
	case 0:
		m.cycleTheme(dir)
		m.persistConfig()
	case 3:
		m.adjustVolume(5 * dir)
	case 6:
		m.adjustScale(dir)
	default:
		return nil
	}
	return m.playSound(SoundMenuMove)
}

func (m *Model) cycleTheme(dir int) {
	m.themeIndex = (m.themeIndex + dir + len(themes)) % len(themes)
	m.config.Theme = themes[m.themeIndex].Name
}

func (m *Model) persistConfig() {
	if err := saveConfig(m.configPath, m.config); err != nil {
		DebugLogf("config save error: %v", err)
	}
}

func (m *Model) adjustScale(delta int) {
	scale := clampScale(m.config.Scale + delta)
	if scale != m.config.Scale {
		m.config.Scale = scale
		m.persistConfig()
	}
}

func (m *Model) adjustVolume(delta int) {
	volume := clampVolumePercent(m.config.Volume + delta)
	if volume == m.config.Volume {
		return
	}
	m.config.Volume = volume
	if m.sound != nil {
		m.sound.SetVolume(volumeFromPercent(volume))
	}
	if m.music != nil {
		m.music.SetVolume(volumeFromPercent(volume))
	}
	m.persistConfig()
}

func volumeFromPercent(value int) float64 {
	return float64(clampVolumePercent(value)) / 100
}

func (m *Model) setScreen(screen Screen) tea.Cmd {
	m.screen = screen
	m.syncMusicForScreen()
	return nil
}

// syncMusicForScreen plays music only while a game is on screen and running.
func (m *Model) syncMusicForScreen() {
	if m.music == nil {
		return
	}
	if !m.config.Music || m.screen != screenGame || m.session == nil {
		m.music.Stop()
		return
	}
	switch m.session.State() {
	case engine.StateRunning:
		m.music.Start()
	case engine.StatePaused:
		m.music.Pause()
	default:
		m.music.Stop()
	}
}

func (m *Model) applyScoreEvent(ev engine.Event, now time.Time) {
	if len(ev.Rows) > 0 && m.config.Animations {
		flash := lineClearFlashDuration
		if ev.Cleared >= 4 {
			flash = tetrisFlashDuration
		}
		m.flashRows = append([]int{}, ev.Rows...)
		m.flashStart = now
		m.flashUntil = now.Add(flash)
	}
	if ev.ScoreDelta > 0 {
		m.lastDelta = ev.ScoreDelta
		m.lastEvent = "LINE CLEAR"
		duration := 900 * time.Millisecond
		if ev.Cleared >= 4 {
			m.lastEvent = "LEGOTRIS!"
			duration = 1400 * time.Millisecond
		}
		if ev.LevelUp {
			m.lastEvent = "LEVEL UP"
			duration = 1400 * time.Millisecond
		}
		m.lastEventTil = now.Add(duration)
	}
}

func (m *Model) updateEffects(now time.Time) {
	if !m.flashUntil.IsZero() && now.After(m.flashUntil) {
		m.flashRows = nil
		m.flashStart = time.Time{}
		m.flashUntil = time.Time{}
	}
	if !m.lastEventTil.IsZero() && now.After(m.lastEventTil) {
		m.lastEvent = ""
		m.lastDelta = 0
		m.lastEventTil = time.Time{}
	}
}

func (m *Model) clearEffects() {
	m.flashRows = nil
	m.flashStart = time.Time{}
	m.flashUntil = time.Time{}
	m.lastEvent = ""
	m.lastDelta = 0
	m.lastEventTil = time.Time{}
}

func (m *Model) startTopOutEffect() tea.Cmd {
	m.frames.Stop()
	m.syncMusicForScreen()
	now := time.Now()
	m.topOutTil = now.Add(topOutDuration)
	if m.config.Animations {
		m.flashRows = make([]int, engine.Rows)
		for i := range m.flashRows {
			m.flashRows[i] = i
		}
		m.flashStart = now
		m.flashUntil = m.topOutTil
	}
	return tea.Batch(effectTickCmd(), m.playSound(SoundGameOver))
}

func (m *Model) isTopOutAnimating() bool {
	return !m.topOutTil.IsZero() && time.Now().Before(m.topOutTil)
}
