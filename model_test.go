package main

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaiqueGovani/legotris/pkg/engine"
	"github.com/KaiqueGovani/legotris/pkg/scores"
)

func newTestModel(t *testing.T, store scores.Store, kinds ...engine.Kind) Model {
	t.Helper()
	config := defaultConfig()
	config.Sound = false
	if store == nil {
		store = scores.NewMemoryStore()
	}
	return NewModel(modelOptions{
		config:         config,
		store:          store,
		sessionOptions: []engine.Option{engine.WithRandomizer(engine.NewSequence(kinds...))},
	})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m, _ = update(t, m, keyMsg(k))
	}
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// frameAfter is the next frame of the live chain, d after the previous one.
func frameAfter(m Model, d time.Duration) frameMsg {
	return frameMsg{gen: m.frames.gen, at: m.frames.last.Add(d)}
}

func startGame(t *testing.T, m Model) Model {
	t.Helper()
	m = press(t, m, "enter")
	require.Equal(t, screenGame, m.screen)
	require.Equal(t, countdownSteps, m.startCount)
	require.False(t, m.frames.Running())
	for i := 0; i < countdownSteps; i++ {
		m, _ = update(t, m, countdownTickMsg{})
	}
	require.True(t, m.frames.Running())
	return m
}

func activeY(t *testing.T, m Model) int {
	t.Helper()
	p, ok := m.session.Active()
	require.True(t, ok)
	return p.Y
}

func TestCountdownHoldsInput(t *testing.T) {
	m := newTestModel(t, nil, engine.KindT)
	m = press(t, m, "enter")

	m = press(t, m, "left")

	p, _ := m.session.Active()
	assert.Equal(t, 3, p.X)
	assert.Equal(t, countdownSteps, m.startCount)
	assert.Contains(t, m.View(), "READY")
}

func TestFramesDriveGravity(t *testing.T) {
	m := startGame(t, newTestModel(t, nil, engine.KindT))

	m, cmd := update(t, m, frameAfter(m, 500*time.Millisecond))
	assert.NotNil(t, cmd)
	assert.Equal(t, 0, activeY(t, m))

	m, _ = update(t, m, frameAfter(m, 501*time.Millisecond))
	assert.Equal(t, 1, activeY(t, m))
}

func TestMoveKeys(t *testing.T) {
	m := startGame(t, newTestModel(t, nil, engine.KindT))

	m = press(t, m, "left", "h")
	p, _ := m.session.Active()
	assert.Equal(t, 1, p.X)

	m = press(t, m, "right", "l", "l")
	p, _ = m.session.Active()
	assert.Equal(t, 4, p.X)

	m = press(t, m, "j")
	assert.Equal(t, 1, activeY(t, m))
}

func TestPauseStopsFrames(t *testing.T) {
	m := startGame(t, newTestModel(t, nil, engine.KindT))
	m, _ = update(t, m, frameAfter(m, 600*time.Millisecond))
	stale := frameAfter(m, 5*time.Second)

	m = press(t, m, "p")
	assert.Equal(t, engine.StatePaused, m.session.State())
	assert.False(t, m.frames.Running())
	m, _ = update(t, m, stale)
	assert.Equal(t, 0, activeY(t, m))
	m = press(t, m, "left")
	p, _ := m.session.Active()
	assert.Equal(t, 3, p.X, "input is ignored while paused")

	m = press(t, m, "p")
	require.Equal(t, engine.StateRunning, m.session.State())
	require.True(t, m.frames.Running())
	m, _ = update(t, m, stale)
	assert.Equal(t, 0, activeY(t, m), "frames from before the pause stay dropped")

	m, _ = update(t, m, frameAfter(m, 300*time.Millisecond))
	assert.Equal(t, 0, activeY(t, m))
	m, _ = update(t, m, frameAfter(m, 101*time.Millisecond))
	assert.Equal(t, 1, activeY(t, m), "the countdown resumes where it stopped")
}

func TestScoresOverlayPausesGame(t *testing.T) {
	m := startGame(t, newTestModel(t, nil, engine.KindT))

	m = press(t, m, "s")
	assert.Equal(t, screenScores, m.screen)
	assert.Equal(t, screenGame, m.scoresFrom)
	assert.Equal(t, engine.StatePaused, m.session.State())
	assert.False(t, m.frames.Running())

	m = press(t, m, "enter")
	assert.Equal(t, screenGame, m.screen)
	assert.Equal(t, engine.StateRunning, m.session.State())
	assert.True(t, m.frames.Running())
}

func TestScoresOverlayKeepsManualPause(t *testing.T) {
	m := startGame(t, newTestModel(t, nil, engine.KindT))

	m = press(t, m, "p", "s", "enter")

	assert.Equal(t, screenGame, m.screen)
	assert.Equal(t, engine.StatePaused, m.session.State())
	assert.False(t, m.frames.Running())
}

func TestQuitToMenu(t *testing.T) {
	m := startGame(t, newTestModel(t, nil, engine.KindT))

	m = press(t, m, "q")

	assert.Equal(t, screenMenu, m.screen)
	assert.False(t, m.frames.Running())
}

func TestZeroScoreGameOverShowsScores(t *testing.T) {
	m := startGame(t, newTestModel(t, nil, engine.KindO))

	for i := 0; i < engine.Rows/2; i++ {
		m = press(t, m, " ")
	}
	require.True(t, m.session.IsGameOver())
	assert.False(t, m.frames.Running())
	require.False(t, m.topOutTil.IsZero())

	before := m.session.Snapshot()
	m = press(t, m, "left", " ")
	assert.Equal(t, before, m.session.Snapshot())

	m.topOutTil = time.Now().Add(-time.Millisecond)
	m, _ = update(t, m, effectTickMsg{})

	assert.Equal(t, screenScores, m.screen)
	assert.Equal(t, screenMenu, m.scoresFrom)
}

// scoreForty plays a single-row clear worth 40 points at level 1.
func scoreForty(t *testing.T, m Model) Model {
	t.Helper()
	m = press(t, m, "left", "left", "left", " ", "right", " ", "right", "right", "right", "right", " ")
	require.Equal(t, 40, m.session.Score())
	require.Equal(t, 40, m.lastDelta)
	return m
}

func TestHighScoreNameEntry(t *testing.T) {
	store := scores.NewMemoryStore()
	m := startGame(t, newTestModel(t, store, engine.KindI, engine.KindI, engine.KindO, engine.KindT))
	m = scoreForty(t, m)

	m.topOutTil = time.Now().Add(-time.Millisecond)
	m, _ = update(t, m, effectTickMsg{})
	require.Equal(t, screenNameEntry, m.screen)

	m = press(t, m, "ann", "enter")

	assert.Equal(t, screenScores, m.screen)
	require.Len(t, m.scores, 1)
	assert.Equal(t, "ann", m.scores[0].Name)
	assert.Equal(t, 40, m.scores[0].Score)
	assert.Equal(t, 1, m.scores[0].Lines)
	assert.Equal(t, m.lastEntryID, m.scores[0].ID)
	stored, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, m.scores, stored)
}

func TestNameEntryBlankName(t *testing.T) {
	m := startGame(t, newTestModel(t, nil, engine.KindI, engine.KindI, engine.KindO, engine.KindT))
	m = scoreForty(t, m)
	m.topOutTil = time.Now().Add(-time.Millisecond)
	m, _ = update(t, m, effectTickMsg{})

	m = press(t, m, "enter")

	require.Len(t, m.scores, 1)
	assert.NotEmpty(t, m.scores[0].Name)
}

func TestNameEntryStorageUnavailable(t *testing.T) {
	store := scores.NewMemoryStore()
	store.Fail = true
	m := startGame(t, newTestModel(t, store, engine.KindI, engine.KindI, engine.KindO, engine.KindT))
	m = scoreForty(t, m)
	m.topOutTil = time.Now().Add(-time.Millisecond)
	m, _ = update(t, m, effectTickMsg{})

	m = press(t, m, "bo", "enter")

	assert.Equal(t, screenScores, m.screen)
	require.Len(t, m.scores, 1, "the score is kept for this run")
	assert.Contains(t, m.syncWarning, "Storage unavailable")
}

func TestScoresFetchedMerges(t *testing.T) {
	store := scores.NewMemoryStore(scores.Entry{ID: "a", Name: "local", Score: 100})
	m := newTestModel(t, store)
	m.syncLoading = true

	m, _ = update(t, m, scoresFetchedMsg{list: []scores.Entry{
		{ID: "a", Name: "local", Score: 100},
		{ID: "b", Name: "remote", Score: 300},
	}})

	assert.False(t, m.syncLoading)
	require.Len(t, m.scores, 2)
	assert.Equal(t, "remote", m.scores[0].Name)
	stored, _ := store.Load()
	assert.Len(t, stored, 2)
}

func TestConfigToggles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	m := newTestModel(t, nil)
	m.configPath = path
	m = press(t, m, "down", "down", "enter")
	require.Equal(t, screenConfig, m.screen)

	m = press(t, m, "right")
	assert.Equal(t, themes[1].Name, m.config.Theme)
	m = press(t, m, "down", "down", "down", "down", "enter")
	assert.False(t, m.config.Shadow)

	saved, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, m.config, saved)
}
