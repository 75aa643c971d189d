package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaiqueGovani/legotris/pkg/engine"
)

func startedSnapshot(t *testing.T, kinds ...engine.Kind) engine.Snapshot {
	t.Helper()
	s := engine.NewSession(engine.WithRandomizer(engine.NewSequence(kinds...)))
	s.Start()
	return s.Snapshot()
}

func TestRenderBoardActiveAndGhost(t *testing.T) {
	snap := startedSnapshot(t, engine.KindT)

	withShadow := renderBoard(snap, themes[0], 1, true, nil, time.Time{}, time.Time{}, time.Now())
	withoutShadow := renderBoard(snap, themes[0], 1, false, nil, time.Time{}, time.Time{}, time.Now())

	assert.Equal(t, 4, strings.Count(withShadow, "()"))
	assert.Equal(t, 8, strings.Count(withShadow, "."))
	assert.Zero(t, strings.Count(withoutShadow, "."))
	lines := strings.Split(withShadow, "\n")
	require.Len(t, lines, engine.Rows+2)
	assert.Equal(t, "+"+strings.Repeat("-", engine.Cols*2)+"+", lines[0])
}

func TestRenderBoardScale(t *testing.T) {
	snap := startedSnapshot(t, engine.KindO)

	out := renderBoard(snap, themes[1], 2, false, nil, time.Time{}, time.Time{}, time.Now())

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, engine.Rows*2+2)
	assert.Equal(t, 4, strings.Count(out, "()"), "studs only on the top line of a brick")
}

func TestRenderBoardFlashHidesRow(t *testing.T) {
	snap := startedSnapshot(t, engine.KindI)
	now := time.Now()

	out := renderBoard(snap, themes[0], 1, false, []int{1}, now, now.Add(time.Second), now)

	assert.Zero(t, strings.Count(out, "()"), "the active piece sits on the flashing row")
}

func TestBrokenColumns(t *testing.T) {
	start := time.Unix(100, 0)
	until := start.Add(100 * time.Millisecond)

	assert.Equal(t, 0, brokenColumns(start, time.Time{}, until))
	assert.Equal(t, 0, brokenColumns(start.Add(30*time.Millisecond), start, until))
	assert.Equal(t, engine.Cols, brokenColumns(until, start, until))
	mid := brokenColumns(start.Add(70*time.Millisecond), start, until)
	assert.Greater(t, mid, 0)
	assert.Less(t, mid, engine.Cols)
}

func TestRenderMiniPieceSkipsEmptyRows(t *testing.T) {
	assert.Equal(t, "()()()()", renderMiniPiece(engine.KindI, themes[0], 1))
	assert.Len(t, strings.Split(renderMiniPiece(engine.KindT, themes[0], 1), "\n"), 2)
}

func TestGameThemeLevelShift(t *testing.T) {
	shift := themes[themeIndexByName(levelShiftThemeName)]
	indices := levelShiftThemeIndices()

	assert.Equal(t, themes[indices[0]].Name, gameTheme(shift, 1).Name)
	assert.Equal(t, themes[indices[1]].Name, gameTheme(shift, 2).Name)
	assert.Equal(t, themes[indices[0]].Name, gameTheme(shift, len(indices)+1).Name)
	assert.Equal(t, themes[0].Name, gameTheme(themes[0], 7).Name)
}
