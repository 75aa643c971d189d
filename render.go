package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/KaiqueGovani/legotris/pkg/engine"
)

// Theme colors pieces by engine.Kind: PieceColors[k-1] paints kind k.
type Theme struct {
	Name        string
	BorderColor lipgloss.Color
	TextColor   lipgloss.Color
	AccentColor lipgloss.Color
	StudColor   lipgloss.Color
	PieceColors []lipgloss.Color
}

const levelShiftThemeName = "Level Shift"

var themes = []Theme{
	{
		Name:        "Classic Bricks",
		BorderColor: lipgloss.Color("#00509D"),
		TextColor:   lipgloss.Color("252"),
		AccentColor: lipgloss.Color("#FFCF00"),
		StudColor:   lipgloss.Color("236"),
		PieceColors: []lipgloss.Color{"#D90429", "#00509D", "#F77F00", "#FFCF00", "#2A9D8F", "#6A0DAD", "#E71D73"},
	},
	{
		Name:        "Basic 256",
		BorderColor: lipgloss.Color("15"),
		TextColor:   lipgloss.Color("250"),
		AccentColor: lipgloss.Color("226"),
		StudColor:   lipgloss.Color("235"),
		PieceColors: []lipgloss.Color{"160", "25", "208", "220", "36", "91", "198"},
	},
	{
		Name:        "Duplo Pastel",
		BorderColor: lipgloss.Color("218"),
		TextColor:   lipgloss.Color("231"),
		AccentColor: lipgloss.Color("222"),
		StudColor:   lipgloss.Color("244"),
		PieceColors: []lipgloss.Color{"210", "117", "216", "229", "158", "183", "218"},
	},
	{
		Name:        "Technic Grey",
		BorderColor: lipgloss.Color("250"),
		TextColor:   lipgloss.Color("245"),
		AccentColor: lipgloss.Color("214"),
		StudColor:   lipgloss.Color("233"),
		PieceColors: []lipgloss.Color{"240", "243", "246", "249", "252", "238", "255"},
	},
	{
		Name:        levelShiftThemeName,
		BorderColor: lipgloss.Color("15"),
		TextColor:   lipgloss.Color("250"),
		AccentColor: lipgloss.Color("226"),
		StudColor:   lipgloss.Color("235"),
		PieceColors: []lipgloss.Color{"160", "25", "208", "220", "36", "91", "198"},
	},
}

func themeIndexByName(name string) int {
	for i, theme := range themes {
		if theme.Name == name {
			return i
		}
	}
	return -1
}

// gameTheme returns the selected theme, or for Level Shift the palette for
// the current level.
func gameTheme(selected Theme, level int) Theme {
	if selected.Name != levelShiftThemeName {
		return selected
	}
	indices := levelShiftThemeIndices()
	if len(indices) == 0 || level < 1 {
		return selected
	}
	return themes[indices[(level-1)%len(indices)]]
}

func levelShiftThemeIndices() []int {
	indices := make([]int, 0, len(themes))
	for i, theme := range themes {
		if theme.Name != levelShiftThemeName {
			indices = append(indices, i)
		}
	}
	return indices
}

func pieceColor(theme Theme, k engine.Kind) lipgloss.Color {
	if !k.Valid() {
		return theme.TextColor
	}
	return theme.PieceColors[(int(k)-1)%len(theme.PieceColors)]
}

func viewMenu(m Model) string {
	theme := themes[m.themeIndex]
	content := renderMenu("LEGOTRIS", menuItems, m.menuIndex, "Enter to select, Q to quit", theme)
	return center(m.width, m.height, content)
}

const scoresPageSize = 10

func viewScores(m Model) string {
	theme := themes[m.themeIndex]
	var b strings.Builder
	b.WriteString(titleStyle(theme).Render("High Scores"))
	b.WriteString("\n\n")
	if len(m.scores) == 0 {
		b.WriteString("No scores yet.\n")
	} else {
		start := m.scoresOffset
		end := start + scoresPageSize
		if end > len(m.scores) {
			end = len(m.scores)
		}
		for i, score := range m.scores[start:end] {
			line := fmt.Sprintf("%2d. %-12s %7d  L%2d  %4d lines", start+i+1, score.Name, score.Score, score.Level, score.Lines)
			if score.ID != "" && score.ID == m.lastEntryID {
				line = highlightStyle(theme).Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	if m.syncWarning != "" {
		b.WriteString("\n")
		b.WriteString(warningStyle(theme).Render(m.syncWarning))
		b.WriteString("\n")
	}
	if m.syncLoading {
		b.WriteString("\n")
		b.WriteString(helpStyle(theme).Render(renderSyncLoader(m.syncDots)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.scoresFrom == screenGame {
		b.WriteString(helpStyle(theme).Render("Enter to resume"))
	} else {
		b.WriteString(helpStyle(theme).Render("Enter to back"))
	}
	return center(m.width, m.height, b.String())
}

func viewConfig(m Model) string {
	theme := themes[m.themeIndex]
	items := make([]string, 0, len(configItems))
	for i, item := range configItems {
		var value string
		switch i {
		case 0:
			value = m.config.Theme
		case 1:
			value = onOff(m.config.Sound)
		case 2:
			value = onOff(m.config.Music)
			if m.config.MusicFile == "" {
				value += " (no track)"
			}
		case 3:
			value = fmt.Sprintf("%d%%", clampVolumePercent(m.config.Volume))
		case 4:
			value = onOff(m.config.Shadow)
		case 5:
			value = onOff(m.config.Animations)
		case 6:
			value = fmt.Sprintf("%dx", clampScale(m.config.Scale))
		case 7:
			value = onOff(m.config.Sync)
			if !m.remote.Enabled() {
				value += " (no service)"
			}
		}
		items = append(items, fmt.Sprintf("%s: %s", item, value))
	}
	preview := renderPreviewPieceRow(theme)
	menu := renderMenu("Config", items, m.configIndex, "Enter to toggle, Left/Right to adjust, Esc to back", theme)
	return center(m.width, m.height, lipgloss.JoinVertical(lipgloss.Center, menu, "", preview))
}

func onOff(v bool) string {
	if v {
		return "ON"
	}
	return "OFF"
}

func viewNameEntry(m Model) string {
	theme := themes[m.themeIndex]
	snap := m.session.Snapshot()
	var b strings.Builder
	b.WriteString(titleStyle(theme).Render("Game Over"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Score: %d  Lines: %d  Level: %d\n\n", snap.Score, snap.Lines, snap.Level))
	b.WriteString(highlightStyle(theme).Render("New high score!"))
	b.WriteString("\n\nEnter your name: ")
	b.WriteString(m.nameInput.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle(theme).Render("Enter to save, Esc to skip"))
	return center(m.width, m.height, b.String())
}

func viewGame(m Model) string {
	snap := m.session.Snapshot()
	theme := gameTheme(themes[m.themeIndex], snap.Level)
	scale := clampScale(m.config.Scale)
	minWidth, minHeight := minGameSize(scale)
	if m.width > 0 && m.height > 0 && (m.width < minWidth || m.height < minHeight) {
		message := fmt.Sprintf("Terminal too small. Need at least %dx%d. Current %dx%d.", minWidth, minHeight, m.width, m.height)
		return center(m.width, m.height, message)
	}
	board := renderBoard(snap, theme, scale, m.config.Shadow, m.flashRows, m.flashStart, m.flashUntil, time.Now())
	readyLabel := ""
	switch {
	case m.startCount > 1:
		readyLabel = "READY"
	case m.startCount == 1:
		readyLabel = "GO"
	}
	info := renderInfo(snap, theme, scale, m.lastEvent, m.lastDelta, readyLabel)
	content := lipgloss.JoinHorizontal(lipgloss.Top, board, info)
	if m.width > 0 && m.width < minWidth+24 {
		content = lipgloss.JoinVertical(lipgloss.Left, board, info)
	}
	if m.isTopOutAnimating() {
		if (time.Now().UnixNano()/int64(18*time.Millisecond))%2 == 0 {
			content = lipgloss.NewStyle().PaddingLeft(1).Render(content)
		}
	}
	return center(m.width, m.height, content)
}

// renderBoard draws settled cells, the ghost and the active piece. Cells of
// the active piece above row 0 are not drawn.
func renderBoard(snap engine.Snapshot, theme Theme, scale int, showShadow bool, flashRows []int, flashStart, flashUntil, now time.Time) string {
	border := lipgloss.NewStyle().Foreground(theme.BorderColor)
	width := cellWidth(scale)
	empty := strings.Repeat(" ", width)
	cells := snap.Board
	var ghost [engine.Rows][engine.Cols]bool
	if snap.State != engine.StateNotStarted {
		if showShadow && snap.GhostY != snap.Active.Y {
			shadow := snap.Active
			shadow.Y = snap.GhostY
			for _, c := range shadow.Cells() {
				if c.Y >= 0 && c.Y < engine.Rows && c.X >= 0 && c.X < engine.Cols && cells[c.Y][c.X] == engine.KindNone {
					ghost[c.Y][c.X] = true
				}
			}
		}
		for _, c := range snap.Active.Cells() {
			if c.Y >= 0 && c.Y < engine.Rows && c.X >= 0 && c.X < engine.Cols {
				cells[c.Y][c.X] = snap.Active.Kind
			}
		}
	}
	flashing := map[int]struct{}{}
	if !flashUntil.IsZero() && now.Before(flashUntil) {
		for _, row := range flashRows {
			flashing[row] = struct{}{}
		}
	}
	white := lipgloss.NewStyle().Background(lipgloss.Color("15"))
	broken := brokenColumns(now, flashStart, flashUntil)
	edge := border.Render("+" + strings.Repeat("-", engine.Cols*width) + "+")

	var b strings.Builder
	b.WriteString(edge)
	b.WriteString("\n")
	for y := 0; y < engine.Rows; y++ {
		for line := 0; line < scale; line++ {
			b.WriteString(border.Render("|"))
			for x := 0; x < engine.Cols; x++ {
				if _, ok := flashing[y]; ok {
					if x < broken {
						b.WriteString(empty)
					} else {
						b.WriteString(white.Render(empty))
					}
					continue
				}
				k := cells[y][x]
				switch {
				case k != engine.KindNone:
					b.WriteString(renderBrick(theme, k, width, line == 0))
				case ghost[y][x]:
					b.WriteString(lipgloss.NewStyle().Foreground(pieceColor(theme, snap.Active.Kind)).Faint(true).Render(strings.Repeat(".", width)))
				default:
					b.WriteString(empty)
				}
			}
			b.WriteString(border.Render("|"))
			b.WriteString("\n")
		}
	}
	b.WriteString(edge)
	return b.String()
}

// renderBrick draws one cell with a stud on its top line.
func renderBrick(theme Theme, k engine.Kind, width int, top bool) string {
	style := lipgloss.NewStyle().Background(pieceColor(theme, k)).Foreground(theme.StudColor)
	if !top || width < 2 {
		return style.Render(strings.Repeat(" ", width))
	}
	pad := (width - 2) / 2
	return style.Render(strings.Repeat(" ", pad) + "()" + strings.Repeat(" ", width-2-pad))
}

// brokenColumns is how many columns of a flashing row have already vanished.
func brokenColumns(now, start, until time.Time) int {
	if start.IsZero() || until.IsZero() || !until.After(start) {
		return 0
	}
	elapsed := now.Sub(start)
	if elapsed <= 0 {
		return 0
	}
	duration := until.Sub(start)
	if elapsed >= duration {
		return engine.Cols
	}
	progress := float64(elapsed) / float64(duration)
	if progress <= 0.35 {
		return 0
	}
	columns := int((progress-0.35)/0.65*float64(engine.Cols)) + 1
	if columns > engine.Cols {
		return engine.Cols
	}
	return columns
}

func renderInfo(snap engine.Snapshot, theme Theme, scale int, lastEvent string, lastDelta int, readyLabel string) string {
	var b strings.Builder
	pad := lipgloss.NewStyle().PaddingLeft(2)
	line := func(s string) {
		b.WriteString(pad.Render(s))
		b.WriteString("\n")
	}
	if readyLabel != "" {
		line(highlightStyle(theme).Render(readyLabel))
		b.WriteString("\n")
	}
	line(titleStyle(theme).Render("Next"))
	line(renderMiniPiece(snap.Next.Kind, theme, scale))
	b.WriteString("\n")
	line(fmt.Sprintf("Score: %d", snap.Score))
	line(fmt.Sprintf("Lines: %d", snap.Lines))
	line(fmt.Sprintf("Level: %d", snap.Level))
	line(helpStyle(theme).Render(fmt.Sprintf("Speed: %dms", snap.Interval.Milliseconds())))
	b.WriteString("\n")
	if lastEvent != "" || lastDelta > 0 {
		label := lastEvent
		if label == "" {
			label = "POINTS"
		}
		line(highlightStyle(theme).Render(label))
		line(highlightStyle(theme).Render(fmt.Sprintf("+%d", lastDelta)))
		b.WriteString("\n")
	}
	for _, key := range []string{
		"Arrows/HL: move",
		"Up/X/Z: rotate",
		"Down/J: soft drop",
		"Space: hard drop",
		"P: pause  S: scores",
		"Q: menu",
	} {
		line(helpStyle(theme).Render(key))
	}
	switch snap.State {
	case engine.StatePaused:
		b.WriteString("\n")
		line(highlightStyle(theme).Render("Paused"))
	case engine.StateGameOver:
		b.WriteString("\n")
		line(warningStyle(theme).Render("Game Over"))
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderMiniPiece draws the spawn orientation of k without its empty rows.
func renderMiniPiece(k engine.Kind, theme Theme, scale int) string {
	shape := engine.Template(k)
	width := cellWidth(scale)
	var b strings.Builder
	for _, row := range shape {
		filled := false
		for _, on := range row {
			filled = filled || on
		}
		if !filled {
			continue
		}
		for line := 0; line < scale; line++ {
			for _, on := range row {
				if on {
					b.WriteString(renderBrick(theme, k, width, line == 0))
				} else {
					b.WriteString(strings.Repeat(" ", width))
				}
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderPreviewPieceRow(theme Theme) string {
	items := make([]string, 0, len(engine.Kinds))
	for _, k := range engine.Kinds {
		items = append(items, lipgloss.NewStyle().MarginRight(1).Render(renderMiniPiece(k, theme, 1)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, items...)
}

func minGameSize(scale int) (int, int) {
	width := engine.Cols*cellWidth(scale) + 2
	height := engine.Rows*scale + 2
	return width, height
}

func titleStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.AccentColor).Bold(true)
}

func highlightStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.AccentColor).Bold(true)
}

func helpStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.TextColor)
}

func warningStyle(Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
}

func center(width, height int, content string) string {
	if width == 0 || height == 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func renderSyncLoader(dots int) string {
	return "Syncing" + strings.Repeat(".", ((dots%4)+4)%4)
}

func clampScale(value int) int {
	if value < 1 {
		return 1
	}
	if value > 3 {
		return 3
	}
	return value
}

func clampVolumePercent(value int) int {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}

func cellWidth(scale int) int {
	return 2 * clampScale(scale)
}

func renderMenu(title string, items []string, selected int, footer string, theme Theme) string {
	maxWidth := lipgloss.Width(title)
	for _, item := range items {
		if width := lipgloss.Width(item) + 4; width > maxWidth {
			maxWidth = width
		}
	}
	if width := lipgloss.Width(footer); width > maxWidth {
		maxWidth = width
	}
	lineStyle := lipgloss.NewStyle().Width(maxWidth).Align(lipgloss.Center)
	var b strings.Builder
	b.WriteString(lineStyle.Render(titleStyle(theme).Render(title)))
	b.WriteString("\n\n")
	for i, item := range items {
		if i == selected {
			item = highlightStyle(theme).Render("> " + item + " <")
		}
		b.WriteString(lineStyle.Render(item))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(lineStyle.Render(helpStyle(theme).Render(footer)))
	return b.String()
}
