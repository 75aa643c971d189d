package engine

import "time"

const (
	LinesPerLevel = 10

	baseInterval = 1000 * time.Millisecond
	levelStep    = 50 * time.Millisecond
	minInterval  = 100 * time.Millisecond
)

var lineScores = [...]int{0, 40, 100, 300, 1200}

// LineScore returns the points for clearing n rows at once on level.
func LineScore(n, level int) int {
	if n <= 0 {
		return 0
	}
	if n >= len(lineScores) {
		n = len(lineScores) - 1
	}
	return lineScores[n] * level
}

// FallInterval returns the forced-descent period for level, never below 100ms.
func FallInterval(level int) time.Duration {
	if level < 1 {
		level = 1
	}
	interval := baseInterval - time.Duration(level-1)*levelStep
	if interval < minInterval {
		return minInterval
	}
	return interval
}

// Progress tracks score, level and cleared lines for one session.
type Progress struct {
	Score    int
	Level    int
	Lines    int
	Interval time.Duration
}

func NewProgress() Progress {
	return Progress{Level: 1, Interval: FallInterval(1)}
}

// Apply credits n simultaneously cleared rows. The level only ever rises, and
// the fall interval follows it.
func (p *Progress) Apply(n int) (delta int, levelUp bool) {
	if n <= 0 {
		return 0, false
	}
	delta = LineScore(n, p.Level)
	p.Score += delta
	p.Lines += n
	if level := p.Lines/LinesPerLevel + 1; level > p.Level {
		p.Level = level
		p.Interval = FallInterval(level)
		levelUp = true
	}
	return delta, levelUp
}
