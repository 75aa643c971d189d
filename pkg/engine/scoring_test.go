package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLineScoreAtLevelThree(t *testing.T) {
	for n, want := range map[int]int{0: 0, 1: 120, 2: 300, 3: 900, 4: 3600} {
		assert.Equal(t, want, LineScore(n, 3), "%d rows", n)
	}
}

func TestFallInterval(t *testing.T) {
	tests := []struct {
		level int
		want  time.Duration
	}{
		{0, time.Second},
		{1, time.Second},
		{2, 950 * time.Millisecond},
		{10, 550 * time.Millisecond},
		{18, 150 * time.Millisecond},
		{19, 100 * time.Millisecond},
		{20, 100 * time.Millisecond},
		{50, 100 * time.Millisecond},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FallInterval(tt.level), "level %d", tt.level)
	}
}

func TestProgressApplyZeroRows(t *testing.T) {
	p := NewProgress()
	before := p

	delta, up := p.Apply(0)

	assert.Zero(t, delta)
	assert.False(t, up)
	assert.Equal(t, before, p)
}

func TestProgressLevelBoundaries(t *testing.T) {
	p := NewProgress()
	for i := 1; i <= 35; i++ {
		level := p.Level
		_, up := p.Apply(1)
		if i%LinesPerLevel == 0 {
			assert.True(t, up, "line %d", i)
			assert.Equal(t, level+1, p.Level, "line %d", i)
			assert.Equal(t, FallInterval(p.Level), p.Interval)
		} else {
			assert.False(t, up, "line %d", i)
			assert.Equal(t, level, p.Level, "line %d", i)
		}
	}
	assert.Equal(t, 4, p.Level)
	assert.Equal(t, 35, p.Lines)
}

func TestProgressMultiLineCrossesBoundaryOnce(t *testing.T) {
	p := NewProgress()
	p.Apply(4)
	p.Apply(4)
	assert.Equal(t, 1, p.Level)

	delta, up := p.Apply(4)

	assert.True(t, up)
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 1200, delta, "score uses the level before the clear")
	assert.Equal(t, 12, p.Lines)
	assert.Equal(t, 950*time.Millisecond, p.Interval)
}
