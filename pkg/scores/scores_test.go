package scores

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(name string, score int, when string) Entry {
	return Entry{Name: name, Score: score, When: when}
}

func TestInsertKeepsTopTen(t *testing.T) {
	var list []Entry
	for i := 1; i <= 12; i++ {
		list = Insert(list, entry(fmt.Sprintf("p%d", i), i*100, fmt.Sprintf("2024-01-%02d", i)))
	}

	require.Len(t, list, Capacity)
	assert.Equal(t, 1200, list[0].Score)
	assert.Equal(t, 300, list[Capacity-1].Score)
	for i := 1; i < len(list); i++ {
		assert.GreaterOrEqual(t, list[i-1].Score, list[i].Score)
	}
}

func TestInsertTiesNewestFirst(t *testing.T) {
	list := Insert(nil, entry("old", 500, "2024-01-01T00:00:00Z"))
	list = Insert(list, entry("new", 500, "2024-02-01T00:00:00Z"))

	assert.Equal(t, "new", list[0].Name)
	assert.Equal(t, "old", list[1].Name)
}

func TestInsertDoesNotTouchInput(t *testing.T) {
	list := []Entry{entry("a", 10, "1"), entry("b", 5, "2")}
	_ = Insert(list, entry("c", 100, "3"))

	assert.Equal(t, "a", list[0].Name)
	assert.Equal(t, "b", list[1].Name)
}

func TestInsertLowScoreDropsOff(t *testing.T) {
	var list []Entry
	for i := 0; i < Capacity; i++ {
		list = Insert(list, entry("p", 1000, fmt.Sprint(i)))
	}
	assert.False(t, Qualifies(list, 10))

	list = Insert(list, entry("late", 10, "z"))

	require.Len(t, list, Capacity)
	for _, e := range list {
		assert.NotEqual(t, "late", e.Name)
	}
}

func TestQualifies(t *testing.T) {
	assert.False(t, Qualifies(nil, 0))
	assert.True(t, Qualifies(nil, 1))

	var full []Entry
	for i := 0; i < Capacity; i++ {
		full = append(full, entry("p", 100, ""))
	}
	assert.False(t, Qualifies(full, 100))
	assert.True(t, Qualifies(full, 101))
}

func TestMergeDedupes(t *testing.T) {
	shared := Entry{ID: "a1", Name: "ann", Score: 300, When: "2024-01-01"}
	renamed := shared
	renamed.Name = "ann (remote)"
	legacy := entry("bob", 200, "2024-01-02")

	merged := Merge(
		[]Entry{shared, legacy},
		[]Entry{renamed, legacy, entry("cy", 400, "2024-01-03")},
	)

	require.Len(t, merged, 3)
	assert.Equal(t, []string{"cy", "ann", "bob"}, []string{merged[0].Name, merged[1].Name, merged[2].Name})
}

func TestNewEntry(t *testing.T) {
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.FixedZone("x", 3600))

	e := NewEntry("  neo  ", 1200, 14, 2, now)

	assert.Equal(t, "neo", e.Name)
	assert.Equal(t, "2024-05-06T06:08:09Z", e.When)
	assert.Len(t, e.ID, 36)
	assert.Equal(t, 1200, e.Score)
	assert.Equal(t, 14, e.Lines)
	assert.Equal(t, 2, e.Level)

	other := NewEntry("neo", 1200, 14, 2, now)
	assert.NotEqual(t, e.ID, other.ID)
}

func TestNewEntryNames(t *testing.T) {
	blank := NewEntry("   ", 10, 1, 1, time.Now())
	assert.NotEmpty(t, blank.Name)
	assert.Contains(t, blank.Name, "-")

	long := NewEntry(strings.Repeat("x", 40), 10, 1, 1, time.Now())
	assert.Len(t, long.Name, MaxNameLength)
}
