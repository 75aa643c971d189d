// Package scores keeps the top-ten high-score list and persists it locally
// or through a remote score service.
package scores

import (
	"sort"
	"strconv"
	"strings"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/google/uuid"
)

// Capacity is the number of entries a list keeps.
const Capacity = 10

// MaxNameLength bounds player names typed at the end of a game.
const MaxNameLength = 12

type Entry struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Score int    `json:"score"`
	Lines int    `json:"lines"`
	Level int    `json:"level"`
	When  string `json:"when"`
}

// NewEntry records a finished game. A blank name is replaced by a generated
// two-word one.
func NewEntry(name string, score, lines, level int, now time.Time) Entry {
	name = strings.TrimSpace(name)
	if r := []rune(name); len(r) > MaxNameLength {
		name = string(r[:MaxNameLength])
	}
	if name == "" {
		name = petname.Generate(2, "-")
	}
	return Entry{
		ID:    uuid.New().String(),
		Name:  name,
		Score: score,
		Lines: lines,
		Level: level,
		When:  now.UTC().Format(time.RFC3339),
	}
}

// Qualifies reports whether score would enter list.
func Qualifies(list []Entry, score int) bool {
	if score <= 0 {
		return false
	}
	if len(list) < Capacity {
		return true
	}
	return score > list[len(list)-1].Score
}

// Insert adds e to list and returns it sorted by descending score, newest
// first on ties, truncated to Capacity. list is not modified.
func Insert(list []Entry, e Entry) []Entry {
	out := make([]Entry, 0, len(list)+1)
	out = append(out, list...)
	out = append(out, e)
	return rank(out)
}

// Merge combines local and remote lists, dropping entries seen twice.
func Merge(local, remote []Entry) []Entry {
	merged := make([]Entry, 0, len(local)+len(remote))
	seen := make(map[string]struct{})
	for _, list := range [][]Entry{local, remote} {
		for _, e := range list {
			key := e.key()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, e)
		}
	}
	return rank(merged)
}

func (e Entry) key() string {
	if e.ID != "" {
		return e.ID
	}
	return e.Name + "|" + e.When + "|" + strconv.Itoa(e.Score)
}

func rank(list []Entry) []Entry {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Score == list[j].Score {
			return list[i].When > list[j].When
		}
		return list[i].Score > list[j].Score
	})
	if len(list) > Capacity {
		return list[:Capacity]
	}
	return list
}
