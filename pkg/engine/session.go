package engine

import (
	"fmt"
	"sync"
	"time"
)

type State int

const (
	StateNotStarted State = iota
	StateRunning
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game-over"
	default:
		return "not-started"
	}
}

type Option func(*Session)

func WithRandomizer(r Randomizer) Option {
	return func(s *Session) {
		s.random = r
	}
}

// WithSeed draws pieces uniformly from a source seeded with seed. Zero seeds
// from the clock.
func WithSeed(seed int64) Option {
	return WithRandomizer(NewRandom(seed))
}

func WithLogger(logf func(format string, args ...any)) Option {
	return func(s *Session) {
		if logf != nil {
			s.logf = logf
		}
	}
}

// Session owns the board, the active and next pieces and the score state of
// one game. All methods are safe for concurrent use; ticks and actions are
// applied one at a time.
type Session struct {
	mu sync.Mutex

	board    *Board
	active   Piece
	next     Piece
	progress Progress
	acc      time.Duration
	state    State

	random Randomizer
	logf   func(format string, args ...any)
}

func NewSession(opts ...Option) *Session {
	s := &Session{
		board:    NewBoard(),
		progress: NewProgress(),
		logf:     func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.random == nil {
		s.random = NewRandom(0)
	}
	return s
}

// Start begins a new game on an empty board.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.start(Grid{})
}

// StartOn begins a new game with g as the settled cells.
func (s *Session) StartOn(g Grid) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.start(g)
}

func (s *Session) start(g Grid) error {
	board := NewBoard()
	if err := board.Load(g); err != nil {
		return err
	}
	s.board = board
	s.progress = NewProgress()
	s.acc = 0
	s.active = Spawn(s.random.Next())
	s.next = Spawn(s.random.Next())
	s.state = StateRunning
	s.logf("session start active=%s next=%s", s.active.Kind, s.next.Kind)
	if !s.active.validOn(s.board) {
		s.state = StateGameOver
		s.logf("session over at spawn active=%s", s.active)
	}
	return nil
}

// Tick advances game time by elapsed. Once the accumulated time exceeds the
// fall interval the active piece descends one row or locks.
func (s *Session) Tick(elapsed time.Duration) Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning || elapsed < 0 {
		return Event{}
	}
	s.acc += elapsed
	if s.acc <= s.progress.Interval {
		return Event{}
	}
	s.acc = 0
	if s.canMove(0, 1) {
		s.active.Y++
		return Event{Kind: EventMoved}
	}
	return s.lock()
}

func (s *Session) Apply(a Action) Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning {
		return Event{}
	}
	switch a {
	case ActionMoveLeft:
		return s.shift(-1)
	case ActionMoveRight:
		return s.shift(1)
	case ActionSoftDrop:
		if s.canMove(0, 1) {
			s.active.Y++
			s.acc = 0
			return Event{Kind: EventMoved}
		}
		return s.lock()
	case ActionHardDrop:
		dropped := 0
		for s.canMove(0, 1) {
			s.active.Y++
			dropped++
		}
		ev := s.lock()
		ev.Dropped = dropped
		return ev
	case ActionRotate:
		rotated, kick, ok := ResolveRotation(s.board, s.active)
		if !ok {
			return Event{}
		}
		unchanged := kick == 0 && rotated.Shape.Equal(s.active.Shape)
		s.active = rotated
		if unchanged {
			return Event{}
		}
		return Event{Kind: EventRotated, Kick: kick}
	}
	return Event{}
}

func (s *Session) MoveLeft() bool  { return s.Apply(ActionMoveLeft).Changed() }
func (s *Session) MoveRight() bool { return s.Apply(ActionMoveRight).Changed() }
func (s *Session) SoftDrop() bool  { return s.Apply(ActionSoftDrop).Changed() }
func (s *Session) HardDrop() bool  { return s.Apply(ActionHardDrop).Changed() }
func (s *Session) Rotate() bool    { return s.Apply(ActionRotate).Changed() }

// Pause suspends ticks and input. The drop accumulator is kept, so Resume
// continues the countdown where it stopped.
func (s *Session) Pause() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning {
		return false
	}
	s.state = StatePaused
	return true
}

func (s *Session) Resume() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePaused {
		return false
	}
	s.state = StateRunning
	return true
}

func (s *Session) shift(dx int) Event {
	if !s.canMove(dx, 0) {
		return Event{}
	}
	s.active.X += dx
	return Event{Kind: EventMoved}
}

func (s *Session) canMove(dx, dy int) bool {
	return ValidPlacement(s.board, s.active.Shape, s.active.X+dx, s.active.Y+dy)
}

// lock settles the active piece, clears rows, promotes the next piece and
// checks it at its spawn position.
func (s *Session) lock() Event {
	for _, c := range s.active.Cells() {
		if c.Y < 0 {
			continue
		}
		if err := s.board.SetCell(c.X, c.Y, s.active.Kind); err != nil {
			panic(fmt.Sprintf("engine: locking %s: %v", s.active, err))
		}
	}
	ev := Event{Kind: EventLocked, Locked: true}
	if rows := s.board.CompletedRows(); len(rows) > 0 {
		s.board.RemoveRows(rows)
		ev.Rows = rows
		ev.Cleared = len(rows)
		ev.ScoreDelta, ev.LevelUp = s.progress.Apply(len(rows))
		if ev.LevelUp {
			s.logf("level up level=%d lines=%d interval=%s", s.progress.Level, s.progress.Lines, s.progress.Interval)
		}
	}
	s.active = s.next
	s.next = Spawn(s.random.Next())
	s.acc = 0
	if !s.active.validOn(s.board) {
		s.state = StateGameOver
		ev.Kind = EventGameOver
		s.logf("session over score=%d level=%d lines=%d", s.progress.Score, s.progress.Level, s.progress.Lines)
	}
	return ev
}

// Snapshot is a consistent read-only copy of the session for rendering.
type Snapshot struct {
	Board    Grid
	Active   Piece
	Next     Piece
	GhostY   int
	Score    int
	Level    int
	Lines    int
	Interval time.Duration
	State    State
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Board:    s.board.Snapshot(),
		Active:   s.active.Clone(),
		Next:     s.next.Clone(),
		GhostY:   s.ghostY(),
		Score:    s.progress.Score,
		Level:    s.progress.Level,
		Lines:    s.progress.Lines,
		Interval: s.progress.Interval,
		State:    s.state,
	}
}

func (s *Session) Board() Grid {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Snapshot()
}

// Active returns the falling piece. ok is false before the first Start.
func (s *Session) Active() (Piece, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active.Clone(), s.state != StateNotStarted
}

func (s *Session) Next() (Piece, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next.Clone(), s.state != StateNotStarted
}

func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress.Score
}

func (s *Session) Level() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress.Level
}

func (s *Session) Lines() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress.Lines
}

func (s *Session) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress.Interval
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) IsGameOver() bool {
	return s.State() == StateGameOver
}

// GhostY returns the row the active piece would land on if hard dropped.
func (s *Session) GhostY() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ghostY()
}

func (s *Session) ghostY() int {
	if s.state == StateNotStarted {
		return 0
	}
	y := s.active.Y
	for ValidPlacement(s.board, s.active.Shape, s.active.X, y+1) {
		y++
	}
	return y
}
