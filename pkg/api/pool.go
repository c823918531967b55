package api

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yourusername/ludoengine/internal/boardid"
	"github.com/yourusername/ludoengine/pkg/engine"
)

// SessionPool manages live game sessions keyed by ID.
type SessionPool struct {
	mu           sync.RWMutex
	sessions     map[string]*Session
	maxSessions  int
	stepInterval time.Duration
	nextID       int64
	totalCreated int64
}

// PoolConfig configures the session pool.
type PoolConfig struct {
	MaxSessions  int           // Max concurrent games (default: 256)
	StepInterval time.Duration // Animation/AI tick cadence (default: 120ms)
}

// DefaultPoolConfig returns a PoolConfig with sensible defaults.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxSessions:  256,
		StepInterval: 120 * time.Millisecond,
	}
}

// ErrPoolFull is returned when the session limit is reached.
var ErrPoolFull = errors.New("session limit reached")

// NewSessionPool creates a session pool with the given configuration.
func NewSessionPool(config PoolConfig) *SessionPool {
	if config.MaxSessions <= 0 {
		config.MaxSessions = 256
	}
	if config.StepInterval <= 0 {
		config.StepInterval = 120 * time.Millisecond
	}
	return &SessionPool{
		sessions:     make(map[string]*Session),
		maxSessions:  config.MaxSessions,
		stepInterval: config.StepInterval,
	}
}

// Create starts a new game session and its scheduler loop.
func (p *SessionPool) Create(cfg engine.Config) (*Session, error) {
	g, err := engine.NewGame(cfg)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.sessions) >= p.maxSessions {
		return nil, ErrPoolFull
	}

	id := fmt.Sprintf("g%06d", atomic.AddInt64(&p.nextID, 1))
	s := &Session{
		ID:           id,
		game:         g,
		subs:         make(map[chan EventMessage]struct{}),
		stepInterval: p.stepInterval,
		done:         make(chan struct{}),
	}
	p.sessions[id] = s
	atomic.AddInt64(&p.totalCreated, 1)

	go s.loop()
	return s, nil
}

// Get returns the session with the given ID.
func (p *SessionPool) Get(id string) (*Session, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s, ok := p.sessions[id]
	return s, ok
}

// Remove stops and forgets a session.
func (p *SessionPool) Remove(id string) {
	p.mu.Lock()
	s, ok := p.sessions[id]
	delete(p.sessions, id)
	p.mu.Unlock()
	if ok {
		s.stop()
	}
}

// Close stops every session.
func (p *SessionPool) Close() {
	p.mu.Lock()
	sessions := make([]*Session, 0, len(p.sessions))
	for _, s := range p.sessions {
		sessions = append(sessions, s)
	}
	p.sessions = make(map[string]*Session)
	p.mu.Unlock()
	for _, s := range sessions {
		s.stop()
	}
}

// PoolStats reports current session counts.
type PoolStats struct {
	Active       int   `json:"active"`
	TotalCreated int64 `json:"total_created"`
	Max          int   `json:"max"`
}

// Stats returns current pool statistics.
func (p *SessionPool) Stats() PoolStats {
	p.mu.RLock()
	active := len(p.sessions)
	p.mu.RUnlock()
	return PoolStats{
		Active:       active,
		TotalCreated: atomic.LoadInt64(&p.totalCreated),
		Max:          p.maxSessions,
	}
}

// Session owns one game, its subscriber set and the timer goroutine that
// drives AI turns and animation steps. All game access is serialized by mu,
// so engine handlers never run concurrently.
type Session struct {
	ID string

	mu           sync.Mutex
	game         *engine.Game
	subs         map[chan EventMessage]struct{}
	stepInterval time.Duration
	done         chan struct{}
	stopOnce     sync.Once
}

// loop is the scheduler: one engine step per tick, then event broadcast.
func (s *Session) loop() {
	ticker := time.NewTicker(s.stepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			s.game.Advance()
			s.broadcast(s.game.Events())
			s.mu.Unlock()
		}
	}
}

func (s *Session) stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

// Subscribe registers an event channel. The returned cancel function must
// be called when the subscriber goes away.
func (s *Session) Subscribe() (<-chan EventMessage, func()) {
	ch := make(chan EventMessage, 64)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()
	cancel := func() {
		s.mu.Lock()
		delete(s.subs, ch)
		s.mu.Unlock()
	}
	return ch, cancel
}

// broadcast fans events out to subscribers, dropping for slow consumers.
// Callers must hold s.mu: draining and fan-out stay one critical section,
// so subscribers always see events in engine emission order regardless of
// which goroutine produced them. Sends are non-blocking, so holding the
// lock here cannot deadlock.
func (s *Session) broadcast(events []engine.Event) {
	for _, e := range events {
		msg := eventMessage(e)
		for ch := range s.subs {
			select {
			case ch <- msg:
			default:
			}
		}
	}
}

// RequestRoll rolls the die for a human seat.
func (s *Session) RequestRoll(player int) (RollResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	roll, err := s.game.RequestRoll(player)
	if err != nil {
		return RollResponse{}, err
	}
	resp := RollResponse{
		Roll:        roll,
		Phase:       s.game.Phase.String(),
		LegalTokens: s.game.LegalTokenIndexes(),
	}
	s.broadcast(s.game.Events())
	return resp, nil
}

// SelectToken commits a human seat's token choice.
func (s *Session) SelectToken(player, token int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.game.SelectToken(player, token); err != nil {
		return err
	}
	s.broadcast(s.game.Events())
	return nil
}

// Restart resets the session's game to its initial state.
func (s *Session) Restart() {
	s.mu.Lock()
	s.game.Restart()
	s.mu.Unlock()
}

// Snapshot returns the current observable state.
func (s *Session) Snapshot() GameStateResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.game
	var board boardid.Board
	players := make([]PlayerState, len(g.Players))
	for i := range g.Players {
		ps := PlayerState{
			Index:  i,
			Color:  g.Players[i].Color,
			Human:  g.Players[i].Human,
			Tokens: make([]int, engine.TokensPerPlayer),
		}
		for t := range g.Players[i].Tokens {
			pos := g.Players[i].Tokens[t].Pos
			ps.Tokens[t] = pos
			board[i][t] = int8(pos)
		}
		players[i] = ps
	}
	for i := len(g.Players); i < engine.MaxPlayers; i++ {
		for t := 0; t < engine.TokensPerPlayer; t++ {
			board[i][t] = engine.BasePosition
		}
	}

	return GameStateResponse{
		ID:          s.ID,
		Phase:       g.Phase.String(),
		Current:     g.Current,
		Roll:        g.Roll,
		Winner:      g.Winner,
		Players:     players,
		LegalTokens: g.LegalTokenIndexes(),
		StateID:     boardid.StateIDFromBoard(board),
		BoardStyle:  g.Style,
		Sound:       g.Sound,
	}
}
