package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/AdamBeresnev/beach-volley/internal/live"
	"github.com/AdamBeresnev/beach-volley/internal/store"
	"github.com/AdamBeresnev/beach-volley/internal/tournament"
)

// Broadcaster pushes updates to live viewers.
type Broadcaster interface {
	Broadcast(room, msgType string, payload any)
}

type nopBroadcaster struct{}

func (nopBroadcaster) Broadcast(string, string, any) {}

// StateManager owns the live tournament. Every mutation runs on a private
// copy that replaces the current state only once it has been saved, so a
// failed operation leaves both memory and storage untouched.
type StateManager struct {
	mu    sync.RWMutex
	state *tournament.State
	store store.SnapshotStore
	hub   Broadcaster
	now   func() time.Time
}

func NewStateManager(ctx context.Context, snapshots store.SnapshotStore, hub Broadcaster) (*StateManager, error) {
	state, err := snapshots.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tournament: %w", err)
	}
	if hub == nil {
		hub = nopBroadcaster{}
	}
	return &StateManager{state: state, store: snapshots, hub: hub, now: time.Now}, nil
}

// Snapshot returns a copy of the current state that callers may keep.
func (m *StateManager) Snapshot() (*tournament.State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneState(m.state, m.now())
}

// Mutate applies fn to a copy of the state and persists the result.
func (m *StateManager) Mutate(ctx context.Context, fn func(*tournament.State) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, err := cloneState(m.state, m.now())
	if err != nil {
		return err
	}
	if err := fn(next); err != nil {
		return err
	}
	if err := m.store.Save(ctx, next); err != nil {
		return fmt.Errorf("failed to save tournament: %w", err)
	}

	phaseChanged := next.Phase != m.state.Phase
	m.state = next

	if phaseChanged {
		m.hub.Broadcast(live.RoomTournament, live.TypePhaseChanged, map[string]tournament.Phase{"phase": next.Phase})
	}
	m.hub.Broadcast(live.RoomTournament, live.TypeStateUpdated, next)
	return nil
}

func cloneState(s *tournament.State, now time.Time) (*tournament.State, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to copy tournament: %w", err)
	}
	var c tournament.State
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to copy tournament: %w", err)
	}
	c.Normalize(now)
	return &c, nil
}
