// Package stats persists per-game records as JSON blobs in a key-value store.
package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Keys under which the games keep their records.
const (
	KeyRunnerHighScore    = "siderRunnerHighScore"
	KeyRunnerAchievements = "siderRunnerAchievements"
	KeyNexusPersistent    = "siderNexusPersistent"
	KeyNexusAchievements  = "siderNexusAchievements"
	KeyChess              = "sider-chess-stats"
)

// Store is a flat key-value store of opaque values.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.data[key]
	return slices.Clone(v), ok, nil
}

func (m *MemoryStore) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = slices.Clone(value)
	return nil
}

// Keys returns the stored keys in sorted order.
func (m *MemoryStore) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Sorted(maps.Keys(m.data))
}

// Load decodes the record at key. A missing key yields def with no error; an
// undecodable value yields def and the error.
func Load[T any](ctx context.Context, s Store, key string, def T) (T, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return def, fmt.Errorf("get %s: %w", key, err)
	}
	if !ok {
		return def, nil
	}

	v := def
	if err := json.Unmarshal(raw, &v); err != nil {
		return def, fmt.Errorf("decode %s: %w", key, err)
	}
	return v, nil
}

// Save encodes v as JSON and stores it at key.
func Save[T any](ctx context.Context, s Store, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// Achievements maps achievement ids to whether they are unlocked.
type Achievements map[string]bool

// Unlock marks id unlocked and reports whether it was newly unlocked.
func (a Achievements) Unlock(id string) bool {
	if a[id] {
		return false
	}
	a[id] = true
	return true
}

// Unlocked returns the unlocked ids in sorted order.
func (a Achievements) Unlocked() []string {
	var ids []string
	for id, ok := range a {
		if ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// ChessRecord counts results of games against the AI. BestTime is the
// fastest win in whole seconds.
type ChessRecord struct {
	GamesPlayed int  `json:"gamesPlayed"`
	Wins        int  `json:"wins"`
	Losses      int  `json:"losses"`
	Draws       int  `json:"draws"`
	BestTime    *int `json:"bestTime"`
}

// NexusRecord accumulates across nexus runs.
type NexusRecord struct {
	HighScore            int      `json:"highScore"`
	TotalPlayTime        float64  `json:"totalPlayTime"`
	EnemiesKilled        int      `json:"enemiesKilled"`
	AchievementsUnlocked []string `json:"achievementsUnlocked"`
	UpgradesUnlocked     []string `json:"upgradesUnlocked"`
}
