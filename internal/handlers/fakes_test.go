package handlers

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/pushups/internal/database"
	"github.com/jason-s-yu/pushups/internal/models"
	"github.com/jason-s-yu/pushups/internal/pushup"
	"github.com/sirupsen/logrus"
)

// memoryStore is an in-memory Store for handler tests.
type memoryStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*models.User
	stats    map[uuid.UUID]models.UserStats
	records  map[uuid.UUID][]models.PushupRecord
	settings map[uuid.UUID]models.UserSettings
	nextID   int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:    map[uuid.UUID]*models.User{},
		stats:    map[uuid.UUID]models.UserStats{},
		records:  map[uuid.UUID][]models.PushupRecord{},
		settings: map[uuid.UUID]models.UserSettings{},
	}
}

func (m *memoryStore) CreateUser(_ context.Context, username, password string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return nil, database.ErrUsernameTaken
		}
	}
	u := &models.User{ID: uuid.New(), Username: username, Password: password, CreatedAt: time.Now()}
	m.users[u.ID] = u
	return u, nil
}

func (m *memoryStore) AuthenticateUser(_ context.Context, username, password string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username && u.Password == password {
			return u, nil
		}
	}
	return nil, database.ErrInvalidCredentials
}

func (m *memoryStore) GetUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return u, nil
}

func (m *memoryStore) GetUserStats(_ context.Context, id uuid.UUID) (models.UserStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.stats[id]; ok {
		return s, nil
	}
	return models.NewUserStats(id), nil
}

func (m *memoryStore) RecordSubmission(_ context.Context, id uuid.UUID, sub pushup.Submission) (database.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub, err := sub.Normalize()
	if err != nil {
		return database.Submission{}, err
	}
	prev, ok := m.stats[id]
	if !ok {
		prev = models.NewUserStats(id)
	}
	out, err := pushup.Apply(prev.Totals(), sub)
	if err != nil {
		return database.Submission{}, err
	}
	next := prev.WithOutcome(out)
	m.stats[id] = next

	m.nextID++
	rec := models.PushupRecord{
		ID:              m.nextID,
		UserID:          id,
		Count:           out.EffectiveCount,
		RawCount:        sub.Count,
		DifficultyLevel: sub.DifficultyLevel,
		CreatedAt:       time.Now(),
	}
	m.records[id] = append([]models.PushupRecord{rec}, m.records[id]...)
	return database.Submission{Record: rec, Stats: next, Outcome: out}, nil
}

func (m *memoryStore) RecentPushupRecords(_ context.Context, id uuid.UUID, limit int) ([]models.PushupRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	recs := m.records[id]
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return append([]models.PushupRecord(nil), recs...), nil
}

func (m *memoryStore) GetUserSettings(_ context.Context, id uuid.UUID) (models.UserSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.settings[id]; ok {
		return s, nil
	}
	return models.UserSettings{UserID: id, Settings: pushup.DefaultSettings()}, nil
}

func (m *memoryStore) UpdateUserSettings(ctx context.Context, id uuid.UUID, patch models.SettingsPatch) (models.UserSettings, error) {
	cur, _ := m.GetUserSettings(ctx, id)
	m.mu.Lock()
	defer m.mu.Unlock()
	cur.Settings = patch.Apply(cur.Settings)
	m.settings[id] = cur
	return cur, nil
}

type memoryRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func (r *memoryRevoker) Revoke(_ context.Context, id string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.revoked == nil {
		r.revoked = map[string]time.Duration{}
	}
	r.revoked[id] = ttl
	return nil
}

func (r *memoryRevoker) IsRevoked(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.revoked[id]
	return ok, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.RankEvent
}

func (p *recordingPublisher) PublishRankEvent(_ context.Context, ev models.RankEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
