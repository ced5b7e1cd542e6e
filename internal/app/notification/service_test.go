package notification

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"
)

type pairKey struct {
	userID     uint64
	activityID string
}

type fakeRepo struct {
	created  map[pairKey]*Notification
	muted    map[uint64]map[string]bool // userID -> category -> muted
	failFor  map[uint64]error
	prefErr  error
	attempts int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		created: make(map[pairKey]*Notification),
		muted:   make(map[uint64]map[string]bool),
		failFor: make(map[uint64]error),
	}
}

func (f *fakeRepo) Create(n *Notification) error {
	f.attempts++
	if err := f.failFor[n.UserID]; err != nil {
		return err
	}
	key := pairKey{n.UserID, n.ActivityID}
	if _, exists := f.created[key]; exists {
		return nil // conflict absorbed, like ON CONFLICT DO NOTHING
	}
	f.created[key] = n
	return nil
}

func (f *fakeRepo) ListByUser(userID uint64, limit int) ([]*Notification, error) {
	var out []*Notification
	for key, n := range f.created {
		if key.userID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeRepo) MarkRead(id, userID uint64) (bool, error) { return false, nil }

func (f *fakeRepo) GetPreference(userID uint64, category string) (bool, error) {
	if f.prefErr != nil {
		return true, f.prefErr
	}
	return !f.muted[userID][category], nil
}

func (f *fakeRepo) ListPreferences(userID uint64) ([]*Preference, error) { return nil, nil }
func (f *fakeRepo) UpsertPreference(p *Preference) error                 { return nil }

func TestNotifyUsersSkipsActor(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, zap.NewNop())

	svc.NotifyUsers("act-1", "move", 7, []uint64{7, 8, 9})

	assert.Len(t, repo.created, 2)
	_, actorNotified := repo.created[pairKey{7, "act-1"}]
	assert.False(t, actorNotified)
}

func TestNotifyUsersHonorsMutedCategory(t *testing.T) {
	// Scenario: U1 muted moves, U2 has no preference row.
	repo := newFakeRepo()
	repo.muted[1] = map[string]bool{"move": true}
	svc := NewService(repo, zap.NewNop())

	svc.NotifyUsers("act-1", "move", 7, []uint64{1, 2})

	require.Len(t, repo.created, 1)
	_, u2 := repo.created[pairKey{2, "act-1"}]
	assert.True(t, u2)
}

func TestNotifyUsersIdempotent(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, zap.NewNop())

	svc.NotifyUsers("act-1", "move", 7, []uint64{8})
	svc.NotifyUsers("act-1", "move", 7, []uint64{8})

	assert.Len(t, repo.created, 1)
	assert.Equal(t, 2, repo.attempts)
}

func TestNotifyUsersIsolatesFailures(t *testing.T) {
	repo := newFakeRepo()
	repo.failFor[8] = errors.New("insert failed")
	svc := NewService(repo, zap.NewNop())

	svc.NotifyUsers("act-1", "move", 7, []uint64{8, 9})

	_, u9 := repo.created[pairKey{9, "act-1"}]
	assert.True(t, u9, "failure for one recipient must not block the rest")
}

func TestNotifyUsersDefaultsToEnabledOnPreferenceError(t *testing.T) {
	repo := newFakeRepo()
	repo.prefErr = errors.New("preference store down")
	svc := NewService(repo, zap.NewNop())

	svc.NotifyUsers("act-1", "move", 7, []uint64{8})

	assert.Len(t, repo.created, 1)
}
