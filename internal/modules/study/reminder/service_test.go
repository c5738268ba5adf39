package reminder

import (
	"testing"
	"time"

	"github.com/studydesk/core/internal/models"
	"github.com/studydesk/core/internal/pkg/nullable"
	"github.com/studydesk/core/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(v bool) *bool    { return &v }

func newFixture(t *testing.T) (*Service, string, string) {
	t.Helper()
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice", "alice@example.com")
	bob := testutil.CreateUser(t, db, "bob", "bob@example.com")
	return NewService(db), alice.ID, bob.ID
}

func mustCreate(t *testing.T, svc *Service, userID, title string, at time.Time) *models.ReminderModel {
	t.Helper()
	r, err := svc.Create(userID, &CreateReminderDTO{Title: title, ReminderTime: &at})
	require.NoError(t, err)
	return r
}

func TestCreateForcesFlags(t *testing.T) {
	svc, alice, _ := newFixture(t)
	at := time.Now().Add(time.Hour)
	r := mustCreate(t, svc, alice, " Exam ", at)

	assert.Equal(t, "Exam", r.Title)
	assert.False(t, r.IsCompleted)
	assert.False(t, r.IsNotified)
	assert.Equal(t, time.UTC, r.ReminderTime.Location())
	assert.True(t, r.ReminderTime.Equal(at))
}

func TestListOrderedByTime(t *testing.T) {
	svc, alice, bob := newFixture(t)
	now := time.Now()
	later := mustCreate(t, svc, alice, "later", now.Add(2*time.Hour))
	sooner := mustCreate(t, svc, alice, "sooner", now.Add(time.Hour))
	mustCreate(t, svc, bob, "bob's", now)

	items, err := svc.List(alice)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, sooner.ID, items[0].ID)
	assert.Equal(t, later.ID, items[1].ID)
}

func TestOwnershipIsNotFound(t *testing.T) {
	svc, alice, bob := newFixture(t)
	r := mustCreate(t, svc, alice, "mine", time.Now())

	_, err := svc.GetByID(r.ID, bob)
	assert.ErrorIs(t, err, errReminderNotFound)
	_, err = svc.Update(r.ID, bob, &UpdateReminderDTO{Title: strPtr("x")})
	assert.ErrorIs(t, err, errReminderNotFound)
	assert.ErrorIs(t, svc.Delete(r.ID, bob), errReminderNotFound)

	require.NoError(t, svc.Delete(r.ID, alice))
	_, err = svc.GetByID(r.ID, alice)
	assert.ErrorIs(t, err, errReminderNotFound)
}

func TestUpdateMergesFields(t *testing.T) {
	svc, alice, _ := newFixture(t)
	r, err := svc.Create(alice, &CreateReminderDTO{
		Title:        "Read",
		Description:  strPtr("chapter 4"),
		ReminderTime: func() *time.Time { at := time.Now(); return &at }(),
	})
	require.NoError(t, err)

	got, err := svc.Update(r.ID, alice, &UpdateReminderDTO{IsCompleted: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, got.IsCompleted)
	assert.Equal(t, "Read", got.Title)
	require.NotNil(t, got.Description)

	got, err = svc.Update(r.ID, alice, &UpdateReminderDTO{Description: nullable.Null()})
	require.NoError(t, err)
	assert.Nil(t, got.Description)
	assert.True(t, got.IsCompleted)
}

func TestPendingIsNotIdempotent(t *testing.T) {
	svc, alice, bob := newFixture(t)
	now := time.Now()
	due := mustCreate(t, svc, alice, "due", now.Add(-time.Minute))
	older := mustCreate(t, svc, alice, "older", now.Add(-time.Hour))
	mustCreate(t, svc, alice, "future", now.Add(time.Hour))
	done := mustCreate(t, svc, alice, "done", now.Add(-time.Hour))
	_, err := svc.Update(done.ID, alice, &UpdateReminderDTO{IsCompleted: boolPtr(true)})
	require.NoError(t, err)
	mustCreate(t, svc, bob, "bob due", now.Add(-time.Minute))

	first, err := svc.Pending(alice)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, older.ID, first[0].ID)
	assert.Equal(t, due.ID, first[1].ID)
	for _, r := range first {
		assert.False(t, r.IsNotified)
	}

	second, err := svc.Pending(alice)
	require.NoError(t, err)
	assert.Empty(t, second)

	stored, err := svc.GetByID(due.ID, alice)
	require.NoError(t, err)
	assert.True(t, stored.IsNotified)

	bobs, err := svc.Pending(bob)
	require.NoError(t, err)
	assert.Len(t, bobs, 1)
}

func TestPendingUsesClock(t *testing.T) {
	svc, alice, _ := newFixture(t)
	at := time.Date(2025, 5, 1, 12, 0, 0, 0, time.FixedZone("UTC+8", 8*3600))
	mustCreate(t, svc, alice, "noon", at)

	svc.now = func() time.Time { return at.Add(-time.Second) }
	items, err := svc.Pending(alice)
	require.NoError(t, err)
	assert.Empty(t, items)

	svc.now = func() time.Time { return at.UTC() }
	items, err = svc.Pending(alice)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
