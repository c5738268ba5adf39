package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studydesk/core/internal/models"
	jwtpkg "github.com/studydesk/core/internal/pkg/jwt"
	"github.com/studydesk/core/internal/pkg/session"
	"github.com/studydesk/core/internal/testutil"
	"gorm.io/gorm"
)

func TestIssue_BindsTokenToSession(t *testing.T) {
	db := testutil.NewDB(t)
	u := testutil.CreateUser(t, db, "Ann", "ann@example.com")

	token, s, err := session.Issue(db, u.ID, " 10.0.0.1 ", "curl", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", s.IP)

	claims, err := jwtpkg.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, s.ID, claims.SessionID)

	active, err := session.IsActive(db, u.ID, s.ID)
	require.NoError(t, err)
	assert.True(t, active)
}

func TestIsActive_RequiresSessionID(t *testing.T) {
	db := testutil.NewDB(t)

	_, err := session.IsActive(db, "u", "")
	assert.ErrorIs(t, err, session.ErrSessionRequired)
}

func TestRevoke(t *testing.T) {
	db := testutil.NewDB(t)
	u := testutil.CreateUser(t, db, "Ann", "ann@example.com")
	_, s, err := session.Issue(db, u.ID, "", "", time.Hour)
	require.NoError(t, err)

	require.NoError(t, session.Revoke(db, u.ID, s.ID))
	active, err := session.IsActive(db, u.ID, s.ID)
	require.NoError(t, err)
	assert.False(t, active)

	assert.ErrorIs(t, session.Revoke(db, u.ID, s.ID), gorm.ErrRecordNotFound)
}

func TestRevokeAllExcept(t *testing.T) {
	db := testutil.NewDB(t)
	u := testutil.CreateUser(t, db, "Ann", "ann@example.com")
	_, keep, err := session.Issue(db, u.ID, "", "", time.Hour)
	require.NoError(t, err)
	_, other, err := session.Issue(db, u.ID, "", "", time.Hour)
	require.NoError(t, err)

	require.NoError(t, session.RevokeAllExcept(db, u.ID, keep.ID))

	sessions, err := session.ListActive(db, u.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, keep.ID, sessions[0].ID)
	assert.NotEqual(t, other.ID, sessions[0].ID)
}

func TestPurge(t *testing.T) {
	db := testutil.NewDB(t)
	u := testutil.CreateUser(t, db, "Ann", "ann@example.com")
	_, live, err := session.Issue(db, u.ID, "", "", time.Hour)
	require.NoError(t, err)
	_, expired, err := session.Issue(db, u.ID, "", "", time.Hour)
	require.NoError(t, err)
	require.NoError(t, db.Model(expired).Update("expires_at", time.Now().Add(-2*time.Hour)).Error)

	n, err := session.Purge(db, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var ids []string
	require.NoError(t, db.Model(&models.UserSession{}).Pluck("id", &ids).Error)
	assert.Equal(t, []string{live.ID}, ids)
}
