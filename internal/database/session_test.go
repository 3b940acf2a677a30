package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	db := newTestDB(t)
	ss := NewSessionService(db)

	user := seedUser(t, db, "reader")

	session, err := ss.CreateSession(user.ID)
	require.NoError(t, err)
	assert.Len(t, session.Token, TokenLength*2)

	got, err := ss.GetUserBySession(session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	require.NoError(t, ss.DeleteSession(session.Token))

	_, err = ss.GetSession(session.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestCreateSessionReplacesOldOnes(t *testing.T) {
	db := newTestDB(t)
	ss := NewSessionService(db)

	user := seedUser(t, db, "reader")

	first, err := ss.CreateSession(user.ID)
	require.NoError(t, err)

	second, err := ss.CreateSession(user.ID)
	require.NoError(t, err)
	require.NotEqual(t, first.Token, second.Token)

	// Старая сессия аннулирована
	_, err = ss.GetSession(first.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = ss.GetSession(second.Token)
	assert.NoError(t, err)
}

func TestExpiredSessionIsRejected(t *testing.T) {
	db := newTestDB(t)
	ss := NewSessionService(db)

	user := seedUser(t, db, "reader")

	session, err := ss.CreateSession(user.ID)
	require.NoError(t, err)

	// Принудительно истекаем сессию
	_, err = db.DBConn.Exec(`UPDATE sessions SET expires = ? WHERE token = ?`,
		time.Now().Add(-time.Minute), session.Token)
	require.NoError(t, err)

	_, err = ss.GetSession(session.Token)
	assert.ErrorIs(t, err, ErrSessionExpired)

	// Истекшая сессия удалена
	_, err = ss.GetSession(session.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestCleanupExpiredSessions(t *testing.T) {
	db := newTestDB(t)
	ss := NewSessionService(db)

	user := seedUser(t, db, "reader")

	session, err := ss.CreateSession(user.ID)
	require.NoError(t, err)

	_, err = db.DBConn.Exec(`UPDATE sessions SET expires = ? WHERE token = ?`,
		time.Now().Add(-time.Minute), session.Token)
	require.NoError(t, err)

	require.NoError(t, ss.CleanupExpiredSessions())

	var count int
	require.NoError(t, db.DBConn.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&count))
	assert.Zero(t, count)
}
