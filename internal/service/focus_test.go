package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drewham94/AMai-Code/internal/models"
)

func TestFocusRecordExactlyOnce(t *testing.T) {
	env := newTestEnv(t)
	svc := NewFocusService(env.focus)

	session := &models.FocusSession{
		ID:      "focus-1",
		Date:    time.Now().UTC(),
		Minutes: 25,
	}
	require.NoError(t, svc.Record(testEmail, session))
	// Retried completion with the same id must not double-count
	require.NoError(t, svc.Record(testEmail, session))

	sessions, err := svc.List(testEmail)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, 25, sessions[0].Minutes)
}

func TestFocusRecordAssignsID(t *testing.T) {
	env := newTestEnv(t)
	svc := NewFocusService(env.focus)

	session := &models.FocusSession{Date: time.Now().UTC(), Minutes: 10}
	require.NoError(t, svc.Record(testEmail, session))
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, testEmail, session.UserEmail)
}

func TestFocusTimerCompletionRecordsSession(t *testing.T) {
	env := newTestEnv(t)
	svc := NewFocusService(env.focus)
	svc.tick = time.Microsecond

	require.NoError(t, svc.StartTimer(testEmail, 1))

	deadline := time.After(2 * time.Second)
	for {
		sessions, err := svc.List(testEmail)
		require.NoError(t, err)
		if len(sessions) == 1 {
			assert.Equal(t, 1, sessions[0].Minutes)
			return
		}
		select {
		case <-deadline:
			t.Fatal("timer never recorded a focus session")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestFocusTimerCancelRecordsNothing(t *testing.T) {
	env := newTestEnv(t)
	svc := NewFocusService(env.focus)

	require.NoError(t, svc.StartTimer(testEmail, 25))

	remaining, err := svc.Remaining(testEmail)
	require.NoError(t, err)
	assert.True(t, remaining > 0)

	require.NoError(t, svc.CancelTimer(testEmail))

	sessions, err := svc.List(testEmail)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	_, err = svc.Remaining(testEmail)
	assert.ErrorIs(t, err, ErrNoTimer)
}

func TestFocusTimerOnePerUser(t *testing.T) {
	env := newTestEnv(t)
	svc := NewFocusService(env.focus)

	require.NoError(t, svc.StartTimer(testEmail, 25))
	assert.ErrorIs(t, svc.StartTimer(testEmail, 10), ErrTimerRunning)
	require.NoError(t, svc.CancelTimer(testEmail))
}

func TestFocusTimerRejectsInvalidDuration(t *testing.T) {
	env := newTestEnv(t)
	svc := NewFocusService(env.focus)

	assert.Error(t, svc.StartTimer(testEmail, 0))
	assert.Error(t, svc.StartTimer(testEmail, -5))
}
