package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var journalEpoch = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func TestEventRepository_Record(t *testing.T) {
	repo := newTestStore(t).Events()

	e := &Event{Kind: EventCommand, Mode: "MEDIA", Command: "next", OK: true}
	require.NoError(t, repo.Record(e))

	_, err := uuid.Parse(e.ID)
	assert.NoError(t, err, "Record should assign a UUID")
	assert.False(t, e.CreatedAt.IsZero())

	got, err := repo.GetByID(e.ID)
	require.NoError(t, err)
	assert.Equal(t, EventCommand, got.Kind)
	assert.Equal(t, "MEDIA", got.Mode)
	assert.Equal(t, "next", got.Command)
	assert.True(t, got.OK)
	assert.Equal(t, "", got.SessionID)
	assert.True(t, e.CreatedAt.Equal(got.CreatedAt))
}

func TestEventRepository_RecordFailure(t *testing.T) {
	repo := newTestStore(t).Events()

	e := &Event{Kind: EventCommand, Mode: "MEDIA", Command: "play_pause", Error: "xdotool: not found"}
	require.NoError(t, repo.Record(e))

	got, err := repo.GetByID(e.ID)
	require.NoError(t, err)
	assert.False(t, got.OK)
	assert.Equal(t, "xdotool: not found", got.Error)
}

func TestEventRepository_RejectsUnknownKind(t *testing.T) {
	repo := newTestStore(t).Events()

	err := repo.Record(&Event{Kind: "gesture", Mode: "VOLUME"})
	assert.Error(t, err)
}

func TestEventRepository_GetByID_NotFound(t *testing.T) {
	repo := newTestStore(t).Events()

	_, err := repo.GetByID("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEventRepository_Recent(t *testing.T) {
	repo := newTestStore(t).Events()

	for i, mode := range []string{"BRIGHTNESS", "MEDIA", "VOLUME"} {
		require.NoError(t, repo.Record(&Event{
			Kind:      EventModeSwitch,
			Mode:      mode,
			OK:        true,
			CreatedAt: journalEpoch.Add(time.Duration(i) * time.Second),
		}))
	}

	events, err := repo.Recent(2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "VOLUME", events[0].Mode)
	assert.Equal(t, "MEDIA", events[1].Mode)

	all, err := repo.Recent(10)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestEventRepository_LastCommand(t *testing.T) {
	repo := newTestStore(t).Events()

	_, err := repo.LastCommand()
	assert.ErrorIs(t, err, ErrNotFound)

	records := []Event{
		{Kind: EventCommand, Mode: "MEDIA", Command: "next", OK: true, CreatedAt: journalEpoch},
		{Kind: EventCommand, Mode: "MEDIA", Command: "previous", Error: "timed out", CreatedAt: journalEpoch.Add(time.Second)},
		{Kind: EventModeSwitch, Mode: "VOLUME", OK: true, CreatedAt: journalEpoch.Add(2 * time.Second)},
	}
	for i := range records {
		require.NoError(t, repo.Record(&records[i]))
	}

	got, err := repo.LastCommand()
	require.NoError(t, err)
	assert.Equal(t, records[0].ID, got.ID)
	assert.Equal(t, "next", got.Command)
}

func TestEventRepository_CountByCommand(t *testing.T) {
	repo := newTestStore(t).Events()

	records := []Event{
		{Kind: EventCommand, Mode: "MEDIA", Command: "play_pause", OK: true},
		{Kind: EventCommand, Mode: "MEDIA", Command: "play_pause", OK: true},
		{Kind: EventCommand, Mode: "MEDIA", Command: "next", OK: true},
		{Kind: EventCommand, Mode: "MEDIA", Command: "previous", Error: "timed out"},
		{Kind: EventModeSwitch, Mode: "MEDIA", OK: true},
	}
	for i := range records {
		require.NoError(t, repo.Record(&records[i]))
	}

	counts, err := repo.CountByCommand()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"play_pause": 2, "next": 1}, counts)
}

func TestStore_Sessions(t *testing.T) {
	s := newTestStore(t)

	sess, err := s.StartSession(journalEpoch)
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)

	e := &Event{SessionID: sess.ID, Kind: EventModeSwitch, Mode: "BRIGHTNESS", OK: true}
	require.NoError(t, s.Events().Record(e))

	got, err := s.Events().GetByID(e.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.SessionID)

	require.NoError(t, s.EndSession(sess.ID, journalEpoch.Add(time.Minute)))
	assert.ErrorIs(t, s.EndSession("missing", journalEpoch), ErrNotFound)

	var ended int64
	require.NoError(t, s.DB().QueryRow(`SELECT ended_at FROM sessions WHERE id = ?`, sess.ID).Scan(&ended))
	assert.Equal(t, journalEpoch.Add(time.Minute).UnixNano(), ended)
}

func TestEventRepository_UnknownSessionRejected(t *testing.T) {
	repo := newTestStore(t).Events()

	err := repo.Record(&Event{SessionID: "no-such-session", Kind: EventModeSwitch, Mode: "MEDIA"})
	assert.Error(t, err, "foreign key should reject unknown sessions")
}
