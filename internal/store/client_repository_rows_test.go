package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-fit-sync/internal/config"
	"github.com/MKhiriev/go-fit-sync/internal/logger"
	"github.com/MKhiriev/go-fit-sync/models"
)

const athleteID = "athlete-1"

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

func newTestSQLite(t *testing.T) *DB {
	t.Helper()
	return openTestSQLite(t, filepath.Join(t.TempDir(), "local.db"))
}

func openTestSQLite(t *testing.T, path string) *DB {
	t.Helper()
	db, err := NewConnectSQLite(testContext(), config.ClientDB{DSN: path}, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, db.MigrateSQLite())
	t.Cleanup(func() { db.Close() })
	return db
}

// localWinsOnTie keeps a pending change unless the remote row is strictly newer.
type localWinsOnTie struct{}

func (localWinsOnTie) LocalWins(local models.ChangeRecord, remote models.Row) bool {
	return !local.LocalTimestamp.Before(remote.UpdatedAt)
}

func writeWorkout(t *testing.T, repo LocalRowRepository, id, fields string) models.ChangeRecord {
	t.Helper()
	record, err := repo.Write(testContext(), athleteID, models.LocalWrite{
		EntityType: models.EntityWorkoutLogs,
		EntityID:   id,
		Fields:     json.RawMessage(fields),
	})
	require.NoError(t, err)
	return record
}

func workoutKey(id string) models.RowKey {
	return models.RowKey{EntityType: models.EntityWorkoutLogs, EntityID: id}
}

func TestLocalRowRepository_WriteJournalsChange(t *testing.T) {
	db := newTestSQLite(t)
	repo := NewLocalRowRepository(db)
	journal := NewChangeJournal(db)
	ctx := testContext()

	record := writeWorkout(t, repo, "w1", `{"distance_km": 10}`)

	assert.Equal(t, models.OperationInsert, record.Operation)
	assert.Equal(t, athleteID, record.OwnerID)
	assert.Equal(t, int64(0), record.BaseVersion)
	assert.Equal(t, int64(1), record.RowVersion)
	assert.NotEmpty(t, record.ID)

	view, err := repo.Read(ctx, athleteID, workoutKey("w1"))
	require.NoError(t, err)
	assert.True(t, view.IsPending())
	require.NotNil(t, view.Pending)
	assert.Equal(t, record.ID, view.Pending.ID)
	assert.Equal(t, int64(0), view.BasedOnVersion)
	assert.JSONEq(t, `{"distance_km": 10}`, string(view.Row.Fields))

	pending, err := journal.DrainUnsynced(ctx, athleteID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, record.ID, pending[0].ID)
	assert.Equal(t, models.JournalPending, pending[0].Status)
	assert.True(t, record.LocalTimestamp.Equal(pending[0].LocalTimestamp))
}

func TestLocalRowRepository_SecondWriteSupersedes(t *testing.T) {
	db := newTestSQLite(t)
	repo := NewLocalRowRepository(db)
	journal := NewChangeJournal(db)
	ctx := testContext()

	first := writeWorkout(t, repo, "w1", `{"distance_km": 10}`)
	second := writeWorkout(t, repo, "w1", `{"distance_km": 12}`)

	assert.Equal(t, models.OperationUpdate, second.Operation)
	assert.True(t, second.LocalTimestamp.After(first.LocalTimestamp))
	assert.Equal(t, int64(1), second.RowVersion)

	pending, err := journal.DrainUnsynced(ctx, athleteID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second.ID, pending[0].ID)

	count, err := journal.PendingCount(ctx, athleteID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLocalRowRepository_LogicalClockIsMonotonic(t *testing.T) {
	db := newTestSQLite(t)
	repo := NewLocalRowRepository(db).(*localRowRepository)
	frozen := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return frozen }

	a := writeWorkout(t, repo, "w1", `{}`)
	b := writeWorkout(t, repo, "w2", `{}`)
	c := writeWorkout(t, repo, "w1", `{}`)

	assert.True(t, frozen.Equal(a.LocalTimestamp))
	assert.True(t, frozen.Add(time.Microsecond).Equal(b.LocalTimestamp))
	assert.True(t, frozen.Add(2*time.Microsecond).Equal(c.LocalTimestamp))
}

func TestLocalRowRepository_WriteValidation(t *testing.T) {
	db := newTestSQLite(t)
	repo := NewLocalRowRepository(db)

	tests := []struct {
		name  string
		write models.LocalWrite
	}{
		{
			name:  "unknown entity type",
			write: models.LocalWrite{EntityType: "invoices", EntityID: "x", Fields: json.RawMessage(`{}`)},
		},
		{
			name:  "empty id",
			write: models.LocalWrite{EntityType: models.EntityWorkoutLogs, Fields: json.RawMessage(`{}`)},
		},
		{
			name:  "fields not an object",
			write: models.LocalWrite{EntityType: models.EntityWorkoutLogs, EntityID: "x", Fields: json.RawMessage(`[1,2]`)},
		},
		{
			name:  "invalid json",
			write: models.LocalWrite{EntityType: models.EntityWorkoutLogs, EntityID: "x", Fields: json.RawMessage(`{`)},
		},
		{
			name:  "id longer than the server accepts",
			write: models.LocalWrite{EntityType: models.EntityWorkoutLogs, EntityID: strings.Repeat("w", 129), Fields: json.RawMessage(`{}`)},
		},
		{
			name:  "owner longer than the server accepts",
			write: models.LocalWrite{EntityType: models.EntityWorkoutLogs, EntityID: "x", OwnerID: strings.Repeat("a", 129), Fields: json.RawMessage(`{}`)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Write(testContext(), athleteID, tt.write)
			assert.ErrorIs(t, err, ErrInvalidRow)
		})
	}

	pending, err := NewChangeJournal(db).PendingCount(testContext(), athleteID)
	require.NoError(t, err)
	assert.Zero(t, pending)
}

func TestLocalRowRepository_OwnerCannotChange(t *testing.T) {
	repo := NewLocalRowRepository(newTestSQLite(t))
	writeWorkout(t, repo, "w1", `{}`)

	_, err := repo.Write(testContext(), athleteID, models.LocalWrite{
		EntityType: models.EntityWorkoutLogs,
		EntityID:   "w1",
		OwnerID:    "someone-else",
		Fields:     json.RawMessage(`{}`),
	})
	assert.ErrorIs(t, err, ErrOwnerMismatch)
}

func TestLocalRowRepository_Delete(t *testing.T) {
	repo := NewLocalRowRepository(newTestSQLite(t))
	ctx := testContext()

	_, err := repo.Delete(ctx, athleteID, workoutKey("missing"))
	assert.ErrorIs(t, err, ErrRowNotFound)

	writeWorkout(t, repo, "w1", `{"distance_km": 5}`)
	record, err := repo.Delete(ctx, athleteID, workoutKey("w1"))
	require.NoError(t, err)
	assert.Equal(t, models.OperationDelete, record.Operation)
	assert.Empty(t, record.Payload)

	_, err = repo.Read(ctx, athleteID, workoutKey("w1"))
	assert.ErrorIs(t, err, ErrRowNotFound)

	_, err = repo.Delete(ctx, athleteID, workoutKey("w1"))
	assert.ErrorIs(t, err, ErrRowNotFound)

	// Writing again recreates the row.
	again := writeWorkout(t, repo, "w1", `{"distance_km": 6}`)
	assert.Equal(t, models.OperationInsert, again.Operation)
}

func TestLocalRowRepository_List(t *testing.T) {
	db := newTestSQLite(t)
	repo := NewLocalRowRepository(db)
	ctx := testContext()

	w1 := writeWorkout(t, repo, "w1", `{"n": 1}`)
	writeWorkout(t, repo, "w2", `{"n": 2}`)
	writeWorkout(t, repo, "w3", `{"n": 3}`)
	_, err := repo.Delete(ctx, athleteID, workoutKey("w3"))
	require.NoError(t, err)

	_, err = repo.ResolvePush(ctx, athleteID, []models.ChangeRecord{w1}, models.PushResponse{
		Accepted: []models.AcceptedChange{{ChangeID: w1.ID, RowVersion: 1, Seq: 1}},
	}, localWinsOnTie{})
	require.NoError(t, err)

	views, err := repo.List(ctx, athleteID, models.EntityWorkoutLogs)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, "w1", views[0].Row.EntityID)
	assert.Equal(t, models.RowConfirmed, views[0].State)
	assert.Equal(t, int64(1), views[0].Row.RowVersion)

	assert.Equal(t, "w2", views[1].Row.EntityID)
	assert.Equal(t, models.RowPendingLocal, views[1].State)
	require.NotNil(t, views[1].Pending)

	other, err := repo.List(ctx, athleteID, models.EntityTestResults)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestLocalRowRepository_ResolvePush(t *testing.T) {
	ctx := testContext()

	t.Run("accepted confirms the row", func(t *testing.T) {
		db := newTestSQLite(t)
		repo := NewLocalRowRepository(db)
		record := writeWorkout(t, repo, "w1", `{"n": 1}`)

		report, err := repo.ResolvePush(ctx, athleteID, []models.ChangeRecord{record}, models.PushResponse{
			Accepted: []models.AcceptedChange{{ChangeID: record.ID, RowVersion: 1, Seq: 7}},
		}, localWinsOnTie{})
		require.NoError(t, err)
		assert.Equal(t, 1, report.Synced)
		assert.Zero(t, report.Unanswered)

		view, err := repo.Read(ctx, athleteID, workoutKey("w1"))
		require.NoError(t, err)
		assert.Equal(t, models.RowConfirmed, view.State)
		assert.Equal(t, int64(1), view.Row.RowVersion)

		pending, err := NewChangeJournal(db).DrainUnsynced(ctx, athleteID)
		require.NoError(t, err)
		assert.Empty(t, pending)

		next := writeWorkout(t, repo, "w1", `{"n": 2}`)
		assert.Equal(t, int64(1), next.BaseVersion)
		assert.Equal(t, int64(2), next.RowVersion)
	})

	t.Run("newer local change stays pending", func(t *testing.T) {
		db := newTestSQLite(t)
		repo := NewLocalRowRepository(db)
		pushed := writeWorkout(t, repo, "w1", `{"n": 1}`)
		newer := writeWorkout(t, repo, "w1", `{"n": 2}`)

		_, err := repo.ResolvePush(ctx, athleteID, []models.ChangeRecord{pushed}, models.PushResponse{
			Accepted: []models.AcceptedChange{{ChangeID: pushed.ID, RowVersion: 1}},
		}, localWinsOnTie{})
		require.NoError(t, err)

		view, err := repo.Read(ctx, athleteID, workoutKey("w1"))
		require.NoError(t, err)
		assert.True(t, view.IsPending())
		assert.Equal(t, newer.ID, view.Pending.ID)
		assert.Equal(t, int64(1), view.BasedOnVersion)
		assert.JSONEq(t, `{"n": 2}`, string(view.Row.Fields))
	})

	t.Run("stale loses to newer server row", func(t *testing.T) {
		db := newTestSQLite(t)
		repo := NewLocalRowRepository(db)
		record := writeWorkout(t, repo, "w1", `{"n": 1}`)

		serverRow := models.Row{
			EntityType: models.EntityWorkoutLogs,
			EntityID:   "w1",
			OwnerID:    athleteID,
			Fields:     json.RawMessage(`{"n": 99}`),
			RowVersion: 3,
			UpdatedAt:  record.LocalTimestamp.Add(time.Hour),
		}
		report, err := repo.ResolvePush(ctx, athleteID, []models.ChangeRecord{record}, models.PushResponse{
			Conflicts: []models.Conflict{{ChangeID: record.ID, Reason: models.ConflictStale, ServerRow: &serverRow}},
		}, localWinsOnTie{})
		require.NoError(t, err)
		assert.Equal(t, 1, report.Discarded)
		require.Len(t, report.Warnings, 1)
		assert.Contains(t, report.Warnings[0], "workout_logs/w1")

		view, err := repo.Read(ctx, athleteID, workoutKey("w1"))
		require.NoError(t, err)
		assert.Equal(t, models.RowConfirmed, view.State)
		assert.Equal(t, int64(3), view.Row.RowVersion)
		assert.JSONEq(t, `{"n": 99}`, string(view.Row.Fields))

		pending, err := NewChangeJournal(db).DrainUnsynced(ctx, athleteID)
		require.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("stale with equal timestamp is rebased", func(t *testing.T) {
		db := newTestSQLite(t)
		repo := NewLocalRowRepository(db)
		record := writeWorkout(t, repo, "w1", `{"n": 1}`)

		serverRow := models.Row{
			EntityType: models.EntityWorkoutLogs,
			EntityID:   "w1",
			OwnerID:    athleteID,
			Fields:     json.RawMessage(`{"n": 99}`),
			RowVersion: 3,
			UpdatedAt:  record.LocalTimestamp,
		}
		report, err := repo.ResolvePush(ctx, athleteID, []models.ChangeRecord{record}, models.PushResponse{
			Conflicts: []models.Conflict{{ChangeID: record.ID, Reason: models.ConflictStale, ServerRow: &serverRow}},
		}, localWinsOnTie{})
		require.NoError(t, err)
		assert.Equal(t, 1, report.Rebased)
		assert.Empty(t, report.Warnings)

		pending, err := NewChangeJournal(db).DrainUnsynced(ctx, athleteID)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.NotEqual(t, record.ID, pending[0].ID)
		assert.Equal(t, int64(3), pending[0].BaseVersion)
		assert.Equal(t, int64(4), pending[0].RowVersion)
		assert.JSONEq(t, `{"n": 1}`, string(pending[0].Payload))

		view, err := repo.Read(ctx, athleteID, workoutKey("w1"))
		require.NoError(t, err)
		assert.True(t, view.IsPending())
		assert.Equal(t, int64(3), view.BasedOnVersion)
		assert.JSONEq(t, `{"n": 1}`, string(view.Row.Fields))
	})

	t.Run("scope violation removes a never confirmed row", func(t *testing.T) {
		db := newTestSQLite(t)
		repo := NewLocalRowRepository(db)
		record := writeWorkout(t, repo, "w1", `{"n": 1}`)

		report, err := repo.ResolvePush(ctx, athleteID, []models.ChangeRecord{record}, models.PushResponse{
			Conflicts: []models.Conflict{{ChangeID: record.ID, Reason: models.ConflictScope, Message: "not allowed"}},
		}, localWinsOnTie{})
		require.NoError(t, err)
		assert.Equal(t, 1, report.Discarded)
		require.Len(t, report.Warnings, 1)
		assert.Contains(t, report.Warnings[0], "scope violation")

		_, err = repo.Read(ctx, athleteID, workoutKey("w1"))
		assert.ErrorIs(t, err, ErrRowNotFound)
	})

	t.Run("scope violation reverts to confirmed state", func(t *testing.T) {
		db := newTestSQLite(t)
		repo := NewLocalRowRepository(db)
		first := writeWorkout(t, repo, "w1", `{"n": 1}`)
		_, err := repo.ResolvePush(ctx, athleteID, []models.ChangeRecord{first}, models.PushResponse{
			Accepted: []models.AcceptedChange{{ChangeID: first.ID, RowVersion: 1}},
		}, localWinsOnTie{})
		require.NoError(t, err)

		second := writeWorkout(t, repo, "w1", `{"n": 2}`)
		_, err = repo.ResolvePush(ctx, athleteID, []models.ChangeRecord{second}, models.PushResponse{
			Conflicts: []models.Conflict{{ChangeID: second.ID, Reason: models.ConflictScope}},
		}, localWinsOnTie{})
		require.NoError(t, err)

		view, err := repo.Read(ctx, athleteID, workoutKey("w1"))
		require.NoError(t, err)
		assert.Equal(t, models.RowConfirmed, view.State)
		assert.JSONEq(t, `{"n": 1}`, string(view.Row.Fields))
	})

	t.Run("unanswered records stay pending", func(t *testing.T) {
		db := newTestSQLite(t)
		repo := NewLocalRowRepository(db)
		a := writeWorkout(t, repo, "w1", `{}`)
		b := writeWorkout(t, repo, "w2", `{}`)

		report, err := repo.ResolvePush(ctx, athleteID, []models.ChangeRecord{a, b}, models.PushResponse{
			Accepted: []models.AcceptedChange{{ChangeID: a.ID, RowVersion: 1}},
		}, localWinsOnTie{})
		require.NoError(t, err)
		assert.Equal(t, 1, report.Unanswered)

		pending, err := NewChangeJournal(db).DrainUnsynced(ctx, athleteID)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, b.ID, pending[0].ID)
	})
}

func TestLocalRowRepository_ApplyRemote(t *testing.T) {
	ctx := testContext()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	remote := func(id string, version int64, updatedAt time.Time, fields string) models.Row {
		return models.Row{
			EntityType: models.EntityWorkoutLogs,
			EntityID:   id,
			OwnerID:    athleteID,
			Fields:     json.RawMessage(fields),
			RowVersion: version,
			UpdatedAt:  updatedAt,
		}
	}

	t.Run("inserts and skips known versions", func(t *testing.T) {
		repo := NewLocalRowRepository(newTestSQLite(t))

		report, err := repo.ApplyRemote(ctx, athleteID, []models.Row{remote("w1", 1, base, `{"n": 1}`)}, localWinsOnTie{})
		require.NoError(t, err)
		assert.Equal(t, 1, report.Applied)

		report, err = repo.ApplyRemote(ctx, athleteID, []models.Row{remote("w1", 1, base, `{"n": 1}`)}, localWinsOnTie{})
		require.NoError(t, err)
		assert.Equal(t, 0, report.Applied)
		assert.Equal(t, 1, report.Skipped)

		report, err = repo.ApplyRemote(ctx, athleteID, []models.Row{remote("w1", 2, base.Add(time.Minute), `{"n": 2}`)}, localWinsOnTie{})
		require.NoError(t, err)
		assert.Equal(t, 1, report.Applied)

		view, err := repo.Read(ctx, athleteID, workoutKey("w1"))
		require.NoError(t, err)
		assert.Equal(t, models.RowConfirmed, view.State)
		assert.Equal(t, int64(2), view.Row.RowVersion)
		assert.JSONEq(t, `{"n": 2}`, string(view.Row.Fields))
	})

	t.Run("newer pending local change is kept", func(t *testing.T) {
		db := newTestSQLite(t)
		repo := NewLocalRowRepository(db)
		local := writeWorkout(t, repo, "w1", `{"n": "local"}`)

		report, err := repo.ApplyRemote(ctx, athleteID,
			[]models.Row{remote("w1", 1, local.LocalTimestamp.Add(-time.Second), `{"n": "remote"}`)}, localWinsOnTie{})
		require.NoError(t, err)
		assert.Equal(t, 1, report.Kept)
		assert.Zero(t, report.Applied)

		view, err := repo.Read(ctx, athleteID, workoutKey("w1"))
		require.NoError(t, err)
		assert.True(t, view.IsPending())
		assert.Equal(t, int64(1), view.BasedOnVersion)
		assert.JSONEq(t, `{"n": "local"}`, string(view.Row.Fields))

		pending, err := NewChangeJournal(db).DrainUnsynced(ctx, athleteID)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, int64(1), pending[0].BaseVersion)
		assert.Equal(t, int64(2), pending[0].RowVersion)
	})

	t.Run("older pending local change is discarded", func(t *testing.T) {
		db := newTestSQLite(t)
		repo := NewLocalRowRepository(db)
		local := writeWorkout(t, repo, "w1", `{"n": "local"}`)

		report, err := repo.ApplyRemote(ctx, athleteID,
			[]models.Row{remote("w1", 1, local.LocalTimestamp.Add(time.Second), `{"n": "remote"}`)}, localWinsOnTie{})
		require.NoError(t, err)
		assert.Equal(t, 1, report.Applied)
		require.Len(t, report.Warnings, 1)
		assert.Contains(t, report.Warnings[0], local.ID)

		view, err := repo.Read(ctx, athleteID, workoutKey("w1"))
		require.NoError(t, err)
		assert.Equal(t, models.RowConfirmed, view.State)
		assert.JSONEq(t, `{"n": "remote"}`, string(view.Row.Fields))

		count, err := NewChangeJournal(db).PendingCount(ctx, athleteID)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("remote tombstone deletes the local row", func(t *testing.T) {
		repo := NewLocalRowRepository(newTestSQLite(t))

		_, err := repo.ApplyRemote(ctx, athleteID, []models.Row{remote("w1", 1, base, `{"n": 1}`)}, localWinsOnTie{})
		require.NoError(t, err)

		tombstone := remote("w1", 2, base.Add(time.Minute), "")
		tombstone.Deleted = true
		report, err := repo.ApplyRemote(ctx, athleteID, []models.Row{tombstone}, localWinsOnTie{})
		require.NoError(t, err)
		assert.Equal(t, 1, report.Applied)

		_, err = repo.Read(ctx, athleteID, workoutKey("w1"))
		assert.ErrorIs(t, err, ErrRowNotFound)
	})

	t.Run("tombstone of an unknown row changes nothing visible", func(t *testing.T) {
		repo := NewLocalRowRepository(newTestSQLite(t))

		tombstone := remote("w9", 4, base, "")
		tombstone.Deleted = true
		report, err := repo.ApplyRemote(ctx, athleteID, []models.Row{tombstone}, localWinsOnTie{})
		require.NoError(t, err)
		assert.Zero(t, report.Applied)
		assert.Equal(t, 1, report.Skipped)
	})

	t.Run("next local write is stamped after the remote row", func(t *testing.T) {
		repo := NewLocalRowRepository(newTestSQLite(t))
		future := time.Now().Add(time.Hour).UTC().Truncate(time.Microsecond)

		_, err := repo.ApplyRemote(ctx, athleteID, []models.Row{remote("w1", 1, future, `{}`)}, localWinsOnTie{})
		require.NoError(t, err)

		record := writeWorkout(t, repo, "w1", `{"n": 2}`)
		assert.True(t, record.LocalTimestamp.After(future))
		assert.Equal(t, int64(1), record.BaseVersion)
	})
}
