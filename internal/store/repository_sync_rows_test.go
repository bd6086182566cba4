package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-fit-sync/internal/logger"
	"github.com/MKhiriev/go-fit-sync/models"
)

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// newDBFromSQL wraps a sqlmock handle the way NewConnectPostgres does.
func newDBFromSQL(db *sql.DB) *DB {
	return &DB{
		DB:                 db,
		errorClassificator: NewPostgresErrorClassifier(),
		logger:             logger.Nop(),
	}
}

// ownerOnly lets callers write only rows they own.
type ownerOnly struct{}

func (ownerOnly) CanWrite(scope models.Scope, _ models.EntityType, ownerID string) bool {
	return scope.UserID == ownerID
}

var (
	syncRowCols  = []string{"owner_id", "fields", "deleted", "row_version", "updated_at", "modified_by", "seq"}
	receiptCols  = []string{"row_version", "seq", "overwrote"}
	athleteScope = models.Scope{UserID: athleteID, Role: models.RoleAthlete}
)

func pushedRecord(base int64, ts time.Time) models.ChangeRecord {
	return models.ChangeRecord{
		ID:             "change-1",
		EntityType:     models.EntityWorkoutLogs,
		EntityID:       "w1",
		OwnerID:        athleteID,
		Operation:      models.OperationUpdate,
		Payload:        json.RawMessage(`{"n":2}`),
		LocalTimestamp: ts,
		BaseVersion:    base,
		RowVersion:     base + 1,
	}
}

func expectPushStart(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(acquirePushLock)).
		WithArgs(pushLockKey).
		WillReturnResult(sqlmock.NewResult(0, 0))
}

func expectRowLookup(mock sqlmock.Sqlmock, rows *sqlmock.Rows) {
	mock.ExpectQuery(regexp.QuoteMeta(selectSyncRowForUpdate)).
		WithArgs(string(models.EntityWorkoutLogs), "w1").
		WillReturnRows(rows)
}

func expectApply(mock sqlmock.Sqlmock, version, seq int64, overwrote bool) {
	mock.ExpectQuery(regexp.QuoteMeta(nextChangeSeq)).
		WillReturnRows(sqlmock.NewRows([]string{"nextval"}).AddRow(seq))
	mock.ExpectExec(regexp.QuoteMeta(upsertSyncRow)).
		WithArgs(string(models.EntityWorkoutLogs), "w1", athleteID, `{"n":2}`, false, version, sqlmock.AnyArg(), athleteID, seq).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(insertReceipt)).
		WithArgs("change-1", athleteID, string(models.EntityWorkoutLogs), "w1", version, seq, overwrote).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

func TestSyncRowRepository_ApplyPush(t *testing.T) {
	ts := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		record models.ChangeRecord
		setup  func(mock sqlmock.Sqlmock)
		check  func(t *testing.T, resp models.PushResponse)
	}{
		{
			name:   "new row is inserted with version 1",
			record: pushedRecord(0, ts),
			setup: func(mock sqlmock.Sqlmock) {
				expectRowLookup(mock, sqlmock.NewRows(syncRowCols))
				mock.ExpectQuery(regexp.QuoteMeta(getReceipt)).WithArgs("change-1").
					WillReturnRows(sqlmock.NewRows(receiptCols))
				expectApply(mock, 1, 100, false)
			},
			check: func(t *testing.T, resp models.PushResponse) {
				require.Len(t, resp.Accepted, 1)
				assert.Equal(t, int64(1), resp.Accepted[0].RowVersion)
				assert.Equal(t, int64(100), resp.Accepted[0].Seq)
				assert.False(t, resp.Accepted[0].Replayed)
				assert.Empty(t, resp.Conflicts)
			},
		},
		{
			name:   "matching base version is applied",
			record: pushedRecord(3, ts),
			setup: func(mock sqlmock.Sqlmock) {
				expectRowLookup(mock, sqlmock.NewRows(syncRowCols).
					AddRow(athleteID, []byte(`{"n":1}`), false, int64(3), ts.Add(-time.Hour), athleteID, int64(40)))
				mock.ExpectQuery(regexp.QuoteMeta(getReceipt)).WithArgs("change-1").
					WillReturnRows(sqlmock.NewRows(receiptCols))
				expectApply(mock, 4, 101, false)
			},
			check: func(t *testing.T, resp models.PushResponse) {
				require.Len(t, resp.Accepted, 1)
				assert.Equal(t, int64(4), resp.Accepted[0].RowVersion)
				assert.False(t, resp.Accepted[0].Overwrote)
			},
		},
		{
			name:   "replayed change is acknowledged without writing",
			record: pushedRecord(0, ts),
			setup: func(mock sqlmock.Sqlmock) {
				expectRowLookup(mock, sqlmock.NewRows(syncRowCols).
					AddRow(athleteID, []byte(`{"n":2}`), false, int64(1), ts, athleteID, int64(100)))
				mock.ExpectQuery(regexp.QuoteMeta(getReceipt)).WithArgs("change-1").
					WillReturnRows(sqlmock.NewRows(receiptCols).AddRow(int64(1), int64(100), false))
			},
			check: func(t *testing.T, resp models.PushResponse) {
				require.Len(t, resp.Accepted, 1)
				assert.True(t, resp.Accepted[0].Replayed)
				assert.Equal(t, int64(1), resp.Accepted[0].RowVersion)
				assert.Equal(t, int64(100), resp.Accepted[0].Seq)
			},
		},
		{
			name:   "newer timestamp overwrites a newer version",
			record: pushedRecord(1, ts),
			setup: func(mock sqlmock.Sqlmock) {
				expectRowLookup(mock, sqlmock.NewRows(syncRowCols).
					AddRow(athleteID, []byte(`{"n":1}`), false, int64(5), ts.Add(-time.Minute), "trainer-1", int64(90)))
				mock.ExpectQuery(regexp.QuoteMeta(getReceipt)).WithArgs("change-1").
					WillReturnRows(sqlmock.NewRows(receiptCols))
				expectApply(mock, 6, 102, true)
			},
			check: func(t *testing.T, resp models.PushResponse) {
				require.Len(t, resp.Accepted, 1)
				assert.True(t, resp.Accepted[0].Overwrote)
				assert.Equal(t, int64(6), resp.Accepted[0].RowVersion)
			},
		},
		{
			name:   "equal timestamp on a newer version is stale",
			record: pushedRecord(1, ts),
			setup: func(mock sqlmock.Sqlmock) {
				expectRowLookup(mock, sqlmock.NewRows(syncRowCols).
					AddRow(athleteID, []byte(`{"n":9}`), false, int64(5), ts, "trainer-1", int64(90)))
				mock.ExpectQuery(regexp.QuoteMeta(getReceipt)).WithArgs("change-1").
					WillReturnRows(sqlmock.NewRows(receiptCols))
			},
			check: func(t *testing.T, resp models.PushResponse) {
				assert.Empty(t, resp.Accepted)
				require.Len(t, resp.Conflicts, 1)
				conflict := resp.Conflicts[0]
				assert.Equal(t, models.ConflictStale, conflict.Reason)
				require.NotNil(t, conflict.ServerRow)
				assert.Equal(t, int64(5), conflict.ServerRow.RowVersion)
				assert.JSONEq(t, `{"n":9}`, string(conflict.ServerRow.Fields))
				assert.Equal(t, "trainer-1", conflict.ServerRow.ModifiedBy)
			},
		},
		{
			name: "foreign owner is a scope violation",
			record: func() models.ChangeRecord {
				r := pushedRecord(0, ts)
				r.OwnerID = "athlete-2"
				return r
			}(),
			setup: func(mock sqlmock.Sqlmock) {
				expectRowLookup(mock, sqlmock.NewRows(syncRowCols))
			},
			check: func(t *testing.T, resp models.PushResponse) {
				assert.Empty(t, resp.Accepted)
				require.Len(t, resp.Conflicts, 1)
				assert.Equal(t, models.ConflictScope, resp.Conflicts[0].Reason)
				assert.Nil(t, resp.Conflicts[0].ServerRow)
			},
		},
		{
			name:   "owner of an existing row cannot change",
			record: pushedRecord(1, ts),
			setup: func(mock sqlmock.Sqlmock) {
				expectRowLookup(mock, sqlmock.NewRows(syncRowCols).
					AddRow("athlete-2", []byte(`{}`), false, int64(1), ts, "athlete-2", int64(3)))
			},
			check: func(t *testing.T, resp models.PushResponse) {
				require.Len(t, resp.Conflicts, 1)
				assert.Equal(t, models.ConflictScope, resp.Conflicts[0].Reason)
				assert.Contains(t, resp.Conflicts[0].Message, "athlete-2")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newTestDB(t)
			repo := NewSyncRowRepository(newDBFromSQL(db), logger.Nop())

			expectPushStart(mock)
			tt.setup(mock)
			mock.ExpectCommit()

			resp, err := repo.ApplyPush(testContext(), athleteScope, []models.ChangeRecord{tt.record}, ownerOnly{})
			require.NoError(t, err)
			tt.check(t, resp)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSyncRowRepository_ApplyPushRetriesSerializationFailure(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSyncRowRepository(newDBFromSQL(db), logger.Nop())
	ts := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(acquirePushLock)).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.SerializationFailure})
	mock.ExpectRollback()

	expectPushStart(mock)
	expectRowLookup(mock, sqlmock.NewRows(syncRowCols))
	mock.ExpectQuery(regexp.QuoteMeta(getReceipt)).WithArgs("change-1").
		WillReturnRows(sqlmock.NewRows(receiptCols))
	expectApply(mock, 1, 7, false)
	mock.ExpectCommit()

	resp, err := repo.ApplyPush(testContext(), athleteScope, []models.ChangeRecord{pushedRecord(0, ts)}, ownerOnly{})
	require.NoError(t, err)
	require.Len(t, resp.Accepted, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncRowRepository_ApplyPushDoesNotRetryOtherErrors(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSyncRowRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(acquirePushLock)).
		WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	_, err := repo.ApplyPush(testContext(), athleteScope, []models.ChangeRecord{pushedRecord(0, time.Now())}, ownerOnly{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutingStatement)
	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_buildPullQuery(t *testing.T) {
	tests := []struct {
		name      string
		scope     models.Scope
		wantQuery string
		wantArgs  []any
	}{
		{
			name:      "athlete sees own rows",
			scope:     models.Scope{UserID: "a1", Role: models.RoleAthlete, AthleteIDs: []string{"ignored"}},
			wantQuery: "SELECT entity_type, entity_id, owner_id, fields, deleted, row_version, updated_at, modified_by, seq FROM sync_rows WHERE seq > $1 AND owner_id IN ($2) ORDER BY seq LIMIT 3",
			wantArgs:  []any{int64(5), "a1"},
		},
		{
			name:      "trainer sees enrolled athletes",
			scope:     models.Scope{UserID: "t1", Role: models.RoleTrainer, AthleteIDs: []string{"a1", "a2"}},
			wantQuery: "SELECT entity_type, entity_id, owner_id, fields, deleted, row_version, updated_at, modified_by, seq FROM sync_rows WHERE seq > $1 AND owner_id IN ($2,$3,$4) ORDER BY seq LIMIT 3",
			wantArgs:  []any{int64(5), "t1", "a1", "a2"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildPullQuery(tt.scope, 5, 2)
			require.NoError(t, err)
			assert.Equal(t, tt.wantQuery, query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestSyncRowRepository_PullSince(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSyncRowRepository(newDBFromSQL(db), logger.Nop())
	scope := models.Scope{UserID: "t1", Role: models.RoleTrainer, AthleteIDs: []string{"a1"}}
	ts := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	query, _, err := buildPullQuery(scope, 0, 2)
	require.NoError(t, err)

	cols := append([]string{"entity_type", "entity_id"}, syncRowCols...)
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs(int64(0), "t1", "a1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("test_results", "r1", "a1", []byte(`{"vo2max":50}`), false, int64(1), ts, "a1", int64(1)).
			AddRow("workout_logs", "w1", "a1", nil, true, int64(2), ts, "a1", int64(2)).
			AddRow("training_plans", "p1", "a1", []byte(`{}`), false, int64(1), ts, "t1", int64(3)))

	rows, hasMore, err := repo.PullSince(testContext(), scope, 0, 2)
	require.NoError(t, err)
	assert.True(t, hasMore)
	require.Len(t, rows, 2)
	assert.Equal(t, models.EntityTestResults, rows[0].EntityType)
	assert.JSONEq(t, `{"vo2max":50}`, string(rows[0].Fields))
	assert.True(t, rows[1].Deleted)
	assert.Nil(t, rows[1].Fields)
	assert.Equal(t, int64(2), rows[1].Seq)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncRowRepository_PullSinceQueryError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSyncRowRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection reset"))

	_, _, err := repo.PullSince(testContext(), athleteScope, 0, 10)
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestRosterRepository(t *testing.T) {
	enrolled := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	t.Run("AthletesOf", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewRosterRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectQuery(regexp.QuoteMeta(getAthletesOfTrainer)).WithArgs("t1").
			WillReturnRows(sqlmock.NewRows([]string{"athlete_id"}).AddRow("a1").AddRow("a2"))

		athletes, err := repo.AthletesOf(testContext(), "t1")
		require.NoError(t, err)
		assert.Equal(t, []string{"a1", "a2"}, athletes)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ListRoster", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewRosterRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectQuery(regexp.QuoteMeta(getRoster)).WithArgs("t1").
			WillReturnRows(sqlmock.NewRows([]string{"trainer_id", "athlete_id", "enrolled_at"}).AddRow("t1", "a1", enrolled))

		entries, err := repo.ListRoster(testContext(), "t1")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, models.RosterEntry{TrainerID: "t1", AthleteID: "a1", EnrolledAt: enrolled}, entries[0])
	})

	t.Run("Enroll", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewRosterRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectQuery(regexp.QuoteMeta(enrollAthlete)).WithArgs("t1", "a1").
			WillReturnRows(sqlmock.NewRows([]string{"trainer_id", "athlete_id", "enrolled_at"}).AddRow("t1", "a1", enrolled))

		entry, err := repo.Enroll(testContext(), "t1", "a1")
		require.NoError(t, err)
		assert.Equal(t, "a1", entry.AthleteID)
		assert.True(t, enrolled.Equal(entry.EnrolledAt))
	})

	t.Run("Enroll error", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewRosterRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectQuery(regexp.QuoteMeta(enrollAthlete)).WillReturnError(errors.New("down"))

		_, err := repo.Enroll(testContext(), "t1", "a1")
		assert.ErrorIs(t, err, ErrExecutingStatement)
	})
}

func TestReceiptRepository_PruneReceipts(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewReceiptRepository(newDBFromSQL(db))
	cutoff := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(pruneReceipts)).WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 12))

	pruned, err := repo.PruneReceipts(testContext(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(12), pruned)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresErrorClassifier(t *testing.T) {
	c := NewPostgresErrorClassifier()

	assert.Equal(t, NonRetryable, c.Classify(nil))
	assert.Equal(t, NonRetryable, c.Classify(errors.New("plain")))
	assert.Equal(t, Retryable, c.Classify(&pgconn.PgError{Code: pgerrcode.DeadlockDetected}))
	assert.Equal(t, Retryable, c.Classify(&pgconn.PgError{Code: pgerrcode.ConnectionFailure}))
	assert.Equal(t, NonRetryable, c.Classify(&pgconn.PgError{Code: pgerrcode.UniqueViolation}))
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: pgerrcode.UniqueViolation}))
}
