package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/MKhiriev/go-fit-sync/internal/adapter"
	"github.com/MKhiriev/go-fit-sync/internal/app"
	"github.com/MKhiriev/go-fit-sync/internal/policy"
	"github.com/MKhiriev/go-fit-sync/internal/validators"
	"github.com/MKhiriev/go-fit-sync/models"
)

// fakeBackend is an in-memory remote endpoint with the same push rules as
// the Postgres repository: receipts by change id, version match, strictly
// newer timestamps overwrite, everything else is stale.
type fakeBackend struct {
	mu       sync.Mutex
	rows     map[models.RowKey]models.Row
	receipts map[string]models.AcceptedChange
	roster   map[string][]string
	seq      int64
	applied  int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		rows:     make(map[models.RowKey]models.Row),
		receipts: make(map[string]models.AcceptedChange),
		roster:   make(map[string][]string),
	}
}

func (b *fakeBackend) enroll(trainerID, athleteID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.roster[trainerID] = append(b.roster[trainerID], athleteID)
}

func (b *fakeBackend) row(key models.RowKey) (models.Row, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	row, ok := b.rows[key]
	return row, ok
}

func (b *fakeBackend) appliedCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.applied
}

func (b *fakeBackend) scope(userID string, role models.Role) models.Scope {
	scope := models.Scope{UserID: userID, Role: role}
	if role == models.RoleTrainer {
		scope.AthleteIDs = append([]string(nil), b.roster[userID]...)
	}
	return scope
}

func (b *fakeBackend) push(userID string, role models.Role, records []models.ChangeRecord) models.PushResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	scope := b.scope(userID, role)
	resp := models.PushResponse{Accepted: []models.AcceptedChange{}, Conflicts: []models.Conflict{}}

	for _, record := range records {
		key := record.Key()
		current, exists := b.rows[key]

		if (exists && current.OwnerID != record.OwnerID) || !(policy.Rules{}).CanWrite(scope, record.EntityType, record.OwnerID) {
			resp.Conflicts = append(resp.Conflicts, models.Conflict{
				ChangeID: record.ID, EntityType: record.EntityType, EntityID: record.EntityID,
				RowVersion: record.RowVersion, Reason: models.ConflictScope, Message: "not allowed",
			})
			continue
		}

		if receipt, ok := b.receipts[record.ID]; ok {
			receipt.Replayed = true
			resp.Accepted = append(resp.Accepted, receipt)
			continue
		}

		overwrote := false
		switch {
		case !exists || current.RowVersion == record.BaseVersion:
		case record.LocalTimestamp.After(current.UpdatedAt):
			overwrote = true
		default:
			serverRow := current
			resp.Conflicts = append(resp.Conflicts, models.Conflict{
				ChangeID: record.ID, EntityType: record.EntityType, EntityID: record.EntityID,
				RowVersion: record.RowVersion, Reason: models.ConflictStale,
				Message: fmt.Sprintf("server row is at version %d", current.RowVersion), ServerRow: &serverRow,
			})
			continue
		}

		b.seq++
		b.applied++
		row := models.Row{
			EntityType: record.EntityType,
			EntityID:   record.EntityID,
			OwnerID:    record.OwnerID,
			Fields:     record.Payload,
			Deleted:    record.IsDelete(),
			RowVersion: current.RowVersion + 1,
			UpdatedAt:  record.LocalTimestamp,
			ModifiedBy: userID,
			Seq:        b.seq,
		}
		if record.IsDelete() {
			row.Fields = nil
		}
		b.rows[key] = row

		accepted := models.AcceptedChange{
			ChangeID: record.ID, EntityType: record.EntityType, EntityID: record.EntityID,
			RowVersion: row.RowVersion, Seq: row.Seq, Overwrote: overwrote,
		}
		b.receipts[record.ID] = accepted
		resp.Accepted = append(resp.Accepted, accepted)
	}

	return resp
}

func (b *fakeBackend) pull(userID string, role models.Role, cursor int64, limit int) models.PullResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	visible := make(map[string]bool)
	for _, owner := range b.scope(userID, role).VisibleOwners() {
		visible[owner] = true
	}

	var rows []models.Row
	for _, row := range b.rows {
		if row.Seq > cursor && visible[row.OwnerID] {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Seq < rows[j].Seq })

	hasMore := limit > 0 && len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}

	next := cursor
	if len(rows) > 0 {
		next = rows[len(rows)-1].Seq
	}

	return models.PullResponse{
		Rows:       rows,
		Checkpoint: models.PullCheckpoint{Cursor: next, PulledAt: time.Now().UTC()},
		HasMore:    hasMore,
	}
}

// fakeEndpoint is one device's connection to a fakeBackend.
type fakeEndpoint struct {
	backend   *fakeBackend
	validator validators.Validator
	userID    string
	role      models.Role
	token     string

	mu sync.Mutex
	// offline makes every call fail with a transport error.
	offline bool
	// dropResponses applies that many pushes but reports a transport error.
	dropResponses int
	// beforePush runs before each push reaches the backend.
	beforePush func(ctx context.Context) error
	// pullCursorOverride, when set, replaces the cursor of every pull page.
	pullCursorOverride *int64
	// rejectRecord makes a push fail with a bad request when any of its
	// records matches, like a server with stricter rules than the client.
	rejectRecord func(models.ChangeRecord) bool
	pushes       int
	pushSizes    []int
}

func newFakeEndpoint(backend *fakeBackend, userID string, role models.Role) *fakeEndpoint {
	return &fakeEndpoint{
		backend:   backend,
		validator: validators.NewSyncValidator(),
		userID:    userID,
		role:      role,
	}
}

// badRequest mirrors the error the HTTP adapter returns for a 400 from the
// push and pull handlers.
func badRequest(err error) error {
	return fmt.Errorf("%w: %s: %v", adapter.ErrBadRequest, app.MsgInvalidDataProvided, err)
}

func (e *fakeEndpoint) SetToken(token string) { e.token = token }

func (e *fakeEndpoint) Token() string { return e.token }

func (e *fakeEndpoint) setOffline(offline bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.offline = offline
}

func (e *fakeEndpoint) PushBatch(ctx context.Context, req models.PushRequest) (models.PushResponse, error) {
	e.mu.Lock()
	offline, hook, reject := e.offline, e.beforePush, e.rejectRecord
	e.pushes++
	e.pushSizes = append(e.pushSizes, len(req.Records))
	e.mu.Unlock()

	if offline {
		return models.PushResponse{}, fmt.Errorf("%w: connection refused", adapter.ErrTransport)
	}
	if err := e.validator.Validate(ctx, req); err != nil {
		return models.PushResponse{}, badRequest(err)
	}
	for _, record := range req.Records {
		if reject != nil && reject(record) {
			return models.PushResponse{}, badRequest(fmt.Errorf("record %s refused", record.ID))
		}
	}
	if hook != nil {
		if err := hook(ctx); err != nil {
			return models.PushResponse{}, err
		}
	}

	resp := e.backend.push(e.userID, e.role, req.Records)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dropResponses > 0 {
		e.dropResponses--
		return models.PushResponse{}, fmt.Errorf("%w: connection reset", adapter.ErrTransport)
	}
	return resp, nil
}

func (e *fakeEndpoint) PullSince(ctx context.Context, req models.PullRequest) (models.PullResponse, error) {
	e.mu.Lock()
	offline, override := e.offline, e.pullCursorOverride
	e.mu.Unlock()

	if offline {
		return models.PullResponse{}, fmt.Errorf("%w: connection refused", adapter.ErrTransport)
	}
	if err := ctx.Err(); err != nil {
		return models.PullResponse{}, fmt.Errorf("%w: %w", adapter.ErrTransport, err)
	}
	if err := e.validator.Validate(ctx, req); err != nil {
		return models.PullResponse{}, badRequest(err)
	}

	resp := e.backend.pull(e.userID, e.role, req.Cursor, req.Limit)
	if override != nil {
		resp.Checkpoint.Cursor = *override
	}
	return resp, nil
}
