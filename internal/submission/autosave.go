package submission

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DraftState is the explicit auto-save state for one submission key, in
// place of ambient UI state: what is dirty, what was last persisted, and
// when.
type DraftState struct {
	SubmissionID string
	Dirty        bool
	LastSavedAt  time.Time
	LastError    error
}

// AutoSaver coalesces rapid edits into best-effort draft saves. Edits mark
// the key dirty; Flush persists the latest snapshot. singleflight guarantees
// a single in-flight save per key, so an out-of-order burst cannot apply a
// stale snapshot over a newer one — late callers share the result of the
// save that is already running and the still-dirty flag triggers the next
// cycle.
type AutoSaver struct {
	svc    Service
	group  singleflight.Group
	logger *zap.Logger

	mu       sync.Mutex
	states   map[string]*DraftState
	pending  map[string]SaveDraftRequest
	actorIDs map[string]string
}

func NewAutoSaver(svc Service, logger ...*zap.Logger) *AutoSaver {
	l := zap.L().Named("submission.autosave")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("submission.autosave")
	}
	return &AutoSaver{
		svc:      svc,
		logger:   l,
		states:   make(map[string]*DraftState),
		pending:  make(map[string]SaveDraftRequest),
		actorIDs: make(map[string]string),
	}
}

func draftKey(locationID, payDate, group string) string {
	return fmt.Sprintf("%s|%s|%s", locationID, payDate, group)
}

// Queue records the latest edit snapshot for the key. Later snapshots
// supersede earlier ones; nothing is persisted until Flush.
func (a *AutoSaver) Queue(locationID, actorID string, req SaveDraftRequest) {
	key := draftKey(locationID, req.PayDate, req.PayrollGroup)

	a.mu.Lock()
	defer a.mu.Unlock()

	a.pending[key] = req
	a.actorIDs[key] = actorID
	state := a.stateLocked(key)
	state.Dirty = true
}

// Flush persists the latest snapshot for the key if it is dirty. Failures
// are recorded after logging: auto-save retries on the next debounce cycle.
// Returns the save response of this attempt (zero-valued for a clean key)
// and the resulting state.
func (a *AutoSaver) Flush(ctx context.Context, locationID, payDate, group string) (DraftResponse, DraftState) {
	key := draftKey(locationID, payDate, group)

	a.mu.Lock()
	state := a.stateLocked(key)
	if !state.Dirty {
		snapshot := *state
		a.mu.Unlock()
		return DraftResponse{SubmissionID: snapshot.SubmissionID, Saved: false}, snapshot
	}
	req := a.pending[key]
	actorID := a.actorIDs[key]
	state.Dirty = false
	a.mu.Unlock()

	result, err, _ := a.group.Do(key, func() (any, error) {
		resp, err := a.svc.SaveDraft(ctx, locationID, actorID, req)
		return resp, err
	})

	a.mu.Lock()
	defer a.mu.Unlock()
	state = a.stateLocked(key)
	if err != nil {
		// Best-effort: keep the snapshot dirty so the next cycle retries.
		state.Dirty = true
		state.LastError = err
		a.logger.Warn("auto-save failed, will retry on next cycle",
			zap.String("key", key),
			zap.Error(err),
		)
		return DraftResponse{Saved: false}, *state
	}

	state.LastError = nil
	state.LastSavedAt = time.Now().UTC()
	resp, _ := result.(DraftResponse)
	if resp.Saved {
		state.SubmissionID = resp.SubmissionID
	}
	return resp, *state
}

// State returns a copy of the current state for UI feedback.
func (a *AutoSaver) State(locationID, payDate, group string) DraftState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return *a.stateLocked(draftKey(locationID, payDate, group))
}

func (a *AutoSaver) stateLocked(key string) *DraftState {
	state, ok := a.states[key]
	if !ok {
		state = &DraftState{}
		a.states[key] = state
	}
	return state
}
