package borrow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"lagerstyring-client/internal/loan"
	"lagerstyring-client/internal/model"
	"lagerstyring-client/internal/nav"
	"lagerstyring-client/internal/session"
	"lagerstyring-client/internal/store"
)

// BorrowPath is the path persisted as the post-login redirect target when an
// unauthenticated user lands on the borrow screen.
const BorrowPath = "/borrow"

// ErrAuthRequired means the session guard redirected to login; the borrow
// flow resumes on the next activation after a successful sign-in.
var ErrAuthRequired = errors.New("authentication required")

// ErrNoDeviceSelected means the borrow screen was entered without a pending
// device. The caller should offer a way back to search.
var ErrNoDeviceSelected = errors.New("no device selected")

// ErrNoActiveAttempt means Scan/Confirm/Cancel was called before Activate
// established a borrow attempt.
var ErrNoActiveAttempt = errors.New("no active borrow attempt")

// Workflow drives one user's borrow flow: it guards entry behind the
// session, persists the pending loan across an authentication detour, owns
// the scan gate for the current attempt and finalizes via the scheduler and
// submitter. A Workflow serves a single screen; concurrent borrow attempts
// get their own Workflow.
type Workflow struct {
	store     store.Store
	session   *session.Manager
	scheduler loan.Scheduler
	submitter *loan.Submitter
	nav       nav.Navigator
	log       *zap.Logger
	now       func() time.Time

	gate *Gate
}

// NewWorkflow creates a borrow workflow.
func NewWorkflow(
	s store.Store,
	sess *session.Manager,
	scheduler loan.Scheduler,
	submitter *loan.Submitter,
	navigator nav.Navigator,
	log *zap.Logger,
) *Workflow {
	return &Workflow{
		store:     s,
		session:   sess,
		scheduler: scheduler,
		submitter: submitter,
		nav:       navigator,
		log:       log,
		now:       time.Now,
	}
}

// Start begins a borrow attempt for item. The item is persisted before the
// session check so that an authentication detour can resume the same
// attempt.
func (w *Workflow) Start(ctx context.Context, item model.EnrichedDevice) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to serialize borrow item: %w", err)
	}
	if err := w.store.Set(ctx, store.KeyBorrowItem, string(raw)); err != nil {
		return fmt.Errorf("failed to persist borrow item: %w", err)
	}
	return w.Activate(ctx)
}

// Activate is the borrow screen's focus event. It re-runs the session guard
// on every activation, loads the pending device from the store, and arms a
// scan gate: a fresh one for a new device, the existing one when the same
// pending device is resumed (no re-fetch, no re-scan of progress lost).
func (w *Workflow) Activate(ctx context.Context) error {
	if !w.session.EnsureSession(ctx, BorrowPath) {
		return ErrAuthRequired
	}

	raw, found, err := w.store.Get(ctx, store.KeyBorrowItem)
	if err != nil {
		return fmt.Errorf("failed to read pending borrow item: %w", err)
	}
	if !found {
		return ErrNoDeviceSelected
	}

	var item model.EnrichedDevice
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		return fmt.Errorf("corrupt pending borrow item: %w", err)
	}

	if w.gate != nil && w.gate.Item().Device.ID == item.Device.ID {
		return nil
	}

	w.gate = NewGate(item)
	w.log.Info("borrow attempt armed",
		zap.Int64("device_id", item.Device.ID))
	return nil
}

// Gate exposes the current attempt's scan gate.
func (w *Workflow) Gate() *Gate {
	return w.gate
}

// Scan feeds one scanner payload into the current attempt.
func (w *Workflow) Scan(payload string) (State, error) {
	if w.gate == nil {
		return StateAwaitingScan, ErrNoActiveAttempt
	}
	return w.gate.Scan(payload)
}

// Confirm finalizes a matched attempt: it resolves the signed-in user,
// builds the activity with the weekend-adjusted due date and submits it. On
// success the pending item is cleared (by the submitter) and the user is
// sent home. Any failure reopens the gate so Confirm can be retried without
// a new scan.
func (w *Workflow) Confirm(ctx context.Context) (*model.Activity, error) {
	if w.gate == nil {
		return nil, ErrNoActiveAttempt
	}
	if err := w.gate.Confirm(); err != nil {
		return nil, err
	}

	userID, err := w.session.UserID(ctx)
	if err != nil {
		w.reopen()
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	activity := w.scheduler.BuildActivity(userID, w.gate.Item(), w.now())
	ack, err := w.submitter.Submit(ctx, activity)
	if err != nil {
		w.reopen()
		return nil, err
	}

	w.gate = nil
	w.nav.Navigate(nav.ScreenHome, nil)
	return ack, nil
}

// Cancel abandons the attempt, discards the pending item and returns to
// search.
func (w *Workflow) Cancel(ctx context.Context) error {
	if w.gate == nil {
		return ErrNoActiveAttempt
	}
	if err := w.gate.Cancel(); err != nil {
		return err
	}
	if err := w.store.Delete(ctx, store.KeyBorrowItem); err != nil {
		w.log.Warn("failed to discard pending borrow item", zap.Error(err))
	}
	w.gate = nil
	w.nav.Navigate(nav.ScreenSearch, nil)
	return nil
}

func (w *Workflow) reopen() {
	if err := w.gate.Reopen(); err != nil {
		w.log.Warn("failed to reopen gate after submission failure", zap.Error(err))
	}
}
