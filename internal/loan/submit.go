package loan

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"lagerstyring-client/internal/api"
	"lagerstyring-client/internal/model"
	"lagerstyring-client/internal/store"
)

// SubmitError reports a failed reservation submission. Status and RawBody
// hold the backend's response when one was received, for diagnostics. The
// pending loan is retained on failure so the user can retry without
// re-scanning.
type SubmitError struct {
	Status  int
	RawBody string
	Err     error
}

func (e *SubmitError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("loan submission rejected with status %d", e.Status)
	}
	return fmt.Sprintf("loan submission failed: %v", e.Err)
}

func (e *SubmitError) Unwrap() error { return e.Err }

// Submitter posts assembled loan records and finalizes the attempt's
// persistent state. It never retries on its own; a retry is the user
// re-invoking the confirmation.
type Submitter struct {
	inv   *api.Inventory
	store store.Store
	log   *zap.Logger
}

// NewSubmitter creates a submitter.
func NewSubmitter(inv *api.Inventory, s store.Store, log *zap.Logger) *Submitter {
	return &Submitter{inv: inv, store: s, log: log}
}

// Submit posts the activity. On acknowledgment the pending borrow item is
// cleared from the local store; on any failure it is kept and a
// *SubmitError is returned.
func (s *Submitter) Submit(ctx context.Context, activity model.Activity) (*model.Activity, error) {
	ack, err := s.inv.AddActivity(ctx, activity)
	if err != nil {
		var httpErr *api.HTTPError
		if errors.As(err, &httpErr) {
			s.log.Warn("loan submission rejected",
				zap.Int("status", httpErr.Status),
				zap.Int64("device_id", activity.DeviceID))
			return nil, &SubmitError{Status: httpErr.Status, RawBody: httpErr.Body, Err: err}
		}
		var parseErr *api.ParseError
		if errors.As(err, &parseErr) {
			s.log.Warn("loan submission returned an unreadable acknowledgment",
				zap.Int64("device_id", activity.DeviceID),
				zap.Error(err))
			return nil, &SubmitError{RawBody: parseErr.Body, Err: err}
		}
		s.log.Warn("loan submission failed",
			zap.Int64("device_id", activity.DeviceID),
			zap.Error(err))
		return nil, &SubmitError{Err: err}
	}

	if err := s.store.Delete(ctx, store.KeyBorrowItem); err != nil {
		// The loan went through; a stale pending item is recoverable on the
		// next borrow-screen activation.
		s.log.Warn("failed to clear pending borrow item", zap.Error(err))
	}

	s.log.Info("loan confirmed",
		zap.Int64("device_id", activity.DeviceID),
		zap.Time("due", activity.EndDate))
	return ack, nil
}
