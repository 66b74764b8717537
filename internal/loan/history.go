package loan

import (
	"context"
	"fmt"

	"lagerstyring-client/internal/api"
	"lagerstyring-client/internal/model"
)

// History lists a user's loan records.
type History struct {
	inv *api.Inventory
}

// NewHistory creates a history reader.
func NewHistory(inv *api.Inventory) *History {
	return &History{inv: inv}
}

// List returns the activities recorded for userID.
func (h *History) List(ctx context.Context, userID int64) ([]model.Activity, error) {
	activities, err := h.inv.GetActivitiesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	return activities, nil
}
