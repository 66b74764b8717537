package api

import (
	"context"
	"fmt"
	"net/url"

	"lagerstyring-client/internal/model"
)

// Inventory exposes the backend's resources as typed lookups on top of
// Client. It adds no behavior beyond path construction.
type Inventory struct {
	*Client
}

// NewInventory wraps a Client with the inventory endpoints.
func NewInventory(c *Client) *Inventory {
	return &Inventory{Client: c}
}

// SearchDevices returns the devices matching query.
func (inv *Inventory) SearchDevices(ctx context.Context, query string) ([]model.Device, error) {
	var devices []model.Device
	err := inv.GetJSON(ctx, "/devices?query="+url.QueryEscape(query), &devices)
	if err != nil {
		return nil, err
	}
	return devices, nil
}

// GetStatus resolves a status-type ID to its label.
func (inv *Inventory) GetStatus(ctx context.Context, id int64) (*model.StatusInfo, error) {
	var status model.StatusInfo
	if err := inv.GetJSON(ctx, fmt.Sprintf("/status/%d", id), &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// GetOverview resolves a device-overview ID to the model description.
func (inv *Inventory) GetOverview(ctx context.Context, id int64) (*model.OverviewInfo, error) {
	var overview model.OverviewInfo
	if err := inv.GetJSON(ctx, fmt.Sprintf("/device-overview/%d", id), &overview); err != nil {
		return nil, err
	}
	return &overview, nil
}

// GetCupboard resolves the first link of a location chain.
func (inv *Inventory) GetCupboard(ctx context.Context, id int64) (*model.Cupboard, error) {
	var cupboard model.Cupboard
	if err := inv.GetJSON(ctx, fmt.Sprintf("/cupboard/%d", id), &cupboard); err != nil {
		return nil, err
	}
	return &cupboard, nil
}

// GetRoom resolves the second link of a location chain.
func (inv *Inventory) GetRoom(ctx context.Context, id int64) (*model.Room, error) {
	var room model.Room
	if err := inv.GetJSON(ctx, fmt.Sprintf("/room/%d", id), &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// GetUserByEmail maps a signed-in email to the backend user record.
func (inv *Inventory) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := inv.GetJSON(ctx, "/user-by-email?email="+url.QueryEscape(email), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetActivitiesByUser lists a user's loan records.
func (inv *Inventory) GetActivitiesByUser(ctx context.Context, userID int64) ([]model.Activity, error) {
	var activities []model.Activity
	if err := inv.GetJSON(ctx, fmt.Sprintf("/activities-by-user/%d", userID), &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// AddActivity submits a new loan record and returns the server's
// acknowledgment.
func (inv *Inventory) AddActivity(ctx context.Context, activity model.Activity) (*model.Activity, error) {
	var ack model.Activity
	if err := inv.PostJSON(ctx, "/activities", activity, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// Login exchanges credentials for a session token.
func (inv *Inventory) Login(ctx context.Context, email, password string) (*model.LoginResponse, error) {
	var resp model.LoginResponse
	req := model.LoginRequest{Email: email, Password: password}
	if err := inv.PostJSON(ctx, "/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
