package stub

import (
	"strings"
	"sync"

	"lagerstyring-client/internal/model"
)

// Fixtures is the in-memory dataset served by the stub backend. Reference
// data is static; activities grow as loans are submitted.
type Fixtures struct {
	Devices   []model.Device
	Statuses  map[int64]model.StatusInfo
	Overviews map[int64]model.OverviewInfo
	Cupboards map[int64]model.Cupboard
	Rooms     map[int64]model.Room
	Users     []model.User
	Passwords map[string]string

	mu         sync.Mutex
	activities []model.Activity
	nextID     int64
}

// DefaultFixtures seeds a small, self-consistent inventory.
func DefaultFixtures() *Fixtures {
	roomID := int64(4)
	cupboardID := int64(12)
	return &Fixtures{
		Devices: []model.Device{
			{ID: 1, Description: "Cordless drill", StatusID: 3, OverviewID: 7, LocationID: &cupboardID, QR: "QR-DRILL-0001"},
			{ID: 2, Description: "Thermal camera", StatusID: 3, OverviewID: 8, QR: "QR-CAM-0002"},
			{ID: 3, Description: "Oscilloscope", StatusID: 5, OverviewID: 9, LocationID: &cupboardID, QR: "QR-SCOPE-0003"},
		},
		Statuses: map[int64]model.StatusInfo{
			3: {ID: 3, StatusType: "Available"},
			5: {ID: 5, StatusType: "In repair"},
		},
		Overviews: map[int64]model.OverviewInfo{
			7: {ID: 7, Model: "Bosch GSR 12V"},
			8: {ID: 8, Model: "FLIR One Pro"},
			9: {ID: 9, Model: "Rigol DS1054Z"},
		},
		Cupboards: map[int64]model.Cupboard{
			cupboardID: {ID: cupboardID, Designation: "Cupboard C", RoomID: &roomID},
		},
		Rooms: map[int64]model.Room{
			roomID: {ID: roomID, Designation: "Lab 2.14"},
		},
		Users: []model.User{
			{ID: 42, Email: "student@example.edu"},
		},
		Passwords: map[string]string{
			"student@example.edu": "hunter2",
		},
		nextID: 1000,
	}
}

// MatchDevices returns devices whose description contains query,
// case-insensitively.
func (f *Fixtures) MatchDevices(query string) []model.Device {
	matched := make([]model.Device, 0)
	needle := strings.ToLower(query)
	for _, device := range f.Devices {
		if strings.Contains(strings.ToLower(device.Description), needle) {
			matched = append(matched, device)
		}
	}
	return matched
}

// AddActivity stores a submitted activity and assigns it an ID.
func (f *Fixtures) AddActivity(activity model.Activity) model.Activity {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	activity.ID = f.nextID
	f.activities = append(f.activities, activity)
	return activity
}

// ActivitiesByUser lists the stored activities for a user.
func (f *Fixtures) ActivitiesByUser(userID int64) []model.Activity {
	f.mu.Lock()
	defer f.mu.Unlock()
	matched := make([]model.Activity, 0)
	for _, activity := range f.activities {
		if activity.UserID == userID {
			matched = append(matched, activity)
		}
	}
	return matched
}

// UserByEmail finds a user record by email.
func (f *Fixtures) UserByEmail(email string) (model.User, bool) {
	for _, user := range f.Users {
		if strings.EqualFold(user.Email, email) {
			return user, true
		}
	}
	return model.User{}, false
}
