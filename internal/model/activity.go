package model

import "time"

// ActivityTypeBorrow is the activity category for a loan. The backend owns
// the remaining category values.
const ActivityTypeBorrow = 1

// Activity is a loan record submitted to POST /activities. The record ID and
// lifecycle/status fields are assigned by the server and therefore absent
// here except on read.
type Activity struct {
	ID           int64     `json:"id,omitempty"`
	UserID       int64     `json:"user_id"`
	DeviceID     int64     `json:"device_id"`
	ActivityType int       `json:"activity_type"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	CreatedAt    time.Time `json:"created_at"`
	Notes        string    `json:"notes"`
}

// User as returned by GET /user-by-email. Only the ID is consumed by this
// client.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// LoginRequest is the POST /login body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the backend's application-level status alongside the
// issued session token.
type LoginResponse struct {
	StatusCode int    `json:"status_code"`
	Token      string `json:"token"`
}
