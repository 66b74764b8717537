package model

// Device is a single inventory device as returned by the backend. Fields
// mirror the server payload; a fetched Device is never mutated.
type Device struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	StatusID    int64  `json:"status"`
	OverviewID  int64  `json:"device_overview_id"`
	LocationID  *int64 `json:"location"`
	QR          string `json:"qr"`
}

// StatusInfo is the human-readable status type a Device.StatusID points at.
type StatusInfo struct {
	ID         int64  `json:"id"`
	StatusType string `json:"status_type"`
}

// OverviewInfo describes the device model/category.
type OverviewInfo struct {
	ID    int64  `json:"id"`
	Model string `json:"model"`
}

// Cupboard is the first link of a device's location chain.
type Cupboard struct {
	ID          int64  `json:"id"`
	Designation string `json:"designation"`
	RoomID      *int64 `json:"room_id"`
}

// Room is the second link of a device's location chain.
type Room struct {
	ID          int64  `json:"id"`
	Designation string `json:"designation"`
}
