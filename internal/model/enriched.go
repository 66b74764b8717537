package model

// NotAvailable marks an enrichment field whose lookup failed or returned
// nothing. The device itself still renders with whatever did resolve.
const NotAvailable = "N/A"

// LocationUnknown is the sentinel shown when no link of the location chain
// resolves.
const LocationUnknown = "unknown"

// EnrichedDevice is a Device joined with its status, overview and resolved
// location. It is produced once per search match and is the unit of work a
// borrow attempt operates on. Nil sub-records mean that lookup failed; the
// accessor methods collapse them to NotAvailable for display.
type EnrichedDevice struct {
	Device          Device        `json:"device"`
	Status          *StatusInfo   `json:"statusData"`
	Overview        *OverviewInfo `json:"deviceOverviewData"`
	LocationDetails string        `json:"locationDetails"`
}

// StatusLabel returns the status type, or NotAvailable when the status lookup
// failed.
func (e EnrichedDevice) StatusLabel() string {
	if e.Status == nil {
		return NotAvailable
	}
	return e.Status.StatusType
}

// ModelName returns the device model, or NotAvailable when the overview
// lookup failed.
func (e EnrichedDevice) ModelName() string {
	if e.Overview == nil {
		return NotAvailable
	}
	return e.Overview.Model
}
