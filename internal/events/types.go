// Package events provides the in-process event bus used to notify the HTTP
// layer and sessions about ledger changes.
package events

import "time"

// EventType represents different event types
type EventType string

const (
	LedgerReplaced    EventType = "LEDGER_REPLACED"
	LedgerFetchFailed EventType = "LEDGER_FETCH_FAILED"
	SnapshotSaved     EventType = "SNAPSHOT_SAVED"
	SessionsEvicted   EventType = "SESSIONS_EVICTED"
	SystemStatus      EventType = "SYSTEM_STATUS_CHANGED"
	ErrorOccurred     EventType = "ERROR_OCCURRED"
)

// AllTypes lists every event type, in the order streams subscribe to them.
var AllTypes = []EventType{
	LedgerReplaced,
	LedgerFetchFailed,
	SnapshotSaved,
	SessionsEvicted,
	SystemStatus,
	ErrorOccurred,
}

// Event represents a system event
type Event struct {
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
	Module    string                 `json:"module"`
}
