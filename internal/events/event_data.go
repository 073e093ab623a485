package events

import "encoding/json"

// EventData is implemented by every typed event payload.
type EventData interface {
	EventType() EventType
}

// LedgerReplacedData describes a newly installed ledger.
type LedgerReplacedData struct {
	Source string   `json:"source"`
	Years  []string `json:"years"`
}

// EventType returns the event type for LedgerReplacedData
func (d *LedgerReplacedData) EventType() EventType {
	return LedgerReplaced
}

// LedgerFetchFailedData carries the reason a fetch failed.
type LedgerFetchFailedData struct {
	Source   string `json:"source"`
	Error    string `json:"error"`
	Fallback bool   `json:"fallback"`
}

// EventType returns the event type for LedgerFetchFailedData
func (d *LedgerFetchFailedData) EventType() EventType {
	return LedgerFetchFailed
}

// SnapshotSavedData identifies a stored ledger snapshot.
type SnapshotSavedData struct {
	ID     string `json:"id"`
	Pruned int64  `json:"pruned"`
}

// EventType returns the event type for SnapshotSavedData
func (d *SnapshotSavedData) EventType() EventType {
	return SnapshotSaved
}

// SessionsEvictedData reports an eviction sweep.
type SessionsEvictedData struct {
	Evicted   int `json:"evicted"`
	Remaining int `json:"remaining"`
}

// EventType returns the event type for SessionsEvictedData
func (d *SessionsEvictedData) EventType() EventType {
	return SessionsEvicted
}

// SystemStatusData is what the status monitor watches.
type SystemStatusData struct {
	LedgerLoaded bool `json:"ledger_loaded"`
	Sessions     int  `json:"sessions"`
}

// EventType returns the event type for SystemStatusData
func (d *SystemStatusData) EventType() EventType {
	return SystemStatus
}

// ErrorEventData contains data for ErrorOccurred events
type ErrorEventData struct {
	Error   string                 `json:"error"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// EventType returns the event type for ErrorEventData
func (d *ErrorEventData) EventType() EventType {
	return ErrorOccurred
}

// toMap flattens typed data into the map carried by Event.
func toMap(data EventData) map[string]interface{} {
	if data == nil {
		return nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
