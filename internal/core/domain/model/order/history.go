package order

import "time"

// HistoryEntry is one record of the append-only status log. Entries are never
// updated or removed; the log as a whole is chronologically non-decreasing
// and its last entry always matches the order's current status.
type HistoryEntry struct {
	status    Status
	timestamp time.Time
	note      string
}

// NewHistoryEntry creates a history record. Used both when transitioning and
// when rehydrating the log from persistence.
func NewHistoryEntry(status Status, timestamp time.Time, note string) (HistoryEntry, error) {
	if err := status.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	return HistoryEntry{status: status, timestamp: timestamp, note: note}, nil
}

func (h HistoryEntry) Status() Status       { return h.status }
func (h HistoryEntry) Timestamp() time.Time { return h.timestamp }
func (h HistoryEntry) Note() string         { return h.note }
