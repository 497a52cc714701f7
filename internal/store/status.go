package store

// Status is the canonical processing status for a document record.
type Status string

// Stable values (store these exact strings in the collection).
const (
	StatusNotProcessed Status = "notprocessed" // never picked up
	StatusProcessing   Status = "processing"   // in progress
	StatusProcessed    Status = "processed"    // terminal success
	StatusFailed       Status = "failed"       // failed, re-picked up on the next pass
)

// PendingStatuses are the statuses the batch driver considers workable.
// A failed document is deliberately pending again: the next pass retries it.
var PendingStatuses = []Status{StatusNotProcessed, StatusProcessing, StatusFailed}

// IsPending reports whether a document with this status is eligible for
// pickup by the batch driver.
func (s Status) IsPending() bool {
	for _, p := range PendingStatuses {
		if s == p {
			return true
		}
	}
	return false
}
