// Package events fans ledger mutations out to interested surfaces (widgets,
// summary screens) without coupling them to the services that write. The
// publisher is injected explicitly; there is no process-wide bus.
package events

import "context"

// Event names.
const (
	TransactionCreated = "transaction.created"
	TransactionDeleted = "transaction.deleted"
	BillSaved          = "bill.saved"
	BillDeleted        = "bill.deleted"
	ImportCompleted    = "import.completed"
)

// Event is one ledger change notification. EntityID identifies the affected
// entity; import completions carry counts in Detail instead.
type Event struct {
	Name     string         `json:"name"`
	EntityID string         `json:"entity_id,omitempty"`
	Detail   map[string]any `json:"detail,omitempty"`
}

// Publisher delivers events to subscribers. Publish failures must never fail
// the write that triggered them; callers log and continue.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Noop discards every event. Used when no broker is configured and in tests.
type Noop struct{}

// Publish implements Publisher.
func (Noop) Publish(context.Context, Event) error { return nil }

// Close implements Publisher.
func (Noop) Close() error { return nil }
