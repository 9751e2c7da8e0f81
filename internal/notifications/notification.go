// Package notifications implements the per-user notification queue. Flows
// enqueue ephemeral messages on success or failure; clients drain and
// dismiss them. Nothing is persisted.
package notifications

// Severity categories for notifications.
const (
	TypeSuccess = "success"
	TypeDanger  = "danger"
	TypeInfo    = "info"
	TypeWarning = "warning"
)

// Notification is an ephemeral user-facing message. DurationMs, when set,
// is the client's auto-dismiss hint; the queue itself expires entries only
// on explicit dismissal or drain.
type Notification struct {
	ID         int64  `json:"id"`
	Message    string `json:"message"`
	Type       string `json:"type"`
	DurationMs *int   `json:"duration,omitempty"`
}

// ValidType reports whether t is a known severity category.
func ValidType(t string) bool {
	switch t {
	case TypeSuccess, TypeDanger, TypeInfo, TypeWarning:
		return true
	}
	return false
}
