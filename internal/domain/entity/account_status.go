package entity

// AccountStatus represents the lifecycle state of an account.
// Pending → Active happens through email confirmation; Active ↔ Blocked are
// administrative toggles; Banned is terminal for normal flows.
type AccountStatus string

const (
	// AccountStatusPending indicates the email has not been confirmed yet.
	AccountStatusPending AccountStatus = "pending"
	// AccountStatusActive indicates a fully usable account.
	AccountStatusActive AccountStatus = "active"
	// AccountStatusBlocked indicates an administratively suspended account.
	AccountStatusBlocked AccountStatus = "blocked"
	// AccountStatusBanned indicates a permanently banned account.
	AccountStatusBanned AccountStatus = "banned"
)

// String returns the string representation of the status.
func (s AccountStatus) String() string {
	return string(s)
}

// IsValid checks if the status is a known value.
func (s AccountStatus) IsValid() bool {
	switch s {
	case AccountStatusPending, AccountStatusActive, AccountStatusBlocked, AccountStatusBanned:
		return true
	default:
		return false
	}
}
