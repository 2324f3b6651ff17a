package entity

// ProfileType represents the authorization role of an account.
type ProfileType string

const (
	// ProfileTypeCommonUser indicates a regular store customer.
	ProfileTypeCommonUser ProfileType = "common_user"
	// ProfileTypeAdmin indicates an administrator.
	ProfileTypeAdmin ProfileType = "admin"
)

// String returns the string representation of the profile type.
func (p ProfileType) String() string {
	return string(p)
}

// IsValid checks if the profile type is a known value.
func (p ProfileType) IsValid() bool {
	switch p {
	case ProfileTypeCommonUser, ProfileTypeAdmin:
		return true
	default:
		return false
	}
}
