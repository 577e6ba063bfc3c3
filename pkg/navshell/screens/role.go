package screens

import "strings"

// Role is the signed-in user's role. It is read-only input to navshell;
// the shell never sets or validates it.
type Role int

const (
	RoleNone Role = iota
	RoleConsumer
	RoleVendor
)

// String returns the lowercase name of the role, or "none".
func (r Role) String() string {
	switch r {
	case RoleConsumer:
		return "consumer"
	case RoleVendor:
		return "vendor"
	default:
		return "none"
	}
}

// ParseRole maps "consumer" and "vendor" to their roles. Anything else,
// including the empty string, is RoleNone.
func ParseRole(raw string) Role {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "consumer":
		return RoleConsumer
	case "vendor":
		return RoleVendor
	default:
		return RoleNone
	}
}

// HomeFor returns the screen back navigation falls back to when history is empty.
func HomeFor(role Role) ID {
	switch role {
	case RoleConsumer:
		return ConsumerHome
	case RoleVendor:
		return VendorHome
	default:
		return Welcome
	}
}
