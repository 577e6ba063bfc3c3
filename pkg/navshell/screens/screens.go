// Package screens defines the closed set of full-screen views the shell can
// show, the user roles that influence navigation, and the lookup table that
// maps URL paths onto screens.
//
// The rest of navshell only ever works with ID values. Screen contents are
// opaque and live behind loaders registered per ID.
package screens

import "fmt"

// ID identifies one of the application's full-screen views.
type ID int

const (
	Welcome ID = iota
	RoleSelect
	SignIn
	ConsumerHome
	VendorHome
	PostJob
	JobDetail
	QuoteList
	QuoteDetail
	ChatList
	Chat
	Profile
	Settings
	Rewards
	Wallet
	Review
	Payment
	Notifications
	Help

	count // sentinel, keep last
)

var names = [count]string{
	Welcome:       "welcome",
	RoleSelect:    "role-select",
	SignIn:        "sign-in",
	ConsumerHome:  "consumer-home",
	VendorHome:    "vendor-home",
	PostJob:       "post-job",
	JobDetail:     "job-detail",
	QuoteList:     "quote-list",
	QuoteDetail:   "quote-detail",
	ChatList:      "chat-list",
	Chat:          "chat",
	Profile:       "profile",
	Settings:      "settings",
	Rewards:       "rewards",
	Wallet:        "wallet",
	Review:        "review",
	Payment:       "payment",
	Notifications: "notifications",
	Help:          "help",
}

// All returns every defined screen in declaration order.
func All() []ID {
	out := make([]ID, 0, count)
	for id := ID(0); id < count; id++ {
		out = append(out, id)
	}
	return out
}

// Count returns the number of defined screens.
func Count() int {
	return int(count)
}

// Valid reports whether id is one of the defined screens.
func (id ID) Valid() bool {
	return id >= 0 && id < count
}

// String returns the kebab-case name of the screen.
func (id ID) String() string {
	if !id.Valid() {
		return fmt.Sprintf("screen(%d)", int(id))
	}
	return names[id]
}

// Parse returns the screen with the given kebab-case name.
func Parse(name string) (ID, error) {
	for id, n := range names {
		if n == name {
			return ID(id), nil
		}
	}
	return Welcome, fmt.Errorf("screens: unknown screen %q", name)
}

// roots are the screens with no meaningful "back": entry and home screens.
var roots = map[ID]bool{
	Welcome:      true,
	ConsumerHome: true,
	VendorHome:   true,
}

// IsRoot reports whether id is an entry or home screen. Swipe back is never
// offered on a root screen.
func IsRoot(id ID) bool {
	return roots[id]
}
