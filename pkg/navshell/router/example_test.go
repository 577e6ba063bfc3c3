package router_test

import (
	"fmt"

	"github.com/BrandonKowalski/navshell/pkg/navshell/router"
	"github.com/BrandonKowalski/navshell/pkg/navshell/screens"
)

// Example demonstrates forward navigation followed by a back action.
func Example() {
	r := router.New(screens.ConsumerHome, func() screens.Role { return screens.RoleConsumer })

	r.OnTransition(func(t router.Transition) {
		fmt.Printf("%s -> %s (%s)\n", t.From, t.To, t.Direction)
	})

	r.NavigateTo(screens.JobDetail)
	r.NavigateTo(screens.Chat)
	r.GoBack()

	fmt.Println("history:", r.History())

	// Output:
	// consumer-home -> job-detail (forward)
	// job-detail -> chat (forward)
	// chat -> job-detail (back)
	// history: [consumer-home]
}

// Example_homeFallback demonstrates back navigation with no history.
func Example_homeFallback() {
	r := router.New(screens.Wallet, func() screens.Role { return screens.RoleVendor })

	r.OnTransition(func(t router.Transition) {
		fmt.Printf("%s -> %s fallback=%t\n", t.From, t.To, t.Fallback)
	})

	r.GoBack()

	// Output:
	// wallet -> vendor-home fallback=true
}
