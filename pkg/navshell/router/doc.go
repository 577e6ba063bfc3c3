// Package router provides the navigation facade: a history stack of
// previously visited screens, the forward/back direction tracker that
// transition animations read, and the two entry points screens use to move
// around.
//
// # Basic Usage
//
//	r := router.New(screens.Welcome, func() screens.Role { return session.Role })
//
//	r.OnTransition(func(t router.Transition) {
//	    variants := transition.VariantsFor(t.To, t.Direction)
//	    shell.animate(t.From, t.To, variants)
//	})
//
//	r.NavigateTo(screens.JobDetail) // pushes Welcome, direction = forward
//	r.GoBack()                      // pops Welcome, direction = back
//
// # Back Navigation
//
// GoBack never fails. When the stack is empty it routes to the home screen
// for the current role (consumer home, vendor home, or welcome when nobody
// is signed in). Edge swipes call the same GoBack as explicit back taps.
//
// # Direction
//
// The direction is written in the same locked step as the active screen,
// before listeners run. Listeners receive it in the Transition value, so
// they never observe a direction that belongs to a different transition.
package router
