package router

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/BrandonKowalski/navshell/pkg/navshell/screens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roleOf(role screens.Role) RoleFunc {
	return func() screens.Role { return role }
}

func TestStack(t *testing.T) {
	s := NewStack()
	assert.True(t, s.IsEmpty())

	_, ok := s.PopBack()
	assert.False(t, ok, "pop on empty stack must report underflow")

	assert.True(t, s.PushForward(screens.Welcome))
	assert.False(t, s.PushForward(screens.Welcome), "same top must be a no-op")
	assert.True(t, s.PushForward(screens.Chat))
	assert.True(t, s.PushForward(screens.Welcome), "revisit deeper in the stack is an independent push")
	assert.Equal(t, []screens.ID{screens.Welcome, screens.Chat, screens.Welcome}, s.Entries())

	top, ok := s.Peek()
	require.True(t, ok)
	assert.Equal(t, screens.Welcome, top)
	assert.Equal(t, 3, s.Len())

	s.Clear()
	assert.True(t, s.IsEmpty())
}

func TestNavigateTo(t *testing.T) {
	t.Run("self navigation is a no-op", func(t *testing.T) {
		r := New(screens.Welcome, nil)
		assert.False(t, r.NavigateTo(screens.Welcome))
		assert.Empty(t, r.History())
	})

	t.Run("unknown screen is rejected", func(t *testing.T) {
		r := New(screens.Welcome, nil)
		assert.False(t, r.NavigateTo(screens.ID(1000)))
		assert.Equal(t, screens.Welcome, r.Active())
		assert.Empty(t, r.History())
	})

	t.Run("direction is forward after navigate", func(t *testing.T) {
		r := New(screens.ConsumerHome, nil)
		r.GoBack()
		require.Equal(t, Back, r.Direction())

		require.True(t, r.NavigateTo(screens.Profile))
		assert.Equal(t, Forward, r.Direction())
	})

	t.Run("path navigation resolves through the route table", func(t *testing.T) {
		r := New(screens.Welcome, nil)
		require.True(t, r.NavigatePath("/jobs/12"))
		assert.Equal(t, screens.JobDetail, r.Active())
	})
}

func TestGoBack(t *testing.T) {
	t.Run("round trip restores previous screen", func(t *testing.T) {
		r := New(screens.ConsumerHome, roleOf(screens.RoleConsumer))
		r.NavigateTo(screens.JobDetail)
		r.NavigateTo(screens.Chat)
		require.Len(t, r.History(), 2)

		assert.Equal(t, screens.JobDetail, r.GoBack())
		assert.Equal(t, screens.JobDetail, r.Active())
		assert.Len(t, r.History(), 1)
		assert.Equal(t, Back, r.Direction())
	})

	fallbacks := []struct {
		role screens.Role
		want screens.ID
	}{
		{screens.RoleVendor, screens.VendorHome},
		{screens.RoleConsumer, screens.ConsumerHome},
		{screens.RoleNone, screens.Welcome},
	}
	for _, tt := range fallbacks {
		t.Run("empty stack routes home for "+tt.role.String(), func(t *testing.T) {
			r := New(screens.Settings, roleOf(tt.role))

			var got []Transition
			r.OnTransition(func(tr Transition) { got = append(got, tr) })

			assert.Equal(t, tt.want, r.GoBack())
			assert.Equal(t, tt.want, r.Active())
			assert.Equal(t, Back, r.Direction())
			require.Len(t, got, 1)
			assert.True(t, got[0].Fallback)
		})
	}

	t.Run("back on home with empty stack does not notify", func(t *testing.T) {
		r := New(screens.Welcome, nil)
		called := false
		r.OnTransition(func(Transition) { called = true })

		assert.Equal(t, screens.Welcome, r.GoBack())
		assert.False(t, called)
	})
}

func TestCanGoBack(t *testing.T) {
	r := New(screens.ConsumerHome, roleOf(screens.RoleConsumer))
	assert.False(t, r.CanGoBack(), "empty history")

	r.NavigateTo(screens.Chat)
	assert.True(t, r.CanGoBack())

	r.NavigateTo(screens.VendorHome)
	assert.False(t, r.CanGoBack(), "home screens never allow swipe back")
}

func TestHistoryLengthLaw(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	all := screens.All()

	r := New(screens.Welcome, nil)
	forward, pops := 0, 0

	for i := 0; i < 500; i++ {
		if rng.Intn(3) == 0 {
			if len(r.History()) > 0 {
				pops++
			}
			r.GoBack()
			continue
		}

		before := r.Active()
		target := all[rng.Intn(len(all))]
		pushed := before != target && (len(r.History()) == 0 || r.History()[len(r.History())-1] != before)
		if r.NavigateTo(target) && pushed {
			forward++
		}

		h := r.History()
		for j := 1; j < len(h); j++ {
			assert.NotEqual(t, h[j-1], h[j], "consecutive duplicate entries at %d", j)
		}
	}

	assert.Equal(t, forward-pops, len(r.History()))
}

func TestConcurrentBack(t *testing.T) {
	r := New(screens.ConsumerHome, roleOf(screens.RoleConsumer))
	r.NavigateTo(screens.JobDetail)
	r.NavigateTo(screens.Chat)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.GoBack()
		}()
	}
	wg.Wait()

	assert.Equal(t, screens.ConsumerHome, r.Active())
	assert.Empty(t, r.History())
}

func TestReset(t *testing.T) {
	r := New(screens.ConsumerHome, nil)
	r.NavigateTo(screens.Chat)
	r.Reset(screens.Welcome)

	assert.Equal(t, screens.Welcome, r.Active())
	assert.Empty(t, r.History())
}
