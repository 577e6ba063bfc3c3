package preload

import (
	"testing"

	"github.com/BrandonKowalski/navshell/pkg/navshell/screens"
	"github.com/stretchr/testify/assert"
)

var roles = []screens.Role{screens.RoleNone, screens.RoleConsumer, screens.RoleVendor}

func TestTargetsForIsTotalAndValid(t *testing.T) {
	for _, role := range roles {
		for _, id := range screens.All() {
			targets := TargetsFor(id, role)

			seen := map[screens.ID]bool{}
			for _, target := range targets {
				assert.True(t, target.Valid(), "%s/%s -> %d", id, role, target)
				assert.NotEqual(t, id, target, "%s/%s preloads itself", id, role)
				assert.False(t, seen[target], "%s/%s duplicate %s", id, role, target)
				seen[target] = true
			}
		}
	}
}

func TestTargetsForIsDeterministic(t *testing.T) {
	for _, role := range roles {
		for _, id := range screens.All() {
			first := TargetsFor(id, role)
			for i := 0; i < 10; i++ {
				assert.Equal(t, first, TargetsFor(id, role))
			}
		}
	}
}

func TestTargetsForRoleEdges(t *testing.T) {
	assert.Equal(t, []screens.ID{screens.QuoteList, screens.Chat}, TargetsFor(screens.JobDetail, screens.RoleConsumer))
	assert.Equal(t, []screens.ID{screens.QuoteDetail, screens.Chat}, TargetsFor(screens.JobDetail, screens.RoleVendor))
	assert.Equal(t, []screens.ID{screens.Chat}, TargetsFor(screens.JobDetail, screens.RoleNone))

	assert.Equal(t, []screens.ID{screens.VendorHome}, TargetsFor(screens.SignIn, screens.RoleVendor))
	assert.Equal(t, []screens.ID{screens.ConsumerHome, screens.VendorHome}, TargetsFor(screens.SignIn, screens.RoleNone))

	assert.Empty(t, TargetsFor(screens.Help, screens.RoleConsumer))
	assert.Nil(t, TargetsFor(screens.ID(-3), screens.RoleConsumer))
}

func TestCriticalTargets(t *testing.T) {
	critical := CriticalTargets()
	assert.Equal(t, []screens.ID{screens.Welcome, screens.RoleSelect, screens.ConsumerHome, screens.VendorHome}, critical)
}
