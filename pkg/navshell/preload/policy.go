package preload

import (
	"github.com/BrandonKowalski/navshell/pkg/navshell/screens"
	"github.com/samber/lo"
)

// hotEdges lists, per screen, the screens users most often open next.
// Role-specific edges in roleEdges come first when a role is known.
var hotEdges = map[screens.ID][]screens.ID{
	screens.Welcome:       {screens.RoleSelect, screens.SignIn},
	screens.RoleSelect:    {screens.SignIn},
	screens.SignIn:        {},
	screens.ConsumerHome:  {screens.PostJob, screens.JobDetail, screens.Notifications, screens.ChatList},
	screens.VendorHome:    {screens.JobDetail, screens.QuoteList, screens.Notifications, screens.ChatList},
	screens.PostJob:       {screens.JobDetail},
	screens.JobDetail:     {screens.Chat},
	screens.QuoteList:     {screens.QuoteDetail, screens.Chat},
	screens.QuoteDetail:   {screens.Chat},
	screens.ChatList:      {screens.Chat},
	screens.Chat:          {screens.Profile},
	screens.Profile:       {screens.Settings, screens.Rewards, screens.Wallet},
	screens.Settings:      {screens.Help},
	screens.Rewards:       {screens.Wallet},
	screens.Wallet:        {screens.Payment},
	screens.Review:        {},
	screens.Payment:       {screens.Review},
	screens.Notifications: {screens.JobDetail, screens.Chat},
	screens.Help:          {},
}

var roleEdges = map[screens.Role]map[screens.ID][]screens.ID{
	screens.RoleConsumer: {
		screens.JobDetail:   {screens.QuoteList},
		screens.QuoteDetail: {screens.Payment},
	},
	screens.RoleVendor: {
		screens.JobDetail: {screens.QuoteDetail},
	},
}

// TargetsFor returns the screens worth preloading while screen is shown.
// The result is deterministic, free of duplicates, never contains screen
// itself, and only names defined screens. Undefined input yields nil.
func TargetsFor(screen screens.ID, role screens.Role) []screens.ID {
	if !screen.Valid() {
		return nil
	}

	var out []screens.ID
	out = append(out, roleEdges[role][screen]...)
	out = append(out, hotEdges[screen]...)

	switch screen {
	case screens.RoleSelect, screens.SignIn, screens.Review:
		// Leaving these lands on a home screen.
		if role == screens.RoleNone {
			out = append(out, screens.ConsumerHome, screens.VendorHome)
		} else {
			out = append(out, screens.HomeFor(role))
		}
	}

	return lo.Uniq(lo.Filter(out, func(id screens.ID, _ int) bool {
		return id != screen && id.Valid()
	}))
}

// CriticalTargets returns the screens loaded unconditionally shortly after
// startup: the two entry screens, then both home screens.
func CriticalTargets() []screens.ID {
	return []screens.ID{
		screens.Welcome,
		screens.RoleSelect,
		screens.ConsumerHome,
		screens.VendorHome,
	}
}
