package screens

import "strings"

// routes is the only place path strings enter navshell.
var routes = map[string]ID{
	"/":              Welcome,
	"/welcome":       Welcome,
	"/start":         RoleSelect,
	"/sign-in":       SignIn,
	"/home":          ConsumerHome,
	"/vendor":        VendorHome,
	"/jobs/new":      PostJob,
	"/jobs":          JobDetail,
	"/quotes":        QuoteList,
	"/quotes/detail": QuoteDetail,
	"/messages":      ChatList,
	"/chat":          Chat,
	"/profile":       Profile,
	"/settings":      Settings,
	"/rewards":       Rewards,
	"/wallet":        Wallet,
	"/review":        Review,
	"/pay":           Payment,
	"/notifications": Notifications,
	"/help":          Help,
}

// canonical is the preferred path for each screen.
var canonical = func() map[ID]string {
	out := make(map[ID]string, len(routes))
	for path, id := range routes {
		if prev, ok := out[id]; !ok || len(path) > len(prev) {
			out[id] = path
		}
	}
	return out
}()

// Resolve maps a URL path onto a screen. An exact match wins, then the
// longest registered prefix that ends on a segment boundary. Anything else
// resolves to Welcome.
func Resolve(path string) ID {
	path = normalizePath(path)

	if id, ok := routes[path]; ok {
		return id
	}

	best, bestLen := Welcome, 0
	for prefix, id := range routes {
		if prefix == "/" || len(prefix) <= bestLen {
			continue
		}
		if strings.HasPrefix(path, prefix+"/") {
			best, bestLen = id, len(prefix)
		}
	}
	return best
}

// Path returns the canonical URL path of a screen.
func Path(id ID) string {
	if p, ok := canonical[id]; ok {
		return p
	}
	return "/"
}

func normalizePath(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}
