package session

import (
	"context"
	"sync"
)

// Navigator switches between the application's screens.
type Navigator interface {
	ToHome(ctx context.Context)
	ToLogin(ctx context.Context)
}

// NavigationAdapter turns session events into screen changes: login goes
// home, logout and an anonymous hydration go to the login screen.
func NavigationAdapter(nav Navigator) Listener {
	var mu sync.Mutex
	return func(ctx context.Context, ev Event) {
		mu.Lock()
		defer mu.Unlock()

		switch ev.Kind {
		case EventLoggedIn:
			nav.ToHome(ctx)
		case EventLoggedOut:
			nav.ToLogin(ctx)
		case EventHydrated:
			if !ev.State.Authenticated() {
				nav.ToLogin(ctx)
			}
		}
	}
}
