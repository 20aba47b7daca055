package session

import (
	orders "go-exchange-orders"
)

// UserProvider exposes the host platform's current-user identity. The host
// owns the handshake that establishes it; this package only reads the
// result.
type UserProvider interface {
	CurrentUser() (orders.User, bool)
}

// Host startup lifecycle signals of the surrounding chat platform. Each is
// invoked once when the app comes up.
type Host interface {
	Ready()
	Expand()
}

// Static provider with a fixed identity.
type Static struct {
	User orders.User
}

func (s Static) CurrentUser() (orders.User, bool) {
	return s.User, s.User.ID != ""
}

// None reports no current user.
type None struct{}

func (None) CurrentUser() (orders.User, bool) {
	return orders.User{}, false
}

// Resolve returns the provider's identity with the sentinel fallbacks
// applied per field: missing id becomes "unknown", missing name becomes
// "Anonymous".
func Resolve(p UserProvider) orders.User {
	user, _ := p.CurrentUser()
	if user.ID == "" {
		user.ID = orders.UnknownUserID
	}
	if user.Name == "" {
		user.Name = orders.AnonymousName
	}
	return user
}

// NopHost satisfies Host for runs outside the chat platform.
type NopHost struct{}

func (NopHost) Ready()  {}
func (NopHost) Expand() {}
