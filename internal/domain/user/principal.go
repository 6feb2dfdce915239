package user

import "strings"

const (
	DefaultGuestAccountID   = "universal-guest"
	DefaultGuestDisplayName = "Guest"
)

// Principal is the caller an HTTP request acts for.
type Principal struct {
	UserID      string
	Email       string
	DisplayName string
	Guest       bool
}

// GuestAccount is the shared account anonymous callers are mapped to. Every guest
// session reads and writes the same profile and prediction set.
type GuestAccount struct {
	ID          string
	DisplayName string
}

func NewGuestAccount(id, displayName string) GuestAccount {
	id = strings.TrimSpace(id)
	if id == "" {
		id = DefaultGuestAccountID
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = DefaultGuestDisplayName
	}
	return GuestAccount{ID: id, DisplayName: displayName}
}

func (g GuestAccount) Principal() Principal {
	return Principal{UserID: g.ID, DisplayName: g.DisplayName, Guest: true}
}

// Name returns the display name, falling back to the email local part and then the id.
func (p Principal) Name() string {
	if name := strings.TrimSpace(p.DisplayName); name != "" {
		return name
	}
	if local, _, ok := strings.Cut(strings.TrimSpace(p.Email), "@"); ok && local != "" {
		return local
	}
	return p.UserID
}
