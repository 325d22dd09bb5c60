package auth

import (
	"context"

	"ecosoap/internal/model"
)

type EventKind int

const (
	LoggedIn EventKind = iota
	LoggedOut
)

func (k EventKind) String() string {
	if k == LoggedIn {
		return "logged-in"
	}
	return "logged-out"
}

// Event is delivered to subscribers whenever the signed-in user changes.
// User is nil for LoggedOut.
type Event struct {
	Kind EventKind
	User *model.User
}

// Session holds the signed-in user. It is owned by the UI event loop and is
// not safe for concurrent use.
type Session struct {
	provider    IdentityProvider
	user        *model.User
	subscribers []func(Event)
}

func NewSession(provider IdentityProvider) *Session {
	return &Session{provider: provider}
}

// Subscribe registers fn for every future Event.
func (s *Session) Subscribe(fn func(Event)) {
	s.subscribers = append(s.subscribers, fn)
}

// Login authenticates and, on success, notifies subscribers with LoggedIn.
func (s *Session) Login(ctx context.Context, username, password string) (*model.User, error) {
	u, err := s.provider.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	s.SetUser(u)
	return u, nil
}

// SetUser records an already authenticated user and notifies subscribers.
func (s *Session) SetUser(u *model.User) {
	s.user = u
	s.publish(Event{Kind: LoggedIn, User: u})
}

// Logout clears the user. It is a no-op when nobody is signed in.
func (s *Session) Logout() {
	if s.user == nil {
		return
	}
	s.user = nil
	s.publish(Event{Kind: LoggedOut})
}

// Update replaces the stored user record without a sign-in event, e.g. after
// a profile edit.
func (s *Session) Update(u *model.User) {
	if s.user != nil && u != nil && s.user.ID == u.ID {
		s.user = u
	}
}

func (s *Session) User() *model.User {
	return s.user
}

func (s *Session) SignedIn() bool {
	return s.user != nil
}

func (s *Session) publish(e Event) {
	for _, fn := range s.subscribers {
		fn(e)
	}
}
