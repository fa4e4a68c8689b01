package usersvc

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/foodfetch/storefront/internal/dal/interfaces/ikvbridge"
	"github.com/foodfetch/storefront/internal/service/models/user"
)

// UserService holds the authenticated session user through the bridge.
type UserService struct {
	mu      sync.Mutex
	current *user.User
	bridge  ikvbridge.IKVBridge
}

// MustNewUserService creates the user service and restores a persisted session.
func MustNewUserService(bridge ikvbridge.IKVBridge) *UserService {
	s := &UserService{
		bridge: bridge,
	}

	if bridge != nil {
		var u user.User
		if bridge.Read(context.Background(), ikvbridge.KeyUser, &u) {
			s.current = &u
		}
	}

	return s
}

// SignIn stores the session user, assigning an id when the caller has none.
func (s *UserService) SignIn(ctx context.Context, u user.User) (user.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	s.mu.Lock()
	s.current = &u
	s.mu.Unlock()

	if s.bridge != nil {
		if err := s.bridge.Write(ctx, ikvbridge.KeyUser, u); err != nil {
			return user.User{}, err
		}
	}

	return u, nil
}

// Current returns the session user, if any.
func (s *UserService) Current() (user.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return user.User{}, false
	}

	return *s.current, true
}

// SignOut clears the session user.
func (s *UserService) SignOut(ctx context.Context) error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if s.bridge != nil {
		return s.bridge.Remove(ctx, ikvbridge.KeyUser)
	}

	return nil
}
