package model

import "time"

const (
	EntityName = "user"

	StoreKeyIsAuthenticated   = "is_authenticated"
	StoreKeyCurrentUser       = "current_user"
	StoreKeyRegisteredUsers   = "registered_users"
	StoreKeyHasSeenOnboarding = "has_seen_onboarding"
	StoreKeyProfileImage      = "profile_image"
)

type User struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone"`
	Points   int       `json:"points"`
	JoinedAt time.Time `json:"joinedAt"`
}

// Session is the persisted sign-in state of the single local user.
type Session struct {
	IsAuthenticated   bool  `json:"isAuthenticated"`
	HasSeenOnboarding bool  `json:"hasSeenOnboarding"`
	User              *User `json:"user,omitempty"`
}
