package models

import (
	"encoding/json"
	"fmt"
	"maps"
)

// Role is the account role assigned by the server.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
	RoleOwner Role = "owner"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleOwner:
		return true
	}
	return false
}

// StreakData is owned by the gamification subsystem and opaque here.
type StreakData map[string]any

// User is the profile of the signed-in account.
//
// IsAdmin and IsOwner are derived from Role and never stored separately, so
// they cannot disagree with it. An owner is also an admin.
type User struct {
	ID               int64
	Username         string
	Email            string
	ShareCode        string
	Avatar           *string
	Bio              string
	Role             Role
	StreakData       StreakData
	TwoFactorEnabled bool
}

func (u *User) IsAdmin() bool {
	return u != nil && (u.Role == RoleAdmin || u.Role == RoleOwner)
}

func (u *User) IsOwner() bool {
	return u != nil && u.Role == RoleOwner
}

// Clone returns a deep copy of u. Nil stays nil.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.Avatar != nil {
		a := *u.Avatar
		c.Avatar = &a
	}
	if u.StreakData != nil {
		c.StreakData = maps.Clone(u.StreakData)
	}
	return &c
}

type userJSON struct {
	ID               int64      `json:"id"`
	Username         string     `json:"username"`
	Email            string     `json:"email"`
	ShareCode        string     `json:"shareCode"`
	Avatar           *string    `json:"avatar,omitempty"`
	Bio              string     `json:"bio"`
	Role             Role       `json:"role"`
	IsAdmin          bool       `json:"isAdmin"`
	IsOwner          bool       `json:"isOwner"`
	StreakData       StreakData `json:"streakData,omitempty"`
	TwoFactorEnabled bool       `json:"twoFactorEnabled"`
}

func (u User) MarshalJSON() ([]byte, error) {
	return json.Marshal(userJSON{
		ID:               u.ID,
		Username:         u.Username,
		Email:            u.Email,
		ShareCode:        u.ShareCode,
		Avatar:           u.Avatar,
		Bio:              u.Bio,
		Role:             u.Role,
		IsAdmin:          u.IsAdmin(),
		IsOwner:          u.IsOwner(),
		StreakData:       u.StreakData,
		TwoFactorEnabled: u.TwoFactorEnabled,
	})
}

// UnmarshalJSON ignores the wire isAdmin/isOwner flags and recomputes them
// from role. A missing role decodes as RoleUser; an unknown one is an error.
func (u *User) UnmarshalJSON(data []byte) error {
	var w userJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Role == "" {
		w.Role = RoleUser
	}
	if !w.Role.Valid() {
		return fmt.Errorf("unknown user role %q", w.Role)
	}

	*u = User{
		ID:               w.ID,
		Username:         w.Username,
		Email:            w.Email,
		ShareCode:        w.ShareCode,
		Avatar:           w.Avatar,
		Bio:              w.Bio,
		Role:             w.Role,
		StreakData:       w.StreakData,
		TwoFactorEnabled: w.TwoFactorEnabled,
	}
	return nil
}
