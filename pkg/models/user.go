package models

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	RoleUser  = "user"
	RoleAgent = "agent"
	RoleAdmin = "admin"
)

// User represents a platform account. Role determines catalog visibility and
// which back-office endpoints are reachable.
type User struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string        `bson:"email" json:"email" validate:"required,email"`
	UserName  string        `bson:"user_name" json:"userName" validate:"required,min=3,max=20"`
	Password  string        `bson:"password" json:"-" validate:"required,min=6"` // Never expose in JSON
	Role      string        `bson:"role" json:"role" validate:"required,oneof=user agent admin"`
	CreatedAt time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updatedAt"`
}

var userNamePattern = regexp.MustCompile(`^[A-Za-z0-9_.]{3,20}$`)

// ValidUserName reports whether s is 3-20 characters of letters, digits,
// underscores or periods.
func ValidUserName(s string) bool {
	return userNamePattern.MatchString(s)
}

func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAgent, RoleAdmin:
		return true
	default:
		return false
	}
}

// SetTimestamps sets created_at on first call and always updates updated_at
func (u *User) SetTimestamps() {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsAgent() bool {
	return u.Role == RoleAgent
}

// UserSummary is the shape embedded into admin order listings. Password never
// appears here.
type UserSummary struct {
	ID       bson.ObjectID `bson:"_id" json:"id"`
	Email    string        `bson:"email" json:"email"`
	UserName string        `bson:"user_name" json:"userName"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	UserName string `json:"userName" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=user agent"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
