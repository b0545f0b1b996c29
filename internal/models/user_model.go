package models

import "time"

type User struct {
	ID             int64     `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Email          string    `db:"email" json:"email"`
	Role           string    `db:"role" json:"role"`
	ProfilePicture string    `db:"profile_picture" json:"profile_picture"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

const (
	RoleAdmin      = "admin"
	RoleInstructor = "instructor"
	RoleMember     = "member"
)

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
