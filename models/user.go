package models

import "time"

const (
	RoleCustomer = "customer"
	RoleManager  = "manager"
)

type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

func ValidRole(role string) bool {
	return role == RoleCustomer || role == RoleManager
}
