package domain

import "time"

// UserRole is the coarse role stored on an account.
type UserRole string

const (
	UserRoleUser  UserRole = "USER"
	UserRoleAdmin UserRole = "ADMIN"
)

// User is an EchoNet account. ID is assigned by the database and never reused.
type User struct {
	ID              int64
	Name            string
	Username        string
	Email           string
	PasswordHash    string
	Bio             string
	ProfileImageURL string
	Location        string
	Website         string
	Role            UserRole
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
