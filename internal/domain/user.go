package domain

import (
	"time"
)

type Role string

const (
	RoleWorker      Role = "treballador"
	RoleCoordinator Role = "coordinador"
	RoleAdmin       Role = "administrador"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	Department   string    `json:"department"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
