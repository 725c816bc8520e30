package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

const (
	RoleAdmin  = "ADMIN"
	RoleClient = "CLIENT"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name     string    `gorm:"not null;size:100"`
	Email    string    `gorm:"uniqueIndex;not null;size:100"`
	Password string    `gorm:"not null" json:"-"`
	// Роль задается один раз при создании. Регистрация всегда дает CLIENT,
	// админ сидится при старте приложения.
	Role      string `gorm:"not null;default:'CLIENT';size:10"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
