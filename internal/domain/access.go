package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrAccessNotFound = errors.New("access grant not found")

// CourseAccess — выданный админом доступ юзера к курсу.
// На пару (user, course) всегда не больше одной строки: повторная выдача
// реактивирует существующую. Revoke только снимает IsActive, строка и
// ExpiresAt остаются как история.
type CourseAccess struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_course"`
	CourseID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_course"`
	IsActive bool      `gorm:"not null;default:true"`
	// nil = бессрочный доступ
	ExpiresAt *time.Time

	User   User   `gorm:"foreignKey:UserID" json:"-"`
	Course Course `gorm:"foreignKey:CourseID" json:"-"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveAt — единственный предикат реального доступа. Проверять ТОЛЬКО
// через него: IsActive сам по себе не учитывает истекший срок.
// Срок, равный now, считается истекшим (строгое >).
func (a *CourseAccess) EffectiveAt(now time.Time) bool {
	if !a.IsActive {
		return false
	}
	return a.ExpiresAt == nil || a.ExpiresAt.After(now)
}

// Expired — срок вышел, но грант не отозван. Для админской выборки
// (бейдж "Expired" vs "Revoked").
func (a *CourseAccess) Expired(now time.Time) bool {
	return a.ExpiresAt != nil && !a.ExpiresAt.After(now)
}
