package domain

import (
	"time"

	"github.com/google/uuid"
)

// VideoProgress — процент просмотра видео юзером. Поведения поверх записи
// пока нет, но таблица участвует в каскадном удалении курса.
type VideoProgress struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_video"`
	VideoID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_video"`
	Percent   int       `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
