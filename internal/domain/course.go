package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCourseNotFound = errors.New("course not found")
	ErrVideoNotFound  = errors.New("video not found")
	// Реордер валиден только если прислали РОВНО текущий набор ID курса
	ErrReorderMismatch = errors.New("reorder list does not match course videos")
)

type Course struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string    `gorm:"index;not null"`
	Description string    `gorm:"not null"`
	Price       float64   `gorm:"not null;default:0"`
	Image       string    // Обложка, может быть пустой

	// Связь один-ко-многим: у курса много видео
	Videos     []Video        `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;"`
	AccessList []CourseAccess `gorm:"foreignKey:CourseID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Video struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CourseID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Title       string    `gorm:"not null"`
	Description string
	URL         string `gorm:"not null"` // Ссылка на YouTube
	Duration    *int   // Минуты, может отсутствовать
	// Порядок воспроизведения внутри курса. Уникальность держит логика
	// (append = max+1, reorder перезаписывает весь набор), дырки допустимы
	Order int `gorm:"column:order;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
