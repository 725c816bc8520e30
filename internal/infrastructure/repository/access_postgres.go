package repository

import (
	"context"
	"errors"
	"time"

	"courseplatform/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AccessRepository struct {
	db *gorm.DB
}

func NewAccessRepository(db *gorm.DB) *AccessRepository {
	return &AccessRepository{db: db}
}

// Upsert — выдача доступа. Атомарный INSERT ... ON CONFLICT по паре
// (user_id, course_id): два админа, выдающие доступ одновременно, не
// создадут дубль. Существующая строка реактивируется, expires_at
// перезаписывается (nil = бессрочно).
func (r *AccessRepository) Upsert(ctx context.Context, userID, courseID uuid.UUID, expiresAt *time.Time) (*domain.CourseAccess, error) {
	access := domain.CourseAccess{
		ID:        uuid.New(),
		UserID:    userID,
		CourseID:  courseID,
		IsActive:  true,
		ExpiresAt: expiresAt,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"is_active":  true,
			"expires_at": expiresAt,
			"updated_at": time.Now(),
		}),
	}).Create(&access).Error
	if err != nil {
		return nil, err
	}

	// Перечитываем строку: при конфликте остался старый ID и created_at
	var result domain.CourseAccess
	err = r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Revoke только гасит флаг. ExpiresAt не трогаем — это история того,
// до какого числа доступ был выдан.
func (r *AccessRepository) Revoke(ctx context.Context, accessID uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&domain.CourseAccess{}).
		Where("id = ?", accessID).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrAccessNotFound
	}
	return nil
}

func (r *AccessRepository) GetByID(ctx context.Context, accessID uuid.UUID) (*domain.CourseAccess, error) {
	var access domain.CourseAccess
	err := r.db.WithContext(ctx).First(&access, "id = ?", accessID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccessNotFound
		}
		return nil, err
	}
	return &access, nil
}

// GetByUserCourse — свежая строка для пары, nil-ошибка ErrAccessNotFound
// если доступа никогда не выдавали
func (r *AccessRepository) GetByUserCourse(ctx context.Context, userID, courseID uuid.UUID) (*domain.CourseAccess, error) {
	var access domain.CourseAccess
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&access).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccessNotFound
		}
		return nil, err
	}
	return &access, nil
}

// ListEffectiveByUser — только реально действующие доступы:
// is_active И (бессрочно ИЛИ срок строго в будущем). Фильтр в SQL
// зеркалит domain.EffectiveAt, свежие гранты первыми.
func (r *AccessRepository) ListEffectiveByUser(ctx context.Context, userID uuid.UUID, now time.Time) ([]domain.CourseAccess, error) {
	var accesses []domain.CourseAccess
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Preload("Course").
		Order("created_at desc").
		Find(&accesses).Error
	return accesses, err
}

// ListAll — все гранты со связями для админской страницы доступов
// (включая отозванные и истекшие)
func (r *AccessRepository) ListAll(ctx context.Context) ([]domain.CourseAccess, error) {
	var accesses []domain.CourseAccess
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Course").
		Order("created_at desc").
		Find(&accesses).Error
	return accesses, err
}
