package repository

import (
	"context"
	"errors"

	"courseplatform/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type VideoRepository struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewVideoRepository(db *gorm.DB, rdb *redis.Client) *VideoRepository {
	return &VideoRepository{db: db, rdb: rdb}
}

func (r *VideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	var video domain.Video
	err := r.db.WithContext(ctx).First(&video, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrVideoNotFound
		}
		return nil, err
	}
	return &video, nil
}

func (r *VideoRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]domain.Video, error) {
	var videos []domain.Video
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("\"order\" asc").
		Find(&videos).Error
	return videos, err
}

// Append вставляет видео в конец: order = max(order)+1 внутри транзакции,
// чтобы два параллельных добавления не получили один номер.
// В пустом курсе первое видео получает 1.
func (r *VideoRepository) Append(ctx context.Context, v *domain.Video) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxOrder *int
		if err := tx.Model(&domain.Video{}).
			Where("course_id = ?", v.CourseID).
			Select("MAX(\"order\")").
			Scan(&maxOrder).Error; err != nil {
			return err
		}

		if maxOrder == nil {
			v.Order = 1
		} else {
			v.Order = *maxOrder + 1
		}

		return tx.Create(v).Error
	})
	if err != nil {
		return err
	}

	r.invalidateCourse(ctx, v.CourseID)
	return nil
}

func (r *VideoRepository) Update(ctx context.Context, v *domain.Video) error {
	if err := r.db.WithContext(ctx).Save(v).Error; err != nil {
		return err
	}
	r.invalidateCourse(ctx, v.CourseID)
	return nil
}

// Delete убирает строку, НЕ перенумеровывая остальные: order — ключ
// сортировки, а не плотный индекс, дырки нас устраивают.
func (r *VideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	var video domain.Video
	err := r.db.WithContext(ctx).First(&video, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrVideoNotFound
		}
		return err
	}

	if err := r.db.WithContext(ctx).Delete(&domain.Video{}, "id = ?", id).Error; err != nil {
		return err
	}

	r.invalidateCourse(ctx, video.CourseID)
	return nil
}

// Reorder применяет НОВЫЙ ПОЛНЫЙ порядок курса одной транзакцией.
// Присланный набор ID обязан совпасть с текущим набором видео курса,
// иначе откатываем всё: реордер со stale-списком (кто-то параллельно
// добавил видео) не должен молча выкидывать новое видео из порядка.
func (r *VideoRepository) Reorder(ctx context.Context, courseID uuid.UUID, orderedIDs []uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current []uuid.UUID
		if err := tx.Model(&domain.Video{}).
			Where("course_id = ?", courseID).
			Pluck("id", &current).Error; err != nil {
			return err
		}

		if !sameIDSet(current, orderedIDs) {
			return domain.ErrReorderMismatch
		}

		for i, id := range orderedIDs {
			if err := tx.Model(&domain.Video{}).
				Where("id = ?", id).
				Update("order", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.invalidateCourse(ctx, courseID)
	return nil
}

// Наборы равны: одинаковая длина, без дублей, каждый ID из текущих
func sameIDSet(current, incoming []uuid.UUID) bool {
	if len(current) != len(incoming) {
		return false
	}
	seen := make(map[uuid.UUID]bool, len(current))
	for _, id := range current {
		seen[id] = true
	}
	for _, id := range incoming {
		if !seen[id] {
			return false
		}
		delete(seen, id)
	}
	return len(seen) == 0
}

func (r *VideoRepository) invalidateCourse(ctx context.Context, courseID uuid.UUID) {
	if r.rdb != nil {
		r.rdb.Del(ctx, "course:detail:"+courseID.String())
	}
}
