package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"courseplatform/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CourseRepository struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewCourseRepository(db *gorm.DB, rdb *redis.Client) *CourseRepository {
	return &CourseRepository{db: db, rdb: rdb}
}

// === КЕШИРУЕМ СПИСОК КУРСОВ (публичный каталог) ===
func (r *CourseRepository) List(ctx context.Context, search string, limit, offset int) ([]domain.Course, int64, error) {
	// Ключ кеша зависит от фильтров
	key := fmt.Sprintf("courses:list:%s:%d:%d", search, limit, offset)

	// 1. Читаем из кеша
	if r.rdb != nil {
		val, err := r.rdb.Get(ctx, key).Result()
		if err == nil {
			var result struct {
				Courses []domain.Course
				Total   int64
			}
			if json.Unmarshal([]byte(val), &result) == nil {
				return result.Courses, result.Total, nil
			}
		}
	}

	// 2. Читаем из БД (если нет в кеше)
	var courses []domain.Course
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Course{})
	if search != "" {
		query = query.Where("title ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Limit(limit).Offset(offset).Order("created_at desc").Find(&courses).Error
	if err != nil {
		return nil, 0, err
	}

	// 3. Пишем в кеш (на 10 минут, курсы меняются не часто)
	if r.rdb != nil {
		cacheData := struct {
			Courses []domain.Course
			Total   int64
		}{courses, total}

		if data, err := json.Marshal(cacheData); err == nil {
			r.rdb.Set(ctx, key, data, 10*time.Minute)
		}
	}

	return courses, total, nil
}

// Search — админский поиск для формы выдачи доступа (title asc, без кеша)
func (r *CourseRepository) Search(ctx context.Context, query string, limit, offset int) ([]domain.Course, int64, error) {
	var courses []domain.Course
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Course{})
	if query != "" {
		q = q.Where("title ILIKE ?", "%"+query+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("title asc").Limit(limit).Offset(offset).Find(&courses).Error
	if err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	var course domain.Course
	err := r.db.WithContext(ctx).First(&course, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}
	return &course, nil
}

// === КЕШИРУЕМ ОДИН КУРС (С ВИДЕО ПО ПОРЯДКУ) ===
func (r *CourseRepository) GetWithVideos(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	key := "course:detail:" + id.String()

	// 1. Кеш
	if r.rdb != nil {
		val, err := r.rdb.Get(ctx, key).Result()
		if err == nil {
			var c domain.Course
			if json.Unmarshal([]byte(val), &c) == nil {
				return &c, nil
			}
		}
	}

	// 2. БД
	var course domain.Course
	err := r.db.WithContext(ctx).
		Preload("Videos", func(db *gorm.DB) *gorm.DB {
			return db.Order("\"order\" asc")
		}).
		First(&course, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}

	// 3. Сохраняем в кеш на 1 час
	if r.rdb != nil {
		if data, err := json.Marshal(course); err == nil {
			r.rdb.Set(ctx, key, data, 1*time.Hour)
		}
	}

	return &course, nil
}

// Counts — сколько у курса видео и сколько активных доступов
// (для админской карточки курса)
func (r *CourseRepository) Counts(ctx context.Context, id uuid.UUID) (videos int64, activeAccesses int64, err error) {
	if err = r.db.WithContext(ctx).Model(&domain.Video{}).
		Where("course_id = ?", id).Count(&videos).Error; err != nil {
		return
	}
	err = r.db.WithContext(ctx).Model(&domain.CourseAccess{}).
		Where("course_id = ? AND is_active = ?", id, true).Count(&activeAccesses).Error
	return
}

func (r *CourseRepository) Create(ctx context.Context, c *domain.Course) error {
	// Списки в кеше протухнут сами по TTL
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CourseRepository) Update(ctx context.Context, c *domain.Course) error {
	if err := r.db.WithContext(ctx).Save(c).Error; err != nil {
		return err
	}
	r.invalidateDetail(ctx, c.ID)
	return nil
}

// DeleteCascade удаляет курс одной транзакцией в порядке зависимостей:
// прогресс по видео -> видео -> доступы -> сам курс. Упали посередине —
// откатилось всё, сирот не остается.
func (r *CourseRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&domain.Course{}).Where("id = ?", id).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return domain.ErrCourseNotFound
		}

		// 1. Прогресс по видео этого курса
		if err := tx.Where("video_id IN (?)",
			tx.Model(&domain.Video{}).Select("id").Where("course_id = ?", id),
		).Delete(&domain.VideoProgress{}).Error; err != nil {
			return err
		}

		// 2. Сами видео
		if err := tx.Where("course_id = ?", id).Delete(&domain.Video{}).Error; err != nil {
			return err
		}

		// 3. Доступы к курсу
		if err := tx.Where("course_id = ?", id).Delete(&domain.CourseAccess{}).Error; err != nil {
			return err
		}

		// 4. Сам курс
		return tx.Delete(&domain.Course{}, "id = ?", id).Error
	})
	if err != nil {
		return err
	}

	r.invalidateDetail(ctx, id)
	return nil
}

func (r *CourseRepository) invalidateDetail(ctx context.Context, id uuid.UUID) {
	if r.rdb != nil {
		r.rdb.Del(ctx, "course:detail:"+id.String())
	}
}
