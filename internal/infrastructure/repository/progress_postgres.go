package repository

import (
	"context"
	"time"

	"courseplatform/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Upsert — одна строка на пару (user, video), процент просто перезаписываем
func (r *ProgressRepository) Upsert(ctx context.Context, userID, videoID uuid.UUID, percent int) error {
	progress := domain.VideoProgress{
		ID:      uuid.New(),
		UserID:  userID,
		VideoID: videoID,
		Percent: percent,
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"percent":    percent,
			"updated_at": time.Now(),
		}),
	}).Create(&progress).Error
}
