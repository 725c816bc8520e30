package usecase

import (
	"context"

	"courseplatform/internal/domain"
	"courseplatform/internal/infrastructure/parser"
	"courseplatform/internal/infrastructure/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogUseCase struct {
	courseRepo   *repository.CourseRepository
	videoRepo    *repository.VideoRepository
	progressRepo *repository.ProgressRepository
	log          *zap.SugaredLogger
}

func NewCatalogUseCase(
	cr *repository.CourseRepository,
	vr *repository.VideoRepository,
	pr *repository.ProgressRepository,
	log *zap.SugaredLogger,
) *CatalogUseCase {
	return &CatalogUseCase{courseRepo: cr, videoRepo: vr, progressRepo: pr, log: log}
}

// === Курсы ===

func (uc *CatalogUseCase) ListCourses(ctx context.Context, search string, limit, offset int) ([]domain.Course, int64, error) {
	return uc.courseRepo.List(ctx, search, limit, offset)
}

func (uc *CatalogUseCase) SearchCourses(ctx context.Context, query string, limit, offset int) ([]domain.Course, int64, error) {
	return uc.courseRepo.Search(ctx, query, limit, offset)
}

func (uc *CatalogUseCase) GetCourse(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	return uc.courseRepo.GetByID(ctx, id)
}

// CourseCounts — видео и активные доступы для админской карточки
func (uc *CatalogUseCase) CourseCounts(ctx context.Context, id uuid.UUID) (videos, activeAccesses int64, err error) {
	if _, err = uc.courseRepo.GetByID(ctx, id); err != nil {
		return
	}
	return uc.courseRepo.Counts(ctx, id)
}

func (uc *CatalogUseCase) CreateCourse(ctx context.Context, c *domain.Course) error {
	c.ID = uuid.New()
	if err := uc.courseRepo.Create(ctx, c); err != nil {
		return err
	}
	uc.log.Infow("course created", "course_id", c.ID, "title", c.Title)
	return nil
}

func (uc *CatalogUseCase) UpdateCourse(ctx context.Context, id uuid.UUID, title, description string, price float64, image string) (*domain.Course, error) {
	course, err := uc.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	course.Title = title
	course.Description = description
	course.Price = price
	course.Image = image

	if err := uc.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (uc *CatalogUseCase) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	if err := uc.courseRepo.DeleteCascade(ctx, id); err != nil {
		return err
	}
	uc.log.Infow("course deleted with cascade", "course_id", id)
	return nil
}

// === Видео ===

// AddVideo валидирует ссылку на YouTube и вставляет видео в конец курса
func (uc *CatalogUseCase) AddVideo(ctx context.Context, courseID uuid.UUID, title, description, url string, duration *int) (*domain.Video, error) {
	if _, err := uc.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	if _, err := parser.ExtractYouTubeID(url); err != nil {
		return nil, err
	}

	video := &domain.Video{
		ID:          uuid.New(),
		CourseID:    courseID,
		Title:       title,
		Description: description,
		URL:         url,
		Duration:    duration,
	}
	if err := uc.videoRepo.Append(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

func (uc *CatalogUseCase) UpdateVideo(ctx context.Context, videoID uuid.UUID, title, description, url string, duration *int) (*domain.Video, error) {
	video, err := uc.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if _, err := parser.ExtractYouTubeID(url); err != nil {
		return nil, err
	}

	video.Title = title
	video.Description = description
	video.URL = url
	video.Duration = duration

	if err := uc.videoRepo.Update(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

func (uc *CatalogUseCase) DeleteVideo(ctx context.Context, videoID uuid.UUID) error {
	return uc.videoRepo.Delete(ctx, videoID)
}

func (uc *CatalogUseCase) ReorderVideos(ctx context.Context, courseID uuid.UUID, orderedIDs []uuid.UUID) error {
	if _, err := uc.courseRepo.GetByID(ctx, courseID); err != nil {
		return err
	}
	return uc.videoRepo.Reorder(ctx, courseID, orderedIDs)
}

// === Просмотр ===

func (uc *CatalogUseCase) CourseWithVideos(ctx context.Context, courseID uuid.UUID) (*domain.Course, error) {
	return uc.courseRepo.GetWithVideos(ctx, courseID)
}

// WatchVideo — текущее видео плюс соседи по порядку для плеера
func (uc *CatalogUseCase) WatchVideo(ctx context.Context, courseID, videoID uuid.UUID) (current, prev, next *domain.Video, err error) {
	course, err := uc.courseRepo.GetWithVideos(ctx, courseID)
	if err != nil {
		return nil, nil, nil, err
	}

	current, prev, next = Neighbors(course.Videos, videoID)
	if current == nil {
		return nil, nil, nil, domain.ErrVideoNotFound
	}
	return current, prev, next, nil
}

// SaveProgress пишет процент просмотра видео
func (uc *CatalogUseCase) SaveProgress(ctx context.Context, userID, videoID uuid.UUID, percent int) error {
	if _, err := uc.videoRepo.GetByID(ctx, videoID); err != nil {
		return err
	}
	return uc.progressRepo.Upsert(ctx, userID, videoID, percent)
}

// Neighbors находит видео и его соседей в списке, отсортированном по order.
// На краях соседа нет — nil, никакого заворачивания по кругу.
func Neighbors(videos []domain.Video, videoID uuid.UUID) (current, prev, next *domain.Video) {
	for i := range videos {
		if videos[i].ID != videoID {
			continue
		}
		current = &videos[i]
		if i > 0 {
			prev = &videos[i-1]
		}
		if i < len(videos)-1 {
			next = &videos[i+1]
		}
		return
	}
	return nil, nil, nil
}
