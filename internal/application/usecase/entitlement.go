package usecase

import (
	"context"
	"errors"
	"time"

	"courseplatform/internal/domain"
	"courseplatform/internal/infrastructure/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EntitlementUseCase — единственный источник правды про "юзер U сейчас
// видит курс C". Истечение срока проверяется лениво на каждом чтении,
// никаких фоновых чисток: состояние в БД + текущее время дают ответ.
type EntitlementUseCase struct {
	accessRepo *repository.AccessRepository
	userRepo   *repository.UserRepository
	courseRepo *repository.CourseRepository
	log        *zap.SugaredLogger
	// Подменяется в тестах
	now func() time.Time
}

func NewEntitlementUseCase(
	ar *repository.AccessRepository,
	ur *repository.UserRepository,
	cr *repository.CourseRepository,
	log *zap.SugaredLogger,
) *EntitlementUseCase {
	return &EntitlementUseCase{
		accessRepo: ar,
		userRepo:   ur,
		courseRepo: cr,
		log:        log,
		now:        time.Now,
	}
}

// Grant выдает (или перевыдает) доступ. Идемпотентно: повторный вызов с
// тем же сроком дает то же наблюдаемое состояние, строка всегда одна.
func (uc *EntitlementUseCase) Grant(ctx context.Context, userID, courseID uuid.UUID, expiresAt *time.Time) (*domain.CourseAccess, error) {
	// Валидируем ссылки, чтобы не плодить гранты на несуществующее
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := uc.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	access, err := uc.accessRepo.Upsert(ctx, userID, courseID, expiresAt)
	if err != nil {
		return nil, err
	}

	uc.log.Infow("access granted", "user_id", userID, "course_id", courseID, "expires_at", expiresAt)
	return access, nil
}

func (uc *EntitlementUseCase) Revoke(ctx context.Context, accessID uuid.UUID) error {
	if err := uc.accessRepo.Revoke(ctx, accessID); err != nil {
		return err
	}
	uc.log.Infow("access revoked", "access_id", accessID)
	return nil
}

// HasEffectiveAccess — time-of-check по свежей строке из БД
func (uc *EntitlementUseCase) HasEffectiveAccess(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	access, err := uc.accessRepo.GetByUserCourse(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, domain.ErrAccessNotFound) {
			return false, nil
		}
		return false, err
	}
	return access.EffectiveAt(uc.now()), nil
}

// ListEffectiveGrants — действующие доступы юзера с курсами,
// свежевыданные первыми ("Мои курсы")
func (uc *EntitlementUseCase) ListEffectiveGrants(ctx context.Context, userID uuid.UUID) ([]domain.CourseAccess, error) {
	return uc.accessRepo.ListEffectiveByUser(ctx, userID, uc.now())
}

// GrantState — статус гранта для админской страницы
type GrantState string

const (
	GrantActive  GrantState = "active"
	GrantExpired GrantState = "expired"
	GrantRevoked GrantState = "revoked"
)

type GrantView struct {
	Access domain.CourseAccess
	State  GrantState
}

type UserGrants struct {
	User   domain.User
	Grants []GrantView
}

// ListGrantsByUser — все гранты, сгруппированные по юзерам, с вычисленным
// статусом каждого: активен / истек (но не отозван) / отозван
func (uc *EntitlementUseCase) ListGrantsByUser(ctx context.Context) ([]UserGrants, error) {
	all, err := uc.accessRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	byUser := map[uuid.UUID]*UserGrants{}
	var order []uuid.UUID

	for _, a := range all {
		g, ok := byUser[a.UserID]
		if !ok {
			g = &UserGrants{User: a.User}
			byUser[a.UserID] = g
			order = append(order, a.UserID)
		}

		state := GrantActive
		switch {
		case a.EffectiveAt(now):
			state = GrantActive
		case a.IsActive && a.Expired(now):
			state = GrantExpired
		default:
			state = GrantRevoked
		}
		g.Grants = append(g.Grants, GrantView{Access: a, State: state})
	}

	result := make([]UserGrants, 0, len(order))
	for _, id := range order {
		result = append(result, *byUser[id])
	}
	return result, nil
}
